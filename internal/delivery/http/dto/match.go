package dto

import "jobradar/internal/domain/job"

type MatchRequest struct {
	Skills   []string `json:"skills"`
	Location string   `json:"location"`
}

type MatchResponse struct {
	RankedJobs   []job.Record      `json:"ranked_jobs"`
	Gaps         []job.GapEntry    `json:"gaps"`
	SourceErrors []job.SourceError `json:"source_errors"`
}

type ExtractSkillsRequest struct {
	Text string `json:"text"`
}

type ExtractSkillsResponse struct {
	Skills []string `json:"skills"`
}
