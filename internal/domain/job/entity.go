package job

// Candidate is a raw extraction from one adapter. Candidates are
// transient: normalization folds them into Records and discards them.
type Candidate struct {
	Title       string
	Company     string
	Location    string
	Description string
	Skills      []string
	Source      string
	URL         string
	PostedAt    string
}

// SkillMatch pairs a job requirement with the profile skill that
// satisfied it and the similarity value that cleared the threshold.
type SkillMatch struct {
	Requirement  string `json:"requirement"`
	ProfileSkill string `json:"profile_skill"`
	Similarity   int    `json:"similarity"`
}

// Record is a canonical, deduplicated job. Exactly one Record survives
// per dedup key; MatchScore and the skill sets are populated after
// deduplication.
type Record struct {
	Title         string       `json:"title"`
	Company       string       `json:"company"`
	Location      string       `json:"location"`
	Description   string       `json:"description"`
	Skills        []string     `json:"skills"`
	Sources       []string     `json:"sources"`
	URL           string       `json:"url"`
	PostedAt      string       `json:"posted_at,omitempty"`
	DedupKey      string       `json:"dedup_key"`
	MatchScore    int          `json:"match_score"`
	MatchedSkills []SkillMatch `json:"matched_skills"`
	MissingSkills []string     `json:"missing_skills"`
}

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// GapEntry is a missing skill aggregated across ranked records.
// Frequency counts distinct ranked jobs whose MissingSkills contain
// the skill. Resources may be empty when no catalog mapping exists.
type GapEntry struct {
	Skill     string     `json:"skill"`
	Frequency int        `json:"frequency"`
	Resources []Resource `json:"resources"`
}

type SourceError struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// Report is the result of one scrape-and-match pass. The caller owns
// it exclusively; nothing is retained between passes.
type Report struct {
	RankedJobs   []Record      `json:"ranked_jobs"`
	Gaps         []GapEntry    `json:"gaps"`
	SourceErrors []SourceError `json:"source_errors"`
}
