package match

import (
	"math"
	"sort"

	"jobradar/internal/config"
	"jobradar/internal/domain/job"
)

type Matcher struct {
	scorer           Scorer
	skillThreshold   int
	displayThreshold int
}

func NewMatcher(scorer Scorer, cfg config.MatchConfig) *Matcher {
	if scorer == nil {
		scorer = TokenSetScorer{}
	}
	skill := cfg.SkillThreshold
	if skill <= 0 || skill > 100 {
		skill = 80
	}
	display := cfg.DisplayThreshold
	if display < 0 || display > 100 {
		display = 50
	}
	return &Matcher{scorer: scorer, skillThreshold: skill, displayThreshold: display}
}

// Score populates MatchScore, MatchedSkills and MissingSkills on one
// record. A requirement is matched when its best similarity against
// any profile skill clears the per-skill threshold. A record with no
// requirement skills cannot be evaluated and scores 0.
func (m *Matcher) Score(profileSkills []string, rec job.Record) job.Record {
	rec.MatchScore = 0
	rec.MatchedSkills = nil
	rec.MissingSkills = nil

	if len(rec.Skills) == 0 {
		return rec
	}

	matched := 0
	for _, req := range rec.Skills {
		best := 0
		bestSkill := ""
		for _, ps := range profileSkills {
			sim := m.scorer.Similarity(req, ps)
			if sim > best {
				best = sim
				bestSkill = ps
			}
		}
		if best >= m.skillThreshold {
			matched++
			rec.MatchedSkills = append(rec.MatchedSkills, job.SkillMatch{
				Requirement:  req,
				ProfileSkill: bestSkill,
				Similarity:   best,
			})
			continue
		}
		rec.MissingSkills = append(rec.MissingSkills, req)
	}

	score := int(math.Round(float64(matched) / float64(len(rec.Skills)) * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	rec.MatchScore = score
	return rec
}

// Rank scores every record, drops those below the display threshold or
// with no evaluable requirements, and orders the rest: score
// descending, matched-skill count descending, then original candidate
// order. The ordering is deterministic for identical inputs.
func (m *Matcher) Rank(profileSkills []string, records []job.Record) []job.Record {
	ranked := make([]job.Record, 0, len(records))
	for _, r := range records {
		r = m.Score(profileSkills, r)
		if len(r.Skills) == 0 {
			continue
		}
		if r.MatchScore < m.displayThreshold {
			continue
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return len(ranked[i].MatchedSkills) > len(ranked[j].MatchedSkills)
	})
	return ranked
}
