package gap

import (
	"context"
	"sort"
	"strings"

	"jobradar/internal/domain/job"
)

// ResourceCatalog resolves learning resources for a skill. A skill
// with no mapping still appears in the gap report with an empty list;
// gap visibility never depends on catalog completeness.
type ResourceCatalog interface {
	Lookup(ctx context.Context, skill string) []job.Resource
}

type StaticCatalog map[string][]job.Resource

func (c StaticCatalog) Lookup(_ context.Context, skill string) []job.Resource {
	if c == nil {
		return nil
	}
	return c[strings.ToLower(strings.TrimSpace(skill))]
}

func DefaultCatalog() StaticCatalog {
	return StaticCatalog{
		"python": {{Title: "Python for Everybody", URL: "https://www.py4e.com"}},
		"sql":    {{Title: "SQLBolt", URL: "https://sqlbolt.com"}},
		"docker": {{Title: "Docker Getting Started", URL: "https://docs.docker.com/get-started/"}},
		"excel":  {{Title: "Excel Essentials", URL: "https://support.microsoft.com/excel"}},
		"go":     {{Title: "A Tour of Go", URL: "https://go.dev/tour/"}},
	}
}

type Aggregator struct {
	catalog ResourceCatalog
	top     int
}

func NewAggregator(catalog ResourceCatalog, topN int) *Aggregator {
	if topN <= 0 {
		topN = 5
	}
	return &Aggregator{catalog: catalog, top: topN}
}

// Aggregate derives the top unmet skills across ranked jobs only, so
// the signal stays tied to realistically attainable roles. Frequency
// counts distinct jobs; equal frequencies break lexicographically.
func (a *Aggregator) Aggregate(ctx context.Context, ranked []job.Record, profileSkills []string) []job.GapEntry {
	have := make(map[string]struct{}, len(profileSkills))
	for _, s := range profileSkills {
		s = strings.ToLower(strings.Join(strings.Fields(s), " "))
		if s == "" {
			continue
		}
		have[s] = struct{}{}
	}

	freq := map[string]int{}
	for _, rec := range ranked {
		seen := map[string]struct{}{}
		for _, missing := range rec.MissingSkills {
			skill := strings.ToLower(strings.Join(strings.Fields(missing), " "))
			if skill == "" {
				continue
			}
			if _, ok := have[skill]; ok {
				continue
			}
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			freq[skill]++
		}
	}

	entries := make([]job.GapEntry, 0, len(freq))
	for skill, n := range freq {
		entries = append(entries, job.GapEntry{Skill: skill, Frequency: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Frequency != entries[j].Frequency {
			return entries[i].Frequency > entries[j].Frequency
		}
		return entries[i].Skill < entries[j].Skill
	})

	if len(entries) > a.top {
		entries = entries[:a.top]
	}

	for i := range entries {
		if a.catalog == nil {
			entries[i].Resources = []job.Resource{}
			continue
		}
		res := a.catalog.Lookup(ctx, entries[i].Skill)
		if res == nil {
			res = []job.Resource{}
		}
		entries[i].Resources = res
	}
	return entries
}
