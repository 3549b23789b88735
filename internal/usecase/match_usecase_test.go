package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"jobradar/internal/config"
	"jobradar/internal/domain/job"
	"jobradar/internal/gap"
	"jobradar/internal/match"
)

type fakeScraper struct {
	candidates []job.Candidate
	srcErrs    []job.SourceError
	calls      int
}

func (f *fakeScraper) ScrapeAll(_ context.Context, _ string, _ string) ([]job.Candidate, []job.SourceError) {
	f.calls++
	return f.candidates, f.srcErrs
}

type fakeBackfiller struct{ skills []string }

func (f *fakeBackfiller) RequirementSkills(_ string) []string { return f.skills }

type memCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func newMemCache() *memCache { return &memCache{store: map[string][]byte{}} }

func (m *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.gets++
	b, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (m *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.sets++
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = b
	return nil
}

func newTestUsecase(scraper Scraper, cache ReportCache) *Match {
	matcher := match.NewMatcher(match.TokenSetScorer{}, config.MatchConfig{SkillThreshold: 80, DisplayThreshold: 50})
	gaps := gap.NewAggregator(nil, 5)
	return NewMatchUsecase(scraper, matcher, gaps, nil, cache, time.Minute, nil)
}

func TestScrapeAndMatchEmptyProfile(t *testing.T) {
	u := newTestUsecase(&fakeScraper{}, nil)

	if _, err := u.ScrapeAndMatch(context.Background(), []string{" ", ""}, ""); !errors.Is(err, ErrEmptyProfile) {
		t.Errorf("err = %v, want ErrEmptyProfile", err)
	}
}

func TestScrapeAndMatchAllSourcesFailSoftly(t *testing.T) {
	scraper := &fakeScraper{
		srcErrs: []job.SourceError{
			{Source: "indeed", Reason: "status 403"},
			{Source: "linkedin", Reason: "timeout"},
			{Source: "glassdoor", Reason: "status 429"},
			{Source: "remotive", Reason: "dns"},
		},
	}
	u := newTestUsecase(scraper, nil)

	report, err := u.ScrapeAndMatch(context.Background(), []string{"excel"}, "")
	if err != nil {
		t.Fatalf("total source failure must not be an error: %v", err)
	}
	if report.RankedJobs == nil || len(report.RankedJobs) != 0 {
		t.Errorf("RankedJobs = %v, want empty non-nil", report.RankedJobs)
	}
	if report.Gaps == nil || len(report.Gaps) != 0 {
		t.Errorf("Gaps = %v, want empty non-nil", report.Gaps)
	}
	if len(report.SourceErrors) != 4 {
		t.Errorf("SourceErrors = %v, want all four recorded", report.SourceErrors)
	}
}

func TestScrapeAndMatchFullPass(t *testing.T) {
	scraper := &fakeScraper{
		candidates: []job.Candidate{
			{
				Title:   "Retail Associate",
				Company: "Acme",
				Skills:  []string{"Excel", "Customer Service", "Inventory Management"},
				Source:  "remotive",
			},
			{
				Title:   "Retail Associate",
				Company: "Acme",
				Source:  "indeed",
			},
			{
				Title:  "Forklift Operator",
				Skills: []string{"forklift certification", "osha"},
				Source: "indeed",
			},
		},
		srcErrs: []job.SourceError{{Source: "glassdoor", Reason: "blocked"}},
	}
	u := newTestUsecase(scraper, nil)

	report, err := u.ScrapeAndMatch(context.Background(), []string{"excel", "customer service", "pos systems"}, "chicago")
	if err != nil {
		t.Fatalf("ScrapeAndMatch error: %v", err)
	}

	if len(report.RankedJobs) != 1 {
		t.Fatalf("RankedJobs = %+v, want the 67%% retail role only", report.RankedJobs)
	}
	top := report.RankedJobs[0]
	if top.Title != "retail associate" || top.MatchScore != 67 {
		t.Errorf("top job = %s score %d, want retail associate at 67", top.Title, top.MatchScore)
	}
	if len(top.Sources) != 2 {
		t.Errorf("Sources = %v, want the duplicate merged across both", top.Sources)
	}

	if len(report.Gaps) != 1 || report.Gaps[0].Skill != "inventory management" {
		t.Errorf("Gaps = %+v, want inventory management", report.Gaps)
	}
	if len(report.SourceErrors) != 1 {
		t.Errorf("SourceErrors = %+v", report.SourceErrors)
	}
}

func TestScrapeAndMatchBackfillsRequirements(t *testing.T) {
	scraper := &fakeScraper{
		candidates: []job.Candidate{
			{Title: "Analyst", Description: "sql and excel heavy role", Source: "indeed"},
		},
	}
	matcher := match.NewMatcher(match.TokenSetScorer{}, config.MatchConfig{SkillThreshold: 80, DisplayThreshold: 50})
	gaps := gap.NewAggregator(nil, 5)
	u := NewMatchUsecase(scraper, matcher, gaps, &fakeBackfiller{skills: []string{"sql", "excel"}}, nil, 0, nil)

	report, err := u.ScrapeAndMatch(context.Background(), []string{"sql", "excel"}, "")
	if err != nil {
		t.Fatalf("ScrapeAndMatch error: %v", err)
	}
	if len(report.RankedJobs) != 1 || report.RankedJobs[0].MatchScore != 100 {
		t.Errorf("RankedJobs = %+v, want backfilled requirements fully matched", report.RankedJobs)
	}
}

func TestScrapeAndMatchUsesCache(t *testing.T) {
	scraper := &fakeScraper{
		candidates: []job.Candidate{{Title: "Clerk", Skills: []string{"excel"}, Source: "indeed"}},
	}
	cache := newMemCache()
	u := newTestUsecase(scraper, cache)

	first, err := u.ScrapeAndMatch(context.Background(), []string{"excel"}, "")
	if err != nil {
		t.Fatalf("first pass error: %v", err)
	}
	second, err := u.ScrapeAndMatch(context.Background(), []string{"EXCEL "}, "")
	if err != nil {
		t.Fatalf("second pass error: %v", err)
	}

	if scraper.calls != 1 {
		t.Errorf("scraper called %d times, want 1 with a warm cache", scraper.calls)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}
	if len(first.RankedJobs) != len(second.RankedJobs) {
		t.Errorf("cached report diverged: %d vs %d jobs", len(first.RankedJobs), len(second.RankedJobs))
	}
}

func TestReportCacheKeyStable(t *testing.T) {
	a := ReportCacheKey([]string{"Excel", "sql"}, "Chicago")
	b := ReportCacheKey([]string{"SQL", " excel "}, "chicago")
	if a != b {
		t.Errorf("keys differ for equivalent profiles:\n%s\n%s", a, b)
	}

	c := ReportCacheKey([]string{"excel", "sql"}, "boston")
	if a == c {
		t.Error("different locations must produce different keys")
	}
}
