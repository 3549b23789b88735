package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobradar/internal/domain/job"
	"jobradar/internal/gap"
	"jobradar/internal/match"
	"jobradar/internal/normalize"

	"go.uber.org/zap"
)

var ErrEmptyProfile = errors.New("profile skill set is empty")

// Scraper is the fetch scheduler's surface as the usecase sees it.
type Scraper interface {
	ScrapeAll(ctx context.Context, query string, location string) ([]job.Candidate, []job.SourceError)
}

// Backfiller derives requirement skills from a description when the
// source adapter produced none.
type Backfiller interface {
	RequirementSkills(description string) []string
}

// ReportCache is the optional result cache. A nil cache disables it.
type ReportCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type MatchUsecase interface {
	ScrapeAndMatch(ctx context.Context, profileSkills []string, location string) (job.Report, error)
}

type Match struct {
	scraper  Scraper
	matcher  *match.Matcher
	gaps     *gap.Aggregator
	backfill Backfiller
	cache    ReportCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewMatchUsecase(scraper Scraper, matcher *match.Matcher, gaps *gap.Aggregator, backfill Backfiller, cache ReportCache, cacheTTL time.Duration, logger *zap.Logger) *Match {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Match{
		scraper:  scraper,
		matcher:  matcher,
		gaps:     gaps,
		backfill: backfill,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ScrapeAndMatch runs one full pass: scrape all sources, normalize and
// deduplicate, score against the profile, aggregate gaps. Partial
// source failures never prevent returning whatever matched; total
// failure returns an empty-with-reason report, not an error, so
// callers can render a retry state.
func (u *Match) ScrapeAndMatch(ctx context.Context, profileSkills []string, location string) (job.Report, error) {
	skills := trimSkills(profileSkills)
	if len(skills) == 0 {
		return job.Report{}, ErrEmptyProfile
	}
	location = strings.TrimSpace(location)

	cacheKey := ReportCacheKey(skills, location)
	if u.cache != nil {
		var cached job.Report
		hit, err := u.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && hit {
			u.logger.Debug("report served from cache", zap.String("key", cacheKey))
			return cached, nil
		}
	}

	query := searchQuery(skills)
	candidates, srcErrs := u.scraper.ScrapeAll(ctx, query, location)
	report := job.Report{
		RankedJobs:   []job.Record{},
		Gaps:         []job.GapEntry{},
		SourceErrors: srcErrs,
	}
	if report.SourceErrors == nil {
		report.SourceErrors = []job.SourceError{}
	}

	if len(candidates) == 0 {
		u.logger.Warn("scrape produced no candidates",
			zap.String("location", location),
			zap.Int("source_errors", len(report.SourceErrors)),
		)
		return report, nil
	}

	records := normalize.Normalize(candidates)
	if u.backfill != nil {
		for i := range records {
			if len(records[i].Skills) == 0 {
				records[i].Skills = u.backfill.RequirementSkills(records[i].Description)
			}
		}
	}

	ranked := u.matcher.Rank(skills, records)
	report.RankedJobs = ranked
	report.Gaps = u.gaps.Aggregate(ctx, ranked, skills)

	u.logger.Info("match pass finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("records", len(records)),
		zap.Int("ranked", len(ranked)),
		zap.Int("gaps", len(report.Gaps)),
		zap.Int("source_errors", len(report.SourceErrors)),
	)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, report, u.cacheTTL); err != nil {
			u.logger.Debug("report cache write failed", zap.Error(err))
		}
	}
	return report, nil
}

func trimSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// searchQuery builds the free-text query each adapter receives. The
// leading profile skills stand in for a job title keyword; three keeps
// result pages broad without drowning in noise.
func searchQuery(skills []string) string {
	n := len(skills)
	if n > 3 {
		n = 3
	}
	return strings.Join(skills[:n], " ")
}

var _ MatchUsecase = (*Match)(nil)
