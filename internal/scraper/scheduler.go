package scraper

import (
	"context"
	"errors"
	"time"

	"jobradar/internal/config"
	"jobradar/internal/domain/job"

	"go.uber.org/zap"
)

// Scheduler dispatches adapters with bounded concurrency and a hard
// per-adapter timeout. Adapter failures are isolated: one source
// failing never aborts the pass, it is recorded and the union of the
// remaining adapters' candidates is returned.
type Scheduler struct {
	adapters       []Adapter
	concurrency    int
	adapterTimeout time.Duration
	maxResults     int
	logger         *zap.Logger
	onSourceDone   func(source string, count int, err error)
}

func NewScheduler(adapters []Adapter, cfg config.ScrapeConfig, logger *zap.Logger) *Scheduler {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}
	timeout := cfg.AdapterTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		adapters:       adapters,
		concurrency:    concurrency,
		adapterTimeout: timeout,
		maxResults:     cfg.MaxResults,
		logger:         logger,
	}
}

// OnSourceDone installs a progress callback invoked after each adapter
// finishes, successfully or not. Used by the server for websocket
// progress events.
func (s *Scheduler) OnSourceDone(fn func(source string, count int, err error)) {
	if s == nil {
		return
	}
	s.onSourceDone = fn
}

// fetchWithDeadline enforces the per-adapter timeout even when the
// adapter never checks its ctx. The Fetch goroutine is abandoned on
// expiry; its late result is discarded.
func fetchWithDeadline(ctx context.Context, a Adapter, query string, location string, maxResults int) ([]job.Candidate, error) {
	type outcome struct {
		candidates []job.Candidate
		err        error
	}
	done := make(chan outcome, 1)
	go func() {
		candidates, err := a.Fetch(ctx, query, location, maxResults)
		done <- outcome{candidates: candidates, err: err}
	}()

	select {
	case o := <-done:
		return o.candidates, o.err
	case <-ctx.Done():
		return nil, &FetchError{Source: a.Name(), Err: ctx.Err()}
	}
}

// ScrapeAll runs every adapter and returns the unordered union of
// their candidates plus one SourceError per failed source. When the
// overall ctx deadline expires, in-flight adapters are abandoned and
// only already-completed results are returned.
func (s *Scheduler) ScrapeAll(ctx context.Context, query string, location string) ([]job.Candidate, []job.SourceError) {
	if s == nil || len(s.adapters) == 0 {
		return nil, nil
	}

	pool := newWorkerPool(s.concurrency, len(s.adapters))
	results := pool.run(ctx)

	for _, a := range s.adapters {
		a := a
		pool.submit(func(taskCtx context.Context) fetchResult {
			callCtx, cancel := context.WithTimeout(taskCtx, s.adapterTimeout)
			defer cancel()

			start := time.Now()
			candidates, err := fetchWithDeadline(callCtx, a, query, location, s.maxResults)
			s.logger.Debug("adapter finished",
				zap.String("source", a.Name()),
				zap.Int("candidates", len(candidates)),
				zap.Duration("took", time.Since(start)),
				zap.Error(err),
			)
			return fetchResult{Source: a.Name(), Candidates: candidates, Err: err}
		})
	}
	pool.close()

	var candidates []job.Candidate
	var srcErrs []job.SourceError

	// Adapters that ignore their ctx must not hold the pass hostage:
	// once the overall deadline expires, stop draining and return what
	// already completed.
	for {
		var res fetchResult
		var ok bool
		select {
		case <-ctx.Done():
			s.logger.Warn("scrape deadline expired, abandoning in-flight sources", zap.Error(ctx.Err()))
			return candidates, srcErrs
		case res, ok = <-results:
			if !ok {
				return candidates, srcErrs
			}
		}

		var partial *PartialError
		switch {
		case res.Err == nil:
			candidates = append(candidates, res.Candidates...)
		case errors.As(res.Err, &partial):
			// Partial parses still contribute their candidates.
			candidates = append(candidates, res.Candidates...)
			srcErrs = append(srcErrs, job.SourceError{Source: res.Source, Reason: res.Err.Error()})
			s.logger.Warn("source degraded", zap.String("source", res.Source), zap.Error(res.Err))
		default:
			srcErrs = append(srcErrs, job.SourceError{Source: res.Source, Reason: res.Err.Error()})
			s.logger.Warn("source failed", zap.String("source", res.Source), zap.Error(res.Err))
		}
		if s.onSourceDone != nil {
			s.onSourceDone(res.Source, len(res.Candidates), res.Err)
		}
	}
}
