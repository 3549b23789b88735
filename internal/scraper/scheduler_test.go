package scraper

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"jobradar/internal/config"
	"jobradar/internal/domain/job"
)

type fakeAdapter struct {
	name       string
	candidates []job.Candidate
	err        error
	delay      time.Duration
	ignoreCtx  bool
	fetch      func(ctx context.Context) ([]job.Candidate, error)
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(ctx context.Context, _ string, _ string, _ int) ([]job.Candidate, error) {
	if f.fetch != nil {
		return f.fetch(ctx)
	}
	if f.delay > 0 {
		if f.ignoreCtx {
			time.Sleep(f.delay)
		} else {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.delay):
			}
		}
	}
	return f.candidates, f.err
}

func cand(title, source string) job.Candidate {
	return job.Candidate{Title: title, Source: source}
}

func TestScrapeAllIsolatesFailures(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: "broken", err: &FetchError{Source: "broken", Status: 503}},
		&fakeAdapter{name: "one", candidates: []job.Candidate{cand("a", "one")}},
		&fakeAdapter{name: "two", candidates: []job.Candidate{cand("b", "two"), cand("c", "two")}},
	}
	s := NewScheduler(adapters, config.ScrapeConfig{Concurrency: 3}, nil)

	candidates, srcErrs := s.ScrapeAll(context.Background(), "clerk", "")

	if len(candidates) != 3 {
		t.Errorf("got %d candidates, want 3 from the healthy sources", len(candidates))
	}
	if len(srcErrs) != 1 {
		t.Fatalf("got %d source errors, want 1: %+v", len(srcErrs), srcErrs)
	}
	if srcErrs[0].Source != "broken" || srcErrs[0].Reason == "" {
		t.Errorf("source error = %+v", srcErrs[0])
	}
}

func TestScrapeAllAllSourcesFail(t *testing.T) {
	names := []string{"w", "x", "y", "z"}
	adapters := make([]Adapter, 0, len(names))
	for _, n := range names {
		adapters = append(adapters, &fakeAdapter{name: n, err: errors.New("blocked")})
	}
	s := NewScheduler(adapters, config.ScrapeConfig{Concurrency: 2}, nil)

	candidates, srcErrs := s.ScrapeAll(context.Background(), "q", "")

	if len(candidates) != 0 {
		t.Errorf("got %d candidates, want none", len(candidates))
	}
	if len(srcErrs) != len(names) {
		t.Errorf("got %d source errors, want one per source (%d)", len(srcErrs), len(names))
	}
}

func TestScrapeAllKeepsPartialResults(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{
			name:       "flaky",
			candidates: []job.Candidate{cand("kept", "flaky")},
			err:        &PartialError{Source: "flaky", Parsed: 1, Dropped: 2},
		},
	}
	s := NewScheduler(adapters, config.ScrapeConfig{}, nil)

	candidates, srcErrs := s.ScrapeAll(context.Background(), "q", "")

	if len(candidates) != 1 || candidates[0].Title != "kept" {
		t.Errorf("candidates = %+v, want the parsed posting retained", candidates)
	}
	if len(srcErrs) != 1 || srcErrs[0].Source != "flaky" {
		t.Errorf("source errors = %+v, want the partial failure recorded", srcErrs)
	}
}

func TestScrapeAllBoundsConcurrency(t *testing.T) {
	const limit = 2
	var inFlight, peak int64
	var mu sync.Mutex

	fetch := func(ctx context.Context) ([]job.Candidate, error) {
		n := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(30 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return nil, nil
	}

	adapters := []Adapter{
		&fakeAdapter{name: "a", fetch: fetch},
		&fakeAdapter{name: "b", fetch: fetch},
		&fakeAdapter{name: "c", fetch: fetch},
		&fakeAdapter{name: "d", fetch: fetch},
	}
	s := NewScheduler(adapters, config.ScrapeConfig{Concurrency: limit}, nil)

	s.ScrapeAll(context.Background(), "q", "")

	mu.Lock()
	defer mu.Unlock()
	if peak > limit {
		t.Errorf("peak concurrency = %d, want <= %d", peak, limit)
	}
}

func TestScrapeAllAbandonsOnDeadline(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: "fast", candidates: []job.Candidate{cand("quick", "fast")}},
		&fakeAdapter{name: "slow", delay: 5 * time.Second, candidates: []job.Candidate{cand("late", "slow")}},
	}
	s := NewScheduler(adapters, config.ScrapeConfig{Concurrency: 2}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	candidates, _ := s.ScrapeAll(ctx, "q", "")
	if took := time.Since(start); took > 2*time.Second {
		t.Fatalf("ScrapeAll blocked for %v past the deadline", took)
	}

	for _, c := range candidates {
		if c.Title == "late" {
			t.Error("received a result from an abandoned adapter")
		}
	}
}

func TestScrapeAllHardTimeoutOnStubbornAdapter(t *testing.T) {
	// The hung adapter never checks its ctx; the per-adapter timeout
	// must cut it off anyway.
	adapters := []Adapter{
		&fakeAdapter{name: "fast", candidates: []job.Candidate{cand("quick", "fast")}},
		&fakeAdapter{name: "hung", delay: 3 * time.Second, ignoreCtx: true, candidates: []job.Candidate{cand("late", "hung")}},
	}
	s := NewScheduler(adapters, config.ScrapeConfig{Concurrency: 2, AdapterTimeout: 100 * time.Millisecond}, nil)

	start := time.Now()
	candidates, srcErrs := s.ScrapeAll(context.Background(), "q", "")
	if took := time.Since(start); took > time.Second {
		t.Fatalf("ScrapeAll took %v, want the 100ms adapter timeout enforced", took)
	}

	if len(candidates) != 1 || candidates[0].Title != "quick" {
		t.Errorf("candidates = %+v, want only the fast source's", candidates)
	}
	if len(srcErrs) != 1 || srcErrs[0].Source != "hung" {
		t.Errorf("source errors = %+v, want the hung source recorded", srcErrs)
	}
}

func TestScrapeAllDeadlineBeatsStubbornAdapter(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: "fast", candidates: []job.Candidate{cand("quick", "fast")}},
		&fakeAdapter{name: "hung", delay: 3 * time.Second, ignoreCtx: true},
	}
	// Adapter timeout longer than the overall deadline: the pass-level
	// ctx must still unblock ScrapeAll.
	s := NewScheduler(adapters, config.ScrapeConfig{Concurrency: 2, AdapterTimeout: 10 * time.Second}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	candidates, _ := s.ScrapeAll(ctx, "q", "")
	if took := time.Since(start); took > time.Second {
		t.Fatalf("ScrapeAll took %v, want return at the 200ms deadline", took)
	}

	if len(candidates) != 1 || candidates[0].Title != "quick" {
		t.Errorf("candidates = %+v, want the completed source kept", candidates)
	}
}

func TestScrapeAllProgressCallback(t *testing.T) {
	adapters := []Adapter{
		&fakeAdapter{name: "ok", candidates: []job.Candidate{cand("a", "ok")}},
		&fakeAdapter{name: "bad", err: errors.New("nope")},
	}
	s := NewScheduler(adapters, config.ScrapeConfig{Concurrency: 1}, nil)

	var mu sync.Mutex
	done := map[string]error{}
	s.OnSourceDone(func(source string, count int, err error) {
		mu.Lock()
		done[source] = err
		mu.Unlock()
	})

	s.ScrapeAll(context.Background(), "q", "")

	mu.Lock()
	defer mu.Unlock()
	if len(done) != 2 {
		t.Fatalf("callback fired for %d sources, want 2", len(done))
	}
	if done["ok"] != nil || done["bad"] == nil {
		t.Errorf("callback errors = %v", done)
	}
}

func TestScrapeAllNoAdapters(t *testing.T) {
	s := NewScheduler(nil, config.ScrapeConfig{}, nil)
	candidates, srcErrs := s.ScrapeAll(context.Background(), "q", "")
	if candidates != nil || srcErrs != nil {
		t.Errorf("got %v / %v, want nil / nil", candidates, srcErrs)
	}
}
