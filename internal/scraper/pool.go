package scraper

import (
	"context"
	"sync"

	"jobradar/internal/domain/job"
)

type fetchTask func(ctx context.Context) fetchResult

type fetchResult struct {
	Source     string
	Candidates []job.Candidate
	Err        error
}

// workerPool fans adapter calls out to a bounded set of workers and
// funnels their typed results back on one channel. Workers stop on
// context cancellation, dropping whatever was in flight.
type workerPool struct {
	workers int
	tasks   chan fetchTask
	wg      sync.WaitGroup
}

func newWorkerPool(workers, buffer int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &workerPool{
		workers: workers,
		tasks:   make(chan fetchTask, buffer),
	}
}

func (p *workerPool) submit(t fetchTask) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

func (p *workerPool) close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

func (p *workerPool) run(ctx context.Context) <-chan fetchResult {
	buf := p.workers * 4
	if buf < 1 {
		buf = 1
	}
	out := make(chan fetchResult, buf)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					res := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- res:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
