package scraper

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobradar/internal/domain/job"

	"golang.org/x/time/rate"
)

// Adapter fetches and parses one listing site. Implementations own an
// ordered list of fallback parse strategies; selector drift yields an
// empty slice, not an error. A *PartialError may accompany a non-empty
// slice when some postings parsed and others did not.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, query string, location string, maxResults int) ([]job.Candidate, error)
}

// FetchError reports a network, timeout or HTTP-status failure. The
// scheduler excludes the source from the pass and records the reason.
type FetchError struct {
	Source string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ""
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d", e.Source, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return e.Source + ": fetch failed"
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PartialError reports that some postings parsed while selectors failed
// on others. Parsed candidates are still returned alongside it.
type PartialError struct {
	Source  string
	Parsed  int
	Dropped int
}

func (e *PartialError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: parsed %d postings, %d unparseable", e.Source, e.Parsed, e.Dropped)
}

const maxBodyBytes = 5 << 20

// httpGet issues a GET with a realistic request identity and at most
// one retry. The retry budget is local to this call.
func httpGet(ctx context.Context, client *http.Client, limiter *rate.Limiter, source string, rawURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if ctx.Err() != nil {
			return nil, &FetchError{Source: source, Err: ctx.Err()}
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, &FetchError{Source: source, Err: err}
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, &FetchError{Source: source, Err: err}
		}
		for k, v := range browserHeaders() {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			lastErr = &FetchError{Source: source, Err: err}
			continue
		}

		body, ferr := func() ([]byte, error) {
			defer resp.Body.Close()
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return nil, &FetchError{Source: source, Status: resp.StatusCode}
			}
			b, err := readAllLimit(resp.Body, maxBodyBytes)
			if err != nil {
				return nil, &FetchError{Source: source, Err: err}
			}
			return b, nil
		}()
		if ferr != nil {
			lastErr = ferr
			continue
		}
		return body, nil
	}
	return nil, lastErr
}

func browserHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
}

func readAllLimit(r io.Reader, max int64) ([]byte, error) {
	lr := &io.LimitedReader{R: r, N: max}
	b, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if lr.N <= 0 {
		return nil, fmt.Errorf("response too large")
	}
	return b, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func hostFromBaseURL(base string, fallback string) string {
	base = strings.TrimSpace(base)
	u, err := url.Parse(base)
	if err != nil {
		return fallback
	}
	host := u.Host
	if host == "" {
		return fallback
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func pickNonEmpty(a, b string) string {
	a = strings.TrimSpace(a)
	if a != "" {
		return a
	}
	return strings.TrimSpace(b)
}
