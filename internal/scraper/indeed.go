package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"jobradar/internal/domain/job"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"
)

const indeedSource = "indeed"

type IndeedAdapter struct {
	baseURL     string
	allowedHost string
	limiter     *rate.Limiter
}

func NewIndeedAdapter(limiter *rate.Limiter) *IndeedAdapter {
	return NewIndeedAdapterWithBaseURL("https://www.indeed.com", limiter)
}

func NewIndeedAdapterWithBaseURL(baseURL string, limiter *rate.Limiter) *IndeedAdapter {
	a := &IndeedAdapter{baseURL: strings.TrimSpace(baseURL), limiter: limiter}
	if a.baseURL == "" {
		a.baseURL = "https://www.indeed.com"
	}
	a.allowedHost = hostFromBaseURL(a.baseURL, "www.indeed.com")
	return a
}

func (a *IndeedAdapter) Name() string { return indeedSource }

// Fetch scrapes one search results page. Result cards are collected
// into per-strategy buckets during the crawl; the first non-empty
// bucket in strategy order wins.
func (a *IndeedAdapter) Fetch(ctx context.Context, query string, location string, maxResults int) ([]job.Candidate, error) {
	searchURL := fmt.Sprintf("%s/jobs?q=%s&l=%s",
		strings.TrimRight(a.baseURL, "/"),
		url.QueryEscape(strings.TrimSpace(query)),
		url.QueryEscape(strings.TrimSpace(location)),
	)

	c := colly.NewCollector(
		colly.AllowedDomains(a.allowedHost),
	)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: 400 * time.Millisecond, RandomDelay: 750 * time.Millisecond})

	// The collector does not observe ctx on its own; bound its request
	// timeout by the remaining deadline so a hung server cannot hold
	// Fetch past the scheduler's per-adapter budget.
	reqTimeout := 25 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		if rem := time.Until(dl); rem < reqTimeout {
			reqTimeout = rem
		}
	}
	if reqTimeout <= 0 {
		return nil, &FetchError{Source: indeedSource, Err: context.DeadlineExceeded}
	}
	c.SetRequestTimeout(reqTimeout)

	var cards []job.Candidate
	var legacyCards []job.Candidate
	var anchors []job.Candidate
	dropped := 0

	c.OnRequest(func(r *colly.Request) {
		for k, v := range browserHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML("div.job_seen_beacon", func(e *colly.HTMLElement) {
		title := cleanText(e.DOM.Find("h2.jobTitle").Text())
		if title == "" {
			dropped++
			return
		}
		href, _ := e.DOM.Find("h2.jobTitle a").Attr("href")
		cards = append(cards, job.Candidate{
			Title:       title,
			Company:     pickNonEmpty(cleanText(e.DOM.Find("[data-testid=company-name]").Text()), cleanText(e.DOM.Find("span.companyName").Text())),
			Location:    pickNonEmpty(cleanText(e.DOM.Find("[data-testid=text-location]").Text()), cleanText(e.DOM.Find("div.companyLocation").Text())),
			Description: cleanText(e.DOM.Find("div.job-snippet").Text()),
			Source:      indeedSource,
			URL:         e.Request.AbsoluteURL(href),
			PostedAt:    cleanText(e.DOM.Find("span.date").Text()),
		})
	})

	c.OnHTML("td.resultContent", func(e *colly.HTMLElement) {
		title := cleanText(e.DOM.Find("h2.jobTitle").Text())
		if title == "" {
			return
		}
		href, _ := e.DOM.Find("a").Attr("href")
		legacyCards = append(legacyCards, job.Candidate{
			Title:       title,
			Company:     cleanText(e.DOM.Find("span.companyName").Text()),
			Location:    cleanText(e.DOM.Find("div.companyLocation").Text()),
			Description: cleanText(e.DOM.Find("div.job-snippet").Text()),
			Source:      indeedSource,
			URL:         e.Request.AbsoluteURL(href),
		})
	})

	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if !strings.Contains(href, "/viewjob") && !strings.Contains(href, "/rc/clk") {
			return
		}
		title := cleanText(e.Text)
		if title == "" {
			return
		}
		anchors = append(anchors, job.Candidate{
			Title:  title,
			Source: indeedSource,
			URL:    e.Request.AbsoluteURL(href),
		})
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		reqErr = &FetchError{Source: indeedSource, Status: status, Err: err}
	})

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{Source: indeedSource, Err: err}
		}
	}
	if ctx.Err() != nil {
		return nil, &FetchError{Source: indeedSource, Err: ctx.Err()}
	}
	err := c.Visit(searchURL)
	c.Wait()
	if reqErr != nil {
		// OnError fired with the response status; prefer it over the
		// collector's wrapped error.
		return nil, reqErr
	}
	if err != nil {
		return nil, &FetchError{Source: indeedSource, Err: err}
	}

	out := cards
	if len(out) == 0 {
		out = legacyCards
	}
	if len(out) == 0 {
		out = anchors
	}
	out = dedupeByURL(out)
	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	if len(out) > 0 && dropped > 0 {
		return out, &PartialError{Source: indeedSource, Parsed: len(out), Dropped: dropped}
	}
	return out, nil
}

func dedupeByURL(in []job.Candidate) []job.Candidate {
	seen := map[string]struct{}{}
	out := make([]job.Candidate, 0, len(in))
	for _, c := range in {
		key := strings.TrimSpace(c.URL)
		if key == "" {
			key = strings.ToLower(cleanText(c.Title + "|" + c.Company))
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
