package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobradar/internal/domain/job"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const glassdoorSource = "glassdoor"

// GlassdoorAdapter parses the static listing markup first; when every
// static strategy comes up empty and headless mode is on, one
// browser-rendered pass runs as the final fallback.
type GlassdoorAdapter struct {
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	headless bool
}

func NewGlassdoorAdapter(limiter *rate.Limiter, headless bool) *GlassdoorAdapter {
	return NewGlassdoorAdapterWithBaseURL("https://www.glassdoor.com", limiter, headless)
}

func NewGlassdoorAdapterWithBaseURL(baseURL string, limiter *rate.Limiter, headless bool) *GlassdoorAdapter {
	a := &GlassdoorAdapter{baseURL: strings.TrimSpace(baseURL), limiter: limiter, headless: headless}
	if a.baseURL == "" {
		a.baseURL = "https://www.glassdoor.com"
	}
	a.client = newHTTPClient(25 * time.Second)
	return a
}

func (a *GlassdoorAdapter) Name() string { return glassdoorSource }

func (a *GlassdoorAdapter) Fetch(ctx context.Context, query string, location string, maxResults int) ([]job.Candidate, error) {
	searchURL := fmt.Sprintf("%s/Job/jobs.htm?sc.keyword=%s&locKeyword=%s",
		strings.TrimRight(a.baseURL, "/"),
		url.QueryEscape(strings.TrimSpace(query)),
		url.QueryEscape(strings.TrimSpace(location)),
	)

	body, err := httpGet(ctx, a.client, a.limiter, glassdoorSource, searchURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Source: glassdoorSource, Err: err}
	}

	out, _ := runStrategies(doc, a.baseURL, glassdoorStrategies())
	if len(out) == 0 && a.headless {
		out, err = a.fetchListingsHeadless(ctx, searchURL)
		if err != nil {
			return nil, err
		}
	}
	out = dedupeByURL(out)
	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	return out, nil
}

func glassdoorStrategies() []parseStrategy {
	return []parseStrategy{
		{
			name: "job-listing",
			run: func(doc *goquery.Document, baseURL string) []job.Candidate {
				var out []job.Candidate
				doc.Find("li[data-test=jobListing]").Each(func(_ int, s *goquery.Selection) {
					title := cleanText(s.Find("a[data-test=job-title]").Text())
					if title == "" {
						return
					}
					href, _ := s.Find("a[data-test=job-title]").Attr("href")
					out = append(out, job.Candidate{
						Title:       title,
						Company:     cleanText(s.Find("span.EmployerProfile_compactEmployerName__9MGcV, div[data-test=employer-short-name]").Text()),
						Location:    cleanText(s.Find("div[data-test=emp-location]").Text()),
						Description: cleanText(s.Find("div[data-test=descSnippet]").Text()),
						Source:      glassdoorSource,
						URL:         absoluteURL(baseURL, href),
						PostedAt:    cleanText(s.Find("div[data-test=job-age]").Text()),
					})
				})
				return out
			},
		},
		{
			name: "job-card",
			run: func(doc *goquery.Document, baseURL string) []job.Candidate {
				var out []job.Candidate
				doc.Find("li.react-job-listing, div.jobCard").Each(func(_ int, s *goquery.Selection) {
					title := pickNonEmpty(cleanText(s.Find("a.jobLink span").Text()), cleanText(s.Find("a").First().Text()))
					if title == "" {
						return
					}
					href, _ := s.Find("a").First().Attr("href")
					out = append(out, job.Candidate{
						Title:    title,
						Company:  cleanText(s.Find("div.jobHeader, span.employerName").Text()),
						Location: cleanText(s.Find("span.loc, div.location").Text()),
						Source:   glassdoorSource,
						URL:      absoluteURL(baseURL, href),
					})
				})
				return out
			},
		},
	}
}
