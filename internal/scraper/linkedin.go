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

const linkedinSource = "linkedin"

type LinkedInAdapter struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewLinkedInAdapter(limiter *rate.Limiter) *LinkedInAdapter {
	return NewLinkedInAdapterWithBaseURL("https://www.linkedin.com", limiter)
}

func NewLinkedInAdapterWithBaseURL(baseURL string, limiter *rate.Limiter) *LinkedInAdapter {
	a := &LinkedInAdapter{baseURL: strings.TrimSpace(baseURL), limiter: limiter}
	if a.baseURL == "" {
		a.baseURL = "https://www.linkedin.com"
	}
	a.client = newHTTPClient(25 * time.Second)
	return a
}

func (a *LinkedInAdapter) Name() string { return linkedinSource }

func (a *LinkedInAdapter) Fetch(ctx context.Context, query string, location string, maxResults int) ([]job.Candidate, error) {
	searchURL := fmt.Sprintf("%s/jobs/search?keywords=%s&location=%s",
		strings.TrimRight(a.baseURL, "/"),
		url.QueryEscape(strings.TrimSpace(query)),
		url.QueryEscape(strings.TrimSpace(location)),
	)

	body, err := httpGet(ctx, a.client, a.limiter, linkedinSource, searchURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{Source: linkedinSource, Err: err}
	}

	out, _ := runStrategies(doc, a.baseURL, linkedinStrategies())
	out = dedupeByURL(out)
	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	return out, nil
}

func linkedinStrategies() []parseStrategy {
	return []parseStrategy{
		{
			name: "base-card",
			run: func(doc *goquery.Document, baseURL string) []job.Candidate {
				var out []job.Candidate
				doc.Find("div.base-card").Each(func(_ int, s *goquery.Selection) {
					title := cleanText(s.Find("h3.base-search-card__title").Text())
					if title == "" {
						return
					}
					href, _ := s.Find("a.base-card__full-link").Attr("href")
					out = append(out, job.Candidate{
						Title:    title,
						Company:  cleanText(s.Find("h4.base-search-card__subtitle").Text()),
						Location: cleanText(s.Find("span.job-search-card__location").Text()),
						Source:   linkedinSource,
						URL:      absoluteURL(baseURL, href),
						PostedAt: cleanText(s.Find("time").Text()),
					})
				})
				return out
			},
		},
		{
			name: "result-card",
			run: func(doc *goquery.Document, baseURL string) []job.Candidate {
				var out []job.Candidate
				doc.Find("li.result-card, div.job-search-card").Each(func(_ int, s *goquery.Selection) {
					title := cleanText(s.Find("h3").First().Text())
					if title == "" {
						return
					}
					href, _ := s.Find("a").First().Attr("href")
					out = append(out, job.Candidate{
						Title:    title,
						Company:  cleanText(s.Find("h4").First().Text()),
						Location: cleanText(s.Find("span.job-result-card__location, span.job-search-card__location").Text()),
						Source:   linkedinSource,
						URL:      absoluteURL(baseURL, href),
					})
				})
				return out
			},
		},
		{
			name: "view-anchors",
			run: func(doc *goquery.Document, baseURL string) []job.Candidate {
				var out []job.Candidate
				doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
					href, _ := s.Attr("href")
					if !strings.Contains(href, "/jobs/view/") {
						return
					}
					title := cleanText(s.Text())
					if title == "" {
						return
					}
					out = append(out, job.Candidate{
						Title:  title,
						Source: linkedinSource,
						URL:    absoluteURL(baseURL, href),
					})
				})
				return out
			},
		},
	}
}
