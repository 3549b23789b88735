package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobradar/internal/domain/job"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const remotiveSource = "remotive"

// RemotiveAdapter consumes the public JSON listings API. It is the
// only adapter whose source carries explicit requirement skills (tags).
type RemotiveAdapter struct {
	apiBase string
	client  *http.Client
	limiter *rate.Limiter
}

func NewRemotiveAdapter(limiter *rate.Limiter) *RemotiveAdapter {
	return NewRemotiveAdapterWithBaseURL("https://remotive.com", limiter)
}

func NewRemotiveAdapterWithBaseURL(apiBase string, limiter *rate.Limiter) *RemotiveAdapter {
	a := &RemotiveAdapter{apiBase: strings.TrimSpace(apiBase), limiter: limiter}
	if a.apiBase == "" {
		a.apiBase = "https://remotive.com"
	}
	a.client = newHTTPClient(25 * time.Second)
	return a
}

type remotiveJob struct {
	Title            string   `json:"title"`
	CompanyName      string   `json:"company_name"`
	RequiredLocation string   `json:"candidate_required_location"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	URL              string   `json:"url"`
	PublicationDate  string   `json:"publication_date"`
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

func (a *RemotiveAdapter) Name() string { return remotiveSource }

func (a *RemotiveAdapter) Fetch(ctx context.Context, query string, location string, maxResults int) ([]job.Candidate, error) {
	limit := maxResults
	if limit <= 0 {
		limit = 25
	}
	endpoint := fmt.Sprintf("%s/api/remote-jobs?search=%s&limit=%d",
		strings.TrimRight(a.apiBase, "/"),
		url.QueryEscape(strings.TrimSpace(query)),
		limit,
	)

	body, err := httpGet(ctx, a.client, a.limiter, remotiveSource, endpoint)
	if err != nil {
		return nil, err
	}

	var resp remotiveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &FetchError{Source: remotiveSource, Err: err}
	}

	loc := strings.ToLower(strings.TrimSpace(location))
	out := make([]job.Candidate, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		title := cleanText(j.Title)
		if title == "" {
			continue
		}
		if !remotiveLocationMatches(j.RequiredLocation, loc) {
			continue
		}
		out = append(out, job.Candidate{
			Title:       title,
			Company:     cleanText(j.CompanyName),
			Location:    cleanText(j.RequiredLocation),
			Description: htmlToText(j.Description),
			Skills:      trimAll(j.Tags),
			Source:      remotiveSource,
			URL:         strings.TrimSpace(j.URL),
			PostedAt:    strings.TrimSpace(j.PublicationDate),
		})
		if maxResults > 0 && len(out) >= maxResults {
			break
		}
	}
	return out, nil
}

// The API has no location parameter, so the region filter applies
// client-side. Worldwide listings always pass.
func remotiveLocationMatches(required string, wanted string) bool {
	if wanted == "" {
		return true
	}
	required = strings.ToLower(strings.TrimSpace(required))
	if required == "" || strings.Contains(required, "worldwide") || strings.Contains(required, "anywhere") {
		return true
	}
	return strings.Contains(required, wanted)
}

func htmlToText(html string) string {
	html = strings.TrimSpace(html)
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return cleanText(html)
	}
	return cleanText(doc.Text())
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = cleanText(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
