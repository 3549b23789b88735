package scraper

import (
	"context"
	"strings"
	"time"

	"jobradar/internal/domain/job"

	"github.com/chromedp/chromedp"
)

type headlessLink struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// fetchListingsHeadless renders the search page in headless Chrome and
// harvests listing anchors. Used only when static parsing yields zero
// results, which signals client-side rendering rather than an outage.
func (a *GlassdoorAdapter) fetchListingsHeadless(ctx context.Context, searchURL string) ([]job.Candidate, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(browserHeaders()["User-Agent"]),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	var links []headlessLink
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(searchURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(`Array.from(document.querySelectorAll('a[href*="/job-listing/"]'))
			.map(a => ({href: a.getAttribute('href'), text: (a.textContent || '').trim()}))`, &links),
	)
	if err != nil {
		return nil, &FetchError{Source: glassdoorSource, Err: err}
	}

	base := strings.TrimRight(a.baseURL, "/")
	seen := map[string]struct{}{}
	out := make([]job.Candidate, 0, len(links))
	for _, l := range links {
		href := strings.TrimSpace(l.Href)
		title := cleanText(l.Text)
		if href == "" || title == "" {
			continue
		}
		abs := absoluteURL(base, href)
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		out = append(out, job.Candidate{
			Title:  title,
			Source: glassdoorSource,
			URL:    abs,
		})
	}
	return out, nil
}
