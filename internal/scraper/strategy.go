package scraper

import (
	"strings"

	"jobradar/internal/domain/job"

	"github.com/PuerkitoBio/goquery"
)

// parseStrategy is a stateless extraction pass over fetched markup.
// Strategies are tried in order; the first one yielding candidates
// wins. An exhausted list means the page layout changed, which is
// expected drift, not a failure.
type parseStrategy struct {
	name string
	run  func(doc *goquery.Document, baseURL string) []job.Candidate
}

func runStrategies(doc *goquery.Document, baseURL string, strategies []parseStrategy) ([]job.Candidate, string) {
	if doc == nil {
		return nil, ""
	}
	for _, st := range strategies {
		if st.run == nil {
			continue
		}
		if out := st.run(doc, baseURL); len(out) > 0 {
			return out, st.name
		}
	}
	return nil, ""
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func absoluteURL(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return base + "/" + href
}
