package extract

import (
	"sort"
	"strings"
)

// defaultLexicon is the keyword vocabulary the heuristic scans for.
// Mixed technical and soft skills, matching the extraction service's
// own taxonomy closely enough for degraded-mode matching.
var defaultLexicon = []string{
	"python", "go", "golang", "java", "javascript", "typescript", "c++", "c#",
	"sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"html", "css", "react", "vue", "angular", "node.js", "django", "flask",
	"docker", "kubernetes", "terraform", "aws", "gcp", "azure", "linux",
	"git", "ci/cd", "rest", "graphql", "grpc", "kafka", "rabbitmq",
	"machine learning", "data analysis", "pandas", "numpy", "excel",
	"tableau", "power bi", "spark", "airflow", "etl",
	"project management", "agile", "scrum", "jira",
	"communication", "leadership", "teamwork", "problem solving",
	"customer service", "time management", "critical thinking",
	"pos systems", "inventory management", "salesforce", "crm",
	"accounting", "bookkeeping", "quickbooks", "copywriting", "seo",
	"photoshop", "illustrator", "figma", "ui design", "ux design",
}

// HeuristicSkills scans free text for lexicon terms on word
// boundaries. Output is ordered by mention count, then name, so
// repeated runs over the same text agree.
func HeuristicSkills(text string, lexicon []string) []string {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	if len(lexicon) == 0 {
		lexicon = defaultLexicon
	}

	type hit struct {
		name  string
		count int
	}
	hits := make([]hit, 0)
	seen := map[string]struct{}{}
	for _, term := range lexicon {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		c := countMention(text, term)
		if c <= 0 {
			continue
		}
		hits = append(hits, hit{name: term, count: c})
	}
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].count == hits[j].count {
			return hits[i].name < hits[j].name
		}
		return hits[i].count > hits[j].count
	})

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}
	return out
}

// countMention counts word-bounded occurrences of term. A plain scan
// rather than a regex: non-overlapping regex matches consume the
// delimiter and undercount adjacent repeats.
func countMention(textLower, term string) int {
	if term == "" {
		return 0
	}
	count := 0
	for i := 0; ; {
		j := strings.Index(textLower[i:], term)
		if j < 0 {
			return count
		}
		start := i + j
		end := start + len(term)
		if boundaryAt(textLower, start-1) && boundaryAt(textLower, end) {
			count++
		}
		i = start + 1
	}
}

// boundaryAt reports whether position idx sits outside a word. Out of
// range counts as a boundary.
func boundaryAt(s string, idx int) bool {
	if idx < 0 || idx >= len(s) {
		return true
	}
	b := s[idx]
	return !(b >= 'a' && b <= 'z') && !(b >= '0' && b <= '9')
}
