package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// Scorer computes string similarity on a 0-100 scale. The matcher's
// scoring logic is independent of the algorithm behind it.
type Scorer interface {
	Similarity(a, b string) int
}

// TokenSetScorer is the default: token-set ratio, insensitive to case
// and word order ("Customer Service" vs "service, customer" → 100).
type TokenSetScorer struct{}

func (TokenSetScorer) Similarity(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}
	return fuzzy.TokenSetRatio(a, b)
}
