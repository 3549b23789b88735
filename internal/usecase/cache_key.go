package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

type reportCacheKeyInput struct {
	Skills   []string `json:"skills"`
	Location string   `json:"location"`
}

func normalizeCacheValue(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ReportCacheKey is stable across skill ordering and casing so the
// same profile does not fan out into distinct cache entries.
func ReportCacheKey(profileSkills []string, location string) string {
	skills := make([]string, 0, len(profileSkills))
	for _, s := range profileSkills {
		s = normalizeCacheValue(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}
	sort.Strings(skills)

	in := reportCacheKeyInput{
		Skills:   skills,
		Location: normalizeCacheValue(location),
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "match:report:" + hex.EncodeToString(sum[:])
}
