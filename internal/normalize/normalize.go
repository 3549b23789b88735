package normalize

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"

	"jobradar/internal/domain/job"
)

// Normalize canonicalizes candidates and merges duplicates across
// sources. Candidates without a title are malformed extractions and
// are dropped silently. Output preserves first-seen order of dedup
// keys, which downstream ranking relies on as its final tie-break.
func Normalize(candidates []job.Candidate) []job.Record {
	byKey := make(map[string]int, len(candidates))
	out := make([]job.Record, 0, len(candidates))

	for _, c := range candidates {
		title := Canonical(c.Title)
		if title == "" {
			continue
		}
		company := Canonical(c.Company)
		location := Canonical(c.Location)
		key := DedupKey(title, company, location)

		rec := job.Record{
			Title:       title,
			Company:     company,
			Location:    location,
			Description: strings.TrimSpace(c.Description),
			Skills:      canonicalSkills(c.Skills),
			Sources:     []string{strings.TrimSpace(c.Source)},
			URL:         CanonicalURL(c.URL),
			PostedAt:    strings.TrimSpace(c.PostedAt),
			DedupKey:    key,
		}

		if idx, ok := byKey[key]; ok {
			out[idx] = merge(out[idx], rec)
			continue
		}
		byKey[key] = len(out)
		out = append(out, rec)
	}

	return out
}

// merge folds a colliding record into the survivor. The newcomer's
// content wins only when it has requirement skills and the incumbent
// has none, or, skill presence being equal, a strictly longer
// description. Source identifiers accumulate in first-seen order.
func merge(base job.Record, next job.Record) job.Record {
	if preferNext(base, next) {
		sources := base.Sources
		next.Sources = appendSources(sources, next.Sources)
		return next
	}
	base.Sources = appendSources(base.Sources, next.Sources)
	return base
}

func preferNext(base, next job.Record) bool {
	if len(next.Skills) > 0 && len(base.Skills) == 0 {
		return true
	}
	if len(next.Skills) == 0 && len(base.Skills) > 0 {
		return false
	}
	return len(next.Description) > len(base.Description)
}

func appendSources(dst []string, add []string) []string {
	for _, s := range add {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		dup := false
		for _, have := range dst {
			if have == s {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, s)
		}
	}
	return dst
}

// Canonical lowercases and whitespace-collapses a field.
func Canonical(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func canonicalSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, s := range in {
		s = Canonical(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func DedupKey(title, company, location string) string {
	h := sha1.Sum([]byte(title + "|" + company + "|" + location))
	return hex.EncodeToString(h[:])
}

var trackingParams = map[string]struct{}{
	"ref":        {},
	"fbclid":     {},
	"gclid":      {},
	"trk":        {},
	"trackingid": {},
	"mc_cid":     {},
	"mc_eid":     {},
}

// CanonicalURL strips tracking parameters and the fragment so the same
// posting reached through different campaigns compares equal.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") {
			q.Del(k)
			continue
		}
		if _, ok := trackingParams[lk]; ok {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String()
}
