package match

import "testing"

func TestTokenSetScorer(t *testing.T) {
	s := TokenSetScorer{}

	cases := []struct {
		a, b string
		want func(int) bool
		desc string
	}{
		{"excel", "Excel", func(v int) bool { return v == 100 }, "case insensitive exact"},
		{"customer service", "Service, Customer", func(v int) bool { return v >= 80 }, "word order insensitive"},
		{"  sql  ", "sql", func(v int) bool { return v == 100 }, "whitespace trimmed"},
		{"inventory management", "pos systems", func(v int) bool { return v < 80 }, "unrelated skills stay low"},
		{"", "excel", func(v int) bool { return v == 0 }, "empty input"},
	}

	for _, tc := range cases {
		got := s.Similarity(tc.a, tc.b)
		if got < 0 || got > 100 {
			t.Errorf("%s: similarity %d out of range", tc.desc, got)
		}
		if !tc.want(got) {
			t.Errorf("%s: Similarity(%q, %q) = %d", tc.desc, tc.a, tc.b, got)
		}
	}
}
