package extract

import (
	"reflect"
	"testing"
)

func TestHeuristicSkillsWordBoundaries(t *testing.T) {
	// "go" inside "cargo" or "going" must not count.
	got := HeuristicSkills("cargo handling, going places, we use Go here", []string{"go"})
	if !reflect.DeepEqual(got, []string{"go"}) {
		t.Errorf("skills = %v, want exactly [go]", got)
	}

	if got := HeuristicSkills("cargo and going only", []string{"go"}); len(got) != 0 {
		t.Errorf("skills = %v, want none", got)
	}
}

func TestHeuristicSkillsMultiWordTerms(t *testing.T) {
	got := HeuristicSkills("strong customer service background, pos systems daily", nil)

	found := map[string]bool{}
	for _, s := range got {
		found[s] = true
	}
	if !found["customer service"] || !found["pos systems"] {
		t.Errorf("skills = %v", got)
	}
}

func TestHeuristicSkillsOrderedByMentions(t *testing.T) {
	text := "sql reports, sql tuning, sql everywhere, some excel"
	got := HeuristicSkills(text, []string{"excel", "sql"})
	if !reflect.DeepEqual(got, []string{"sql", "excel"}) {
		t.Errorf("skills = %v, want sql before excel", got)
	}
}

func TestHeuristicSkillsCountsAdjacentRepeats(t *testing.T) {
	// Back-to-back mentions separated by one delimiter must all count:
	// sql appears 3 times here and has to outrank excel's 2.
	got := HeuristicSkills("sql sql sql, excel and excel", []string{"excel", "sql"})
	if !reflect.DeepEqual(got, []string{"sql", "excel"}) {
		t.Errorf("skills = %v, want sql ranked above excel", got)
	}
}

func TestHeuristicSkillsTiesSortByName(t *testing.T) {
	got := HeuristicSkills("docker once, excel once", []string{"excel", "docker"})
	if !reflect.DeepEqual(got, []string{"docker", "excel"}) {
		t.Errorf("skills = %v, want alphabetical on ties", got)
	}
}

func TestHeuristicSkillsEmptyText(t *testing.T) {
	if got := HeuristicSkills("   ", nil); got != nil {
		t.Errorf("skills = %v, want nil", got)
	}
}
