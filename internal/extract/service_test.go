package extract

import (
	"context"
	"errors"
	"testing"

	"jobradar/internal/domain/job"
)

type fakeClient struct {
	skills []string
	err    error
}

func (f *fakeClient) ExtractSkills(_ context.Context, _ string) ([]string, error) {
	return f.skills, f.err
}

func (f *fakeClient) GenerateCoverLetter(_ context.Context, _ []string, _ job.Record) (string, error) {
	return "", f.err
}

func TestProfileSkillsPrefersClient(t *testing.T) {
	s := NewService(&fakeClient{skills: []string{"Go", "SQL"}}, nil)

	got, err := s.ProfileSkills(context.Background(), "irrelevant")
	if err != nil {
		t.Fatalf("ProfileSkills error: %v", err)
	}
	if len(got) != 2 || got[0] != "Go" {
		t.Errorf("skills = %v, want the client's answer", got)
	}
}

func TestProfileSkillsFallsBackOnExtractionError(t *testing.T) {
	s := NewService(&fakeClient{err: &ExtractionError{Status: 500}}, nil)

	got, err := s.ProfileSkills(context.Background(), "worked with excel and customer service daily")
	if err != nil {
		t.Fatalf("ProfileSkills error: %v", err)
	}

	found := map[string]bool{}
	for _, skill := range got {
		found[skill] = true
	}
	if !found["excel"] || !found["customer service"] {
		t.Errorf("heuristic skills = %v", got)
	}
}

func TestProfileSkillsPropagatesOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	s := NewService(&fakeClient{err: boom}, nil)

	if _, err := s.ProfileSkills(context.Background(), "text"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want the client error passed through", err)
	}
}

func TestProfileSkillsNoClientNoMatches(t *testing.T) {
	s := NewService(nil, nil)

	if _, err := s.ProfileSkills(context.Background(), "nothing recognizable here"); !errors.Is(err, ErrNoSkills) {
		t.Errorf("err = %v, want ErrNoSkills", err)
	}
}

func TestRequirementSkillsBackfill(t *testing.T) {
	s := NewService(nil, nil)

	got := s.RequirementSkills("Must know SQL and Docker. SQL experience preferred.")
	if len(got) < 2 {
		t.Fatalf("skills = %v, want sql and docker", got)
	}
	if got[0] != "sql" {
		t.Errorf("most-mentioned skill = %q, want sql first", got[0])
	}
}
