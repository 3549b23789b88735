package extract

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrNoSkills means neither the AI service nor the heuristic produced
// a usable skill set; matching cannot proceed without one.
var ErrNoSkills = errors.New("no skills could be extracted from the text")

// Service derives skill sets from free text. It prefers the AI
// extractor and falls back to the keyword heuristic on any
// ExtractionError, degrading accuracy rather than blocking.
type Service struct {
	client  Client
	lexicon []string
	logger  *zap.Logger
}

func NewService(client Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, lexicon: defaultLexicon, logger: logger}
}

// ProfileSkills extracts a profile's skill set from resume or
// LinkedIn text.
func (s *Service) ProfileSkills(ctx context.Context, text string) ([]string, error) {
	if s.client != nil {
		skills, err := s.client.ExtractSkills(ctx, text)
		if err == nil {
			return skills, nil
		}
		var exErr *ExtractionError
		if !errors.As(err, &exErr) {
			return nil, err
		}
		s.logger.Warn("extraction service failed, using heuristic", zap.Error(err))
	}

	skills := HeuristicSkills(text, s.lexicon)
	if len(skills) == 0 {
		return nil, ErrNoSkills
	}
	return skills, nil
}

// RequirementSkills backfills a job's requirement set from its
// description when the source adapter produced none.
func (s *Service) RequirementSkills(description string) []string {
	return HeuristicSkills(description, s.lexicon)
}
