package handler

import (
	"context"
	"errors"
	"time"

	"jobradar/internal/delivery/http/dto"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/delivery/http/response"
	"jobradar/internal/domain/job"
	"jobradar/internal/repository"
	"jobradar/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type MatchHandler struct {
	uc     usecase.MatchUsecase
	runs   repository.MatchRunRepository
	logger *zap.Logger
}

// NewMatchHandler wires the core pipeline behind the HTTP contract.
// runs may be nil when no database is configured; persistence is a
// collaborator concern, never the pipeline's.
func NewMatchHandler(uc usecase.MatchUsecase, runs repository.MatchRunRepository, logger *zap.Logger) *MatchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchHandler{uc: uc, runs: runs, logger: logger}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/match", h.Match)
}

func (h *MatchHandler) Match(c fiber.Ctx) error {
	var req dto.MatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	start := time.Now()
	report, err := h.uc.ScrapeAndMatch(c.Context(), req.Skills, req.Location)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyProfile) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Profile skill set is empty", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	h.recordRun(req, report, time.Since(start))

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.MatchResponse{
		RankedJobs:   report.RankedJobs,
		Gaps:         report.Gaps,
		SourceErrors: report.SourceErrors,
	})
}

func (h *MatchHandler) recordRun(req dto.MatchRequest, report job.Report, took time.Duration) {
	if h.runs == nil {
		return
	}
	// Audit write; it must not delay or fail the response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := h.runs.Save(ctx, repository.MatchRun{
			Location:     req.Location,
			SkillCount:   len(req.Skills),
			JobCount:     len(report.RankedJobs),
			GapCount:     len(report.Gaps),
			SourceErrors: len(report.SourceErrors),
			Duration:     took,
		})
		if err != nil {
			h.logger.Warn("match run persist failed", zap.Error(err))
		}
	}()
}
