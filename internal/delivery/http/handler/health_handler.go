package handler

import (
	"time"

	"jobradar/internal/delivery/http/response"
	"jobradar/internal/repository"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	runs repository.MatchRunRepository
}

// NewHealthHandler takes the optional match-run repository; when a
// database is configured the health payload carries a 24h run count.
func NewHealthHandler(runs repository.MatchRunRepository) *HealthHandler {
	return &HealthHandler{runs: runs}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}
	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	data := fiber.Map{"status": "up"}
	if h.runs != nil {
		if n, err := h.runs.CountSince(c.Context(), time.Now().Add(-24*time.Hour)); err == nil {
			data["match_runs_24h"] = n
		}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}
