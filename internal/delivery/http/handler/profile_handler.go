package handler

import (
	"errors"
	"strings"

	"jobradar/internal/delivery/http/dto"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/delivery/http/response"
	"jobradar/internal/extract"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	extractor *extract.Service
}

func NewProfileHandler(extractor *extract.Service) *ProfileHandler {
	return &ProfileHandler{extractor: extractor}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/profile/skills", h.ExtractSkills)
}

func (h *ProfileHandler) ExtractSkills(c fiber.Ctx) error {
	var req dto.ExtractSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if strings.TrimSpace(req.Text) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "Profile text is empty", nil, nil)
	}

	skills, err := h.extractor.ProfileSkills(c.Context(), req.Text)
	if err != nil {
		if errors.Is(err, extract.ErrNoSkills) {
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No skills found in profile text", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ExtractSkillsResponse{Skills: skills})
}
