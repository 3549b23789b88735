package routes

import (
	"jobradar/internal/delivery/http/handler"
	"jobradar/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health  *handler.HealthHandler
	match   *handler.MatchHandler
	profile *handler.ProfileHandler
	ws      *ws.Handler
}

func NewRegistry(health *handler.HealthHandler, match *handler.MatchHandler, profile *handler.ProfileHandler, wsHandler *ws.Handler) *Registry {
	return &Registry{
		health:  health,
		match:   match,
		profile: profile,
		ws:      wsHandler,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.health != nil {
		r.health.RegisterRoutes(app)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	if r.match != nil {
		r.match.RegisterRoutes(v1)
	}
	if r.profile != nil {
		r.profile.RegisterRoutes(v1)
	}
	if r.ws != nil {
		v1.Get("/ws/matches", r.ws.HandleMatchesWS)
	}
}
