package app

import (
	"fmt"
	"strconv"

	"jobradar/internal/config"
	"jobradar/internal/delivery/http/handler"
	"jobradar/internal/delivery/http/middleware"
	"jobradar/internal/delivery/http/routes"
	"jobradar/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// App is the assembled process: the fiber server plus the container it
// was built from.
type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, wires the HTTP surface and starts the
// websocket hub. The returned cleanup releases every backend the
// container opened.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	healthHandler := handler.NewHealthHandler(c.Runs)
	matchHandler := handler.NewMatchHandler(c.Usecase, c.Runs, c.Logger)
	profileHandler := handler.NewProfileHandler(c.Extractor)
	wsHandler := ws.NewHandler(c.Hub, c.Logger)

	routes.NewRegistry(healthHandler, matchHandler, profileHandler, wsHandler).Register(app)

	go c.Hub.Run()

	cleanup := func() error {
		c.Close()
		return nil
	}

	return &App{Fiber: app, Container: c}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return "", fmt.Errorf("invalid HTTP port %q", port)
	}
	return ":" + port, nil
}
