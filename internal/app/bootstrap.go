package app

import (
	"context"
	"fmt"
	"strings"

	"lynxhire/internal/config"
	"lynxhire/internal/delivery/http/handler"
	"lynxhire/internal/delivery/http/middleware"
	"lynxhire/internal/delivery/http/routes"
	v1 "lynxhire/internal/delivery/http/routes/v1"
	"lynxhire/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// bodyLimit leaves room for multipart overhead on top of the 5 MB upload cap.
const bodyLimit = 6 * 1024 * 1024

type App struct {
	Fiber *fiber.App
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: bodyLimit,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

// Bootstrap builds the container, starts the realtime hub and returns the
// HTTP app together with a cleanup func that releases everything.
func Bootstrap(cfg config.Config, logger logrus.FieldLogger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(cfg, c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger logrus.FieldLogger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger.WithField("component", "http"))
	errMw := middleware.NewErrorMiddleware(logger.WithField("component", "http"))
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(c.JWT)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Redis),
		v1.Handlers{
			AuthMW:       authMw,
			Auth:         handler.NewAuthHandler(c.Auth),
			Profile:      handler.NewProfileHandler(c.Users),
			Jobs:         handler.NewJobsHandler(c.Jobs, c.Descriptions),
			Applications: handler.NewApplicationHandler(c.Applications, c.Matching),
			SavedJobs:    handler.NewSavedJobHandler(c.SavedJobs),
			Billing:      handler.NewBillingHandler(c.Billing),
			Messages:     handler.NewMessageHandler(c.Messages),
			Dashboard:    handler.NewDashboardHandler(c.Dashboard),
			Realtime:     ws.NewHandler(c.Hub, authMw, c.Logger.WithField("component", "ws")),
		},
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
