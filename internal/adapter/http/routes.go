package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the fiber application with middleware and routes wired.
// rec and gatherer may be nil, in which case requests are not counted and
// /metrics is not mounted.
func NewApp(h *Handler, logger *slog.Logger, rec HTTPRecorder, gatherer prometheus.Gatherer) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler(logger),
		DisableStartupMessage: true,
	})

	app.Use(RequestID())
	app.Use(AccessLog(logger))
	if rec != nil {
		app.Use(Metrics(rec))
	}

	app.Post("/applications", h.GenerateApplication)
	app.Get("/output/:filename", h.ServeOutput)
	app.Get("/profile", h.GetProfile)
	app.Get("/healthz", h.Healthz)
	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return app
}
