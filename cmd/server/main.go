package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "cv-generator/internal/adapter/http"
	"cv-generator/internal/bootstrap"
	"cv-generator/internal/config"
	"cv-generator/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := bootstrap.NewLogger(os.Stdout, cfg.LogLevel, true)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}

	app, err := bootstrap.Build(ctx, cfg, logger, m)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	h := httpadapter.NewHandler(app.Processor, app.Profiles, cfg.Output.Dir, cfg.DefaultJobSource)
	server := httpadapter.NewApp(h, logger, m, reg)

	go func() {
		logger.Info("server listening", "port", cfg.Port, "output_dir", cfg.Output.Dir)
		if err := server.Listen(":" + cfg.Port); err != nil {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := server.ShutdownWithTimeout(30 * time.Second); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
