// Package bootstrap wires configuration into the pipeline components shared
// by the server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"cv-generator/internal/adapter/profilefile"
	repo "cv-generator/internal/adapter/repository"
	"cv-generator/internal/config"
	"cv-generator/internal/infrastructure/migration"
	"cv-generator/internal/metrics"
	"cv-generator/internal/output"
	"cv-generator/internal/prompt"
	"cv-generator/internal/render"
	"cv-generator/internal/usecase"
	"cv-generator/pkg/ai"
	infra "cv-generator/pkg/infrastructure"

	"github.com/jackc/pgx/v4/pgxpool"
)

// App holds the long-lived dependencies of one process.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Pool      *pgxpool.Pool
	Output    *output.Manager
	Pipeline  *render.Pipeline
	Profiles  usecase.ProfileStore
	Processor *usecase.Processor

	closers []func()
}

// Build prepares everything needed to run the generation pipeline. m may be
// nil when metrics are not exported.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*App, error) {
	if err := cfg.RequireGeneration(); err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, Metrics: m}

	if cfg.DatabaseURL != "" {
		pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		app.closers = append(app.closers, pool.Close)
		if err := migration.RunMigrations(ctx, pool); err != nil {
			app.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		app.Pool = pool
	}

	profiles, err := app.profileStore()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Profiles = profiles

	gen, err := app.generator(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}

	builder, err := prompt.NewBuilder(prompt.Variant(cfg.Generation.PromptVariant))
	if err != nil {
		app.Close()
		return nil, &config.Error{Key: "PROMPT_VARIANT", Message: err.Error()}
	}

	if app.Pipeline, err = NewPipeline(cfg); err != nil {
		app.Close()
		return nil, err
	}
	if app.Output, err = NewOutputManager(ctx, cfg, m, logger); err != nil {
		app.Close()
		return nil, err
	}

	deps := usecase.Dependencies{
		Profiles:  profiles,
		Generator: gen,
		Prompts:   builder,
		Pipeline:  app.Pipeline,
		Output:    app.Output,
		Logger:    logger,
	}
	if app.Pool != nil {
		deps.Applications = repo.NewApplicationsRepo(app.Pool)
	}
	if m != nil {
		deps.Recorder = m
	}

	app.Processor = usecase.NewProcessor(deps, usecase.Options{
		Generation: ai.Options{
			Temperature:     cfg.Generation.Temperature,
			MaxOutputTokens: cfg.Generation.MaxOutputTokens,
		},
		MinDescriptionLength: cfg.JobDescriptionMinLength,
		TargetLanguage:       cfg.Generation.TargetLanguage,
		KeepMarkdown:         cfg.Output.KeepMarkdown,
		PublicBaseURL:        cfg.PublicBaseURL,
	})
	return app, nil
}

// Close releases backend clients and the database pool in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// profileStore prefers PROFILE_FILE and falls back to the database.
func (a *App) profileStore() (usecase.ProfileStore, error) {
	switch {
	case a.Config.ProfileFile != "":
		return profilefile.NewStore(a.Config.ProfileFile), nil
	case a.Pool != nil:
		return repo.NewProfileRepo(a.Pool), nil
	default:
		return nil, &config.Error{Key: "PROFILE_FILE", Message: "no profile store configured (set PROFILE_FILE or DATABASE_URL)"}
	}
}

// generator builds the backend chain: Gemini first when configured, then
// OpenAI as fallback.
func (a *App) generator(ctx context.Context) (*ai.Client, error) {
	cfg := a.Config
	var backends []ai.Backend

	if cfg.Gemini.ProjectID != "" {
		g, err := ai.NewGeminiBackend(ctx, cfg.Gemini.ProjectID, cfg.Gemini.Location, cfg.Gemini.Model)
		if err != nil {
			return nil, fmt.Errorf("create gemini backend: %w", err)
		}
		a.closers = append(a.closers, func() {
			if err := g.Close(); err != nil {
				a.Logger.Warn("closing gemini client", "error", err)
			}
		})
		backends = append(backends, g)
	}
	if cfg.OpenAI.APIKey != "" {
		o, err := ai.NewOpenAIBackend(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout)
		if err != nil {
			return nil, fmt.Errorf("create openai backend: %w", err)
		}
		backends = append(backends, o)
	}

	names := make([]string, 0, len(backends))
	for _, b := range backends {
		names = append(names, b.Name())
	}
	a.Logger.Info("generation backends configured", "order", names)

	client := ai.NewClient(backends...).WithLogger(a.Logger)
	if a.Metrics != nil {
		client.WithRecorder(a.Metrics)
	}
	return client, nil
}

// NewPipeline builds the render pipeline on headless Chrome.
func NewPipeline(cfg *config.Config) (*render.Pipeline, error) {
	r, err := infra.NewChromedpRenderer(infra.RendererOptions{
		ExecPath: cfg.Render.ChromePath,
		Timeout:  cfg.Render.Timeout,
		PageSize: cfg.Render.PageSize,
		Margin:   cfg.Render.PageMargin,
	})
	if err != nil {
		return nil, &config.Error{Key: "CHROME_PATH", Message: err.Error()}
	}
	return render.NewPipeline(r), nil
}

// NewOutputManager builds the artifact manager on OUTPUT_DIR, with the MinIO
// bucket as a mirror when configured.
func NewOutputManager(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*output.Manager, error) {
	var mirrors []output.Store
	if cfg.MinIO.Enabled() {
		store, err := output.NewMinioStore(ctx, output.MinioConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			UseSSL:    cfg.MinIO.UseSSL,
			Prefix:    cfg.MinIO.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("init artifact mirror: %w", err)
		}
		logger.Info("artifact mirror enabled", "endpoint", cfg.MinIO.Endpoint, "bucket", cfg.MinIO.Bucket)
		mirrors = append(mirrors, store)
	}

	mgr := output.NewManager(output.NewLocalStore(cfg.Output.Dir), cfg.Output.RetentionPerType, mirrors...)
	if m != nil {
		mgr.WithRecorder(m)
	}
	return mgr, nil
}
