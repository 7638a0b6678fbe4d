package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"cv-generator/internal/adapter/profilefile"
	"cv-generator/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "warn", true)
	l.Info("hidden")
	l.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	buf.Reset()
	NewLogger(&buf, "nonsense", false).Info("info is default")
	assert.Contains(t, buf.String(), "info is default")
}

func TestBuild_RequiresGenerationBackend(t *testing.T) {
	cfg := &config.Config{}
	_, err := Build(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	var cerr *config.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "GEMINI_PROJECT_ID", cerr.Key)
}

func TestProfileStoreSelection(t *testing.T) {
	app := &App{Config: &config.Config{ProfileFile: "profile.yaml"}}
	store, err := app.profileStore()
	require.NoError(t, err)
	assert.IsType(t, &profilefile.Store{}, store)

	app = &App{Config: &config.Config{}}
	_, err = app.profileStore()
	var cerr *config.Error
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "PROFILE_FILE", cerr.Key)
}

func TestNewOutputManager_LocalOnly(t *testing.T) {
	cfg := &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), RetentionPerType: 3}}
	mgr, err := NewOutputManager(context.Background(), cfg, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Equal(t, 3, mgr.Limit())

	path, err := mgr.WriteArtifact(context.Background(), []byte("%PDF"), "cv_Job_20240101_000000.pdf")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestNewPipeline_RejectsBadPageSize(t *testing.T) {
	cfg := &config.Config{Render: config.RenderConfig{PageSize: "tabloid-ish", PageMargin: "1in"}}
	_, err := NewPipeline(cfg)
	var cerr *config.Error
	require.True(t, errors.As(err, &cerr))
}
