package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cv-generator/internal/domain"
	"cv-generator/internal/metrics"
	"cv-generator/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProcessor struct{ mock.Mock }

func (m *mockProcessor) Process(ctx context.Context, job domain.JobPosting) (*usecase.ApplicationResult, error) {
	args := m.Called(ctx, job)
	res, _ := args.Get(0).(*usecase.ApplicationResult)
	return res, args.Error(1)
}

type mockProfiles struct{ mock.Mock }

func (m *mockProfiles) LoadProfile(ctx context.Context) (domain.ProfileSnapshot, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(domain.ProfileSnapshot)
	return p, args.Error(1)
}

type testServer struct {
	proc     *mockProcessor
	profiles *mockProfiles
	dir  string
	m    *metrics.Metrics
	app  *fiber.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	s := &testServer{proc: new(mockProcessor), profiles: new(mockProfiles), dir: t.TempDir(), m: m}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.app = NewApp(NewHandler(s.proc, s.profiles, s.dir, "unknown"), logger, m, reg)
	return s
}

func postJSON(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestGenerateApplication(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := newTestServer(t)
		url := "http://localhost:3000/output/cv_Go_20240501_120000.pdf"
		res := &usecase.ApplicationResult{Status: domain.StatusSuccess, CVMarkdown: "# Jane\n", Files: usecase.Files{CVPDF: &url}}
		s.proc.On("Process", mock.Anything, domain.JobPosting{Description: "Go role", Source: "LinkedIn"}).Return(res, nil).Once()

		resp, err := s.app.Test(postJSON(`{"job_description":" Go role ","job_source":"LinkedIn"}`), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode(t, resp)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "# Jane\n", body["cv_md"])
		files := body["files"].(map[string]any)
		assert.Equal(t, url, files["cv_pdf"])
		assert.Nil(t, files["merged_pdf"])
		s.proc.AssertExpectations(t)
	})

	t.Run("ad_source accepted", func(t *testing.T) {
		s := newTestServer(t)
		s.proc.On("Process", mock.Anything, mock.MatchedBy(func(j domain.JobPosting) bool { return j.Source == "Indeed" })).
			Return(&usecase.ApplicationResult{Status: domain.StatusSuccess}, nil).Once()

		resp, err := s.app.Test(postJSON(`{"job_description":"Go role","ad_source":"Indeed"}`), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		s.proc.AssertExpectations(t)
	})

	t.Run("default source", func(t *testing.T) {
		s := newTestServer(t)
		s.proc.On("Process", mock.Anything, mock.MatchedBy(func(j domain.JobPosting) bool { return j.Source == "unknown" })).
			Return(&usecase.ApplicationResult{Status: domain.StatusSuccess}, nil).Once()

		resp, err := s.app.Test(postJSON(`{"job_description":"Go role"}`), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		s.proc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		s := newTestServer(t)
		s.proc.On("Process", mock.Anything, mock.Anything).
			Return(nil, &domain.InputValidationError{Field: "job_description", Message: "must not be empty"}).Once()

		req := postJSON(`{"job_description":""}`)
		req.Header.Set(RequestIDHeader, "req-123")
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "req-123", resp.Header.Get(RequestIDHeader))

		body := decode(t, resp)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "job_description: must not be empty", body["message"])
		assert.Equal(t, "req-123", body["request_id"])
	})

	t.Run("invalid payload", func(t *testing.T) {
		s := newTestServer(t)
		resp, err := s.app.Test(postJSON(`{not json`), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		s.proc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
	})

	t.Run("no profile", func(t *testing.T) {
		s := newTestServer(t)
		s.proc.On("Process", mock.Anything, mock.Anything).Return(nil, domain.ErrNoProfile).Once()

		resp, err := s.app.Test(postJSON(`{"job_description":"Go role"}`), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "no CV data found", decode(t, resp)["message"])
	})

	t.Run("generation failure", func(t *testing.T) {
		s := newTestServer(t)
		fail := &domain.GenerationFailure{Stage: domain.StageCV, Backend: "openai", Cause: errors.New("boom")}
		s.proc.On("Process", mock.Anything, mock.Anything).Return(nil, fail).Once()

		resp, err := s.app.Test(postJSON(`{"job_description":"Go role"}`), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decode(t, resp)
		assert.Equal(t, "error", body["status"])
		assert.NotEmpty(t, body["request_id"])
		assert.Equal(t, 1.0, testutil.ToFloat64(s.m.HTTPRequests.WithLabelValues("POST", "/applications", "500")))
	})
}

func TestServeOutput(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.dir, "cv_Go_20240501_120000.pdf"), []byte("%PDF-1.7 test"), 0o644))

	t.Run("existing file", func(t *testing.T) {
		resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/output/cv_Go_20240501_120000.pdf", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		data, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "%PDF-1.7 test", string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/output/nope.pdf", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "error", decode(t, resp)["status"])
	})

	t.Run("traversal rejected", func(t *testing.T) {
		resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/output/..%2F..%2Fetc%2Fpasswd", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("profile", func(t *testing.T) {
		s := newTestServer(t)
		profile := domain.ProfileSnapshot{
			PersonalInfo: domain.PersonalInfo{FullName: "Jane Doe", Email: "jane@example.com"},
			Experience:   []domain.ExperienceEntry{{Title: "Engineer", Company: "Acme"}},
		}
		s.profiles.On("LoadProfile", mock.Anything).Return(profile, nil).Once()

		resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/profile", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decode(t, resp)
		info := body["personal_info"].(map[string]any)
		assert.Equal(t, "Jane Doe", info["full_name"])
		require.Len(t, body["experience"], 1)
		s.profiles.AssertExpectations(t)
	})

	t.Run("empty profile", func(t *testing.T) {
		s := newTestServer(t)
		s.profiles.On("LoadProfile", mock.Anything).Return(domain.ProfileSnapshot{}, nil).Once()

		resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/profile", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "no CV data found", decode(t, resp)["message"])
	})

	t.Run("store failure", func(t *testing.T) {
		s := newTestServer(t)
		s.profiles.On("LoadProfile", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/profile", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHealthzAndMetrics(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(data), `cvgen_http_requests_total{method="GET",path="/healthz",status="200"} 1`)
}
