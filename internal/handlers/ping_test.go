package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memohai/linehook/internal/healthcheck"
)

type staticChecker struct {
	status string
}

func (c staticChecker) ListChecks(context.Context) []healthcheck.CheckResult {
	return []healthcheck.CheckResult{{ID: "test", Type: "test", Status: c.status}}
}

func serve(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestPingHandlerRoutes(t *testing.T) {
	t.Parallel()

	e := echo.New()
	NewPingHandler(nil).Register(e)

	rec := serve(e, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, RootGreeting, rec.Body.String())

	rec = serve(e, http.MethodGet, "/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(e, http.MethodHead, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPingHandlerHealth(t *testing.T) {
	t.Parallel()

	e := echo.New()
	NewPingHandler(nil, staticChecker{status: healthcheck.StatusWarn}).Register(e)
	rec := serve(e, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var report healthcheck.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, healthcheck.StatusWarn, report.Status)
	assert.Len(t, report.Checks, 1)

	e = echo.New()
	NewPingHandler(nil, staticChecker{status: healthcheck.StatusOK}, staticChecker{status: healthcheck.StatusError}).Register(e)
	rec = serve(e, http.MethodGet, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStaticHandlerServesMounts(t *testing.T) {
	t.Parallel()

	staticDir := t.TempDir()
	downloadDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "logo.png"), []byte("logo"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(downloadDir, "100.jpg"), []byte("jpeg"), 0o644))

	e := echo.New()
	NewStaticHandler(nil,
		StaticMount{Prefix: "/static", Dir: staticDir},
		StaticMount{Prefix: "downloaded/", Dir: downloadDir},
		StaticMount{Prefix: "/skipped", Dir: ""},
	).Register(e)

	rec := serve(e, http.MethodGet, "/static/logo.png")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logo", rec.Body.String())

	rec = serve(e, http.MethodGet, "/downloaded/100.jpg")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jpeg", rec.Body.String())

	rec = serve(e, http.MethodGet, "/downloaded/missing.jpg")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
