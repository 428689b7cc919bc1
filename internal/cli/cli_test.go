package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vibecode_spa/internal/config"
	"vibecode_spa/internal/logging"
)

func setTestEnv(t *testing.T) {
	t.Helper()

	// Keep a developer's .env out of the test run
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("MOUNT_ID", "")
	t.Setenv("APP_TITLE", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stderr)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRoutesCommand(t *testing.T) {
	setTestEnv(t)

	out, err := execute(t, "routes")
	if err != nil {
		t.Fatalf("routes error = %v", err)
	}
	if !strings.Contains(out, "PATTERN") || !strings.Contains(out, "home") {
		t.Errorf("routes output = %q", out)
	}
}

func TestExportCommand(t *testing.T) {
	setTestEnv(t)
	dir := filepath.Join(t.TempDir(), "dist")

	out, err := execute(t, "export", "--out", dir)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if strings.TrimSpace(out) != "index.html" {
		t.Errorf("export output = %q; want index.html", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("index.html not written: %v", err)
	}
}

func TestInvalidConfigFails(t *testing.T) {
	setTestEnv(t)
	t.Setenv("APP_ENV", "staging")

	if _, err := execute(t, "routes"); err == nil {
		t.Error("routes with invalid APP_ENV succeeded; want error")
	}
}

func TestInvalidMountPointIsFatal(t *testing.T) {
	setTestEnv(t)
	t.Setenv("MOUNT_ID", "my root")

	if _, err := execute(t, "export", "--out", t.TempDir()); err == nil {
		t.Error("export with invalid mount point succeeded; want error")
	}
}

func newTestRuntime(t *testing.T) *runtime {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	return &runtime{cfg: cfg, logger: logging.Discard()}
}

func TestServerHandlesRequests(t *testing.T) {
	setTestEnv(t)

	rt := newTestRuntime(t)
	e, err := rt.newServer()
	if err != nil {
		t.Fatalf("newServer() error = %v", err)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d", rec.Code)
	}
	if rec.Header().Get("Referrer-Policy") != "no-referrer" {
		t.Error("isolation headers not installed")
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST / status = %d; want 405", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Method Not Allowed") {
		t.Errorf("POST / body missing error page: %q", rec.Body.String())
	}
}
