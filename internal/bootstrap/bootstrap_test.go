package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"golang.org/x/net/html"

	"vibecode_spa/internal/domtest"
	"vibecode_spa/internal/logging"
	"vibecode_spa/internal/router"
)

func mountTestApp(t *testing.T, opts ...Option) *echo.Echo {
	t.Helper()

	e := echo.New()
	if _, err := Mount(e, DefaultMountPoint, DefaultRoutes(), opts...); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	return e
}

func get(t *testing.T, e *echo.Echo, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func isDescendant(n, ancestor *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

func TestMountPointValidate(t *testing.T) {
	tests := []struct {
		name string
		root MountPoint
		want error
	}{
		{name: "default", root: DefaultMountPoint},
		{name: "custom", root: "app"},
		{name: "empty", root: "", want: ErrMountPointMissing},
		{name: "whitespace", root: "my root", want: ErrInvalidMountPoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.root.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("Validate() error = %v; want nil", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("Validate() error = %v; want %v", err, tt.want)
			}
		})
	}
}

func TestMountFailsWithoutPrerequisites(t *testing.T) {
	if _, err := Mount(nil, DefaultMountPoint, DefaultRoutes()); !errors.Is(err, ErrNoHost) {
		t.Errorf("Mount(nil host) error = %v; want ErrNoHost", err)
	}
	if _, err := Mount(echo.New(), "", DefaultRoutes()); !errors.Is(err, ErrMountPointMissing) {
		t.Errorf("Mount(empty root) error = %v; want ErrMountPointMissing", err)
	}
	if _, err := Mount(echo.New(), DefaultMountPoint, nil); !errors.Is(err, ErrNoRoutes) {
		t.Errorf("Mount(nil table) error = %v; want ErrNoRoutes", err)
	}
}

func TestServeHome(t *testing.T) {
	e := mountTestApp(t)

	rec := get(t, e, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %d; want 200", rec.Code)
	}

	screen := domtest.Parse(t, rec.Body.String())
	root := screen.GetByID("root")

	heading := screen.GetByRole("heading", regexp.MustCompile(`(?i)vibecode`))
	if domtest.AccessibleName(heading) != "Vibecode SPA" {
		t.Errorf("heading = %q; want Vibecode SPA", domtest.AccessibleName(heading))
	}
	if !isDescendant(heading, root) {
		t.Error("heading is not rendered inside the mount point")
	}

	screen.GetByText(regexp.MustCompile(`AI-safe Vite \+ Supabase template`))

	want := map[string]string{
		"Join our Discord":  "https://discord.gg/xQR6DNtY",
		"Visit our GitHub":  "https://github.com/jigjoy-io",
		"Visit our website": "https://jigjoy.io",
	}
	links := screen.GetAllByRole("link")
	if len(links) != len(want) {
		t.Fatalf("rendered %d links; want %d", len(links), len(want))
	}
	for _, link := range links {
		label := domtest.AccessibleName(link)
		href, _ := domtest.Attr(link, "href")
		if want[label] != href {
			t.Errorf("link %q href = %q; want %q", label, href, want[label])
		}
		if target, _ := domtest.Attr(link, "target"); target != "_blank" {
			t.Errorf("link %q target = %q", label, target)
		}
		if rel, _ := domtest.Attr(link, "rel"); rel != "noopener noreferrer" {
			t.Errorf("link %q rel = %q", label, rel)
		}
	}
}

func TestServeUnmatchedRendersPlaceholder(t *testing.T) {
	e := mountTestApp(t)

	rec := get(t, e, "/does/not/exist")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d; want 404", rec.Code)
	}

	screen := domtest.Parse(t, rec.Body.String())
	screen.GetByID("root")
	screen.GetByRole("heading", regexp.MustCompile(`Page Not Found`))
}

func TestServeCustomNotFound(t *testing.T) {
	custom := func() templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, `<p>nothing here</p>`)
			return err
		})
	}
	e := mountTestApp(t, WithNotFound(custom))

	rec := get(t, e, "/missing")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "nothing here") {
		t.Errorf("GET /missing = %d %q", rec.Code, rec.Body.String())
	}
}

func TestServeStatic(t *testing.T) {
	e := mountTestApp(t)

	rec := get(t, e, "/static/css/app.css")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), ".community") {
		t.Error("stylesheet body missing .community rule")
	}
}

func TestCustomMountPointAndTitle(t *testing.T) {
	e := echo.New()
	if _, err := Mount(e, "app", DefaultRoutes(), WithTitle("Demo")); err != nil {
		t.Fatal(err)
	}

	body := get(t, e, "/").Body.String()
	if !strings.Contains(body, `<div id="app">`) || strings.Contains(body, `id="root"`) {
		t.Errorf("body does not use custom mount point: %q", body)
	}
	if !strings.Contains(body, "<title>Demo</title>") {
		t.Errorf("body does not use custom title: %q", body)
	}
}

func TestStrictModeFlagsImpureRender(t *testing.T) {
	var calls int
	impure := func() templ.Component {
		calls++
		n := calls
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "<p>render %d</p>", n)
			return err
		})
	}
	table := router.MustNew(router.Route{Pattern: "/", Name: "impure", Component: impure})

	var logs bytes.Buffer
	logger, err := logging.New("info", &logs)
	if err != nil {
		t.Fatal(err)
	}

	app, err := New(DefaultMountPoint, table, WithStrictMode(true), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if _, err := app.RenderPath(context.Background(), &out, "/"); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("component invoked %d times; want 2", calls)
	}
	if !strings.Contains(logs.String(), "route=impure") {
		t.Errorf("strict mode did not warn: %q", logs.String())
	}
	if !strings.Contains(out.String(), "render 2") {
		t.Errorf("output %q is not the second render", out.String())
	}
}

func TestStrictModeQuietForPureRender(t *testing.T) {
	var logs bytes.Buffer
	logger, err := logging.New("info", &logs)
	if err != nil {
		t.Fatal(err)
	}

	app, err := New(DefaultMountPoint, DefaultRoutes(), WithStrictMode(true), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := app.RenderPath(context.Background(), io.Discard, "/"); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(logs.String(), "strict mode") {
		t.Errorf("strict mode warned for a pure page: %q", logs.String())
	}
}

func TestRenderPathIsIdempotent(t *testing.T) {
	app, err := New(DefaultMountPoint, DefaultRoutes())
	if err != nil {
		t.Fatal(err)
	}

	var first, second bytes.Buffer
	if _, err := app.RenderPath(context.Background(), &first, "/"); err != nil {
		t.Fatal(err)
	}
	if _, err := app.RenderPath(context.Background(), &second, "/"); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Error("repeated renders of / differ")
	}
}

func TestExport(t *testing.T) {
	app, err := New(DefaultMountPoint, DefaultRoutes())
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	written, err := app.Export(context.Background(), dir)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(written) != 1 || written[0] != "index.html" {
		t.Fatalf("Export() wrote %v; want [index.html]", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	screen := domtest.Parse(t, string(data))
	screen.GetByRole("heading", regexp.MustCompile(`(?i)vibecode`))

	if _, err := os.Stat(filepath.Join(dir, "static", "css", "app.css")); err != nil {
		t.Errorf("stylesheet not exported: %v", err)
	}
}
