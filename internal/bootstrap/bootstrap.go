// Package bootstrap attaches the application to its host document and
// installs URL based routing on the HTTP server.
package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"vibecode_spa/internal/handlers"
	"vibecode_spa/internal/logging"
	"vibecode_spa/internal/router"
	"vibecode_spa/web"
	"vibecode_spa/web/templates/pages"
	"vibecode_spa/web/templates/shared"
)

// MountPoint is the id of the element the application is attached to
type MountPoint string

// DefaultMountPoint is the id the host document exposes by default
const DefaultMountPoint MountPoint = "root"

var (
	ErrMountPointMissing = errors.New("mount point missing: host document exposes no element id")
	ErrInvalidMountPoint = errors.New("invalid mount point id")
	ErrNoHost            = errors.New("no host server to mount on")
	ErrNoRoutes          = errors.New("no route table")
)

// Validate checks that m can be used as an HTML id
func (m MountPoint) Validate() error {
	if m == "" {
		return ErrMountPointMissing
	}
	if strings.IndexFunc(string(m), unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidMountPoint, string(m))
	}
	return nil
}

// App renders routed pages into the host document
type App struct {
	root     MountPoint
	table    *router.Table
	title    string
	strict   bool
	notFound func() templ.Component
	logger   *log.Logger
}

// Option configures an App
type Option func(*App)

// WithStrictMode renders every page twice and warns when the two
// renders differ. Only meant for development.
func WithStrictMode(enabled bool) Option {
	return func(a *App) {
		a.strict = enabled
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithNotFound replaces the placeholder rendered for unmatched paths
func WithNotFound(component func() templ.Component) Option {
	return func(a *App) {
		if component != nil {
			a.notFound = component
		}
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(a *App) {
		if title != "" {
			a.title = title
		}
	}
}

// DefaultRoutes is the application's route table
func DefaultRoutes() *router.Table {
	return router.MustNew(
		router.Route{Pattern: "/", Name: "home", Component: pages.HomeRoute},
	)
}

// New builds an App without attaching it to a server
func New(root MountPoint, table *router.Table, opts ...Option) (*App, error) {
	if err := root.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrNoRoutes
	}

	a := &App{
		root:     root,
		table:    table,
		title:    pages.HomeTitle,
		notFound: pages.NotFound,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Mount attaches the application to e. Every GET and HEAD request outside
// /static is resolved through the route table.
func Mount(e *echo.Echo, root MountPoint, table *router.Table, opts ...Option) (*App, error) {
	if e == nil {
		return nil, ErrNoHost
	}

	a, err := New(root, table, opts...)
	if err != nil {
		return nil, err
	}

	e.StaticFS("/static", echo.MustSubFS(web.Static, "static"))

	pageHandler := handlers.NewPageHandler(a)
	methods := []string{http.MethodGet, http.MethodHead}
	e.Match(methods, "/", pageHandler.Serve)
	e.Match(methods, "/*", pageHandler.Serve)

	a.logger.Info("application mounted", "mount", string(a.root), "routes", a.table.Len(), "strict", a.strict)
	return a, nil
}

// Table returns the route table the app resolves against
func (a *App) Table() *router.Table {
	return a.table
}

// RenderPath resolves path and writes the full host document to w.
// Unmatched paths render the not-found placeholder with status 404.
func (a *App) RenderPath(ctx context.Context, w io.Writer, path string) (int, error) {
	status := http.StatusOK
	name := "not-found"
	factory := a.notFound

	if m, ok := a.table.Resolve(path); ok {
		name = m.Route.Name
		factory = m.Route.Component
	} else {
		status = http.StatusNotFound
		a.logger.Debug("no route matched", "path", path)
	}

	page := func() templ.Component {
		return shared.Document(shared.DocumentProps{
			Title:       a.title,
			MountID:     string(a.root),
			Stylesheets: []string{web.StylesheetPath},
		}, factory())
	}

	out, err := a.render(ctx, name, page)
	if err != nil {
		return 0, fmt.Errorf("render route %q: %w", name, err)
	}
	if _, err := w.Write(out); err != nil {
		return 0, err
	}
	return status, nil
}

func (a *App) render(ctx context.Context, name string, page func() templ.Component) ([]byte, error) {
	var first bytes.Buffer
	if err := page().Render(ctx, &first); err != nil {
		return nil, err
	}
	if !a.strict {
		return first.Bytes(), nil
	}

	var second bytes.Buffer
	if err := page().Render(ctx, &second); err != nil {
		return nil, err
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		a.logger.Warn("strict mode: render is not pure, repeated renders differ", "route", name)
	}
	return second.Bytes(), nil
}
