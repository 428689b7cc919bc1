package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageRenderer renders the document for a request path and reports the
// status code it should be served with
type PageRenderer interface {
	RenderPath(ctx context.Context, w io.Writer, path string) (int, error)
}

// PageHandler serves routed pages
type PageHandler struct {
	renderer PageRenderer
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(renderer PageRenderer) *PageHandler {
	return &PageHandler{renderer: renderer}
}

// Serve renders the page matched by the request path
func (h *PageHandler) Serve(c echo.Context) error {
	var buf bytes.Buffer
	status, err := h.renderer.RenderPath(c.Request().Context(), &buf, c.Request().URL.Path)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render page").SetInternal(err)
	}

	if c.Request().Method == http.MethodHead {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		return c.NoContent(status)
	}
	return c.HTMLBlob(status, buf.Bytes())
}
