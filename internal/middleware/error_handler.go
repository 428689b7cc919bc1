package middleware

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"vibecode_spa/internal/logging"
	"vibecode_spa/web"
	"vibecode_spa/web/templates/pages"
	"vibecode_spa/web/templates/shared"
)

// ErrorHandlerConfig configures the error handler's host document
type ErrorHandlerConfig struct {
	Title   string
	MountID string
	Logger  *log.Logger
}

// CustomErrorHandler creates a custom error handler for Echo
func CustomErrorHandler(cfg ErrorHandlerConfig) echo.HTTPErrorHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, errorTitle, errorMessage := describeError(err)

		if code >= http.StatusInternalServerError {
			cfg.Logger.Error("request failed", "method", c.Request().Method, "path", c.Request().URL.Path, "status", code, "err", err)
		} else {
			cfg.Logger.Debug("request rejected", "method", c.Request().Method, "path", c.Request().URL.Path, "status", code, "err", err)
		}

		props := pages.ErrorPageProps{
			ErrorTitle:   errorTitle,
			ErrorMessage: errorMessage,
			BackLink:     "/",
			BackText:     "Go back home",
		}
		doc := shared.Document(shared.DocumentProps{
			Title:       errorTitle + " · " + cfg.Title,
			MountID:     cfg.MountID,
			Stylesheets: []string{web.StylesheetPath},
		}, pages.ErrorPage(props))

		if c.Request().Method == http.MethodHead {
			if herr := c.NoContent(code); herr != nil {
				cfg.Logger.Error("failed to write error response", "err", herr)
			}
			return
		}

		if renderErr := renderTo(c, code, doc); renderErr != nil {
			// Fallback to plain text if template fails
			cfg.Logger.Error("failed to render error page", "err", fmt.Errorf("render error page: %w", renderErr))
			_ = c.String(code, errorMessage)
		}
	}
}

func describeError(err error) (int, string, string) {
	code := http.StatusInternalServerError
	errorTitle := "Internal Server Error"
	errorMessage := ""

	he, ok := err.(*echo.HTTPError)
	if !ok {
		return code, errorTitle, "Something went wrong. Please try again later."
	}

	code = he.Code
	if msg, ok := he.Message.(string); ok && msg != "" && msg != http.StatusText(code) {
		errorMessage = msg
	}

	switch code {
	case http.StatusNotFound:
		errorTitle = "Page Not Found"
		if errorMessage == "" {
			errorMessage = "The page you're looking for doesn't exist."
		}
	case http.StatusMethodNotAllowed:
		errorTitle = "Method Not Allowed"
		if errorMessage == "" {
			errorMessage = "This page can only be viewed."
		}
	case http.StatusBadRequest:
		errorTitle = "Bad Request"
		if errorMessage == "" {
			errorMessage = "The request could not be processed."
		}
	default:
		if code < http.StatusInternalServerError {
			errorTitle = http.StatusText(code)
		}
		if errorMessage == "" {
			errorMessage = "Something went wrong. Please try again later."
		}
	}

	return code, errorTitle, errorMessage
}

func renderTo(c echo.Context, code int, doc templ.Component) error {
	var buf bytes.Buffer
	if err := doc.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}
