package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"vibecode_spa/internal/bootstrap"
	"vibecode_spa/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := rt.newServer()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				rt.logger.Info("Server starting", "addr", rt.cfg.Addr(), "env", rt.cfg.Env)
				errCh <- e.Start(rt.cfg.Addr())
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			rt.logger.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

func (rt *runtime) newServer() (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestLogger(rt.logger))
	e.Use(echomw.Recover())
	e.Use(middleware.IsolationHeaders())

	e.HTTPErrorHandler = middleware.CustomErrorHandler(middleware.ErrorHandlerConfig{
		Title:   rt.cfg.Title,
		MountID: rt.cfg.MountID,
		Logger:  rt.logger,
	})

	if _, err := bootstrap.Mount(e, bootstrap.MountPoint(rt.cfg.MountID), bootstrap.DefaultRoutes(), rt.options()...); err != nil {
		return nil, fmt.Errorf("mount application: %w", err)
	}
	return e, nil
}
