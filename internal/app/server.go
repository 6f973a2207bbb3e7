package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	instructionhttp "github.com/goliatone/go-betriebsanweisung/adapters/http"
	instructionrouter "github.com/goliatone/go-betriebsanweisung/adapters/router"
	"github.com/goliatone/go-betriebsanweisung/config"
	"github.com/goliatone/go-router"
)

const shutdownTimeout = 10 * time.Second

// Serve runs the configured HTTP transport until ctx is canceled.
func (a *App) Serve(ctx context.Context) error {
	addr := a.Config.Addr()
	var serve func() error
	var shutdown func(context.Context) error

	switch a.Config.Server.Transport {
	case config.TransportNetHTTP:
		mux := http.NewServeMux()
		instructionhttp.NewHandler(a.APIConfig()).RegisterRoutes(mux)
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		serve = func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
		shutdown = srv.Shutdown
	default:
		srv := a.FiberServer()
		serve = func() error { return srv.Serve(addr) }
		shutdown = srv.Shutdown
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Infof("serving %s on http://%s", a.Config.App.Name, addr)
		errCh <- serve()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Logger.Infof("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// FiberServer builds the go-router fiber server with all routes registered.
func (a *App) FiberServer() router.Server[*fiber.App] {
	srv := router.NewFiberAdapter(a.fiberAppInitializer())
	instructionrouter.NewHandler(a.APIConfig()).RegisterRoutes(srv.Router())
	return srv
}

func (a *App) fiberAppInitializer() func(*fiber.App) *fiber.App {
	return func(*fiber.App) *fiber.App {
		fiberApp := fiber.New(fiber.Config{
			AppName:               a.Config.App.Name,
			DisableStartupMessage: true,
			BodyLimit:             fiberBodyLimit(a.Config.Server.MaxBodyKB),
		})

		fiberApp.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
		}))
		fiberApp.Use(cors.New(cors.Config{
			AllowOrigins:  "*",
			AllowMethods:  "GET,POST,OPTIONS",
			AllowHeaders:  "Content-Type",
			ExposeHeaders: "Content-Disposition,X-Document-Id",
		}))

		return fiberApp
	}
}

// fiberBodyLimit lets one byte past the API limit through so the
// controller, not fiber, reports oversized records.
func fiberBodyLimit(kb int) int {
	if kb <= 0 {
		return 0
	}
	return kb<<10 + 1
}
