package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"app/internal/handler"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

type Handlers struct {
	Inventory *handler.InventoryHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Health    *handler.HealthHandler
}

// echoの生成とミドルウェア、ルート登録
func New(logger *slog.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))

	RegisterRoutes(e, h)
	return e
}

// ctxが終わったらgraceful shutdown
func Start(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("server shutting down")
	return e.Shutdown(sctx)
}
