package server

import "github.com/labstack/echo/v4"

func RegisterRoutes(e *echo.Echo, h Handlers) {
	h.Inventory.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Category.RegisterRoutes(e)
	if h.Health != nil {
		e.GET("/healthz", h.Health.Check)
	}
}
