package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AddInventoryRequest struct {
	TotalSpace int64 `json:"total_space"`
}

type UpdateTotalSpaceRequest struct {
	InventoryID   int64 `json:"inventory_id"`
	NewTotalSpace int64 `json:"new_total_space"`
}

// /inventory
type InventoryHandler struct {
	uc *usecase.InventoryUsecase
}

// DI
func NewInventoryHandler(uc *usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func (h *InventoryHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/inventory")
	g.GET("", h.list)
	g.POST("", h.add)
	g.PUT("", h.updateTotalSpace)
	g.GET("/:id", h.products)
	g.GET("/:id/adjustments", h.adjustments)
	g.DELETE("/:id", h.remove)
}

func (h *InventoryHandler) list(c echo.Context) error {
	items, err := h.uc.ListInventories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *InventoryHandler) products(c echo.Context) error {
	id, ok := parsePositiveID(c.Param("id"))
	if !ok {
		return badRequest(c, "invalid inventory id")
	}

	products, err := h.uc.ProductsOf(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if len(products) == 0 {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no products found for this inventory"})
	}
	return c.JSON(http.StatusOK, products)
}

func (h *InventoryHandler) adjustments(c echo.Context) error {
	id, ok := parsePositiveID(c.Param("id"))
	if !ok {
		return badRequest(c, "invalid inventory id")
	}

	logs, err := h.uc.Adjustments(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *InventoryHandler) add(c echo.Context) error {
	var req AddInventoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.TotalSpace <= 0 {
		return badRequest(c, "invalid total space value")
	}

	inv, err := h.uc.AddInventory(c.Request().Context(), req.TotalSpace)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, inv)
}

func (h *InventoryHandler) updateTotalSpace(c echo.Context) error {
	var req UpdateTotalSpaceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.InventoryID <= 0 || req.NewTotalSpace <= 0 {
		return badRequest(c, "invalid request data")
	}

	inv, err := h.uc.UpdateTotalSpace(c.Request().Context(), req.InventoryID, req.NewTotalSpace)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *InventoryHandler) remove(c echo.Context) error {
	id, ok := parsePositiveID(c.Param("id"))
	if !ok {
		return badRequest(c, "invalid inventory id")
	}

	if err := h.uc.RemoveInventory(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
