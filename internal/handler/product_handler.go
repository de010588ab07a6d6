package handler

import (
	"net/http"
	"strings"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// quantityは符号付きの差分（負なら減らす）
type ProductUpsertRequest struct {
	Name        string `json:"name"`
	Quantity    int64  `json:"quantity"`
	InventoryID int64  `json:"inventory_id"`
}

type ReduceQuantityRequest struct {
	Amount int64 `json:"amount"`
}

type ProductCategoryRequest struct {
	ProductName  string `json:"product_name"`
	CategoryName string `json:"category_name"`
	InventoryID  int64  `json:"inventory_id"`
}

// 数量0以下になって削除されたとき
type ProductDeletedResponse struct {
	Deleted     bool   `json:"deleted"`
	Name        string `json:"name"`
	InventoryID int64  `json:"inventory_id"`
}

// /product
type ProductHandler struct {
	uc         *usecase.ProductUsecase
	categoryUC *usecase.CategoryUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, categoryUC *usecase.CategoryUsecase) *ProductHandler {
	return &ProductHandler{uc: uc, categoryUC: categoryUC}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/product")
	g.GET("", h.list)
	g.PUT("", h.upsert)
	g.PUT("/:id/reduce", h.reduce)
	g.POST("/category", h.addToCategory)
}

func (h *ProductHandler) list(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) upsert(c echo.Context) error {
	var req ProductUpsertRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "product name is required")
	}
	if req.InventoryID <= 0 {
		return badRequest(c, "invalid inventory id")
	}
	if req.Quantity == 0 {
		return badRequest(c, "quantity must not be zero")
	}

	p, err := h.uc.UpsertQuantity(c.Request().Context(), usecase.ProductInput{
		Name:        req.Name,
		Quantity:    req.Quantity,
		InventoryID: req.InventoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	if p == nil {
		return c.JSON(http.StatusOK, ProductDeletedResponse{
			Deleted:     true,
			Name:        req.Name,
			InventoryID: req.InventoryID,
		})
	}
	return c.JSON(http.StatusOK, p)
}

// 商品IDで数量を減らす
func (h *ProductHandler) reduce(c echo.Context) error {
	id, ok := parsePositiveID(c.Param("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var req ReduceQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	p, err := h.uc.ReduceQuantity(c.Request().Context(), id, req.Amount)
	if err != nil {
		return writeError(c, err)
	}
	if p == nil {
		return c.JSON(http.StatusOK, map[string]any{"deleted": true, "id": id})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) addToCategory(c echo.Context) error {
	var req ProductCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if strings.TrimSpace(req.ProductName) == "" || strings.TrimSpace(req.CategoryName) == "" || req.InventoryID <= 0 {
		return badRequest(c, "product name, category name and inventory id are required")
	}

	category, err := h.categoryUC.LinkByNames(c.Request().Context(), usecase.LinkInput{
		ProductName:  req.ProductName,
		CategoryName: req.CategoryName,
		InventoryID:  req.InventoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}
