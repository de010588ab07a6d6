package handler

import (
	"net/http"
	"strings"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CategoryCreateRequest struct {
	Name string `json:"name"`
}

// /category
type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

// DI
func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/category")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:name", h.products)
	g.DELETE("/:identifier", h.remove)
}

func (h *CategoryHandler) list(c echo.Context) error {
	items, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req CategoryCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "category name is required")
	}

	category, err := h.uc.AddCategory(c.Request().Context(), req.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// IDでも名前でも消せる
func (h *CategoryHandler) remove(c echo.Context) error {
	ident, err := usecase.ParseIdentifier(c.Param("identifier"))
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.RemoveCategory(c.Request().Context(), ident); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) products(c echo.Context) error {
	products, err := h.uc.ProductsInCategory(c.Request().Context(), c.Param("name"))
	if err != nil {
		return writeError(c, err)
	}
	if len(products) == 0 {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no products found in this category"})
	}
	return c.JSON(http.StatusOK, products)
}
