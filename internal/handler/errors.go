package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Param string `json:"param,omitempty"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message, Param: he.Param})
	}

	//ロック待ちのタイムアウト
	if errors.Is(err, context.DeadlineExceeded) {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "inventory busy"})
	}

	//500
	slog.ErrorContext(c.Request().Context(), "request failed", "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// 正の整数のみ
func parsePositiveID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
