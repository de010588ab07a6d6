package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Check(t *testing.T) {
	cases := map[string]struct {
		ping handler.Pinger
		want int
	}{
		"ok":   {ping: func(context.Context) error { return nil }, want: http.StatusOK},
		"down": {ping: func(context.Context) error { return errors.New("conn refused") }, want: http.StatusServiceUnavailable},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			e.GET("/healthz", handler.NewHealthHandler(tc.ping).Check)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
