package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/memory"
	"app/internal/lock"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	e     *echo.Echo
	store *memory.Store
}

func newTestServer(t *testing.T, policy config.CapacityPolicy) *testServer {
	t.Helper()

	store := memory.NewStore()
	locker := lock.NewLocalLocker()

	inventoryUC := usecase.NewInventoryUsecase(store.Inventory(), store.Adjustments(), store, locker)
	productUC := usecase.NewProductUsecase(store.Products(), store.Inventory(), store, locker, policy)
	categoryUC := usecase.NewCategoryUsecase(store.Categories(), store)

	e := echo.New()
	handler.NewInventoryHandler(inventoryUC).RegisterRoutes(e)
	handler.NewProductHandler(productUC, categoryUC).RegisterRoutes(e)
	handler.NewCategoryHandler(categoryUC).RegisterRoutes(e)

	return &testServer{e: e, store: store}
}

func (s *testServer) doJSON(t *testing.T, method string, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

// 事前データはstoreに直接入れる
func (s *testServer) seedInventory(t *testing.T, total int64) model.Inventory {
	t.Helper()
	inv, err := s.store.Inventory().Create(context.Background(), model.Inventory{TotalSpace: total})
	require.NoError(t, err)
	return inv
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equalf(t, want, rec.Code, "body=%s", rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
