package handler_test

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductHandler_Upsert_IncreaseAndDelete(t *testing.T) {
	s := newTestServer(t, config.CapacityPolicyAllow)
	inv := s.seedInventory(t, 10)

	rec := s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: 5, InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusOK)
	p := decode[model.Product](t, rec)
	assert.Equal(t, int64(5), p.Quantity)

	rec = s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: -2, InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusOK)
	p = decode[model.Product](t, rec)
	assert.Equal(t, int64(3), p.Quantity)

	//数量以上を減らすと削除
	rec = s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: -7, InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusOK)
	deleted := decode[handler.ProductDeletedResponse](t, rec)
	assert.Equal(t, handler.ProductDeletedResponse{Deleted: true, Name: "Widget", InventoryID: inv.ID}, deleted)

	got, err := s.store.Inventory().FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.UsedSpace)

	//もう無いので404
	rec = s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: -1, InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusNotFound)
}

func TestProductHandler_Upsert_Validation(t *testing.T) {
	s := newTestServer(t, config.CapacityPolicyAllow)
	inv := s.seedInventory(t, 10)

	cases := map[string]handler.ProductUpsertRequest{
		"blank name":    {Name: " ", Quantity: 1, InventoryID: inv.ID},
		"zero quantity": {Name: "Widget", Quantity: 0, InventoryID: inv.ID},
		"bad inventory": {Name: "Widget", Quantity: 1, InventoryID: 0},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			rec := s.doJSON(t, http.MethodPut, "/product", req)
			requireStatus(t, rec, http.StatusBadRequest)
		})
	}

	rec := s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: 1, InventoryID: 999})
	requireStatus(t, rec, http.StatusNotFound)
}

func TestProductHandler_Upsert_QuantityOutOfRange(t *testing.T) {
	s := newTestServer(t, config.CapacityPolicyReject)
	inv := s.seedInventory(t, 100)

	rec := s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: 5, InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusOK)

	rec = s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: math.MinInt64, InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "quantity", decode[handler.ErrorResponse](t, rec).Param)

	rec = s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: math.MaxInt64, InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusBadRequest)

	got, err := s.store.Inventory().FindByID(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.UsedSpace)
}

func TestProductHandler_Upsert_CapacityPolicy(t *testing.T) {
	allow := newTestServer(t, config.CapacityPolicyAllow)
	inv := allow.seedInventory(t, 5)
	rec := allow.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: 8, InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusOK)

	reject := newTestServer(t, config.CapacityPolicyReject)
	inv = reject.seedInventory(t, 5)
	rec = reject.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: 8, InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusBadRequest)
	er := decode[handler.ErrorResponse](t, rec)
	assert.Contains(t, er.Error, "not enough space")
}

func TestProductHandler_List(t *testing.T) {
	s := newTestServer(t, config.CapacityPolicyAllow)
	inv := s.seedInventory(t, 10)

	rec := s.doJSON(t, http.MethodGet, "/product", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Empty(t, decode[[]model.Product](t, rec))

	s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "A", Quantity: 1, InventoryID: inv.ID})
	s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "B", Quantity: 1, InventoryID: inv.ID})

	rec = s.doJSON(t, http.MethodGet, "/product", nil)
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, decode[[]model.Product](t, rec), 2)
}

func TestProductHandler_Reduce(t *testing.T) {
	s := newTestServer(t, config.CapacityPolicyAllow)
	inv := s.seedInventory(t, 10)

	rec := s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: 4, InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusOK)
	p := decode[model.Product](t, rec)
	path := "/product/" + strconv.FormatInt(p.ID, 10) + "/reduce"

	rec = s.doJSON(t, http.MethodPut, path, handler.ReduceQuantityRequest{Amount: 1})
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, int64(3), decode[model.Product](t, rec).Quantity)

	rec = s.doJSON(t, http.MethodPut, path, handler.ReduceQuantityRequest{Amount: 0})
	requireStatus(t, rec, http.StatusBadRequest)
	assert.Equal(t, "amount", decode[handler.ErrorResponse](t, rec).Param)

	rec = s.doJSON(t, http.MethodPut, path, handler.ReduceQuantityRequest{Amount: 3})
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, true, decode[map[string]any](t, rec)["deleted"])

	rec = s.doJSON(t, http.MethodPut, path, handler.ReduceQuantityRequest{Amount: 1})
	requireStatus(t, rec, http.StatusNotFound)
}

func TestProductHandler_AddToCategory(t *testing.T) {
	s := newTestServer(t, config.CapacityPolicyAllow)
	inv := s.seedInventory(t, 10)

	s.doJSON(t, http.MethodPut, "/product", handler.ProductUpsertRequest{Name: "Widget", Quantity: 1, InventoryID: inv.ID})
	rec := s.doJSON(t, http.MethodPost, "/category", handler.CategoryCreateRequest{Name: "Tools"})
	requireStatus(t, rec, http.StatusCreated)

	req := handler.ProductCategoryRequest{ProductName: "Widget", CategoryName: "Tools", InventoryID: inv.ID}
	rec = s.doJSON(t, http.MethodPost, "/product/category", req)
	requireStatus(t, rec, http.StatusOK)
	assert.Equal(t, "Tools", decode[model.Category](t, rec).Name)
	assert.Len(t, s.store.Links(), 1)

	//2回目も重複しない
	rec = s.doJSON(t, http.MethodPost, "/product/category", req)
	requireStatus(t, rec, http.StatusOK)
	assert.Len(t, s.store.Links(), 1)

	rec = s.doJSON(t, http.MethodPost, "/product/category", handler.ProductCategoryRequest{ProductName: "Nope", CategoryName: "Tools", InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusNotFound)

	rec = s.doJSON(t, http.MethodPost, "/product/category", handler.ProductCategoryRequest{ProductName: "Widget", CategoryName: "Nope", InventoryID: inv.ID})
	requireStatus(t, rec, http.StatusNotFound)

	rec = s.doJSON(t, http.MethodPost, "/product/category", handler.ProductCategoryRequest{ProductName: "Widget"})
	requireStatus(t, rec, http.StatusBadRequest)
}
