package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/infra/memory"
	"app/internal/lock"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type LockerMock struct{ mock.Mock }

func (m *LockerMock) Lock(ctx context.Context, key string) (lock.Unlock, error) {
	args := m.Called(ctx, key)
	u, _ := args.Get(0).(lock.Unlock)
	return u, args.Error(1)
}

// トランザクション内の特定の書き込みを失敗させる
type faultyTx struct {
	store       *memory.Store
	adjustErr   error
	linkErr     error
	deleteErr   error
	commitCount int
}

func (f *faultyTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return f.store.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := fn(faultyRepos{TxRepos: r, tx: f}); err != nil {
			return err
		}
		//txMuの中なので競合しない
		f.commitCount++
		return nil
	})
}

type faultyRepos struct {
	repo.TxRepos
	tx *faultyTx
}

func (r faultyRepos) Adjustments() repo.AdjustmentRepository {
	return faultyAdjustments{AdjustmentRepository: r.TxRepos.Adjustments(), err: r.tx.adjustErr}
}

func (r faultyRepos) Categories() repo.CategoryRepository {
	return faultyCategories{CategoryRepository: r.TxRepos.Categories(), err: r.tx.linkErr, deleteErr: r.tx.deleteErr}
}

type faultyAdjustments struct {
	repo.AdjustmentRepository
	err error
}

func (a faultyAdjustments) Create(ctx context.Context, adj model.QuantityAdjustment) error {
	if a.err != nil {
		return a.err
	}
	return a.AdjustmentRepository.Create(ctx, adj)
}

type faultyCategories struct {
	repo.CategoryRepository
	err       error
	deleteErr error
}

// 削除した後に失敗させる（途中まで書いた状態）
func (c faultyCategories) Delete(ctx context.Context, id int64) error {
	if err := c.CategoryRepository.Delete(ctx, id); err != nil {
		return err
	}
	return c.deleteErr
}

func (c faultyCategories) AddProduct(ctx context.Context, link model.ProductCategory) error {
	if c.err != nil {
		return c.err
	}
	return c.CategoryRepository.AddProduct(ctx, link)
}

type fixture struct {
	store      *memory.Store
	tx         *faultyTx
	products   *usecase.ProductUsecase
	inventory  *usecase.InventoryUsecase
	categories *usecase.CategoryUsecase
}

func newFixture(t *testing.T, policy config.CapacityPolicy) *fixture {
	t.Helper()

	s := memory.NewStore()
	tx := &faultyTx{store: s}
	l := lock.NewLocalLocker()
	return &fixture{
		store:      s,
		tx:         tx,
		products:   usecase.NewProductUsecase(s.Products(), s.Inventory(), tx, l, policy),
		inventory:  usecase.NewInventoryUsecase(s.Inventory(), s.Adjustments(), tx, l),
		categories: usecase.NewCategoryUsecase(s.Categories(), tx),
	}
}

func (f *fixture) newInventory(t *testing.T, total int64) int64 {
	t.Helper()
	inv, err := f.inventory.AddInventory(context.Background(), total)
	require.NoError(t, err)
	return inv.ID
}

func (f *fixture) getInventory(t *testing.T, inventoryID int64) (model.Inventory, bool) {
	t.Helper()
	inv, err := f.store.Inventory().FindByID(context.Background(), inventoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Inventory{}, false
	}
	require.NoError(t, err)
	return inv, true
}

func (f *fixture) usedSpace(t *testing.T, inventoryID int64) int64 {
	t.Helper()
	inv, ok := f.getInventory(t, inventoryID)
	require.True(t, ok)
	return inv.UsedSpace
}

func (f *fixture) productCount(t *testing.T) int {
	t.Helper()
	all, err := f.store.Products().List(context.Background())
	require.NoError(t, err)
	return len(all)
}

func (f *fixture) linkCount() int {
	return len(f.store.Links())
}

// used_space == Σquantity、quantity > 0
func (f *fixture) assertInvariants(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	invs, err := f.store.Inventory().List(ctx)
	require.NoError(t, err)
	products, err := f.store.Products().List(ctx)
	require.NoError(t, err)

	sums := map[int64]int64{}
	for _, p := range products {
		assert.Greater(t, p.Quantity, int64(0), fmt.Sprintf("product %q", p.Name))
		sums[p.InventoryID] += p.Quantity
	}
	for _, inv := range invs {
		assert.Equal(t, sums[inv.ID], inv.UsedSpace, fmt.Sprintf("inventory %d", inv.ID))
	}
}

func assertErrKind(t *testing.T, err error, kind error, status int) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, status, he.Status)
}
