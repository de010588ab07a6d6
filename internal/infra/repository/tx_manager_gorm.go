package repository

import (
	"context"

	repo "app/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	inventory   repo.InventoryRepository
	products    repo.ProductRepository
	categories  repo.CategoryRepository
	adjustments repo.AdjustmentRepository
}

func (r *txReposGorm) Inventory() repo.InventoryRepository    { return r.inventory }
func (r *txReposGorm) Products() repo.ProductRepository       { return r.products }
func (r *txReposGorm) Categories() repo.CategoryRepository    { return r.categories }
func (r *txReposGorm) Adjustments() repo.AdjustmentRepository { return r.adjustments }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			inventory:   NewInventoryGormRepository(tx),
			products:    NewProductGormRepository(tx),
			categories:  NewCategoryGormRepository(tx),
			adjustments: NewAdjustmentGormRepository(tx),
		}
		return fn(r)
	})
}
