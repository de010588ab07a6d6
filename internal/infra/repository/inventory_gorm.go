package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

func (r *InventoryGormRepository) List(ctx context.Context) ([]model.Inventory, error) {
	var items []model.Inventory
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *InventoryGormRepository) FindByID(ctx context.Context, id int64) (model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).First(&inv, id).Error
	if isNotFound(err) {
		return model.Inventory{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

// SELECT ... FOR UPDATE
func (r *InventoryGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Inventory, error) {
	var inv model.Inventory
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&inv).Error
	if isNotFound(err) {
		return model.Inventory{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

func (r *InventoryGormRepository) Create(ctx context.Context, inv model.Inventory) (model.Inventory, error) {
	if err := r.db.WithContext(ctx).Create(&inv).Error; err != nil {
		return model.Inventory{}, err
	}
	return inv, nil
}

func (r *InventoryGormRepository) Update(ctx context.Context, inv model.Inventory) error {
	res := r.db.WithContext(ctx).Model(&model.Inventory{}).Where("id = ?", inv.ID).Updates(map[string]interface{}{
		"total_space": inv.TotalSpace,
		"used_space":  inv.UsedSpace,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品は切り離さない（呼び出し側の責任）
func (r *InventoryGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Inventory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *InventoryGormRepository) ListProducts(ctx context.Context, inventoryID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("id asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
