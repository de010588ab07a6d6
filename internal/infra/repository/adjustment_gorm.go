package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type AdjustmentGormRepository struct {
	db *gorm.DB
}

func NewAdjustmentGormRepository(db *gorm.DB) *AdjustmentGormRepository {
	return &AdjustmentGormRepository{db: db}
}

// 調整履歴作成
func (r *AdjustmentGormRepository) Create(ctx context.Context, adj model.QuantityAdjustment) error {
	if err := r.db.WithContext(ctx).Create(&adj).Error; err != nil {
		return err
	}
	return nil
}

// 古い順
func (r *AdjustmentGormRepository) ListByInventory(ctx context.Context, inventoryID int64) ([]model.QuantityAdjustment, error) {
	var logs []model.QuantityAdjustment
	err := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("id asc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
