package model

import "time"

// quantity<=0 の商品は保存しない（削除される）。
// (name, inventory_id) は ProductUsecase の upsert で一意に保たれる。
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;index:idx_products_name_inventory" json:"name"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	InventoryID int64     `gorm:"column:inventory_id;not null;index:idx_products_name_inventory" json:"inventory_id"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
