package model

import "time"

//商品数量の変更履歴

type QuantityAdjustment struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	InventoryID    int64     `gorm:"not null;index" json:"inventory_id"`
	ProductName    string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Delta          int64     `gorm:"not null" json:"delta"`
	QuantityAfter  int64     `gorm:"not null" json:"quantity_after"`
	UsedSpaceAfter int64     `gorm:"not null" json:"used_space_after"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
