package model

import "time"

// 保管容量。used_spaceは所属する商品のquantity合計と常に一致させる。
type Inventory struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TotalSpace int64     `gorm:"column:total_space;not null" json:"total_space"`
	UsedSpace  int64     `gorm:"column:used_space;not null;default:0" json:"used_space"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Inventory) TableName() string {
	return "inventory"
}

// 空き容量（超過している場合は負になる）
func (i Inventory) FreeSpace() int64 {
	return i.TotalSpace - i.UsedSpace
}

func (i Inventory) OverCapacity() bool {
	return i.UsedSpace > i.TotalSpace
}
