package model

// 名前の一意性は慣習のみ（DB制約なし）。
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(255);not null;index" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}

// 商品とカテゴリの多対多。どちらかが消えたら行も消える。
type ProductCategory struct {
	ProductID  int64 `gorm:"column:product_id;primaryKey" json:"product_id"`
	CategoryID int64 `gorm:"column:category_id;primaryKey" json:"category_id"`

	Product  Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}
