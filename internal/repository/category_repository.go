package repository

import (
	"app/internal/domain/model"
	"context"
)

// カテゴリと商品-カテゴリ関連の永続化。
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	// 名前の完全一致。複数あれば最小IDを返す
	FindByName(ctx context.Context, name string) (model.Category, error)

	Create(ctx context.Context, c model.Category) (model.Category, error)
	// 紐づく product_categories も消す
	Delete(ctx context.Context, id int64) error

	// 関連行を追加（既にあれば何もしない）
	AddProduct(ctx context.Context, link model.ProductCategory) error
	ListProductsByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error)
}
