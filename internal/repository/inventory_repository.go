package repository

import (
	"app/internal/domain/model"
	"context"
)

type InventoryRepository interface {
	List(ctx context.Context) ([]model.Inventory, error)
	FindByID(ctx context.Context, id int64) (model.Inventory, error)

	// 行ロック付きで取得（トランザクション内で使う）
	FindByIDForUpdate(ctx context.Context, id int64) (model.Inventory, error)

	Create(ctx context.Context, inv model.Inventory) (model.Inventory, error)
	// total_space / used_space を保存
	Update(ctx context.Context, inv model.Inventory) error
	Delete(ctx context.Context, id int64) error

	// 在庫に属する商品一覧
	ListProducts(ctx context.Context, inventoryID int64) ([]model.Product, error)
}

// 数量変更履歴
type AdjustmentRepository interface {
	Create(ctx context.Context, adj model.QuantityAdjustment) error
	ListByInventory(ctx context.Context, inventoryID int64) ([]model.QuantityAdjustment, error)
}
