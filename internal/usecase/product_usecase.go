package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/lock"
	repo "app/internal/repository"
)

// 商品数量の変更はすべて UpsertQuantity を通す。
// 商品行と在庫の used_space は同じトランザクションで更新する。
type ProductUsecase struct {
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	tx            repo.TransactionManager
	locker        lock.Locker
	policy        config.CapacityPolicy
	now           func() time.Time
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	tx repo.TransactionManager,
	locker lock.Locker,
	policy config.CapacityPolicy,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		tx:            tx,
		locker:        locker,
		policy:        policy,
		now:           time.Now,
	}
}

// PUT /product の入力DTO。Quantityは符号付きの差分
type ProductInput struct {
	Name        string
	Quantity    int64
	InventoryID int64
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// 数量を増減する。0以下になった商品は削除し、(nil, nil)を返す。
func (u *ProductUsecase) UpsertQuantity(ctx context.Context, in ProductInput) (*model.Product, error) {
	//符号反転できない
	if in.Quantity == math.MinInt64 {
		return nil, NewInvalidArgumentError("quantity", "quantity is out of range")
	}

	unlock, err := u.locker.Lock(ctx, lock.InventoryKey(in.InventoryID))
	if err != nil {
		return nil, fmt.Errorf("lock inventory %d: %w", in.InventoryID, err)
	}
	defer unlock()

	var out *model.Product
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		inv, err := findInventoryForUpdate(ctx, r, in.InventoryID)
		if err != nil {
			return err
		}

		//減らす
		if in.Quantity < 0 {
			p, err := r.Products().FindByNameAndInventory(ctx, in.Name, in.InventoryID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewNotFoundError("product not found")
			}
			if err != nil {
				return fmt.Errorf("find product: %w", err)
			}

			out, err = u.reduce(ctx, r, inv, p, -in.Quantity)
			return err
		}

		//増やす or 作る
		out, err = u.increase(ctx, r, inv, in.Name, in.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// 商品IDを指定して減らす
func (u *ProductUsecase) ReduceQuantity(ctx context.Context, productID int64, amount int64) (*model.Product, error) {
	if amount <= 0 {
		return nil, NewInvalidArgumentError("amount", "amount must be > 0")
	}

	//ロックのキーに在庫IDが要るので先に読む
	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, NewNotFoundError("product not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	unlock, err := u.locker.Lock(ctx, lock.InventoryKey(p.InventoryID))
	if err != nil {
		return nil, fmt.Errorf("lock inventory %d: %w", p.InventoryID, err)
	}
	defer unlock()

	var out *model.Product
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		inv, err := findInventoryForUpdate(ctx, r, p.InventoryID)
		if err != nil {
			return err
		}

		//ロック待ちの間に消えているかもしれない
		current, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("product not found")
		}
		if err != nil {
			return fmt.Errorf("find product: %w", err)
		}

		out, err = u.reduce(ctx, r, inv, current, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// 在庫内の商品一覧から名前で探す
func (u *ProductUsecase) FindByNameAndInventory(ctx context.Context, name string, inventoryID int64) (model.Product, error) {
	products, err := u.inventoryRepo.ListProducts(ctx, inventoryID)
	if err != nil {
		return model.Product{}, fmt.Errorf("list products of inventory: %w", err)
	}
	for _, p := range products {
		if p.Name == name {
			return p, nil
		}
	}
	return model.Product{}, NewNotFoundError("product not found")
}

// quantity <= amount なら削除し、used_space は商品の数量ぶん（amountではない）減らす
func (u *ProductUsecase) reduce(ctx context.Context, r repo.TxRepos, inv model.Inventory, p model.Product, amount int64) (*model.Product, error) {
	if p.Quantity <= amount {
		if err := r.Products().Delete(ctx, p.ID); err != nil {
			return nil, fmt.Errorf("delete product: %w", err)
		}

		inv.UsedSpace -= p.Quantity
		if err := u.saveInventory(ctx, r, inv, p.Name, -p.Quantity, 0); err != nil {
			return nil, err
		}

		slog.InfoContext(ctx, "product removed",
			"inventory_id", inv.ID, "product", p.Name, "removed_quantity", p.Quantity)
		return nil, nil
	}

	p.Quantity -= amount
	if err := r.Products().Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	inv.UsedSpace -= amount
	if err := u.saveInventory(ctx, r, inv, p.Name, -amount, p.Quantity); err != nil {
		return nil, err
	}
	return &p, nil
}

func (u *ProductUsecase) increase(ctx context.Context, r repo.TxRepos, inv model.Inventory, name string, delta int64) (*model.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewInvalidArgumentError("name", "product name is required")
	}

	existing, err := r.Products().FindByNameAndInventory(ctx, name, inv.ID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("find product: %w", err)
	}
	found := err == nil

	//数量0の商品は作らない
	if !found && delta == 0 {
		return nil, NewInvalidArgumentError("quantity", "quantity must be > 0 for a new product")
	}

	if found && delta > math.MaxInt64-existing.Quantity {
		return nil, NewInvalidArgumentError("quantity", "quantity is out of range")
	}
	if err := u.checkCapacity(ctx, inv, delta); err != nil {
		return nil, err
	}

	var p model.Product
	if found {
		existing.Quantity += delta
		if err := r.Products().Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
		p = existing
	} else {
		now := u.now()
		p, err = r.Products().Create(ctx, model.Product{
			Name:        name,
			Quantity:    delta,
			InventoryID: inv.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return nil, fmt.Errorf("create product: %w", err)
		}
	}

	inv.UsedSpace += delta
	if err := u.saveInventory(ctx, r, inv, p.Name, delta, p.Quantity); err != nil {
		return nil, err
	}
	return &p, nil
}

// 増加でtotal_spaceを超える場合。allowなら警告のみ
func (u *ProductUsecase) checkCapacity(ctx context.Context, inv model.Inventory, delta int64) error {
	//used_spaceがint64を超える増加はポリシーに関係なく拒否
	if delta > math.MaxInt64-inv.UsedSpace {
		return NewCapacityViolationError(
			fmt.Sprintf("used space overflow: used %d, requested %d", inv.UsedSpace, delta),
		)
	}
	if delta == 0 || inv.UsedSpace+delta <= inv.TotalSpace {
		return nil
	}

	if u.policy == config.CapacityPolicyReject {
		return NewCapacityViolationError(
			fmt.Sprintf("not enough space: free %d, requested %d", inv.FreeSpace(), delta),
		)
	}

	slog.WarnContext(ctx, "inventory over capacity",
		"inventory_id", inv.ID,
		"total_space", inv.TotalSpace,
		"used_space", inv.UsedSpace+delta,
		"over_capacity", true,
	)
	return nil
}

// 在庫の保存と履歴の作成
func (u *ProductUsecase) saveInventory(ctx context.Context, r repo.TxRepos, inv model.Inventory, name string, delta int64, quantityAfter int64) error {
	if err := r.Inventory().Update(ctx, inv); err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}

	adj := model.QuantityAdjustment{
		InventoryID:    inv.ID,
		ProductName:    name,
		Delta:          delta,
		QuantityAfter:  quantityAfter,
		UsedSpaceAfter: inv.UsedSpace,
		CreatedAt:      u.now(),
	}
	if err := r.Adjustments().Create(ctx, adj); err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

func findInventoryForUpdate(ctx context.Context, r repo.TxRepos, inventoryID int64) (model.Inventory, error) {
	inv, err := r.Inventory().FindByIDForUpdate(ctx, inventoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Inventory{}, NewNotFoundError("inventory not found")
	}
	if err != nil {
		return model.Inventory{}, fmt.Errorf("find inventory: %w", err)
	}
	return inv, nil
}
