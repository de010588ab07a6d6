package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"app/internal/domain/model"
	"app/internal/lock"
	repo "app/internal/repository"
)

type InventoryUsecase struct {
	inventoryRepo  repo.InventoryRepository
	adjustmentRepo repo.AdjustmentRepository
	tx             repo.TransactionManager
	locker         lock.Locker
}

// DI
func NewInventoryUsecase(
	inventoryRepo repo.InventoryRepository,
	adjustmentRepo repo.AdjustmentRepository,
	tx repo.TransactionManager,
	locker lock.Locker,
) *InventoryUsecase {
	return &InventoryUsecase{
		inventoryRepo:  inventoryRepo,
		adjustmentRepo: adjustmentRepo,
		tx:             tx,
		locker:         locker,
	}
}

func (u *InventoryUsecase) ListInventories(ctx context.Context) ([]model.Inventory, error) {
	items, err := u.inventoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	return items, nil
}

// used_space=0 で作成。total_spaceの検証は呼び出し側（handler）で行う
func (u *InventoryUsecase) AddInventory(ctx context.Context, totalSpace int64) (model.Inventory, error) {
	inv, err := u.inventoryRepo.Create(ctx, model.Inventory{
		TotalSpace: totalSpace,
		UsedSpace:  0,
	})
	if err != nil {
		return model.Inventory{}, fmt.Errorf("create inventory: %w", err)
	}

	slog.InfoContext(ctx, "inventory created", "inventory_id", inv.ID, "total_space", inv.TotalSpace)
	return inv, nil
}

// 使用中より小さくはできない
func (u *InventoryUsecase) UpdateTotalSpace(ctx context.Context, inventoryID int64, newTotalSpace int64) (model.Inventory, error) {
	unlock, err := u.locker.Lock(ctx, lock.InventoryKey(inventoryID))
	if err != nil {
		return model.Inventory{}, fmt.Errorf("lock inventory %d: %w", inventoryID, err)
	}
	defer unlock()

	var out model.Inventory
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		inv, err := r.Inventory().FindByIDForUpdate(ctx, inventoryID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("inventory not found")
		}
		if err != nil {
			return fmt.Errorf("find inventory: %w", err)
		}

		if newTotalSpace < inv.UsedSpace {
			return NewCapacityViolationError(
				fmt.Sprintf("total space %d is smaller than used space %d", newTotalSpace, inv.UsedSpace),
			)
		}

		inv.TotalSpace = newTotalSpace
		if err := r.Inventory().Update(ctx, inv); err != nil {
			return fmt.Errorf("update inventory: %w", err)
		}
		out = inv
		return nil
	})
	if err != nil {
		return model.Inventory{}, err
	}
	return out, nil
}

// 商品は切り離さない。残っている商品の扱いは呼び出し側の責任
func (u *InventoryUsecase) RemoveInventory(ctx context.Context, inventoryID int64) error {
	unlock, err := u.locker.Lock(ctx, lock.InventoryKey(inventoryID))
	if err != nil {
		return fmt.Errorf("lock inventory %d: %w", inventoryID, err)
	}
	defer unlock()

	err = u.inventoryRepo.Delete(ctx, inventoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewNotFoundError("inventory not found")
	}
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}

	slog.InfoContext(ctx, "inventory removed", "inventory_id", inventoryID)
	return nil
}

// 並び順はストア任せ
func (u *InventoryUsecase) ProductsOf(ctx context.Context, inventoryID int64) ([]model.Product, error) {
	products, err := u.inventoryRepo.ListProducts(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list products of inventory: %w", err)
	}
	return products, nil
}

func (u *InventoryUsecase) Adjustments(ctx context.Context, inventoryID int64) ([]model.QuantityAdjustment, error) {
	if _, err := u.inventoryRepo.FindByID(ctx, inventoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFoundError("inventory not found")
		}
		return nil, fmt.Errorf("find inventory: %w", err)
	}

	logs, err := u.adjustmentRepo.ListByInventory(ctx, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	return logs, nil
}
