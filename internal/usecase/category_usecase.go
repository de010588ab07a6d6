package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	tx           repo.TransactionManager
}

func NewCategoryUsecase(categoryRepo repo.CategoryRepository, tx repo.TransactionManager) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo: categoryRepo,
		tx:           tx,
	}
}

// POST /product/category の入力
type LinkInput struct {
	ProductName  string
	CategoryName string
	InventoryID  int64
}

func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return items, nil
}

// 名前の重複チェックはしない
func (u *CategoryUsecase) AddCategory(ctx context.Context, name string) (model.Category, error) {
	c, err := u.categoryRepo.Create(ctx, model.Category{Name: name})
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (u *CategoryUsecase) FindByName(ctx context.Context, name string) (model.Category, error) {
	c, err := u.categoryRepo.FindByName(ctx, name)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewNotFoundError("category not found")
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

// IDなら id で、名前なら name で削除
func (u *CategoryUsecase) RemoveCategory(ctx context.Context, ident Identifier) error {
	id, ok := ident.ID()
	if !ok {
		name, _ := ident.Name()
		_, err := u.RemoveCategoryByName(ctx, name)
		return err
	}

	//関連行とカテゴリを同じトランザクションで消す
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		err := r.Categories().Delete(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("category not found")
		}
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "category removed", "category_id", id)
	return nil
}

// 削除したカテゴリを返す
func (u *CategoryUsecase) RemoveCategoryByName(ctx context.Context, name string) (model.Category, error) {
	var deleted model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().FindByName(ctx, name)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("category not found")
		}
		if err != nil {
			return fmt.Errorf("find category: %w", err)
		}

		if err := r.Categories().Delete(ctx, c.ID); err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		deleted = c
		return nil
	})
	if err != nil {
		return model.Category{}, err
	}

	slog.InfoContext(ctx, "category removed", "category_id", deleted.ID, "name", deleted.Name)
	return deleted, nil
}

// 関連行を追加し、カテゴリを返す
func (u *CategoryUsecase) LinkProductToCategory(ctx context.Context, productID int64, categoryID int64) (model.Category, error) {
	var out model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := link(ctx, r, productID, categoryID)
		out = c
		return err
	})
	if err != nil {
		return model.Category{}, err
	}
	return out, nil
}

// 商品名+在庫ID とカテゴリ名で紐づける
func (u *CategoryUsecase) LinkByNames(ctx context.Context, in LinkInput) (model.Category, error) {
	if strings.TrimSpace(in.ProductName) == "" {
		return model.Category{}, NewInvalidArgumentError("product_name", "product name is required")
	}
	if strings.TrimSpace(in.CategoryName) == "" {
		return model.Category{}, NewInvalidArgumentError("category_name", "category name is required")
	}
	if in.InventoryID <= 0 {
		return model.Category{}, NewInvalidArgumentError("inventory_id", "invalid inventory id")
	}

	var out model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByNameAndInventory(ctx, in.ProductName, in.InventoryID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("product not found")
		}
		if err != nil {
			return fmt.Errorf("find product: %w", err)
		}

		c, err := r.Categories().FindByName(ctx, in.CategoryName)
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFoundError("category not found")
		}
		if err != nil {
			return fmt.Errorf("find category: %w", err)
		}

		out, err = link(ctx, r, p.ID, c.ID)
		return err
	})
	if err != nil {
		return model.Category{}, err
	}
	return out, nil
}

// カテゴリに属する商品。カテゴリが無ければNotFound
func (u *CategoryUsecase) ProductsInCategory(ctx context.Context, name string) ([]model.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewInvalidArgumentError("name", "category name is required")
	}

	c, err := u.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	products, err := u.categoryRepo.ListProductsByCategoryID(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return products, nil
}

func link(ctx context.Context, r repo.TxRepos, productID int64, categoryID int64) (model.Category, error) {
	if _, err := r.Products().FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Category{}, NewNotFoundError("product not found")
		}
		return model.Category{}, fmt.Errorf("find product: %w", err)
	}
	if _, err := r.Categories().FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Category{}, NewNotFoundError("category not found")
		}
		return model.Category{}, fmt.Errorf("find category: %w", err)
	}

	if err := r.Categories().AddProduct(ctx, model.ProductCategory{ProductID: productID, CategoryID: categoryID}); err != nil {
		return model.Category{}, fmt.Errorf("add product to category: %w", err)
	}

	//追加後のカテゴリを返す
	c, err := r.Categories().FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Category{}, NewNotFoundError("category not found")
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}
