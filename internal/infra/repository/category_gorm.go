package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if isNotFound(err) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) FindByName(ctx context.Context, name string) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id asc").
		First(&c).Error
	if isNotFound(err) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// 関連行 → カテゴリの順で削除
func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("category_id = ?", id).Delete(&model.ProductCategory{}).Error; err != nil {
		return err
	}

	res := db.Delete(&model.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 複合主キーが重複したら何もしない
func (r *CategoryGormRepository) AddProduct(ctx context.Context, link model.ProductCategory) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func (r *CategoryGormRepository) ListProductsByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Where("pc.category_id = ?", categoryID).
		Order("products.id asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
