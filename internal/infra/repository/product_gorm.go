package repository

import (
	"context"
	"errors"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	repo "github.com/Zaebanec/NexusGear/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// カテゴリ内の商品（名前順）
func (r *ProductGormRepository) ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	var items []model.Product
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name asc").Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

func (r *ProductGormRepository) List(ctx context.Context) ([]model.Product, error) {
	var items []model.Product
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Product{}, err
	}
	return items, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	p.ID = 0
	p.Category = nil
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isForeignKeyViolation(err) {
			return model.Product{}, repo.ErrConflict
		}
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新。価格を変えても既存の注文明細には影響しない
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category_id": p.CategoryID,
	})
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return false, repo.ErrConflict
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// 商品削除。注文明細から参照されていればErrConflict
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.OrderItem{}).Where("product_id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, repo.ErrConflict
	}

	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return false, repo.ErrConflict
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
