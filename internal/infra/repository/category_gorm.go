package repository

import (
	"context"
	"errors"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	repo "github.com/Zaebanec/NexusGear/internal/repository"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Category{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var items []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return []model.Category{}, err
	}
	return items, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	c.ID = 0
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Category{}, repo.ErrConflict
		}
		return model.Category{}, err
	}
	return c, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", c.ID).
		Update("name", c.Name)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, repo.ErrConflict
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// 商品が残っているカテゴリは消さない（孤児を作らない）
func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("category_id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, repo.ErrConflict
	}

	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		if isForeignKeyViolation(res.Error) {
			return false, repo.ErrConflict
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
