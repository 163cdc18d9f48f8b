package repository

import (
	"context"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (model.Category, error)
	// 名前順
	List(ctx context.Context) ([]model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	// falseは対象なし
	Update(ctx context.Context, c model.Category) (bool, error)
	// 商品が残っている場合はErrConflict
	Delete(ctx context.Context, id int64) (bool, error)
}
