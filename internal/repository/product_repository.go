package repository

import (
	"context"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
)

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	List(ctx context.Context) ([]model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	// falseは対象なし
	Update(ctx context.Context, p model.Product) (bool, error)
	// 注文明細から参照されている場合はErrConflict
	Delete(ctx context.Context, id int64) (bool, error)
}
