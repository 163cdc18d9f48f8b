package repository

import (
	"context"
	"time"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
)

// 管理者用の一覧条件
type OrderListFilter struct {
	Status      *model.OrderStatus
	UserID      *int64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

type OrderRepository interface {
	// IDが埋まった注文を返す（明細は保存しない）
	Create(ctx context.Context, order model.Order) (model.Order, error)
	// 明細付きで返す
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)
	Count(ctx context.Context, f OrderListFilter) (int64, error)
}
