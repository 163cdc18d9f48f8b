package repository

import (
	"context"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
)

type OrderItemRepository interface {
	// まとめて1回で保存。IDが埋まったものを返す
	CreateItems(ctx context.Context, items []model.OrderItem) ([]model.OrderItem, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
