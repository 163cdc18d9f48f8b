package usecase

import (
	"context"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
)

// 配送先。どれも空でよい
type ShippingInfo struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// commit後に呼ぶ通知先。失敗しても注文は成功のまま
type Notifier interface {
	NotifyOrderCreated(ctx context.Context, telegramID int64, order model.Order, shipping ShippingInfo) error
}

type nopNotifier struct{}

func (nopNotifier) NotifyOrderCreated(context.Context, int64, model.Order, ShippingInfo) error {
	return nil
}
