package notify

import (
	"context"
	"errors"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	"github.com/Zaebanec/NexusGear/internal/usecase"
)

// Multi は全部の通知先に順に送り、失敗はまとめて返す
type Multi []usecase.Notifier

func (m Multi) NotifyOrderCreated(ctx context.Context, telegramID int64, order model.Order, shipping usecase.ShippingInfo) error {
	var errs []error
	for _, n := range m {
		if err := n.NotifyOrderCreated(ctx, telegramID, order, shipping); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
