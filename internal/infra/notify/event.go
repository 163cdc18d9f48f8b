package notify

import (
	"time"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	"github.com/Zaebanec/NexusGear/internal/usecase"

	"github.com/google/uuid"
)

const EventOrderCreated = "order.created"

type EventLine struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Price     string `json:"price"`
}

// ブローカーに流す注文作成イベント
type OrderCreatedEvent struct {
	EventID    string               `json:"event_id"`
	Type       string               `json:"type"`
	OccurredAt time.Time            `json:"occurred_at"`
	OrderID    int64                `json:"order_id"`
	UserID     int64                `json:"user_id"`
	TelegramID int64                `json:"telegram_id"`
	Status     string               `json:"status"`
	Total      string               `json:"total_amount"`
	Items      []EventLine          `json:"items"`
	Shipping   usecase.ShippingInfo `json:"shipping"`
}

func newOrderCreatedEvent(telegramID int64, order model.Order, shipping usecase.ShippingInfo) OrderCreatedEvent {
	lines := make([]EventLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, EventLine{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.PriceAtPurchase.StringFixed(2),
		})
	}
	return OrderCreatedEvent{
		EventID:    uuid.NewString(),
		Type:       EventOrderCreated,
		OccurredAt: time.Now().UTC(),
		OrderID:    order.ID,
		UserID:     order.UserID,
		TelegramID: telegramID,
		Status:     string(order.Status),
		Total:      order.TotalAmount.StringFixed(2),
		Items:      lines,
		Shipping:   shipping,
	}
}
