package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	"github.com/Zaebanec/NexusGear/internal/logging"
	repo "github.com/Zaebanec/NexusGear/internal/repository"
)

const (
	defaultAdminListLimit = 50
	maxAdminListLimit     = 100
)

type AdminOrderUsecase struct {
	uow repo.UnitOfWorkFactory
	log *slog.Logger
}

func NewAdminOrderUsecase(uow repo.UnitOfWorkFactory, log *slog.Logger) *AdminOrderUsecase {
	if log == nil {
		log = logging.Discard()
	}
	return &AdminOrderUsecase{uow: uow, log: log}
}

// 一覧の条件。handlerでクエリから詰める
type AdminOrderListInput struct {
	Status      string
	UserID      *int64
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

type OrderPage struct {
	Items  []model.Order `json:"items"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, in AdminOrderListInput) (OrderPage, error) {
	f := repo.OrderListFilter{
		UserID:      in.UserID,
		CreatedFrom: in.CreatedFrom,
		CreatedTo:   in.CreatedTo,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if strings.TrimSpace(in.Status) != "" {
		st, ok := model.ParseOrderStatus(in.Status)
		if !ok {
			return OrderPage{}, ErrInvalidStatus
		}
		f.Status = &st
	}
	if f.Limit == 0 {
		f.Limit = defaultAdminListLimit
	}
	if f.Limit < 1 || f.Limit > maxAdminListLimit {
		return OrderPage{}, invalidInput("limit must be between 1 and 100")
	}
	if f.Offset < 0 {
		return OrderPage{}, invalidInput("offset must be >= 0")
	}
	if f.CreatedFrom != nil && f.CreatedTo != nil && f.CreatedTo.Before(*f.CreatedFrom) {
		return OrderPage{}, invalidInput("created_to is before created_from")
	}

	page := OrderPage{Limit: f.Limit, Offset: f.Offset}
	err := u.uow.New().Atomic(ctx, func(r repo.TxRepos) error {
		items, err := r.Orders().List(ctx, f)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		total, err := r.Orders().Count(ctx, f)
		if err != nil {
			return fmt.Errorf("count orders: %w", err)
		}
		page.Items = items
		page.Total = total
		return nil
	})
	if err != nil {
		return OrderPage{}, err
	}
	return page, nil
}

// ステータス更新。どの状態からどの状態へも変えられる
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) (model.Order, error) {
	// txを開く前に値チェック
	newStatus, ok := model.ParseOrderStatus(status)
	if !ok {
		return model.Order{}, ErrInvalidStatus
	}
	if orderID <= 0 {
		return model.Order{}, ErrOrderNotFound
	}

	var (
		out    model.Order
		before model.OrderStatus
	)
	err := u.uow.New().Atomic(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return notFoundAs(err, ErrOrderNotFound, "find order")
		}
		before = o.Status

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return notFoundAs(err, ErrOrderNotFound, "update order status")
		}
		o.Status = newStatus
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}

	logging.FromCtx(ctx, u.log).Info("order status updated", "order_id", orderID, "before", before, "after", newStatus)
	return out, nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, ErrOrderNotFound
	}
	var out model.Order
	err := u.uow.New().Atomic(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return notFoundAs(err, ErrOrderNotFound, "find order")
		}
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}
