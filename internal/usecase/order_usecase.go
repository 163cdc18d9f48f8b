package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	"github.com/Zaebanec/NexusGear/internal/logging"
	repo "github.com/Zaebanec/NexusGear/internal/repository"
)

const defaultNotifyTimeout = 5 * time.Second

type OrderUsecase struct {
	uow           repo.UnitOfWorkFactory
	carts         repo.CartRepository
	notifier      Notifier
	log           *slog.Logger
	notifyTimeout time.Duration
}

type OrderOption func(*OrderUsecase)

// 通知1回あたりの上限
func WithNotifyTimeout(d time.Duration) OrderOption {
	return func(u *OrderUsecase) {
		if d > 0 {
			u.notifyTimeout = d
		}
	}
}

// notifierがnilなら何も送らない
func NewOrderUsecase(uow repo.UnitOfWorkFactory, carts repo.CartRepository, notifier Notifier, log *slog.Logger, opts ...OrderOption) *OrderUsecase {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = logging.Discard()
	}
	u := &OrderUsecase{
		uow:           uow,
		carts:         carts,
		notifier:      notifier,
		log:           log,
		notifyTimeout: defaultNotifyTimeout,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// 1明細あたりの数量上限。合計もnumeric(10,2)に収める
const maxLineQuantity int64 = 10000

// 明細を直接指定するときの1行
type ItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// カートの中身から注文を作る。
// 価格はカートに入れた時点のもの。カートはcommit後に読み取った分だけ減らす。
func (u *OrderUsecase) CreateOrder(ctx context.Context, telegramID int64, shipping ShippingInfo) (model.Order, error) {
	var (
		order    model.Order
		snapshot []model.CartItem
	)

	err := u.uow.New().Atomic(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByTelegramID(ctx, telegramID)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound, "find user")
		}

		snapshot, err = u.carts.Get(ctx, telegramID)
		if err != nil {
			return fmt.Errorf("read cart: %w", err)
		}
		if len(snapshot) == 0 {
			return ErrEmptyCart
		}

		lines := make([]model.OrderItem, 0, len(snapshot))
		for _, ci := range snapshot {
			if ci.Quantity <= 0 || ci.Quantity > maxLineQuantity {
				return ErrInvalidQuantity
			}
			lines = append(lines, model.OrderItem{
				ProductID:       ci.ProductID,
				Quantity:        ci.Quantity,
				PriceAtPurchase: ci.Price,
			})
		}

		order, err = persistOrder(ctx, r, user.ID, lines)
		return err
	})
	if err != nil {
		return model.Order{}, err
	}

	log := logging.FromCtx(ctx, u.log)
	log.Info("order created", "order_id", order.ID, "telegram_id", telegramID, "total", order.TotalAmount.StringFixed(2), "source", "cart")

	// commit済み。ここから先の失敗は注文に影響させない
	if err := u.carts.Remove(context.WithoutCancel(ctx), telegramID, snapshot); err != nil {
		log.Error("cart cleanup failed", "order_id", order.ID, "telegram_id", telegramID, "err", err)
	}
	u.notify(ctx, telegramID, order, shipping)

	return order, nil
}

// フォームなどから明細を直接受け取って注文を作る。
// 価格はクライアントの値を信用せず、商品を読み直して決める。カートは触らない。
func (u *OrderUsecase) CreateOrderFromItems(ctx context.Context, telegramID int64, items []ItemInput, shipping ShippingInfo) (model.Order, error) {
	merged, err := mergeItemInputs(items)
	if err != nil {
		return model.Order{}, err
	}

	var order model.Order
	err = u.uow.New().Atomic(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByTelegramID(ctx, telegramID)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound, "find user")
		}

		lines := make([]model.OrderItem, 0, len(merged))
		for _, it := range merged {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err != nil {
				// 1つでも無ければ全部やめる
				return notFoundAs(err, ErrProductNotFound, "find product")
			}
			lines = append(lines, model.OrderItem{
				ProductID:       p.ID,
				Quantity:        it.Quantity,
				PriceAtPurchase: p.Price,
			})
		}

		order, err = persistOrder(ctx, r, user.ID, lines)
		return err
	})
	if err != nil {
		return model.Order{}, err
	}

	logging.FromCtx(ctx, u.log).Info("order created", "order_id", order.ID, "telegram_id", telegramID, "total", order.TotalAmount.StringFixed(2), "source", "items")
	u.notify(ctx, telegramID, order, shipping)

	return order, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (model.Order, error) {
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

// 自分の注文（新しい順、最大50件）
func (u *OrderUsecase) ListUserOrders(ctx context.Context, telegramID int64) ([]model.Order, error) {
	var out []model.Order
	err := u.uow.New().Atomic(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByTelegramID(ctx, telegramID)
		if err != nil {
			return notFoundAs(err, ErrUserNotFound, "find user")
		}
		out, err = r.Orders().List(ctx, repo.OrderListFilter{UserID: &user.ID, Limit: 50})
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		return nil
	})
	if err != nil {
		return []model.Order{}, err
	}
	return out, nil
}

// 注文ヘッダ→明細の順に保存する
func persistOrder(ctx context.Context, r repo.TxRepos, userID int64, lines []model.OrderItem) (model.Order, error) {
	total := model.SumItems(lines)
	if total.GreaterThanOrEqual(maxPrice) {
		return model.Order{}, invalidInput("order total is too large")
	}

	created, err := r.Orders().Create(ctx, model.Order{
		UserID:      userID,
		Status:      model.OrderStatusPending,
		TotalAmount: total,
	})
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}

	for i := range lines {
		lines[i].OrderID = created.ID
	}
	saved, err := r.OrderLines().CreateItems(ctx, lines)
	if errors.Is(err, repo.ErrConflict) {
		// カートに入れた後で商品が消された
		return model.Order{}, ErrProductNotFound
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("create order items: %w", err)
	}

	created.Items = saved
	return created, nil
}

// 同じ商品はまとめる。書き込み前に全部チェックする
func mergeItemInputs(items []ItemInput) ([]ItemInput, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	out := make([]ItemInput, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, it := range items {
		if it.Quantity <= 0 || it.Quantity > maxLineQuantity {
			return nil, ErrInvalidQuantity
		}
		if it.ProductID <= 0 {
			return nil, ErrProductNotFound
		}
		if i, ok := index[it.ProductID]; ok {
			if out[i].Quantity+it.Quantity > maxLineQuantity {
				return nil, ErrInvalidQuantity
			}
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(out)
		out = append(out, it)
	}
	return out, nil
}

func (u *OrderUsecase) notify(ctx context.Context, telegramID int64, order model.Order, shipping ShippingInfo) {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.notifyTimeout)
	defer cancel()

	if err := u.notifier.NotifyOrderCreated(nctx, telegramID, order, shipping); err != nil {
		logging.FromCtx(ctx, u.log).Warn("order notification failed", "order_id", order.ID, "telegram_id", telegramID, "err", err)
	}
}
