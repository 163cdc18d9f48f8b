package usecase

import (
	"context"
	"fmt"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	repo "github.com/Zaebanec/NexusGear/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /api/cart の業務ロジック。
// 名前と価格は追加した時点の商品からコピーする。
type CartUsecase struct {
	carts    repo.CartRepository
	products repo.ProductRepository
}

func NewCartUsecase(carts repo.CartRepository, products repo.ProductRepository) *CartUsecase {
	return &CartUsecase{carts: carts, products: products}
}

type CartView struct {
	Items []model.CartItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
}

type AddCartInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (u *CartUsecase) GetCart(ctx context.Context, telegramID int64) (CartView, error) {
	items, err := u.carts.Get(ctx, telegramID)
	if err != nil {
		return CartView{}, fmt.Errorf("read cart: %w", err)
	}
	return toCartView(items), nil
}

// 追加（同じ商品なら数量を足す）
func (u *CartUsecase) AddItem(ctx context.Context, telegramID int64, in AddCartInput) (CartView, error) {
	if in.Quantity <= 0 || in.Quantity > maxLineQuantity {
		return CartView{}, ErrInvalidQuantity
	}
	if in.ProductID <= 0 {
		return CartView{}, ErrProductNotFound
	}

	// 足した後も上限内か
	current, err := u.carts.Get(ctx, telegramID)
	if err != nil {
		return CartView{}, fmt.Errorf("read cart: %w", err)
	}
	for _, it := range current {
		if it.ProductID == in.ProductID && it.Quantity+in.Quantity > maxLineQuantity {
			return CartView{}, ErrInvalidQuantity
		}
	}

	p, err := u.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return CartView{}, notFoundAs(err, ErrProductNotFound, "find product")
	}

	if err := u.carts.Add(ctx, telegramID, model.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  in.Quantity,
	}); err != nil {
		return CartView{}, fmt.Errorf("add to cart: %w", err)
	}
	return u.GetCart(ctx, telegramID)
}

// 1商品だけ消す。無ければ何もしない
func (u *CartUsecase) RemoveItem(ctx context.Context, telegramID int64, productID int64) (CartView, error) {
	items, err := u.carts.Get(ctx, telegramID)
	if err != nil {
		return CartView{}, fmt.Errorf("read cart: %w", err)
	}
	for _, it := range items {
		if it.ProductID == productID {
			if err := u.carts.Remove(ctx, telegramID, []model.CartItem{it}); err != nil {
				return CartView{}, fmt.Errorf("remove from cart: %w", err)
			}
			break
		}
	}
	return u.GetCart(ctx, telegramID)
}

func (u *CartUsecase) Clear(ctx context.Context, telegramID int64) error {
	if err := u.carts.Clear(ctx, telegramID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func toCartView(items []model.CartItem) CartView {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	if items == nil {
		items = []model.CartItem{}
	}
	return CartView{Items: items, Total: total}
}
