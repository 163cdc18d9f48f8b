package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	infrarepo "github.com/Zaebanec/NexusGear/internal/infra/repository"
	repo "github.com/Zaebanec/NexusGear/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItem_SnapshotsProduct(t *testing.T) {
	products := &ProductRepoMock{}
	u := NewCartUsecase(infrarepo.NewCartMemoryRepository(), products)
	ctx := context.Background()

	products.On("FindByID", ctx, int64(1)).Return(model.Product{ID: 1, Name: "Mouse", Price: dec("19.99")}, nil)

	_, err := u.AddItem(ctx, 7, AddCartInput{ProductID: 1, Quantity: 2})
	require.NoError(t, err)
	view, err := u.AddItem(ctx, 7, AddCartInput{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	assert.Equal(t, "Mouse", view.Items[0].Name)
	assert.Equal(t, int64(3), view.Items[0].Quantity)
	assert.True(t, view.Total.Equal(dec("59.97")))
}

func TestCartAddItem_Validation(t *testing.T) {
	products := &ProductRepoMock{}
	u := NewCartUsecase(infrarepo.NewCartMemoryRepository(), products)
	ctx := context.Background()

	_, err := u.AddItem(ctx, 7, AddCartInput{ProductID: 1, Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	products.On("FindByID", ctx, int64(404)).Return(model.Product{}, repo.ErrNotFound)
	_, err = u.AddItem(ctx, 7, AddCartInput{ProductID: 404, Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)

	dbErr := errors.New("db down")
	products.On("FindByID", ctx, int64(500)).Return(model.Product{}, dbErr)
	_, err = u.AddItem(ctx, 7, AddCartInput{ProductID: 500, Quantity: 1})
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, KindInfrastructure, KindOf(err))
}

func TestCartAddItem_QuantityLimit(t *testing.T) {
	products := &ProductRepoMock{}
	carts := infrarepo.NewCartMemoryRepository()
	u := NewCartUsecase(carts, products)
	ctx := context.Background()

	products.On("FindByID", ctx, int64(1)).Return(model.Product{ID: 1, Name: "Mouse", Price: dec("1.00")}, nil)

	_, err := u.AddItem(ctx, 7, AddCartInput{ProductID: 1, Quantity: maxLineQuantity + 1})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = u.AddItem(ctx, 7, AddCartInput{ProductID: 1, Quantity: math.MaxInt64})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = u.AddItem(ctx, 7, AddCartInput{ProductID: 1, Quantity: maxLineQuantity - 1})
	require.NoError(t, err)
	_, err = u.AddItem(ctx, 7, AddCartInput{ProductID: 1, Quantity: 2})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, KindValidation, KindOf(err))

	// 超えた分は入らない
	left, err := carts.Get(ctx, 7)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, maxLineQuantity-1, left[0].Quantity)
}

func TestCartRemoveAndClear(t *testing.T) {
	carts := infrarepo.NewCartMemoryRepository()
	u := NewCartUsecase(carts, &ProductRepoMock{})
	ctx := context.Background()

	require.NoError(t, carts.Add(ctx, 1, model.CartItem{ProductID: 1, Price: dec("1.00"), Quantity: 2}))
	require.NoError(t, carts.Add(ctx, 1, model.CartItem{ProductID: 2, Price: dec("2.00"), Quantity: 1}))

	view, err := u.RemoveItem(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(2), view.Items[0].ProductID)

	// 無い商品は何もしない
	view, err = u.RemoveItem(ctx, 1, 99)
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	require.NoError(t, u.Clear(ctx, 1))
	require.NoError(t, u.Clear(ctx, 1))
	view, err = u.GetCart(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}
