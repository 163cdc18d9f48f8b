package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	repo "github.com/Zaebanec/NexusGear/internal/repository"
	"github.com/Zaebanec/NexusGear/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// =====================
// fixtures
// =====================

type fixture struct {
	db       *gorm.DB
	user     model.User
	category model.Category
	products []model.Product
}

func seed(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	gdb := testutil.NewSQLite(t)

	u, err := NewUserGormRepository(gdb).Create(ctx, model.User{TelegramID: 1001, FullName: "Ivan Petrov"})
	require.NoError(t, err)

	c, err := NewCategoryGormRepository(gdb).Create(ctx, model.Category{Name: "Keyboards"})
	require.NoError(t, err)

	products := NewProductGormRepository(gdb)
	p1, err := products.Create(ctx, model.Product{Name: "A", Price: decimal.RequireFromString("100.00"), CategoryID: c.ID})
	require.NoError(t, err)
	p2, err := products.Create(ctx, model.Product{Name: "B", Price: decimal.RequireFromString("50.50"), CategoryID: c.ID})
	require.NoError(t, err)

	return fixture{db: gdb, user: u, category: c, products: []model.Product{p1, p2}}
}

func countOrders(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(&model.Order{}).Count(&n).Error)
	return n
}

func placeOrder(ctx context.Context, r repo.TxRepos, userID int64, p model.Product, qty int64) (model.Order, error) {
	o, err := r.Orders().Create(ctx, model.Order{
		UserID:      userID,
		Status:      model.OrderStatusPending,
		TotalAmount: p.Price.Mul(decimal.NewFromInt(qty)),
	})
	if err != nil {
		return model.Order{}, err
	}
	_, err = r.OrderLines().CreateItems(ctx, []model.OrderItem{
		{OrderID: o.ID, ProductID: p.ID, Quantity: qty, PriceAtPurchase: p.Price},
	})
	return o, err
}

// =====================
// UnitOfWork
// =====================

func TestUnitOfWork_CommitPersistsOrderAndItems(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	var created model.Order
	err := NewUnitOfWorkFactory(f.db).New().Atomic(ctx, func(r repo.TxRepos) error {
		var err error
		created, err = placeOrder(ctx, r, f.user.ID, f.products[0], 2)
		return err
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := NewOrderGormRepository(f.db).FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, got.Status)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("200.00")))
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(2), got.Items[0].Quantity)
}

func TestUnitOfWork_ErrorRollsBack(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := NewUnitOfWorkFactory(f.db).New().Atomic(ctx, func(r repo.TxRepos) error {
		if _, err := placeOrder(ctx, r, f.user.ID, f.products[0], 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(0), countOrders(t, f.db))
}

func TestUnitOfWork_PanicRollsBackAndRepanics(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	uow := NewUnitOfWorkFactory(f.db).New()

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = uow.Atomic(ctx, func(r repo.TxRepos) error {
			if _, err := placeOrder(ctx, r, f.user.ID, f.products[0], 1); err != nil {
				return err
			}
			panic("kaboom")
		})
	})
	assert.Equal(t, int64(0), countOrders(t, f.db))

	// 閉じた後はもう一度使える
	err := uow.Atomic(ctx, func(r repo.TxRepos) error { return nil })
	assert.NoError(t, err)
}

func TestUnitOfWork_CancelledContextRollsBack(t *testing.T) {
	f := seed(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := NewUnitOfWorkFactory(f.db).New().Atomic(ctx, func(r repo.TxRepos) error {
		if _, err := placeOrder(ctx, r, f.user.ID, f.products[0], 1); err != nil {
			return err
		}
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), countOrders(t, f.db))
}

func TestUnitOfWork_NestedAtomicFails(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	uow := NewUnitOfWorkFactory(f.db).New()

	var inner error
	err := uow.Atomic(ctx, func(r repo.TxRepos) error {
		inner = uow.Atomic(ctx, func(r repo.TxRepos) error {
			t.Fatal("nested fn must not run")
			return nil
		})
		return inner
	})
	assert.ErrorIs(t, inner, repo.ErrNestedUnitOfWork)
	assert.ErrorIs(t, err, repo.ErrNestedUnitOfWork)
}

func TestUnitOfWork_SequentialReuse(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	uow := NewUnitOfWorkFactory(f.db).New()

	for i := 0; i < 2; i++ {
		err := uow.Atomic(ctx, func(r repo.TxRepos) error {
			_, err := placeOrder(ctx, r, f.user.ID, f.products[1], 1)
			return err
		})
		require.NoError(t, err)
	}
	assert.Equal(t, int64(2), countOrders(t, f.db))
}

// =====================
// Orders
// =====================

func TestOrder_PriceAtPurchaseSurvivesPriceChange(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	var o model.Order
	err := NewUnitOfWorkFactory(f.db).New().Atomic(ctx, func(r repo.TxRepos) error {
		var err error
		o, err = placeOrder(ctx, r, f.user.ID, f.products[0], 1)
		return err
	})
	require.NoError(t, err)

	p := f.products[0]
	p.Price = decimal.RequireFromString("999.99")
	ok, err := NewProductGormRepository(f.db).Update(ctx, p)
	require.NoError(t, err)
	require.True(t, ok)

	items, err := NewOrderItemGormRepository(f.db).ListByOrderID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].PriceAtPurchase.Equal(decimal.RequireFromString("100.00")))
}

func TestOrder_UpdateStatusAndNotFound(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	orders := NewOrderGormRepository(f.db)

	o, err := orders.Create(ctx, model.Order{UserID: f.user.ID, Status: model.OrderStatusPending, TotalAmount: decimal.NewFromInt(1)})
	require.NoError(t, err)

	require.NoError(t, orders.UpdateStatus(ctx, o.ID, model.OrderStatusPaid))
	got, err := orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, got.Status)

	assert.ErrorIs(t, orders.UpdateStatus(ctx, 9999, model.OrderStatusPaid), repo.ErrNotFound)
	_, err = orders.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestOrder_ListFilter(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	orders := NewOrderGormRepository(f.db)

	for _, st := range []model.OrderStatus{model.OrderStatusPending, model.OrderStatusPaid, model.OrderStatusPaid} {
		_, err := orders.Create(ctx, model.Order{UserID: f.user.ID, Status: st, TotalAmount: decimal.NewFromInt(1)})
		require.NoError(t, err)
	}

	paid := model.OrderStatusPaid
	list, err := orders.List(ctx, repo.OrderListFilter{Status: &paid})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	total, err := orders.Count(ctx, repo.OrderListFilter{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	// 新しい順、limit/offset
	page, err := orders.List(ctx, repo.OrderListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, model.OrderStatusPaid, page[0].Status)

	future := time.Now().Add(time.Hour)
	none, err := orders.List(ctx, repo.OrderListFilter{CreatedFrom: &future})
	require.NoError(t, err)
	assert.Empty(t, none)
}

// =====================
// Catalog
// =====================

func TestCategory_DeleteWithProductsConflicts(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	categories := NewCategoryGormRepository(f.db)

	_, err := categories.Delete(ctx, f.category.ID)
	assert.ErrorIs(t, err, repo.ErrConflict)

	empty, err := categories.Create(ctx, model.Category{Name: "Mice"})
	require.NoError(t, err)
	ok, err := categories.Delete(ctx, empty.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = categories.Delete(ctx, empty.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Keyboards", list[0].Name)
}

func TestProduct_DeleteReferencedConflicts(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	products := NewProductGormRepository(f.db)

	err := NewUnitOfWorkFactory(f.db).New().Atomic(ctx, func(r repo.TxRepos) error {
		_, err := placeOrder(ctx, r, f.user.ID, f.products[0], 1)
		return err
	})
	require.NoError(t, err)

	_, err = products.Delete(ctx, f.products[0].ID)
	assert.ErrorIs(t, err, repo.ErrConflict)

	ok, err := products.Delete(ctx, f.products[1].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = products.FindByID(ctx, f.products[1].ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProduct_ListByCategory(t *testing.T) {
	f := seed(t)
	ctx := context.Background()

	items, err := NewProductGormRepository(f.db).ListByCategory(ctx, f.category.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Name)
	assert.True(t, items[1].Price.Equal(decimal.RequireFromString("50.50")))

	none, err := NewProductGormRepository(f.db).ListByCategory(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}

// =====================
// Users
// =====================

func TestUser_FindAndUpdateProfile(t *testing.T) {
	f := seed(t)
	ctx := context.Background()
	users := NewUserGormRepository(f.db)

	got, err := users.FindByTelegramID(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, got.ID)
	assert.False(t, got.CreatedAt.IsZero())

	name := "ivan"
	got.FullName = "Ivan P."
	got.Username = &name
	require.NoError(t, users.UpdateProfile(ctx, got))

	again, err := users.FindByID(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivan P.", again.FullName)
	require.NotNil(t, again.Username)
	assert.Equal(t, "ivan", *again.Username)
	assert.Equal(t, int64(1001), again.TelegramID)

	_, err = users.FindByTelegramID(ctx, 42)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.ErrorIs(t, users.UpdateProfile(ctx, model.User{ID: 9999}), repo.ErrNotFound)
}
