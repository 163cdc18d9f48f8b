package usecase

import (
	"context"
	"testing"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	infrarepo "github.com/Zaebanec/NexusGear/internal/infra/repository"
	"github.com/Zaebanec/NexusGear/internal/logging"
	"github.com/Zaebanec/NexusGear/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SQLite + メモリカートで本物に近い構成を作る
type sqliteEnv struct {
	db       *gorm.DB
	carts    *infrarepo.CartMemoryRepository
	users    *infrarepo.UserGormRepository
	products *infrarepo.ProductGormRepository
	category model.Category
	notifier *NotifierMock
	orders   *OrderUsecase
}

func newSQLiteEnv(t *testing.T) *sqliteEnv {
	t.Helper()
	gdb := testutil.NewSQLite(t)
	ctx := context.Background()

	c, err := infrarepo.NewCategoryGormRepository(gdb).Create(ctx, model.Category{Name: "Gear"})
	require.NoError(t, err)

	e := &sqliteEnv{
		db:       gdb,
		carts:    infrarepo.NewCartMemoryRepository(),
		users:    infrarepo.NewUserGormRepository(gdb),
		products: infrarepo.NewProductGormRepository(gdb),
		category: c,
		notifier: &NotifierMock{},
	}
	e.orders = NewOrderUsecase(infrarepo.NewUnitOfWorkFactory(gdb), e.carts, e.notifier, logging.Discard())
	return e
}

func (e *sqliteEnv) user(t *testing.T, telegramID int64) model.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), model.User{TelegramID: telegramID, FullName: "Test User"})
	require.NoError(t, err)
	return u
}

func (e *sqliteEnv) product(t *testing.T, name string, price string) model.Product {
	t.Helper()
	p, err := e.products.Create(context.Background(), model.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: e.category.ID,
	})
	require.NoError(t, err)
	return p
}

// カートには追加時点の名前と価格を入れる
func (e *sqliteEnv) addToCart(t *testing.T, telegramID int64, p model.Product, qty int64) {
	t.Helper()
	require.NoError(t, e.carts.Add(context.Background(), telegramID, model.CartItem{
		ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: qty,
	}))
}

func (e *sqliteEnv) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&model.Order{}).Count(&n).Error)
	return n
}

func (e *sqliteEnv) countOrderItems(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&model.OrderItem{}).Count(&n).Error)
	return n
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
