package repository

import (
	"context"
	"sync/atomic"

	repo "github.com/Zaebanec/NexusGear/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders     repo.OrderRepository
	orderLines repo.OrderItemRepository
	users      repo.UserRepository
	products   repo.ProductRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderLines() repo.OrderItemRepository { return r.orderLines }
func (r *txReposGorm) Users() repo.UserRepository           { return r.users }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }

// UnitOfWorkGorm は1つの論理操作のtxを持つ。使い回さない
type UnitOfWorkGorm struct {
	db   *gorm.DB
	open atomic.Bool
}

func (u *UnitOfWorkGorm) Atomic(ctx context.Context, fn func(r repo.TxRepos) error) error {
	if !u.open.CompareAndSwap(false, true) {
		return repo.ErrNestedUnitOfWork
	}
	defer u.open.Store(false)

	// fnがerrorを返すかpanicしたらgormがrollbackする
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:     NewOrderGormRepository(tx),
			orderLines: NewOrderItemGormRepository(tx),
			users:      NewUserGormRepository(tx),
			products:   NewProductGormRepository(tx),
		}
		if err := fn(r); err != nil {
			return err
		}
		// commit前にキャンセル・タイムアウトしていたらrollback
		return ctx.Err()
	})
}

type UnitOfWorkFactoryGorm struct {
	db *gorm.DB
}

func NewUnitOfWorkFactory(db *gorm.DB) *UnitOfWorkFactoryGorm {
	return &UnitOfWorkFactoryGorm{db: db}
}

func (f *UnitOfWorkFactoryGorm) New() repo.UnitOfWork {
	return &UnitOfWorkGorm{db: f.db}
}
