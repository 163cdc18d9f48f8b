package repository

import "context"

// トランザクション内で使うrepo。全部同じtxに紐づく
type TxRepos interface {
	Orders() OrderRepository
	OrderLines() OrderItemRepository
	Users() UserRepository
	Products() ProductRepository
}

// 1つの論理操作につき1つ。
// Atomicはfnがnilを返せばcommit、error/panic/ctxキャンセルならrollback。
// 開いている間にもう一度Atomicを呼ぶとErrNestedUnitOfWork。
type UnitOfWork interface {
	Atomic(ctx context.Context, fn func(r TxRepos) error) error
}

// 操作ごとに新しいUnitOfWorkを作る
type UnitOfWorkFactory interface {
	New() UnitOfWork
}
