package repository

import (
	"context"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
)

// カートはメモリ（またはRedis）に置く。UnitOfWorkのtxには入らない。
// telegramIDごとに更新を直列化すること。
type CartRepository interface {
	// コピーを返す。カートが無ければ空
	Get(ctx context.Context, telegramID int64) ([]model.CartItem, error)
	// 同一商品は数量を加算
	Add(ctx context.Context, telegramID int64, item model.CartItem) error
	// 読み取った分だけ数量を引く（0以下になった行は消す）
	Remove(ctx context.Context, telegramID int64, items []model.CartItem) error
	// 無くてもエラーにしない
	Clear(ctx context.Context, telegramID int64) error
}
