package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Zaebanec/NexusGear/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const cartRedisMaxRetries = 50

// CartRedisRepository はcart:<telegram_id>にJSONで持つ。
// 更新はWATCH/MULTIの楽観ロックで、競合したらやり直す。
type CartRedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRedisRepository(client *redis.Client, ttl time.Duration) *CartRedisRepository {
	return &CartRedisRepository{client: client, ttl: ttl}
}

func (r *CartRedisRepository) Get(ctx context.Context, telegramID int64) ([]model.CartItem, error) {
	return readCart(ctx, r.client, cartKey(telegramID))
}

func (r *CartRedisRepository) Add(ctx context.Context, telegramID int64, item model.CartItem) error {
	return r.update(ctx, telegramID, func(lines []model.CartItem) []model.CartItem {
		return mergeCartItem(lines, item)
	})
}

func (r *CartRedisRepository) Remove(ctx context.Context, telegramID int64, items []model.CartItem) error {
	return r.update(ctx, telegramID, func(lines []model.CartItem) []model.CartItem {
		return subtractCartItems(lines, items)
	})
}

func (r *CartRedisRepository) Clear(ctx context.Context, telegramID int64) error {
	if err := r.client.Del(ctx, cartKey(telegramID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *CartRedisRepository) update(ctx context.Context, telegramID int64, fn func([]model.CartItem) []model.CartItem) error {
	key := cartKey(telegramID)

	txf := func(tx *redis.Tx) error {
		lines, err := readCart(ctx, tx, key)
		if err != nil {
			return err
		}
		next := fn(lines)

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(next) == 0 {
				pipe.Del(ctx, key)
				return nil
			}
			data, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("marshal cart failed: %w", err)
			}
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < cartRedisMaxRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			// 他のリクエストが先に書いた
			continue
		}
		if err != nil {
			return fmt.Errorf("redis cart update failed: %w", err)
		}
		return nil
	}
	return fmt.Errorf("redis cart update failed: too many conflicts on %s", key)
}

type redisGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readCart(ctx context.Context, c redisGetter, key string) ([]model.CartItem, error) {
	data, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var lines []model.CartItem
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return lines, nil
}

func cartKey(telegramID int64) string {
	return fmt.Sprintf("cart:%d", telegramID)
}
