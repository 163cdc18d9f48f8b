package repository

import (
	"context"
	"sync"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
)

type memoryCart struct {
	mu    sync.Mutex
	lines []model.CartItem
	dead  bool // mapから外された
}

// CartMemoryRepository はプロセス内のカート。再起動で消える。
// 空になったカートはmapから外す
type CartMemoryRepository struct {
	mu    sync.Mutex // cartsのmapだけを守る
	carts map[int64]*memoryCart
}

func NewCartMemoryRepository() *CartMemoryRepository {
	return &CartMemoryRepository{carts: map[int64]*memoryCart{}}
}

// 無ければnil
func (r *CartMemoryRepository) lookup(telegramID int64) *memoryCart {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.carts[telegramID]
}

// ロック済みのエントリを返す（無ければ作る）
func (r *CartMemoryRepository) lockEntry(telegramID int64) *memoryCart {
	for {
		r.mu.Lock()
		c, ok := r.carts[telegramID]
		if !ok {
			c = &memoryCart{}
			r.carts[telegramID] = c
		}
		r.mu.Unlock()

		c.mu.Lock()
		if !c.dead {
			return c
		}
		// 直前に外されたので作り直す
		c.mu.Unlock()
	}
}

// c.muを持ったまま呼ぶ
func (r *CartMemoryRepository) dropIfEmpty(telegramID int64, c *memoryCart) {
	if len(c.lines) > 0 {
		return
	}
	c.dead = true
	r.mu.Lock()
	if r.carts[telegramID] == c {
		delete(r.carts, telegramID)
	}
	r.mu.Unlock()
}

func (r *CartMemoryRepository) Get(ctx context.Context, telegramID int64) ([]model.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := r.lookup(telegramID)
	if c == nil {
		return []model.CartItem{}, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyCartItems(c.lines), nil
}

func (r *CartMemoryRepository) Add(ctx context.Context, telegramID int64, item model.CartItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := r.lockEntry(telegramID)
	defer c.mu.Unlock()
	c.lines = mergeCartItem(c.lines, item)
	return nil
}

func (r *CartMemoryRepository) Remove(ctx context.Context, telegramID int64, items []model.CartItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := r.lookup(telegramID)
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dead {
		return nil
	}
	c.lines = subtractCartItems(c.lines, items)
	r.dropIfEmpty(telegramID, c)
	return nil
}

func (r *CartMemoryRepository) Clear(ctx context.Context, telegramID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c := r.lookup(telegramID)
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	r.dropIfEmpty(telegramID, c)
	return nil
}

// 保持しているカートの数
func (r *CartMemoryRepository) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.carts)
}
