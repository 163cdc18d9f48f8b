package repository

import (
	"math"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
)

// 同じ商品なら数量を足す。名前と価格は最初に入れたものを残す。
// 足してint64を超えるときはMaxInt64で止める
func mergeCartItem(lines []model.CartItem, item model.CartItem) []model.CartItem {
	for i := range lines {
		if lines[i].ProductID == item.ProductID {
			if item.Quantity > 0 && lines[i].Quantity > math.MaxInt64-item.Quantity {
				lines[i].Quantity = math.MaxInt64
				return lines
			}
			lines[i].Quantity += item.Quantity
			return lines
		}
	}
	return append(lines, item)
}

// 読み取った分だけ引く。0以下は行ごと消す
func subtractCartItems(lines []model.CartItem, taken []model.CartItem) []model.CartItem {
	dec := make(map[int64]int64, len(taken))
	for _, t := range taken {
		dec[t.ProductID] += t.Quantity
	}
	out := lines[:0]
	for _, l := range lines {
		l.Quantity -= dec[l.ProductID]
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}

func copyCartItems(lines []model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(lines))
	copy(out, lines)
	return out
}
