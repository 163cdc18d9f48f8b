package model

import "github.com/shopspring/decimal"

// カートの明細（DBには保存しない）
// 名前と価格は追加時点のものをコピーして持つ。
type CartItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// 小計 = 価格 × 数量
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}
