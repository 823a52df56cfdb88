package model

import "time"

// カートの明細。
// 1商品につき1明細（同一商品の再追加は数量加算）。
// price は追加時点の価格スナップショット。
type CartItem struct {
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName"`
	Price       Amount    `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Quantity    int64     `json:"quantity"`
	AddedAt     time.Time `json:"addedAt"`
}
