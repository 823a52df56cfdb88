package model

// 商品。バックエンド所有で、ここではカート追加や表示に
// 必要なフィールドだけを持つ読み取り専用ビュー。
type Product struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Description string `json:"description"`
	Price       Amount `json:"price"`
	ImageURL    string `json:"imageUrl"`
	Stock       int64  `json:"stock"`
}
