package model

import "time"

// レビュー。作成はバックエンド側で注文との突き合わせが行われる。
type Review struct {
	ReviewID  int64     `json:"reviewId"`
	OrderID   int64     `json:"orderId"`
	ProductID int64     `json:"productId"`
	UserID    int64     `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}
