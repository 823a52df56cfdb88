package model

import "time"

// 注文ステータス（正準形は大文字）
// 旧バックエンドの小文字表記は status.Normalize で正準形へ寄せる。
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// バックエンドが保持する注文の読み取り専用ビュー。
type Order struct {
	OrderID     int64       `json:"orderId"`
	UserID      int64       `json:"userId"`
	OrderStatus OrderStatus `json:"orderStatus"`
	TotalAmount Amount      `json:"totalAmount"`
	OrderDate   time.Time   `json:"orderDate"`
	OrderItems  []OrderItem `json:"orderItems"`
}

type OrderItem struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Price       Amount `json:"price"`
	Quantity    int64  `json:"quantity"`
	ImageURL    string `json:"imageUrl"`
}
