package model

import "time"

// 支払ステータス。注文ステータスからは導出しない（独立して遷移する）。
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodCashOnDelivery   PaymentMethod = "CASH_ON_DELIVERY"
	PaymentMethodCashOnCollection PaymentMethod = "CASH_ON_COLLECTION"
	PaymentMethodCreditCard       PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard        PaymentMethod = "DEBIT_CARD"
)

// 注文と1:1の支払レコード。
type Payment struct {
	PaymentID     int64         `json:"paymentId"`
	OrderID       int64         `json:"orderId"`
	UserID        int64         `json:"userId"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Amount        Amount        `json:"amount"`
	CreatedAt     time.Time     `json:"createdAt"`
}
