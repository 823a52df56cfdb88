package model

import "time"

// 配送ステータス。DELIVERED と COLLECTED がどちらも完了扱い。
type DeliveryStatus string

const (
	DeliveryStatusPending            DeliveryStatus = "PENDING"
	DeliveryStatusConfirmed          DeliveryStatus = "CONFIRMED"
	DeliveryStatusInTransit          DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusOutForDelivery     DeliveryStatus = "OUT_FOR_DELIVERY"
	DeliveryStatusReadyForCollection DeliveryStatus = "READY_FOR_COLLECTION"
	DeliveryStatusDelivered          DeliveryStatus = "DELIVERED"
	DeliveryStatusCollected          DeliveryStatus = "COLLECTED"
	DeliveryStatusFailedDelivery     DeliveryStatus = "FAILED_DELIVERY"
	DeliveryStatusReturned           DeliveryStatus = "RETURNED"
)

type DeliveryMethod string

const (
	DeliveryMethodDelivery   DeliveryMethod = "DELIVERY"
	DeliveryMethodCollection DeliveryMethod = "COLLECTION"
)

// 注文と1:1の配送レコード。
type Delivery struct {
	DeliveryID     int64          `json:"deliveryId"`
	OrderID        int64          `json:"orderId"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	DeliveryStatus DeliveryStatus `json:"deliveryStatus"`
	CourierName    string         `json:"courierName"`
	CreatedAt      time.Time      `json:"createdAt"`
}
