package status

import "storefront/internal/domain/model"

// ステータス1件分の表示情報。
// Description/BgColor/BorderColor/Icon はドメインによっては持たない。
type Display struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	BgColor     string `json:"bgColor,omitempty"`
	BorderColor string `json:"borderColor,omitempty"`
	Icon        string `json:"icon,omitempty"`
	CSSClass    string `json:"cssClass"`
}

var orderStatusConfig = map[model.OrderStatus]Display{
	model.OrderStatusPending: {
		Label:       "Pending Payment",
		Description: "Order created, awaiting payment",
		Color:       "orange",
		BgColor:     "#fff3cd",
		BorderColor: "#ffc107",
		Icon:        "⏳",
		CSSClass:    "status-pending",
	},
	model.OrderStatusConfirmed: {
		Label:       "Order Confirmed",
		Description: "Payment received, order confirmed",
		Color:       "blue",
		BgColor:     "#d1ecf1",
		BorderColor: "#007bff",
		Icon:        "✅",
		CSSClass:    "status-confirmed",
	},
	model.OrderStatusProcessing: {
		Label:       "Being Prepared",
		Description: "Order being prepared/packed",
		Color:       "purple",
		BgColor:     "#e2d9f3",
		BorderColor: "#6f42c1",
		Icon:        "📦",
		CSSClass:    "status-processing",
	},
	model.OrderStatusShipped: {
		Label:       "Shipped/Ready",
		Description: "Order shipped or ready for collection",
		Color:       "teal",
		BgColor:     "#d1ecf1",
		BorderColor: "#17a2b8",
		Icon:        "🚚",
		CSSClass:    "status-shipped",
	},
	model.OrderStatusCompleted: {
		Label:       "Completed",
		Description: "Order completed (reviews enabled)",
		Color:       "green",
		BgColor:     "#d4edda",
		BorderColor: "#28a745",
		Icon:        "🎉",
		CSSClass:    "status-completed",
	},
	model.OrderStatusCancelled: {
		Label:       "Cancelled",
		Description: "Order cancelled",
		Color:       "red",
		BgColor:     "#f8d7da",
		BorderColor: "#dc3545",
		Icon:        "❌",
		CSSClass:    "status-cancelled",
	},
}

var paymentStatusConfig = map[model.PaymentStatus]Display{
	model.PaymentStatusPending: {
		Label:       "Payment Pending",
		Color:       "orange",
		BgColor:     "#fff3cd",
		BorderColor: "#ffc107",
		CSSClass:    "status-pending",
	},
	model.PaymentStatusConfirmed: {
		Label:       "Payment Confirmed",
		Color:       "blue",
		BgColor:     "#d1ecf1",
		BorderColor: "#007bff",
		CSSClass:    "status-confirmed",
	},
	model.PaymentStatusCompleted: {
		Label:       "Payment Completed",
		Color:       "green",
		BgColor:     "#d4edda",
		BorderColor: "#28a745",
		CSSClass:    "status-completed",
	},
	model.PaymentStatusFailed: {
		Label:       "Payment Failed",
		Color:       "red",
		BgColor:     "#f8d7da",
		BorderColor: "#dc3545",
		CSSClass:    "status-failed",
	},
	model.PaymentStatusCancelled: {
		Label:       "Payment Cancelled",
		Color:       "red",
		BgColor:     "#f8d7da",
		BorderColor: "#dc3545",
		CSSClass:    "status-cancelled",
	},
}

var deliveryStatusConfig = map[model.DeliveryStatus]Display{
	model.DeliveryStatusPending: {
		Label:       "Pending Collection/Delivery",
		Color:       "orange",
		BgColor:     "#fff3cd",
		BorderColor: "#ffc107",
		CSSClass:    "status-pending",
	},
	model.DeliveryStatusConfirmed: {
		Label:       "Confirmed for Collection/Delivery",
		Color:       "blue",
		BgColor:     "#d1ecf1",
		BorderColor: "#007bff",
		CSSClass:    "status-confirmed",
	},
	model.DeliveryStatusInTransit: {
		Label:       "In Transit",
		Color:       "blue",
		BgColor:     "#d1ecf1",
		BorderColor: "#007bff",
		CSSClass:    "status-in-transit",
	},
	model.DeliveryStatusOutForDelivery: {
		Label:       "Out for Delivery",
		Color:       "teal",
		BgColor:     "#d1ecf1",
		BorderColor: "#17a2b8",
		CSSClass:    "status-out-for-delivery",
	},
	model.DeliveryStatusReadyForCollection: {
		Label:       "Ready for Collection",
		Color:       "purple",
		BgColor:     "#e2d9f3",
		BorderColor: "#6f42c1",
		CSSClass:    "status-ready-for-collection",
	},
	model.DeliveryStatusDelivered: {
		Label:       "Delivered",
		Color:       "green",
		BgColor:     "#d4edda",
		BorderColor: "#28a745",
		CSSClass:    "status-delivered",
	},
	model.DeliveryStatusCollected: {
		Label:       "Collected",
		Color:       "green",
		BgColor:     "#d4edda",
		BorderColor: "#28a745",
		CSSClass:    "status-collected",
	},
	model.DeliveryStatusFailedDelivery: {
		Label:       "Failed Delivery Attempt",
		Color:       "red",
		BgColor:     "#f8d7da",
		BorderColor: "#dc3545",
		CSSClass:    "status-failed-delivery",
	},
	model.DeliveryStatusReturned: {
		Label:       "Returned to Store",
		Color:       "gray",
		BgColor:     "#e9ecef",
		BorderColor: "#6c757d",
		CSSClass:    "status-returned",
	},
}

// 不明なステータス用のフォールバック。
// labelには入力をそのまま出す（空のときは "Unknown"）。
func unknownDisplay(raw string, withIcon bool) Display {
	label := raw
	if label == "" {
		label = "Unknown"
	}

	d := Display{
		Label:    label,
		Color:    "gray",
		CSSClass: "status-unknown",
	}
	if withIcon {
		d.Icon = "❓"
	}
	return d
}

// 注文ステータスの表示情報。未知の値でもエラーにはしない。
func OrderDisplay(raw string) Display {
	if raw == "" {
		return unknownDisplay("", true)
	}

	if d, ok := orderStatusConfig[NormalizeOrder(raw)]; ok {
		return d
	}
	return unknownDisplay(raw, true)
}

// 支払ステータスの表示情報。大文字化のみ（旧表記マップは無い）。
func PaymentDisplay(raw string) Display {
	if raw == "" {
		return unknownDisplay("", false)
	}

	if d, ok := paymentStatusConfig[NormalizePayment(raw)]; ok {
		return d
	}
	return unknownDisplay(raw, false)
}

// 配送ステータスの表示情報。
func DeliveryDisplay(raw string) Display {
	if raw == "" {
		return unknownDisplay("", false)
	}

	if d, ok := deliveryStatusConfig[NormalizeDelivery(raw)]; ok {
		return d
	}
	return unknownDisplay(raw, false)
}

// 表示ラベルだけ欲しい場合のショートカット。
func FormatOrderStatus(raw string) string    { return OrderDisplay(raw).Label }
func FormatPaymentStatus(raw string) string  { return PaymentDisplay(raw).Label }
func FormatDeliveryStatus(raw string) string { return DeliveryDisplay(raw).Label }

func OrderStatusClass(raw string) string    { return OrderDisplay(raw).CSSClass }
func PaymentStatusClass(raw string) string  { return PaymentDisplay(raw).CSSClass }
func DeliveryStatusClass(raw string) string { return DeliveryDisplay(raw).CSSClass }
