package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderDisplay_Known(t *testing.T) {
	d := OrderDisplay("PENDING")
	assert.Equal(t, "Pending Payment", d.Label)
	assert.Equal(t, "orange", d.Color)
	assert.Equal(t, "⏳", d.Icon)
	assert.Equal(t, "status-pending", d.CSSClass)
}

func TestOrderDisplay_LegacyLowercase(t *testing.T) {
	// delivered は COMPLETED の表示になる
	d := OrderDisplay("delivered")
	assert.Equal(t, "Completed", d.Label)
	assert.Equal(t, "green", d.Color)
}

func TestOrderDisplay_Unknown(t *testing.T) {
	d := OrderDisplay("MYSTERY")
	assert.Equal(t, "MYSTERY", d.Label)
	assert.Equal(t, "gray", d.Color)
	assert.Equal(t, "❓", d.Icon)
	assert.Equal(t, "status-unknown", d.CSSClass)
}

func TestOrderDisplay_Empty(t *testing.T) {
	d := OrderDisplay("")
	assert.Equal(t, "Unknown", d.Label)
	assert.Equal(t, "gray", d.Color)
	assert.Equal(t, "❓", d.Icon)
}

func TestPaymentDisplay(t *testing.T) {
	assert.Equal(t, "Payment Completed", PaymentDisplay("completed").Label)
	assert.Equal(t, "Payment Failed", PaymentDisplay("FAILED").Label)

	// 支払ドメインのフォールバックにはアイコンが無い
	d := PaymentDisplay("MYSTERY")
	assert.Equal(t, "MYSTERY", d.Label)
	assert.Empty(t, d.Icon)
	assert.Equal(t, "status-unknown", d.CSSClass)
}

func TestDeliveryDisplay(t *testing.T) {
	assert.Equal(t, "Ready for Collection", DeliveryDisplay("ready_for_collection").Label)
	assert.Equal(t, "Returned to Store", DeliveryDisplay("RETURNED").Label)
	assert.Equal(t, "Unknown", DeliveryDisplay("").Label)
}

func TestFormatShortcuts(t *testing.T) {
	assert.Equal(t, "Shipped/Ready", FormatOrderStatus("shipped"))
	assert.Equal(t, "Payment Pending", FormatPaymentStatus("PENDING"))
	assert.Equal(t, "In Transit", FormatDeliveryStatus("IN_TRANSIT"))

	assert.Equal(t, "status-shipped", OrderStatusClass("SHIPPED"))
	assert.Equal(t, "status-failed", PaymentStatusClass("failed"))
	assert.Equal(t, "status-collected", DeliveryStatusClass("COLLECTED"))
}
