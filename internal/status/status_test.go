package status

import (
	"testing"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOrder_LegacyLowercase(t *testing.T) {
	assert.Equal(t, model.OrderStatusPending, NormalizeOrder("pending"))
	assert.Equal(t, model.OrderStatusConfirmed, NormalizeOrder("confirmed"))
	assert.Equal(t, model.OrderStatusProcessing, NormalizeOrder("processing"))
	assert.Equal(t, model.OrderStatusShipped, NormalizeOrder("shipped"))
	assert.Equal(t, model.OrderStatusCancelled, NormalizeOrder("cancelled"))

	// delivered は独立したステータスではなく COMPLETED に寄せる
	assert.Equal(t, model.OrderStatusCompleted, NormalizeOrder("delivered"))
}

func TestNormalizeOrder_UppercaseUnchanged(t *testing.T) {
	assert.Equal(t, model.OrderStatusPending, NormalizeOrder("PENDING"))

	// 大文字ならたとえ未知でもそのまま
	assert.Equal(t, model.OrderStatus("DELIVERED"), NormalizeOrder("DELIVERED"))
	assert.Equal(t, model.OrderStatus("BOGUS"), NormalizeOrder("BOGUS"))
}

func TestNormalizeOrder_MixedCase(t *testing.T) {
	// 混在表記は旧表記マップを経由して正準形へ
	assert.Equal(t, model.OrderStatusShipped, NormalizeOrder("Shipped"))
	assert.Equal(t, model.OrderStatusCompleted, NormalizeOrder("Delivered"))

	// 旧表記に無い綴りは大文字化のみ
	assert.Equal(t, model.OrderStatus("SOMETHING"), NormalizeOrder("Something"))
}

func TestNormalizeOrder_Empty(t *testing.T) {
	assert.Equal(t, model.OrderStatus(""), NormalizeOrder(""))
}

func TestNormalizePaymentAndDelivery_CaseFoldOnly(t *testing.T) {
	// 支払・配送ドメインには旧表記マップが無い
	assert.Equal(t, model.PaymentStatusCompleted, NormalizePayment("completed"))
	assert.Equal(t, model.PaymentStatus("DELIVERED"), NormalizePayment("delivered"))
	assert.Equal(t, model.DeliveryStatusInTransit, NormalizeDelivery("in_transit"))
}

func TestReviewEligible(t *testing.T) {
	assert.True(t, ReviewEligible("COMPLETED"))
	assert.True(t, ReviewEligible("delivered"))
	assert.True(t, ReviewEligible("DELIVERED"))

	assert.False(t, ReviewEligible("PENDING"))
	assert.False(t, ReviewEligible("shipped"))
	assert.False(t, ReviewEligible(""))
}

func TestProgressIndex(t *testing.T) {
	assert.Equal(t, 0, ProgressIndex("PENDING"))
	assert.Equal(t, 1, ProgressIndex("CONFIRMED"))
	assert.Equal(t, 2, ProgressIndex("PROCESSING"))
	assert.Equal(t, 3, ProgressIndex("SHIPPED"))
	assert.Equal(t, 4, ProgressIndex("COMPLETED"))

	// 旧表記も正準化してから引く
	assert.Equal(t, 4, ProgressIndex("delivered"))

	// 見つからない場合は0（先頭ステップと同じ値になる）
	assert.Equal(t, 0, ProgressIndex("bogus"))
	assert.Equal(t, 0, ProgressIndex("CANCELLED"))
	assert.Equal(t, 0, ProgressIndex(""))
}

func TestProgressStep_DistinguishesNotFound(t *testing.T) {
	step, ok := ProgressStep("PENDING")
	assert.True(t, ok)
	assert.Equal(t, model.OrderStatusPending, step.Key)

	_, ok = ProgressStep("bogus")
	assert.False(t, ok)

	_, ok = ProgressStep("CANCELLED")
	assert.False(t, ok)
}

func TestIsValidOrderStatus(t *testing.T) {
	// 大文字化のみの所属判定（旧表記マップは通さない）
	assert.True(t, IsValidOrderStatus("confirmed"))
	assert.True(t, IsValidOrderStatus("CANCELLED"))

	assert.False(t, IsValidOrderStatus("delivered"))
	assert.False(t, IsValidOrderStatus("bogus"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestIsPaymentCompleted(t *testing.T) {
	assert.True(t, IsPaymentCompleted("COMPLETED"))
	assert.False(t, IsPaymentCompleted("completed"))
	assert.False(t, IsPaymentCompleted("PENDING"))
}

func TestIsDeliveryCompleted(t *testing.T) {
	assert.True(t, IsDeliveryCompleted("DELIVERED"))
	assert.True(t, IsDeliveryCompleted("COLLECTED"))
	assert.False(t, IsDeliveryCompleted("IN_TRANSIT"))
}

func TestValidStatusLists(t *testing.T) {
	assert.Len(t, ValidOrderStatuses(), 6)
	assert.Len(t, ValidPaymentStatuses(), 5)
	assert.Len(t, ValidDeliveryStatuses(), 9)
}
