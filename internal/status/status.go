// Package status は注文・支払・配送の3ドメインのステータスを扱う。
// 旧バックエンドの小文字ステータスと新しい大文字enumが混在するため、
// 比較の前に必ずここで正準形へ寄せる。純粋関数のみでエラーは返さない。
package status

import (
	"strings"

	"storefront/internal/domain/model"
)

// 旧小文字表記 → 正準形。
// delivered→COMPLETED がレビュー機能のための要のマッピング。
var legacyOrderStatus = map[string]model.OrderStatus{
	"pending":    model.OrderStatusPending,
	"confirmed":  model.OrderStatusConfirmed,
	"processing": model.OrderStatusProcessing,
	"shipped":    model.OrderStatusShipped,
	"delivered":  model.OrderStatusCompleted,
	"cancelled":  model.OrderStatusCancelled,
}

// 注文ステータスの正準化。
//   - すでに全部大文字ならそのまま返す
//   - 旧小文字表記はマップで変換
//   - どちらでもない表記は大文字化して返す（検証はしない）
func NormalizeOrder(raw string) model.OrderStatus {
	if raw == "" {
		return ""
	}

	if raw == strings.ToUpper(raw) {
		return model.OrderStatus(raw)
	}

	if s, ok := legacyOrderStatus[strings.ToLower(raw)]; ok {
		return s
	}
	return model.OrderStatus(strings.ToUpper(raw))
}

// 支払ステータスには旧表記が無いので大文字化のみ。
func NormalizePayment(raw string) model.PaymentStatus {
	return model.PaymentStatus(strings.ToUpper(raw))
}

// 配送ステータスも大文字化のみ。
func NormalizeDelivery(raw string) model.DeliveryStatus {
	return model.DeliveryStatus(strings.ToUpper(raw))
}

// レビュー可能か。
// 正準化後に COMPLETED、または大文字 DELIVERED をそのまま渡された場合のみ真。
// （delivered は正準化で COMPLETED になるため、DELIVERED 分岐が通るのは
// 入力が最初から大文字 DELIVERED だったときだけ）
func ReviewEligible(raw string) bool {
	if raw == "" {
		return false
	}

	s := NormalizeOrder(raw)
	return s == model.OrderStatusCompleted || s == "DELIVERED"
}

// 支払完了か。
func IsPaymentCompleted(raw string) bool {
	return model.PaymentStatus(raw) == model.PaymentStatusCompleted
}

// 配送完了か。DELIVERED（配達）と COLLECTED（店頭受取）の両方が完了。
func IsDeliveryCompleted(raw string) bool {
	s := model.DeliveryStatus(raw)
	return s == model.DeliveryStatusDelivered || s == model.DeliveryStatusCollected
}

// 注文の進捗表示に使う5ステップ（CANCELLED は進捗に出さない）。
type ProgressStepInfo struct {
	Key         model.OrderStatus `json:"key"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
}

var progressSteps = []ProgressStepInfo{
	{Key: model.OrderStatusPending, Label: "Order Placed", Description: "Awaiting payment"},
	{Key: model.OrderStatusConfirmed, Label: "Payment Confirmed", Description: "Order confirmed"},
	{Key: model.OrderStatusProcessing, Label: "Preparing", Description: "Being prepared"},
	{Key: model.OrderStatusShipped, Label: "Shipped/Ready", Description: "On the way or ready for pickup"},
	{Key: model.OrderStatusCompleted, Label: "Completed", Description: "Delivered or collected"},
}

// ProgressSteps は進捗ステップの一覧を返す。
func ProgressSteps() []ProgressStepInfo {
	out := make([]ProgressStepInfo, len(progressSteps))
	copy(out, progressSteps)
	return out
}

// ProgressIndex は正準化したステータスの進捗位置（0始まり）。
// 見つからない場合も0を返す（既存画面との互換のため。
// 区別したい呼び出し側は ProgressStep を使う）。
func ProgressIndex(raw string) int {
	i, ok := progressIndex(raw)
	if !ok {
		return 0
	}
	return i
}

// ProgressStep は進捗ステップと、ステータスが5ステップに
// 含まれるかどうかを返す。
func ProgressStep(raw string) (ProgressStepInfo, bool) {
	i, ok := progressIndex(raw)
	if !ok {
		return ProgressStepInfo{}, false
	}
	return progressSteps[i], true
}

func progressIndex(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}

	s := NormalizeOrder(raw)
	for i, step := range progressSteps {
		if step.Key == s {
			return i, true
		}
	}
	return 0, false
}

// IsValidOrderStatus は正準キー集合への所属判定。
// 大文字化のみで旧表記マップは通さない（confirmed は真、delivered は偽）。
func IsValidOrderStatus(raw string) bool {
	if raw == "" {
		return false
	}

	_, ok := orderStatusConfig[model.OrderStatus(strings.ToUpper(raw))]
	return ok
}

// 正準値の一覧。表示順は遷移順に揃える。
func ValidOrderStatuses() []model.OrderStatus {
	return []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusConfirmed,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusCompleted,
		model.OrderStatusCancelled,
	}
}

func ValidPaymentStatuses() []model.PaymentStatus {
	return []model.PaymentStatus{
		model.PaymentStatusPending,
		model.PaymentStatusConfirmed,
		model.PaymentStatusCompleted,
		model.PaymentStatusFailed,
		model.PaymentStatusCancelled,
	}
}

func ValidDeliveryStatuses() []model.DeliveryStatus {
	return []model.DeliveryStatus{
		model.DeliveryStatusPending,
		model.DeliveryStatusConfirmed,
		model.DeliveryStatusInTransit,
		model.DeliveryStatusOutForDelivery,
		model.DeliveryStatusReadyForCollection,
		model.DeliveryStatusDelivered,
		model.DeliveryStatusCollected,
		model.DeliveryStatusFailedDelivery,
		model.DeliveryStatusReturned,
	}
}
