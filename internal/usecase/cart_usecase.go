package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartStore はセッション単位のカート。
// チェックアウトまではバックエンドに触らず、明細一覧を
// ClientStorage（cart:<session>）へ都度書き戻す。
// 状態はリクエストごとにストレージから読み直すので、
// 同一セッションの同時書き込みは後勝ちになる。
type CartStore struct {
	storage repo.ClientStorage
	key     string
	items   []model.CartItem
	total   float64
}

// NewCartStore は保存済みカートを読み込んで返す。
// キーが無い・JSONが壊れている場合は空のカートとして始める。
func NewCartStore(ctx context.Context, storage repo.ClientStorage, sessionID string) *CartStore {
	s := &CartStore{
		storage: storage,
		key:     "cart:" + sessionID,
	}

	raw, err := storage.Get(ctx, s.key)
	if err == nil {
		var items []model.CartItem
		if jsonErr := json.Unmarshal([]byte(raw), &items); jsonErr == nil {
			s.items = items
		}
	}

	s.CalculateTotal()
	return s
}

// AddItem は商品をカートへ追加する。
// 同一商品がすでにある場合は明細を増やさず数量を加算する。
func (s *CartStore) AddItem(ctx context.Context, p model.Product, quantity int64) error {
	if quantity < 1 {
		quantity = 1
	}

	for i := range s.items {
		if s.items[i].ProductID == p.ProductID {
			s.items[i].Quantity += quantity
			return s.save(ctx)
		}
	}

	s.items = append(s.items, model.CartItem{
		ProductID:   p.ProductID,
		ProductName: p.ProductName,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Quantity:    quantity,
		AddedAt:     time.Now(),
	})

	return s.save(ctx)
}

// RemoveItem は指定商品の明細をすべて取り除く。
func (s *CartStore) RemoveItem(ctx context.Context, productID int64) error {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept

	return s.save(ctx)
}

// UpdateQuantity は該当明細がある場合だけ数量を上書きする。
// 無い場合は何もしない（明細は作らず、エラーにもしない）。
func (s *CartStore) UpdateQuantity(ctx context.Context, productID int64, quantity int64) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return s.save(ctx)
		}
	}
	return nil
}

// Clear はカートを空にし、保存キー自体を消す
// （空配列を書き戻すのではなくキーを無くす）。
func (s *CartStore) Clear(ctx context.Context) error {
	s.items = nil
	s.total = 0

	if err := s.storage.Delete(ctx, s.key); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	return nil
}

// CalculateTotal は Σ(価格×数量) を再計算する。
// 価格は読み込み時点で数値化済み（壊れた値は0）なので失敗しない。
func (s *CartStore) CalculateTotal() {
	var sum float64
	for _, it := range s.items {
		sum += float64(it.Price) * float64(it.Quantity)
	}
	s.total = sum
}

// ItemCount は数量の合計。
func (s *CartStore) ItemCount() int64 {
	var count int64
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

func (s *CartStore) Items() []model.CartItem {
	out := make([]model.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *CartStore) Total() float64 {
	return s.total
}

// FormattedTotal は "25.00" 形式の合計。
func (s *CartStore) FormattedTotal() string {
	return model.Amount(s.total).Fixed2()
}

// Subtotal は明細から直接計算した小計の文字列。
func (s *CartStore) Subtotal() string {
	var sum float64
	for _, it := range s.items {
		sum += float64(it.Price) * float64(it.Quantity)
	}
	return model.Amount(sum).Fixed2()
}

// 全明細を書き戻してから合計を取り直す。
func (s *CartStore) save(ctx context.Context) error {
	b, err := json.Marshal(s.items)
	if err != nil {
		return err
	}

	if err := s.storage.Set(ctx, s.key, string(b)); err != nil {
		return err
	}

	s.CalculateTotal()
	return nil
}
