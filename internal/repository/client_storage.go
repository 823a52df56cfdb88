package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// ClientStorage はブラウザのlocalStorage相当の永続KVストア。
// キーはセッション単位で名前空間を分ける（cart:<session> など）。
// 値はシリアライズ済みのJSON文字列をそのまま入れる。
type ClientStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
