package repository

import (
	"context"
	"errors"
	"time"

	repo "storefront/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// client_storage テーブルの1行。
type StorageEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(255);column:key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (StorageEntry) TableName() string { return "client_storage" }

type ClientStorageGorm struct {
	db *gorm.DB
}

// DI
func NewClientStorageGorm(db *gorm.DB) *ClientStorageGorm {
	return &ClientStorageGorm{db: db}
}

func (r *ClientStorageGorm) Get(ctx context.Context, key string) (string, error) {
	var e StorageEntry

	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&e).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", repo.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

// Set は無ければ作成、あれば上書き。
func (r *ClientStorageGorm) Set(ctx context.Context, key string, value string) error {
	err := r.db.WithContext(ctx).Create(&StorageEntry{Key: key, Value: value}).Error
	if err == nil {
		return nil
	}

	// 同じキーが同時に作られて一意制約に当たったら更新へ切り替える
	if !isUniqueViolation(err) {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&StorageEntry{}).
		Where("key = ?", key).
		Update("value", value)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete はキーごと消す。無くてもエラーにしない（removeItemと同じ挙動）。
func (r *ClientStorageGorm) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&StorageEntry{}).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
