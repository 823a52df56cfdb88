// Package auth はバックエンドが発行したbearerトークンを
// セッション単位で保管し、認証・権限の判定を提供する。
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	repo "storefront/internal/repository"

	"github.com/golang-jwt/jwt/v4"
)

type Service struct {
	storage repo.ClientStorage
	secret  []byte
}

// DI。secretが空の場合は署名検証せずクレームだけ読む
// （SPA構成と同じ扱い。expは見る）。
func NewService(storage repo.ClientStorage, secret string) *Service {
	return &Service{
		storage: storage,
		secret:  []byte(secret),
	}
}

func tokenKey(sessionID string) string {
	return "token:" + sessionID
}

// Token は保存済みトークン。無ければ空文字。
func (s *Service) Token(ctx context.Context, sessionID string) string {
	v, err := s.storage.Get(ctx, tokenKey(sessionID))
	if err != nil {
		return ""
	}
	return v
}

func (s *Service) SetToken(ctx context.Context, sessionID string, token string) error {
	return s.storage.Set(ctx, tokenKey(sessionID), token)
}

func (s *Service) ClearToken(ctx context.Context, sessionID string) error {
	err := s.storage.Delete(ctx, tokenKey(sessionID))
	if errors.Is(err, repo.ErrNotFound) {
		return nil
	}
	return err
}

// IsAuthenticated はトークンが存在し、パースでき、期限内かどうか。
func (s *Service) IsAuthenticated(ctx context.Context, sessionID string) bool {
	_, ok := s.claims(ctx, sessionID)
	return ok
}

// IsAdmin は role クレームが ADMIN かどうか（大文字小文字は無視）。
func (s *Service) IsAdmin(ctx context.Context, sessionID string) bool {
	claims, ok := s.claims(ctx, sessionID)
	if !ok {
		return false
	}

	role, ok := claims["role"].(string)
	if !ok {
		return false
	}
	return strings.EqualFold(role, "ADMIN")
}

func (s *Service) claims(ctx context.Context, sessionID string) (jwt.MapClaims, bool) {
	raw := s.Token(ctx, sessionID)
	if raw == "" {
		return nil, false
	}

	if len(s.secret) > 0 {
		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		})
		if err != nil || token == nil || !token.Valid {
			return nil, false
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		return claims, ok
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	if !claims.VerifyExpiresAt(time.Now().Unix(), false) {
		return nil, false
	}
	return claims, true
}
