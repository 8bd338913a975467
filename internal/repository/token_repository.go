package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"catalog-import-service/internal/models"
)

const tokenCacheTTL = 5 * time.Minute

// TokenRepositoryInterface defines the interface for API token lookups
type TokenRepositoryInterface interface {
	IsValidToken(ctx context.Context, token string) (bool, error)
}

// TokenRepository validates API tokens against the database with a
// short-lived redis cache in front. It degrades to plain database
// lookups when redis is unavailable.
type TokenRepository struct {
	db    *gorm.DB
	cache *redis.Client
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *gorm.DB, cache *redis.Client) *TokenRepository {
	return &TokenRepository{db: db, cache: cache}
}

func tokenCacheKey(token string) string {
	sum := md5.Sum([]byte(token))
	return fmt.Sprintf("api_token:%s", hex.EncodeToString(sum[:]))
}

// IsValidToken reports whether the token exists and is enabled.
func (r *TokenRepository) IsValidToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	key := tokenCacheKey(token)
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, key).Result()
		if err == nil {
			return cached == "1", nil
		}
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.APIToken{}).
		Where("token = ? AND status = ?", token, 1).
		Count(&count).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	valid := count > 0
	if r.cache != nil {
		value := "0"
		if valid {
			value = "1"
		}
		r.cache.Set(ctx, key, value, tokenCacheTTL)
	}
	return valid, nil
}
