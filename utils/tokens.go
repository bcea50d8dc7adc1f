package utils

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// AccessToken is the claims payload of first-party access tokens.
type AccessToken struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

// TokenManager issues access/refresh token pairs and tracks refresh tokens in
// Redis so they can be rotated and revoked.
type TokenManager struct {
	redis         *redis.Client
	accessSecret  string
	refreshSecret string
}

func NewTokenManager(redisClient *redis.Client, accessSecret, refreshSecret string) *TokenManager {
	return &TokenManager{
		redis:         redisClient,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
	}
}

const refreshTokenTTL = 365 * 24 * time.Hour

func (m *TokenManager) CreateTokenPair(ctx context.Context, id uint, role string) (*jwt.TokenPair, error) {
	accessTokenSigner := jwt.NewSigner(jwt.HS256, m.accessSecret, 24*time.Hour)
	refreshTokenSigner := jwt.NewSigner(jwt.HS256, m.refreshSecret, refreshTokenTTL)

	accessToken, err := accessTokenSigner.Sign(AccessToken{ID: id, Role: role})
	if err != nil {
		return nil, err
	}

	userID := strconv.FormatUint(uint64(id), 10)
	refreshToken, err := refreshTokenSigner.Sign(jwt.Claims{Subject: userID})
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	if err := m.redis.Set(ctx, string(refreshToken), "true", refreshTokenTTL+5*time.Minute).Err(); err != nil {
		return nil, err
	}

	return &tokenPair, nil
}

// ConsumeRefreshToken checks the token is still live and removes it so a
// stolen refresh token cannot be replayed. Returns the subject user ID.
func (m *TokenManager) ConsumeRefreshToken(ctx context.Context, token string, subject string) (uint, bool) {
	valid, err := m.redis.Get(ctx, token).Result()
	if err != nil || valid != "true" {
		return 0, false
	}

	m.redis.Del(ctx, token)

	userID, err := strconv.ParseUint(subject, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}
