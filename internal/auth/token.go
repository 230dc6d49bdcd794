package auth

import (
	"errors"
	"time"

	"github.com/blues/cfp/internal/config"
	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("无效的令牌")

// Claims JWT载荷
type Claims struct {
	UserId int64  `json:"uid"`
	Email  string `json:"em"`
	Name   string `json:"nm"`
	jwt.RegisteredClaims
}

// Identity 解析令牌后得到的用户身份
type Identity struct {
	UserId int64
	Email  string
	Name   string
}

// TokenManager 签发和校验JWT
type TokenManager struct {
	secretKey       string
	accessTokenTTL  int
	refreshTokenTTL int
}

// NewTokenManager 创建令牌管理器
func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secretKey:       cfg.Secret,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

func (tm *TokenManager) createToken(identity *Identity, ttlHours int) (string, error) {
	claims := &Claims{
		UserId: identity.UserId,
		Email:  identity.Email,
		Name:   identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * time.Duration(ttlHours))),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tm.secretKey))
}

// CreateTokens 签发access token和refresh token
func (tm *TokenManager) CreateTokens(identity *Identity) (accessToken, refreshToken string, err error) {
	accessToken, err = tm.createToken(identity, tm.accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = tm.createToken(identity, tm.refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// CheckToken 校验令牌并返回用户身份
func (tm *TokenManager) CheckToken(requestToken string) (*Identity, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(requestToken, &claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte(tm.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &Identity{
		UserId: claims.UserId,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
