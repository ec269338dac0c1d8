package service

import (
	"fmt"
	"time"

	"mcnutrition/src/config"
	"mcnutrition/src/domain"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims IDプロバイダが発行するトークンのクレーム
type IdentityClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// JWTService JWT管理サービスのインターフェース
type JWTService interface {
	GenerateToken(userID, name string, expiresIn time.Duration) (string, error)
	ValidateToken(tokenString string) (*domain.Identity, error)
}

// jwtService JWT管理サービスの実装
type jwtService struct {
	config *config.Config
}

// NewJWTService JWT管理サービスを作成
func NewJWTService(cfg *config.Config) JWTService {
	return &jwtService{config: cfg}
}

// GenerateToken ユーザートークンを生成（ローカル開発・テスト用）
func (s *jwtService) GenerateToken(userID, name string, expiresIn time.Duration) (string, error) {
	claims := &IdentityClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.config.Auth.Issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Auth.JWTSecret))
}

// ValidateToken トークンを検証し、認証済みアイデンティティを返す
func (s *jwtService) ValidateToken(tokenString string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Auth.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return &domain.Identity{
		Authenticated: true,
		Key:           claims.Subject,
		DisplayName:   claims.Name,
	}, nil
}
