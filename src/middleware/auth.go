package middleware

import (
	"net/http"
	"strings"

	"mcnutrition/src/domain"
	"mcnutrition/src/logger"
	"mcnutrition/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	// ContextIdentity リクエストの解決済みアイデンティティ
	ContextIdentity = "identity"
	// ContextSessionKey ブラウザが保持する匿名セッションキー
	ContextSessionKey = "session_key"

	sessionHeader = "X-Session-Id"
	adminHeader   = "X-Admin-Key"
)

// IdentityMiddleware リクエストのアイデンティティを解決する。
// Bearerトークンがあれば検証して認証済みユーザーとして扱い、
// なければX-Session-Idヘッダーの匿名セッションキーを使う。
// どちらも無いリクエストはアイデンティティ無しで通す
func IdentityMiddleware(jwtService service.JWTService, sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionKey := c.GetHeader(sessionHeader)
		if sessionKey != "" && !sessions.IsSessionKey(sessionKey) {
			logger.WithField("client_ip", c.ClientIP()).Warn("不正な形式のセッションキーを無視します")
			sessionKey = ""
		}
		if sessionKey != "" {
			c.Set(ContextSessionKey, sessionKey)
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if sessionKey != "" {
				c.Set(ContextIdentity, domain.Identity{Key: sessionKey})
			}
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			logger.WithField("client_ip", c.ClientIP()).Warn("認証失敗: Bearer tokenの形式が正しくありません")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		identity, err := jwtService.ValidateToken(token)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"client_ip": c.ClientIP(),
				"error":     err.Error(),
			}).Warn("認証失敗: 無効なJWTトークン")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextIdentity, *identity)
		c.Next()
	}
}

// RequireIdentity アイデンティティ必須のエンドポイント用
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(ContextIdentity); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication or session key required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuth 認証済みユーザー必須のエンドポイント用
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok || !identity.Authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminMiddleware 管理APIキーを検証する。キーはbcryptハッシュと照合する
func AdminMiddleware(adminKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKeyHash == "" {
			logger.WithField("client_ip", c.ClientIP()).Warn("管理APIキーが未設定のため管理APIを拒否します")
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin API is disabled"})
			c.Abort()
			return
		}

		key := c.GetHeader(adminHeader)
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin key required"})
			c.Abort()
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(adminKeyHash), []byte(key)); err != nil {
			logger.WithField("client_ip", c.ClientIP()).Warn("認証失敗: 管理APIキーが一致しません")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin key"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetIdentity リクエストコンテキストからアイデンティティを取得
func GetIdentity(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}

// GetSessionKey リクエストコンテキストから匿名セッションキーを取得
func GetSessionKey(c *gin.Context) string {
	v, ok := c.Get(ContextSessionKey)
	if !ok {
		return ""
	}
	key, _ := v.(string)
	return key
}
