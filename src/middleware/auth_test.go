package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mcnutrition/src/config"
	"mcnutrition/src/domain"
	"mcnutrition/src/logger"
	"mcnutrition/src/middleware"
	"mcnutrition/src/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
	// ミドルウェアはパッケージロガーを使う
	if err := logger.InitLogger("error"); err != nil {
		panic(err)
	}
}

func identityTestRouter(jwtService service.JWTService) (*gin.Engine, *domain.Identity, *string) {
	var captured domain.Identity
	var sessionKey string

	r := gin.New()
	r.Use(middleware.IdentityMiddleware(jwtService, service.NewSessionService()))
	r.GET("/probe", func(c *gin.Context) {
		if id, ok := middleware.GetIdentity(c); ok {
			captured = id
		}
		sessionKey = middleware.GetSessionKey(c)
		c.Status(http.StatusOK)
	})
	return r, &captured, &sessionKey
}

func TestIdentityMiddleware(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", Issuer: "mcnutrition"}}
	jwtService := service.NewJWTService(cfg)

	t.Run("bearer token resolves an authenticated identity", func(t *testing.T) {
		r, captured, _ := identityTestRouter(jwtService)

		token, err := jwtService.GenerateToken("auth0|user1", "Alice", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, captured.Authenticated)
		assert.Equal(t, "auth0|user1", captured.Key)
	})

	t.Run("session header resolves an anonymous identity", func(t *testing.T) {
		r, captured, sessionKey := identityTestRouter(jwtService)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-Session-Id", "sess_1700000000000_abc123def")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.False(t, captured.Authenticated)
		assert.Equal(t, "sess_1700000000000_abc123def", captured.Key)
		assert.Equal(t, "sess_1700000000000_abc123def", *sessionKey)
	})

	t.Run("malformed session key is ignored", func(t *testing.T) {
		r, captured, _ := identityTestRouter(jwtService)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("X-Session-Id", "totally-bogus")
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, captured.Key)
	})

	t.Run("invalid bearer token is rejected", func(t *testing.T) {
		r, _, _ := identityTestRouter(jwtService)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAuth(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret"}}
	jwtService := service.NewJWTService(cfg)

	r := gin.New()
	r.Use(middleware.IdentityMiddleware(jwtService, service.NewSessionService()))
	r.GET("/private", middleware.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// 匿名セッションでは不足
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("X-Session-Id", "sess_1700000000000_abc123def")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 認証済みなら通る
	token, err := jwtService.GenerateToken("auth0|user1", "Alice", time.Hour)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("super-secret-key"), bcrypt.MinCost)
	require.NoError(t, err)

	newRouter := func(adminHash string) *gin.Engine {
		r := gin.New()
		r.GET("/admin", middleware.AdminMiddleware(adminHash), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("valid key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Admin-Key", "super-secret-key")
		newRouter(string(hash)).ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Admin-Key", "guess")
		newRouter(string(hash)).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
		newRouter(string(hash)).ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unconfigured admin key disables the API", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("X-Admin-Key", "anything")
		newRouter("").ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
