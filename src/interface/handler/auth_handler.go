package handler

import (
	"net/http"

	"mcnutrition/src/middleware"
	"mcnutrition/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler handles session issuance and identity introspection.
type AuthHandler struct {
	sessions service.SessionService
	logger   *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions service.SessionService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// CreateSession issues a fresh anonymous session key. The browser keeps
// the key and sends it back in the X-Session-Id header.
func (h *AuthHandler) CreateSession(c *gin.Context) {
	key := h.sessions.NewSessionKey()
	h.logger.WithField("session_key", key).Debug("匿名セッションキーを発行しました")
	c.JSON(http.StatusCreated, SessionResponseDTO{SessionKey: key})
}

// GetUser returns the caller's resolved identity.
func (h *AuthHandler) GetUser(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok || !identity.Authenticated {
		c.JSON(http.StatusOK, UserResponseDTO{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, UserResponseDTO{
		Authenticated: true,
		UserID:        identity.Key,
		Name:          identity.DisplayName,
	})
}
