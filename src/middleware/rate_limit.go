package middleware

import (
	"net/http"
	"sync"
	"time"

	"mcnutrition/src/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	rateLimitWindow   = time.Minute
	rateLimitRequests = 300
)

type rateWindow struct {
	start time.Time
	count int
}

var (
	rateMu      sync.Mutex
	rateClients = make(map[string]*rateWindow)
)

// RateLimitMiddleware IPごとの固定ウィンドウレート制限
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		now := time.Now()

		rateMu.Lock()
		w, ok := rateClients[clientIP]
		if !ok || now.Sub(w.start) > rateLimitWindow {
			w = &rateWindow{start: now}
			rateClients[clientIP] = w
		}
		w.count++
		count := w.count
		rateMu.Unlock()

		if count > rateLimitRequests {
			logger.WithFields(logrus.Fields{
				"client_ip": clientIP,
				"count":     count,
			}).Warn("レート制限に達しました")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too Many Requests",
				"retry_after": int(rateLimitWindow.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
