package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const sessionKeyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// SessionService 匿名セッションキーの発行と検査
type SessionService interface {
	NewSessionKey() string
	IsSessionKey(key string) bool
}

type sessionService struct{}

// NewSessionService セッションサービスを作成
func NewSessionService() SessionService {
	return &sessionService{}
}

// NewSessionKey 匿名アイデンティティのキーを発行する。
// 形式は sess_<ミリ秒タイムスタンプ>_<ランダム英数字>
func (s *sessionService) NewSessionKey() string {
	return fmt.Sprintf("sess_%d_%s", time.Now().UnixMilli(), randomBase36(9))
}

// IsSessionKey reports whether the key looks like an anonymous session key.
func (s *sessionService) IsSessionKey(key string) bool {
	return strings.HasPrefix(key, "sess_")
}

func randomBase36(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = sessionKeyAlphabet[rand.Intn(len(sessionKeyAlphabet))]
	}
	return string(b)
}
