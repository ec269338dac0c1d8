package config

import (
	"os"
	"strconv"
	"time"
)

// Config アプリケーション設定
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Auth    AuthConfig
	Planner PlannerConfig
	Log     LogConfig
	S3      S3Config
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port string
}

// DBConfig データベース設定
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AuthConfig 認証設定
type AuthConfig struct {
	// JWTSecret IDプロバイダが発行するトークンの検証鍵（HS256）
	JWTSecret string
	Issuer    string
	// AdminKeyHash 管理APIキーのbcryptハッシュ
	AdminKeyHash string
}

// PlannerConfig プランナー同期設定
type PlannerConfig struct {
	DebounceWindow time.Duration
	DraftMaxAge    time.Duration
	// AnonTTL 匿名レコードの有効期限（最終書き込みからの期間）
	AnonTTL time.Duration
	// DeleteAnonOnMigrate ログイン移行後に匿名レコードを削除するか
	DeleteAnonOnMigrate bool
}

// LogConfig ログ設定
type LogConfig struct {
	Level          string
	Directory      string
	UploadEnabled  bool
	UploadMaxAge   time.Duration
	UploadInterval time.Duration
}

// S3Config S3設定
type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	UseSSL          bool
}

// LoadConfig 環境変数から設定を読み込み
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getIntEnv("DB_PORT", 5432),
			User:     getEnv("DB_USER", "mcnutrition"),
			Password: getEnv("DB_PASSWORD", "mcnutrition"),
			DBName:   getEnv("DB_NAME", "mcnutrition"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", "development-secret"),
			Issuer:       getEnv("JWT_ISSUER", "mcnutrition"),
			AdminKeyHash: getEnv("ADMIN_KEY_HASH", ""),
		},
		Planner: PlannerConfig{
			DebounceWindow:      getDurationEnv("PLANNER_DEBOUNCE_WINDOW", 500*time.Millisecond),
			DraftMaxAge:         getDurationEnv("PLANNER_DRAFT_MAX_AGE", 7*24*time.Hour),
			AnonTTL:             getDurationEnv("PLANNER_ANON_TTL", 7*24*time.Hour),
			DeleteAnonOnMigrate: getBoolEnv("PLANNER_DELETE_ANON_ON_MIGRATE", false),
		},
		Log: LogConfig{
			Level:          getEnv("LOG_LEVEL", "info"),
			Directory:      getEnv("LOG_DIRECTORY", "logs"),
			UploadEnabled:  getBoolEnv("LOG_UPLOAD_ENABLED", false),
			UploadMaxAge:   getDurationEnv("LOG_UPLOAD_MAX_AGE", 24*time.Hour),
			UploadInterval: getDurationEnv("LOG_UPLOAD_INTERVAL", 1*time.Hour),
		},
		S3: S3Config{
			Endpoint:        getEnv("S3_ENDPOINT", "http://localhost:9000"), // MinIO用のデフォルト
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "mcnutrition-logs"),
			UseSSL:          getBoolEnv("S3_USE_SSL", false),
		},
	}
}

// getEnv 環境変数を取得（デフォルト値付き）
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getBoolEnv 環境変数をboolで取得
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getIntEnv 環境変数をintで取得
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getDurationEnv 環境変数をtime.Durationで取得
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
