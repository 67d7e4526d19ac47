package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// グローバル参照はせず、各コンポーネントへ明示的に渡す。
type Config struct {
	// GitHub
	GitHubUsername string
	GitHubToken    string // 空の場合、コントリビューション取得はRESTフォールバックになる

	// Medium
	MediumUsername string

	// Contact（書き込みパス）
	ResendAPIKey string
	ContactFrom  string
	ContactTo    string

	// Fetch
	FetchTimeout time.Duration
	FetchMaxSize int64
	CacheTTL     time.Duration

	// Rate Limit（req/min単位）
	RateLimitGeneral int
	RateLimitContact int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string

	// Logging
	LogLevel string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
// メール送信系は任意（未設定ならコンタクトエンドポイントが500を返す）。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.GitHubUsername = os.Getenv("GITHUB_USERNAME")
	if cfg.GitHubUsername == "" {
		missing = append(missing, "GITHUB_USERNAME")
	}

	cfg.MediumUsername = os.Getenv("MEDIUM_USERNAME")
	if cfg.MediumUsername == "" {
		missing = append(missing, "MEDIUM_USERNAME")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.ContactFrom = os.Getenv("CONTACT_FROM")
	cfg.ContactTo = os.Getenv("CONTACT_TO")

	cfg.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", 10*time.Second)
	cfg.FetchMaxSize = getEnvInt64("FETCH_MAX_SIZE", 5242880)
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", time.Hour)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitContact = getEnvInt("RATE_LIMIT_CONTACT", 5)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	return cfg, nil
}

// MailConfigured はメール送信に必要な設定が揃っているかを返す。
func (c *Config) MailConfigured() bool {
	return c.ResendAPIKey != "" && c.ContactFrom != "" && c.ContactTo != ""
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
