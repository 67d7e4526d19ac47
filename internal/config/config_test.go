package config

import (
	"testing"
	"time"
)

// setRequiredEnv は必須環境変数をテスト用に設定する。
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_USERNAME", "octocat")
	t.Setenv("MEDIUM_USERNAME", "octowriter")
}

// TestLoad_RequiredMissing は必須環境変数が未設定の場合にエラーを返すことをテストする。
func TestLoad_RequiredMissing(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "")
	t.Setenv("MEDIUM_USERNAME", "")

	_, err := Load()
	if err == nil {
		t.Fatal("必須環境変数が未設定の場合はエラーになるべき")
	}
}

// TestLoad_Defaults は任意項目にデフォルト値が適用されることをテストする。
func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", cfg.FetchTimeout)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want 120", cfg.RateLimitGeneral)
	}
	if cfg.RateLimitContact != 5 {
		t.Errorf("RateLimitContact = %d, want 5", cfg.RateLimitContact)
	}
}

// TestLoad_Overrides は環境変数でデフォルト値を上書きできることをテストする。
func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FETCH_MAX_SIZE", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CacheTTL != 30*time.Minute {
		t.Errorf("CacheTTL = %v, want 30m", cfg.CacheTTL)
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.FetchMaxSize != 1024 {
		t.Errorf("FetchMaxSize = %d, want 1024", cfg.FetchMaxSize)
	}
}

// TestLoad_InvalidDuration は不正なduration値がデフォルトにフォールバックすることをテストする。
func TestLoad_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want default 1h", cfg.CacheTTL)
	}
}

// TestMailConfigured はメール設定の揃い具合を判定することをテストする。
func TestMailConfigured(t *testing.T) {
	cfg := &Config{}
	if cfg.MailConfigured() {
		t.Error("未設定の状態でMailConfigured()はfalseになるべき")
	}

	cfg.ResendAPIKey = "re_123"
	cfg.ContactFrom = "noreply@example.com"
	if cfg.MailConfigured() {
		t.Error("宛先が未設定の状態でMailConfigured()はfalseになるべき")
	}

	cfg.ContactTo = "me@example.com"
	if !cfg.MailConfigured() {
		t.Error("全項目設定済みの状態でMailConfigured()はtrueになるべき")
	}
}
