package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInit_WithValidConfig_Succeeds(t *testing.T) {
	t.Setenv("GITHUB_USERNAME", "testuser")
	t.Setenv("MEDIUM_USERNAME", "testwriter")

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.GitHubUsername != "testuser" {
		t.Errorf("GitHubUsername = %q, want testuser", cfg.GitHubUsername)
	}

	// Verify that slog global logger is configured for JSON output
	slog.Default().Info("init test")
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log output, got error: %v\nraw: %s", err, buf.String())
	}
	if entry["msg"] != "init test" {
		t.Errorf("msg = %q, want %q", entry["msg"], "init test")
	}
}

func TestInit_WithMissingConfig_ReturnsError(t *testing.T) {
	// Clear all required env vars
	t.Setenv("GITHUB_USERNAME", "")
	t.Setenv("MEDIUM_USERNAME", "")

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err == nil {
		t.Fatal("expected error for missing required env vars, got nil")
	}
	if cfg != nil {
		t.Error("expected nil config on error")
	}
}

func TestRunHealthcheck_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %s, want /health", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	// httptestサーバーのポートを抜き出してlocalhost越しに叩く
	port := ts.URL[strings.LastIndex(ts.URL, ":")+1:]
	if err := runHealthcheck(port); err != nil {
		t.Errorf("runHealthcheck: %v", err)
	}
}

func TestRunHealthcheck_Failure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	port := ts.URL[strings.LastIndex(ts.URL, ":")+1:]
	if err := runHealthcheck(port); err == nil {
		t.Error("非成功ステータスはエラーになるべき")
	}
}

func TestRun_Healthcheck_NoServer(t *testing.T) {
	t.Setenv("SERVER_PORT", "1") // 接続できないポート

	if err := Run(nil, []string{"healthcheck"}); err == nil {
		t.Error("サーバー未起動ならエラーになるべき")
	}
}
