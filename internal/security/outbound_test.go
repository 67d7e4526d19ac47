package security

import (
	"net/http"
	"testing"
	"time"
)

// TestNewOutboundGuard はOutboundGuardの生成をテストする。
func TestNewOutboundGuard(t *testing.T) {
	guard := NewOutboundGuard()
	if guard == nil {
		t.Fatal("NewOutboundGuard() returned nil")
	}
}

// TestNewSafeClientTimeout はタイムアウト設定が反映されることをテストする。
func TestNewSafeClientTimeout(t *testing.T) {
	guard := NewOutboundGuard()
	timeout := 5 * time.Second
	client := guard.NewSafeClient(timeout)
	if client.Timeout != timeout {
		t.Errorf("expected timeout %v, got %v", timeout, client.Timeout)
	}
}

// TestNewSafeClientHasTransport はSafeClientにカスタムTransportが設定されていることをテストする。
// safeurlはnet.DialerのControlフックでIPアドレス検証を行うため、
// Transportが標準のhttp.DefaultTransportではないことを確認する。
func TestNewSafeClientHasTransport(t *testing.T) {
	guard := NewOutboundGuard()
	client := guard.NewSafeClient(5 * time.Second)

	if client.Transport == nil {
		t.Fatal("expected custom Transport to be set, got nil")
	}
	if client.Transport == http.DefaultTransport {
		t.Fatal("expected custom Transport, got http.DefaultTransport")
	}
}

// TestValidateURL_PublicURL は公開URLの検証が成功することをテストする。
func TestValidateURL_PublicURL(t *testing.T) {
	guard := NewOutboundGuard()

	publicURLs := []string{
		"https://api.github.com/users/octocat/repos",
		"https://medium.com/feed/@octowriter",
		"https://cdn-images-1.medium.com/max/1024/1.png",
	}

	for _, u := range publicURLs {
		if err := guard.ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}
}

// TestValidateURL_Blocked は危険なURLが拒否されることをテストする。
func TestValidateURL_Blocked(t *testing.T) {
	guard := NewOutboundGuard()

	blockedURLs := []string{
		"",
		"ftp://example.com/file",
		"http://localhost/admin",
		"http://127.0.0.1:8080/",
		"http://10.0.0.5/internal",
		"http://169.254.169.254/latest/meta-data/",
		"http://192.168.1.1/",
	}

	for _, u := range blockedURLs {
		if err := guard.ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q) = nil, want error", u)
		}
	}
}
