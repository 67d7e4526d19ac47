// Package mail はResend APIによるコンタクトフォームのメール送信を提供する。
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
)

// defaultEndpoint はResend APIの送信エンドポイント。
const defaultEndpoint = "https://api.resend.com/emails"

// bodyTemplate はコンタクトメールのHTML本文。
// 入力値はテンプレートエンジンがエスケープする。
var bodyTemplate = template.Must(template.New("contact").Parse(`<div>
  <h2>新しいお問い合わせ</h2>
  <p><strong>お名前:</strong> {{.Name}}</p>
  <p><strong>メール:</strong> {{.Email}}</p>
  <p><strong>件名:</strong> {{.Subject}}</p>
  <hr>
  <p>{{.Message}}</p>
</div>`))

// ContactMessage はコンタクトフォームから受け取った送信内容。
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Valid は必須フィールドがすべて埋まっているかを返す。
func (m ContactMessage) Valid() bool {
	return m.Name != "" && m.Email != "" && m.Subject != "" && m.Message != ""
}

// Client はResend APIのクライアント。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger

	apiKey   string
	from     string
	to       string
	endpoint string // テスト用に差し替え可能
}

// ClientConfig はClientの生成パラメータ。
type ClientConfig struct {
	APIKey   string
	From     string
	To       string
	Endpoint string // 空ならデフォルトを使う
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, logger *slog.Logger, cfg ClientConfig) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     cfg.APIKey,
		from:       cfg.From,
		to:         cfg.To,
		endpoint:   endpoint,
	}
}

// sendRequest はResendの送信APIのリクエストボディ。
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// Send はコンタクトメッセージをメールとして送信し、プロバイダー側のIDを返す。
// 差出人のアドレスはreply_toに設定し、fromは固定の送信元を使う。
func (c *Client) Send(ctx context.Context, msg ContactMessage) (string, error) {
	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, msg); err != nil {
		return "", fmt.Errorf("メール本文の生成に失敗しました: %w", err)
	}

	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{c.to},
		Subject: "Portfolio Contact: " + msg.Subject,
		HTML:    body.String(),
		ReplyTo: msg.Email,
	})
	if err != nil {
		return "", fmt.Errorf("リクエストのエンコードに失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("リクエスト作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTPリクエスト失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("メール送信APIがエラーを返しました",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(detail)),
		)
		return "", fmt.Errorf("メール送信APIがステータス %d を返しました", resp.StatusCode)
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// 送信自体は成功しているのでIDなしで返す
		result.ID = ""
	}

	c.logger.Info("コンタクトメールを送信しました",
		slog.String("subject", msg.Subject),
		slog.String("mail_id", result.ID),
	)
	return result.ID, nil
}
