package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// 原因カテゴリとユーザー向けの対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, config, mail, upstream, system
	Action   string // 対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeMissingFields   = "MISSING_FIELDS"
	ErrCodeInvalidBody     = "INVALID_BODY"
	ErrCodeMailNotConfig   = "MAIL_NOT_CONFIGURED"
	ErrCodeMailSendFailed  = "MAIL_SEND_FAILED"
	ErrCodeUpstreamFailure = "UPSTREAM_FAILURE"
)

// NewMissingFieldsError は必須フィールド欠落エラーを生成する。
// 公開APIのレスポンスボディに載るため、メッセージは英語のまま固定する。
func NewMissingFieldsError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingFields,
		Message:  "Missing required fields",
		Category: "validation",
		Action:   "name, email, subject, message をすべて指定してください。",
	}
}

// NewInvalidBodyError はリクエストボディのデコード失敗エラーを生成する。
func NewInvalidBodyError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidBody,
		Message:  "Invalid request body",
		Category: "validation",
		Action:   "JSON形式のボディを送信してください。",
	}
}

// NewMailNotConfiguredError はメール送信設定の欠落エラーを生成する。
// 設定欠落は書き込みパスでのみ致命的エラーとして扱う。
func NewMailNotConfiguredError() *APIError {
	return &APIError{
		Code:     ErrCodeMailNotConfig,
		Message:  "Contact email is not configured",
		Category: "config",
		Action:   "RESEND_API_KEY と CONTACT_FROM / CONTACT_TO を設定してください。",
	}
}

// NewMailSendFailedError はメール送信失敗エラーを生成する。
func NewMailSendFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeMailSendFailed,
		Message:  fmt.Sprintf("Failed to send email: %s", reason),
		Category: "mail",
		Action:   "しばらく待ってから再度お試しください。",
	}
}
