package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gillesritchmond/portfolio-api/internal/mail"
	"github.com/gillesritchmond/portfolio-api/internal/middleware"
	"github.com/gillesritchmond/portfolio-api/internal/model"
)

// ContactMailer はコンタクトハンドラーが必要とする送信インターフェース。
type ContactMailer interface {
	// Send はメッセージを送信し、プロバイダー側のIDを返す。
	Send(ctx context.Context, msg mail.ContactMessage) (string, error)
}

// ContactMetrics はコンタクト送信の結果を記録するインターフェース。
type ContactMetrics interface {
	RecordContactSend(outcome string)
}

// ContactHandler はコンタクトフォームのHTTPハンドラー。
type ContactHandler struct {
	mailer     ContactMailer
	metrics    ContactMetrics
	logger     *slog.Logger
	configured bool // メール設定が揃っているか
}

// NewContactHandler はContactHandlerを生成する。
// configuredがfalseの場合、送信リクエストは設定エラーとして失敗する。
func NewContactHandler(mailer ContactMailer, metrics ContactMetrics, logger *slog.Logger, configured bool) *ContactHandler {
	return &ContactHandler{
		mailer:     mailer,
		metrics:    metrics,
		logger:     logger,
		configured: configured,
	}
}

// contactResponse は送信成功時のレスポンス。
type contactResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
}

// Submit はコンタクトフォームの送信を処理する。
// POST /api/contact
//
// name, email, subject, messageはすべて必須。欠落時は400を返す。
// メール設定が未構成の場合と送信失敗時は500を返す。
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var msg mail.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.metrics.RecordContactSend("validation_error")
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewInvalidBodyError())
		return
	}

	if !msg.Valid() {
		h.metrics.RecordContactSend("validation_error")
		middleware.WriteErrorResponse(w, http.StatusBadRequest, model.NewMissingFieldsError())
		return
	}

	if !h.configured {
		h.metrics.RecordContactSend("config_error")
		h.logger.Error("メール設定が未構成のためコンタクト送信を拒否しました")
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewMailNotConfiguredError())
		return
	}

	id, err := h.mailer.Send(r.Context(), msg)
	if err != nil {
		h.metrics.RecordContactSend("send_error")
		h.logger.Error("コンタクトメールの送信に失敗しました",
			slog.String("error", err.Error()),
		)
		middleware.WriteErrorResponse(w, http.StatusInternalServerError, model.NewMailSendFailedError(err.Error()))
		return
	}

	h.metrics.RecordContactSend("success")
	writeJSON(w, contactResponse{Success: true, ID: id})
}
