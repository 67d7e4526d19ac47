package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gillesritchmond/portfolio-api/internal/model"
)

// ArticleServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type ArticleServiceInterface interface {
	// GetArticles は投影済みの記事一覧を返す。取得失敗時は空スライス。
	GetArticles(ctx context.Context) []model.Article
}

// ArticleHandler はMedium記事のHTTPハンドラー。
type ArticleHandler struct {
	service ArticleServiceInterface
}

// NewArticleHandler はArticleHandlerを生成する。
func NewArticleHandler(service ArticleServiceInterface) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// ListArticles は記事一覧を取得する。
// GET /api/articles
//
// アップストリーム障害時も200で空配列を返す。
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles := h.service.GetArticles(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(articles)
}
