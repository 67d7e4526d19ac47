package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gillesritchmond/portfolio-api/internal/metrics"
	"github.com/gillesritchmond/portfolio-api/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	Logger *slog.Logger

	// ミドルウェア依存
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// メトリクス
	Gatherer       prometheus.Gatherer
	ContactMetrics ContactMetrics

	// サービス
	ArticleService ArticleServiceInterface
	GitHubService  GitHubServiceInterface

	// コンタクト
	Mailer         ContactMailer
	MailConfigured bool
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → RequestID → SecurityHeaders → CORS → Logging → RateLimit(General)
//
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))

	articleHandler := NewArticleHandler(deps.ArticleService)
	githubHandler := NewGitHubHandler(deps.GitHubService)
	contactHandler := NewContactHandler(deps.Mailer, deps.ContactMetrics, deps.Logger, deps.MailConfigured)

	// --- 運用エンドポイント（レート制限なし） ---

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler(deps.Gatherer))

	// --- 公開APIルート ---
	// ミドルウェアスタック: RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Get("/api/articles", articleHandler.ListArticles)

		r.Route("/api/repos", func(r chi.Router) {
			r.Get("/", githubHandler.ListRepos)

			r.Route("/{name}", func(r chi.Router) {
				r.Get("/", githubHandler.GetRepo)
				r.Get("/commits", githubHandler.ListRepoCommits)
				r.Get("/readme", githubHandler.GetRepoReadme)
			})
		})

		r.Get("/api/activity", githubHandler.ListActivity)
		r.Get("/api/contributions", githubHandler.GetContributions)
		r.Get("/api/contributions/monthly", githubHandler.GetMonthlyContributions)
		r.Get("/api/overview", githubHandler.GetOverview)
		r.Get("/api/collaborations", githubHandler.ListCollaborations)

		// POST /api/contact - コンタクト送信（送信専用レート制限を追加）
		r.With(deps.RateLimiter.ContactMiddleware()).Post("/api/contact", contactHandler.Submit)
	})

	return r
}
