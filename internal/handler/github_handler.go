package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gillesritchmond/portfolio-api/internal/middleware"
	"github.com/gillesritchmond/portfolio-api/internal/model"
	"github.com/gillesritchmond/portfolio-api/internal/stats"
)

// GitHubServiceInterface はGitHubハンドラーが必要とするサービスインターフェース。
// 読み取りパスはすべて失敗を吸収し、空コレクションまたはnilを返す。
type GitHubServiceInterface interface {
	GetRepos(ctx context.Context) []model.Repo
	GetRepo(ctx context.Context, repoName string) *model.Repo
	GetRepoCommits(ctx context.Context, repoName string, limit int) []model.Commit
	GetRepoReadme(ctx context.Context, repoName string) string
	GetActivityFeed(ctx context.Context, limit int) []model.ActivityItem
	GetContributions(ctx context.Context) *model.ContributionStats
	GetActivityOverview(ctx context.Context) *model.ActivityOverview
	GetCollaborativeRepos(ctx context.Context) []model.CollaborativeRepo
}

// GitHubHandler はGitHub由来データのHTTPハンドラー。
type GitHubHandler struct {
	service GitHubServiceInterface
}

// NewGitHubHandler はGitHubHandlerを生成する。
func NewGitHubHandler(service GitHubServiceInterface) *GitHubHandler {
	return &GitHubHandler{service: service}
}

// contributionsResponse はカレンダーと導出統計をまとめたレスポンス。
type contributionsResponse struct {
	Total int                      `json:"total"`
	Weeks []model.ContributionWeek `json:"weeks"`
	Stats model.DerivedStats       `json:"stats"`
}

// readmeResponse はREADMEテキストのレスポンス。
type readmeResponse struct {
	Readme string `json:"readme"`
}

// ListRepos はリポジトリ一覧を取得する。
// GET /api/repos
func (h *GitHubHandler) ListRepos(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.GetRepos(r.Context()))
}

// GetRepo は単一リポジトリの詳細を取得する。
// GET /api/repos/{name}
func (h *GitHubHandler) GetRepo(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	repo := h.service.GetRepo(r.Context(), name)
	if repo == nil {
		middleware.WriteErrorResponse(w, http.StatusNotFound, &model.APIError{
			Code:     "REPO_NOT_FOUND",
			Message:  "Repository not found",
			Category: "upstream",
			Action:   "リポジトリ名を確認してください。",
		})
		return
	}
	writeJSON(w, repo)
}

// ListRepoCommits はリポジトリの直近コミットを取得する。
// GET /api/repos/{name}/commits?limit=5
func (h *GitHubHandler) ListRepoCommits(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	writeJSON(w, h.service.GetRepoCommits(r.Context(), name, queryLimit(r)))
}

// GetRepoReadme はリポジトリのREADMEを取得する。
// GET /api/repos/{name}/readme
func (h *GitHubHandler) GetRepoReadme(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	writeJSON(w, readmeResponse{Readme: h.service.GetRepoReadme(r.Context(), name)})
}

// ListActivity はアクティビティフィードを取得する。
// GET /api/activity?limit=20
func (h *GitHubHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.GetActivityFeed(r.Context(), queryLimit(r)))
}

// GetContributions はコントリビューションカレンダーと導出統計を取得する。
// GET /api/contributions
func (h *GitHubHandler) GetContributions(w http.ResponseWriter, r *http.Request) {
	calendar := h.service.GetContributions(r.Context())
	writeJSON(w, contributionsResponse{
		Total: calendar.Total,
		Weeks: calendar.Weeks,
		Stats: stats.Derive(calendar),
	})
}

// GetMonthlyContributions は月別のコントリビューション集計を取得する。
// GET /api/contributions/monthly
func (h *GitHubHandler) GetMonthlyContributions(w http.ResponseWriter, r *http.Request) {
	calendar := h.service.GetContributions(r.Context())
	writeJSON(w, stats.Monthly(calendar))
}

// GetOverview は活動概要を取得する。トークン未設定時はnullボディを返す。
// GET /api/overview
func (h *GitHubHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.GetActivityOverview(r.Context()))
}

// ListCollaborations はコラボレーションリポジトリを取得する。
// GET /api/collaborations
func (h *GitHubHandler) ListCollaborations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.service.GetCollaborativeRepos(r.Context()))
}

// queryLimit はlimitクエリパラメータを解釈する。不正な値・未指定は0。
func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// writeJSON は200でJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
