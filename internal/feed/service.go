package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gillesritchmond/portfolio-api/internal/cache"
	"github.com/gillesritchmond/portfolio-api/internal/model"
)

// source はメトリクスのラベルに使うアップストリーム識別子。
const source = "medium"

// articlesCacheKey は記事一覧のキャッシュキー。フィードURLは1本なので固定。
const articlesCacheKey = "articles"

// MetricsRecorder はフェッチとキャッシュの観測を記録するインターフェース。
type MetricsRecorder interface {
	RecordUpstreamSuccess(source string)
	RecordUpstreamFailure(source string)
	RecordUpstreamStatus(source string, statusCode int)
	RecordUpstreamLatency(duration time.Duration)
	RecordCacheHit(source string)
	RecordCacheMiss(source string)
}

// Service はMediumフィードの取得から記事列への変換までを統括する。
// 読み取りパスの失敗はすべてこの層で吸収する:
// フェッチ失敗・非成功ステータス・パース失敗はログに記録して空列を返し、
// 呼び出し元にはエラーを伝播しない。
type Service struct {
	httpClient  *http.Client
	parser      *Parser
	projector   *Projector
	cache       *cache.Cache[[]model.Article]
	metrics     MetricsRecorder
	logger      *slog.Logger
	feedURL     string
	maxBodySize int64
}

// ServiceConfig はServiceの生成パラメータ。
type ServiceConfig struct {
	MediumUsername string
	CacheTTL       time.Duration
	MaxBodySize    int64

	// FeedURL を指定するとMediumUsernameから組み立てたURLを上書きする。テスト用。
	FeedURL string
}

// NewService はServiceの新しいインスタンスを生成する。
// httpClientにはSSRF防止付きのクライアントを渡すことを想定している。
func NewService(
	httpClient *http.Client,
	projector *Projector,
	metrics MetricsRecorder,
	logger *slog.Logger,
	cfg ServiceConfig,
) *Service {
	feedURL := cfg.FeedURL
	if feedURL == "" {
		feedURL = fmt.Sprintf("https://medium.com/feed/@%s", cfg.MediumUsername)
	}
	maxBodySize := cfg.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = 5 * 1024 * 1024
	}
	return &Service{
		httpClient:  httpClient,
		parser:      NewParser(),
		projector:   projector,
		cache:       cache.New[[]model.Article](cfg.CacheTTL),
		metrics:     metrics,
		logger:      logger,
		feedURL:     feedURL,
		maxBodySize: maxBodySize,
	}
}

// GetArticles は表示可能な記事一覧を返す。
// キャッシュ済みならそれを返し、なければフェッチ・パース・射影を行う。
// 失敗時は空スライスを返す（ページは「記事なし」の空状態として描画される）。
func (s *Service) GetArticles(ctx context.Context) []model.Article {
	if cached, ok := s.cache.Get(articlesCacheKey); ok {
		s.metrics.RecordCacheHit(source)
		return cached
	}
	s.metrics.RecordCacheMiss(source)

	document, err := s.fetch(ctx)
	if err != nil {
		s.metrics.RecordUpstreamFailure(source)
		s.logger.Error("Mediumフィードの取得に失敗しました",
			slog.String("feed_url", s.feedURL),
			slog.String("error", err.Error()),
		)
		return []model.Article{}
	}

	items, err := s.parser.Parse(document)
	if err != nil {
		s.metrics.RecordUpstreamFailure(source)
		s.logger.Error("Mediumフィードのパースに失敗しました",
			slog.String("feed_url", s.feedURL),
			slog.String("error", err.Error()),
		)
		return []model.Article{}
	}

	s.metrics.RecordUpstreamSuccess(source)

	articles := s.projector.Project(items)
	s.cache.Set(articlesCacheKey, articles)
	return articles
}

// fetch はフィードドキュメントを取得する。
// リトライは行わない。非成功ステータスはエラーとして返す。
func (s *Service) fetch(ctx context.Context) (string, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return "", fmt.Errorf("リクエスト作成に失敗: %w", err)
	}
	req.Header.Set("User-Agent", "portfolio-api/1.0")
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTPリクエスト失敗: %w", err)
	}
	defer resp.Body.Close()

	s.metrics.RecordUpstreamStatus(source, resp.StatusCode)
	s.metrics.RecordUpstreamLatency(time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("フィードがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	return string(body), nil
}
