// Package github はGitHub REST/GraphQL APIの読み取り専用クライアントを提供する。
// リポジトリ一覧・コミット・公開イベント・コントリビューションカレンダー・
// 活動概要・コラボレーションリポジトリの取得を含む。
//
// 読み取りパスの失敗はすべてこの層で吸収する。ネットワーク障害や
// 非成功ステータスはログに記録して空コレクション（またはnil集計）に解決し、
// ページレンダリングを致命的に失敗させない。自動リトライは行わない。
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gillesritchmond/portfolio-api/internal/cache"
	"github.com/gillesritchmond/portfolio-api/internal/model"
)

const (
	// defaultRESTEndpoint はGitHub REST APIのベースURL。
	defaultRESTEndpoint = "https://api.github.com"
	// defaultGraphQLEndpoint はGitHub GraphQL APIのエンドポイント。
	defaultGraphQLEndpoint = "https://api.github.com/graphql"

	// source はメトリクスのラベルに使うアップストリーム識別子。
	source = "github"
)

// MetricsRecorder はフェッチとキャッシュの観測を記録するインターフェース。
type MetricsRecorder interface {
	RecordUpstreamSuccess(source string)
	RecordUpstreamFailure(source string)
	RecordUpstreamStatus(source string, statusCode int)
	RecordUpstreamLatency(duration time.Duration)
	RecordCacheHit(source string)
	RecordCacheMiss(source string)
}

// Client はGitHub APIのクライアント。
// 各リソースをTTLキャッシュの背後で取得する。
// トークンが空の場合、GraphQL系の操作はRESTフォールバックまたはnilに解決する。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    MetricsRecorder

	username string
	token    string

	restEndpoint    string // テスト用に差し替え可能
	graphqlEndpoint string

	// now はテストで時刻を差し替えるためのフック。
	now func() time.Time

	reposCache    *cache.Cache[[]model.Repo]
	repoCache     *cache.Cache[model.Repo]
	commitsCache  *cache.Cache[[]model.Commit]
	readmeCache   *cache.Cache[string]
	eventsCache   *cache.Cache[[]model.Event]
	calendarCache *cache.Cache[*model.ContributionStats]
	overviewCache *cache.Cache[*model.ActivityOverview]
	collabCache   *cache.Cache[[]model.CollaborativeRepo]
}

// ClientConfig はClientの生成パラメータ。
type ClientConfig struct {
	Username string
	Token    string // 任意。空ならコントリビューション取得はRESTフォールバックになる
	CacheTTL time.Duration

	// エンドポイントの上書き。テスト用。空ならデフォルトを使う
	RESTEndpoint    string
	GraphQLEndpoint string
}

// NewClient はClientの新しいインスタンスを生成する。
// httpClientにはSSRF防止付きのクライアントを渡すことを想定している。
func NewClient(
	httpClient *http.Client,
	metrics MetricsRecorder,
	logger *slog.Logger,
	cfg ClientConfig,
) *Client {
	restEndpoint := cfg.RESTEndpoint
	if restEndpoint == "" {
		restEndpoint = defaultRESTEndpoint
	}
	graphqlEndpoint := cfg.GraphQLEndpoint
	if graphqlEndpoint == "" {
		graphqlEndpoint = defaultGraphQLEndpoint
	}

	return &Client{
		httpClient:      httpClient,
		logger:          logger,
		metrics:         metrics,
		username:        cfg.Username,
		token:           cfg.Token,
		restEndpoint:    restEndpoint,
		graphqlEndpoint: graphqlEndpoint,
		now:             time.Now,
		reposCache:      cache.New[[]model.Repo](cfg.CacheTTL),
		repoCache:       cache.New[model.Repo](cfg.CacheTTL),
		commitsCache:    cache.New[[]model.Commit](cfg.CacheTTL),
		readmeCache:     cache.New[string](cfg.CacheTTL),
		eventsCache:     cache.New[[]model.Event](cfg.CacheTTL),
		calendarCache:   cache.New[*model.ContributionStats](cfg.CacheTTL),
		overviewCache:   cache.New[*model.ActivityOverview](cfg.CacheTTL),
		collabCache:     cache.New[[]model.CollaborativeRepo](cfg.CacheTTL),
	}
}

// getJSON はREST APIへのGETを実行し、レスポンスJSONをvにデコードする。
func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.get(ctx, path, "application/vnd.github.v3+json")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}
	return nil
}

// get はREST APIへのGETを実行し、レスポンスボディを返す。
// 非成功ステータスはエラーとして返す。
func (c *Client) get(ctx context.Context, path string, accept string) ([]byte, error) {
	start := c.now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.restEndpoint+path, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエスト作成に失敗: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", "portfolio-api/1.0")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエスト失敗: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.RecordUpstreamStatus(source, resp.StatusCode)
	c.metrics.RecordUpstreamLatency(time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub APIがステータス %d を返しました: %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}
	return body, nil
}

// graphql はGraphQLクエリを実行し、dataフィールドをvにデコードする。
// エラー配列が返った場合もエラーとして扱う。
func (c *Client) graphql(ctx context.Context, query string, variables map[string]any, v any) error {
	start := c.now()

	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("クエリのエンコードに失敗: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("リクエスト作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "portfolio-api/1.0")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTPリクエスト失敗: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.RecordUpstreamStatus(source, resp.StatusCode)
	c.metrics.RecordUpstreamLatency(time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GraphQL APIがステータス %d を返しました", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("GraphQLエラー: %s", envelope.Errors[0].Message)
	}

	if err := json.Unmarshal(envelope.Data, v); err != nil {
		return fmt.Errorf("dataフィールドのパースに失敗しました: %w", err)
	}
	return nil
}
