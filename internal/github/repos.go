package github

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/gillesritchmond/portfolio-api/internal/model"
)

// FeaturedRepos はリポジトリ一覧で先頭に並べるリポジトリ名。
var FeaturedRepos = []string{
	"web-data-toolkit",
	"digital-signature-app",
	"next-wgg-auth-package",
	"deliveryManagementSystem",
	"gillesritchmond.github.io",
}

// GetRepos はユーザーの公開リポジトリ一覧を返す。
// featured指定のリポジトリを先頭に、残りをupdated_at降順で並べる。
// 失敗時は空スライスを返す。
func (c *Client) GetRepos(ctx context.Context) []model.Repo {
	const key = "repos"
	if cached, ok := c.reposCache.Get(key); ok {
		c.metrics.RecordCacheHit(source)
		return cached
	}
	c.metrics.RecordCacheMiss(source)

	var repos []model.Repo
	path := fmt.Sprintf("/users/%s/repos?sort=updated&per_page=100", c.username)
	if err := c.getJSON(ctx, path, &repos); err != nil {
		c.metrics.RecordUpstreamFailure(source)
		c.logger.Error("リポジトリ一覧の取得に失敗しました",
			slog.String("username", c.username),
			slog.String("error", err.Error()),
		)
		return []model.Repo{}
	}
	c.metrics.RecordUpstreamSuccess(source)

	// 公開リポジトリのみ（トークン付きの場合にprivateが混ざることがある）
	filtered := repos[:0]
	for _, r := range repos {
		if !r.Private {
			filtered = append(filtered, r)
		}
	}

	sortRepos(filtered)

	c.reposCache.Set(key, filtered)
	return filtered
}

// sortRepos はfeaturedリポジトリを先頭に、残りをupdated_at降順で並べる。
// updated_atはISO 8601のため文字列比較で時系列順になる。同値は安定。
func sortRepos(repos []model.Repo) {
	featured := make(map[string]bool, len(FeaturedRepos))
	for _, name := range FeaturedRepos {
		featured[name] = true
	}

	sort.SliceStable(repos, func(i, j int) bool {
		fi, fj := featured[repos[i].Name], featured[repos[j].Name]
		if fi != fj {
			return fi
		}
		return repos[i].UpdatedAt > repos[j].UpdatedAt
	})
}

// GetRepo は単一リポジトリの詳細を返す。見つからない場合・失敗時はnilを返す。
func (c *Client) GetRepo(ctx context.Context, repoName string) *model.Repo {
	key := "repo:" + repoName
	if cached, ok := c.repoCache.Get(key); ok {
		c.metrics.RecordCacheHit(source)
		return &cached
	}
	c.metrics.RecordCacheMiss(source)

	var repo model.Repo
	path := fmt.Sprintf("/repos/%s/%s", c.username, repoName)
	if err := c.getJSON(ctx, path, &repo); err != nil {
		c.metrics.RecordUpstreamFailure(source)
		c.logger.Warn("リポジトリ詳細の取得に失敗しました",
			slog.String("repo", repoName),
			slog.String("error", err.Error()),
		)
		return nil
	}
	c.metrics.RecordUpstreamSuccess(source)

	c.repoCache.Set(key, repo)
	return &repo
}

// GetRepoCommits はリポジトリの直近コミットを返す。失敗時は空スライスを返す。
// limitが0以下の場合はデフォルト5件。
func (c *Client) GetRepoCommits(ctx context.Context, repoName string, limit int) []model.Commit {
	if limit <= 0 {
		limit = 5
	}

	key := fmt.Sprintf("commits:%s:%d", repoName, limit)
	if cached, ok := c.commitsCache.Get(key); ok {
		c.metrics.RecordCacheHit(source)
		return cached
	}
	c.metrics.RecordCacheMiss(source)

	var commits []model.Commit
	path := fmt.Sprintf("/repos/%s/%s/commits?per_page=%d", c.username, repoName, limit)
	if err := c.getJSON(ctx, path, &commits); err != nil {
		c.metrics.RecordUpstreamFailure(source)
		c.logger.Warn("コミット一覧の取得に失敗しました",
			slog.String("repo", repoName),
			slog.String("error", err.Error()),
		)
		return []model.Commit{}
	}
	c.metrics.RecordUpstreamSuccess(source)

	c.commitsCache.Set(key, commits)
	return commits
}

// GetRepoReadme はリポジトリのREADMEを生テキストで返す。
// 見つからない場合・失敗時は空文字列を返す。
func (c *Client) GetRepoReadme(ctx context.Context, repoName string) string {
	key := "readme:" + repoName
	if cached, ok := c.readmeCache.Get(key); ok {
		c.metrics.RecordCacheHit(source)
		return cached
	}
	c.metrics.RecordCacheMiss(source)

	path := fmt.Sprintf("/repos/%s/%s/readme", c.username, repoName)
	body, err := c.get(ctx, path, "application/vnd.github.raw")
	if err != nil {
		c.metrics.RecordUpstreamFailure(source)
		c.logger.Warn("READMEの取得に失敗しました",
			slog.String("repo", repoName),
			slog.String("error", err.Error()),
		)
		return ""
	}
	c.metrics.RecordUpstreamSuccess(source)

	readme := string(body)
	c.readmeCache.Set(key, readme)
	return readme
}
