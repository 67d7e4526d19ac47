package github

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/gillesritchmond/portfolio-api/internal/model"
)

// maxCollaborativeRepos は返すコラボレーションリポジトリの上限。
const maxCollaborativeRepos = 6

// GetCollaborativeRepos は自分以外がオーナーのリポジトリへの活動を集計し、
// イベント数の多い順に上位を返す。同数の場合は先に観測した順を保つ。
// 各リポジトリの詳細取得に失敗したものは結果から除外する。
func (c *Client) GetCollaborativeRepos(ctx context.Context) []model.CollaborativeRepo {
	const key = "collaborations"
	if cached, ok := c.collabCache.Get(key); ok {
		c.metrics.RecordCacheHit(source)
		return cached
	}
	c.metrics.RecordCacheMiss(source)

	events := c.GetUserEvents(ctx)

	ownPrefix := c.username + "/"
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, event := range events {
		fullName := event.Repo.Name
		if fullName == "" || strings.HasPrefix(fullName, ownPrefix) {
			continue
		}
		if _, seen := counts[fullName]; !seen {
			order = append(order, fullName)
		}
		counts[fullName]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxCollaborativeRepos {
		order = order[:maxCollaborativeRepos]
	}

	collabs := make([]model.CollaborativeRepo, 0, len(order))
	for _, fullName := range order {
		repo, ok := c.fetchRepoByFullName(ctx, fullName)
		if !ok {
			continue
		}
		collabs = append(collabs, model.CollaborativeRepo{
			Repo:          repo,
			Contributions: counts[fullName],
			Role:          "Contributor",
		})
	}

	if len(collabs) > 0 {
		c.collabCache.Set(key, collabs)
	}
	return collabs
}

// fetchRepoByFullName はowner/name形式でリポジトリ詳細を取得する。
func (c *Client) fetchRepoByFullName(ctx context.Context, fullName string) (model.Repo, bool) {
	var repo model.Repo
	if err := c.getJSON(ctx, "/repos/"+fullName, &repo); err != nil {
		c.metrics.RecordUpstreamFailure(source)
		c.logger.Warn("コラボレーションリポジトリの詳細取得に失敗しました",
			slog.String("repo", fullName),
			slog.String("error", err.Error()),
		)
		return model.Repo{}, false
	}
	c.metrics.RecordUpstreamSuccess(source)
	return repo, true
}
