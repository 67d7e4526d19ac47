package github

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/gillesritchmond/portfolio-api/internal/model"
)

// defaultActivityLimit はアクティビティフィードのデフォルト件数。
const defaultActivityLimit = 20

// GetUserEvents はユーザーの公開イベントストリーム（直近最大100件）を返す。
// 失敗時は空スライスを返す。
func (c *Client) GetUserEvents(ctx context.Context) []model.Event {
	const key = "events"
	if cached, ok := c.eventsCache.Get(key); ok {
		c.metrics.RecordCacheHit(source)
		return cached
	}
	c.metrics.RecordCacheMiss(source)

	var events []model.Event
	path := fmt.Sprintf("/users/%s/events/public?per_page=100", c.username)
	if err := c.getJSON(ctx, path, &events); err != nil {
		c.metrics.RecordUpstreamFailure(source)
		c.logger.Error("公開イベントの取得に失敗しました",
			slog.String("username", c.username),
			slog.String("error", err.Error()),
		)
		return []model.Event{}
	}
	c.metrics.RecordUpstreamSuccess(source)

	c.eventsCache.Set(key, events)
	return events
}

// GetActivityFeed は公開イベントからアクティビティフィードを導出する。
//   - PushEvent: 先頭2コミットまでを個別のcommitエントリにする
//   - PullRequestEvent: 1件のprエントリにする
//
// 日時降順でlimit件に切り詰めて返す。limitが0以下の場合はデフォルト20件。
func (c *Client) GetActivityFeed(ctx context.Context, limit int) []model.ActivityItem {
	if limit <= 0 {
		limit = defaultActivityLimit
	}

	events := c.GetUserEvents(ctx)
	activities := make([]model.ActivityItem, 0, limit)

	for _, event := range events {
		if len(activities) >= limit {
			break
		}

		repoShort := event.Repo.Name
		if idx := strings.Index(repoShort, "/"); idx >= 0 {
			repoShort = repoShort[idx+1:]
		}
		repoURL := "https://github.com/" + event.Repo.Name

		switch {
		case event.Type == "PushEvent" && len(event.Payload.Commits) > 0:
			commits := event.Payload.Commits
			if len(commits) > 2 {
				commits = commits[:2]
			}
			for _, commit := range commits {
				item := model.ActivityItem{
					ID:          event.ID + "-" + commit.SHA,
					Type:        "commit",
					Repo:        repoShort,
					RepoURL:     repoURL,
					Title:       firstLine(commit.Message),
					Description: commit.Message,
					URL:         commitHTMLURL(commit.URL),
					Date:        event.CreatedAt,
				}
				item.Author.Name = event.Actor.Login
				item.Author.Avatar = event.Actor.AvatarURL
				activities = append(activities, item)
			}

		case event.Type == "PullRequestEvent" && event.Payload.PullRequest != nil:
			item := model.ActivityItem{
				ID:      event.ID,
				Type:    "pr",
				Repo:    repoShort,
				RepoURL: repoURL,
				Title:   event.Payload.PullRequest.Title,
				URL:     event.Payload.PullRequest.HTMLURL,
				Date:    event.CreatedAt,
			}
			item.Author.Name = event.Actor.Login
			item.Author.Avatar = event.Actor.AvatarURL
			activities = append(activities, item)
		}
	}

	// イベントストリームは概ね新しい順だが、保証はないため明示的に並べ直す
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date > activities[j].Date
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities
}

// firstLine はコミットメッセージの1行目を返す。
func firstLine(message string) string {
	if idx := strings.Index(message, "\n"); idx >= 0 {
		return message[:idx]
	}
	return message
}

// commitHTMLURL はAPIのコミットURLをWeb UIのURLに書き換える。
func commitHTMLURL(apiURL string) string {
	url := strings.Replace(apiURL, "api.github.com/repos", "github.com", 1)
	return strings.Replace(url, "/commits/", "/commit/", 1)
}
