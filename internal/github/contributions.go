package github

import (
	"context"
	"log/slog"
	"time"

	"github.com/gillesritchmond/portfolio-api/internal/model"
)

// contributionsQuery は直近1年分のコントリビューションカレンダーを取得する。
const contributionsQuery = `query($username: String!) {
  user(login: $username) {
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            contributionCount
            date
            contributionLevel
          }
        }
      }
    }
  }
}`

// overviewQuery はコミット・Issue・PR・レビューの集計と
// リポジトリ別コミット数を取得する。
const overviewQuery = `query($username: String!) {
  user(login: $username) {
    contributionsCollection {
      totalCommitContributions
      totalIssueContributions
      totalPullRequestContributions
      totalPullRequestReviewContributions
      totalRepositoriesWithContributedCommits
      commitContributionsByRepository(maxRepositories: 10) {
        repository {
          name
          owner { login }
        }
        contributions { totalCount }
      }
    }
  }
}`

// GetContributions はコントリビューションカレンダーを返す。
// トークンがあればGraphQLで正確な値を取得し、なければ公開イベントから
// 近似値を構築する。両方失敗した場合は空のカレンダーを返す。
func (c *Client) GetContributions(ctx context.Context) *model.ContributionStats {
	const key = "contributions"
	if cached, ok := c.calendarCache.Get(key); ok {
		c.metrics.RecordCacheHit(source)
		return cached
	}
	c.metrics.RecordCacheMiss(source)

	if c.token != "" {
		stats, err := c.fetchCalendarGraphQL(ctx)
		if err == nil {
			c.metrics.RecordUpstreamSuccess(source)
			c.calendarCache.Set(key, stats)
			return stats
		}
		c.metrics.RecordUpstreamFailure(source)
		c.logger.Warn("GraphQLでのカレンダー取得に失敗、RESTフォールバックに切り替えます",
			slog.String("username", c.username),
			slog.String("error", err.Error()),
		)
	}

	stats := c.buildCalendarFromEvents(ctx)
	if stats.Total > 0 {
		c.calendarCache.Set(key, stats)
	}
	return stats
}

// fetchCalendarGraphQL はGraphQL APIからカレンダーを取得する。
func (c *Client) fetchCalendarGraphQL(ctx context.Context) (*model.ContributionStats, error) {
	var data struct {
		User struct {
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							ContributionCount int    `json:"contributionCount"`
							Date              string `json:"date"`
							ContributionLevel string `json:"contributionLevel"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}

	variables := map[string]any{"username": c.username}
	if err := c.graphql(ctx, contributionsQuery, variables, &data); err != nil {
		return nil, err
	}

	calendar := data.User.ContributionsCollection.ContributionCalendar
	stats := &model.ContributionStats{
		Total: calendar.TotalContributions,
		Weeks: make([]model.ContributionWeek, 0, len(calendar.Weeks)),
	}
	for _, week := range calendar.Weeks {
		days := make([]model.ContributionDay, 0, len(week.ContributionDays))
		for _, day := range week.ContributionDays {
			days = append(days, model.ContributionDay{
				Date:  day.Date,
				Count: day.ContributionCount,
				Level: mapLevel(day.ContributionLevel),
			})
		}
		stats.Weeks = append(stats.Weeks, model.ContributionWeek{Days: days})
	}
	return stats, nil
}

// mapLevel はGraphQLの四分位レベルを0〜4に対応させる。未知の値は0。
func mapLevel(level string) int {
	switch level {
	case "NONE":
		return 0
	case "FIRST_QUARTILE":
		return 1
	case "SECOND_QUARTILE":
		return 2
	case "THIRD_QUARTILE":
		return 3
	case "FOURTH_QUARTILE":
		return 4
	default:
		return 0
	}
}

// buildCalendarFromEvents は公開イベントの日別件数から近似カレンダーを構築する。
// 直近365日を対象とし、土曜日ごと（および末尾）に週を区切る。
func (c *Client) buildCalendarFromEvents(ctx context.Context) *model.ContributionStats {
	events := c.GetUserEvents(ctx)

	counts := make(map[string]int, len(events))
	for _, event := range events {
		if created, err := time.Parse(time.RFC3339, event.CreatedAt); err == nil {
			counts[created.UTC().Format("2006-01-02")]++
		}
	}

	end := c.now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -364)

	stats := &model.ContributionStats{Weeks: make([]model.ContributionWeek, 0, 53)}
	week := model.ContributionWeek{}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		count := counts[date]
		stats.Total += count
		week.Days = append(week.Days, model.ContributionDay{
			Date:  date,
			Count: count,
			Level: eventCountLevel(count),
		})
		if day.Weekday() == time.Saturday || day.Equal(end) {
			stats.Weeks = append(stats.Weeks, week)
			week = model.ContributionWeek{}
		}
	}
	return stats
}

// eventCountLevel はイベント件数をヒートマップのレベルに量子化する。
func eventCountLevel(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 1
	case count <= 5:
		return 2
	case count <= 10:
		return 3
	default:
		return 4
	}
}

// GetActivityOverview は活動概要を返す。トークンがない場合はnil。
// 取得に失敗した場合もnilを返す。
func (c *Client) GetActivityOverview(ctx context.Context) *model.ActivityOverview {
	if c.token == "" {
		return nil
	}

	const key = "overview"
	if cached, ok := c.overviewCache.Get(key); ok {
		c.metrics.RecordCacheHit(source)
		return cached
	}
	c.metrics.RecordCacheMiss(source)

	var data struct {
		User struct {
			ContributionsCollection struct {
				TotalCommitContributions                int `json:"totalCommitContributions"`
				TotalIssueContributions                 int `json:"totalIssueContributions"`
				TotalPullRequestContributions           int `json:"totalPullRequestContributions"`
				TotalPullRequestReviewContributions     int `json:"totalPullRequestReviewContributions"`
				TotalRepositoriesWithContributedCommits int `json:"totalRepositoriesWithContributedCommits"`
				CommitContributionsByRepository         []struct {
					Repository struct {
						Name  string `json:"name"`
						Owner struct {
							Login string `json:"login"`
						} `json:"owner"`
					} `json:"repository"`
					Contributions struct {
						TotalCount int `json:"totalCount"`
					} `json:"contributions"`
				} `json:"commitContributionsByRepository"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	}

	variables := map[string]any{"username": c.username}
	if err := c.graphql(ctx, overviewQuery, variables, &data); err != nil {
		c.metrics.RecordUpstreamFailure(source)
		c.logger.Error("活動概要の取得に失敗しました",
			slog.String("username", c.username),
			slog.String("error", err.Error()),
		)
		return nil
	}
	c.metrics.RecordUpstreamSuccess(source)

	collection := data.User.ContributionsCollection
	overview := &model.ActivityOverview{
		Commits:                 collection.TotalCommitContributions,
		Issues:                  collection.TotalIssueContributions,
		PullRequests:            collection.TotalPullRequestContributions,
		CodeReviews:             collection.TotalPullRequestReviewContributions,
		RepositoriesContributed: collection.TotalRepositoriesWithContributedCommits,
		CommitsByRepo:           make([]model.RepoContribution, 0, len(collection.CommitContributionsByRepository)),
	}
	for _, entry := range collection.CommitContributionsByRepository {
		overview.CommitsByRepo = append(overview.CommitsByRepo, model.RepoContribution{
			Name:  entry.Repository.Name,
			Owner: entry.Repository.Owner.Login,
			Count: entry.Contributions.TotalCount,
		})
	}

	c.overviewCache.Set(key, overview)
	return overview
}
