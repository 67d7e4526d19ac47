package model

// ContributionDay は1日分のアクティビティカウントを表す。
type ContributionDay struct {
	Date  string `json:"date"`  // ISO 8601 (YYYY-MM-DD)
	Count int    `json:"count"` // 非負
	Level int    `json:"level"` // 0〜4。Countの単調なバケット分け
}

// ContributionWeek は連続する最大7日分のContributionDayを保持する。
// ウィンドウ端の週は7日未満になることがある。
type ContributionWeek struct {
	Days []ContributionDay `json:"contribution_days"`
}

// ContributionStats はコントリビューションカレンダーの集計ビュー。
// Totalは全週・全日のCountの合計と一致する。
type ContributionStats struct {
	Total int                `json:"total_contributions"`
	Weeks []ContributionWeek `json:"weeks"`
}

// Days は全週のContributionDayを日付昇順でフラットに返す。
func (s *ContributionStats) Days() []ContributionDay {
	var days []ContributionDay
	for _, w := range s.Weeks {
		days = append(days, w.Days...)
	}
	return days
}

// DerivedStats はカレンダーから毎回再計算する表示用の派生統計。
// 元データを変更しない。
type DerivedStats struct {
	CurrentStreak       int             `json:"current_streak"`
	LongestStreak       int             `json:"longest_streak"`
	MostProductiveDay   ContributionDay `json:"most_productive_day"`
	MostProductiveMonth MonthCount      `json:"most_productive_month"`
	AveragePerDay       float64         `json:"average_per_day"` // 小数第1位で丸め
	ActiveDays          int             `json:"active_days"`
	TotalDays           int             `json:"total_days"`
}

// MonthCount はYYYY-MM単位の合計カウント。
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlyContribution は月ごとのコントリビューション内訳。
type MonthlyContribution struct {
	Month      string `json:"month"` // YYYY-MM
	Commits    int    `json:"commits"`
	ActiveDays int    `json:"active_days"`
}
