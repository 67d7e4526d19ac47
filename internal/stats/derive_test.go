package stats

import (
	"testing"

	"github.com/gillesritchmond/portfolio-api/internal/model"
)

// calendarFromCounts は日付昇順のカウント列から1週構成のカレンダーを組み立てる。
func calendarFromCounts(dates []string, counts []int) *model.ContributionStats {
	week := model.ContributionWeek{}
	total := 0
	for i, c := range counts {
		week.Days = append(week.Days, model.ContributionDay{Date: dates[i], Count: c})
		total += c
	}
	return &model.ContributionStats{Total: total, Weeks: []model.ContributionWeek{week}}
}

// TestDerive_Streaks は系列 [0,3,0,5,2]（末尾が最新）で
// 現在ストリーク=2、最長ストリーク=2 になることをテストする。
func TestDerive_Streaks(t *testing.T) {
	s := calendarFromCounts(
		[]string{"2025-08-25", "2025-08-26", "2025-08-27", "2025-08-28", "2025-08-29"},
		[]int{0, 3, 0, 5, 2},
	)

	d := Derive(s)
	if d.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", d.CurrentStreak)
	}
	if d.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", d.LongestStreak)
	}
}

// TestDerive_StreakBrokenAtEnd は最新日がゼロの場合に現在ストリークが0になることをテストする。
func TestDerive_StreakBrokenAtEnd(t *testing.T) {
	s := calendarFromCounts(
		[]string{"2025-08-27", "2025-08-28", "2025-08-29"},
		[]int{4, 4, 0},
	)

	d := Derive(s)
	if d.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0", d.CurrentStreak)
	}
	if d.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", d.LongestStreak)
	}
}

// TestDerive_MostProductiveDay は最大カウントの初出日が選ばれることをテストする（同点は先勝ち）。
func TestDerive_MostProductiveDay(t *testing.T) {
	s := calendarFromCounts(
		[]string{"2025-08-25", "2025-08-26", "2025-08-27"},
		[]int{5, 2, 5},
	)

	d := Derive(s)
	if d.MostProductiveDay.Date != "2025-08-25" {
		t.Errorf("MostProductiveDay.Date = %q, want first occurrence 2025-08-25", d.MostProductiveDay.Date)
	}
	if d.MostProductiveDay.Count != 5 {
		t.Errorf("MostProductiveDay.Count = %d, want 5", d.MostProductiveDay.Count)
	}
}

// TestDerive_MostProductiveMonth はYYYY-MMバケットの合計最大の月が選ばれることをテストする。
func TestDerive_MostProductiveMonth(t *testing.T) {
	s := calendarFromCounts(
		[]string{"2025-07-30", "2025-07-31", "2025-08-01", "2025-08-02"},
		[]int{3, 4, 2, 1},
	)

	d := Derive(s)
	if d.MostProductiveMonth.Month != "2025-07" {
		t.Errorf("MostProductiveMonth.Month = %q, want 2025-07", d.MostProductiveMonth.Month)
	}
	if d.MostProductiveMonth.Count != 7 {
		t.Errorf("MostProductiveMonth.Count = %d, want 7", d.MostProductiveMonth.Count)
	}
}

// TestDerive_AverageAndActiveDays は日平均（小数第1位丸め）と活動日数をテストする。
func TestDerive_AverageAndActiveDays(t *testing.T) {
	s := calendarFromCounts(
		[]string{"2025-08-26", "2025-08-27", "2025-08-28"},
		[]int{1, 0, 1},
	)

	d := Derive(s)
	// 2 / 3 = 0.666... → 0.7
	if d.AveragePerDay != 0.7 {
		t.Errorf("AveragePerDay = %v, want 0.7", d.AveragePerDay)
	}
	if d.ActiveDays != 2 {
		t.Errorf("ActiveDays = %d, want 2", d.ActiveDays)
	}
	if d.TotalDays != 3 {
		t.Errorf("TotalDays = %d, want 3", d.TotalDays)
	}
}

// TestDerive_EmptySeries は空の日列で失敗せず、全項目ゼロ値を返すことをテストする。
func TestDerive_EmptySeries(t *testing.T) {
	d := Derive(&model.ContributionStats{})

	if d.CurrentStreak != 0 || d.LongestStreak != 0 || d.ActiveDays != 0 || d.TotalDays != 0 {
		t.Errorf("Derive(empty) = %+v, want zero values", d)
	}
	if d.MostProductiveDay.Date != "" || d.MostProductiveDay.Count != 0 {
		t.Errorf("MostProductiveDay = %+v, want zero sentinel", d.MostProductiveDay)
	}
}

// TestMonthly_SortedDescending は月ごとの内訳が月降順で返ることをテストする。
func TestMonthly_SortedDescending(t *testing.T) {
	s := calendarFromCounts(
		[]string{"2025-06-15", "2025-07-15", "2025-08-15"},
		[]int{1, 2, 3},
	)

	months := Monthly(s)
	if len(months) != 3 {
		t.Fatalf("len(months) = %d, want 3", len(months))
	}
	if months[0].Month != "2025-08" || months[2].Month != "2025-06" {
		t.Errorf("months not sorted descending: %v", months)
	}
	if months[0].Commits != 3 || months[0].ActiveDays != 1 {
		t.Errorf("months[0] = %+v, want commits=3 activeDays=1", months[0])
	}
}

// TestDerive_MultipleWeeks は週をまたぐ日列がフラット化されて集計されることをテストする。
func TestDerive_MultipleWeeks(t *testing.T) {
	s := &model.ContributionStats{
		Total: 6,
		Weeks: []model.ContributionWeek{
			{Days: []model.ContributionDay{
				{Date: "2025-08-22", Count: 1},
				{Date: "2025-08-23", Count: 2},
			}},
			{Days: []model.ContributionDay{
				{Date: "2025-08-24", Count: 3},
			}},
		},
	}

	d := Derive(s)
	if d.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3 across week boundary", d.CurrentStreak)
	}
	if d.TotalDays != 3 {
		t.Errorf("TotalDays = %d, want 3", d.TotalDays)
	}
}
