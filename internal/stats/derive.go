// Package stats はコントリビューションカレンダーからの派生統計の計算を提供する。
// すべて純関数で、元データを変更せず、呼び出しごとにゼロから再計算する。
package stats

import (
	"math"
	"sort"

	"github.com/gillesritchmond/portfolio-api/internal/model"
)

// Derive はカレンダーから表示用の派生統計を計算する。
// 日付昇順の日列を前提とする（カレンダーの週構造がそれを保証する）。
// 空の日列では全項目ゼロ値を返し、most-productive-dayは
// ゼロ値のセンチネルになる（空列への添字アクセスはしない）。
func Derive(s *model.ContributionStats) model.DerivedStats {
	days := s.Days()
	if len(days) == 0 {
		return model.DerivedStats{}
	}

	current, longest := streaks(days)

	// 最頻日: 最大カウントの初出が勝つ
	mostDay := days[0]
	for _, d := range days[1:] {
		if d.Count > mostDay.Count {
			mostDay = d
		}
	}

	monthly := monthlyTotals(days)
	mostMonth := mostProductiveMonth(monthly)

	activeDays := 0
	for _, d := range days {
		if d.Count > 0 {
			activeDays++
		}
	}

	avg := math.Round(float64(s.Total)/float64(len(days))*10) / 10

	return model.DerivedStats{
		CurrentStreak:       current,
		LongestStreak:       longest,
		MostProductiveDay:   mostDay,
		MostProductiveMonth: mostMonth,
		AveragePerDay:       avg,
		ActiveDays:          activeDays,
		TotalDays:           len(days),
	}
}

// streaks は現在のストリーク（末尾からの連続非ゼロ日数）と
// 最長ストリーク（系列中の最大連続非ゼロ日数）を返す。
func streaks(days []model.ContributionDay) (current, longest int) {
	run := 0
	for _, d := range days {
		if d.Count > 0 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	// 末尾から最初のゼロ日まで遡る
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].Count <= 0 {
			break
		}
		current++
	}

	return current, longest
}

// monthlyTotals はYYYY-MM単位の合計カウントと活動日数を集計する。
func monthlyTotals(days []model.ContributionDay) map[string]*model.MonthlyContribution {
	monthly := make(map[string]*model.MonthlyContribution)
	for _, d := range days {
		if len(d.Date) < 7 {
			continue
		}
		month := d.Date[:7]
		mc, ok := monthly[month]
		if !ok {
			mc = &model.MonthlyContribution{Month: month}
			monthly[month] = mc
		}
		mc.Commits += d.Count
		if d.Count > 0 {
			mc.ActiveDays++
		}
	}
	return monthly
}

// mostProductiveMonth は合計カウント最大の月を返す。
// 同点の場合は月の昇順で最初のものが勝つ（決定的にするため）。
func mostProductiveMonth(monthly map[string]*model.MonthlyContribution) model.MonthCount {
	months := make([]string, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Strings(months)

	var best model.MonthCount
	for _, m := range months {
		if monthly[m].Commits > best.Count {
			best = model.MonthCount{Month: m, Count: monthly[m].Commits}
		}
	}
	return best
}

// Monthly はカレンダーから月ごとの内訳を月降順で返す。
func Monthly(s *model.ContributionStats) []model.MonthlyContribution {
	monthly := monthlyTotals(s.Days())

	result := make([]model.MonthlyContribution, 0, len(monthly))
	for _, mc := range monthly {
		result = append(result, *mc)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month > result[j].Month
	})
	return result
}
