// Package trend 提供绩效历史趋势分析
package trend

import (
	"sort"

	"github.com/zoudao/zoudao/pkg/model"
)

// 周环比趋势判定阈值（%）
const wowThresholdPercent = 5.0

// 趋势标签
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// DayPoint 单日绩效点
type DayPoint struct {
	Date              string  `json:"date"`
	EfficiencyPercent float64 `json:"efficiency_percent"`
}

// Result 趋势分析结果
// 记录不足8条时周环比为空（无法构成两个完整的7日窗口）
type Result struct {
	RollingAvg7Day      *float64  `json:"rolling_avg_7day,omitempty"`
	WeekOverWeekChange  *float64  `json:"week_over_week_change,omitempty"`
	BestDay             *DayPoint `json:"best_day,omitempty"`
	WorstDay            *DayPoint `json:"worst_day,omitempty"`
	Trend               string    `json:"trend"`
	DataPoints          int       `json:"data_points"`
}

// Analyze 从绩效历史计算滚动统计
// 输入记录无需有序，内部按日期从新到旧排序；
// 没有效率值的记录（覆盖率不足的天）不参与统计
func Analyze(records []*model.PerformanceRecord) *Result {
	// 只保留有效率值的记录，按日期从新到旧
	var usable []*model.PerformanceRecord
	for _, r := range records {
		if r != nil && r.EfficiencyPercent != nil {
			usable = append(usable, r)
		}
	}
	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Date > usable[j].Date
	})

	result := &Result{
		Trend:      TrendStable,
		DataPoints: len(usable),
	}
	if len(usable) == 0 {
		return result
	}

	// 最近7条的滚动平均
	recentAvg := windowAvg(usable, 0, 7)
	result.RollingAvg7Day = &recentAvg

	// 周环比：需要第二个完整窗口至少开始（≥8条）
	if len(usable) >= 8 {
		prevAvg := windowAvg(usable, 7, 7)
		if prevAvg > 0 {
			change := (recentAvg - prevAvg) / prevAvg * 100
			result.WeekOverWeekChange = &change

			switch {
			case change > wowThresholdPercent:
				result.Trend = TrendImproving
			case change < -wowThresholdPercent:
				result.Trend = TrendDeclining
			}
		}
	}

	// 最近30条中的最好/最差
	window := usable
	if len(window) > 30 {
		window = window[:30]
	}
	best, worst := window[0], window[0]
	for _, r := range window[1:] {
		if *r.EfficiencyPercent > *best.EfficiencyPercent {
			best = r
		}
		if *r.EfficiencyPercent < *worst.EfficiencyPercent {
			worst = r
		}
	}
	result.BestDay = &DayPoint{Date: best.Date, EfficiencyPercent: *best.EfficiencyPercent}
	result.WorstDay = &DayPoint{Date: worst.Date, EfficiencyPercent: *worst.EfficiencyPercent}

	return result
}

// windowAvg 计算从 offset 开始最多 size 条记录的效率均值
func windowAvg(records []*model.PerformanceRecord, offset, size int) float64 {
	end := offset + size
	if end > len(records) {
		end = len(records)
	}
	if offset >= end {
		return 0
	}

	sum := 0.0
	for _, r := range records[offset:end] {
		sum += *r.EfficiencyPercent
	}
	return sum / float64(end-offset)
}
