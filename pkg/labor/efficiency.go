package labor

import (
	"github.com/zoudao/zoudao/pkg/model"
)

// DefaultCoverageThresholdPercent 效率计算的实绩覆盖率门槛
// 覆盖率低于此值时不给出效率百分比，避免以少数有记录的天数
// 冒充整个周期的效率结论
const DefaultCoverageThresholdPercent = 80.0

// Coverage 实绩覆盖情况
type Coverage struct {
	PickDays        int     `json:"pick_days"`
	PerfDays        int     `json:"perf_days"`
	CoveragePercent float64 `json:"coverage_percent"`
}

// EfficiencyResult 效率计算结果
// 覆盖率不足时 ActualHours 与 EfficiencyPercent 为空，只返回标准工时与成本
type EfficiencyResult struct {
	TotalPicks              int        `json:"total_picks"`
	TotalWalkDistanceFeet   float64    `json:"total_walk_distance_feet"`
	AvgWalkDistancePerPick  float64    `json:"avg_walk_distance_per_pick"`
	StandardHours           float64    `json:"standard_hours"`
	ActualHours             *float64   `json:"actual_hours,omitempty"`
	EfficiencyPercent       *float64   `json:"efficiency_percent,omitempty"`
	TargetEfficiencyPercent float64    `json:"target_efficiency_percent"`
	Breakdown               *Breakdown `json:"breakdown"`
	EstimatedLaborCost      float64    `json:"estimated_labor_cost"`
	Coverage                Coverage   `json:"coverage"`
}

// CalculateEfficiency 计算标准工时并在覆盖率达标时给出效率
// pickDates 为范围内有拣货数据的不重复日期；
// records 为已记录的每日实绩；
// thresholdPercent <= 0 时使用默认门槛80%
func CalculateEfficiency(
	totalPicks int,
	totalWalkFeet float64,
	pickDates []string,
	records []*model.PerformanceRecord,
	std ResolvedStandards,
	thresholdPercent float64,
) *EfficiencyResult {
	if thresholdPercent <= 0 {
		thresholdPercent = DefaultCoverageThresholdPercent
	}

	breakdown := CalculateBreakdown(totalPicks, totalWalkFeet, std, false)

	result := &EfficiencyResult{
		TotalPicks:              totalPicks,
		TotalWalkDistanceFeet:   totalWalkFeet,
		StandardHours:           breakdown.TotalEstimatedHours,
		TargetEfficiencyPercent: std.TargetEfficiencyPercent,
		Breakdown:               breakdown,
		EstimatedLaborCost:      breakdown.EstimatedLaborCost,
	}
	if totalPicks > 0 {
		result.AvgWalkDistancePerPick = totalWalkFeet / float64(totalPicks)
	}

	// 实绩覆盖率：有记录的拣货日 / 全部拣货日
	pickDateSet := make(map[string]bool, len(pickDates))
	for _, d := range pickDates {
		pickDateSet[d] = true
	}

	actualHours := 0.0
	coveredDays := 0
	seen := make(map[string]bool)
	for _, r := range records {
		if r == nil || !pickDateSet[r.Date] || seen[r.Date] {
			continue
		}
		seen[r.Date] = true
		coveredDays++
		actualHours += r.ActualHours
	}

	result.Coverage = Coverage{
		PickDays: len(pickDateSet),
		PerfDays: coveredDays,
	}
	if len(pickDateSet) > 0 {
		result.Coverage.CoveragePercent = float64(coveredDays) / float64(len(pickDateSet)) * 100
	}

	// 覆盖率不足时效率保持为空，绝不近似
	if result.Coverage.CoveragePercent < thresholdPercent {
		return result
	}

	result.ActualHours = &actualHours
	if actualHours > 0 {
		efficiency := result.StandardHours / actualHours * 100
		result.EfficiencyPercent = &efficiency
	}

	return result
}
