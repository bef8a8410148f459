package labor

import (
	"math"
)

// StaffingResult 排班测算结果
type StaffingResult struct {
	ForecastedPicks    int     `json:"forecasted_picks"`
	PeriodDays         int     `json:"period_days"`
	RequiredHeadcount  int     `json:"required_headcount"`
	TotalLaborHours    float64 `json:"total_labor_hours"`
	EstimatedLaborCost float64 `json:"estimated_labor_cost"`
	PicksPerPerson     float64 `json:"picks_per_person"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

// CalculateStaffing 根据预测拣货量测算所需人数
// 人均可用生产工时 = 班次小时 × (目标效率/100) × 周期天数；
// 人数 = ceil(总标准工时 / 人均可用工时)，始终向上取整以保证覆盖。
// forecastedPicks 与 periodDays 的正数校验由调用方完成
func CalculateStaffing(forecastedPicks, periodDays int, avgWalkFeetPerPick float64, std ResolvedStandards) *StaffingResult {
	secondsPerPick := StandardSecondsPerPick(std, avgWalkFeetPerPick)
	totalStandardHours := float64(forecastedPicks) * secondsPerPick / 3600

	availablePerWorker := std.ShiftHours * (std.TargetEfficiencyPercent / 100) * float64(periodDays)

	result := &StaffingResult{
		ForecastedPicks:    forecastedPicks,
		PeriodDays:         periodDays,
		TotalLaborHours:    totalStandardHours,
		EstimatedLaborCost: totalStandardHours * std.FullyLoadedRate(),
	}

	if availablePerWorker <= 0 || totalStandardHours <= 0 {
		return result
	}

	headcount := int(math.Ceil(totalStandardHours / availablePerWorker))
	if headcount < 1 {
		headcount = 1
	}

	result.RequiredHeadcount = headcount
	result.PicksPerPerson = float64(forecastedPicks) / float64(headcount)
	result.UtilizationPercent = totalStandardHours / (float64(headcount) * availablePerWorker) * 100

	return result
}
