package model

import (
	"github.com/google/uuid"
)

// PerformanceRecord 每日实绩记录
// 以 (layout_id, date) 为键幂等 upsert，后写覆盖先写
type PerformanceRecord struct {
	BaseModel
	LayoutID          uuid.UUID `json:"layout_id" db:"layout_id"`
	Date              string    `json:"date" db:"date"` // YYYY-MM-DD
	ActualPicks       int       `json:"actual_picks" db:"actual_picks"`
	ActualHours       float64   `json:"actual_hours" db:"actual_hours"`
	StandardHours     float64   `json:"standard_hours" db:"standard_hours"`
	EfficiencyPercent *float64  `json:"efficiency_percent,omitempty" db:"efficiency_percent"`
	WalkHours         float64   `json:"walk_hours" db:"walk_hours"`
	PickHours         float64   `json:"pick_hours" db:"pick_hours"`
	AllowanceHours    float64   `json:"allowance_hours" db:"allowance_hours"`
}

// StaffingForecast 排班测算快照
// 计算结果连同当时生效的标准一起固化，创建后不再重算
type StaffingForecast struct {
	BaseModel
	LayoutID           uuid.UUID `json:"layout_id" db:"layout_id"`
	ForecastedPicks    int       `json:"forecasted_picks" db:"forecasted_picks"`
	PeriodDays         int       `json:"period_days" db:"period_days"`
	RequiredHeadcount  int       `json:"required_headcount" db:"required_headcount"`
	TotalLaborHours    float64   `json:"total_labor_hours" db:"total_labor_hours"`
	EstimatedLaborCost float64   `json:"estimated_labor_cost" db:"estimated_labor_cost"`
	StandardsSnapshot  JSONMap   `json:"standards_snapshot" db:"standards_snapshot"`
}

// ROISimulation 重储位ROI模拟快照
type ROISimulation struct {
	BaseModel
	LayoutID           uuid.UUID `json:"layout_id" db:"layout_id"`
	ItemsToReslot      int       `json:"items_to_reslot" db:"items_to_reslot"`
	DailySavingsFeet   float64   `json:"daily_savings_feet" db:"daily_savings_feet"`
	AnnualSavingsUSD   float64   `json:"annual_savings_usd" db:"annual_savings_usd"`
	ImplementationCost float64   `json:"implementation_cost" db:"implementation_cost"`
	PaybackDays        int       `json:"payback_days" db:"payback_days"`
	StandardsSnapshot  JSONMap   `json:"standards_snapshot" db:"standards_snapshot"`
}
