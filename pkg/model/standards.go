package model

import (
	"github.com/google/uuid"
)

// LaborStandards 布局的工时标准配置（存储行）
// 每个字段独立可空：空表示"使用文档默认值"，而不是零
// 首次写入时创建（upsert），之后只覆盖不删除
type LaborStandards struct {
	BaseModel
	LayoutID uuid.UUID `json:"layout_id" db:"layout_id"`

	// 旧版合并工时（秒）
	PickTimeSeconds    *float64 `json:"pick_time_seconds,omitempty" db:"pick_time_seconds"`
	PackTimeSeconds    *float64 `json:"pack_time_seconds,omitempty" db:"pack_time_seconds"`
	PutawayTimeSeconds *float64 `json:"putaway_time_seconds,omitempty" db:"putaway_time_seconds"`

	// 细分工时（秒）
	PickItemSeconds *float64 `json:"pick_item_seconds,omitempty" db:"pick_item_seconds"`
	ToteTimeSeconds *float64 `json:"tote_time_seconds,omitempty" db:"tote_time_seconds"`
	ScanTimeSeconds *float64 `json:"scan_time_seconds,omitempty" db:"scan_time_seconds"`

	// 步行速度（英尺/分钟）
	WalkSpeedFpm *float64 `json:"walk_speed_fpm,omitempty" db:"walk_speed_fpm"`

	// PFD 宽放率（%）
	FatigueAllowancePercent *float64 `json:"fatigue_allowance_percent,omitempty" db:"fatigue_allowance_percent"`
	DelayAllowancePercent   *float64 `json:"delay_allowance_percent,omitempty" db:"delay_allowance_percent"`

	// 重储位耗时（分钟/件）
	ReslotTimeMinutes *float64 `json:"reslot_time_minutes,omitempty" db:"reslot_time_minutes"`

	// 成本换算
	HourlyLaborRate    *float64 `json:"hourly_labor_rate,omitempty" db:"hourly_labor_rate"`
	BenefitsMultiplier *float64 `json:"benefits_multiplier,omitempty" db:"benefits_multiplier"`

	// 排班容量
	ShiftHours              *float64 `json:"shift_hours,omitempty" db:"shift_hours"`
	TargetEfficiencyPercent *float64 `json:"target_efficiency_percent,omitempty" db:"target_efficiency_percent"`
}
