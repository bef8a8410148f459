// Package labor 提供工时标准与人力分析计算
package labor

import (
	"math"

	"github.com/zoudao/zoudao/pkg/model"
)

// ResolvedStandards 完全解析后的工时标准
// 所有字段均已填充，下游计算不再需要判空。
// 不可变值类型：解析一次，按值传递，绝不回写共享状态
type ResolvedStandards struct {
	PickTimeSeconds    float64 `json:"pick_time_seconds"`
	PackTimeSeconds    float64 `json:"pack_time_seconds"`
	PutawayTimeSeconds float64 `json:"putaway_time_seconds"`

	PickItemSeconds float64 `json:"pick_item_seconds"`
	ToteTimeSeconds float64 `json:"tote_time_seconds"`
	ScanTimeSeconds float64 `json:"scan_time_seconds"`

	WalkSpeedFpm float64 `json:"walk_speed_fpm"`

	FatigueAllowancePercent float64 `json:"fatigue_allowance_percent"`
	DelayAllowancePercent   float64 `json:"delay_allowance_percent"`

	ReslotTimeMinutes float64 `json:"reslot_time_minutes"`

	HourlyLaborRate    float64 `json:"hourly_labor_rate"`
	BenefitsMultiplier float64 `json:"benefits_multiplier"`

	ShiftHours              float64 `json:"shift_hours"`
	TargetEfficiencyPercent float64 `json:"target_efficiency_percent"`
}

// DefaultStandards 返回文档默认标准
// 时间单位为秒（另有注明者除外）。步行速度 264 英尺/分钟约合 3 英里/小时
func DefaultStandards() ResolvedStandards {
	return ResolvedStandards{
		PickTimeSeconds:    15.0,
		PackTimeSeconds:    30.0,
		PutawayTimeSeconds: 20.0,

		PickItemSeconds: 12.0,
		ToteTimeSeconds: 8.0,
		ScanTimeSeconds: 5.0,

		WalkSpeedFpm: 264.0,

		FatigueAllowancePercent: 10.0,
		DelayAllowancePercent:   5.0,

		ReslotTimeMinutes: 12.0,

		HourlyLaborRate:    18.00,
		BenefitsMultiplier: 1.30,

		ShiftHours:              8.0,
		TargetEfficiencyPercent: 85.0,
	}
}

// Resolve 将可能不完整的存储配置解析为完整标准
// 字段存在且为有效数值时采用存储值，否则回退到文档默认值。
// 这是"缺失 vs 显式零"歧义的唯一消解点，所有消费标准的
// 计算都必须经过这里，不允许绕过
func Resolve(stored *model.LaborStandards) ResolvedStandards {
	resolved := DefaultStandards()
	if stored == nil {
		return resolved
	}

	assign(&resolved.PickTimeSeconds, stored.PickTimeSeconds)
	assign(&resolved.PackTimeSeconds, stored.PackTimeSeconds)
	assign(&resolved.PutawayTimeSeconds, stored.PutawayTimeSeconds)
	assign(&resolved.PickItemSeconds, stored.PickItemSeconds)
	assign(&resolved.ToteTimeSeconds, stored.ToteTimeSeconds)
	assign(&resolved.ScanTimeSeconds, stored.ScanTimeSeconds)
	assign(&resolved.WalkSpeedFpm, stored.WalkSpeedFpm)
	assign(&resolved.FatigueAllowancePercent, stored.FatigueAllowancePercent)
	assign(&resolved.DelayAllowancePercent, stored.DelayAllowancePercent)
	assign(&resolved.ReslotTimeMinutes, stored.ReslotTimeMinutes)
	assign(&resolved.HourlyLaborRate, stored.HourlyLaborRate)
	assign(&resolved.BenefitsMultiplier, stored.BenefitsMultiplier)
	assign(&resolved.ShiftHours, stored.ShiftHours)
	assign(&resolved.TargetEfficiencyPercent, stored.TargetEfficiencyPercent)

	return resolved
}

// assign 存储值有效时覆盖默认值
// 显式零是有效值；nil 和非有限数值视为未设置
func assign(dst *float64, src *float64) {
	if src == nil {
		return
	}
	if math.IsNaN(*src) || math.IsInf(*src, 0) {
		return
	}
	*dst = *src
}

// AllowanceMultiplier 返回PFD宽放乘数（1 + 疲劳% + 延误%）
func (s ResolvedStandards) AllowanceMultiplier() float64 {
	return 1 + s.FatigueAllowancePercent/100 + s.DelayAllowancePercent/100
}

// FullyLoadedRate 返回含福利的小时人工成本
func (s ResolvedStandards) FullyLoadedRate() float64 {
	return s.HourlyLaborRate * s.BenefitsMultiplier
}
