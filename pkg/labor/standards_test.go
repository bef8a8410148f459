package labor

import (
	"math"
	"testing"

	"github.com/zoudao/zoudao/pkg/model"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestResolve_NilUsesDefaults(t *testing.T) {
	resolved := Resolve(nil)

	if resolved != DefaultStandards() {
		t.Errorf("nil 配置应完全回退默认值: %+v", resolved)
	}
	if resolved.PickItemSeconds != 12.0 || resolved.WalkSpeedFpm != 264.0 {
		t.Errorf("默认值错误: %+v", resolved)
	}
}

func TestResolve_ExplicitZeroPreserved(t *testing.T) {
	// 显式零是有效配置，不得被默认值覆盖
	stored := &model.LaborStandards{
		FatigueAllowancePercent: floatPtr(0),
		DelayAllowancePercent:   floatPtr(0),
	}

	resolved := Resolve(stored)

	if resolved.FatigueAllowancePercent != 0 || resolved.DelayAllowancePercent != 0 {
		t.Errorf("显式零被覆盖: fatigue=%v delay=%v",
			resolved.FatigueAllowancePercent, resolved.DelayAllowancePercent)
	}
	if resolved.AllowanceMultiplier() != 1.0 {
		t.Errorf("宽放乘数 = %v, expected 1.0", resolved.AllowanceMultiplier())
	}
	// 未设置的字段仍用默认值
	if resolved.PickItemSeconds != 12.0 {
		t.Errorf("未设置字段应用默认值: %v", resolved.PickItemSeconds)
	}
}

func TestResolve_PartialOverride(t *testing.T) {
	stored := &model.LaborStandards{
		PickItemSeconds: floatPtr(10),
		WalkSpeedFpm:    floatPtr(300),
		HourlyLaborRate: floatPtr(22.5),
	}

	resolved := Resolve(stored)

	if resolved.PickItemSeconds != 10 || resolved.WalkSpeedFpm != 300 || resolved.HourlyLaborRate != 22.5 {
		t.Errorf("显式值未生效: %+v", resolved)
	}
	if resolved.ToteTimeSeconds != 8.0 || resolved.BenefitsMultiplier != 1.30 {
		t.Errorf("缺省字段应用默认值: %+v", resolved)
	}
}

func TestResolve_NonFiniteIgnored(t *testing.T) {
	stored := &model.LaborStandards{
		WalkSpeedFpm:    floatPtr(math.NaN()),
		PickItemSeconds: floatPtr(math.Inf(1)),
	}

	resolved := Resolve(stored)

	if resolved.WalkSpeedFpm != 264.0 || resolved.PickItemSeconds != 12.0 {
		t.Errorf("非有限数值应视为未设置: %+v", resolved)
	}
}

func TestResolvedStandards_AllowanceMultiplier(t *testing.T) {
	std := DefaultStandards()
	if math.Abs(std.AllowanceMultiplier()-1.15) > 1e-9 {
		t.Errorf("默认宽放乘数 = %v, expected 1.15", std.AllowanceMultiplier())
	}
}

func TestResolvedStandards_FullyLoadedRate(t *testing.T) {
	std := DefaultStandards()
	if math.Abs(std.FullyLoadedRate()-23.4) > 1e-9 {
		t.Errorf("含福利时薪 = %v, expected 23.4", std.FullyLoadedRate())
	}
}
