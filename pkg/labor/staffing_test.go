package labor

import (
	"testing"
)

func TestCalculateStaffing_CeilingProperty(t *testing.T) {
	std := DefaultStandards()

	tests := []struct {
		name       string
		picks      int
		periodDays int
	}{
		{"小批量单日", 100, 1},
		{"整周", 5000, 7},
		{"高峰月", 200000, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculateStaffing(tt.picks, tt.periodDays, 20, std)

			available := std.ShiftHours * (std.TargetEfficiencyPercent / 100) * float64(tt.periodDays)
			// 人数 × 人均可用工时 ≥ 总标准工时
			if float64(result.RequiredHeadcount)*available < result.TotalLaborHours {
				t.Errorf("人数不足以覆盖: headcount=%d, available=%v, total=%v",
					result.RequiredHeadcount, available, result.TotalLaborHours)
			}
			if result.UtilizationPercent > 100+1e-9 {
				t.Errorf("利用率不应超过100%%: %v", result.UtilizationPercent)
			}
		})
	}
}

func TestCalculateStaffing_TinyVolumeNeedsOneWorker(t *testing.T) {
	std := DefaultStandards()

	result := CalculateStaffing(1, 30, 0, std)

	if result.RequiredHeadcount != 1 {
		t.Errorf("任意小的正工时也需要1人, got %d", result.RequiredHeadcount)
	}
}

func TestCalculateStaffing_Fields(t *testing.T) {
	std := DefaultStandards()

	result := CalculateStaffing(10000, 7, 20, std)

	if result.ForecastedPicks != 10000 || result.PeriodDays != 7 {
		t.Errorf("输入回显错误: %+v", result)
	}
	if result.RequiredHeadcount < 1 {
		t.Fatalf("人数 = %d", result.RequiredHeadcount)
	}
	expected := float64(10000) / float64(result.RequiredHeadcount)
	if result.PicksPerPerson != expected {
		t.Errorf("人均件数 = %v, expected %v", result.PicksPerPerson, expected)
	}
	if result.EstimatedLaborCost != result.TotalLaborHours*std.FullyLoadedRate() {
		t.Errorf("成本 = %v, expected %v", result.EstimatedLaborCost, result.TotalLaborHours*std.FullyLoadedRate())
	}
}

func TestCalculateStaffing_ZeroCapacity(t *testing.T) {
	std := DefaultStandards()
	std.ShiftHours = 0

	result := CalculateStaffing(1000, 7, 20, std)

	// 容量为0时不做除法，返回零人数而非Inf
	if result.RequiredHeadcount != 0 || result.UtilizationPercent != 0 {
		t.Errorf("零容量应返回零值: %+v", result)
	}
}
