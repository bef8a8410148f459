package labor

import (
	"testing"

	"github.com/zoudao/zoudao/pkg/model"
)

func perfRecord(date string, hours float64) *model.PerformanceRecord {
	return &model.PerformanceRecord{Date: date, ActualHours: hours}
}

func TestCalculateEfficiency_FullCoverage(t *testing.T) {
	std := DefaultStandards()
	pickDates := []string{"2026-03-01", "2026-03-02"}
	records := []*model.PerformanceRecord{
		perfRecord("2026-03-01", 4),
		perfRecord("2026-03-02", 4),
	}

	result := CalculateEfficiency(500, 10000, pickDates, records, std, 0)

	if result.Coverage.CoveragePercent != 100 {
		t.Errorf("覆盖率 = %v, expected 100", result.Coverage.CoveragePercent)
	}
	if result.ActualHours == nil || *result.ActualHours != 8 {
		t.Fatalf("实际工时 = %v, expected 8", result.ActualHours)
	}
	if result.EfficiencyPercent == nil {
		t.Fatal("覆盖率达标时应给出效率")
	}
	expected := result.StandardHours / 8 * 100
	if *result.EfficiencyPercent != expected {
		t.Errorf("效率 = %v, expected %v", *result.EfficiencyPercent, expected)
	}
}

func TestCalculateEfficiency_InsufficientCoverage(t *testing.T) {
	std := DefaultStandards()
	// 5个拣货日只记录了3天：60% < 80%
	pickDates := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"}
	records := []*model.PerformanceRecord{
		perfRecord("2026-03-01", 8),
		perfRecord("2026-03-02", 8),
		perfRecord("2026-03-03", 8),
	}

	result := CalculateEfficiency(500, 10000, pickDates, records, std, 0)

	if result.EfficiencyPercent != nil {
		t.Errorf("覆盖率不足时效率应为空, got %v", *result.EfficiencyPercent)
	}
	if result.ActualHours != nil {
		t.Error("覆盖率不足时实际工时应为空")
	}
	// 标准工时与成本仍然返回
	if result.StandardHours <= 0 || result.EstimatedLaborCost <= 0 {
		t.Errorf("标准工时与成本应照常返回: %+v", result)
	}
	if result.Coverage.PickDays != 5 || result.Coverage.PerfDays != 3 {
		t.Errorf("覆盖统计错误: %+v", result.Coverage)
	}
	if result.Coverage.CoveragePercent != 60 {
		t.Errorf("覆盖率 = %v, expected 60", result.Coverage.CoveragePercent)
	}
}

func TestCalculateEfficiency_ExactThreshold(t *testing.T) {
	std := DefaultStandards()
	// 5天记录4天 = 正好80%，达标
	pickDates := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"}
	records := []*model.PerformanceRecord{
		perfRecord("2026-03-01", 8),
		perfRecord("2026-03-02", 8),
		perfRecord("2026-03-03", 8),
		perfRecord("2026-03-04", 8),
	}

	result := CalculateEfficiency(500, 10000, pickDates, records, std, 0)

	if result.EfficiencyPercent == nil {
		t.Error("恰好80%覆盖率应达标")
	}
}

func TestCalculateEfficiency_RecordsOutsidePickDates(t *testing.T) {
	std := DefaultStandards()
	pickDates := []string{"2026-03-01"}
	records := []*model.PerformanceRecord{
		perfRecord("2026-03-01", 6),
		perfRecord("2026-02-15", 8), // 非拣货日，不计入
		perfRecord("2026-03-01", 2), // 重复日期，不重复计
	}

	result := CalculateEfficiency(100, 1000, pickDates, records, std, 0)

	if result.Coverage.PerfDays != 1 {
		t.Errorf("覆盖天数 = %d, expected 1", result.Coverage.PerfDays)
	}
	if result.ActualHours == nil || *result.ActualHours != 6 {
		t.Errorf("实际工时 = %v, expected 6", result.ActualHours)
	}
}

func TestCalculateEfficiency_ZeroActualHours(t *testing.T) {
	std := DefaultStandards()
	pickDates := []string{"2026-03-01"}
	records := []*model.PerformanceRecord{perfRecord("2026-03-01", 0)}

	result := CalculateEfficiency(100, 1000, pickDates, records, std, 0)

	// 覆盖达标但实际工时为0：不做除法，效率保持为空
	if result.EfficiencyPercent != nil {
		t.Errorf("实际工时为0时效率应为空, got %v", *result.EfficiencyPercent)
	}
}

func TestCalculateEfficiency_AvgWalkPerPick(t *testing.T) {
	std := DefaultStandards()

	result := CalculateEfficiency(200, 5000, []string{"2026-03-01"}, nil, std, 0)

	if result.AvgWalkDistancePerPick != 25 {
		t.Errorf("人均步行距离 = %v, expected 25", result.AvgWalkDistancePerPick)
	}

	zero := CalculateEfficiency(0, 5000, []string{"2026-03-01"}, nil, std, 0)
	if zero.AvgWalkDistancePerPick != 0 {
		t.Errorf("0件拣货时人均距离应为0, got %v", zero.AvgWalkDistancePerPick)
	}
}
