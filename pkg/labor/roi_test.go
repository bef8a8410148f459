package labor

import (
	"testing"

	"github.com/zoudao/zoudao/pkg/model"
)

func roiMarkers() []*model.RouteMarker {
	return []*model.RouteMarker{
		{Type: model.MarkerStartPoint, X: 0, Y: 0},
		{Type: model.MarkerCartParking, X: 0, Y: 0},
	}
}

func TestCalculateROI_HotFarCandidate(t *testing.T) {
	std := DefaultStandards()
	items := []model.ItemAggregate{
		{ItemID: "hot-far", X: 1200, Y: 0, TotalPicks: 1000, Days: 10},  // 100英尺、100件/日
		{ItemID: "hot-near", X: 12, Y: 0, TotalPicks: 900, Days: 10},    // 1英尺、90件/日
		{ItemID: "cold-far", X: 1200, Y: 1200, TotalPicks: 10, Days: 10}, // 200英尺、1件/日
		{ItemID: "cold-near", X: 24, Y: 0, TotalPicks: 20, Days: 10},    // 2英尺、2件/日
	}

	result := CalculateROI(items, roiMarkers(), std, 0.25, 0.50)

	if len(result.Recommendations) != 1 {
		t.Fatalf("应只有1条建议, got %d: %+v", len(result.Recommendations), result.Recommendations)
	}
	rec := result.Recommendations[0]
	if rec.ItemID != "hot-far" {
		t.Errorf("候选应为既高频又偏远的货品, got %s", rec.ItemID)
	}
	// (100 - 1) × 2 × 100 = 19800英尺/日
	if !closeTo(rec.DailySavingsFeet, 19800, 1e-9) {
		t.Errorf("日节省 = %v, expected 19800", rec.DailySavingsFeet)
	}
	if rec.Rank != 1 {
		t.Errorf("Rank = %d, expected 1", rec.Rank)
	}
	if result.Implementation.ItemsToReslot != 1 {
		t.Errorf("待重储位件数 = %d, expected 1", result.Implementation.ItemsToReslot)
	}
}

func TestCalculateROI_PaybackZeroWithoutSavings(t *testing.T) {
	std := DefaultStandards()
	// 唯一货品就在参考点上：无可节省距离
	items := []model.ItemAggregate{
		{ItemID: "at-ref", X: 0, Y: 0, TotalPicks: 1000, Days: 1},
	}

	result := CalculateROI(items, roiMarkers(), std, 0, 0)

	if result.Savings.DailyDollars != 0 {
		t.Errorf("日节省应为0: %v", result.Savings.DailyDollars)
	}
	if result.Implementation.PaybackDays != 0 {
		t.Errorf("无节省时回本天数应为0, got %d", result.Implementation.PaybackDays)
	}
}

func TestPaybackDays_Monotonic(t *testing.T) {
	savings := 50.0
	prev := 0
	for _, cost := range []float64{0, 10, 100, 1000, 10000} {
		days := paybackDays(cost, savings)
		if days < prev {
			t.Errorf("回本天数应随实施成本单调不减: cost=%v days=%d prev=%d", cost, days, prev)
		}
		prev = days
	}

	if paybackDays(1000, 0) != 0 {
		t.Error("节省为0时回本天数应为0")
	}
	if paybackDays(1000, -5) != 0 {
		t.Error("节省为负时回本天数应为0")
	}
}

func TestCalculateROI_ReferenceFallbackToStart(t *testing.T) {
	std := DefaultStandards()
	// 没有停靠点时退用起点
	markers := []*model.RouteMarker{
		{Type: model.MarkerStartPoint, X: 0, Y: 0},
	}
	items := []model.ItemAggregate{
		{ItemID: "a", X: 120, Y: 0, TotalPicks: 100, Days: 1},
	}

	result := CalculateROI(items, markers, std, 0, 0)

	if result.Message != "" {
		t.Errorf("有起点时不应报缺参考点: %s", result.Message)
	}
	// 10英尺单程 × 2 × 100件 = 2000英尺/日
	if !closeTo(result.CurrentState.DailyWalkFeet, 2000, 1e-9) {
		t.Errorf("当前日步行量 = %v, expected 2000", result.CurrentState.DailyWalkFeet)
	}
}

func TestCalculateROI_NoReferencePoint(t *testing.T) {
	std := DefaultStandards()

	result := CalculateROI([]model.ItemAggregate{{ItemID: "a", X: 1, Y: 1, TotalPicks: 1, Days: 1}}, nil, std, 0, 0)

	if result.Message == "" {
		t.Error("缺参考点应返回说明信息")
	}
	if len(result.Recommendations) != 0 {
		t.Error("缺参考点时不应有建议")
	}
}

func TestCalculateROI_ProjectedState(t *testing.T) {
	std := DefaultStandards()
	items := []model.ItemAggregate{
		{ItemID: "far", X: 1200, Y: 0, TotalPicks: 100, Days: 1},
		{ItemID: "near", X: 12, Y: 0, TotalPicks: 1, Days: 1},
	}

	result := CalculateROI(items, roiMarkers(), std, 0.50, 0.50)

	projected := result.CurrentState.DailyWalkFeet - result.Savings.DailyFeet
	if !closeTo(result.ProjectedState.DailyWalkFeet, projected, 1e-9) {
		t.Errorf("预期状态 = %v, expected %v", result.ProjectedState.DailyWalkFeet, projected)
	}
	if result.ProjectedState.DailyWalkFeet > result.CurrentState.DailyWalkFeet {
		t.Error("重储位后的步行量不应高于当前")
	}
}

func TestTopThreshold(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	// 前20%：门槛应让 9、10 入选
	if got := topThreshold(values, 0.20); got != 9 {
		t.Errorf("top 20%% 门槛 = %v, expected 9", got)
	}
	// 前50%：门槛应让 6..10 入选
	if got := topThreshold(values, 0.50); got != 6 {
		t.Errorf("top 50%% 门槛 = %v, expected 6", got)
	}
	// 单元素总体：自身即门槛
	if got := topThreshold([]float64{42}, 0.20); got != 42 {
		t.Errorf("单元素门槛 = %v, expected 42", got)
	}
}
