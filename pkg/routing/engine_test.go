package routing

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/zoudao/zoudao/pkg/geo"
	"github.com/zoudao/zoudao/pkg/model"
)

func marker(t model.MarkerType, x, y float64) *model.RouteMarker {
	return &model.RouteMarker{Type: t, X: x, Y: y}
}

func sequencedMarker(x, y float64, seq int) *model.RouteMarker {
	m := marker(model.MarkerCartParking, x, y)
	m.SequenceOrder = &seq
	return m
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEngine_Calculate_SingleSpot(t *testing.T) {
	// 起点(0,0)、终点(100,0)、停靠点(50,0)、到访(50,10)：
	// 步行往返 2×10=20，拣货车 50+50=100，合计 120（英寸）
	engine := NewEngine()
	markers := []*model.RouteMarker{
		marker(model.MarkerStartPoint, 0, 0),
		marker(model.MarkerStopPoint, 100, 0),
		marker(model.MarkerCartParking, 50, 0),
	}
	picks := []model.PickRow{
		{LocationID: "loc-1", X: 50, Y: 10, Date: "2026-03-02", PickCount: 3},
	}

	result := engine.Calculate(markers, picks, model.DateRange{}, 0)

	if result.Missing != nil {
		t.Fatalf("标记齐全时不应报缺失: %+v", result.Missing)
	}
	if !almostEqual(result.PedestrianTravelDistFeet, geo.InchesToFeet(20)) {
		t.Errorf("步行距离 = %v 英尺, expected %v", result.PedestrianTravelDistFeet, geo.InchesToFeet(20))
	}
	if !almostEqual(result.CartTravelDistFeet, geo.InchesToFeet(100)) {
		t.Errorf("拣货车距离 = %v 英尺, expected %v", result.CartTravelDistFeet, geo.InchesToFeet(100))
	}
	if !almostEqual(result.TotalDistanceFeet, geo.InchesToFeet(120)) {
		t.Errorf("总距离 = %v 英尺, expected %v", result.TotalDistanceFeet, geo.InchesToFeet(120))
	}
	if result.VisitCount != 1 {
		t.Errorf("VisitCount = %d, expected 1", result.VisitCount)
	}
	if result.TotalPicks != 3 {
		t.Errorf("TotalPicks = %d, expected 3", result.TotalPicks)
	}
	if len(result.DailyBreakdown) != 1 {
		t.Fatalf("应有1天明细, got %d", len(result.DailyBreakdown))
	}
}

func TestEngine_Calculate_MissingMarkers(t *testing.T) {
	tests := []struct {
		name    string
		markers []*model.RouteMarker
		check   func(m *MissingMarkers) bool
	}{
		{
			name:    "全部缺失",
			markers: nil,
			check:   func(m *MissingMarkers) bool { return m.StartPoint && m.StopPoint && m.CartParking },
		},
		{
			name: "缺终点",
			markers: []*model.RouteMarker{
				marker(model.MarkerStartPoint, 0, 0),
				marker(model.MarkerCartParking, 50, 0),
			},
			check: func(m *MissingMarkers) bool { return !m.StartPoint && m.StopPoint && !m.CartParking },
		},
		{
			name: "缺停靠点",
			markers: []*model.RouteMarker{
				marker(model.MarkerStartPoint, 0, 0),
				marker(model.MarkerStopPoint, 100, 0),
			},
			check: func(m *MissingMarkers) bool { return m.CartParking && !m.StartPoint && !m.StopPoint },
		},
	}

	engine := NewEngine()
	picks := []model.PickRow{{LocationID: "loc-1", X: 1, Y: 1, Date: "2026-03-02"}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Calculate(tt.markers, picks, model.DateRange{}, 0)

			if result.Missing == nil {
				t.Fatal("应返回缺失标记信息")
			}
			if !tt.check(result.Missing) {
				t.Errorf("缺失标记分类错误: %+v", result.Missing)
			}
			if result.TotalDistanceFeet != 0 {
				t.Errorf("缺失标记时总距离应为0, got %v", result.TotalDistanceFeet)
			}
			if result.Message == "" {
				t.Error("应包含说明信息")
			}
		})
	}
}

func TestEngine_Calculate_NoPickData(t *testing.T) {
	engine := NewEngine()
	markers := []*model.RouteMarker{
		marker(model.MarkerStartPoint, 0, 0),
		marker(model.MarkerStopPoint, 100, 0),
		marker(model.MarkerCartParking, 50, 0),
	}

	result := engine.Calculate(markers, nil, model.DateRange{}, 0)

	if result.TotalDistanceFeet != 0 || result.VisitCount != 0 {
		t.Errorf("无拣货数据时应返回零值结果: %+v", result)
	}
	if result.Message == "" {
		t.Error("应包含说明信息")
	}
	if result.Missing != nil {
		t.Error("标记齐全时不应报缺失")
	}
}

func TestEngine_Calculate_DateRangeFilter(t *testing.T) {
	engine := NewEngine()
	markers := []*model.RouteMarker{
		marker(model.MarkerStartPoint, 0, 0),
		marker(model.MarkerStopPoint, 100, 0),
		marker(model.MarkerCartParking, 50, 0),
	}
	picks := []model.PickRow{
		{LocationID: "loc-1", X: 50, Y: 10, Date: "2026-03-01", PickCount: 1},
		{LocationID: "loc-1", X: 50, Y: 10, Date: "2026-03-02", PickCount: 1},
		{LocationID: "loc-1", X: 50, Y: 10, Date: "2026-03-10", PickCount: 1},
	}

	result := engine.Calculate(markers, picks, model.DateRange{StartDate: "2026-03-01", EndDate: "2026-03-02"}, 0)

	if len(result.DailyBreakdown) != 2 {
		t.Fatalf("范围内应有2天, got %d", len(result.DailyBreakdown))
	}
	// 每日独立计算后求和
	if !almostEqual(result.TotalDistanceFeet, 2*geo.InchesToFeet(120)) {
		t.Errorf("总距离 = %v, expected %v", result.TotalDistanceFeet, 2*geo.InchesToFeet(120))
	}
}

func TestEngine_Calculate_MultiSpotGreedy(t *testing.T) {
	// 两个停靠点，无显式顺序：贪心从起点开始应先访问近的
	engine := NewEngine()
	markers := []*model.RouteMarker{
		marker(model.MarkerStartPoint, 0, 0),
		marker(model.MarkerStopPoint, 0, 0),
		marker(model.MarkerCartParking, 100, 0),
		marker(model.MarkerCartParking, 20, 0),
	}
	picks := []model.PickRow{
		{LocationID: "a", X: 100, Y: 0, Date: "2026-03-02", PickCount: 1},
		{LocationID: "b", X: 20, Y: 0, Date: "2026-03-02", PickCount: 1},
	}

	result := engine.Calculate(markers, picks, model.DateRange{}, 0)

	// 贪心：0→20→100→0 = 20+80+100 = 200英寸；步行距离为0（到访在停靠点上）
	if !almostEqual(result.CartTravelDistFeet, geo.InchesToFeet(200)) {
		t.Errorf("拣货车距离 = %v, expected %v", result.CartTravelDistFeet, geo.InchesToFeet(200))
	}
}

func TestEngine_Calculate_ExplicitSequence(t *testing.T) {
	// 显式顺序覆盖贪心：按 sequence_order 升序行进
	engine := NewEngine()
	markers := []*model.RouteMarker{
		marker(model.MarkerStartPoint, 0, 0),
		marker(model.MarkerStopPoint, 0, 0),
		sequencedMarker(20, 0, 2),
		sequencedMarker(100, 0, 1),
	}
	picks := []model.PickRow{
		{LocationID: "a", X: 100, Y: 0, Date: "2026-03-02", PickCount: 1},
		{LocationID: "b", X: 20, Y: 0, Date: "2026-03-02", PickCount: 1},
	}

	result := engine.Calculate(markers, picks, model.DateRange{}, 0)

	// 0→100→20→0 = 100+80+20 = 200英寸
	if !almostEqual(result.CartTravelDistFeet, geo.InchesToFeet(200)) {
		t.Errorf("拣货车距离 = %v, expected %v", result.CartTravelDistFeet, geo.InchesToFeet(200))
	}
}

func TestEngine_Calculate_Idempotent(t *testing.T) {
	engine := NewEngine()
	markers := []*model.RouteMarker{
		marker(model.MarkerStartPoint, 0, 0),
		marker(model.MarkerStopPoint, 200, 0),
		marker(model.MarkerCartParking, 50, 0),
		marker(model.MarkerCartParking, 150, 30),
		marker(model.MarkerCartParking, 80, 90),
	}
	picks := []model.PickRow{
		{LocationID: "a", X: 55, Y: 10, Date: "2026-03-01", PickCount: 2},
		{LocationID: "b", X: 140, Y: 25, Date: "2026-03-01", PickCount: 1},
		{LocationID: "c", X: 85, Y: 95, Date: "2026-03-02", PickCount: 4},
		{LocationID: "a", X: 55, Y: 10, Date: "2026-03-02", PickCount: 1},
	}

	first, _ := json.Marshal(engine.Calculate(markers, picks, model.DateRange{}, 264))
	second, _ := json.Marshal(engine.Calculate(markers, picks, model.DateRange{}, 264))

	if string(first) != string(second) {
		t.Error("相同输入重复计算应产生完全一致的输出")
	}
}

func TestEngine_Calculate_EstimatedMinutes(t *testing.T) {
	engine := NewEngine()
	markers := []*model.RouteMarker{
		marker(model.MarkerStartPoint, 0, 0),
		marker(model.MarkerStopPoint, 100, 0),
		marker(model.MarkerCartParking, 50, 0),
	}
	picks := []model.PickRow{
		{LocationID: "loc-1", X: 50, Y: 10, Date: "2026-03-02", PickCount: 1},
	}

	result := engine.Calculate(markers, picks, model.DateRange{}, 264)

	expected := geo.InchesToFeet(120) / 264
	if !almostEqual(result.EstimatedMinutes, expected) {
		t.Errorf("EstimatedMinutes = %v, expected %v", result.EstimatedMinutes, expected)
	}

	// 速度为0时不估算，保持零值而非NaN
	zero := engine.Calculate(markers, picks, model.DateRange{}, 0)
	if zero.EstimatedMinutes != 0 {
		t.Errorf("速度为0时应返回0, got %v", zero.EstimatedMinutes)
	}
}
