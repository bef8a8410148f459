package routing

import (
	"strings"

	"github.com/zoudao/zoudao/pkg/geo"
	"github.com/zoudao/zoudao/pkg/model"
)

// MissingMarkers 缺失的标记类别
type MissingMarkers struct {
	StartPoint  bool `json:"start_point"`
	StopPoint   bool `json:"stop_point"`
	CartParking bool `json:"cart_parking"`
}

// Any 检查是否有任何类别缺失
func (m MissingMarkers) Any() bool {
	return m.StartPoint || m.StopPoint || m.CartParking
}

// DayResult 单日步行距离明细（单位：英尺）
type DayResult struct {
	Date               string  `json:"date"`
	CartDistFeet       float64 `json:"cart_dist_feet"`
	PedestrianDistFeet float64 `json:"pedestrian_dist_feet"`
	TotalDistFeet      float64 `json:"total_dist_feet"`
	VisitCount         int     `json:"visit_count"`
	Picks              int     `json:"picks"`
	ActiveSpots        int     `json:"active_spots"`
}

// Result 步行距离计算结果（单位：英尺）
type Result struct {
	TotalDistanceFeet        float64         `json:"total_distance_feet"`
	CartTravelDistFeet       float64         `json:"cart_travel_dist_feet"`
	PedestrianTravelDistFeet float64         `json:"pedestrian_travel_dist_feet"`
	TotalPicks               int             `json:"total_picks"`
	VisitCount               int             `json:"visit_count"`
	AvgDistancePerVisitFeet  float64         `json:"avg_distance_per_visit_feet"`
	EstimatedMinutes         float64         `json:"estimated_minutes"`
	DailyBreakdown           []DayResult     `json:"daily_breakdown"`
	Missing                  *MissingMarkers `json:"missing,omitempty"`
	Message                  string          `json:"message,omitempty"`
}

// Engine 步行距离引擎
// 无状态：相同输入必然产生相同输出
type Engine struct{}

// NewEngine 创建步行距离引擎
func NewEngine() *Engine {
	return &Engine{}
}

// Calculate 计算日期范围内的步行距离
// 逐日独立计算后求和（不跨日合并，保持每日路线保真度）。
// 标记缺失和无拣货数据都是合法的"尚未配置"状态，返回零值结果加说明，
// 不作为错误抛出。walkSpeedFpm 用于估算步行分钟数（英尺/分钟）
func (e *Engine) Calculate(markers []*model.RouteMarker, picks []model.PickRow, dateRange model.DateRange, walkSpeedFpm float64) *Result {
	start, stop, parking := splitMarkers(markers)

	missing := MissingMarkers{
		StartPoint:  start == nil,
		StopPoint:   stop == nil,
		CartParking: len(parking) == 0,
	}
	if missing.Any() {
		return &Result{
			Missing: &missing,
			Message: "布局缺少路线标记，无法计算步行距离: " + describeMissing(missing),
		}
	}

	days := DeduplicateVisits(picks, dateRange)
	if len(days) == 0 {
		return &Result{
			Message: "所选日期范围内没有拣货数据",
		}
	}

	startPoint := geo.Point{X: start.X, Y: start.Y}
	stopPoint := geo.Point{X: stop.X, Y: stop.Y}

	result := &Result{
		DailyBreakdown: make([]DayResult, 0, len(days)),
	}

	for _, day := range days {
		dayResult := e.calculateDay(day, startPoint, stopPoint, parking)
		result.DailyBreakdown = append(result.DailyBreakdown, dayResult)

		result.CartTravelDistFeet += dayResult.CartDistFeet
		result.PedestrianTravelDistFeet += dayResult.PedestrianDistFeet
		result.VisitCount += dayResult.VisitCount
		result.TotalPicks += dayResult.Picks
	}

	result.TotalDistanceFeet = result.CartTravelDistFeet + result.PedestrianTravelDistFeet

	if result.VisitCount > 0 {
		result.AvgDistancePerVisitFeet = result.TotalDistanceFeet / float64(result.VisitCount)
	}
	if walkSpeedFpm > 0 {
		result.EstimatedMinutes = result.TotalDistanceFeet / walkSpeedFpm
	}

	return result
}

// calculateDay 计算单日路线
// 拣货车距离 = 起点→首个活跃停靠点 + 相邻停靠点间距 + 末个停靠点→终点；
// 当日无活跃停靠点时拣货车直接从起点到终点，步行距离为零。
// 内部以英寸计算，仅在写入结果时换算为英尺
func (e *Engine) calculateDay(day DayVisits, start, stop geo.Point, parking []*model.RouteMarker) DayResult {
	loads := AssignVisits(day.Visits, parking)
	active := ActiveLoads(loads)

	if len(active) == 0 {
		return DayResult{
			Date:          day.Date,
			CartDistFeet:  geo.InchesToFeet(start.DistanceTo(stop)),
			TotalDistFeet: geo.InchesToFeet(start.DistanceTo(stop)),
			Picks:         day.Picks,
		}
	}

	sequenced := SequenceSpots(active, start)

	cartDist := start.DistanceTo(spotPoint(sequenced[0]))
	for i := 1; i < len(sequenced); i++ {
		cartDist += spotPoint(sequenced[i-1]).DistanceTo(spotPoint(sequenced[i]))
	}
	cartDist += spotPoint(sequenced[len(sequenced)-1]).DistanceTo(stop)

	pedestrianDist := 0.0
	for _, l := range sequenced {
		pedestrianDist += l.PedestrianDist
	}

	return DayResult{
		Date:               day.Date,
		CartDistFeet:       geo.InchesToFeet(cartDist),
		PedestrianDistFeet: geo.InchesToFeet(pedestrianDist),
		TotalDistFeet:      geo.InchesToFeet(cartDist + pedestrianDist),
		VisitCount:         len(day.Visits),
		Picks:              day.Picks,
		ActiveSpots:        len(sequenced),
	}
}

// splitMarkers 按类型拆分标记
// 起点/终点每布局最多一个，多余的忽略（取第一个）；
// 停靠点保持输入顺序
func splitMarkers(markers []*model.RouteMarker) (start, stop *model.RouteMarker, parking []*model.RouteMarker) {
	for _, m := range markers {
		switch m.Type {
		case model.MarkerStartPoint:
			if start == nil {
				start = m
			}
		case model.MarkerStopPoint:
			if stop == nil {
				stop = m
			}
		case model.MarkerCartParking:
			parking = append(parking, m)
		}
	}
	return start, stop, parking
}

// describeMissing 描述缺失的标记类别
func describeMissing(m MissingMarkers) string {
	var parts []string
	if m.StartPoint {
		parts = append(parts, "起点")
	}
	if m.StopPoint {
		parts = append(parts, "终点")
	}
	if m.CartParking {
		parts = append(parts, "拣货车停靠点")
	}
	return strings.Join(parts, "、")
}

// spotPoint 返回停靠点坐标
func spotPoint(l SpotLoad) geo.Point {
	return geo.Point{X: l.Marker.X, Y: l.Marker.Y}
}
