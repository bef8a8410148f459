package labor

import (
	"math"
	"sort"

	"github.com/zoudao/zoudao/pkg/geo"
	"github.com/zoudao/zoudao/pkg/model"
)

// 重储位候选的百分位门槛（在观测总体上计算，非固定常量截断）
const (
	DefaultHotPercentile = 0.20 // 高频：日拣货量前20%
	DefaultFarPercentile = 0.50 // 偏远：距离前50%
)

// ROIState 步行负载状态（当前或重储位后的预期）
type ROIState struct {
	DailyWalkFeet  float64 `json:"daily_walk_feet"`
	DailyWalkHours float64 `json:"daily_walk_hours"`
	DailyLaborCost float64 `json:"daily_labor_cost"`
}

// ROISavings 节省估算
type ROISavings struct {
	DailyFeet      float64 `json:"daily_feet"`
	DailyDollars   float64 `json:"daily_dollars"`
	WeeklyDollars  float64 `json:"weekly_dollars"`
	MonthlyDollars float64 `json:"monthly_dollars"`
	AnnualDollars  float64 `json:"annual_dollars"`
}

// ROIImplementation 实施成本估算
type ROIImplementation struct {
	ItemsToReslot  int     `json:"items_to_reslot"`
	EstimatedHours float64 `json:"estimated_hours"`
	EstimatedCost  float64 `json:"estimated_cost"`
	PaybackDays    int     `json:"payback_days"`
}

// Recommendation 单条重储位建议
type Recommendation struct {
	ItemID               string  `json:"item_id"`
	Name                 string  `json:"name,omitempty"`
	DailyPicks           float64 `json:"daily_picks"`
	CurrentDistanceFeet  float64 `json:"current_distance_feet"`
	ProposedDistanceFeet float64 `json:"proposed_distance_feet"`
	DailySavingsFeet     float64 `json:"daily_savings_feet"`
	Priority             float64 `json:"priority"`
	Rank                 int     `json:"rank"`
}

// ROIResult 重储位ROI分析结果
type ROIResult struct {
	CurrentState    ROIState          `json:"current_state"`
	ProjectedState  ROIState          `json:"projected_state"`
	Savings         ROISavings        `json:"savings"`
	Implementation  ROIImplementation `json:"implementation"`
	Recommendations []Recommendation  `json:"recommendations"`
	Message         string            `json:"message,omitempty"`
}

// CalculateROI 识别存放偏远的高频货品并估算重储位收益
// 参考点取第一个拣货车停靠点，没有停靠点时退而取起点。
// "高频"为日拣货量前 hotPercentile，"偏远"为距离前 farPercentile，
// 两个门槛都在观测总体上计算。门槛参数 <= 0 时使用默认值
func CalculateROI(
	items []model.ItemAggregate,
	markers []*model.RouteMarker,
	std ResolvedStandards,
	hotPercentile, farPercentile float64,
) *ROIResult {
	if hotPercentile <= 0 {
		hotPercentile = DefaultHotPercentile
	}
	if farPercentile <= 0 {
		farPercentile = DefaultFarPercentile
	}

	ref, ok := referencePoint(markers)
	if !ok {
		return &ROIResult{Message: "布局缺少拣货车停靠点和起点，无法进行重储位分析"}
	}
	if len(items) == 0 {
		return &ROIResult{Message: "没有货品拣货汇总数据"}
	}

	type itemStat struct {
		item       model.ItemAggregate
		distFeet   float64 // 单程距离（英尺）
		dailyPicks float64
	}

	stats := make([]itemStat, 0, len(items))
	minDistFeet := math.MaxFloat64
	for _, it := range items {
		distFeet := geo.InchesToFeet(ref.DistanceTo(geo.Point{X: it.X, Y: it.Y}))
		days := it.Days
		if days <= 0 {
			days = 1
		}
		stats = append(stats, itemStat{
			item:       it,
			distFeet:   distFeet,
			dailyPicks: float64(it.TotalPicks) / float64(days),
		})
		if distFeet < minDistFeet {
			minDistFeet = distFeet
		}
	}

	// 当前状态：所有货品的日往返步行量
	result := &ROIResult{}
	for _, s := range stats {
		result.CurrentState.DailyWalkFeet += 2 * s.distFeet * s.dailyPicks
	}

	// 百分位门槛
	picksValues := make([]float64, len(stats))
	distValues := make([]float64, len(stats))
	for i, s := range stats {
		picksValues[i] = s.dailyPicks
		distValues[i] = s.distFeet
	}
	hotThreshold := topThreshold(picksValues, hotPercentile)
	farThreshold := topThreshold(distValues, farPercentile)

	// 候选：既高频又偏远
	for _, s := range stats {
		if s.dailyPicks < hotThreshold || s.distFeet < farThreshold {
			continue
		}
		savingsFeet := (s.distFeet - minDistFeet) * 2 * s.dailyPicks
		if savingsFeet <= 0 {
			continue
		}
		result.Recommendations = append(result.Recommendations, Recommendation{
			ItemID:               s.item.ItemID,
			Name:                 s.item.Name,
			DailyPicks:           s.dailyPicks,
			CurrentDistanceFeet:  s.distFeet,
			ProposedDistanceFeet: minDistFeet,
			DailySavingsFeet:     savingsFeet,
			Priority:             savingsFeet * s.dailyPicks,
		})
		result.Savings.DailyFeet += savingsFeet
	}

	sort.SliceStable(result.Recommendations, func(i, j int) bool {
		return result.Recommendations[i].Priority > result.Recommendations[j].Priority
	})
	for i := range result.Recommendations {
		result.Recommendations[i].Rank = i + 1
	}

	// 距离→时间→成本换算
	result.CurrentState.DailyWalkHours = feetToHours(result.CurrentState.DailyWalkFeet, std)
	result.CurrentState.DailyLaborCost = result.CurrentState.DailyWalkHours * std.FullyLoadedRate()

	result.ProjectedState.DailyWalkFeet = result.CurrentState.DailyWalkFeet - result.Savings.DailyFeet
	result.ProjectedState.DailyWalkHours = feetToHours(result.ProjectedState.DailyWalkFeet, std)
	result.ProjectedState.DailyLaborCost = result.ProjectedState.DailyWalkHours * std.FullyLoadedRate()

	result.Savings.DailyDollars = feetToHours(result.Savings.DailyFeet, std) * std.FullyLoadedRate()
	result.Savings.WeeklyDollars = result.Savings.DailyDollars * 7
	result.Savings.MonthlyDollars = result.Savings.DailyDollars * 30
	result.Savings.AnnualDollars = result.Savings.DailyDollars * 365

	// 实施成本与回本周期
	itemsToReslot := len(result.Recommendations)
	implHours := float64(itemsToReslot) * std.ReslotTimeMinutes / 60
	implCost := implHours * std.FullyLoadedRate()
	result.Implementation = ROIImplementation{
		ItemsToReslot:  itemsToReslot,
		EstimatedHours: implHours,
		EstimatedCost:  implCost,
		PaybackDays:    paybackDays(implCost, result.Savings.DailyDollars),
	}

	return result
}

// referencePoint 返回重储位分析的参考点
// 第一个拣货车停靠点优先，其次起点
func referencePoint(markers []*model.RouteMarker) (geo.Point, bool) {
	var start *model.RouteMarker
	for _, m := range markers {
		switch m.Type {
		case model.MarkerCartParking:
			return geo.Point{X: m.X, Y: m.Y}, true
		case model.MarkerStartPoint:
			if start == nil {
				start = m
			}
		}
	}
	if start != nil {
		return geo.Point{X: start.X, Y: start.Y}, true
	}
	return geo.Point{}, false
}

// topThreshold 返回进入前 fraction 所需的最小值
// 在观测总体上计算：排序后取 (1-fraction) 分位处的值
func topThreshold(values []float64, fraction float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(math.Ceil(float64(len(sorted)) * (1 - fraction)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// feetToHours 将步行英尺换算为小时
func feetToHours(feet float64, std ResolvedStandards) float64 {
	if std.WalkSpeedFpm <= 0 {
		return 0
	}
	return feet / std.WalkSpeedFpm / 60
}

// paybackDays 计算回本天数
// 无节省时回本周期记为0，不返回无穷大
func paybackDays(implementationCost, dailySavingsDollars float64) int {
	if dailySavingsDollars <= 0 {
		return 0
	}
	return int(math.Ceil(implementationCost / dailySavingsDollars))
}
