package model

import (
	"math"

	"github.com/google/uuid"
)

// MarkerType 路线标记类型
type MarkerType string

const (
	MarkerStartPoint  MarkerType = "start_point"  // 起点（每个布局最多一个）
	MarkerStopPoint   MarkerType = "stop_point"   // 终点（每个布局最多一个）
	MarkerCartParking MarkerType = "cart_parking" // 拣货车停靠点
)

// Valid 检查标记类型是否合法
func (t MarkerType) Valid() bool {
	switch t {
	case MarkerStartPoint, MarkerStopPoint, MarkerCartParking:
		return true
	}
	return false
}

// RouteMarker 布局上的路线标记
// 坐标单位为英寸（1坐标单位=1英寸），由布局编辑器写入，本引擎只读
type RouteMarker struct {
	BaseModel
	LayoutID      uuid.UUID  `json:"layout_id" db:"layout_id"`
	Type          MarkerType `json:"type" db:"type"`
	X             float64    `json:"x" db:"x"`
	Y             float64    `json:"y" db:"y"`
	Label         string     `json:"label" db:"label"`
	SequenceOrder *int       `json:"sequence_order,omitempty" db:"sequence_order"`
}

// HasFiniteCoords 检查坐标是否为有限数值
func (m *RouteMarker) HasFiniteCoords() bool {
	return !math.IsNaN(m.X) && !math.IsInf(m.X, 0) &&
		!math.IsNaN(m.Y) && !math.IsInf(m.Y, 0)
}

// PickRow 原始拣货记录（来自持久化协作方）
type PickRow struct {
	LocationID string  `json:"location_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Date       string  `json:"date"` // YYYY-MM-DD
	PickCount  int     `json:"pick_count"`
}

// PickVisit 去重后的到访记录（派生数据，不持久化）
// 同一天对同一货位的多次拣货折叠为一次到访
type PickVisit struct {
	LocationID string  `json:"location_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Date       string  `json:"date"`
}

// ItemAggregate 货品级拣货汇总（用于重储位ROI分析）
type ItemAggregate struct {
	ItemID     string  `json:"item_id"`
	Name       string  `json:"name,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	TotalPicks int     `json:"total_picks"`
	Days       int     `json:"days"` // 汇总覆盖的天数
}
