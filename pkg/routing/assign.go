package routing

import (
	"github.com/zoudao/zoudao/pkg/geo"
	"github.com/zoudao/zoudao/pkg/model"
)

// SpotLoad 单个停靠点当日的分配结果
type SpotLoad struct {
	Marker         *model.RouteMarker
	VisitCount     int
	PedestrianDist float64 // 往返步行距离合计（英寸）
}

// AssignVisits 将每条到访分配给最近的拣货车停靠点
// 距离相同时取输入顺序中靠前的停靠点（确定性，不随机）
// 每个停靠点累计其所有到访的往返步行距离（2×单程）
// 返回与 parking 同序的分配结果
func AssignVisits(visits []model.PickVisit, parking []*model.RouteMarker) []SpotLoad {
	loads := make([]SpotLoad, len(parking))
	for i, p := range parking {
		loads[i] = SpotLoad{Marker: p}
	}
	if len(parking) == 0 {
		return loads
	}

	for _, v := range visits {
		visitPoint := geo.Point{X: v.X, Y: v.Y}

		bestIdx := 0
		bestDist := visitPoint.DistanceTo(geo.Point{X: parking[0].X, Y: parking[0].Y})
		for i := 1; i < len(parking); i++ {
			d := visitPoint.DistanceTo(geo.Point{X: parking[i].X, Y: parking[i].Y})
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}

		loads[bestIdx].VisitCount++
		loads[bestIdx].PedestrianDist += 2 * bestDist
	}

	return loads
}

// ActiveLoads 过滤出至少有一条到访的停靠点
func ActiveLoads(loads []SpotLoad) []SpotLoad {
	var active []SpotLoad
	for _, l := range loads {
		if l.VisitCount > 0 {
			active = append(active, l)
		}
	}
	return active
}
