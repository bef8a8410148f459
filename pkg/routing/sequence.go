package routing

import (
	"sort"

	"github.com/zoudao/zoudao/pkg/geo"
)

// SequenceSpots 将活跃停靠点排成拣货车行进顺序
// 所有活跃停靠点都带显式 sequence_order 时按其升序排列（由用户控制）；
// 否则从起点出发执行贪心最近邻启发式。
// 纯函数：返回新切片，不修改输入
func SequenceSpots(active []SpotLoad, start geo.Point) []SpotLoad {
	if len(active) <= 1 {
		result := make([]SpotLoad, len(active))
		copy(result, active)
		return result
	}

	if allSequenced(active) {
		result := make([]SpotLoad, len(active))
		copy(result, active)
		sort.SliceStable(result, func(i, j int) bool {
			return *result[i].Marker.SequenceOrder < *result[j].Marker.SequenceOrder
		})
		return result
	}

	return greedySequence(active, start)
}

// allSequenced 检查是否所有停靠点都有显式顺序号
func allSequenced(loads []SpotLoad) bool {
	for _, l := range loads {
		if l.Marker.SequenceOrder == nil {
			return false
		}
	}
	return true
}

// greedySequence 贪心最近邻排序
// 这是最短哈密顿路径的启发式近似而非精确解，
// 单布局停靠点数量为个位数到几十个，误差可接受
func greedySequence(active []SpotLoad, start geo.Point) []SpotLoad {
	result := make([]SpotLoad, 0, len(active))
	remaining := make([]SpotLoad, len(active))
	copy(remaining, active)

	current := start

	for len(remaining) > 0 {
		minIdx := 0
		minDist := current.DistanceTo(geo.Point{X: remaining[0].Marker.X, Y: remaining[0].Marker.Y})

		for i := 1; i < len(remaining); i++ {
			d := current.DistanceTo(geo.Point{X: remaining[i].Marker.X, Y: remaining[i].Marker.Y})
			if d < minDist {
				minDist = d
				minIdx = i
			}
		}

		result = append(result, remaining[minIdx])
		current = geo.Point{X: remaining[minIdx].Marker.X, Y: remaining[minIdx].Marker.Y}
		remaining = append(remaining[:minIdx], remaining[minIdx+1:]...)
	}

	return result
}
