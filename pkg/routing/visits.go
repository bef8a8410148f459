// Package routing 提供步行距离计算引擎
package routing

import (
	"sort"

	"github.com/zoudao/zoudao/pkg/model"
)

// DayVisits 单日的到访集合
type DayVisits struct {
	Date   string
	Visits []model.PickVisit
	Picks  int // 当日原始拣货行数合计（含重复货位）
}

// DeduplicateVisits 将原始拣货记录折叠为每日到访
// 批量拣货假设：拣货员每班次对每个货位只到访一次，
// 同一天引用同一货位的多行折叠为一条到访，坐标以首次出现为准
// 返回按日期升序排列的每日到访集合
func DeduplicateVisits(rows []model.PickRow, dateRange model.DateRange) []DayVisits {
	byDate := make(map[string]*DayVisits)
	seen := make(map[string]map[string]bool) // date -> location_id
	var dates []string

	for _, row := range rows {
		if !dateRange.IsZero() && !dateRange.Contains(row.Date) {
			continue
		}

		day, exists := byDate[row.Date]
		if !exists {
			day = &DayVisits{Date: row.Date}
			byDate[row.Date] = day
			seen[row.Date] = make(map[string]bool)
			dates = append(dates, row.Date)
		}
		// 缺失件数的记录按单件拣货计
		picks := row.PickCount
		if picks <= 0 {
			picks = 1
		}
		day.Picks += picks

		if seen[row.Date][row.LocationID] {
			continue
		}
		seen[row.Date][row.LocationID] = true

		day.Visits = append(day.Visits, model.PickVisit{
			LocationID: row.LocationID,
			X:          row.X,
			Y:          row.Y,
			Date:       row.Date,
		})
	}

	sort.Strings(dates)

	result := make([]DayVisits, 0, len(dates))
	for _, d := range dates {
		result = append(result, *byDate[d])
	}
	return result
}
