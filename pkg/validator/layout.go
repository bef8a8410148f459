// Package validator 提供布局数据验证功能
package validator

import (
	"fmt"
	"math"

	"github.com/zoudao/zoudao/pkg/model"
)

// IssueType 问题类型
type IssueType string

const (
	IssueNonFiniteCoords   IssueType = "non_finite_coords"  // 坐标非有限数值
	IssueUnknownMarkerType IssueType = "unknown_type"       // 未知标记类型
	IssueNoStartPoint      IssueType = "no_start_point"     // 缺少起点
	IssueNoStopPoint       IssueType = "no_stop_point"      // 缺少终点
	IssueNoCartParking     IssueType = "no_cart_parking"    // 缺少停靠点
	IssueExtraStartPoint   IssueType = "extra_start_point"  // 多余的起点
	IssueExtraStopPoint    IssueType = "extra_stop_point"   // 多余的终点
	IssueDuplicateSequence IssueType = "duplicate_sequence" // 停靠点顺序号重复
	IssuePartialSequence   IssueType = "partial_sequence"   // 停靠点顺序号不完整
	IssueEmptyLocation     IssueType = "empty_location"     // 库位ID为空
	IssueInvalidDate       IssueType = "invalid_date"       // 日期格式无效
)

// 严重级别
const (
	SeverityError   = "error"   // 拒绝保存
	SeverityWarning = "warning" // 允许保存，计算时按规则降级
)

// Issue 单条验证问题
type Issue struct {
	Type     IssueType `json:"type"`
	Severity string    `json:"severity"`
	Message  string    `json:"message"`
	Index    int       `json:"index"` // 出问题的输入下标，-1 表示整体问题
}

// Issues 验证问题集合
type Issues []Issue

// HasErrors 是否存在错误级问题
func (is Issues) HasErrors() bool {
	for _, i := range is {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors 返回错误级问题
func (is Issues) Errors() Issues {
	var out Issues
	for _, i := range is {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// ValidateMarkers 验证标记集合
// 错误级：非有限坐标、未知类型。
// 警告级：类别缺失（引擎会返回零值结果）、多余的起点/终点
// （引擎取第一个）、顺序号重复或不完整（引擎回退贪心排序）
func ValidateMarkers(markers []*model.RouteMarker) Issues {
	var issues Issues

	counts := map[model.MarkerType]int{}
	seqSeen := map[int]bool{}
	parkingTotal, parkingSequenced := 0, 0

	for i, m := range markers {
		if !m.Type.Valid() {
			issues = append(issues, Issue{
				Type:     IssueUnknownMarkerType,
				Severity: SeverityError,
				Message:  fmt.Sprintf("未知的标记类型: %s", m.Type),
				Index:    i,
			})
			continue
		}
		if !m.HasFiniteCoords() {
			issues = append(issues, Issue{
				Type:     IssueNonFiniteCoords,
				Severity: SeverityError,
				Message:  "标记坐标必须是有限数值",
				Index:    i,
			})
		}
		counts[m.Type]++

		if m.Type == model.MarkerCartParking {
			parkingTotal++
			if m.SequenceOrder != nil {
				parkingSequenced++
				if seqSeen[*m.SequenceOrder] {
					issues = append(issues, Issue{
						Type:     IssueDuplicateSequence,
						Severity: SeverityWarning,
						Message:  fmt.Sprintf("停靠点顺序号重复: %d", *m.SequenceOrder),
						Index:    i,
					})
				}
				seqSeen[*m.SequenceOrder] = true
			}
		}
	}

	if counts[model.MarkerStartPoint] == 0 {
		issues = append(issues, Issue{Type: IssueNoStartPoint, Severity: SeverityWarning, Message: "缺少起点标记", Index: -1})
	}
	if counts[model.MarkerStartPoint] > 1 {
		issues = append(issues, Issue{Type: IssueExtraStartPoint, Severity: SeverityWarning, Message: "存在多个起点标记，计算时使用第一个", Index: -1})
	}
	if counts[model.MarkerStopPoint] == 0 {
		issues = append(issues, Issue{Type: IssueNoStopPoint, Severity: SeverityWarning, Message: "缺少终点标记", Index: -1})
	}
	if counts[model.MarkerStopPoint] > 1 {
		issues = append(issues, Issue{Type: IssueExtraStopPoint, Severity: SeverityWarning, Message: "存在多个终点标记，计算时使用第一个", Index: -1})
	}
	if counts[model.MarkerCartParking] == 0 {
		issues = append(issues, Issue{Type: IssueNoCartParking, Severity: SeverityWarning, Message: "缺少拣货车停靠点标记", Index: -1})
	}
	if parkingSequenced > 0 && parkingSequenced < parkingTotal {
		issues = append(issues, Issue{
			Type:     IssuePartialSequence,
			Severity: SeverityWarning,
			Message:  "只有部分停靠点设置了顺序号，计算时回退为就近排序",
			Index:    -1,
		})
	}

	return issues
}

// ValidatePicks 验证拣货记录
// 错误级：库位ID为空、坐标非有限数值、日期格式无效
func ValidatePicks(picks []model.PickRow) Issues {
	var issues Issues

	for i, p := range picks {
		if p.LocationID == "" {
			issues = append(issues, Issue{Type: IssueEmptyLocation, Severity: SeverityError, Message: "库位ID不能为空", Index: i})
		}
		if !finite(p.X) || !finite(p.Y) {
			issues = append(issues, Issue{Type: IssueNonFiniteCoords, Severity: SeverityError, Message: "拣货坐标必须是有限数值", Index: i})
		}
		if p.Date != "" && !model.ValidDate(p.Date) {
			issues = append(issues, Issue{
				Type:     IssueInvalidDate,
				Severity: SeverityError,
				Message:  fmt.Sprintf("日期格式无效，应为YYYY-MM-DD: %s", p.Date),
				Index:    i,
			})
		}
	}

	return issues
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
