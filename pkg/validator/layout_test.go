package validator

import (
	"math"
	"testing"

	"github.com/zoudao/zoudao/pkg/model"
)

func marker(t model.MarkerType, x, y float64) *model.RouteMarker {
	return &model.RouteMarker{Type: t, X: x, Y: y}
}

func sequencedMarker(t model.MarkerType, x, y float64, seq int) *model.RouteMarker {
	m := marker(t, x, y)
	m.SequenceOrder = &seq
	return m
}

func hasIssue(issues Issues, it IssueType) bool {
	for _, i := range issues {
		if i.Type == it {
			return true
		}
	}
	return false
}

func TestValidateMarkers(t *testing.T) {
	tests := []struct {
		name       string
		markers    []*model.RouteMarker
		wantErrors bool
		wantTypes  []IssueType
	}{
		{
			name: "完整标记集无问题",
			markers: []*model.RouteMarker{
				marker(model.MarkerStartPoint, 0, 0),
				marker(model.MarkerStopPoint, 100, 0),
				marker(model.MarkerCartParking, 50, 50),
			},
			wantErrors: false,
			wantTypes:  nil,
		},
		{
			name: "缺少停靠点为警告",
			markers: []*model.RouteMarker{
				marker(model.MarkerStartPoint, 0, 0),
				marker(model.MarkerStopPoint, 100, 0),
			},
			wantErrors: false,
			wantTypes:  []IssueType{IssueNoCartParking},
		},
		{
			name:       "全部缺失为三条警告",
			markers:    nil,
			wantErrors: false,
			wantTypes:  []IssueType{IssueNoStartPoint, IssueNoStopPoint, IssueNoCartParking},
		},
		{
			name: "多个起点为警告",
			markers: []*model.RouteMarker{
				marker(model.MarkerStartPoint, 0, 0),
				marker(model.MarkerStartPoint, 10, 0),
				marker(model.MarkerStopPoint, 100, 0),
				marker(model.MarkerCartParking, 50, 50),
			},
			wantErrors: false,
			wantTypes:  []IssueType{IssueExtraStartPoint},
		},
		{
			name: "NaN坐标为错误",
			markers: []*model.RouteMarker{
				marker(model.MarkerStartPoint, math.NaN(), 0),
				marker(model.MarkerStopPoint, 100, 0),
				marker(model.MarkerCartParking, 50, 50),
			},
			wantErrors: true,
			wantTypes:  []IssueType{IssueNonFiniteCoords},
		},
		{
			name: "未知类型为错误",
			markers: []*model.RouteMarker{
				marker(model.MarkerType("teleporter"), 0, 0),
				marker(model.MarkerStartPoint, 0, 0),
				marker(model.MarkerStopPoint, 100, 0),
				marker(model.MarkerCartParking, 50, 50),
			},
			wantErrors: true,
			wantTypes:  []IssueType{IssueUnknownMarkerType},
		},
		{
			name: "顺序号重复为警告",
			markers: []*model.RouteMarker{
				marker(model.MarkerStartPoint, 0, 0),
				marker(model.MarkerStopPoint, 100, 0),
				sequencedMarker(model.MarkerCartParking, 50, 50, 1),
				sequencedMarker(model.MarkerCartParking, 60, 50, 1),
			},
			wantErrors: false,
			wantTypes:  []IssueType{IssueDuplicateSequence},
		},
		{
			name: "部分顺序号为警告",
			markers: []*model.RouteMarker{
				marker(model.MarkerStartPoint, 0, 0),
				marker(model.MarkerStopPoint, 100, 0),
				sequencedMarker(model.MarkerCartParking, 50, 50, 1),
				marker(model.MarkerCartParking, 60, 50),
			},
			wantErrors: false,
			wantTypes:  []IssueType{IssuePartialSequence},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := ValidateMarkers(tt.markers)

			if got := issues.HasErrors(); got != tt.wantErrors {
				t.Errorf("HasErrors() = %v, expected %v（issues: %+v）", got, tt.wantErrors, issues)
			}
			for _, it := range tt.wantTypes {
				if !hasIssue(issues, it) {
					t.Errorf("期望出现问题 %s，实际: %+v", it, issues)
				}
			}
		})
	}
}

func TestValidatePicks(t *testing.T) {
	picks := []model.PickRow{
		{LocationID: "A-01", X: 10, Y: 20, Date: "2026-03-01", PickCount: 3},
		{LocationID: "", X: 10, Y: 20, Date: "2026-03-01"},
		{LocationID: "A-02", X: math.Inf(1), Y: 20, Date: "2026-03-01"},
		{LocationID: "A-03", X: 10, Y: 20, Date: "03/01/2026"},
	}

	issues := ValidatePicks(picks)

	if !issues.HasErrors() {
		t.Fatal("期望存在错误级问题")
	}
	if !hasIssue(issues, IssueEmptyLocation) {
		t.Error("期望检出空库位ID")
	}
	if !hasIssue(issues, IssueNonFiniteCoords) {
		t.Error("期望检出非有限坐标")
	}
	if !hasIssue(issues, IssueInvalidDate) {
		t.Error("期望检出无效日期")
	}

	if got := len(issues.Errors()); got != 3 {
		t.Errorf("错误数 = %d, expected 3", got)
	}
}

func TestValidatePicksClean(t *testing.T) {
	picks := []model.PickRow{
		{LocationID: "A-01", X: 10, Y: 20, Date: "2026-03-01", PickCount: 3},
		{LocationID: "A-02", X: 30, Y: 40, Date: "", PickCount: 1},
	}

	if issues := ValidatePicks(picks); len(issues) != 0 {
		t.Errorf("合法记录不应产生问题: %+v", issues)
	}
}
