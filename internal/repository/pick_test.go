package repository

import (
	"testing"

	"github.com/zoudao/zoudao/pkg/model"
)

func TestAppendDateBounds(t *testing.T) {
	tests := []struct {
		name      string
		dateRange model.DateRange
		wantQuery string
		wantArgs  int
	}{
		{
			name:      "开放区间不生成子句",
			dateRange: model.DateRange{},
			wantQuery: "WHERE layout_id = $1",
			wantArgs:  1,
		},
		{
			name:      "只有开始日期",
			dateRange: model.DateRange{StartDate: "2026-03-01"},
			wantQuery: "WHERE layout_id = $1 AND pick_date >= $2::date",
			wantArgs:  2,
		},
		{
			name:      "只有结束日期",
			dateRange: model.DateRange{EndDate: "2026-03-31"},
			wantQuery: "WHERE layout_id = $1 AND pick_date <= $2::date",
			wantArgs:  2,
		},
		{
			name:      "完整区间",
			dateRange: model.DateRange{StartDate: "2026-03-01", EndDate: "2026-03-31"},
			wantQuery: "WHERE layout_id = $1 AND pick_date >= $2::date AND pick_date <= $3::date",
			wantArgs:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := appendDateBounds("WHERE layout_id = $1", "pick_date", tt.dateRange, []interface{}{"layout"})

			if query != tt.wantQuery {
				t.Errorf("query = %q, expected %q", query, tt.wantQuery)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("参数个数 = %d, expected %d", len(args), tt.wantArgs)
			}
			if tt.dateRange.StartDate != "" && args[1] != tt.dateRange.StartDate {
				t.Errorf("args[1] = %v, expected %v", args[1], tt.dateRange.StartDate)
			}
		})
	}
}
