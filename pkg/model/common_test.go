package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestDateRange_Contains(t *testing.T) {
	tests := []struct {
		name     string
		dr       DateRange
		date     string
		expected bool
	}{
		{
			name:     "范围内",
			dr:       DateRange{StartDate: "2026-01-01", EndDate: "2026-01-31"},
			date:     "2026-01-15",
			expected: true,
		},
		{
			name:     "边界日期",
			dr:       DateRange{StartDate: "2026-01-01", EndDate: "2026-01-31"},
			date:     "2026-01-31",
			expected: true,
		},
		{
			name:     "范围之前",
			dr:       DateRange{StartDate: "2026-01-01", EndDate: "2026-01-31"},
			date:     "2025-12-31",
			expected: false,
		},
		{
			name:     "范围之后",
			dr:       DateRange{StartDate: "2026-01-01", EndDate: "2026-01-31"},
			date:     "2026-02-01",
			expected: false,
		},
		{
			name:     "空范围包含一切",
			dr:       DateRange{},
			date:     "2026-06-15",
			expected: true,
		},
		{
			name:     "只有起始边界",
			dr:       DateRange{StartDate: "2026-01-01"},
			date:     "2030-01-01",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dr.Contains(tt.date); got != tt.expected {
				t.Errorf("Contains(%q) = %v, expected %v", tt.date, got, tt.expected)
			}
		})
	}
}

func TestDateRange_Days(t *testing.T) {
	tests := []struct {
		name     string
		dr       DateRange
		expected int
	}{
		{
			name:     "单日",
			dr:       DateRange{StartDate: "2026-01-15", EndDate: "2026-01-15"},
			expected: 1,
		},
		{
			name:     "一周",
			dr:       DateRange{StartDate: "2026-01-01", EndDate: "2026-01-07"},
			expected: 7,
		},
		{
			name:     "跨月",
			dr:       DateRange{StartDate: "2026-01-25", EndDate: "2026-02-05"},
			expected: 12,
		},
		{
			name:     "开放范围",
			dr:       DateRange{StartDate: "2026-01-01"},
			expected: 0,
		},
		{
			name:     "起止颠倒",
			dr:       DateRange{StartDate: "2026-02-01", EndDate: "2026-01-01"},
			expected: 0,
		},
		{
			name:     "非法日期",
			dr:       DateRange{StartDate: "not-a-date", EndDate: "2026-01-01"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dr.Days(); got != tt.expected {
				t.Errorf("Days() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestValidDate(t *testing.T) {
	valid := []string{"2026-01-01", "2025-12-31", "2026-02-28"}
	invalid := []string{"", "2026-13-01", "2026-01-32", "01/15/2026", "2026-1-1"}

	for _, d := range valid {
		if !ValidDate(d) {
			t.Errorf("ValidDate(%q) = false, expected true", d)
		}
	}
	for _, d := range invalid {
		if ValidDate(d) {
			t.Errorf("ValidDate(%q) = true, expected false", d)
		}
	}
}

func TestNewBaseModel(t *testing.T) {
	base := NewBaseModel()

	if base.ID == uuid.Nil {
		t.Error("ID should not be nil")
	}
	if base.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
	if base.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should not be zero")
	}
}
