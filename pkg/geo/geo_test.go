package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        Point
		b        Point
		expected float64
	}{
		{"同一位置", Point{X: 50, Y: 10}, Point{X: 50, Y: 10}, 0},
		{"水平移动", Point{X: 0, Y: 0}, Point{X: 50, Y: 0}, 50},
		{"垂直移动", Point{X: 0, Y: 0}, Point{X: 0, Y: 30}, 30},
		{"L形路径", Point{X: 0, Y: 0}, Point{X: 30, Y: 40}, 70},
		{"负坐标", Point{X: -10, Y: -10}, Point{X: 10, Y: 10}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Distance(tt.a, tt.b); result != tt.expected {
				t.Errorf("Distance() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestDistance_Symmetry(t *testing.T) {
	a := Point{X: 3, Y: 17}
	b := Point{X: 42, Y: 5}

	if Distance(a, b) != Distance(b, a) {
		t.Errorf("距离应满足对称性: d(a,b)=%v, d(b,a)=%v", Distance(a, b), Distance(b, a))
	}
	if Distance(a, a) != 0 {
		t.Errorf("d(a,a) 应为0, got %v", Distance(a, a))
	}
}

func TestPoint_IsFinite(t *testing.T) {
	if !(Point{X: 1, Y: 2}).IsFinite() {
		t.Error("有限坐标应返回true")
	}
	if (Point{X: math.NaN(), Y: 0}).IsFinite() {
		t.Error("NaN坐标应返回false")
	}
	if (Point{X: 0, Y: math.Inf(1)}).IsFinite() {
		t.Error("Inf坐标应返回false")
	}
}

func TestInchesToFeet(t *testing.T) {
	if result := InchesToFeet(120); result != 10 {
		t.Errorf("InchesToFeet(120) = %v, expected 10", result)
	}
	if result := InchesToFeet(0); result != 0 {
		t.Errorf("InchesToFeet(0) = %v, expected 0", result)
	}
}
