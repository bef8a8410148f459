// Package geo 提供仓库平面几何计算
package geo

import "math"

// Point 仓库平面上的一个点（坐标单位：英寸）
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance 计算两点之间的直角距离（曼哈顿距离）
// 仓库过道按正交布局假设，不使用欧氏距离
func Distance(a, b Point) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

// DistanceTo 计算到另一点的直角距离
func (p Point) DistanceTo(other Point) float64 {
	return Distance(p, other)
}

// IsFinite 检查坐标是否为有限数值
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// InchesToFeet 将英寸转换为英尺
// 只在引擎输出边界调用，内部计算一律保持英寸
func InchesToFeet(inches float64) float64 {
	return inches / 12.0
}
