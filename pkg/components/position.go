package components

// PositionComponent 实体在画布上的位置（画布像素坐标，圆心）
type PositionComponent struct {
	X float64
	Y float64
}
