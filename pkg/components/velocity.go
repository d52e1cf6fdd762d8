package components

// VelocityComponent 速度组件（像素/秒）
//
// VX 为水平速度，撞墙时取反；VY 为向上漂浮速度，生成后保持不变。
// 注意 VY 为正表示向上移动（画布 Y 轴向下）。
type VelocityComponent struct {
	VX float64
	VY float64
}
