package components

// TargetComponent 可点击的肉丸目标
// Radius 在生成时确定，之后不再改变（始终 > 0）
type TargetComponent struct {
	Radius float64
}

// SpinComponent 纯视觉的旋转状态
type SpinComponent struct {
	Angle float64 // 当前角度（弧度）
	Speed float64 // 角速度（弧度/秒）
}
