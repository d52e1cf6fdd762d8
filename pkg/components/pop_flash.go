package components

// PopFlashComponent 点爆目标时的短暂闪光效果
// 纯装饰，不影响玩法。Age 每帧按经过时间递增，Age >= Life 时移除。
type PopFlashComponent struct {
	Age  float64 // 已存在时间（秒）
	Life float64 // 持续时间（秒）
}

// Progress 返回闪光进度 [0, 1]
func (p *PopFlashComponent) Progress() float64 {
	if p.Life <= 0 {
		return 1
	}
	t := p.Age / p.Life
	if t > 1 {
		return 1
	}
	return t
}

// IsExpired 检查闪光是否已结束
func (p *PopFlashComponent) IsExpired() bool {
	return p.Age >= p.Life
}
