package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// 失败后的关卡策略
const (
	LossPolicyRetry   = "retry"   // 重玩当前关卡
	LossPolicyRestart = "restart" // 回到 RestartLevel
)

// GameRules 游戏规则配置（data/rules.yaml）
// 关卡难度曲线、终关阈值、重开策略等都由这里配置，不在代码里写死
type GameRules struct {
	Levels       LevelCurve  `yaml:"levels"`       // 关卡难度曲线
	Spawn        SpawnConfig `yaml:"spawn"`        // 目标生成参数
	Frame        FrameConfig `yaml:"frame"`        // 帧步进参数
	PopFlash     FlashConfig `yaml:"popFlash"`     // 点爆闪光
	FinalLevel   int         `yaml:"finalLevel"`   // 终关（通关后显示优惠码）
	RestartLevel int         `yaml:"restartLevel"` // 通关后（或 restart 策略失败后）回到的关卡
	LossPolicy   string      `yaml:"lossPolicy"`   // "retry" 或 "restart"
	PromoCode    string      `yaml:"promoCode"`    // 通关优惠码
}

// LevelCurve 关卡难度曲线系数
//
//	count = BaseCount + (n-1)*CountStep
//	sizeMax = max(SizeMin, SizeMax - (n-1)*SizeShrink)
//	speed = BaseSpeed + (n-1)*SpeedStep
type LevelCurve struct {
	Duration   int     `yaml:"duration"`   // 每关时长（秒）
	BaseCount  int     `yaml:"baseCount"`  // 第1关目标数量
	CountStep  int     `yaml:"countStep"`  // 每关增加的目标数量
	SizeMin    float64 `yaml:"sizeMin"`    // 最小半径
	SizeMax    float64 `yaml:"sizeMax"`    // 第1关最大半径
	SizeShrink float64 `yaml:"sizeShrink"` // 每关最大半径缩小量
	BaseSpeed  float64 `yaml:"baseSpeed"`  // 第1关上浮速度（像素/秒）
	SpeedStep  float64 `yaml:"speedStep"`  // 每关增加的上浮速度
}

// SpawnConfig 目标生成的随机范围
type SpawnConfig struct {
	HorizontalSpeed float64 `yaml:"horizontalSpeed"` // vx ∈ [-h, h]
	SpeedJitterMin  float64 `yaml:"speedJitterMin"`  // vy 抖动下限
	SpeedJitterMax  float64 `yaml:"speedJitterMax"`  // vy 抖动上限
	SpinMax         float64 `yaml:"spinMax"`         // 角速度 ∈ [-s, s]
	TopFraction     float64 `yaml:"topFraction"`     // 生成区域上边界占画布高度的比例
}

// FrameConfig 帧步进参数
type FrameConfig struct {
	MaxStep     float64 `yaml:"maxStep"`     // 单帧最大 Δt（秒），防止切后台后跳帧
	DriftMargin float64 `yaml:"driftMargin"` // 目标顶边超出画布上方多少像素后移除
}

// FlashConfig 点爆闪光参数
type FlashConfig struct {
	Life        float64 `yaml:"life"`        // 持续时间（秒）
	StartRadius float64 `yaml:"startRadius"` // 初始半径
	GrowRadius  float64 `yaml:"growRadius"`  // 生命周期内增长的半径
}

// LevelConfig 单个关卡的配置（由关卡号推导，不单独存储）
type LevelConfig struct {
	Level    int
	Duration int     // 时长（秒）
	Count    int     // 目标数量
	SizeMin  float64 // 半径下限
	SizeMax  float64 // 半径上限
	Speed    float64 // 上浮基础速度
}

// DefaultGameRules 返回默认规则（与 data/rules.yaml 一致）
func DefaultGameRules() *GameRules {
	return &GameRules{
		Levels: LevelCurve{
			Duration:   20,
			BaseCount:  6,
			CountStep:  2,
			SizeMin:    36,
			SizeMax:    56,
			SizeShrink: 2,
			BaseSpeed:  60,
			SpeedStep:  8,
		},
		Spawn: SpawnConfig{
			HorizontalSpeed: 20,
			SpeedJitterMin:  -10,
			SpeedJitterMax:  20,
			SpinMax:         0.8,
			TopFraction:     0.25,
		},
		Frame: FrameConfig{
			MaxStep:     1.0 / 30.0,
			DriftMargin: 10,
		},
		PopFlash: FlashConfig{
			Life:        0.22,
			StartRadius: 10,
			GrowRadius:  40,
		},
		FinalLevel:   10,
		RestartLevel: 1,
		LossPolicy:   LossPolicyRetry,
		PromoCode:    "BallGameWinner",
	}
}

// LoadGameRules 从YAML文件加载游戏规则
func LoadGameRules(filepath string) (*GameRules, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", filepath, err)
	}

	rules, err := ParseGameRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return rules, nil
}

// ParseGameRules 解析规则 YAML
// 在默认规则上解码，文件里没写的字段保持默认值，显式写出的 0 也会生效
func ParseGameRules(data []byte) (*GameRules, error) {
	rules := DefaultGameRules()
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
	}

	if err := validateGameRules(rules); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	return rules, nil
}

// validateGameRules 验证规则的合法性
func validateGameRules(rules *GameRules) error {
	curve := rules.Levels
	if curve.Duration < 1 {
		return fmt.Errorf("levels.duration must be >= 1, got %d", curve.Duration)
	}
	if curve.BaseCount < 1 {
		return fmt.Errorf("levels.baseCount must be >= 1, got %d", curve.BaseCount)
	}
	if curve.CountStep < 0 {
		return fmt.Errorf("levels.countStep cannot be negative, got %d", curve.CountStep)
	}
	if curve.SizeMin <= 0 {
		return fmt.Errorf("levels.sizeMin must be > 0, got %g", curve.SizeMin)
	}
	if curve.SizeMax < curve.SizeMin {
		return fmt.Errorf("levels.sizeMax (%g) must be >= sizeMin (%g)", curve.SizeMax, curve.SizeMin)
	}
	if curve.BaseSpeed <= 0 {
		return fmt.Errorf("levels.baseSpeed must be > 0, got %g", curve.BaseSpeed)
	}

	spawn := rules.Spawn
	if spawn.HorizontalSpeed < 0 {
		return fmt.Errorf("spawn.horizontalSpeed cannot be negative, got %g", spawn.HorizontalSpeed)
	}
	if spawn.SpeedJitterMax < spawn.SpeedJitterMin {
		return fmt.Errorf("spawn.speedJitterMax (%g) must be >= speedJitterMin (%g)", spawn.SpeedJitterMax, spawn.SpeedJitterMin)
	}
	if spawn.TopFraction < 0 || spawn.TopFraction >= 1 {
		return fmt.Errorf("spawn.topFraction must be in [0, 1), got %g", spawn.TopFraction)
	}

	if rules.Frame.MaxStep <= 0 {
		return fmt.Errorf("frame.maxStep must be > 0, got %g", rules.Frame.MaxStep)
	}
	if rules.PopFlash.Life <= 0 {
		return fmt.Errorf("popFlash.life must be > 0, got %g", rules.PopFlash.Life)
	}

	if rules.FinalLevel < 1 {
		return fmt.Errorf("finalLevel must be >= 1, got %d", rules.FinalLevel)
	}
	if rules.RestartLevel < 1 || rules.RestartLevel > rules.FinalLevel {
		return fmt.Errorf("restartLevel must be in [1, %d], got %d", rules.FinalLevel, rules.RestartLevel)
	}

	validPolicies := map[string]bool{
		LossPolicyRetry:   true,
		LossPolicyRestart: true,
	}
	if !validPolicies[rules.LossPolicy] {
		return fmt.Errorf("lossPolicy must be one of: retry, restart, got %q", rules.LossPolicy)
	}

	return nil
}

// ForLevel 计算指定关卡的配置（纯函数）
// 关卡号小于1时按第1关处理
func (r *GameRules) ForLevel(n int) LevelConfig {
	if n < 1 {
		n = 1
	}
	step := n - 1
	curve := r.Levels

	return LevelConfig{
		Level:    n,
		Duration: curve.Duration,
		Count:    curve.BaseCount + step*curve.CountStep,
		SizeMin:  curve.SizeMin,
		SizeMax:  math.Max(curve.SizeMin, curve.SizeMax-float64(step)*curve.SizeShrink),
		Speed:    curve.BaseSpeed + float64(step)*curve.SpeedStep,
	}
}

// Outcome 计算关卡结束后的下一关以及提示文本
//
// 规则：
//   - 通关且为终关：显示优惠码，回到 RestartLevel
//   - 通关：进入下一关
//   - 失败：按 LossPolicy 重玩当前关或回到 RestartLevel
func (r *GameRules) Outcome(level int, won bool) (next int, message string) {
	if won {
		if level >= r.FinalLevel {
			return r.RestartLevel, fmt.Sprintf("Congratulations! You win!\nPromo Code: %s", r.PromoCode)
		}
		return level + 1, fmt.Sprintf("Level %d complete! Starting Level %d", level, level+1)
	}

	if r.LossPolicy == LossPolicyRestart {
		return r.RestartLevel, fmt.Sprintf("Level %d — Back to Level %d", level, r.RestartLevel)
	}
	return level, fmt.Sprintf("Level %d — Try again", level)
}
