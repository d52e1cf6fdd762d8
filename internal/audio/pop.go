// Package audio 合成点爆音效
//
// 远程音效没有加载完成（或加载失败）时使用这里合成的短促"啵"声：
// 一段极短的噪声点击叠加一段快速下滑的正弦音，再整体做指数衰减。
// 生成结果是 16 位小端立体声 PCM，可以直接交给 ebiten 的 audio.Context 播放。
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// PopConfig 点爆音效参数
type PopConfig struct {
	SampleRate    int           // 采样率，需与播放端一致
	Duration      time.Duration // 总时长
	ClickDuration time.Duration // 开头噪声点击的时长
	StartFreq     float64       // 下滑音起始频率（Hz）
	EndFreq       float64       // 下滑音结束频率（Hz）
	Decay         float64       // 衰减速度，越大越短促
	Volume        float64       // 线性音量 0.0 ~ 1.0
	Seed          int64         // 噪声随机种子，固定种子得到相同波形
}

// DefaultPopConfig 返回默认的点爆音效参数
func DefaultPopConfig(sampleRate int) PopConfig {
	return PopConfig{
		SampleRate:    sampleRate,
		Duration:      120 * time.Millisecond,
		ClickDuration: 8 * time.Millisecond,
		StartFreq:     900,
		EndFreq:       260,
		Decay:         38,
		Volume:        0.6,
		Seed:          1,
	}
}

// NewPopStreamer 按参数构造点爆音效的 beep.Streamer
// 返回的 streamer 恰好输出 Duration 对应的采样数
func NewPopStreamer(cfg PopConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	total := rate.N(cfg.Duration)

	click := newNoise(rate.N(cfg.ClickDuration), cfg.Seed)
	sweep := newSweep(rate, total, cfg.StartFreq, cfg.EndFreq)

	mixed := beep.Mix(
		newVolume(click, 0.35),
		newVolume(sweep, 0.8),
	)
	shaped := newDecay(beep.Take(total, mixed), rate, cfg.Decay)

	return newVolume(shaped, cfg.Volume)
}

// RenderPop 以默认参数生成点爆音效 PCM
func RenderPop(sampleRate int) []byte {
	return RenderPCM(NewPopStreamer(DefaultPopConfig(sampleRate)))
}

// newNoise 白噪声，输出 n 个采样后结束
func newNoise(n int, seed int64) beep.Streamer {
	rng := rand.New(rand.NewSource(seed))
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			v := rng.Float64()*2 - 1
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return i, true
	})
}

// newSweep 频率从 from 按指数曲线滑到 to 的正弦音
func newSweep(rate beep.SampleRate, n int, from, to float64) beep.Streamer {
	phase := 0.0
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && pos < n; i++ {
			progress := float64(pos) / float64(n)
			freq := from * math.Pow(to/from, progress)
			v := math.Sin(2 * math.Pi * phase)
			samples[i][0] = v
			samples[i][1] = v

			phase += freq / float64(rate)
			phase -= math.Floor(phase)
			pos++
		}
		return i, true
	})
}

// decay 指数衰减包络
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	k        float64
	pos      int
}

func newDecay(s beep.Streamer, rate beep.SampleRate, k float64) beep.Streamer {
	return &decay{streamer: s, rate: rate, k: k}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		t := float64(d.pos) / float64(d.rate)
		gain := math.Exp(-d.k * t)
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume 线性音量转换为 effects.Volume
// math.Log2(0) 为 -Inf，音量为 0 时直接静音
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
