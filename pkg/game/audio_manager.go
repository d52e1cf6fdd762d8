package game

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"sync/atomic"

	sfx "github.com/decker502/meatpop/internal/audio"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// DefaultPopSoundURL 默认的远程点爆音效
const DefaultPopSoundURL = "https://actions.google.com/sounds/v1/cartoon/wood_plank_flicks.ogg"

// ErrAudioUnavailable 没有可用的音频上下文
var ErrAudioUnavailable = errors.New("audio context unavailable")

// AudioManager 音频管理器
// 职责：
//   - 播放点爆音效（从 SettingsManager 读取开关和音量）
//   - 异步加载远程/本地音效，加载完成前使用合成音效
//
// 播放失败不影响游戏，由调用方决定是否忽略错误
type AudioManager struct {
	context         *audio.Context   // 可为 nil（终端前端、测试）
	resourceManager *ResourceManager // 用于解码音效
	settingsManager *SettingsManager // 可为 nil，按默认设置处理
	client          *http.Client

	fallback []byte                 // 合成的点爆音效 PCM
	loaded   atomic.Pointer[[]byte] // 加载完成的音效 PCM
	status   atomicStatus
	wg       sync.WaitGroup

	player       *audio.Player // 当前缓存的播放器
	playerLoaded bool          // player 是否基于 loaded 创建
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil
//   - rm: ResourceManager 实例（决定采样率并负责解码）
//   - sm: SettingsManager 实例（可为 nil）
func NewAudioManager(ctx *audio.Context, rm *ResourceManager, sm *SettingsManager) *AudioManager {
	return &AudioManager{
		context:         ctx,
		resourceManager: rm,
		settingsManager: sm,
		client:          defaultHTTPClient(),
		fallback:        sfx.RenderPop(rm.SampleRate()),
	}
}

// LoadPopSound 在后台加载点爆音效
// source 可以是 HTTP(S) 地址或本地路径；为空时只使用合成音效
func (am *AudioManager) LoadPopSound(ctx context.Context, source string) {
	if source == "" {
		return
	}

	am.status.Store(AssetPending)
	am.wg.Add(1)
	go func() {
		defer am.wg.Done()

		var (
			data []byte
			err  error
		)
		if IsRemoteSource(source) {
			data, err = fetchRemote(ctx, am.client, source)
		} else {
			data, err = am.resourceManager.ReadAsset(source)
		}
		if err == nil {
			data, err = am.resourceManager.DecodeSound(source, data)
		}
		if err != nil {
			// 音效失败不影响游戏，继续使用合成音效
			log.Printf("[AudioManager] Pop sound unavailable, using synthesized fallback: %v", err)
			am.status.Store(AssetFailed)
			return
		}

		am.loaded.Store(&data)
		am.status.Store(AssetReady)
		log.Printf("[AudioManager] Pop sound loaded from %s (%d bytes PCM)", source, len(data))
	}()
}

// SoundStatus 加载状态
func (am *AudioManager) SoundStatus() AssetStatus {
	return am.status.Load()
}

// Wait 等待后台加载结束
func (am *AudioManager) Wait() {
	am.wg.Wait()
}

// popPCM 返回当前应该播放的 PCM 以及它是否来自加载的音效
func (am *AudioManager) popPCM() ([]byte, bool) {
	if pcm := am.loaded.Load(); pcm != nil {
		return *pcm, true
	}
	return am.fallback, false
}

// PlayPop 播放点爆音效
// 音效关闭时什么都不做并返回 nil
func (am *AudioManager) PlayPop() error {
	if am.settingsManager != nil && !am.settingsManager.SoundEnabled() {
		return nil
	}
	if am.context == nil {
		return ErrAudioUnavailable
	}

	pcm, isLoaded := am.popPCM()
	if am.player == nil || am.playerLoaded != isLoaded {
		player, err := am.context.NewPlayer(bytes.NewReader(pcm))
		if err != nil {
			return err
		}
		if am.player != nil {
			am.player.Close()
		}
		am.player = player
		am.playerLoaded = isLoaded
	}

	am.player.SetVolume(am.getSoundVolume())
	if err := am.player.Rewind(); err != nil {
		return err
	}
	am.player.Play()
	return nil
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return DefaultSettings().SoundVolume
}
