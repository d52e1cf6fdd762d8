package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// SaveData 玩家进度
//
// 保存内容：
//   - 到达过的最高关卡
//   - 通关（打完终关）次数
type SaveData struct {
	HighestLevel   int `yaml:"highestLevel"`   // 到达过的最高关卡，0 表示从未开始
	GamesCompleted int `yaml:"gamesCompleted"` // 通关次数
}

// SaveManager 进度管理器
//
// 数据通过 gdata 持久化为 YAML，与 SettingsManager 使用同一个存储。
// gdataManager 为 nil 时只在内存中记录（降级模式）。
type SaveManager struct {
	gdataManager *gdata.Manager
	data         *SaveData
}

const (
	progressObject   = "progress"
	progressProperty = "player"
)

// NewSaveManager 创建进度管理器并尝试加载已有进度
// 加载失败不是致命错误，从空进度开始
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	sm := &SaveManager{
		gdataManager: gdataManager,
		data:         &SaveData{},
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SaveManager] Warning: Failed to load progress: %v (starting fresh)", err)
	}

	return sm
}

// Load 从 gdata 加载进度
func (sm *SaveManager) Load() error {
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	raw, err := sm.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}

	var data SaveData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse progress: %w", err)
	}

	sm.data = &data
	return nil
}

// Save 保存进度到 gdata
func (sm *SaveManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(sm.data)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(progressObject, progressProperty, raw); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}

// GetHighestLevel 到达过的最高关卡
func (sm *SaveManager) GetHighestLevel() int {
	return sm.data.HighestLevel
}

// GetGamesCompleted 通关次数
func (sm *SaveManager) GetGamesCompleted() int {
	return sm.data.GamesCompleted
}

// RecordLevelReached 记录到达的关卡，只有超过历史最高时才写盘
func (sm *SaveManager) RecordLevelReached(level int) {
	if level <= sm.data.HighestLevel {
		return
	}
	sm.data.HighestLevel = level
	if err := sm.Save(); err != nil {
		log.Printf("[SaveManager] Warning: %v", err)
	}
}

// RecordGameCompleted 记录一次通关
func (sm *SaveManager) RecordGameCompleted() {
	sm.data.GamesCompleted++
	log.Printf("[SaveManager] Game completed (%d total)", sm.data.GamesCompleted)
	if err := sm.Save(); err != nil {
		log.Printf("[SaveManager] Warning: %v", err)
	}
}
