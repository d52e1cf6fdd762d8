package game

import "testing"

// TestDefaultSettings 测试默认设置
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if !settings.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if settings.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", settings.SoundVolume)
	}
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}

	if !sm.SoundEnabled() {
		t.Error("degraded mode should start with sound on")
	}

	// 降级模式下保存不报错
	sm.SetSoundEnabled(false)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
	if sm.SoundEnabled() {
		t.Error("in-memory setting should still apply")
	}
}

// TestSettingsLoadSave 测试设置可以跨实例持久化
func TestSettingsLoadSave(t *testing.T) {
	manager := newTestGdataManager(t, "settings")

	sm1, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	sm1.SetSoundEnabled(false)
	sm1.SetSoundVolume(0.3)
	sm1.SetFullscreen(true)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	got := sm2.GetSettings()
	if got.SoundEnabled {
		t.Error("SoundEnabled should be persisted as false")
	}
	if got.SoundVolume != 0.3 {
		t.Errorf("SoundVolume: got %v, want 0.3", got.SoundVolume)
	}
	if !got.Fullscreen {
		t.Error("Fullscreen should be persisted as true")
	}
}

// TestToggleSoundPersists ToggleSound 立即写盘
func TestToggleSoundPersists(t *testing.T) {
	manager := newTestGdataManager(t, "toggle")

	sm, _ := NewSettingsManager(manager)
	if sm.ToggleSound() {
		t.Fatal("first toggle should turn sound off")
	}

	reloaded, _ := NewSettingsManager(manager)
	if reloaded.SoundEnabled() {
		t.Error("toggle should be persisted without an explicit Save()")
	}

	if !sm.ToggleSound() {
		t.Error("second toggle should turn sound back on")
	}
}

// TestSettingsLoadCorrupted 存档损坏时回退到默认设置
func TestSettingsLoadCorrupted(t *testing.T) {
	manager := newTestGdataManager(t, "corrupted")

	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("soundEnabled: [oops")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(manager)
	if err != nil {
		t.Fatalf("NewSettingsManager() should not fail on corrupted data: %v", err)
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the corrupted file")
	}
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("expected defaults after corrupted load, got %+v", sm.GetSettings())
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{3, 1},
	}
	for _, tt := range tests {
		if got := clampVolume(tt.in); got != tt.want {
			t.Errorf("clampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
