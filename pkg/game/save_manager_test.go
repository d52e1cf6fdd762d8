package game

import "testing"

func TestSaveManager_NilGdata(t *testing.T) {
	sm := NewSaveManager(nil)

	if sm.GetHighestLevel() != 0 {
		t.Errorf("HighestLevel = %d, want 0", sm.GetHighestLevel())
	}

	sm.RecordLevelReached(3)
	sm.RecordGameCompleted()

	if sm.GetHighestLevel() != 3 || sm.GetGamesCompleted() != 1 {
		t.Errorf("in-memory progress not recorded: %+v", sm.data)
	}
}

func TestSaveManager_RecordLevelReachedKeepsMaximum(t *testing.T) {
	sm := NewSaveManager(nil)

	for _, level := range []int{1, 4, 2, 4, 3} {
		sm.RecordLevelReached(level)
	}
	if sm.GetHighestLevel() != 4 {
		t.Errorf("HighestLevel = %d, want 4", sm.GetHighestLevel())
	}
}

func TestSaveManager_Persistence(t *testing.T) {
	manager := newTestGdataManager(t, "progress")

	sm1 := NewSaveManager(manager)
	sm1.RecordLevelReached(7)
	sm1.RecordGameCompleted()
	sm1.RecordGameCompleted()

	sm2 := NewSaveManager(manager)
	if sm2.GetHighestLevel() != 7 {
		t.Errorf("HighestLevel = %d, want 7", sm2.GetHighestLevel())
	}
	if sm2.GetGamesCompleted() != 2 {
		t.Errorf("GamesCompleted = %d, want 2", sm2.GetGamesCompleted())
	}
}

func TestSaveManager_LoadCorrupted(t *testing.T) {
	manager := newTestGdataManager(t, "progress_corrupted")

	if err := manager.SaveObjectProp(progressObject, progressProperty, []byte("highestLevel: {")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSaveManager(manager)
	if sm.GetHighestLevel() != 0 {
		t.Errorf("corrupted progress should start fresh, got %d", sm.GetHighestLevel())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report the corrupted data")
	}
}
