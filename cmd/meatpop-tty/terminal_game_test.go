package main

import (
	"strings"
	"testing"

	"github.com/decker502/meatpop/pkg/components"
	"github.com/decker502/meatpop/pkg/config"
	"github.com/decker502/meatpop/pkg/ecs"
	"github.com/decker502/meatpop/pkg/game"
	"github.com/decker502/meatpop/pkg/systems"
	"github.com/decker502/meatpop/pkg/utils"
	"github.com/gdamore/tcell/v2"
)

// newTestGame 在 80x24 的模拟终端上创建游戏
func newTestGame(t *testing.T, level int) *terminalGame {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	settings, err := game.NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager: %v", err)
	}
	return newTerminalGame(screen, gameOptions{
		Rules:    config.DefaultGameRules(),
		Settings: settings,
		Progress: game.NewSaveManager(nil),
		Level:    level,
	})
}

// targetCell 第一个目标圆心所在的字符格
func targetCell(t *testing.T, g *terminalGame) (int, int) {
	t.Helper()
	ids := ecs.GetEntitiesWith1[*components.TargetComponent](g.entityManager)
	if len(ids) == 0 {
		t.Fatal("no targets on canvas")
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.entityManager, ids[0])
	return g.canvasCell(pos.X, pos.Y, g.rect())
}

// readLine 读取模拟屏幕上第 y 行的文字
func readLine(screen tcell.Screen, y int) string {
	cols, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < cols; x++ {
		mainc, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(mainc)
	}
	return strings.TrimRight(b.String(), " ")
}

func press(g *terminalGame, x, y int) {
	g.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	g.handleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func key(g *terminalGame, r rune) {
	g.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

// TestTerminalMuteNotPersisted -mute 只影响本次运行，保存后设置里的音效开关不变
func TestTerminalMuteNotPersisted(t *testing.T) {
	tests := []struct {
		name       string
		mute       bool
		toggles    int
		wantHUD    bool
		wantStored bool
	}{
		{"静音启动", true, 0, false, true},
		{"静音后按 m 重新打开", true, 1, true, true},
		{"未静音按 m 写回设置", false, 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screen := tcell.NewSimulationScreen("UTF-8")
			if err := screen.Init(); err != nil {
				t.Fatalf("screen.Init: %v", err)
			}
			defer screen.Fini()
			screen.SetSize(80, 24)

			settings, err := game.NewSettingsManager(nil)
			if err != nil {
				t.Fatalf("NewSettingsManager: %v", err)
			}
			g := newTerminalGame(screen, gameOptions{
				Rules:    config.DefaultGameRules(),
				Settings: settings,
				Progress: game.NewSaveManager(nil),
				Mute:     tt.mute,
			})
			for i := 0; i < tt.toggles; i++ {
				key(g, 'm')
			}
			g.save()

			if g.hud.SoundOn != tt.wantHUD {
				t.Errorf("HUD SoundOn = %v, want %v", g.hud.SoundOn, tt.wantHUD)
			}
			if settings.SoundEnabled() != tt.wantStored {
				t.Errorf("stored SoundEnabled = %v, want %v", settings.SoundEnabled(), tt.wantStored)
			}
		})
	}
}

func TestCanvasRect(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		want       utils.Rect
	}{
		{"standard", 80, 24, utils.Rect{X: 0, Y: 1, Width: 80, Height: 22}},
		{"tiny", 10, 2, utils.Rect{X: 0, Y: 1, Width: 10, Height: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canvasRect(tt.cols, tt.rows); got != tt.want {
				t.Errorf("canvasRect(%d, %d) = %+v, want %+v", tt.cols, tt.rows, got, tt.want)
			}
		})
	}
}

// TestCanvasCellRoundTrip 格子中心换算到画布再换算回来仍落在同一格
func TestCanvasCellRoundTrip(t *testing.T) {
	g := newTestGame(t, 0)
	rect := g.rect()
	for _, cell := range [][2]int{{0, 1}, {40, 12}, {79, 22}} {
		px, py := g.cellCenter(cell[0], cell[1], rect)
		x, y := g.canvasCell(px, py, rect)
		if x != cell[0] || y != cell[1] {
			t.Errorf("cell %v -> (%v, %v) -> (%d, %d)", cell, px, py, x, y)
		}
	}
}

func TestTerminalAutoStart(t *testing.T) {
	g := newTestGame(t, 2)
	g.step(0)

	state := g.levelSystem.State()
	if state.Level != 2 || !state.IsRunning() {
		t.Fatalf("state = %+v, want level 2 running", state)
	}
	if g.hud.Targets != 8 {
		t.Errorf("HUD targets = %d, want 8", g.hud.Targets)
	}
}

func TestTerminalKeys(t *testing.T) {
	g := newTestGame(t, 0)
	g.step(0)
	if g.levelSystem.State().Phase != game.PhaseIdle {
		t.Fatal("should wait for s before starting")
	}

	key(g, 's')
	if !g.levelSystem.State().IsRunning() || g.hud.Level != 1 {
		t.Fatalf("s should start level 1, state = %+v", g.levelSystem.State())
	}

	key(g, 'p')
	if !g.hud.Paused {
		t.Error("p should pause")
	}
	key(g, 'p')
	if g.hud.Paused {
		t.Error("second p should resume")
	}

	key(g, 'm')
	if g.hud.SoundOn {
		t.Error("m should mute")
	}

	key(g, 'q')
	if !g.quit {
		t.Error("q should quit")
	}
}

func TestTerminalClickPopsTarget(t *testing.T) {
	g := newTestGame(t, 1)
	g.step(0)

	x, y := targetCell(t, g)
	press(g, x, y)

	if g.hud.Targets != 5 {
		t.Errorf("HUD targets = %d, want 5", g.hud.Targets)
	}
	if n := len(ecs.GetEntitiesWith1[*components.PopFlashComponent](g.entityManager)); n != 1 {
		t.Errorf("flashes = %d, want 1", n)
	}
}

// TestTerminalMouseEdge 按住左键拖动不会连续点击
func TestTerminalMouseEdge(t *testing.T) {
	g := newTestGame(t, 1)
	g.step(0)

	x, y := targetCell(t, g)
	g.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	x, y = targetCell(t, g)
	g.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))

	if g.hud.Targets != 5 {
		t.Errorf("HUD targets = %d, want 5 (one pop per press)", g.hud.Targets)
	}
}

func TestTerminalClickOutsideCanvas(t *testing.T) {
	g := newTestGame(t, 1)
	g.step(0)

	if g.clickCell(5, 0) {
		t.Error("click on the HUD row must not pop")
	}
	if g.clickCell(5, 23) {
		t.Error("click on the help row must not pop")
	}
}

// TestTerminalMessageFlow 清空目标后显示提示框，关闭后进入下一关
func TestTerminalMessageFlow(t *testing.T) {
	g := newTestGame(t, 1)
	g.step(0)

	for g.message == "" {
		x, y := targetCell(t, g)
		press(g, x, y)
	}
	if g.message != "Level 1 complete! Starting Level 2" {
		t.Fatalf("message = %q", g.message)
	}

	// 提示框期间快捷键无效
	key(g, 's')
	key(g, 'p')
	if g.levelSystem.State().Phase != game.PhaseEnded {
		t.Fatal("shortcuts must be blocked while the message is shown")
	}

	g.draw()
	screenText := ""
	_, rows := g.screen.Size()
	for y := 0; y < rows; y++ {
		screenText += readLine(g.screen, y) + "\n"
	}
	if !strings.Contains(screenText, "Level 1 complete! Starting Level 2") || !strings.Contains(screenText, modalHint) {
		t.Errorf("message box not drawn:\n%s", screenText)
	}

	g.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if g.message != "" {
		t.Error("Enter should dismiss the message")
	}
	if g.hud.Level != 2 || !g.levelSystem.State().IsRunning() {
		t.Errorf("expected level 2 running, got %+v", g.levelSystem.State())
	}
}

func TestTerminalEscape(t *testing.T) {
	g := newTestGame(t, 0)
	called := 0
	g.ShowMessage("hello", func() { called++ })

	g.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if called != 1 || g.quit {
		t.Fatalf("Esc with a message should dismiss it (called=%d, quit=%v)", called, g.quit)
	}

	g.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if !g.quit {
		t.Error("Esc without a message should quit")
	}
}

func TestTerminalDrawHUD(t *testing.T) {
	g := newTestGame(t, 1)
	g.step(0)
	g.draw()

	if got := readLine(g.screen, 0); got != "Level: 1   Targets: 6   Time: 20s" {
		t.Errorf("HUD row = %q", got)
	}
	if got := readLine(g.screen, 23); got != "[s] Start   [p] Pause   [m] Sound: On   [q] Quit" {
		t.Errorf("help row = %q", got)
	}

	// 后画的目标可能盖住前一个目标的圆心，但格子里一定是目标字符
	x, y := targetCell(t, g)
	if mainc, _, _, _ := g.screen.GetContent(x, y); mainc != targetRune && mainc != rimRune {
		t.Errorf("target centre cell = %q, want a target rune", mainc)
	}
}

func TestTerminalDrawFlash(t *testing.T) {
	g := newTestGame(t, 1)
	g.step(0)

	ids := ecs.GetEntitiesWith1[*components.TargetComponent](g.entityManager)
	pos, _ := ecs.GetComponent[*components.PositionComponent](g.entityManager, ids[0])
	px, py := pos.X, pos.Y
	if !g.levelSystem.PopAt(px, py) {
		t.Fatal("PopAt should hit the target")
	}
	g.draw()

	x, y := g.canvasCell(px, py, g.rect())
	mainc, _, _, _ := g.screen.GetContent(x, y)
	// 其他目标可能盖在同一格上，但新弹出的闪光总是画在最上层
	if mainc != flashRune {
		t.Errorf("flash centre cell = %q, want %q", mainc, flashRune)
	}
}

// TestTerminalPopWithoutSpeaker 没有扬声器时点爆退回终端响铃，不影响计数
func TestTerminalPopWithoutSpeaker(t *testing.T) {
	g := newTestGame(t, 1)
	g.step(0)
	if g.speakerReady {
		t.Fatal("tests must not open the speaker")
	}

	x, y := targetCell(t, g)
	press(g, x, y)
	if g.hud.Targets != 5 {
		t.Errorf("HUD targets = %d, want 5", g.hud.Targets)
	}
}

func TestHelpLine(t *testing.T) {
	tests := []struct {
		hud  systems.HUD
		want string
	}{
		{systems.HUD{SoundOn: true}, "[s] Start   [p] Pause   [m] Sound: On   [q] Quit"},
		{systems.HUD{Paused: true}, "[s] Start   [p] Resume   [m] Sound: Off   [q] Quit"},
	}
	for _, tt := range tests {
		if got := helpLine(tt.hud); got != tt.want {
			t.Errorf("helpLine(%+v) = %q, want %q", tt.hud, got, tt.want)
		}
	}
}

func TestHUDLine(t *testing.T) {
	if got := hudLine(systems.HUD{Level: 3, Targets: 4, Seconds: 7, Paused: true}); got != "Level: 3   Targets: 4   Time: 7s   [PAUSED]" {
		t.Errorf("hudLine = %q", got)
	}
}

func TestRowBackgroundGradient(t *testing.T) {
	rect := canvasRect(80, 24)
	if got := rowBackground(1, rect); got != colorTop {
		t.Errorf("top row = %v, want %v", got, colorTop)
	}
	if got := rowBackground(22, rect); got != colorBottom {
		t.Errorf("bottom row = %v, want %v", got, colorBottom)
	}
}
