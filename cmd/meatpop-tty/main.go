// meatpop-tty 在终端里玩肉丸大作战
//
// 用法:
//
//	meatpop-tty [-level N] [-rules rules.yaml] [-log meatpop.log] [-mute]
//
// 需要支持鼠标的终端。设置和进度与桌面版共用同一个 gdata 存储。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/meatpop/pkg/app"
	"github.com/decker502/meatpop/pkg/config"
	"github.com/decker502/meatpop/pkg/game"
	"github.com/decker502/meatpop/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/quasilyte/gdata/v2"
)

// frameInterval 主循环帧间隔（约 60 FPS）
const frameInterval = 16 * time.Millisecond

func main() {
	level := flag.Int("level", 0, "直接开始的关卡（0 = 等待按 s 开始）")
	rulesPath := flag.String("rules", "", "规则文件路径（默认使用内置规则）")
	logPath := flag.String("log", "", "日志文件路径（默认不输出日志）")
	mute := flag.Bool("mute", false, "本次运行关闭音效（不修改已保存的设置）")
	flag.Parse()

	// 终端被 tcell 接管，日志只能写文件
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "无法打开日志文件: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	rules := config.DefaultGameRules()
	if *rulesPath != "" {
		loaded, err := config.LoadGameRules(*rulesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "规则文件加载失败: %v\n", err)
			os.Exit(1)
		}
		rules = loaded
	}

	settings, progress := openProgress()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法创建终端屏幕: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "无法初始化终端屏幕: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()

	speakerReady := initSpeaker()

	g := newTerminalGame(screen, gameOptions{
		Rules:    rules,
		Settings: settings,
		Progress: progress,
		Level:    *level,
		Speaker:  speakerReady,
		Mute:     *mute,
	})
	g.run()

	g.save()
	if speakerReady {
		speaker.Close()
	}
	screen.Fini()
}

// openProgress 打开 gdata 存储并创建设置和进度管理器
// 存储不可用时只保存在内存中
func openProgress() (*game.SettingsManager, *game.SaveManager) {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[TTY] Warning: 存储目录不可用: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: app.AppName})
	if err != nil {
		log.Printf("[TTY] Warning: gdata 初始化失败: %v (设置不会保存)", err)
		manager = nil
	}

	settings, err := game.NewSettingsManager(manager)
	if err != nil {
		log.Printf("[TTY] Warning: 设置加载失败: %v", err)
		settings, _ = game.NewSettingsManager(nil)
	}
	return settings, game.NewSaveManager(manager)
}

// initSpeaker 初始化扬声器，失败时返回 false（音效退回终端响铃）
func initSpeaker() bool {
	sampleRate := beep.SampleRate(ttySampleRate)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Printf("[TTY] Speaker unavailable: %v", err)
		return false
	}
	return true
}

// run 主循环
// 事件在单独的 goroutine 里读取并通过 channel 转发，游戏状态只在这里修改
func (g *terminalGame) run() {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	last := time.Now()
	g.draw()
	for !g.quit {
		select {
		case ev := <-events:
			g.handleEvent(ev)
		case now := <-ticker.C:
			g.step(now.Sub(last).Seconds())
			last = now
			g.draw()
		}
	}
}
