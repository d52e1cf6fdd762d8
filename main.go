package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/meatpop/pkg/app"
	"github.com/decker502/meatpop/pkg/config"
	"github.com/decker502/meatpop/pkg/embedded"
	"github.com/decker502/meatpop/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	level := flag.Int("level", 0, "启动后直接开始指定关卡（1-10），0 表示等待点击 Start")
	rulesPath := flag.String("rules", "", "外部规则文件（默认使用内置 data/rules.yaml）")
	texture := flag.String("texture", game.DefaultTextureSource, "目标贴图：本地路径或 HTTP(S) 地址")
	soundURL := flag.String("sound-url", game.DefaultPopSoundURL, "点爆音效：本地路径或 HTTP(S) 地址，为空时只用合成音效")
	fullscreen := flag.Bool("fullscreen", false, "全屏启动")
	flag.Parse()

	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		Level:         *level,
		RulesPath:     *rulesPath,
		TextureSource: *texture,
		SoundURL:      *soundURL,
		Fullscreen:    *fullscreen,
	})
	if err != nil {
		// NewApp 可能已经关闭了日志输出
		log.SetOutput(os.Stderr)
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.DefaultWindowWidth, config.DefaultWindowHeight)
	ebiten.SetWindowTitle("Meatball Pop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(gameApp.Fullscreen())

	runErr := ebiten.RunGame(gameApp)

	// 窗口关闭后保存设置和进度
	if !gameApp.Shutdown() {
		log.Printf("[Main] 退出时保存失败")
	}
	if runErr != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(runErr)
	}
}
