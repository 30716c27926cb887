package main

import (
	"flag"
	"log"

	"github.com/gonewx/latecoffee/pkg/app"
	"github.com/gonewx/latecoffee/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	scene := flag.String("scene", "", "起始场景ID（如 kitchen、chase）")
	configPath := flag.String("config", "", "游戏配置文件路径（默认使用内置配置）")
	flag.Parse()

	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Scene:      *scene,
		ConfigPath: *configPath,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
