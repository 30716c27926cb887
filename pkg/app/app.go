// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来：加载配置、创建资源与音频管理器、
// 会话和场景管理器，然后进入起始场景。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/embedded"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/scenes"
	"github.com/gonewx/latecoffee/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// DefaultConfigPath 内置游戏配置在嵌入资源中的路径
const DefaultConfigPath = "data/config/game.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Scene 指定起始场景ID，为空则使用配置中的 startScene
	Scene string
	// ConfigPath 磁盘上的游戏配置文件，为空则使用内置配置
	ConfigPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	gameConfig   *config.GameConfig
	sceneManager *game.SceneManager
	audioManager *game.AudioManager
	session      *game.Session
}

// NewApp 创建并初始化游戏应用
//
// 使用内置配置时，调用此函数前必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := loadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("游戏配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载 %d 个场景, %d 张图片, %d 个音频片段",
		len(gameConfig.Scenes), len(gameConfig.Images), len(gameConfig.Clips))

	startScene := gameConfig.StartScene
	if cfg.Scene != "" {
		if _, ok := gameConfig.Scene(cfg.Scene); !ok {
			return nil, fmt.Errorf("未知场景: %s", cfg.Scene)
		}
		startScene = cfg.Scene
	}

	runKeys, unknown := utils.ParseKeys(gameConfig.Input.RunKeys)
	skipKeys, unknownSkip := utils.ParseKeys(gameConfig.Input.SkipKeys)
	if unknown = append(unknown, unknownSkip...); len(unknown) > 0 {
		log.Printf("[App] Warning: 忽略无法识别的按键: %v", unknown)
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)

	resourceManager := game.NewResourceManager(gameConfig)
	audioManager := game.NewAudioManager(audioContext, resourceManager, gameConfig.Clips)
	log.Printf("[App] AudioManager initialized")

	session := game.NewSession()
	sceneManager := game.NewSceneManager(session)
	sceneManager.SetSceneFactory(scenes.NewSceneFactory(&scenes.Runtime{
		Config:    gameConfig,
		Resources: resourceManager,
		Audio:     audioManager,
		Loader:    sceneManager,
		Session:   session,
		Input:     utils.NewInputPoller(runKeys, skipKeys),
	}))

	log.Printf("[App] Starting scene: %s", startScene)
	sceneManager.LoadScene(startScene)
	if sceneManager.GetCurrentScene() == nil {
		return nil, fmt.Errorf("无法创建起始场景: %s", startScene)
	}

	ebiten.SetWindowSize(gameConfig.Window.Width, gameConfig.Window.Height)
	ebiten.SetWindowTitle(gameConfig.Window.Title)

	return &App{
		gameConfig:   gameConfig,
		sceneManager: sceneManager,
		audioManager: audioManager,
		session:      session,
	}, nil
}

// loadGameConfig 磁盘路径优先，否则读取内置配置
func loadGameConfig(path string) (*config.GameConfig, error) {
	if path != "" {
		return config.LoadGameConfig(path)
	}
	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded config: %w", err)
	}
	return config.ParseGameConfig(data, DefaultConfigPath)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)

	// 菜单中选择了"退出"
	if a.session.QuitRequested() {
		return ebiten.Termination
	}
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.gameConfig.Window.Width, a.gameConfig.Window.Height
}

// Close 停止所有音频（窗口关闭时调用）
func (a *App) Close() {
	a.audioManager.StopAll()
	log.Printf("[App] 会话 %s 结束", a.session.ID)
}
