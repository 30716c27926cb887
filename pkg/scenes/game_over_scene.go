package scenes

import (
	"image/color"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/entities"
	"github.com/gonewx/latecoffee/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// GameOverScene 游戏结束：点击后重试会话中最近失败的场景
type GameOverScene struct {
	*sceneBase
	gameOverSystem *systems.GameOverSystem
}

// NewGameOverScene 创建游戏结束场景
func NewGameOverScene(rt *Runtime, sc *config.SceneConfig) *GameOverScene {
	base := newSceneBase(rt, sc)

	retry := ""
	if rt.Session != nil {
		retry = rt.Session.RetryScene
	}
	entity := entities.NewGameOverEntity(base.entityManager, sc.GameOver, retry)

	s := &GameOverScene{
		sceneBase:      base,
		gameOverSystem: systems.NewGameOverSystem(base.entityManager, entity, base.fadeSystem, base.services),
	}
	return s
}

// Start 播放游戏结束音效
func (s *GameOverScene) Start() {
	s.sceneBase.Start()
	s.gameOverSystem.Start()
}

// Update 等待重试输入
func (s *GameOverScene) Update(deltaTime float64) {
	in := s.pollInput()
	s.gameOverSystem.Update(deltaTime, in)
	s.updateCommon(deltaTime, in)
}

// Draw 绘制背景和提示
func (s *GameOverScene) Draw(screen *ebiten.Image) {
	s.drawWorld(screen)
	s.hud.DrawCenteredText(screen, "LATE AGAIN", s.hud.height/2-20, color.RGBA{R: 230, G: 80, B: 70, A: 255})
	if s.gameOverSystem.CanRetry() {
		s.hud.DrawCenteredText(screen, "Click to try again", s.hud.height/2+10, color.White)
	}
	s.drawOverlay(screen, "")
}
