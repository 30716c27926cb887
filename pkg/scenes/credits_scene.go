package scenes

import (
	"image/color"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/entities"
	"github.com/gonewx/latecoffee/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// CreditsScene 滚动字幕，结束后回到标题菜单
type CreditsScene struct {
	*sceneBase
	creditsSystem *systems.CreditsSystem
}

// NewCreditsScene 创建滚动字幕场景
func NewCreditsScene(rt *Runtime, sc *config.SceneConfig) *CreditsScene {
	base := newSceneBase(rt, sc)
	entity := entities.NewCreditsEntity(base.entityManager, sc.Credits, float64(rt.Config.Window.Height))

	return &CreditsScene{
		sceneBase:     base,
		creditsSystem: systems.NewCreditsSystem(base.entityManager, entity, base.fadeSystem, base.services),
	}
}

// Update 推进滚动和共有系统
func (s *CreditsScene) Update(deltaTime float64) {
	in := s.pollInput()
	s.creditsSystem.Update(deltaTime, in)
	s.updateCommon(deltaTime, in)
}

// Draw 绘制仍在屏幕内的字幕行
func (s *CreditsScene) Draw(screen *ebiten.Image) {
	s.drawWorld(screen)
	for i, line := range s.creditsSystem.Lines() {
		y := s.creditsSystem.LineY(i, s.hud.height)
		if line == "" || y < -20 || y > s.hud.height {
			continue
		}
		s.hud.DrawCenteredText(screen, line, y, color.White)
	}
	s.drawOverlay(screen, "")
}
