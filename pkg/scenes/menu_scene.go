package scenes

import (
	"image/color"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/entities"
	"github.com/gonewx/latecoffee/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// MenuScene 标题菜单：开始游戏、制作人员、退出
type MenuScene struct {
	*sceneBase
	cfg        *config.MenuConfig
	menuSystem *systems.MenuSystem
}

// NewMenuScene 创建标题菜单场景
func NewMenuScene(rt *Runtime, sc *config.SceneConfig) *MenuScene {
	base := newSceneBase(rt, sc)
	entity := entities.NewMenuEntity(base.entityManager, sc.Menu)

	s := &MenuScene{
		sceneBase:  base,
		cfg:        sc.Menu,
		menuSystem: systems.NewMenuSystem(base.entityManager, entity, base.fadeSystem, base.services),
	}
	if rt.Session != nil {
		s.menuSystem.SetQuitCallback(rt.Session.RequestQuit)
	}
	return s
}

// Update 推进菜单和共有系统
func (s *MenuScene) Update(deltaTime float64) {
	in := s.pollInput()
	s.menuSystem.Update(deltaTime, in)
	s.updateCommon(deltaTime, in)
}

// Draw 绘制背景、标题和按钮
func (s *MenuScene) Draw(screen *ebiten.Image) {
	s.drawWorld(screen)
	s.hud.DrawCenteredText(screen, s.cfg.Title, s.hud.height/3, color.RGBA{R: 240, G: 200, B: 120, A: 255})

	hovered := s.menuSystem.Hovered()
	for i, b := range s.cfg.Buttons {
		if r, ok := s.zones.Get(b.Zone); ok {
			s.hud.DrawButton(screen, r, b.Label, i == hovered)
		}
	}
	s.drawOverlay(screen, "")
}
