package scenes

import (
	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/entities"
	"github.com/gonewx/latecoffee/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// KitchenScene 厨房场景：拖动杯子到咖啡机接咖啡，门可以点击开关
type KitchenScene struct {
	*sceneBase
	dragDropSystem *systems.DragDropSystem
}

// NewKitchenScene 创建厨房场景
func NewKitchenScene(rt *Runtime, sc *config.SceneConfig) *KitchenScene {
	base := newSceneBase(rt, sc)
	mug := entities.NewMugEntity(base.entityManager, sc.Mug)

	s := &KitchenScene{
		sceneBase:      base,
		dragDropSystem: systems.NewDragDropSystem(base.entityManager, mug, base.services),
	}
	s.dragDropSystem.SetFailureCallback(s.recordFailure)
	s.stage.SetTransform(sc.Mug.Sprite, sc.Mug.StartX, sc.Mug.StartY, sc.Mug.StartRotation)
	return s
}

// Update 推进拖放和共有系统
// 开场旁白播完（或被跳过）之前杯子不能拖动
func (s *KitchenScene) Update(deltaTime float64) {
	in := s.pollInput()
	if s.introSystem.IsFinished() {
		s.dragDropSystem.Update(deltaTime, in)
	}
	s.updateCommon(deltaTime, in)
}

// Draw 绘制厨房
func (s *KitchenScene) Draw(screen *ebiten.Image) {
	s.drawWorld(screen)
	s.drawOverlay(screen, "")
}
