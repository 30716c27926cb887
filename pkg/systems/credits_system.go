package systems

import (
	"log"

	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// CreditsSystem 滚动字幕：滚完（或 InputDelay 后点击跳过）淡出并切换场景
type CreditsSystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
	fade          *FadeSystem
	loader        game.SceneLoader
}

// NewCreditsSystem 创建滚动字幕系统
func NewCreditsSystem(em *ecs.EntityManager, entity ecs.EntityID, fade *FadeSystem, services game.Services) *CreditsSystem {
	return &CreditsSystem{entityManager: em, entity: entity, fade: fade, loader: services.Loader}
}

// Update 推进滚动
func (s *CreditsSystem) Update(deltaTime float64, in utils.InputSnapshot) {
	c, ok := s.component()
	if !ok || c.TransitionFired {
		return
	}
	c.Elapsed += deltaTime

	if !c.Finishing {
		c.Offset = min(c.Offset+c.ScrollSpeed*deltaTime, c.Distance)
		skipped := c.Elapsed >= c.InputDelay && in.Clicked()
		if c.Offset >= c.Distance || skipped {
			c.Finishing = true
			if s.fade != nil {
				s.fade.FadeTo(1, c.FadeDuration)
			}
		}
		return
	}

	if s.fade != nil && !s.fade.IsComplete() {
		return
	}
	c.TransitionFired = true
	if c.NextScene == "" || s.loader == nil {
		log.Printf("[CreditsSystem] No next scene, staying on credits")
		return
	}
	s.loader.LoadScene(c.NextScene)
}

func (s *CreditsSystem) component() (*components.CreditsComponent, bool) {
	return ecs.GetComponent[*components.CreditsComponent](s.entityManager, s.entity)
}

// Lines 字幕行
func (s *CreditsSystem) Lines() []string {
	if c, ok := s.component(); ok {
		return c.Lines
	}
	return nil
}

// LineY 第 i 行当前的屏幕 y 坐标
func (s *CreditsSystem) LineY(i int, screenHeight float64) float64 {
	c, ok := s.component()
	if !ok {
		return 0
	}
	return screenHeight - c.Offset + float64(i)*c.LineSpacing
}
