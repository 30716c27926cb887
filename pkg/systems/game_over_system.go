package systems

import (
	"log"

	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// GameOverSystem 游戏结束场景：等待点击，淡出后重试失败的场景
type GameOverSystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
	fade          *FadeSystem

	audio  game.AudioChannel
	loader game.SceneLoader
}

// NewGameOverSystem 创建游戏结束系统
func NewGameOverSystem(em *ecs.EntityManager, entity ecs.EntityID, fade *FadeSystem, services game.Services) *GameOverSystem {
	return &GameOverSystem{
		entityManager: em,
		entity:        entity,
		fade:          fade,
		audio:         services.Audio,
		loader:        services.Loader,
	}
}

// Start 播放游戏结束音效
func (s *GameOverSystem) Start() {
	g, ok := ecs.GetComponent[*components.GameOverComponent](s.entityManager, s.entity)
	if ok && s.audio != nil && g.Clip != "" {
		s.audio.Play(g.Clip)
	}
}

// Update 处理重试输入
func (s *GameOverSystem) Update(deltaTime float64, in utils.InputSnapshot) {
	g, ok := ecs.GetComponent[*components.GameOverComponent](s.entityManager, s.entity)
	if !ok || g.TransitionFired {
		return
	}
	g.Elapsed += deltaTime

	if !g.Retrying {
		if g.Elapsed < g.InputDelay || !in.Clicked() {
			return
		}
		g.Retrying = true
		if s.fade != nil {
			s.fade.FadeTo(1, g.FadeDuration)
		}
		log.Printf("[GameOverSystem] Retry requested: %q", g.RetryScene)
		return
	}

	if s.fade != nil && !s.fade.IsComplete() {
		return
	}
	g.TransitionFired = true
	if s.audio != nil && g.Clip != "" {
		s.audio.Stop(g.Clip)
	}
	if g.RetryScene == "" || s.loader == nil {
		return
	}
	s.loader.LoadScene(g.RetryScene)
}

// CanRetry 是否已开始接受点击（HUD 据此显示提示）
func (s *GameOverSystem) CanRetry() bool {
	g, ok := ecs.GetComponent[*components.GameOverComponent](s.entityManager, s.entity)
	return ok && !g.Retrying && g.Elapsed >= g.InputDelay
}
