package systems

import (
	"log"

	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// MenuSystem 标题菜单：点击按钮（或按跳过键选择第一个按钮），
// 淡出后切换到目标场景或退出游戏。只执行一次。
type MenuSystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
	fade          *FadeSystem

	audio  game.AudioChannel
	zones  game.OverlapTester
	loader game.SceneLoader

	onQuitCallback func()
}

// NewMenuSystem 创建菜单系统
func NewMenuSystem(em *ecs.EntityManager, entity ecs.EntityID, fade *FadeSystem, services game.Services) *MenuSystem {
	return &MenuSystem{
		entityManager: em,
		entity:        entity,
		fade:          fade,
		audio:         services.Audio,
		zones:         services.Zones,
		loader:        services.Loader,
	}
}

// SetQuitCallback 设置"退出"按钮的回调
func (s *MenuSystem) SetQuitCallback(callback func()) {
	s.onQuitCallback = callback
}

// Update 处理悬停与点击
func (s *MenuSystem) Update(deltaTime float64, in utils.InputSnapshot) {
	m, ok := ecs.GetComponent[*components.MenuComponent](s.entityManager, s.entity)
	if !ok || m.ActionFired {
		return
	}

	if m.Selected >= 0 {
		if s.fade == nil || s.fade.IsComplete() {
			s.fire(m)
		}
		return
	}

	m.Hovered = s.buttonAt(m, in.PointerX, in.PointerY)

	switch {
	case in.PointerPressed && m.Hovered >= 0:
		s.selectButton(m, m.Hovered)
	case in.SkipPressed:
		s.selectButton(m, 0)
	}
}

func (s *MenuSystem) buttonAt(m *components.MenuComponent, x, y float64) int {
	if s.zones == nil {
		return -1
	}
	for i, b := range m.Buttons {
		if s.zones.PointInZone(b.Zone, x, y) {
			return i
		}
	}
	return -1
}

func (s *MenuSystem) selectButton(m *components.MenuComponent, index int) {
	m.Selected = index
	if s.audio != nil && m.ClickClip != "" {
		s.audio.Play(m.ClickClip)
	}
	if s.fade != nil {
		s.fade.FadeTo(1, m.FadeDuration)
	}
	log.Printf("[MenuSystem] Selected %q", m.Buttons[index].Label)
}

func (s *MenuSystem) fire(m *components.MenuComponent) {
	m.ActionFired = true
	b := m.Buttons[m.Selected]
	if b.Quit {
		if s.onQuitCallback != nil {
			s.onQuitCallback()
		}
		return
	}
	if s.loader != nil {
		s.loader.LoadScene(b.Scene)
	}
}

// Hovered 指针所在按钮下标，没有则为 -1
func (s *MenuSystem) Hovered() int {
	if m, ok := ecs.GetComponent[*components.MenuComponent](s.entityManager, s.entity); ok {
		return m.Hovered
	}
	return -1
}
