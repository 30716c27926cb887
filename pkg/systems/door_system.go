package systems

import (
	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// DoorSystem 点击门区域切换开/关图片
type DoorSystem struct {
	entityManager *ecs.EntityManager

	zones     game.OverlapTester
	presenter game.VisualPresenter
	audio     game.AudioChannel
}

// NewDoorSystem 创建门开关系统
func NewDoorSystem(em *ecs.EntityManager, services game.Services) *DoorSystem {
	return &DoorSystem{
		entityManager: em,
		zones:         services.Zones,
		presenter:     services.Presenter,
		audio:         services.Audio,
	}
}

// Update 处理场景中所有门的点击
func (s *DoorSystem) Update(deltaTime float64, in utils.InputSnapshot) {
	for _, id := range ecs.GetEntitiesWith1[*components.DoorComponent](s.entityManager) {
		door, _ := ecs.GetComponent[*components.DoorComponent](s.entityManager, id)
		door.SinceLastClick += deltaTime

		if !in.PointerPressed || s.zones == nil {
			continue
		}
		if door.SinceLastClick < door.ClickCooldown {
			continue
		}
		if !s.zones.PointInZone(door.Zone, in.PointerX, in.PointerY) {
			continue
		}
		door.SinceLastClick = 0
		s.toggle(door)
	}
}

func (s *DoorSystem) toggle(door *components.DoorComponent) {
	door.Open = !door.Open
	image, clip := door.ClosedImage, door.CloseClip
	if door.Open {
		image, clip = door.OpenImage, door.OpenClip
	}
	if s.presenter != nil && image != "" {
		s.presenter.SetImage(door.Sprite, image)
	}
	if s.audio != nil && clip != "" {
		s.audio.Play(clip)
	}
}
