package entities

import (
	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/ecs"
)

// NewMugEntity 根据配置创建可拖放的杯子实体，位于起始位置
func NewMugEntity(em *ecs.EntityManager, cfg *config.DragDropConfig) ecs.EntityID {
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.DraggableComponent{
		State:          components.DragStateIdle,
		X:              cfg.StartX,
		Y:              cfg.StartY,
		Rotation:       cfg.StartRotation,
		StartX:         cfg.StartX,
		StartY:         cfg.StartY,
		StartRotation:  cfg.StartRotation,
		TargetX:        cfg.TargetX,
		TargetY:        cfg.TargetY,
		TargetRotation: cfg.TargetRotation,

		Bounds: cfg.Bounds.Rect(),
		Handle: cfg.Handle.Rect(),
		Rim:    cfg.Rim.Rect(),

		FollowRate:  cfg.FollowRate,
		SuccessZone: cfg.SuccessZone,
		FailureZone: cfg.FailureZone,

		FillDuration: cfg.FillDuration,
		FailureDelay: cfg.FailureDelay,
		AdvanceDelay: cfg.AdvanceDelay,

		Sprite:       cfg.Sprite,
		FillSprite:   cfg.FillSprite,
		NormalImage:  cfg.NormalImage,
		FailureImage: cfg.FailureImage,
		FilledImage:  cfg.FilledImage,
		GrabClip:     cfg.GrabClip,
		PourClip:     cfg.PourClip,
		FailureClip:  cfg.FailureClip,

		NextScene:     cfg.NextScene,
		GameOverScene: cfg.GameOverScene,
	})

	return entityID
}
