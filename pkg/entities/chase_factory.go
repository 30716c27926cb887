package entities

import (
	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/ecs"
)

// NewChaseEntity 根据配置创建追逐小游戏实体（Idle 阶段）
//
// 参数:
//   - em: 实体管理器
//   - cfg: 追逐配置（已应用默认值）
//
// 返回:
//   - ecs.EntityID: 追逐实体ID
func NewChaseEntity(em *ecs.EntityManager, cfg *config.ChaseConfig) ecs.EntityID {
	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.ChaseComponent{
		Phase:     components.ChasePhaseIdle,
		Required:  cfg.Required,
		Increment: cfg.Increment,
		DecayRate: cfg.DecayRate,
		Countdown: cfg.TimeLimit,
		TimeLimit: cfg.TimeLimit,

		ShakeMax:        cfg.ShakeMax,
		BreathClip:      cfg.BreathClip,
		BreathVolumeMin: cfg.BreathVolumeMin,
		BreathVolumeMax: cfg.BreathVolumeMax,
		BreathPitchMin:  cfg.BreathPitchMin,
		BreathPitchMax:  cfg.BreathPitchMax,
		MusicClip:       cfg.MusicClip,
		FootstepClip:    cfg.FootstepClip,

		// 复制切片，避免修改配置
		NarrationClips:   append([]string(nil), cfg.NarrationClips...),
		NarrationOffsets: append([]float64(nil), cfg.NarrationOffsets...),

		FailureClip:      cfg.FailureClip,
		LosePause:        cfg.LosePause,
		FadeDuration:     cfg.FadeDuration,
		EndingMedia:      cfg.EndingMedia,
		BackgroundSprite: cfg.BackgroundSprite,
		NextScene:        cfg.NextScene,
		GameOverScene:    cfg.GameOverScene,

		OpeningMedia: cfg.OpeningMedia,
		StartDelay:   cfg.StartDelay,
		AmbientClip:  cfg.AmbientClip,
	})

	return entityID
}
