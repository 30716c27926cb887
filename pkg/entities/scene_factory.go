package entities

import (
	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/ecs"
)

// NewDialogueEntity 创建对话分镜实体
func NewDialogueEntity(em *ecs.EntityManager, cfg *config.DialogueConfig) ecs.EntityID {
	entityID := em.CreateEntity()

	d := &components.DialogueComponent{
		Sprites:      make([]string, 0, len(cfg.Panels)),
		Voices:       make([]string, 0, len(cfg.Panels)),
		Texts:        make([]string, 0, len(cfg.Panels)),
		SkipCooldown: cfg.SkipCooldown,
		FadeDuration: cfg.FadeDuration,
		NextScene:    cfg.NextScene,
	}
	for _, p := range cfg.Panels {
		d.Sprites = append(d.Sprites, p.Sprite)
		d.Voices = append(d.Voices, p.Voice)
		d.Texts = append(d.Texts, p.Text)
	}
	ecs.AddComponent(em, entityID, d)

	return entityID
}

// NewDoorEntity 创建门实体
func NewDoorEntity(em *ecs.EntityManager, cfg *config.DoorConfig) ecs.EntityID {
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.DoorComponent{
		Open:          cfg.StartOpen,
		Sprite:        cfg.Sprite,
		Zone:          cfg.Zone,
		OpenImage:     cfg.OpenImage,
		ClosedImage:   cfg.ClosedImage,
		OpenClip:      cfg.OpenClip,
		CloseClip:     cfg.CloseClip,
		ClickCooldown: cfg.ClickCooldown,
		// 第一次点击不受冷却限制
		SinceLastClick: cfg.ClickCooldown,
	})
	return entityID
}

// DoorImage 门当前状态对应的图片
func DoorImage(cfg *config.DoorConfig) string {
	if cfg.StartOpen {
		return cfg.OpenImage
	}
	return cfg.ClosedImage
}

// NewSceneIntroEntity 创建开场旁白实体
func NewSceneIntroEntity(em *ecs.EntityManager, cfg *config.IntroConfig) ecs.EntityID {
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.SceneIntroComponent{
		Clip:             cfg.Clip,
		Subtitle:         cfg.Subtitle,
		Delay:            cfg.Delay,
		SubtitleDuration: cfg.SubtitleDuration,
		Skippable:        cfg.Skippable,
		SkipCooldown:     cfg.SkipCooldown,
	})
	return entityID
}

// NewGameOverEntity 创建游戏结束实体
// retryScene 为空时使用配置中的 FallbackScene
func NewGameOverEntity(em *ecs.EntityManager, cfg *config.GameOverConfig, retryScene string) ecs.EntityID {
	if retryScene == "" {
		retryScene = cfg.FallbackScene
	}
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.GameOverComponent{
		Clip:         cfg.Clip,
		InputDelay:   cfg.InputDelay,
		FadeDuration: cfg.FadeDuration,
		RetryScene:   retryScene,
	})
	return entityID
}

// NewMenuEntity 创建标题菜单实体
func NewMenuEntity(em *ecs.EntityManager, cfg *config.MenuConfig) ecs.EntityID {
	buttons := make([]components.MenuButtonState, 0, len(cfg.Buttons))
	for _, b := range cfg.Buttons {
		buttons = append(buttons, components.MenuButtonState{
			Label: b.Label,
			Zone:  b.Zone,
			Scene: b.Scene,
			Quit:  b.Quit,
		})
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.MenuComponent{
		Buttons:      buttons,
		ClickClip:    cfg.ClickClip,
		FadeDuration: cfg.FadeDuration,
		Hovered:      -1,
		Selected:     -1,
	})
	return entityID
}

// NewCreditsEntity 创建滚动字幕实体
// 字幕从屏幕底部进入，最后一行滚出顶部时结束
func NewCreditsEntity(em *ecs.EntityManager, cfg *config.CreditsConfig, screenHeight float64) ecs.EntityID {
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.CreditsComponent{
		Lines:        append([]string(nil), cfg.Lines...),
		ScrollSpeed:  cfg.ScrollSpeed,
		LineSpacing:  cfg.LineSpacing,
		Distance:     screenHeight + float64(len(cfg.Lines))*cfg.LineSpacing,
		InputDelay:   cfg.InputDelay,
		FadeDuration: cfg.FadeDuration,
		NextScene:    cfg.NextScene,
	})
	return entityID
}
