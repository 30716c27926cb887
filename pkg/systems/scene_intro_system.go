package systems

import (
	"log"

	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// SceneIntroSystem 场景开场旁白：延迟后播放一次，播放期间显示字幕
//
// 可跳过的旁白在开始 SkipCooldown 秒后接受点击或跳过键。
// 场景可以用 IsFinished 在旁白结束前锁住交互。
type SceneIntroSystem struct {
	entityManager *ecs.EntityManager
	audio         game.AudioChannel
}

// NewSceneIntroSystem 创建开场旁白系统
func NewSceneIntroSystem(em *ecs.EntityManager, services game.Services) *SceneIntroSystem {
	return &SceneIntroSystem{entityManager: em, audio: services.Audio}
}

// Update 推进延迟计时、跳过输入与字幕显示
func (s *SceneIntroSystem) Update(deltaTime float64, in utils.InputSnapshot) {
	for _, id := range ecs.GetEntitiesWith1[*components.SceneIntroComponent](s.entityManager) {
		intro, _ := ecs.GetComponent[*components.SceneIntroComponent](s.entityManager, id)
		if intro.Finished {
			continue
		}
		intro.Timer += deltaTime
		intro.SinceInput += deltaTime

		if !intro.Played {
			if intro.Timer < intro.Delay {
				continue
			}
			intro.Played = true
			intro.Showing = intro.Subtitle != ""
			intro.Timer = 0
			intro.SinceInput = 0
			if s.audio != nil && intro.Clip != "" {
				s.audio.Play(intro.Clip)
			}
			log.Printf("[SceneIntroSystem] Narration %q started", intro.Clip)
			continue
		}

		if intro.Skippable && in.Clicked() && intro.SinceInput >= intro.SkipCooldown {
			s.skip(intro)
			continue
		}

		playing := s.clipPlaying(intro)
		if intro.Showing && !playing && intro.Timer >= intro.SubtitleDuration {
			intro.Showing = false
		}
		if !intro.Showing && !playing {
			intro.Finished = true
		}
	}
}

func (s *SceneIntroSystem) skip(intro *components.SceneIntroComponent) {
	if s.clipPlaying(intro) {
		s.audio.Stop(intro.Clip)
	}
	intro.Showing = false
	intro.Finished = true
	log.Printf("[SceneIntroSystem] Narration %q skipped", intro.Clip)
}

// clipPlaying 没有音频服务时视为未播放，字幕按 SubtitleDuration 显示
func (s *SceneIntroSystem) clipPlaying(intro *components.SceneIntroComponent) bool {
	return s.audio != nil && intro.Clip != "" && s.audio.IsPlaying(intro.Clip)
}

// IsFinished 所有开场旁白都已播完或被跳过（没有旁白时为 true）
func (s *SceneIntroSystem) IsFinished() bool {
	for _, id := range ecs.GetEntitiesWith1[*components.SceneIntroComponent](s.entityManager) {
		intro, _ := ecs.GetComponent[*components.SceneIntroComponent](s.entityManager, id)
		if !intro.Finished {
			return false
		}
	}
	return true
}

// Subtitle 当前应显示的字幕（没有则返回空字符串）
func (s *SceneIntroSystem) Subtitle() string {
	for _, id := range ecs.GetEntitiesWith1[*components.SceneIntroComponent](s.entityManager) {
		intro, _ := ecs.GetComponent[*components.SceneIntroComponent](s.entityManager, id)
		if intro.Showing {
			return intro.Subtitle
		}
	}
	return ""
}
