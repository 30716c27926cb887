package systems

import (
	"log"

	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// DialogueSystem 线性对话/漫画分镜推进
//
// 同一时刻只显示一个分镜。分镜有配音时，配音播放期间的点击只跳过配音；
// 配音结束（或被跳过）后的点击推进到下一个分镜。
// 所有被接受的输入都受 SkipCooldown 限制，一次物理点击不会被记两次。
type DialogueSystem struct {
	entityManager  *ecs.EntityManager
	dialogueEntity ecs.EntityID
	fade           *FadeSystem

	audio     game.AudioChannel
	presenter game.VisualPresenter
	loader    game.SceneLoader
}

// NewDialogueSystem 创建对话系统
func NewDialogueSystem(em *ecs.EntityManager, dialogueEntity ecs.EntityID, fade *FadeSystem, services game.Services) *DialogueSystem {
	return &DialogueSystem{
		entityManager:  em,
		dialogueEntity: dialogueEntity,
		fade:           fade,
		audio:          services.Audio,
		presenter:      services.Presenter,
		loader:         services.Loader,
	}
}

// Start 显示第一个分镜并播放它的配音
func (s *DialogueSystem) Start() {
	d, ok := s.component()
	if !ok || len(d.Sprites) == 0 {
		return
	}
	d.Cursor = 0
	s.showOnly(d, 0)
	s.playVoice(d)
}

// Update 处理本帧输入
func (s *DialogueSystem) Update(deltaTime float64, in utils.InputSnapshot) {
	d, ok := s.component()
	if !ok {
		return
	}
	d.SinceLastInput += deltaTime

	if d.Finished {
		s.updateFinishing(d)
		return
	}

	// 配音自然播放完毕
	if d.VoiceClip != "" && (s.audio == nil || !s.audio.IsPlaying(d.VoiceClip)) {
		d.VoiceClip = ""
	}

	if !in.Clicked() || d.SinceLastInput < d.SkipCooldown {
		return
	}
	d.SinceLastInput = 0

	if d.VoiceClip != "" {
		s.audio.Stop(d.VoiceClip)
		log.Printf("[DialogueSystem] Voice %s skipped", d.VoiceClip)
		d.VoiceClip = ""
		return
	}

	s.advance(d)
}

func (s *DialogueSystem) advance(d *components.DialogueComponent) {
	d.Cursor++
	if d.Cursor < len(d.Sprites) {
		s.showOnly(d, d.Cursor)
		s.playVoice(d)
		return
	}

	// 越过最后一个分镜：保持最后一个分镜可见，淡出后切换场景
	d.Cursor = len(d.Sprites)
	d.Finished = true
	if s.fade != nil {
		s.fade.FadeTo(1, d.FadeDuration)
	}
	log.Printf("[DialogueSystem] Dialogue finished, fading out (%.2fs)", d.FadeDuration)
}

func (s *DialogueSystem) updateFinishing(d *components.DialogueComponent) {
	if d.TransitionFired {
		return
	}
	if s.fade != nil && !s.fade.IsComplete() {
		return
	}
	d.TransitionFired = true
	if d.NextScene == "" || s.loader == nil {
		log.Printf("[DialogueSystem] No next scene, staying on last panel")
		return
	}
	s.loader.LoadScene(d.NextScene)
}

func (s *DialogueSystem) showOnly(d *components.DialogueComponent, index int) {
	if s.presenter == nil {
		return
	}
	for i, sprite := range d.Sprites {
		s.presenter.SetVisible(sprite, i == index)
	}
}

func (s *DialogueSystem) playVoice(d *components.DialogueComponent) {
	d.VoiceClip = ""
	if d.Cursor >= len(d.Voices) || d.Voices[d.Cursor] == "" || s.audio == nil {
		return
	}
	d.VoiceClip = d.Voices[d.Cursor]
	s.audio.Play(d.VoiceClip)
}

func (s *DialogueSystem) component() (*components.DialogueComponent, bool) {
	return ecs.GetComponent[*components.DialogueComponent](s.entityManager, s.dialogueEntity)
}

// Cursor 当前分镜下标（结束后等于分镜数量）
func (s *DialogueSystem) Cursor() int {
	if d, ok := s.component(); ok {
		return d.Cursor
	}
	return 0
}

// CurrentText 当前分镜字幕
func (s *DialogueSystem) CurrentText() string {
	d, ok := s.component()
	if !ok || len(d.Texts) == 0 {
		return ""
	}
	i := min(d.Cursor, len(d.Texts)-1)
	return d.Texts[i]
}
