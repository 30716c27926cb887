package systems

import (
	"log"

	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// ChaseSystem 追逐小游戏（连按取胜）序列器
//
// 每帧流程（仅 Chasing 阶段）：
//  1. 倒计时 -= dt，计量条 -= DecayRate×dt
//  2. 计量条 += Increment × 本帧奔跑键按下次数，并钳制到 [0, Required]
//  3. 进度映射到镜头缩放、抖动振幅、呼吸声音量/音调
//  4. 先检查胜利（Meter >= Required），再检查失败（Countdown <= 0）
//
// 进入终态后不再处理输入和衰减，结局流程以 OutroStep 显式推进，
// 场景切换只请求一次。
type ChaseSystem struct {
	entityManager *ecs.EntityManager
	chaseEntity   ecs.EntityID

	fade   *FadeSystem
	camera *CameraFeedbackSystem
	shake  *ShakeSystem

	audio     game.AudioChannel
	presenter game.VisualPresenter
	media     game.MediaPlayer
	loader    game.SceneLoader

	onLoseCallback func()
}

// NewChaseSystem 创建追逐系统
// fade/camera/shake 和 services 中的任意能力都可以为 nil，对应效果被跳过
func NewChaseSystem(
	em *ecs.EntityManager,
	chaseEntity ecs.EntityID,
	fade *FadeSystem,
	camera *CameraFeedbackSystem,
	shake *ShakeSystem,
	services game.Services,
) *ChaseSystem {
	return &ChaseSystem{
		entityManager: em,
		chaseEntity:   chaseEntity,
		fade:          fade,
		camera:        camera,
		shake:         shake,
		audio:         services.Audio,
		presenter:     services.Presenter,
		media:         services.Media,
		loader:        services.Loader,
	}
}

// SetLoseCallback 设置失败回调（进入 Lost 时调用一次）
func (s *ChaseSystem) SetLoseCallback(callback func()) {
	s.onLoseCallback = callback
}

// Start 场景开始：播放环境音，有开场过场时先播放过场，
// 之后停顿 StartDelay 再自动 Begin。重复调用无效。
func (s *ChaseSystem) Start() {
	chase, ok := s.component()
	if !ok || chase.Opening != components.OpeningStepNone {
		return
	}

	s.playLoop(chase.AmbientClip)
	chase.OpeningTimer = 0

	if s.media != nil && chase.OpeningMedia != "" {
		if s.presenter != nil && chase.BackgroundSprite != "" {
			s.presenter.SetVisible(chase.BackgroundSprite, false)
		}
		chase.OpeningShown = true
		s.media.Prepare(chase.OpeningMedia)
		chase.Opening = components.OpeningStepMediaPrepare
		log.Printf("[ChaseSystem] Opening media %s", chase.OpeningMedia)
		return
	}
	chase.Opening = components.OpeningStepHold
}

// updateOpening 推进开场流程，结束时调用 Begin
func (s *ChaseSystem) updateOpening(chase *components.ChaseComponent, dt float64) {
	chase.OpeningTimer += dt

	switch chase.Opening {
	case components.OpeningStepMediaPrepare:
		if s.media.IsPrepared() {
			s.media.Play()
			chase.Opening = components.OpeningStepMediaPlay
			chase.OpeningTimer = 0
		}

	case components.OpeningStepMediaPlay:
		if s.media.IsFinished() {
			chase.Opening = components.OpeningStepHold
			chase.OpeningTimer = 0
		}

	case components.OpeningStepHold:
		if chase.OpeningTimer < chase.StartDelay {
			return
		}
		chase.Opening = components.OpeningStepDone
		if chase.OpeningShown && s.presenter != nil && chase.BackgroundSprite != "" {
			s.presenter.SetVisible(chase.BackgroundSprite, true)
		}
		chase.OpeningShown = false
		s.Begin()
	}
}

// Begin 开始追逐：Idle -> Chasing，重复调用无效
func (s *ChaseSystem) Begin() {
	chase, ok := s.component()
	if !ok || chase.Phase != components.ChasePhaseIdle {
		return
	}

	chase.Phase = components.ChasePhaseChasing
	chase.Meter = 0
	chase.Countdown = chase.TimeLimit
	chase.Elapsed = 0
	chase.Progress = 0

	s.playLoop(chase.MusicClip)
	s.playLoop(chase.FootstepClip)
	s.playLoop(chase.BreathClip)
	s.applyFeedback(chase)

	log.Printf("[ChaseSystem] Chase started: required=%.1f, timeLimit=%.1fs", chase.Required, chase.TimeLimit)
}

// Update 推进追逐状态
func (s *ChaseSystem) Update(deltaTime float64, in utils.InputSnapshot) {
	chase, ok := s.component()
	if !ok {
		return
	}

	if chase.Phase == components.ChasePhaseIdle {
		s.updateOpening(chase, deltaTime)
	}
	if chase.Phase == components.ChasePhaseChasing {
		s.updateChasing(chase, deltaTime, in)
	}
	if chase.Phase.IsTerminal() {
		s.updateOutro(chase, deltaTime)
	}
}

func (s *ChaseSystem) updateChasing(chase *components.ChaseComponent, dt float64, in utils.InputSnapshot) {
	chase.Elapsed += dt
	chase.Countdown -= dt
	chase.Meter -= chase.DecayRate * dt
	if in.RunPresses > 0 {
		chase.Meter += chase.Increment * float64(in.RunPresses)
	}
	chase.Meter = utils.Clamp(chase.Meter, 0, max(chase.Required, 0))
	chase.Progress = ChaseProgress(chase.Meter, chase.Required)
	s.applyFeedback(chase)

	// 胜利优先于失败
	if chase.Meter >= chase.Required {
		s.enterTerminal(chase, components.ChasePhaseWon)
	} else if chase.Countdown <= 0 {
		s.enterTerminal(chase, components.ChasePhaseLost)
	}

	if chase.Phase == components.ChasePhaseChasing {
		s.fireNarration(chase)
	}
}

// fireNarration 触发所有已到时间点的旁白
func (s *ChaseSystem) fireNarration(chase *components.ChaseComponent) {
	for !chase.NarrationAborted &&
		chase.NarrationFired < len(chase.NarrationOffsets) &&
		chase.Elapsed >= chase.NarrationOffsets[chase.NarrationFired] {
		if chase.NarrationIndex < len(chase.NarrationClips) {
			s.playNarration(chase, chase.NarrationClips[chase.NarrationIndex])
		}
		chase.NarrationIndex = NextNarrationIndex(chase.NarrationIndex, len(chase.NarrationClips))
		chase.NarrationFired++
	}
}

func (s *ChaseSystem) enterTerminal(chase *components.ChaseComponent, phase components.ChasePhase) {
	chase.Phase = phase
	chase.Outro = components.OutroStepStart
	chase.OutroTimer = 0
	chase.NarrationAborted = true
	log.Printf("[ChaseSystem] Chase ended: %s (meter=%.1f, countdown=%.2f)", phase, chase.Meter, chase.Countdown)
}

// updateOutro 推进结局流程
func (s *ChaseSystem) updateOutro(chase *components.ChaseComponent, dt float64) {
	chase.OutroTimer += dt

	switch chase.Outro {
	case components.OutroStepStart:
		s.stopLoops(chase)
		if s.shake != nil {
			s.shake.SetAmplitude(0)
		}
		if chase.Phase == components.ChasePhaseWon {
			if n := len(chase.NarrationClips); n > 0 {
				s.playNarration(chase, chase.NarrationClips[n-1])
			}
			s.startFadeOut(chase)
			s.setOutro(chase, components.OutroStepFadeOut)
		} else {
			s.playClip(chase.FailureClip)
			if s.onLoseCallback != nil {
				s.onLoseCallback()
			}
			s.setOutro(chase, components.OutroStepPause)
		}

	case components.OutroStepPause:
		if chase.OutroTimer >= chase.LosePause {
			s.startFadeOut(chase)
			s.setOutro(chase, components.OutroStepFadeOut)
		}

	case components.OutroStepFadeOut:
		if !s.fadeComplete() {
			return
		}
		if chase.Phase == components.ChasePhaseWon && s.media != nil && chase.EndingMedia != "" {
			if s.presenter != nil && chase.BackgroundSprite != "" {
				s.presenter.SetVisible(chase.BackgroundSprite, false)
			}
			s.media.Prepare(chase.EndingMedia)
			s.setOutro(chase, components.OutroStepMediaPrepare)
			return
		}
		s.finish(chase)

	case components.OutroStepMediaPrepare:
		// 媒体准备没有超时
		if s.media.IsPrepared() {
			s.media.Play()
			if s.fade != nil {
				s.fade.FadeTo(0, chase.FadeDuration)
			}
			s.setOutro(chase, components.OutroStepMediaPlay)
		}

	case components.OutroStepMediaPlay:
		if s.media.IsFinished() {
			s.startFadeOut(chase)
			s.setOutro(chase, components.OutroStepMediaFadeOut)
		}

	case components.OutroStepMediaFadeOut:
		if s.fadeComplete() {
			s.finish(chase)
		}
	}
}

// finish 请求场景切换（只触发一次）
func (s *ChaseSystem) finish(chase *components.ChaseComponent) {
	s.setOutro(chase, components.OutroStepDone)
	if chase.TransitionFired {
		return
	}
	chase.TransitionFired = true

	target := chase.NextScene
	if chase.Phase == components.ChasePhaseLost {
		target = chase.GameOverScene
	}
	if target == "" || s.loader == nil {
		log.Printf("[ChaseSystem] No target scene for %s, transition suppressed", chase.Phase)
		return
	}
	s.loader.LoadScene(target)
}

func (s *ChaseSystem) setOutro(chase *components.ChaseComponent, step components.OutroStep) {
	chase.Outro = step
	chase.OutroTimer = 0
}

func (s *ChaseSystem) startFadeOut(chase *components.ChaseComponent) {
	if s.fade != nil {
		s.fade.FadeTo(1, chase.FadeDuration)
	}
}

func (s *ChaseSystem) fadeComplete() bool {
	return s.fade == nil || s.fade.IsComplete()
}

// applyFeedback 将进度映射到镜头、抖动和呼吸声
func (s *ChaseSystem) applyFeedback(chase *components.ChaseComponent) {
	p := chase.Progress
	if s.camera != nil {
		s.camera.SetProgress(p)
	}
	if s.shake != nil {
		s.shake.SetAmplitude(p * chase.ShakeMax)
	}
	if s.audio != nil && chase.BreathClip != "" {
		s.audio.SetVolume(chase.BreathClip, BreathVolume(chase, p))
		s.audio.SetPitch(chase.BreathClip, BreathPitch(chase, p))
	}
}

func (s *ChaseSystem) stopLoops(chase *components.ChaseComponent) {
	if s.audio == nil {
		return
	}
	for _, clip := range []string{chase.BreathClip, chase.FootstepClip, chase.MusicClip} {
		if clip != "" {
			s.audio.Stop(clip)
		}
	}
}

// playNarration 同一时间只播放一条旁白
func (s *ChaseSystem) playNarration(chase *components.ChaseComponent, clip string) {
	if s.audio == nil || clip == "" {
		return
	}
	for _, other := range chase.NarrationClips {
		if other != clip && s.audio.IsPlaying(other) {
			s.audio.Stop(other)
		}
	}
	s.audio.Play(clip)
}

func (s *ChaseSystem) playClip(clip string) {
	if s.audio != nil && clip != "" {
		s.audio.Play(clip)
	}
}

func (s *ChaseSystem) playLoop(clip string) {
	if s.audio != nil && clip != "" {
		s.audio.PlayLoop(clip)
	}
}

func (s *ChaseSystem) component() (*components.ChaseComponent, bool) {
	return ecs.GetComponent[*components.ChaseComponent](s.entityManager, s.chaseEntity)
}

// Phase 当前阶段
func (s *ChaseSystem) Phase() components.ChasePhase {
	if chase, ok := s.component(); ok {
		return chase.Phase
	}
	return components.ChasePhaseIdle
}

// Meter 当前计量条数值
func (s *ChaseSystem) Meter() float64 {
	if chase, ok := s.component(); ok {
		return chase.Meter
	}
	return 0
}

// Countdown 剩余时间（秒）
func (s *ChaseSystem) Countdown() float64 {
	if chase, ok := s.component(); ok {
		return chase.Countdown
	}
	return 0
}

// Progress 当前进度 [0, 1]
func (s *ChaseSystem) Progress() float64 {
	if chase, ok := s.component(); ok {
		return chase.Progress
	}
	return 0
}

// IsPlayingMedia 开场或胜利过场是否占据画面（场景据此绘制媒体画面）
func (s *ChaseSystem) IsPlayingMedia() bool {
	chase, ok := s.component()
	if !ok {
		return false
	}
	switch chase.Phase {
	case components.ChasePhaseIdle:
		return chase.OpeningShown &&
			(chase.Opening == components.OpeningStepMediaPlay || chase.Opening == components.OpeningStepHold)
	case components.ChasePhaseWon:
		return chase.Outro == components.OutroStepMediaPlay || chase.Outro == components.OutroStepMediaFadeOut
	default:
		return false
	}
}

// ChaseProgress 计量条进度，Required <= 0 时为 0
func ChaseProgress(meter, required float64) float64 {
	if required <= 0 {
		return 0
	}
	return utils.Clamp01(utils.InverseLerp(0, required, meter))
}

// NextNarrationIndex 下一条旁白下标，最后一条保留给胜利
func NextNarrationIndex(index, total int) int {
	return min(index+1, max(0, total-2))
}

// BreathVolume 呼吸声音量：进度越高越轻
func BreathVolume(chase *components.ChaseComponent, progress float64) float64 {
	return utils.Lerp(chase.BreathVolumeMax, chase.BreathVolumeMin, progress)
}

// BreathPitch 呼吸声音调：进度越高越低
func BreathPitch(chase *components.ChaseComponent, progress float64) float64 {
	return utils.Lerp(chase.BreathPitchMax, chase.BreathPitchMin, progress)
}
