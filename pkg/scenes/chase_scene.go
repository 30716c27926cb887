package scenes

import (
	"log"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/entities"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// ChaseScene 追逐场景：连按奔跑键在倒计时内填满计量条
//
// 镜头随进度拉近、起伏和抖动；胜利后播放过场，失败进入游戏结束场景。
type ChaseScene struct {
	*sceneBase
	cfg *config.ChaseConfig

	cameraSystem *systems.CameraFeedbackSystem
	shakeSystem  *systems.ShakeSystem
	chaseSystem  *systems.ChaseSystem
	media        *game.SlideshowPlayer

	runnerX, runnerY float64
	hasRunner        bool
}

// NewChaseScene 创建追逐场景
func NewChaseScene(rt *Runtime, sc *config.SceneConfig) *ChaseScene {
	base := newSceneBase(rt, sc)
	cfg := sc.Chase

	s := &ChaseScene{
		sceneBase:    base,
		cfg:          cfg,
		cameraSystem: systems.NewCameraFeedbackSystem(base.entityManager, cfg.Camera),
		shakeSystem:  systems.NewShakeSystem(base.entityManager, cfg.Shake),
		media:        game.NewSlideshowPlayer(rt.Resources, rt.Audio, rt.Config),
	}

	services := base.services
	services.Media = s.media

	chaseEntity := entities.NewChaseEntity(base.entityManager, cfg)
	s.chaseSystem = systems.NewChaseSystem(base.entityManager, chaseEntity, base.fadeSystem, s.cameraSystem, s.shakeSystem, services)
	s.chaseSystem.SetLoseCallback(s.recordFailure)

	if cfg.RunnerSprite != "" {
		s.runnerX, s.runnerY, s.hasRunner = s.stage.Position(cfg.RunnerSprite)
	}
	return s
}

// Start 播放环境音并开始开场流程
func (s *ChaseScene) Start() {
	s.sceneBase.Start()
	s.chaseSystem.Start()
}

// Update 推进开场、追逐、镜头反馈和过场
func (s *ChaseScene) Update(deltaTime float64) {
	in := s.pollInput()

	s.chaseSystem.Update(deltaTime, in)
	s.cameraSystem.Update(deltaTime)
	s.shakeSystem.Update(deltaTime)
	s.media.Update(deltaTime)
	s.updateCommon(deltaTime, in)

	s.applyCamera()
}

// applyCamera 把镜头反馈写入相机视图，奔跑者随起伏反向轻微浮动
func (s *ChaseScene) applyCamera() {
	shakeX, shakeY := s.shakeSystem.Offset()
	bob := s.cameraSystem.BobOffset()

	s.view = game.CameraView{
		Size:    s.cameraSystem.Size(),
		OffsetX: shakeX,
		OffsetY: shakeY + bob,
	}

	if s.hasRunner {
		s.stage.SetTransform(s.cfg.RunnerSprite, s.runnerX, s.runnerY-bob*0.5, 0)
	}
}

// Draw 绘制街道、计量条、过场和覆盖层
func (s *ChaseScene) Draw(screen *ebiten.Image) {
	s.drawWorld(screen)

	if s.chaseSystem.Phase() == components.ChasePhaseChasing {
		s.hud.DrawChaseMeter(screen, s.chaseSystem.Progress(), s.chaseSystem.Countdown())
	}
	if s.chaseSystem.IsPlayingMedia() {
		s.media.Draw(screen)
	}

	s.drawOverlay(screen, "")
}

// Unload 停止追逐中的循环音效
func (s *ChaseScene) Unload() {
	log.Printf("[ChaseScene] 卸载: phase=%v meter=%.1f", s.chaseSystem.Phase(), s.chaseSystem.Meter())
	s.sceneBase.Unload()
}
