package scenes

import (
	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/entities"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/systems"
	"github.com/gonewx/latecoffee/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// sceneFadeIn 场景开始时从黑屏淡入的时长（秒）
const sceneFadeIn = 0.5

// sceneBase 各类场景共用的部分：
// 实体管理器、舞台、区域表、淡入淡出、开场旁白、门
type sceneBase struct {
	id      string
	runtime *Runtime

	entityManager *ecs.EntityManager
	stage         *game.Stage
	zones         *game.ZoneMap
	hud           *HUD
	services      game.Services
	view          game.CameraView

	fadeSystem  *systems.FadeSystem
	introSystem *systems.SceneIntroSystem
	doorSystem  *systems.DoorSystem

	music string
}

func newSceneBase(rt *Runtime, sc *config.SceneConfig) *sceneBase {
	width, height := rt.Config.Window.Width, rt.Config.Window.Height

	b := &sceneBase{
		id:            sc.ID,
		runtime:       rt,
		entityManager: ecs.NewEntityManager(),
		stage:         game.NewStage(rt.Resources, width, height, sc),
		zones:         game.NewZoneMap(sc.Rects()),
		hud:           NewHUD(width, height),
		view:          game.IdentityView,
		music:         sc.Music,
	}
	b.services = game.Services{
		Loader:    rt.Loader,
		Audio:     rt.Audio,
		Presenter: b.stage,
		Zones:     b.zones,
	}

	b.fadeSystem = systems.NewFadeSystem(b.entityManager)
	b.fadeSystem.SetAlpha(1)
	b.fadeSystem.FadeTo(0, sceneFadeIn)

	b.introSystem = systems.NewSceneIntroSystem(b.entityManager, b.services)
	if sc.Intro != nil {
		entities.NewSceneIntroEntity(b.entityManager, sc.Intro)
	}

	b.doorSystem = systems.NewDoorSystem(b.entityManager, b.services)
	if sc.Door != nil {
		entities.NewDoorEntity(b.entityManager, sc.Door)
		b.stage.SetImage(sc.Door.Sprite, entities.DoorImage(sc.Door))
	}

	return b
}

// Start 场景成为当前场景后开始播放背景音乐
func (b *sceneBase) Start() {
	if b.runtime.Audio != nil && b.music != "" {
		b.runtime.Audio.PlayLoop(b.music)
	}
}

// pollInput 采集输入，并把指针换算为世界坐标
func (b *sceneBase) pollInput() utils.InputSnapshot {
	if b.runtime.Input == nil {
		return utils.InputSnapshot{}
	}
	in := b.runtime.Input.Poll()
	x, y := b.stage.ScreenToWorld(in.PointerX, in.PointerY, b.view)
	return in.WithPointer(x, y)
}

// updateCommon 推进所有场景共有的系统
func (b *sceneBase) updateCommon(dt float64, in utils.InputSnapshot) {
	b.introSystem.Update(dt, in)
	b.doorSystem.Update(dt, in)
	b.fadeSystem.Update(dt)
}

// drawWorld 绘制舞台（受相机影响）
func (b *sceneBase) drawWorld(screen *ebiten.Image) {
	b.stage.Draw(screen, b.view)
}

// drawOverlay 绘制字幕和淡入淡出覆盖层
func (b *sceneBase) drawOverlay(screen *ebiten.Image, subtitle string) {
	if s := b.introSystem.Subtitle(); s != "" {
		subtitle = s
	}
	b.hud.DrawSubtitle(screen, subtitle)
	b.hud.DrawFade(screen, b.fadeSystem.Alpha())
}

// recordFailure 记录当前场景失败（游戏结束场景据此重试）
func (b *sceneBase) recordFailure() {
	if b.runtime.Session != nil {
		b.runtime.Session.RecordFailure()
	}
}

// Unload 停止场景中仍在播放的音频
func (b *sceneBase) Unload() {
	if stopper, ok := b.runtime.Audio.(interface{ StopAll() }); ok {
		stopper.StopAll()
	}
}
