package game

import "github.com/gonewx/latecoffee/pkg/utils"

// 场景脚本依赖的外部能力
//
// 系统只通过这些接口与渲染、音频、媒体、场景切换交互，
// 构造时注入；任何一个为 nil 时对应效果被静默跳过。

// SceneLoader 场景切换服务
type SceneLoader interface {
	// LoadScene 立即切换到指定场景；空 ID 被静默忽略
	LoadScene(sceneID string)
}

// AudioChannel 音频播放服务（按 clip ID 寻址）
type AudioChannel interface {
	Play(clipID string)
	PlayLoop(clipID string)
	Stop(clipID string)
	IsPlaying(clipID string) bool
	SetVolume(clipID string, volume float64)
	SetPitch(clipID string, pitch float64)
}

// VisualPresenter 2D 精灵展示服务（按精灵 ID 寻址）
type VisualPresenter interface {
	SetVisible(spriteID string, visible bool)
	SetImage(spriteID, imageID string)
	SetTransform(spriteID string, x, y, rotation float64)
	// SetFill 设置精灵的填充参数 [0, 1]（如杯中咖啡液面）
	SetFill(spriteID string, level float64)
}

// MediaPlayer 过场媒体播放服务：准备 -> 播放 -> 完成
type MediaPlayer interface {
	Prepare(clipID string)
	IsPrepared() bool
	Play()
	IsFinished() bool
}

// OverlapTester 区域重叠检测服务（按区域名寻址）
type OverlapTester interface {
	PointInZone(zone string, x, y float64) bool
	RectOverlapsZone(zone string, r utils.Rect) bool
}

// Services 场景构造时注入给各系统的能力集合
type Services struct {
	Loader    SceneLoader
	Audio     AudioChannel
	Presenter VisualPresenter
	Media     MediaPlayer
	Zones     OverlapTester
}
