package systems

import (
	"math"

	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// CameraFeedbackSystem 镜头缩放与起伏
//
// 输出是外部输入 [0, 1] 的逐帧纯函数：
//
//	Size      = Lerp(BaseSize, MinSize, smoothed)
//	BobOffset = sin(2π·BobFrequency·t) × BobAmplitude × smoothed
//
// 唯一的内部状态是上一帧的平滑输入值。
type CameraFeedbackSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID
}

// NewCameraFeedbackSystem 创建镜头反馈系统
func NewCameraFeedbackSystem(em *ecs.EntityManager, cfg config.CameraFeedbackConfig) *CameraFeedbackSystem {
	cs := &CameraFeedbackSystem{entityManager: em}
	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraFeedbackComponent{
		BaseSize:     cfg.BaseSize,
		MinSize:      cfg.MinSize,
		SmoothRate:   cfg.SmoothRate,
		BobAmplitude: cfg.BobAmplitude,
		BobFrequency: cfg.BobFrequency,
		Size:         cfg.BaseSize,
	})
	return cs
}

// SetProgress 设置归一化输入（由追逐系统每帧写入）
func (cs *CameraFeedbackSystem) SetProgress(progress float64) {
	if cam, ok := ecs.GetComponent[*components.CameraFeedbackComponent](cs.entityManager, cs.cameraEntity); ok {
		cam.Input = utils.Clamp01(progress)
	}
}

// Update 推进平滑并计算输出
func (cs *CameraFeedbackSystem) Update(dt float64) {
	cam, ok := ecs.GetComponent[*components.CameraFeedbackComponent](cs.entityManager, cs.cameraEntity)
	if !ok {
		return
	}

	cam.Smoothed = utils.ExpApproach(cam.Smoothed, cam.Input, cam.SmoothRate, dt)
	cam.Time += dt
	cam.Size = utils.Lerp(cam.BaseSize, cam.MinSize, cam.Smoothed)
	cam.BobOffset = math.Sin(2*math.Pi*cam.BobFrequency*cam.Time) * cam.BobAmplitude * cam.Smoothed
}

// Size 当前视野大小（1 = 全屏）
func (cs *CameraFeedbackSystem) Size() float64 {
	if cam, ok := ecs.GetComponent[*components.CameraFeedbackComponent](cs.entityManager, cs.cameraEntity); ok {
		return cam.Size
	}
	return 1
}

// BobOffset 当前垂直起伏偏移（像素）
func (cs *CameraFeedbackSystem) BobOffset() float64 {
	if cam, ok := ecs.GetComponent[*components.CameraFeedbackComponent](cs.entityManager, cs.cameraEntity); ok {
		return cam.BobOffset
	}
	return 0
}
