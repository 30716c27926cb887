package systems

import (
	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// shakeAxisSpacing Y 轴噪声采样行与 X 轴的距离，保证两个轴不相关
const shakeAxisSpacing = 101.3

// ShakeSystem 镜头抖动：二维平滑噪声 × 外部设置的振幅
type ShakeSystem struct {
	entityManager *ecs.EntityManager
	shakeEntity   ecs.EntityID
}

// NewShakeSystem 创建抖动系统（初始振幅 0）
func NewShakeSystem(em *ecs.EntityManager, cfg config.ShakeConfig) *ShakeSystem {
	ss := &ShakeSystem{entityManager: em}
	ss.shakeEntity = em.CreateEntity()
	ecs.AddComponent(em, ss.shakeEntity, &components.ShakeComponent{
		Frequency: cfg.Frequency,
		Seed:      cfg.Seed,
	})
	return ss
}

// SetAmplitude 设置抖动振幅（像素），负值视为 0
func (ss *ShakeSystem) SetAmplitude(amplitude float64) {
	if shake, ok := ecs.GetComponent[*components.ShakeComponent](ss.entityManager, ss.shakeEntity); ok {
		if amplitude < 0 {
			amplitude = 0
		}
		shake.Amplitude = amplitude
	}
}

// Update 计算本帧抖动偏移
func (ss *ShakeSystem) Update(dt float64) {
	shake, ok := ecs.GetComponent[*components.ShakeComponent](ss.entityManager, ss.shakeEntity)
	if !ok {
		return
	}

	shake.Time += dt
	if shake.Amplitude == 0 {
		shake.OffsetX, shake.OffsetY = 0, 0
		return
	}

	t := shake.Time * shake.Frequency
	shake.OffsetX = utils.SignedNoise2D(t, shake.Seed) * shake.Amplitude
	shake.OffsetY = utils.SignedNoise2D(t, shake.Seed+shakeAxisSpacing) * shake.Amplitude
}

// Offset 当前抖动偏移（像素）
func (ss *ShakeSystem) Offset() (float64, float64) {
	if shake, ok := ecs.GetComponent[*components.ShakeComponent](ss.entityManager, ss.shakeEntity); ok {
		return shake.OffsetX, shake.OffsetY
	}
	return 0, 0
}

// Amplitude 当前振幅
func (ss *ShakeSystem) Amplitude() float64 {
	if shake, ok := ecs.GetComponent[*components.ShakeComponent](ss.entityManager, ss.shakeEntity); ok {
		return shake.Amplitude
	}
	return 0
}
