package systems

import (
	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// FadeSystem 管理全屏淡入淡出遮罩
// 每个场景一个实例；各序列器调用 FadeTo 启动淡变，再轮询 IsComplete
type FadeSystem struct {
	entityManager *ecs.EntityManager
	fadeEntity    ecs.EntityID
}

// NewFadeSystem 创建淡入淡出系统（初始完全透明）
func NewFadeSystem(em *ecs.EntityManager) *FadeSystem {
	fs := &FadeSystem{entityManager: em}
	fs.fadeEntity = em.CreateEntity()
	ecs.AddComponent(em, fs.fadeEntity, &components.FadeComponent{})
	return fs
}

// FadeTo 从当前透明度淡变到 target，用时 duration 秒
func (fs *FadeSystem) FadeTo(target, duration float64) {
	fade, ok := ecs.GetComponent[*components.FadeComponent](fs.entityManager, fs.fadeEntity)
	if !ok {
		return
	}
	fade.From = fade.Alpha
	fade.Target = utils.Clamp01(target)
	fade.Duration = duration
	fade.Elapsed = 0
	fade.Active = true
	if duration <= 0 {
		fade.Alpha = fade.Target
		fade.Active = false
	}
}

// SetAlpha 立即设置透明度并停止进行中的淡变
func (fs *FadeSystem) SetAlpha(alpha float64) {
	fade, ok := ecs.GetComponent[*components.FadeComponent](fs.entityManager, fs.fadeEntity)
	if !ok {
		return
	}
	fade.Alpha = utils.Clamp01(alpha)
	fade.Target = fade.Alpha
	fade.Active = false
}

// Update 推进淡变（缓入缓出）
func (fs *FadeSystem) Update(dt float64) {
	fade, ok := ecs.GetComponent[*components.FadeComponent](fs.entityManager, fs.fadeEntity)
	if !ok || !fade.Active {
		return
	}

	fade.Elapsed += dt
	t := utils.Clamp01(fade.Elapsed / fade.Duration)
	fade.Alpha = utils.Lerp(fade.From, fade.Target, utils.EaseInOutQuad(t))
	if t >= 1 {
		fade.Alpha = fade.Target
		fade.Active = false
	}
}

// IsComplete 当前没有进行中的淡变
func (fs *FadeSystem) IsComplete() bool {
	fade, ok := ecs.GetComponent[*components.FadeComponent](fs.entityManager, fs.fadeEntity)
	return !ok || !fade.Active
}

// Alpha 当前遮罩不透明度
func (fs *FadeSystem) Alpha() float64 {
	fade, ok := ecs.GetComponent[*components.FadeComponent](fs.entityManager, fs.fadeEntity)
	if !ok {
		return 0
	}
	return fade.Alpha
}
