package systems

import (
	"log"

	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// DragDropSystem 拖放放置序列器（咖啡杯）
//
// 状态流转：
//
//	Idle --按下命中--> Dragging --松手--> Filling（成功）/ Done（失败）/ Idle（复位）
//	Filling --倒满--> Done --停留--> 场景切换
//
// 每次松手只产生一种结果；Filling 与 Done 阶段忽略输入。
type DragDropSystem struct {
	entityManager *ecs.EntityManager
	mugEntity     ecs.EntityID

	zones     game.OverlapTester
	presenter game.VisualPresenter
	audio     game.AudioChannel
	loader    game.SceneLoader

	onFailureCallback func()
}

// NewDragDropSystem 创建拖放系统
func NewDragDropSystem(em *ecs.EntityManager, mugEntity ecs.EntityID, services game.Services) *DragDropSystem {
	return &DragDropSystem{
		entityManager: em,
		mugEntity:     mugEntity,
		zones:         services.Zones,
		presenter:     services.Presenter,
		audio:         services.Audio,
		loader:        services.Loader,
	}
}

// SetFailureCallback 设置失败回调（失败结果产生时调用一次）
func (s *DragDropSystem) SetFailureCallback(callback func()) {
	s.onFailureCallback = callback
}

// Update 处理本帧输入并推进倒咖啡/结局计时
func (s *DragDropSystem) Update(deltaTime float64, in utils.InputSnapshot) {
	mug, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, s.mugEntity)
	if !ok {
		return
	}

	switch mug.State {
	case components.DragStateIdle:
		if in.PointerPressed {
			s.tryBeginDrag(mug, in.PointerX, in.PointerY)
		}

	case components.DragStateDragging:
		mug.PointerX, mug.PointerY = in.PointerX, in.PointerY
		targetX := in.PointerX + mug.GrabOffsetX
		targetY := in.PointerY + mug.GrabOffsetY
		mug.X = utils.ExpApproach(mug.X, targetX, mug.FollowRate, deltaTime)
		mug.Y = utils.ExpApproach(mug.Y, targetY, mug.FollowRate, deltaTime)
		s.syncTransform(mug)

		if in.PointerReleased || !in.PointerHeld {
			s.release(mug)
		}

	case components.DragStateFilling:
		s.updateFilling(mug, deltaTime)

	case components.DragStateDone:
		s.updateDone(mug, deltaTime)
	}
}

// tryBeginDrag 指针落在杯子上时开始拖动
func (s *DragDropSystem) tryBeginDrag(mug *components.DraggableComponent, px, py float64) {
	if !mug.Bounds.Offset(mug.X, mug.Y).Contains(px, py) {
		return
	}

	mug.Grab = ClassifyGrab(mug, px, py)
	mug.GrabOffsetX = mug.X - px
	mug.GrabOffsetY = mug.Y - py
	mug.PointerX, mug.PointerY = px, py
	mug.State = components.DragStateDragging
	mug.LastOutcome = components.DropNone

	if s.audio != nil && mug.GrabClip != "" {
		s.audio.Play(mug.GrabClip)
	}
	log.Printf("[DragDropSystem] Grab started: kind=%d safe=%v", mug.Grab, mug.Grab.IsSafe())
}

// release 松手，产生且只产生一种结果
func (s *DragDropSystem) release(mug *components.DraggableComponent) {
	outcome := ResolveDrop(mug, s.zones)
	mug.LastOutcome = outcome
	log.Printf("[DragDropSystem] Released at (%.1f, %.1f): %s", mug.X, mug.Y, outcome)

	switch outcome {
	case components.DropSuccess:
		mug.X, mug.Y, mug.Rotation = mug.TargetX, mug.TargetY, mug.TargetRotation
		mug.FillLevel = 0
		mug.State = components.DragStateFilling
		s.syncTransform(mug)
		if s.presenter != nil && mug.FillSprite != "" {
			s.presenter.SetFill(mug.FillSprite, 0)
			s.presenter.SetVisible(mug.FillSprite, true)
		}
		if s.audio != nil && mug.PourClip != "" {
			s.audio.Play(mug.PourClip)
		}

	case components.DropFailure:
		mug.State = components.DragStateDone
		mug.OutcomeTimer = 0
		s.setImage(mug, mug.FailureImage)
		if s.audio != nil && mug.FailureClip != "" {
			s.audio.Play(mug.FailureClip)
		}
		if s.onFailureCallback != nil {
			s.onFailureCallback()
		}

	default:
		mug.X, mug.Y, mug.Rotation = mug.StartX, mug.StartY, mug.StartRotation
		mug.State = components.DragStateIdle
		s.syncTransform(mug)
		s.setImage(mug, mug.NormalImage)
	}
}

// updateFilling 液面在 FillDuration 内线性从 0 升到 1
func (s *DragDropSystem) updateFilling(mug *components.DraggableComponent, dt float64) {
	if mug.FillDuration > 0 {
		mug.FillLevel = utils.Clamp01(mug.FillLevel + dt/mug.FillDuration)
	} else {
		mug.FillLevel = 1
	}
	if s.presenter != nil && mug.FillSprite != "" {
		s.presenter.SetFill(mug.FillSprite, mug.FillLevel)
	}

	if mug.FillLevel >= 1 {
		s.setImage(mug, mug.FilledImage)
		mug.State = components.DragStateDone
		mug.OutcomeTimer = 0
	}
}

// updateDone 结局停留结束后请求场景切换（只一次）
func (s *DragDropSystem) updateDone(mug *components.DraggableComponent, dt float64) {
	if mug.TransitionFired {
		return
	}
	mug.OutcomeTimer += dt

	delay, target := mug.AdvanceDelay, mug.NextScene
	if mug.LastOutcome == components.DropFailure {
		delay, target = mug.FailureDelay, mug.GameOverScene
	}
	if mug.OutcomeTimer < delay {
		return
	}

	mug.TransitionFired = true
	if target == "" || s.loader == nil {
		log.Printf("[DragDropSystem] No target scene for %s, transition suppressed", mug.LastOutcome)
		return
	}
	s.loader.LoadScene(target)
}

func (s *DragDropSystem) syncTransform(mug *components.DraggableComponent) {
	if s.presenter != nil {
		s.presenter.SetTransform(mug.Sprite, mug.X, mug.Y, mug.Rotation)
	}
}

func (s *DragDropSystem) setImage(mug *components.DraggableComponent, imageID string) {
	if s.presenter != nil && imageID != "" {
		s.presenter.SetImage(mug.Sprite, imageID)
	}
}

// State 当前拖放状态
func (s *DragDropSystem) State() components.DragState {
	if mug, ok := ecs.GetComponent[*components.DraggableComponent](s.entityManager, s.mugEntity); ok {
		return mug.State
	}
	return components.DragStateIdle
}

// ClassifyGrab 按抓取点分类：把手优先，其次杯沿，其余为杯身
func ClassifyGrab(mug *components.DraggableComponent, px, py float64) components.GrabKind {
	lx, ly := px-mug.X, py-mug.Y
	switch {
	case mug.Handle.Contains(lx, ly):
		return components.GrabHandle
	case mug.Rim.Contains(lx, ly):
		return components.GrabRim
	default:
		return components.GrabBody
	}
}

// ResolveDrop 判定松手结果
//   - 参考点落入成功区域 -> Success
//   - 危险抓取且杯子范围与失败区域重叠 -> Failure
//   - 其他 -> Reset
//
// zones 为 nil 时总是 Reset
func ResolveDrop(mug *components.DraggableComponent, zones game.OverlapTester) components.DropOutcome {
	if zones == nil {
		return components.DropReset
	}
	if mug.SuccessZone != "" && zones.PointInZone(mug.SuccessZone, mug.X, mug.Y) {
		return components.DropSuccess
	}
	if !mug.Grab.IsSafe() && mug.FailureZone != "" &&
		zones.RectOverlapsZone(mug.FailureZone, mug.Bounds.Offset(mug.X, mug.Y)) {
		return components.DropFailure
	}
	return components.DropReset
}
