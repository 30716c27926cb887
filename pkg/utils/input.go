// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSnapshot 一帧的输入快照
//
// 由场景在每帧开始时采集一次，然后按值传给各个系统的 Update，
// 系统本身不直接读取输入设备，便于在测试中构造任意输入序列。
type InputSnapshot struct {
	// PointerX, PointerY 指针位置（屏幕坐标）
	PointerX, PointerY float64
	// PointerPressed 本帧刚按下（鼠标左键或触摸）
	PointerPressed bool
	// PointerReleased 本帧刚释放
	PointerReleased bool
	// PointerHeld 当前处于按住状态
	PointerHeld bool
	// RunPresses 本帧"奔跑"键刚按下的次数（多个绑定键分别计数）
	RunPresses int
	// SkipPressed 本帧"跳过"键刚按下
	SkipPressed bool
}

// Clicked 本帧是否发生了任意"前进"输入（点击或跳过键）
func (in InputSnapshot) Clicked() bool {
	return in.PointerPressed || in.SkipPressed
}

// WithPointer 返回指针坐标替换为 (x, y) 后的快照副本
// 场景用它把屏幕坐标换算为世界坐标
func (in InputSnapshot) WithPointer(x, y float64) InputSnapshot {
	in.PointerX, in.PointerY = x, y
	return in
}

// InputPoller 从 ebiten 采集输入快照
//
// 同时支持鼠标与触摸，优先检测触摸。触摸释放时 ebiten 已经拿不到
// 触点位置，所以这里记住最后一次触摸位置。
type InputPoller struct {
	RunKeys  []ebiten.Key
	SkipKeys []ebiten.Key

	lastTouchX, lastTouchY int
	touching               bool
}

// NewInputPoller 创建输入采集器
func NewInputPoller(runKeys, skipKeys []ebiten.Key) *InputPoller {
	return &InputPoller{RunKeys: runKeys, SkipKeys: skipKeys}
}

// Poll 采集当前帧的输入（每帧调用一次）
func (p *InputPoller) Poll() InputSnapshot {
	var in InputSnapshot

	touchIDs := ebiten.AppendTouchIDs(nil)
	justTouched := inpututil.AppendJustPressedTouchIDs(nil)
	justReleased := inpututil.AppendJustReleasedTouchIDs(nil)

	switch {
	case len(touchIDs) > 0:
		p.lastTouchX, p.lastTouchY = ebiten.TouchPosition(touchIDs[0])
		p.touching = true
		in.PointerHeld = true
		in.PointerPressed = len(justTouched) > 0
		in.PointerX, in.PointerY = float64(p.lastTouchX), float64(p.lastTouchY)
	case p.touching && len(justReleased) > 0:
		// 触摸刚释放：使用保存的最后触摸位置
		p.touching = false
		in.PointerReleased = true
		in.PointerX, in.PointerY = float64(p.lastTouchX), float64(p.lastTouchY)
	default:
		x, y := ebiten.CursorPosition()
		in.PointerX, in.PointerY = float64(x), float64(y)
		in.PointerPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
		in.PointerReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
		in.PointerHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}

	for _, k := range p.RunKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.RunPresses++
		}
	}
	for _, k := range p.SkipKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.SkipPressed = true
		}
	}

	return in
}

// ParseKeys 将配置中的按键名（如 "Space", "ArrowRight"）转换为 ebiten.Key
// 无法识别的名字被忽略并通过 unknown 返回
func ParseKeys(names []string) (keys []ebiten.Key, unknown []string) {
	for _, name := range names {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			unknown = append(unknown, name)
			continue
		}
		keys = append(keys, k)
	}
	return keys, unknown
}
