package components

import "github.com/gonewx/latecoffee/pkg/utils"

// DragState 拖放状态
type DragState int

const (
	// DragStateIdle 静止
	DragStateIdle DragState = iota
	// DragStateDragging 拖动中
	DragStateDragging
	// DragStateFilling 已放入成功区域，正在倒咖啡
	DragStateFilling
	// DragStateDone 结局已确定（成功或失败），不再接受输入
	DragStateDone
)

// GrabKind 抓取位置分类
type GrabKind int

const (
	// GrabBody 杯身（安全）
	GrabBody GrabKind = iota
	// GrabHandle 把手（安全）
	GrabHandle
	// GrabRim 杯沿（危险）
	GrabRim
)

// IsSafe 把手和杯身都算安全抓取
func (g GrabKind) IsSafe() bool {
	return g != GrabRim
}

// DropOutcome 松手结果
type DropOutcome int

const (
	// DropNone 尚未松手
	DropNone DropOutcome = iota
	// DropSuccess 放入成功区域
	DropSuccess
	// DropFailure 危险抓取且落入失败区域
	DropFailure
	// DropReset 其他情况，回到起点
	DropReset
)

// String 返回 DropOutcome 的字符串表示
func (o DropOutcome) String() string {
	switch o {
	case DropSuccess:
		return "Success"
	case DropFailure:
		return "Failure"
	case DropReset:
		return "Reset"
	default:
		return "None"
	}
}

// DraggableComponent 可拖放物体（咖啡杯）状态（纯数据）
//
// X/Y 为物体参考点（中心）的世界坐标；Bounds/Handle/Rim 为以参考点为原点的局部矩形。
type DraggableComponent struct {
	State DragState

	X, Y, Rotation                   float64
	StartX, StartY, StartRotation    float64
	TargetX, TargetY, TargetRotation float64
	GrabOffsetX, GrabOffsetY         float64
	// PointerX, PointerY 最近一次指针位置（世界坐标）
	PointerX, PointerY float64

	Bounds utils.Rect
	Handle utils.Rect
	Rim    utils.Rect
	Grab   GrabKind

	FollowRate  float64
	SuccessZone string
	FailureZone string

	// 倒咖啡动画
	FillLevel    float64
	FillDuration float64

	// 结局停留计时
	OutcomeTimer float64
	FailureDelay float64
	AdvanceDelay float64
	LastOutcome  DropOutcome

	Sprite       string
	FillSprite   string
	NormalImage  string
	FailureImage string
	FilledImage  string
	GrabClip     string
	PourClip     string
	FailureClip  string

	NextScene       string
	GameOverScene   string
	TransitionFired bool
}
