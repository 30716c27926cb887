package components

// ChasePhase 追逐小游戏阶段
//
// Idle -> Chasing 只发生一次；Won / Lost 为终态，
// 进入终态后不再处理输入和衰减，并且只触发一次场景切换。
type ChasePhase int

const (
	// ChasePhaseIdle 等待开始
	ChasePhaseIdle ChasePhase = iota
	// ChasePhaseChasing 追逐中（唯一处理输入与衰减的阶段）
	ChasePhaseChasing
	// ChasePhaseWon 胜利（终态）
	ChasePhaseWon
	// ChasePhaseLost 失败（终态）
	ChasePhaseLost
)

// String 返回 ChasePhase 的字符串表示
func (p ChasePhase) String() string {
	switch p {
	case ChasePhaseIdle:
		return "Idle"
	case ChasePhaseChasing:
		return "Chasing"
	case ChasePhaseWon:
		return "Won"
	case ChasePhaseLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// IsTerminal 是否为终态
func (p ChasePhase) IsTerminal() bool {
	return p == ChasePhaseWon || p == ChasePhaseLost
}

// OutroStep 终态后的结局流程步骤
//
// 原本由协程中的"等待 N 秒 / 等待条件"表达的流程，
// 这里改为显式步骤 + 步骤计时器，由 ChaseSystem.Update 推进。
type OutroStep int

const (
	// OutroStepStart 刚进入终态，执行一次性动作（停循环音、播放音效、开始淡出）
	OutroStepStart OutroStep = iota
	// OutroStepPause 失败分支：播放失败音效后的停顿
	OutroStepPause
	// OutroStepFadeOut 等待淡出到不透明
	OutroStepFadeOut
	// OutroStepMediaPrepare 胜利分支：隐藏背景并等待过场媒体准备完成（无超时）
	OutroStepMediaPrepare
	// OutroStepMediaPlay 胜利分支：淡回透明显示过场，等待播放完成
	OutroStepMediaPlay
	// OutroStepMediaFadeOut 胜利分支：过场结束后再次淡出
	OutroStepMediaFadeOut
	// OutroStepDone 已请求场景切换
	OutroStepDone
)

// OpeningStep 追逐开始前的开场流程步骤
//
// 有开场过场时：准备 -> 播放 -> 停顿 StartDelay -> Begin；
// 没有时直接停顿 StartDelay 后 Begin。
type OpeningStep int

const (
	// OpeningStepNone 场景尚未开始
	OpeningStepNone OpeningStep = iota
	// OpeningStepMediaPrepare 等待开场过场准备完成（无超时）
	OpeningStepMediaPrepare
	// OpeningStepMediaPlay 开场过场播放中
	OpeningStepMediaPlay
	// OpeningStepHold 进入追逐前的短暂停顿
	OpeningStepHold
	// OpeningStepDone 已开始追逐
	OpeningStepDone
)

// ChaseComponent 追逐小游戏状态（纯数据）
//
// 所有状态在场景开始时创建、场景卸载时丢弃。
type ChaseComponent struct {
	Phase ChasePhase

	// 努力值计量条，恒在 [0, Required]
	Meter     float64
	Required  float64
	Increment float64
	DecayRate float64

	// 倒计时（秒），<= 0 时失败
	Countdown float64
	TimeLimit float64

	// 开场
	Opening      OpeningStep
	OpeningTimer float64
	OpeningMedia string
	OpeningShown bool    // 开场过场正在占据画面（背景已隐藏）
	StartDelay   float64 // 开场结束后到 Begin 的停顿（秒）
	AmbientClip  string  // 环境音循环：场景开始即播放，追逐结束时不停止

	// Elapsed 追逐开始以来的时间（秒），旁白调度基于它
	Elapsed float64

	// Progress 最近一次计算的进度 Meter/Required
	Progress float64

	// 反馈映射参数
	ShakeMax        float64
	BreathClip      string
	BreathVolumeMin float64
	BreathVolumeMax float64
	BreathPitchMin  float64
	BreathPitchMax  float64
	MusicClip       string
	FootstepClip    string

	// 旁白调度
	NarrationClips   []string
	NarrationOffsets []float64
	NarrationIndex   int  // 下一次播放的旁白下标
	NarrationFired   int  // 已触发的时间点数量
	NarrationAborted bool // 追逐结束后剩余时间点全部取消

	// 结局流程
	Outro            OutroStep
	OutroTimer       float64
	FailureClip      string
	LosePause        float64
	FadeDuration     float64
	EndingMedia      string
	BackgroundSprite string
	NextScene        string
	GameOverScene    string

	// TransitionFired 是否已请求场景切换（保证只触发一次）
	TransitionFired bool
}
