package components

// SceneIntroComponent 场景开场旁白（纯数据）
// 场景开始 Delay 秒后播放一次 Clip，播放期间显示 Subtitle
type SceneIntroComponent struct {
	Clip     string
	Subtitle string
	Delay    float64
	// SubtitleDuration 没有音频时字幕显示时长（秒）
	SubtitleDuration float64

	// Skippable 旁白播放期间点击或按跳过键可以提前结束
	Skippable bool
	// SkipCooldown 旁白开始后多久才接受跳过（秒）
	SkipCooldown float64

	Timer      float64
	SinceInput float64
	Played     bool
	Showing    bool // 字幕显示中
	// Finished 旁白已播完或被跳过
	Finished bool
}
