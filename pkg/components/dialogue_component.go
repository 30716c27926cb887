package components

// DialogueComponent 线性对话/分镜推进状态（纯数据）
//
// 同一时刻只有 Sprites[Cursor] 可见。配音播放期间不接受推进，
// 但可以跳过；任何被接受的输入都要求距上一次被接受的输入至少 SkipCooldown 秒。
type DialogueComponent struct {
	Sprites []string
	Voices  []string // 与 Sprites 对齐，空字符串表示无配音
	Texts   []string // 与 Sprites 对齐的字幕

	Cursor int

	// VoiceClip 当前正在播放的配音（空表示没有）
	VoiceClip string

	SkipCooldown float64
	// SinceLastInput 距上一次被接受输入的时间（秒）
	SinceLastInput float64

	FadeDuration float64
	// Finished 光标越过最后一个分镜，进入淡出
	Finished        bool
	NextScene       string
	TransitionFired bool
}
