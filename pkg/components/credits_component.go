package components

// CreditsComponent 滚动字幕状态（纯数据）
// Offset 从 0 增长到 Distance 时所有行都已滚出屏幕顶部
type CreditsComponent struct {
	Lines        []string
	ScrollSpeed  float64
	LineSpacing  float64
	Distance     float64
	InputDelay   float64
	FadeDuration float64
	NextScene    string

	Offset          float64
	Elapsed         float64
	Finishing       bool
	TransitionFired bool
}
