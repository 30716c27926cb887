package components

// FadeComponent 全屏淡入淡出遮罩
// Alpha 0 为完全透明，1 为完全不透明
type FadeComponent struct {
	Alpha  float64
	From   float64
	Target float64
	// Duration 本次淡变时长（秒），<= 0 表示立即到达目标
	Duration float64
	Elapsed  float64
	Active   bool
}
