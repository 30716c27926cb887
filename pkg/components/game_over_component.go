package components

// GameOverComponent 游戏结束场景状态（纯数据）
type GameOverComponent struct {
	Clip         string
	InputDelay   float64
	FadeDuration float64
	RetryScene   string

	Elapsed         float64
	Retrying        bool
	TransitionFired bool
}
