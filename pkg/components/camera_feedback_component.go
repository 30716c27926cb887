package components

// CameraFeedbackComponent 镜头缩放与起伏（纯数据）
//
// Input 由外部（追逐系统）写入 [0, 1]；Smoothed 是唯一的内部状态，
// 用于避免缩放瞬间跳变。Size / BobOffset 为每帧输出。
type CameraFeedbackComponent struct {
	Input    float64
	Smoothed float64

	BaseSize     float64
	MinSize      float64
	SmoothRate   float64
	BobAmplitude float64
	BobFrequency float64

	// Time 起伏计时（秒）
	Time float64

	// 输出
	Size      float64
	BobOffset float64
}

// ShakeComponent 镜头抖动（纯数据）
// Amplitude 由外部设置；OffsetX/OffsetY 为每帧输出
type ShakeComponent struct {
	Amplitude float64
	Frequency float64
	Seed      float64
	Time      float64

	OffsetX float64
	OffsetY float64
}
