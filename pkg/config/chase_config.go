package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// defaultRequired 未配置 required 时的取胜努力值
// 显式写出的 required: 0 保留为 0（第一帧即胜利）
const defaultRequired = 40

// ChaseConfig 追逐小游戏（连按取胜）参数
type ChaseConfig struct {
	// 计量条
	Required  float64 `yaml:"required"`  // 取胜所需努力值
	Increment float64 `yaml:"increment"` // 每次按键增加
	DecayRate float64 `yaml:"decayRate"` // 每秒衰减
	TimeLimit float64 `yaml:"timeLimit"` // 倒计时总长（秒）

	// 反馈
	ShakeMax        float64 `yaml:"shakeMax"` // 进度为 1 时的抖动振幅（像素）
	BreathClip      string  `yaml:"breathClip"`
	BreathVolumeMin float64 `yaml:"breathVolumeMin"`
	BreathVolumeMax float64 `yaml:"breathVolumeMax"`
	BreathPitchMin  float64 `yaml:"breathPitchMin"`
	BreathPitchMax  float64 `yaml:"breathPitchMax"`
	MusicClip       string  `yaml:"musicClip"`
	FootstepClip    string  `yaml:"footstepClip"` // 奔跑脚步声循环（可选）

	// 旁白：在追逐开始后的固定时间点依次播放，最后一条保留给胜利
	NarrationClips   []string  `yaml:"narrationClips"`
	NarrationOffsets []float64 `yaml:"narrationOffsets"`

	// 结局
	FailureClip      string  `yaml:"failureClip"`
	LosePause        float64 `yaml:"losePause"`    // 失败音效后停顿（秒）
	FadeDuration     float64 `yaml:"fadeDuration"` // 淡入/淡出时长（秒）
	EndingMedia      string  `yaml:"endingMedia"`  // 胜利过场（slideshow ID），可选
	BackgroundSprite string  `yaml:"backgroundSprite"`
	RunnerSprite     string  `yaml:"runnerSprite"` // 随镜头上下起伏的奔跑者精灵，可选
	NextScene        string  `yaml:"nextScene"`
	GameOverScene    string  `yaml:"gameOverScene"`

	// 开场
	OpeningMedia string  `yaml:"openingMedia"` // 追逐前的开场过场（slideshow ID），可选
	AmbientClip  string  `yaml:"ambientClip"`  // 环境音循环，场景开始即播放，可选
	StartDelay   float64 `yaml:"startDelay"`   // 开场结束（或场景开始）后多久进入追逐（秒）

	Camera CameraFeedbackConfig `yaml:"camera"`
	Shake  ShakeConfig          `yaml:"shake"`
}

// CameraFeedbackConfig 镜头缩放/起伏参数
// Size 为视野大小（1 = 全屏），越小越拉近
type CameraFeedbackConfig struct {
	BaseSize     float64 `yaml:"baseSize"`
	MinSize      float64 `yaml:"minSize"`
	SmoothRate   float64 `yaml:"smoothRate"`   // 输入平滑速率（1/秒）
	BobAmplitude float64 `yaml:"bobAmplitude"` // 起伏振幅（像素）
	BobFrequency float64 `yaml:"bobFrequency"` // 起伏频率（Hz）
}

// ShakeConfig 镜头抖动参数
type ShakeConfig struct {
	Frequency float64 `yaml:"frequency"` // 噪声采样速度
	Seed      float64 `yaml:"seed"`      // 噪声采样偏移（不同场景可得到不同抖动形态）
}

// UnmarshalYAML 先填入 required 的默认值再解码，
// 这样可以区分缺省和显式的 0
func (c *ChaseConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain ChaseConfig
	p := plain{Required: defaultRequired}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = ChaseConfig(p)
	return nil
}

func (c *ChaseConfig) applyDefaults() {
	if c.Increment == 0 {
		c.Increment = 2
	}
	if c.DecayRate == 0 {
		c.DecayRate = 5
	}
	if c.TimeLimit == 0 {
		c.TimeLimit = 10
	}
	if c.ShakeMax == 0 {
		c.ShakeMax = 6
	}
	if c.BreathVolumeMin == 0 && c.BreathVolumeMax == 0 {
		c.BreathVolumeMin, c.BreathVolumeMax = 0.2, 1.0
	}
	if c.BreathPitchMin == 0 && c.BreathPitchMax == 0 {
		c.BreathPitchMin, c.BreathPitchMax = 0.85, 1.3
	}
	if c.LosePause == 0 {
		c.LosePause = 1.5
	}
	if c.FadeDuration == 0 {
		c.FadeDuration = 1.0
	}
	if c.Camera.BaseSize == 0 {
		c.Camera.BaseSize = 1.0
	}
	if c.Camera.MinSize == 0 {
		c.Camera.MinSize = 0.8
	}
	if c.Camera.SmoothRate == 0 {
		c.Camera.SmoothRate = 4
	}
	if c.Camera.BobFrequency == 0 {
		c.Camera.BobFrequency = 2
	}
	if c.Shake.Frequency == 0 {
		c.Shake.Frequency = 12
	}
}

func (c *ChaseConfig) validate() error {
	if c.Required < 0 {
		return fmt.Errorf("required cannot be negative, got %v", c.Required)
	}
	if c.Increment < 0 || c.DecayRate < 0 {
		return fmt.Errorf("increment and decayRate cannot be negative")
	}
	if c.StartDelay < 0 {
		return fmt.Errorf("startDelay cannot be negative, got %v", c.StartDelay)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("timeLimit must be positive, got %v", c.TimeLimit)
	}
	if c.Camera.MinSize <= 0 || c.Camera.BaseSize <= 0 {
		return fmt.Errorf("camera sizes must be positive")
	}
	prev := -1.0
	for i, off := range c.NarrationOffsets {
		if off < 0 {
			return fmt.Errorf("narrationOffsets[%d]: cannot be negative", i)
		}
		if off < prev {
			return fmt.Errorf("narrationOffsets must be ascending, got %v after %v", off, prev)
		}
		prev = off
	}
	return nil
}
