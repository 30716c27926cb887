package config

import "fmt"

// DragDropConfig 拖放放置（咖啡杯）参数
//
// 杯子的局部区域（Bounds/Handle/Rim）以杯子中心为原点。
type DragDropConfig struct {
	Sprite     string `yaml:"sprite"`     // 杯子精灵
	FillSprite string `yaml:"fillSprite"` // 液面精灵（可选）

	StartX        float64 `yaml:"startX"`
	StartY        float64 `yaml:"startY"`
	StartRotation float64 `yaml:"startRotation"` // 弧度

	Bounds ZoneSpec `yaml:"bounds"` // 点击/碰撞区域
	Handle ZoneSpec `yaml:"handle"` // 安全把手区域
	Rim    ZoneSpec `yaml:"rim"`    // 危险杯沿区域

	// FollowRate 拖动时向指针逼近的速率（1/秒），越大越跟手
	FollowRate float64 `yaml:"followRate"`

	SuccessZone string `yaml:"successZone"`
	FailureZone string `yaml:"failureZone"`

	TargetX        float64 `yaml:"targetX"`
	TargetY        float64 `yaml:"targetY"`
	TargetRotation float64 `yaml:"targetRotation"`

	FillDuration float64 `yaml:"fillDuration"` // 倒咖啡动画时长（秒）
	// FailureDelay 失败画面停留时长（秒），之后进入游戏结束场景
	FailureDelay float64 `yaml:"failureDelay"`
	// AdvanceDelay 倒满后停留时长（秒），之后进入下一场景
	AdvanceDelay float64 `yaml:"advanceDelay"`

	NormalImage  string `yaml:"normalImage"`
	FailureImage string `yaml:"failureImage"`
	FilledImage  string `yaml:"filledImage"` // 倒满后的杯子图片，可选

	GrabClip    string `yaml:"grabClip"`
	PourClip    string `yaml:"pourClip"`
	FailureClip string `yaml:"failureClip"`

	NextScene     string `yaml:"nextScene"`
	GameOverScene string `yaml:"gameOverScene"`
}

func (c *DragDropConfig) applyDefaults() {
	if c.FollowRate == 0 {
		c.FollowRate = 14
	}
	if c.FillDuration == 0 {
		c.FillDuration = 2.0
	}
	if c.FailureDelay == 0 {
		c.FailureDelay = 1.0
	}
	if c.AdvanceDelay == 0 {
		c.AdvanceDelay = 0.5
	}
}

func (c *DragDropConfig) validate() error {
	if c.Sprite == "" {
		return fmt.Errorf("sprite is required")
	}
	if c.Bounds.W <= 0 || c.Bounds.H <= 0 {
		return fmt.Errorf("bounds must have positive size")
	}
	if c.SuccessZone == "" {
		return fmt.Errorf("successZone is required")
	}
	if c.FollowRate < 0 || c.FillDuration < 0 {
		return fmt.Errorf("followRate and fillDuration cannot be negative")
	}
	return nil
}
