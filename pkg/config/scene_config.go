package config

import (
	"fmt"

	"github.com/gonewx/latecoffee/pkg/utils"
)

// SceneConfig 单个场景配置
// Type 决定使用哪一组可调参数（dialogue / kitchen / chase / game_over / menu / credits）
type SceneConfig struct {
	ID         string              `yaml:"id"`
	Type       string              `yaml:"type"`
	Background string              `yaml:"background"` // 背景图片ID
	Music      string              `yaml:"music"`      // 场景背景音乐（循环），可选
	Zones      map[string]ZoneSpec `yaml:"zones"`
	Sprites    []SpriteSpec        `yaml:"sprites"`

	Intro    *IntroConfig    `yaml:"intro"`
	Dialogue *DialogueConfig `yaml:"dialogue"`
	Door     *DoorConfig     `yaml:"door"`
	Mug      *DragDropConfig `yaml:"mug"`
	Chase    *ChaseConfig    `yaml:"chase"`
	GameOver *GameOverConfig `yaml:"gameOver"`
	Menu     *MenuConfig     `yaml:"menu"`
	Credits  *CreditsConfig  `yaml:"credits"`
}

// ZoneSpec 命名区域（世界坐标矩形）
type ZoneSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Rect 转换为 utils.Rect
func (z ZoneSpec) Rect() utils.Rect {
	return utils.Rect{X: z.X, Y: z.Y, W: z.W, H: z.H}
}

// SpriteSpec 场景中的精灵
// 坐标为精灵中心点
type SpriteSpec struct {
	ID      string  `yaml:"id"`
	Image   string  `yaml:"image"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Hidden  bool    `yaml:"hidden"`
	Layer   int     `yaml:"layer"`   // 渲染层级，越大越靠上
	FillTop float64 `yaml:"fillTop"` // 填充精灵：液面顶部相对图片高度的比例（0 = 图片顶部）
}

// Rects 将区域表转换为 utils.Rect 表
func (sc *SceneConfig) Rects() map[string]utils.Rect {
	out := make(map[string]utils.Rect, len(sc.Zones))
	for name, z := range sc.Zones {
		out[name] = z.Rect()
	}
	return out
}

// HasSprite 场景中是否声明了该精灵
func (sc *SceneConfig) HasSprite(id string) bool {
	for _, s := range sc.Sprites {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (sc *SceneConfig) applyDefaults() {
	if sc.Intro != nil {
		sc.Intro.applyDefaults()
	}
	if sc.Dialogue != nil {
		sc.Dialogue.applyDefaults()
	}
	if sc.Door != nil {
		sc.Door.applyDefaults()
	}
	if sc.Mug != nil {
		sc.Mug.applyDefaults()
	}
	if sc.Chase != nil {
		sc.Chase.applyDefaults()
	}
	if sc.GameOver != nil {
		sc.GameOver.applyDefaults()
	}
	if sc.Menu != nil {
		sc.Menu.applyDefaults()
	}
	if sc.Credits != nil {
		sc.Credits.applyDefaults()
	}
}

func (sc *SceneConfig) validate() error {
	switch sc.Type {
	case SceneTypeDialogue:
		if sc.Dialogue == nil {
			return fmt.Errorf("dialogue scene requires a dialogue section")
		}
		if err := sc.Dialogue.validate(); err != nil {
			return fmt.Errorf("dialogue: %w", err)
		}
	case SceneTypeKitchen:
		if sc.Mug == nil {
			return fmt.Errorf("kitchen scene requires a mug section")
		}
		if err := sc.Mug.validate(); err != nil {
			return fmt.Errorf("mug: %w", err)
		}
	case SceneTypeChase:
		if sc.Chase == nil {
			return fmt.Errorf("chase scene requires a chase section")
		}
		if err := sc.Chase.validate(); err != nil {
			return fmt.Errorf("chase: %w", err)
		}
	case SceneTypeGameOver:
		if sc.GameOver == nil {
			sc.GameOver = &GameOverConfig{}
			sc.GameOver.applyDefaults()
		}
	case SceneTypeMenu:
		if sc.Menu == nil {
			return fmt.Errorf("menu scene requires a menu section")
		}
		if err := sc.Menu.validate(sc.Zones); err != nil {
			return fmt.Errorf("menu: %w", err)
		}
	case SceneTypeCredits:
		if sc.Credits == nil {
			return fmt.Errorf("credits scene requires a credits section")
		}
		if err := sc.Credits.validate(); err != nil {
			return fmt.Errorf("credits: %w", err)
		}
	default:
		return fmt.Errorf("unknown scene type %q", sc.Type)
	}

	if sc.Door != nil && sc.Door.Sprite == "" {
		return fmt.Errorf("door: sprite is required")
	}
	if sc.Intro != nil && (sc.Intro.Delay < 0 || sc.Intro.SkipCooldown < 0) {
		return fmt.Errorf("intro: delay and skipCooldown cannot be negative")
	}
	return nil
}

// IntroConfig 场景开场旁白
type IntroConfig struct {
	Clip     string  `yaml:"clip"`
	Delay    float64 `yaml:"delay"`    // 场景开始后延迟（秒）
	Subtitle string  `yaml:"subtitle"` // 旁白播放期间显示的字幕
	// SubtitleDuration 无音频时字幕显示时长（秒）
	SubtitleDuration float64 `yaml:"subtitleDuration"`
	// Skippable 播放期间点击或按跳过键可提前结束
	Skippable    bool    `yaml:"skippable"`
	SkipCooldown float64 `yaml:"skipCooldown"` // 旁白开始后多久接受跳过（秒）
}

func (c *IntroConfig) applyDefaults() {
	if c.SubtitleDuration == 0 {
		c.SubtitleDuration = 3.0
	}
	if c.SkipCooldown == 0 {
		c.SkipCooldown = 0.12
	}
}

// DialogueConfig 线性对话/漫画分镜推进
type DialogueConfig struct {
	Panels       []PanelSpec `yaml:"panels"`
	SkipCooldown float64     `yaml:"skipCooldown"` // 两次有效输入之间的最短间隔（秒）
	FadeDuration float64     `yaml:"fadeDuration"` // 结束时淡出时长（秒）
	NextScene    string      `yaml:"nextScene"`
}

// PanelSpec 单个分镜：精灵 + 可选配音
type PanelSpec struct {
	Sprite string `yaml:"sprite"`
	Voice  string `yaml:"voice"`
	Text   string `yaml:"text"`
}

func (c *DialogueConfig) applyDefaults() {
	if c.SkipCooldown == 0 {
		c.SkipCooldown = 0.25
	}
	if c.FadeDuration == 0 {
		c.FadeDuration = 1.0
	}
}

func (c *DialogueConfig) validate() error {
	if len(c.Panels) == 0 {
		return fmt.Errorf("at least one panel is required")
	}
	for i, p := range c.Panels {
		if p.Sprite == "" {
			return fmt.Errorf("panel %d: sprite is required", i)
		}
	}
	if c.SkipCooldown < 0 || c.FadeDuration < 0 {
		return fmt.Errorf("skipCooldown and fadeDuration cannot be negative")
	}
	return nil
}

// DoorConfig 门精灵开关
type DoorConfig struct {
	Sprite      string `yaml:"sprite"`
	Zone        string `yaml:"zone"` // 点击区域名
	OpenImage   string `yaml:"openImage"`
	ClosedImage string `yaml:"closedImage"`
	OpenClip    string `yaml:"openClip"`
	CloseClip   string `yaml:"closeClip"`
	StartOpen   bool   `yaml:"startOpen"`
	// ClickCooldown 两次有效点击的最短间隔（秒）
	ClickCooldown float64 `yaml:"clickCooldown"`
}

func (c *DoorConfig) applyDefaults() {
	if c.ClickCooldown == 0 {
		c.ClickCooldown = 0.15
	}
}

// GameOverConfig 游戏结束场景
type GameOverConfig struct {
	Clip          string  `yaml:"clip"`
	InputDelay    float64 `yaml:"inputDelay"`    // 进入场景后多久开始接受点击（秒）
	FadeDuration  float64 `yaml:"fadeDuration"`  // 重试前淡出时长（秒）
	FallbackScene string  `yaml:"fallbackScene"` // 会话中没有失败场景时的重试目标
}

func (c *GameOverConfig) applyDefaults() {
	if c.InputDelay == 0 {
		c.InputDelay = 1.0
	}
	if c.FadeDuration == 0 {
		c.FadeDuration = 0.5
	}
}

// MenuConfig 标题菜单
type MenuConfig struct {
	Title        string       `yaml:"title"`
	Buttons      []MenuButton `yaml:"buttons"`
	ClickClip    string       `yaml:"clickClip"`
	FadeDuration float64      `yaml:"fadeDuration"` // 选择后淡出时长（秒）
}

// MenuButton 菜单按钮：点击区域 + 目标场景或退出
type MenuButton struct {
	Label string `yaml:"label"`
	Zone  string `yaml:"zone"`
	Scene string `yaml:"scene"`
	Quit  bool   `yaml:"quit"`
}

func (c *MenuConfig) applyDefaults() {
	if c.FadeDuration == 0 {
		c.FadeDuration = 0.5
	}
}

func (c *MenuConfig) validate(zones map[string]ZoneSpec) error {
	if len(c.Buttons) == 0 {
		return fmt.Errorf("at least one button is required")
	}
	for i, b := range c.Buttons {
		if _, ok := zones[b.Zone]; !ok {
			return fmt.Errorf("button %d: zone %q not declared", i, b.Zone)
		}
		if b.Scene == "" && !b.Quit {
			return fmt.Errorf("button %d: scene or quit is required", i)
		}
	}
	if c.FadeDuration < 0 {
		return fmt.Errorf("fadeDuration cannot be negative")
	}
	return nil
}

// CreditsConfig 滚动字幕
type CreditsConfig struct {
	Lines        []string `yaml:"lines"`
	ScrollSpeed  float64  `yaml:"scrollSpeed"`  // 像素/秒
	LineSpacing  float64  `yaml:"lineSpacing"`  // 行距（像素）
	InputDelay   float64  `yaml:"inputDelay"`   // 多久后允许点击跳过（秒）
	FadeDuration float64  `yaml:"fadeDuration"` // 结束时淡出时长（秒）
	NextScene    string   `yaml:"nextScene"`
}

func (c *CreditsConfig) applyDefaults() {
	if c.ScrollSpeed == 0 {
		c.ScrollSpeed = 40
	}
	if c.LineSpacing == 0 {
		c.LineSpacing = 24
	}
	if c.InputDelay == 0 {
		c.InputDelay = 1.0
	}
	if c.FadeDuration == 0 {
		c.FadeDuration = 1.0
	}
}

func (c *CreditsConfig) validate() error {
	if len(c.Lines) == 0 {
		return fmt.Errorf("at least one line is required")
	}
	if c.ScrollSpeed <= 0 || c.LineSpacing <= 0 {
		return fmt.Errorf("scrollSpeed and lineSpacing must be positive")
	}
	return nil
}
