package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// 场景类型
const (
	SceneTypeDialogue = "dialogue"
	SceneTypeKitchen  = "kitchen"
	SceneTypeChase    = "chase"
	SceneTypeGameOver = "game_over"
	SceneTypeMenu     = "menu"
	SceneTypeCredits  = "credits"
)

// GameConfig 游戏总配置（data/config/game.yaml）
//
// 包含窗口参数、输入绑定、资源表和所有场景的可调参数。
type GameConfig struct {
	Window     WindowConfig    `yaml:"window"`
	StartScene string          `yaml:"startScene"` // 启动场景ID
	Input      InputConfig     `yaml:"input"`
	AssetsPath string          `yaml:"assetsPath"` // 图片/音频文件根目录（磁盘），文件缺失时使用占位资源
	Images     []ImageSpec     `yaml:"images"`
	Clips      []ClipSpec      `yaml:"clips"`
	Slideshows []SlideshowSpec `yaml:"slideshows"`
	Scenes     []SceneConfig   `yaml:"scenes"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// InputConfig 按键绑定（ebiten 按键名，如 "Space", "ArrowRight"）
type InputConfig struct {
	RunKeys  []string `yaml:"runKeys"`
	SkipKeys []string `yaml:"skipKeys"`
}

// ImageSpec 图片资源
// Path 为空或文件不存在时，使用 Width x Height 的纯色占位图
type ImageSpec struct {
	ID     string `yaml:"id"`
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Color  string `yaml:"color"` // 占位图颜色 "#RRGGBB" 或 "#RRGGBBAA"
}

// ClipSpec 音频片段
// Path 指向 .wav / .ogg 文件；文件缺失时若配置了 Synth 则使用合成音，否则静音
type ClipSpec struct {
	ID        string  `yaml:"id"`
	Path      string  `yaml:"path"`
	Synth     string  `yaml:"synth"`     // "breath", "tone", "sting", "noise"
	Frequency float64 `yaml:"frequency"` // 合成音基频（Hz）
	Duration  float64 `yaml:"duration"`  // 合成音时长（秒）
	Gain      float64 `yaml:"gain"`      // 片段基础增益 (0, 1]，默认 1
}

// SlideshowSpec 过场媒体（按时长依次显示的图片序列）
type SlideshowSpec struct {
	ID     string      `yaml:"id"`
	Clip   string      `yaml:"clip"` // 可选：伴随播放的音频片段
	Slides []SlideSpec `yaml:"slides"`
}

// SlideSpec 过场中的一帧
type SlideSpec struct {
	Image    string  `yaml:"image"`
	Duration float64 `yaml:"duration"`
}

// LoadGameConfig 从YAML文件加载游戏配置
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}
	return ParseGameConfig(data, filepath)
}

// ParseGameConfig 解析YAML数据（source 仅用于错误信息）
func ParseGameConfig(data []byte, source string) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML from %s: %w", source, err)
	}

	applyDefaults(&cfg)

	if err := validateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", source, err)
	}

	return &cfg, nil
}

// Scene 按ID查找场景配置
func (c *GameConfig) Scene(id string) (*SceneConfig, bool) {
	for i := range c.Scenes {
		if c.Scenes[i].ID == id {
			return &c.Scenes[i], true
		}
	}
	return nil, false
}

// Slideshow 按ID查找过场媒体
func (c *GameConfig) Slideshow(id string) (*SlideshowSpec, bool) {
	for i := range c.Slideshows {
		if c.Slideshows[i].ID == id {
			return &c.Slideshows[i], true
		}
	}
	return nil, false
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(cfg *GameConfig) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = 800
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = 600
	}
	if cfg.Window.Title == "" {
		cfg.Window.Title = "Late Coffee"
	}
	if len(cfg.Input.RunKeys) == 0 {
		cfg.Input.RunKeys = []string{"Space"}
	}
	if len(cfg.Input.SkipKeys) == 0 {
		cfg.Input.SkipKeys = []string{"Enter"}
	}
	if cfg.AssetsPath == "" {
		cfg.AssetsPath = "assets"
	}
	if cfg.StartScene == "" && len(cfg.Scenes) > 0 {
		cfg.StartScene = cfg.Scenes[0].ID
	}

	for i := range cfg.Clips {
		if cfg.Clips[i].Gain == 0 {
			cfg.Clips[i].Gain = 1
		}
	}

	for i := range cfg.Scenes {
		cfg.Scenes[i].applyDefaults()
	}
}

// validateGameConfig 验证配置的完整性和合法性
func validateGameConfig(cfg *GameConfig) error {
	if len(cfg.Scenes) == 0 {
		return fmt.Errorf("at least one scene is required")
	}

	seen := make(map[string]bool)
	for i := range cfg.Scenes {
		sc := &cfg.Scenes[i]
		if sc.ID == "" {
			return fmt.Errorf("scene %d: id is required", i)
		}
		if seen[sc.ID] {
			return fmt.Errorf("scene %d: duplicate id %q", i, sc.ID)
		}
		seen[sc.ID] = true

		if err := sc.validate(); err != nil {
			return fmt.Errorf("scene %q: %w", sc.ID, err)
		}
	}

	if !seen[cfg.StartScene] {
		return fmt.Errorf("startScene %q does not match any scene", cfg.StartScene)
	}

	clipIDs := make(map[string]bool)
	for i, clip := range cfg.Clips {
		if clip.ID == "" {
			return fmt.Errorf("clip %d: id is required", i)
		}
		if clipIDs[clip.ID] {
			return fmt.Errorf("clip %d: duplicate id %q", i, clip.ID)
		}
		clipIDs[clip.ID] = true
		if clip.Gain < 0 || clip.Gain > 1 {
			return fmt.Errorf("clip %q: gain must be in (0, 1], got %v", clip.ID, clip.Gain)
		}
		if clip.Synth != "" && !validSynths[clip.Synth] {
			return fmt.Errorf("clip %q: unknown synth %q", clip.ID, clip.Synth)
		}
	}

	for i, img := range cfg.Images {
		if img.ID == "" {
			return fmt.Errorf("image %d: id is required", i)
		}
	}

	for _, show := range cfg.Slideshows {
		if show.ID == "" {
			return fmt.Errorf("slideshow: id is required")
		}
		if len(show.Slides) == 0 {
			return fmt.Errorf("slideshow %q: at least one slide is required", show.ID)
		}
		for j, slide := range show.Slides {
			if slide.Duration <= 0 {
				return fmt.Errorf("slideshow %q, slide %d: duration must be positive", show.ID, j)
			}
		}
	}

	return nil
}

var validSynths = map[string]bool{
	"breath": true,
	"tone":   true,
	"sting":  true,
	"noise":  true,
}
