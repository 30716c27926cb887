package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestLoadGameConfig_Shipped 测试随游戏发布的配置文件可以加载
func TestLoadGameConfig_Shipped(t *testing.T) {
	cfg, err := LoadGameConfig("../../data/config/game.yaml")
	if err != nil {
		t.Fatalf("LoadGameConfig() failed: %v", err)
	}

	if cfg.StartScene != "menu" {
		t.Errorf("Expected start scene 'menu', got %q", cfg.StartScene)
	}

	menu, ok := cfg.Scene("menu")
	if !ok || menu.Menu == nil || len(menu.Menu.Buttons) != 3 {
		t.Fatal("menu scene incomplete")
	}
	if !menu.Menu.Buttons[2].Quit {
		t.Error("last menu button should quit")
	}

	ending, ok := cfg.Scene("ending")
	if !ok || ending.Dialogue == nil || ending.Dialogue.NextScene != "credits" {
		t.Error("ending should lead to the credits")
	}
	credits, ok := cfg.Scene("credits")
	if !ok || credits.Credits == nil || credits.Credits.NextScene != "menu" {
		t.Error("credits should return to the menu")
	}

	chase, ok := cfg.Scene("chase")
	if !ok || chase.Chase == nil {
		t.Fatal("chase scene not found")
	}
	if chase.Chase.Required != 40 || chase.Chase.Increment != 2 || chase.Chase.DecayRate != 5 || chase.Chase.TimeLimit != 10 {
		t.Errorf("unexpected chase tunables %+v", chase.Chase)
	}
	if len(chase.Chase.NarrationClips) != 4 {
		t.Errorf("Expected 4 narration clips, got %d", len(chase.Chase.NarrationClips))
	}
	if _, ok := cfg.Slideshow(chase.Chase.EndingMedia); !ok {
		t.Errorf("ending media %q not declared", chase.Chase.EndingMedia)
	}
	if _, ok := cfg.Slideshow(chase.Chase.OpeningMedia); !ok {
		t.Errorf("opening media %q not declared", chase.Chase.OpeningMedia)
	}
	ambientDeclared := false
	for _, clip := range cfg.Clips {
		ambientDeclared = ambientDeclared || clip.ID == chase.Chase.AmbientClip
	}
	if !ambientDeclared {
		t.Errorf("ambient clip %q not declared", chase.Chase.AmbientClip)
	}

	kitchen, ok := cfg.Scene("kitchen")
	if !ok || kitchen.Mug == nil || kitchen.Door == nil || kitchen.Intro == nil {
		t.Fatal("kitchen scene incomplete")
	}
	if _, ok := kitchen.Zones[kitchen.Mug.SuccessZone]; !ok {
		t.Errorf("success zone %q not declared", kitchen.Mug.SuccessZone)
	}
	if !kitchen.Intro.Skippable {
		t.Error("kitchen narration should be skippable")
	}
}

// TestParseGameConfig_ChaseRequired 测试 required 缺省为 40，显式的 0 保留
func TestParseGameConfig_ChaseRequired(t *testing.T) {
	tests := []struct {
		name     string
		chase    string
		expected float64
	}{
		{"omitted", "chase: {increment: 3}", 40},
		{"explicit zero", "chase: {required: 0}", 0},
		{"explicit value", "chase: {required: 12}", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yamlData := "scenes:\n  - id: run\n    type: chase\n    " + tt.chase + "\n"
			cfg, err := ParseGameConfig([]byte(yamlData), "inline")
			if err != nil {
				t.Fatalf("ParseGameConfig() failed: %v", err)
			}
			if got := cfg.Scenes[0].Chase.Required; got != tt.expected {
				t.Errorf("Expected required %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestParseGameConfig_MenuAndCreditsDefaults 测试菜单和字幕的默认值
func TestParseGameConfig_MenuAndCreditsDefaults(t *testing.T) {
	yamlData := `
scenes:
  - id: menu
    type: menu
    zones:
      go: {x: 0, y: 0, w: 10, h: 10}
    menu:
      buttons:
        - {label: Go, zone: go, scene: roll}
  - id: roll
    type: credits
    credits:
      lines: [a, b]
`
	cfg, err := ParseGameConfig([]byte(yamlData), "inline")
	if err != nil {
		t.Fatalf("ParseGameConfig() failed: %v", err)
	}
	if got := cfg.Scenes[0].Menu.FadeDuration; got != 0.5 {
		t.Errorf("Expected menu fade 0.5, got %v", got)
	}
	c := cfg.Scenes[1].Credits
	if c.ScrollSpeed != 40 || c.LineSpacing != 24 || c.InputDelay != 1.0 || c.FadeDuration != 1.0 {
		t.Errorf("credits defaults not applied: %+v", c)
	}
}

// TestParseGameConfig_Defaults 测试默认值填充
func TestParseGameConfig_Defaults(t *testing.T) {
	yamlData := `
scenes:
  - id: run
    type: chase
    chase: {}
  - id: over
    type: game_over
`
	cfg, err := ParseGameConfig([]byte(yamlData), "inline")
	if err != nil {
		t.Fatalf("ParseGameConfig() failed: %v", err)
	}

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("unexpected window defaults %+v", cfg.Window)
	}
	if cfg.StartScene != "run" {
		t.Errorf("start scene should default to the first scene, got %q", cfg.StartScene)
	}
	if len(cfg.Input.RunKeys) == 0 || len(cfg.Input.SkipKeys) == 0 {
		t.Error("input bindings should have defaults")
	}

	c := cfg.Scenes[0].Chase
	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"required", c.Required, 40},
		{"increment", c.Increment, 2},
		{"decayRate", c.DecayRate, 5},
		{"timeLimit", c.TimeLimit, 10},
		{"breathVolumeMax", c.BreathVolumeMax, 1.0},
		{"breathPitchMin", c.BreathPitchMin, 0.85},
		{"camera.minSize", c.Camera.MinSize, 0.8},
		{"shake.frequency", c.Shake.Frequency, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	// game_over 缺省配置段会被补齐
	if cfg.Scenes[1].GameOver == nil || cfg.Scenes[1].GameOver.InputDelay != 1.0 {
		t.Errorf("game over defaults not applied: %+v", cfg.Scenes[1].GameOver)
	}
}

// TestParseGameConfig_Invalid 测试非法配置
func TestParseGameConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		errPart string
	}{
		{
			name:    "no scenes",
			yaml:    `window: {width: 640}`,
			errPart: "at least one scene",
		},
		{
			name: "duplicate scene id",
			yaml: `
scenes:
  - {id: a, type: game_over}
  - {id: a, type: game_over}
`,
			errPart: "duplicate id",
		},
		{
			name: "unknown type",
			yaml: `
scenes:
  - {id: a, type: puzzle}
`,
			errPart: "unknown scene type",
		},
		{
			name: "dialogue without panels",
			yaml: `
scenes:
  - id: a
    type: dialogue
    dialogue: {panels: []}
`,
			errPart: "at least one panel",
		},
		{
			name: "mug without bounds",
			yaml: `
scenes:
  - id: a
    type: kitchen
    mug: {sprite: mug, successZone: tray}
`,
			errPart: "bounds",
		},
		{
			name: "descending narration offsets",
			yaml: `
scenes:
  - id: a
    type: chase
    chase: {narrationOffsets: [3, 1]}
`,
			errPart: "ascending",
		},
		{
			name: "unknown start scene",
			yaml: `
startScene: nowhere
scenes:
  - {id: a, type: game_over}
`,
			errPart: "startScene",
		},
		{
			name: "bad synth",
			yaml: `
clips:
  - {id: x, synth: kazoo}
scenes:
  - {id: a, type: game_over}
`,
			errPart: "unknown synth",
		},
		{
			name: "menu button without zone",
			yaml: `
scenes:
  - id: a
    type: menu
    menu:
      buttons:
        - {label: Go, zone: missing, scene: a}
`,
			errPart: "not declared",
		},
		{
			name: "menu button without target",
			yaml: `
scenes:
  - id: a
    type: menu
    zones:
      go: {x: 0, y: 0, w: 10, h: 10}
    menu:
      buttons:
        - {label: Go, zone: go}
`,
			errPart: "scene or quit",
		},
		{
			name: "credits without lines",
			yaml: `
scenes:
  - id: a
    type: credits
    credits: {lines: []}
`,
			errPart: "at least one line",
		},
		{
			name: "negative intro skip cooldown",
			yaml: `
scenes:
  - id: a
    type: game_over
    intro: {clip: x, skipCooldown: -1}
`,
			errPart: "skipCooldown",
		},
		{
			name: "empty slideshow",
			yaml: `
slideshows:
  - {id: s}
scenes:
  - {id: a, type: game_over}
`,
			errPart: "at least one slide",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGameConfig([]byte(tt.yaml), "inline")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}
}

// TestLoadGameConfig_FileErrors 测试文件读取与解析错误
func TestLoadGameConfig_FileErrors(t *testing.T) {
	if _, err := LoadGameConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	badFile := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(badFile, []byte("scenes: [unclosed"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if _, err := LoadGameConfig(badFile); err == nil {
		t.Error("expected parse error")
	}
}

func TestSceneConfig_Rects(t *testing.T) {
	sc := SceneConfig{Zones: map[string]ZoneSpec{"tray": {X: 1, Y: 2, W: 3, H: 4}}}
	r := sc.Rects()["tray"]
	if r.X != 1 || r.Y != 2 || r.W != 3 || r.H != 4 {
		t.Errorf("unexpected rect %+v", r)
	}
}
