package game

import (
	"image/color"
	"testing"

	"github.com/gonewx/latecoffee/pkg/config"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FF0000", color.RGBA{R: 0xFF, A: 0xFF}},
		{"00FF00", color.RGBA{G: 0xFF, A: 0xFF}},
		{"#0000FF80", color.RGBA{B: 0x80, A: 0x80}}, // 预乘 alpha
		{"#12345", placeholderMagenta},
		{"#GGGGGG", placeholderMagenta},
		{"", placeholderMagenta},
	}
	for _, tt := range tests {
		if got := ParseHexColor(tt.in); got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResourceManager_UnknownAndMissing(t *testing.T) {
	rm := NewResourceManager(&config.GameConfig{
		AssetsPath: t.TempDir(),
		Images: []config.ImageSpec{
			{ID: "IMAGE_MUG", Path: "images/mug.png", Width: 70, Height: 80, Color: "#E8E8E8"},
		},
	})

	if _, err := rm.LoadImageByID("IMAGE_NONE"); err == nil {
		t.Error("Expected error for unknown image id")
	}
	if _, err := rm.LoadImageByID("IMAGE_MUG"); err == nil {
		t.Error("Expected error for missing image file")
	}
	if _, err := rm.OpenAsset(""); err == nil {
		t.Error("Expected error for empty asset path")
	}

	w, h, ok := rm.ImageSize("IMAGE_MUG")
	if !ok || w != 70 || h != 80 {
		t.Errorf("ImageSize = %d x %d (%v), want 70 x 80", w, h, ok)
	}
	if _, _, ok := rm.ImageSize("IMAGE_NONE"); ok {
		t.Error("Expected ImageSize to fail for unknown id")
	}
}
