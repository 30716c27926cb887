package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gonewx/latecoffee/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// HUD 屏幕空间的文字与覆盖层（字幕、计量条、淡入淡出）
// 不受相机缩放和抖动影响
type HUD struct {
	face          *text.GoXFace
	width, height float64
}

// NewHUD 创建 HUD，使用内置的位图字体
func NewHUD(width, height int) *HUD {
	return &HUD{
		face:   text.NewGoXFace(basicfont.Face7x13),
		width:  float64(width),
		height: float64(height),
	}
}

var (
	subtitleBackground = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	meterBackground    = color.RGBA{R: 30, G: 30, B: 30, A: 200}
	meterFill          = color.RGBA{R: 230, G: 180, B: 60, A: 255}
	meterFillDanger    = color.RGBA{R: 220, G: 60, B: 50, A: 255}
	buttonBackground   = color.RGBA{R: 40, G: 32, B: 28, A: 220}
	buttonHover        = color.RGBA{R: 120, G: 80, B: 50, A: 240}
)

// DrawSubtitle 在屏幕底部居中绘制字幕（空字符串不绘制）
func (h *HUD) DrawSubtitle(screen *ebiten.Image, subtitle string) {
	if subtitle == "" {
		return
	}

	textWidth := text.Advance(subtitle, h.face)
	metrics := h.face.Metrics()
	lineHeight := metrics.HAscent + metrics.HDescent

	x := (h.width - textWidth) / 2
	y := h.height - 60
	padding := 8.0

	vector.DrawFilledRect(screen,
		float32(x-padding), float32(y-padding),
		float32(textWidth+padding*2), float32(lineHeight+padding*2),
		subtitleBackground, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, subtitle, h.face, op)
}

// DrawCenteredText 在屏幕指定高度居中绘制文字
func (h *HUD) DrawCenteredText(screen *ebiten.Image, s string, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate((h.width-text.Advance(s, h.face))/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, h.face, op)
}

// DrawChaseMeter 绘制努力值计量条和剩余时间
// 剩余时间不足 3 秒时计量条变红
func (h *HUD) DrawChaseMeter(screen *ebiten.Image, progress, countdown float64) {
	const (
		barWidth  = 300.0
		barHeight = 14.0
		barY      = 20.0
	)
	x := (h.width - barWidth) / 2
	progress = math.Max(0, math.Min(1, progress))

	vector.DrawFilledRect(screen, float32(x-2), float32(barY-2), barWidth+4, barHeight+4, meterBackground, false)

	fill := meterFill
	if countdown < 3 {
		fill = meterFillDanger
	}
	vector.DrawFilledRect(screen, float32(x), float32(barY), float32(barWidth*progress), barHeight, fill, false)

	remaining := fmt.Sprintf("%.1f", math.Max(0, countdown))
	op := &text.DrawOptions{}
	op.GeoM.Translate(x+barWidth+10, barY)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, remaining, h.face, op)
}

// DrawButton 绘制菜单按钮，文字在矩形内居中
func (h *HUD) DrawButton(screen *ebiten.Image, r utils.Rect, label string, hovered bool) {
	bg := buttonBackground
	if hovered {
		bg = buttonHover
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bg, false)

	metrics := h.face.Metrics()
	lineHeight := metrics.HAscent + metrics.HDescent
	op := &text.DrawOptions{}
	op.GeoM.Translate(r.X+(r.W-text.Advance(label, h.face))/2, r.Y+(r.H-lineHeight)/2)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, label, h.face, op)
}

// DrawFade 绘制全屏黑色覆盖层，alpha 为 0 时不绘制
func (h *HUD) DrawFade(screen *ebiten.Image, alpha float64) {
	if alpha <= 0 {
		return
	}
	a := uint8(math.Round(math.Min(1, alpha) * 255))
	vector.DrawFilledRect(screen, 0, 0, float32(h.width), float32(h.height), color.RGBA{A: a}, false)
}
