package game

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

// ResourceManager 按资源ID集中管理图片
//
// 图片文件先从磁盘 AssetsPath 查找，再从嵌入资源查找；
// 都找不到时生成配置中指定尺寸和颜色的纯色占位图，并只记录一次日志。
// 非线程安全：只在游戏主循环中使用。
type ResourceManager struct {
	assetsPath string
	specs      map[string]config.ImageSpec
	images     map[string]*ebiten.Image // 资源ID -> 图片
	missing    map[string]bool          // 已记录过缺失日志的资源ID
}

// NewResourceManager 根据游戏配置创建资源管理器（不预加载）
func NewResourceManager(cfg *config.GameConfig) *ResourceManager {
	rm := &ResourceManager{
		assetsPath: cfg.AssetsPath,
		specs:      make(map[string]config.ImageSpec, len(cfg.Images)),
		images:     make(map[string]*ebiten.Image),
		missing:    make(map[string]bool),
	}
	for _, spec := range cfg.Images {
		rm.specs[spec.ID] = spec
	}
	return rm
}

// OpenAsset 打开资源文件：磁盘优先，其次嵌入资源
//
// 参数 p 是相对 AssetsPath 的路径（如 "images/mug.png"）
func (rm *ResourceManager) OpenAsset(p string) (io.ReadCloser, error) {
	if p == "" {
		return nil, fmt.Errorf("empty asset path")
	}

	diskPath := filepath.Join(rm.assetsPath, filepath.FromSlash(p))
	if f, err := os.Open(diskPath); err == nil {
		return f, nil
	}

	f, err := embedded.Open(path.Join("assets", filepath.ToSlash(p)))
	if err != nil {
		return nil, fmt.Errorf("asset %s not found on disk (%s) or embedded: %w", p, diskPath, err)
	}
	return f, nil
}

// LoadImageByID 加载图片（带缓存）
// 文件加载失败时返回错误，调用方可以改用 GetImageByID 获得占位图
func (rm *ResourceManager) LoadImageByID(id string) (*ebiten.Image, error) {
	if img, ok := rm.images[id]; ok {
		return img, nil
	}

	spec, ok := rm.specs[id]
	if !ok {
		return nil, fmt.Errorf("unknown image id: %s", id)
	}

	f, err := rm.OpenAsset(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", id, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", id, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.images[id] = ebitenImg
	return ebitenImg, nil
}

// GetImageByID 返回图片，文件缺失时返回占位图
// 未知ID返回 nil
func (rm *ResourceManager) GetImageByID(id string) *ebiten.Image {
	if img, ok := rm.images[id]; ok {
		return img
	}

	spec, ok := rm.specs[id]
	if !ok {
		if !rm.missing[id] {
			rm.missing[id] = true
			log.Printf("[ResourceManager] Warning: unknown image id %s", id)
		}
		return nil
	}

	img, err := rm.LoadImageByID(id)
	if err == nil {
		return img
	}

	if !rm.missing[id] {
		rm.missing[id] = true
		log.Printf("[ResourceManager] %v, using placeholder", err)
	}
	placeholder := newPlaceholder(spec)
	rm.images[id] = placeholder
	return placeholder
}

// ImageSize 返回图片的配置尺寸（用于布局，不触发加载）
func (rm *ResourceManager) ImageSize(id string) (int, int, bool) {
	spec, ok := rm.specs[id]
	if !ok {
		return 0, 0, false
	}
	return spec.Width, spec.Height, true
}

// newPlaceholder 生成纯色占位图
func newPlaceholder(spec config.ImageSpec) *ebiten.Image {
	w, h := spec.Width, spec.Height
	if w <= 0 {
		w = 64
	}
	if h <= 0 {
		h = 64
	}
	img := ebiten.NewImage(w, h)
	img.Fill(ParseHexColor(spec.Color))
	return img
}

// placeholderMagenta 颜色解析失败时使用的醒目颜色
var placeholderMagenta = color.RGBA{R: 0xFF, G: 0x00, B: 0xFF, A: 0xFF}

// ParseHexColor 解析 "#RRGGBB" 或 "#RRGGBBAA"，失败时返回品红色
func ParseHexColor(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 && len(s) != 8 {
		return placeholderMagenta
	}
	if len(s) == 6 {
		s += "FF"
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return placeholderMagenta
	}
	c := color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
