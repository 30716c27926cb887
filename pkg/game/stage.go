package game

import (
	"image"
	"log"
	"sort"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// CameraView 一帧的相机参数
// Size 为正交尺寸（1 = 原始大小，越小画面越大），OffsetX/OffsetY 为屏幕像素偏移
type CameraView struct {
	Size             float64
	OffsetX, OffsetY float64
}

// IdentityView 不缩放、不偏移
var IdentityView = CameraView{Size: 1}

// Stage 场景中精灵的集合，实现 VisualPresenter
//
// 精灵由场景配置声明，按 Layer 从低到高绘制，同层按声明顺序。
// 坐标为世界坐标下的精灵中心点。
type Stage struct {
	resourceManager *ResourceManager
	width, height   float64
	background      string
	sprites         map[string]*stageSprite
	order           []*stageSprite
	warned          map[string]bool
}

type stageSprite struct {
	id       string
	imageID  string
	x, y     float64
	rotation float64 // 弧度
	visible  bool
	layer    int
	fillTop  float64 // 液面顶部相对图片高度的比例
	fill     float64 // 当前填充程度 [0, 1]
	filled   bool    // 是否按填充方式绘制
}

// NewStage 根据场景配置创建舞台
func NewStage(rm *ResourceManager, width, height int, sc *config.SceneConfig) *Stage {
	st := &Stage{
		resourceManager: rm,
		width:           float64(width),
		height:          float64(height),
		background:      sc.Background,
		sprites:         make(map[string]*stageSprite, len(sc.Sprites)),
		warned:          make(map[string]bool),
	}
	for _, spec := range sc.Sprites {
		sp := &stageSprite{
			id:      spec.ID,
			imageID: spec.Image,
			x:       spec.X,
			y:       spec.Y,
			visible: !spec.Hidden,
			layer:   spec.Layer,
			fillTop: spec.FillTop,
			fill:    1,
		}
		st.sprites[spec.ID] = sp
		st.order = append(st.order, sp)
	}
	sort.SliceStable(st.order, func(i, j int) bool {
		return st.order[i].layer < st.order[j].layer
	})
	return st
}

func (st *Stage) sprite(id string) *stageSprite {
	sp, ok := st.sprites[id]
	if !ok && !st.warned[id] {
		st.warned[id] = true
		log.Printf("[Stage] Warning: unknown sprite %s", id)
	}
	return sp
}

// SetVisible 显示/隐藏精灵
func (st *Stage) SetVisible(spriteID string, visible bool) {
	if sp := st.sprite(spriteID); sp != nil {
		sp.visible = visible
	}
}

// SetImage 替换精灵图片
func (st *Stage) SetImage(spriteID, imageID string) {
	if sp := st.sprite(spriteID); sp != nil {
		sp.imageID = imageID
	}
}

// SetTransform 设置精灵中心位置和旋转（弧度）
func (st *Stage) SetTransform(spriteID string, x, y, rotation float64) {
	if sp := st.sprite(spriteID); sp != nil {
		sp.x, sp.y, sp.rotation = x, y, rotation
	}
}

// SetFill 设置填充程度，之后该精灵只绘制图片底部的对应部分
func (st *Stage) SetFill(spriteID string, level float64) {
	if sp := st.sprite(spriteID); sp != nil {
		sp.fill = utils.Clamp01(level)
		sp.filled = true
	}
}

// IsVisible 精灵是否可见（未知精灵返回 false）
func (st *Stage) IsVisible(spriteID string) bool {
	sp, ok := st.sprites[spriteID]
	return ok && sp.visible
}

// Position 返回精灵中心位置
func (st *Stage) Position(spriteID string) (x, y float64, ok bool) {
	sp, ok := st.sprites[spriteID]
	if !ok {
		return 0, 0, false
	}
	return sp.x, sp.y, true
}

// ImageOf 返回精灵当前的图片ID
func (st *Stage) ImageOf(spriteID string) string {
	if sp, ok := st.sprites[spriteID]; ok {
		return sp.imageID
	}
	return ""
}

// ScreenToWorld 屏幕坐标 -> 世界坐标（Draw 中相机变换的逆变换）
func (st *Stage) ScreenToWorld(sx, sy float64, view CameraView) (float64, float64) {
	size := viewSize(view)
	cx, cy := st.width/2, st.height/2
	return (sx-cx-view.OffsetX)*size + cx, (sy-cy-view.OffsetY)*size + cy
}

// Draw 按层级绘制背景和所有可见精灵
func (st *Stage) Draw(screen *ebiten.Image, view CameraView) {
	if st.resourceManager == nil {
		return
	}
	camera := st.cameraGeoM(view)

	if st.background != "" {
		if img := st.resourceManager.GetImageByID(st.background); img != nil {
			op := &ebiten.DrawImageOptions{}
			b := img.Bounds()
			// 背景居中于世界中心
			op.GeoM.Translate(st.width/2-float64(b.Dx())/2, st.height/2-float64(b.Dy())/2)
			op.GeoM.Concat(camera)
			screen.DrawImage(img, op)
		}
	}

	for _, sp := range st.order {
		if !sp.visible {
			continue
		}
		st.drawSprite(screen, sp, camera)
	}
}

func (st *Stage) drawSprite(screen *ebiten.Image, sp *stageSprite, camera ebiten.GeoM) {
	img := st.resourceManager.GetImageByID(sp.imageID)
	if img == nil {
		return
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	top := 0.0

	if sp.filled {
		// 液面从底部向上：[fillTop, 1] 区间按 fill 显示
		top = h - sp.fill*(h-sp.fillTop*h)
		if top >= h {
			return
		}
		img = img.SubImage(image.Rect(b.Min.X, b.Min.Y+int(top), b.Max.X, b.Max.Y)).(*ebiten.Image)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2+top)
	op.GeoM.Rotate(sp.rotation)
	op.GeoM.Translate(sp.x, sp.y)
	op.GeoM.Concat(camera)
	screen.DrawImage(img, op)
}

// cameraGeoM 以屏幕中心为原点缩放 1/Size，再加偏移
func (st *Stage) cameraGeoM(view CameraView) ebiten.GeoM {
	var g ebiten.GeoM
	scale := 1 / viewSize(view)
	g.Translate(-st.width/2, -st.height/2)
	g.Scale(scale, scale)
	g.Translate(st.width/2+view.OffsetX, st.height/2+view.OffsetY)
	return g
}

func viewSize(view CameraView) float64 {
	if view.Size <= 0 {
		return 1
	}
	return view.Size
}
