package game

import (
	"log"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

type slideshowState int

const (
	slideshowIdle slideshowState = iota
	slideshowPreparing
	slideshowPrepared
	slideshowPlaying
	slideshowFinished
)

// SlideshowPlayer 过场媒体播放器，实现 MediaPlayer
//
// 过场是按时长依次显示的全屏图片，可伴随一段音频。
// Prepare 在下一次 Update 时完成（预加载所有图片）。
// 未知的过场ID视为已准备、播放立即完成，调用方不会被卡住。
type SlideshowPlayer struct {
	resourceManager *ResourceManager
	audio           AudioChannel
	gameConfig      *config.GameConfig

	show    *config.SlideshowSpec
	state   slideshowState
	elapsed float64
	index   int
}

// NewSlideshowPlayer 创建过场播放器；audio 可为 nil
func NewSlideshowPlayer(rm *ResourceManager, audio AudioChannel, cfg *config.GameConfig) *SlideshowPlayer {
	return &SlideshowPlayer{resourceManager: rm, audio: audio, gameConfig: cfg}
}

// Prepare 开始准备指定过场
func (p *SlideshowPlayer) Prepare(clipID string) {
	p.elapsed = 0
	p.index = 0

	show, ok := p.gameConfig.Slideshow(clipID)
	if !ok {
		log.Printf("[SlideshowPlayer] Warning: unknown slideshow %s, skipping", clipID)
		p.show = nil
		p.state = slideshowFinished
		return
	}
	p.show = show
	p.state = slideshowPreparing
}

// IsPrepared 是否可以开始播放
func (p *SlideshowPlayer) IsPrepared() bool {
	return p.state == slideshowPrepared || p.state == slideshowFinished
}

// Play 开始播放（未准备好时为空操作）
func (p *SlideshowPlayer) Play() {
	if p.state != slideshowPrepared {
		return
	}
	p.state = slideshowPlaying
	p.elapsed = 0
	p.index = 0
	if p.audio != nil && p.show.Clip != "" {
		p.audio.Play(p.show.Clip)
	}
	log.Printf("[SlideshowPlayer] 播放过场: %s (%d 帧)", p.show.ID, len(p.show.Slides))
}

// IsFinished 所有帧是否已显示完毕
func (p *SlideshowPlayer) IsFinished() bool {
	return p.state == slideshowFinished
}

// Update 推进准备和播放进度
func (p *SlideshowPlayer) Update(dt float64) {
	switch p.state {
	case slideshowPreparing:
		if p.resourceManager != nil {
			for _, slide := range p.show.Slides {
				p.resourceManager.GetImageByID(slide.Image)
			}
		}
		p.state = slideshowPrepared

	case slideshowPlaying:
		p.elapsed += dt
		end := 0.0
		for i, slide := range p.show.Slides {
			end += slide.Duration
			if p.elapsed < end {
				p.index = i
				return
			}
		}
		p.index = len(p.show.Slides) - 1
		p.state = slideshowFinished
	}
}

// CurrentSlide 当前帧的图片ID（未在播放时为空）
func (p *SlideshowPlayer) CurrentSlide() string {
	if p.show == nil || len(p.show.Slides) == 0 {
		return ""
	}
	if p.state != slideshowPlaying && p.state != slideshowFinished {
		return ""
	}
	return p.show.Slides[p.index].Image
}

// Draw 将当前帧拉伸绘制到整个屏幕；播放结束后保持最后一帧
func (p *SlideshowPlayer) Draw(screen *ebiten.Image) {
	id := p.CurrentSlide()
	if id == "" || p.resourceManager == nil {
		return
	}
	img := p.resourceManager.GetImageByID(id)
	if img == nil {
		return
	}

	sb := screen.Bounds()
	ib := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sb.Dx())/float64(ib.Dx()), float64(sb.Dy())/float64(ib.Dy()))
	screen.DrawImage(img, op)
}
