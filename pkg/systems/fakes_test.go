package systems

import (
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// 测试替身：记录调用，状态可由测试直接控制

type fakeAudio struct {
	playing map[string]bool
	looping map[string]bool
	volume  map[string]float64
	pitch   map[string]float64
	plays   []string
	stops   []string
}

func newFakeAudio() *fakeAudio {
	return &fakeAudio{
		playing: make(map[string]bool),
		looping: make(map[string]bool),
		volume:  make(map[string]float64),
		pitch:   make(map[string]float64),
	}
}

func (a *fakeAudio) Play(clipID string) {
	a.playing[clipID] = true
	a.plays = append(a.plays, clipID)
}

func (a *fakeAudio) PlayLoop(clipID string) {
	a.playing[clipID] = true
	a.looping[clipID] = true
}

func (a *fakeAudio) Stop(clipID string) {
	a.playing[clipID] = false
	a.looping[clipID] = false
	a.stops = append(a.stops, clipID)
}

func (a *fakeAudio) IsPlaying(clipID string) bool { return a.playing[clipID] }

func (a *fakeAudio) SetVolume(clipID string, volume float64) { a.volume[clipID] = volume }

func (a *fakeAudio) SetPitch(clipID string, pitch float64) { a.pitch[clipID] = pitch }

// finish 模拟一次性音频自然播放结束
func (a *fakeAudio) finish(clipID string) { a.playing[clipID] = false }

func (a *fakeAudio) playCount(clipID string) int {
	n := 0
	for _, c := range a.plays {
		if c == clipID {
			n++
		}
	}
	return n
}

type transform struct {
	x, y, rotation float64
}

type fakePresenter struct {
	visible    map[string]bool
	images     map[string]string
	transforms map[string]transform
	fills      map[string]float64
}

func newFakePresenter() *fakePresenter {
	return &fakePresenter{
		visible:    make(map[string]bool),
		images:     make(map[string]string),
		transforms: make(map[string]transform),
		fills:      make(map[string]float64),
	}
}

func (p *fakePresenter) SetVisible(spriteID string, visible bool) { p.visible[spriteID] = visible }

func (p *fakePresenter) SetImage(spriteID, imageID string) { p.images[spriteID] = imageID }

func (p *fakePresenter) SetTransform(spriteID string, x, y, rotation float64) {
	p.transforms[spriteID] = transform{x, y, rotation}
}

func (p *fakePresenter) SetFill(spriteID string, level float64) { p.fills[spriteID] = level }

type fakeLoader struct {
	loads []string
}

func (l *fakeLoader) LoadScene(sceneID string) { l.loads = append(l.loads, sceneID) }

type fakeMedia struct {
	clip        string
	prepareLeft int // 还需多少次 IsPrepared 轮询才准备完成
	playing     bool
	finished    bool
}

func (m *fakeMedia) Prepare(clipID string) { m.clip = clipID }

func (m *fakeMedia) IsPrepared() bool {
	if m.clip == "" {
		return false
	}
	if m.prepareLeft > 0 {
		m.prepareLeft--
		return false
	}
	return true
}

func (m *fakeMedia) Play() { m.playing = true }

func (m *fakeMedia) IsFinished() bool { return m.finished }

type fakeServices struct {
	audio     *fakeAudio
	presenter *fakePresenter
	loader    *fakeLoader
	zones     *game.ZoneMap
}

func newFakeServices(zones map[string]utils.Rect) *fakeServices {
	return &fakeServices{
		audio:     newFakeAudio(),
		presenter: newFakePresenter(),
		loader:    &fakeLoader{},
		zones:     game.NewZoneMap(zones),
	}
}

func (f *fakeServices) services() game.Services {
	return game.Services{
		Loader:    f.loader,
		Audio:     f.audio,
		Presenter: f.presenter,
		Zones:     f.zones,
	}
}

const frameDT = 1.0 / 60.0

// idle 空输入
var idle = utils.InputSnapshot{}

func click(x, y float64) utils.InputSnapshot {
	return utils.InputSnapshot{PointerX: x, PointerY: y, PointerPressed: true, PointerHeld: true}
}

func hold(x, y float64) utils.InputSnapshot {
	return utils.InputSnapshot{PointerX: x, PointerY: y, PointerHeld: true}
}

func release(x, y float64) utils.InputSnapshot {
	return utils.InputSnapshot{PointerX: x, PointerY: y, PointerReleased: true}
}

func runPresses(n int) utils.InputSnapshot {
	return utils.InputSnapshot{RunPresses: n}
}
