package systems

import (
	"math"
	"testing"

	"github.com/gonewx/latecoffee/pkg/components"
	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/entities"
	"github.com/gonewx/latecoffee/pkg/game"
)

type chaseFixture struct {
	em     *ecs.EntityManager
	fake   *fakeServices
	media  *fakeMedia
	fade   *FadeSystem
	camera *CameraFeedbackSystem
	shake  *ShakeSystem
	chase  *ChaseSystem
	entity ecs.EntityID
}

func defaultChaseConfig() *config.ChaseConfig {
	return &config.ChaseConfig{
		Required:         40,
		Increment:        2,
		DecayRate:        5,
		TimeLimit:        10,
		ShakeMax:         6,
		BreathClip:       "breath",
		BreathVolumeMin:  0.2,
		BreathVolumeMax:  1.0,
		BreathPitchMin:   0.85,
		BreathPitchMax:   1.3,
		MusicClip:        "music",
		FootstepClip:     "steps",
		NarrationClips:   []string{"n1", "n2", "n3", "win"},
		NarrationOffsets: []float64{1.5, 4, 6.5, 8.5},
		FailureClip:      "caught",
		LosePause:        1.5,
		FadeDuration:     1,
		BackgroundSprite: "street",
		NextScene:        "ending",
		GameOverScene:    "game_over",
		Camera:           config.CameraFeedbackConfig{BaseSize: 1, MinSize: 0.8, SmoothRate: 4, BobAmplitude: 8, BobFrequency: 2},
		Shake:            config.ShakeConfig{Frequency: 12, Seed: 3},
	}
}

func newChaseFixture(cfg *config.ChaseConfig, withMedia bool) *chaseFixture {
	f := &chaseFixture{em: ecs.NewEntityManager(), fake: newFakeServices(nil)}
	f.fade = NewFadeSystem(f.em)
	f.camera = NewCameraFeedbackSystem(f.em, cfg.Camera)
	f.shake = NewShakeSystem(f.em, cfg.Shake)
	f.entity = entities.NewChaseEntity(f.em, cfg)

	services := f.fake.services()
	if withMedia {
		f.media = &fakeMedia{prepareLeft: 3}
		services.Media = f.media
	}
	f.chase = NewChaseSystem(f.em, f.entity, f.fade, f.camera, f.shake, services)
	return f
}

// tick 按场景中的顺序更新一帧
func (f *chaseFixture) tick(dt float64, presses int) {
	f.chase.Update(dt, runPresses(presses))
	f.fade.Update(dt)
	f.camera.Update(dt)
	f.shake.Update(dt)
}

func (f *chaseFixture) component() *components.ChaseComponent {
	c, _ := ecs.GetComponent[*components.ChaseComponent](f.em, f.entity)
	return c
}

func TestChaseSystem_BeginIsOneShot(t *testing.T) {
	f := newChaseFixture(defaultChaseConfig(), false)

	// Begin 之前 Update 不处理输入
	f.tick(frameDT, 5)
	if f.chase.Phase() != components.ChasePhaseIdle || f.chase.Meter() != 0 {
		t.Fatalf("Idle chase processed input: phase=%s meter=%v", f.chase.Phase(), f.chase.Meter())
	}

	f.chase.Begin()
	if f.chase.Phase() != components.ChasePhaseChasing {
		t.Fatalf("Expected Chasing after Begin, got %s", f.chase.Phase())
	}
	if !f.fake.audio.looping["breath"] || !f.fake.audio.looping["music"] || !f.fake.audio.looping["steps"] {
		t.Error("Expected breath, music and footstep loops to start")
	}

	f.tick(1.0, 3)
	meter := f.chase.Meter()
	f.chase.Begin()
	if f.chase.Meter() != meter || f.chase.Phase() != components.ChasePhaseChasing {
		t.Error("second Begin must be a no-op")
	}
}

func TestChaseSystem_MeterStaysInBounds(t *testing.T) {
	cfg := defaultChaseConfig()
	cfg.Required = 1000 // 不让胜利提前结束本测试
	cfg.TimeLimit = 100
	f := newChaseFixture(cfg, false)
	f.chase.Begin()

	pattern := []int{0, 0, 7, 0, 1, 0, 0, 0, 40, 0, 0, 0, 0, 0, 0, 3}
	for i := 0; i < 2000 && f.chase.Phase() == components.ChasePhaseChasing; i++ {
		dt := frameDT
		if i%97 == 0 {
			dt = 0.5 // 偶发长帧
		}
		f.tick(dt, pattern[i%len(pattern)])

		m := f.chase.Meter()
		if m < 0 || m > cfg.Required {
			t.Fatalf("frame %d: meter %v left [0, %v]", i, m, cfg.Required)
		}
		if p := f.chase.Progress(); p < 0 || p > 1 {
			t.Fatalf("frame %d: progress %v left [0, 1]", i, p)
		}
	}
}

func TestChaseSystem_TerminalPhaseIsIdempotent(t *testing.T) {
	f := newChaseFixture(defaultChaseConfig(), false)
	f.chase.Begin()
	f.tick(frameDT, 25) // 50 >= 40，立即胜利

	if f.chase.Phase() != components.ChasePhaseWon {
		t.Fatalf("Expected Won, got %s", f.chase.Phase())
	}
	meter, countdown := f.chase.Meter(), f.chase.Countdown()

	for i := 0; i < 600; i++ {
		f.tick(frameDT, 10)
	}
	if f.chase.Phase() != components.ChasePhaseWon {
		t.Errorf("terminal phase changed to %s", f.chase.Phase())
	}
	if f.chase.Meter() != meter || f.chase.Countdown() != countdown {
		t.Errorf("terminal phase kept processing: meter %v->%v countdown %v->%v",
			meter, f.chase.Meter(), countdown, f.chase.Countdown())
	}
}

func TestChaseSystem_WinBeatsLoseOnSameTick(t *testing.T) {
	cfg := defaultChaseConfig()
	cfg.TimeLimit = 1
	f := newChaseFixture(cfg, false)
	f.chase.Begin()

	// 同一帧：倒计时归零，且计量条达到要求
	f.tick(1.0, 25)

	if f.chase.Countdown() > 0 {
		t.Fatalf("Expected countdown <= 0, got %v", f.chase.Countdown())
	}
	if f.chase.Phase() != components.ChasePhaseWon {
		t.Errorf("Expected Won on simultaneous trigger, got %s", f.chase.Phase())
	}
}

func TestChaseSystem_WinPath_TransitionFiresOnce(t *testing.T) {
	f := newChaseFixture(defaultChaseConfig(), false)
	f.chase.Begin()
	f.tick(frameDT, 25)

	audio := f.fake.audio
	if audio.looping["breath"] || audio.looping["music"] || audio.looping["steps"] {
		t.Error("looping audio not stopped on win")
	}
	if audio.playCount("win") != 1 {
		t.Errorf("Expected reserved win cue to play once, got %d", audio.playCount("win"))
	}
	if f.shake.Amplitude() != 0 {
		t.Errorf("Expected shake amplitude reset to 0, got %v", f.shake.Amplitude())
	}

	for i := 0; i < 600; i++ {
		f.tick(frameDT, 0)
	}
	if len(f.fake.loader.loads) != 1 || f.fake.loader.loads[0] != "ending" {
		t.Errorf("Expected exactly one load of 'ending', got %v", f.fake.loader.loads)
	}
	if f.fade.Alpha() != 1 {
		t.Errorf("Expected opaque fade before transition, got %v", f.fade.Alpha())
	}
}

func TestChaseSystem_WinPath_WithEndingMedia(t *testing.T) {
	cfg := defaultChaseConfig()
	cfg.EndingMedia = "ENDING"
	f := newChaseFixture(cfg, true)
	f.chase.Begin()
	f.tick(frameDT, 25)

	// 淡出完成前不准备媒体
	f.tick(0.5, 0)
	if f.media.clip != "" {
		t.Fatal("media prepared before fade-out completed")
	}

	for i := 0; i < 120 && !f.media.playing; i++ {
		f.tick(frameDT, 0)
	}
	if f.media.clip != "ENDING" || !f.media.playing {
		t.Fatalf("Expected ENDING media to be prepared and played, got clip=%q playing=%v", f.media.clip, f.media.playing)
	}
	if visible, set := f.fake.presenter.visible["street"]; !set || visible {
		t.Error("Expected background sprite hidden during ending media")
	}

	// 媒体播放期间不切换场景
	for i := 0; i < 600; i++ {
		f.tick(frameDT, 0)
	}
	if len(f.fake.loader.loads) != 0 {
		t.Fatalf("scene loaded while media still playing: %v", f.fake.loader.loads)
	}
	if !f.chase.IsPlayingMedia() {
		t.Error("Expected IsPlayingMedia while media plays")
	}
	if f.fade.Alpha() != 0 {
		t.Errorf("Expected fade back to transparent during media, got %v", f.fade.Alpha())
	}

	f.media.finished = true
	for i := 0; i < 600; i++ {
		f.tick(frameDT, 0)
	}
	if len(f.fake.loader.loads) != 1 || f.fake.loader.loads[0] != "ending" {
		t.Errorf("Expected exactly one load of 'ending', got %v", f.fake.loader.loads)
	}
}

func TestChaseSystem_LosePath(t *testing.T) {
	f := newChaseFixture(defaultChaseConfig(), false)
	loseCalls := 0
	f.chase.SetLoseCallback(func() { loseCalls++ })
	f.chase.Begin()

	for i := 0; i < 700 && !f.chase.Phase().IsTerminal(); i++ {
		f.tick(frameDT, 0)
	}
	if f.chase.Phase() != components.ChasePhaseLost {
		t.Fatalf("Expected Lost, got %s", f.chase.Phase())
	}
	if f.fake.audio.playCount("caught") != 1 {
		t.Errorf("Expected failure cue once, got %d", f.fake.audio.playCount("caught"))
	}
	if f.fake.audio.looping["breath"] {
		t.Error("breathing loop not stopped on lose")
	}

	// 停顿期间不淡出
	f.tick(1.0, 0)
	if f.fade.Alpha() != 0 {
		t.Errorf("fade started during lose pause, alpha=%v", f.fade.Alpha())
	}

	for i := 0; i < 600; i++ {
		f.tick(frameDT, 0)
	}
	if loseCalls != 1 {
		t.Errorf("Expected lose callback once, got %d", loseCalls)
	}
	if len(f.fake.loader.loads) != 1 || f.fake.loader.loads[0] != "game_over" {
		t.Errorf("Expected exactly one load of 'game_over', got %v", f.fake.loader.loads)
	}
}

func TestChaseSystem_EmptyTargetSuppressesTransition(t *testing.T) {
	cfg := defaultChaseConfig()
	cfg.NextScene = ""
	f := newChaseFixture(cfg, false)
	f.chase.Begin()
	f.tick(frameDT, 25)
	for i := 0; i < 300; i++ {
		f.tick(frameDT, 0)
	}
	if len(f.fake.loader.loads) != 0 {
		t.Errorf("Expected no transition, got %v", f.fake.loader.loads)
	}
}

func TestChaseSystem_NilCollaborators(t *testing.T) {
	cfg := defaultChaseConfig()
	em := ecs.NewEntityManager()
	id := entities.NewChaseEntity(em, cfg)
	chase := NewChaseSystem(em, id, nil, nil, nil, game.Services{})

	chase.Begin()
	for i := 0; i < 30; i++ {
		chase.Update(frameDT, runPresses(1))
	}
	if chase.Phase() != components.ChasePhaseWon {
		t.Fatalf("Expected Won without collaborators, got %s", chase.Phase())
	}
	chase.Update(frameDT, idle)
	c, _ := ecs.GetComponent[*components.ChaseComponent](em, id)
	if !c.TransitionFired || c.Outro != components.OutroStepDone {
		t.Error("Expected outro to finish immediately without fade or loader")
	}
}

func TestChaseSystem_FeedbackMapping(t *testing.T) {
	cfg := defaultChaseConfig()
	cfg.DecayRate = 0
	cfg.Increment = 20
	f := newChaseFixture(cfg, false)
	f.chase.Begin()

	// 进度 0：呼吸声最大、最高
	if v := f.fake.audio.volume["breath"]; v != 1.0 {
		t.Errorf("Expected breath volume 1.0 at progress 0, got %v", v)
	}

	f.tick(frameDT, 1) // meter = 20 -> progress 0.5

	if p := f.chase.Progress(); math.Abs(p-0.5) > 1e-9 {
		t.Fatalf("Expected progress 0.5, got %v", p)
	}
	if v := f.fake.audio.volume["breath"]; math.Abs(v-0.6) > 1e-9 {
		t.Errorf("Expected breath volume 0.6, got %v", v)
	}
	if p := f.fake.audio.pitch["breath"]; math.Abs(p-1.075) > 1e-9 {
		t.Errorf("Expected breath pitch 1.075, got %v", p)
	}
	if a := f.shake.Amplitude(); math.Abs(a-3) > 1e-9 {
		t.Errorf("Expected shake amplitude 3, got %v", a)
	}
	cam, _ := ecs.GetComponent[*components.CameraFeedbackComponent](f.em, f.camera.cameraEntity)
	if cam.Input != 0.5 {
		t.Errorf("Expected camera input 0.5, got %v", cam.Input)
	}
}

func TestChaseProgress(t *testing.T) {
	tests := []struct {
		name            string
		meter, required float64
		want            float64
	}{
		{"zero required", 5, 0, 0},
		{"negative required", 5, -1, 0},
		{"half", 20, 40, 0.5},
		{"full", 40, 40, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChaseProgress(tt.meter, tt.required); got != tt.want {
				t.Errorf("ChaseProgress(%v, %v) = %v, want %v", tt.meter, tt.required, got, tt.want)
			}
		})
	}
}

func TestNextNarrationIndex(t *testing.T) {
	tests := []struct {
		index, total, want int
	}{
		{0, 0, 0},
		{0, 1, 0},
		{0, 2, 0},
		{0, 4, 1},
		{1, 4, 2},
		{2, 4, 2},
		{5, 4, 2},
	}
	for _, tt := range tests {
		if got := NextNarrationIndex(tt.index, tt.total); got != tt.want {
			t.Errorf("NextNarrationIndex(%d, %d) = %d, want %d", tt.index, tt.total, got, tt.want)
		}
	}
}

func TestChaseSystem_NarrationReservesWinCue(t *testing.T) {
	cfg := defaultChaseConfig()
	cfg.NarrationOffsets = []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5}
	f := newChaseFixture(cfg, false)
	f.chase.Begin()

	total := len(cfg.NarrationClips)
	for i := 0; i < 700 && !f.chase.Phase().IsTerminal(); i++ {
		f.tick(frameDT, 0)
		if idx := f.component().NarrationIndex; idx > total-2 {
			t.Fatalf("narration index %d exceeded %d", idx, total-2)
		}
	}

	if f.fake.audio.playCount("win") != 0 {
		t.Error("win cue played before a win")
	}
	if got := f.component().NarrationFired; got != len(cfg.NarrationOffsets) {
		t.Errorf("Expected %d narration fires, got %d", len(cfg.NarrationOffsets), got)
	}
	if f.fake.audio.playCount("n3") != 5 {
		t.Errorf("Expected n3 to repeat for the remaining cues, got %d plays", f.fake.audio.playCount("n3"))
	}
}

func TestChaseSystem_NarrationAbortedAfterEnd(t *testing.T) {
	f := newChaseFixture(defaultChaseConfig(), false)
	f.chase.Begin()
	f.tick(frameDT, 25) // 第一条旁白之前胜利

	for i := 0; i < 600; i++ {
		f.tick(frameDT, 0)
	}
	for _, clip := range []string{"n1", "n2", "n3"} {
		if n := f.fake.audio.playCount(clip); n != 0 {
			t.Errorf("narration %s fired %d times after chase ended", clip, n)
		}
	}
}

func TestChaseSystem_EndToEnd(t *testing.T) {
	tests := []struct {
		name       string
		pressEvery int // 每隔多少帧按一次
		maxPresses int
		wantPhase  components.ChasePhase
		maxSeconds float64
	}{
		{"25 presses within 2 seconds wins", 3, 25, components.ChasePhaseWon, 2},
		{"2 presses in 10 seconds loses", 300, 2, components.ChasePhaseLost, 10.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultChaseConfig()
			f := newChaseFixture(cfg, false)
			f.chase.Begin()

			presses := 0
			elapsed := 0.0
			for frame := 0; frame < 1200 && !f.chase.Phase().IsTerminal(); frame++ {
				n := 0
				if frame%tt.pressEvery == 0 && presses < tt.maxPresses {
					n = 1
					presses++
				}
				f.tick(frameDT, n)
				elapsed += frameDT
			}

			if f.chase.Phase() != tt.wantPhase {
				t.Fatalf("Expected %s, got %s (meter=%.2f, countdown=%.2f)",
					tt.wantPhase, f.chase.Phase(), f.chase.Meter(), f.chase.Countdown())
			}
			if elapsed > tt.maxSeconds {
				t.Errorf("Expected terminal phase within %.1fs, took %.2fs", tt.maxSeconds, elapsed)
			}
			if tt.wantPhase == components.ChasePhaseWon && f.chase.Countdown() <= 0 {
				t.Error("won after countdown lapsed")
			}
		})
	}
}

func TestChaseSystem_OpeningMediaThenBegin(t *testing.T) {
	cfg := defaultChaseConfig()
	cfg.OpeningMedia = "OPENING"
	cfg.StartDelay = 0.25
	cfg.AmbientClip = "ambient"
	f := newChaseFixture(cfg, true)

	f.chase.Start()
	if !f.fake.audio.looping["ambient"] {
		t.Error("Expected ambient loop started with the scene")
	}
	if f.media.clip != "OPENING" {
		t.Fatalf("Expected opening media prepared, got %q", f.media.clip)
	}
	if visible, set := f.fake.presenter.visible["street"]; !set || visible {
		t.Error("Expected background hidden during the opening")
	}

	// 过场播放期间不开始追逐，按键被忽略
	for i := 0; i < 300; i++ {
		f.tick(frameDT, 1)
	}
	if f.chase.Phase() != components.ChasePhaseIdle {
		t.Fatalf("chase began during the opening: %s", f.chase.Phase())
	}
	if !f.media.playing || !f.chase.IsPlayingMedia() {
		t.Fatal("Expected opening media playing")
	}

	f.media.finished = true
	f.tick(frameDT, 0)
	f.tick(0.1, 0)
	if f.chase.Phase() != components.ChasePhaseIdle {
		t.Fatal("chase began before the start delay elapsed")
	}

	f.tick(0.2, 0)
	if f.chase.Phase() != components.ChasePhaseChasing {
		t.Fatalf("Expected Chasing after the start delay, got %s", f.chase.Phase())
	}
	if !f.fake.presenter.visible["street"] {
		t.Error("Expected background shown again for the chase")
	}
	if f.chase.IsPlayingMedia() {
		t.Error("opening media still reported after the chase began")
	}

	// 重复 Start 无效
	f.fake.audio.Stop("ambient")
	f.chase.Start()
	if f.fake.audio.looping["ambient"] || f.chase.Phase() != components.ChasePhaseChasing {
		t.Error("second Start should be a no-op")
	}
}

func TestChaseSystem_StartWithoutOpeningWaitsStartDelay(t *testing.T) {
	cfg := defaultChaseConfig()
	cfg.OpeningMedia = "OPENING"
	cfg.StartDelay = 0.5
	f := newChaseFixture(cfg, false)

	f.chase.Start()
	f.tick(0.3, 0)
	if f.chase.Phase() != components.ChasePhaseIdle {
		t.Fatal("chase began before the start delay")
	}
	f.tick(0.3, 0)
	if f.chase.Phase() != components.ChasePhaseChasing {
		t.Fatalf("Expected Chasing, got %s", f.chase.Phase())
	}
	if _, set := f.fake.presenter.visible["street"]; set {
		t.Error("background should not be touched without a media player")
	}
}

func TestChaseSystem_AmbientSurvivesOutro(t *testing.T) {
	cfg := defaultChaseConfig()
	cfg.AmbientClip = "ambient"
	f := newChaseFixture(cfg, false)

	f.chase.Start()
	f.tick(frameDT, 0)
	if f.chase.Phase() != components.ChasePhaseChasing {
		t.Fatalf("Expected Chasing, got %s", f.chase.Phase())
	}

	f.tick(frameDT, 25)
	for i := 0; i < 120; i++ {
		f.tick(frameDT, 0)
	}
	if f.chase.Phase() != components.ChasePhaseWon {
		t.Fatalf("Expected Won, got %s", f.chase.Phase())
	}
	if f.fake.audio.looping["breath"] || f.fake.audio.looping["music"] {
		t.Error("chase loops should stop on win")
	}
	if !f.fake.audio.looping["ambient"] {
		t.Error("ambient loop should keep playing through the outro")
	}
}
