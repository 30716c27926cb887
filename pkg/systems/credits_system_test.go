package systems

import (
	"testing"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/ecs"
	"github.com/gonewx/latecoffee/pkg/entities"
	"github.com/gonewx/latecoffee/pkg/utils"
)

func newCreditsFixture(next string) (*CreditsSystem, *FadeSystem, *fakeServices) {
	em := ecs.NewEntityManager()
	fake := newFakeServices(nil)
	fade := NewFadeSystem(em)
	id := entities.NewCreditsEntity(em, &config.CreditsConfig{
		Lines:        []string{"LATE COFFEE", "", "Thanks for playing"},
		ScrollSpeed:  100,
		LineSpacing:  20,
		InputDelay:   1,
		FadeDuration: 0.5,
		NextScene:    next,
	}, 200)
	return NewCreditsSystem(em, id, fade, fake.services()), fade, fake
}

func TestCreditsSystem_RollsThenLoads(t *testing.T) {
	s, fade, fake := newCreditsFixture("menu")

	for i := 0; i < 60; i++ {
		s.Update(frameDT, idle)
		fade.Update(frameDT)
	}
	if y := s.LineY(0, 200); y >= 200 || y <= 0 {
		t.Errorf("Expected first line on screen, got y=%v", y)
	}

	// 距离 = 200 + 3*20 = 260 像素，速度 100 → 2.6 秒
	for i := 0; i < 90; i++ {
		s.Update(frameDT, idle)
		fade.Update(frameDT)
	}
	if fade.Alpha() != 0 || len(fake.loader.loads) != 0 {
		t.Fatal("credits ended early")
	}

	for i := 0; i < 120; i++ {
		s.Update(frameDT, idle)
		fade.Update(frameDT)
	}
	if len(fake.loader.loads) != 1 || fake.loader.loads[0] != "menu" {
		t.Errorf("Expected a single load of menu, got %v", fake.loader.loads)
	}
}

func TestCreditsSystem_SkipAfterInputDelay(t *testing.T) {
	s, fade, fake := newCreditsFixture("menu")

	// 输入延迟内的点击无效
	s.Update(0.5, utils.InputSnapshot{SkipPressed: true})
	fade.Update(0.5)
	s.Update(frameDT, idle)
	if fade.Alpha() != 0 {
		t.Fatal("skip accepted during input delay")
	}

	s.Update(0.6, click(0, 0))
	for i := 0; i < 60; i++ {
		fade.Update(frameDT)
		s.Update(frameDT, click(0, 0))
	}
	if len(fake.loader.loads) != 1 || fake.loader.loads[0] != "menu" {
		t.Errorf("Expected a single load of menu, got %v", fake.loader.loads)
	}
}

func TestCreditsSystem_EmptyNextSceneSuppressed(t *testing.T) {
	s, fade, fake := newCreditsFixture("")
	for i := 0; i < 600; i++ {
		s.Update(frameDT, idle)
		fade.Update(frameDT)
	}
	if len(fake.loader.loads) != 0 {
		t.Errorf("Expected no transition, got %v", fake.loader.loads)
	}
}
