package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., intro comic, kitchen, chase).
// Each scene owns its own entity manager and systems; all of its state is
// created when the scene is built and discarded when it is replaced.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Unloadable 是一个可选接口，场景被替换时调用 Unload()
//
// 用于停止场景自己启动的循环音效等资源。
type Unloadable interface {
	Unload()
}

// Startable 是一个可选接口，场景成为当前场景后调用 Start()
//
// 场景在 Start 中开始播放音乐和配音：此时上一个场景已经卸载，
// 它停止的声音不会波及新场景。
type Startable interface {
	Start()
}
