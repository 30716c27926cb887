package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 根据场景ID创建场景，返回 nil 表示该ID无法创建
type SceneFactory func(sceneID string) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
// SceneManager implements SceneLoader.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
	session      *Session
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use LoadScene or SwitchTo to set the initial scene.
func NewSceneManager(session *Session) *SceneManager {
	return &SceneManager{session: session}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is unloaded first (if it implements Unloadable),
// then the new scene is started (if it implements Startable).
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if u, ok := sm.currentScene.(Unloadable); ok {
		u.Unload()
	}
	sm.currentScene = scene
	if s, ok := scene.(Startable); ok {
		s.Start()
	}
}

// GetCurrentScene 返回当前活动的场景
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadScene 创建并切换到指定ID的场景
//
// 空ID被静默忽略（场景配置中未设置目标场景时不做切换）。
func (sm *SceneManager) LoadScene(sceneID string) {
	if sceneID == "" {
		return
	}
	log.Printf("[SceneManager] 加载场景: %s", sceneID)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return
	}

	// 先记录，场景构造时可以读取会话中的当前场景
	previous := ""
	if sm.session != nil {
		previous = sm.session.CurrentScene
		sm.session.EnterScene(sceneID)
	}

	newScene := sm.sceneFactory(sceneID)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", sceneID)
		if sm.session != nil {
			sm.session.EnterScene(previous)
		}
		return
	}

	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] 成功切换到场景: %s", sceneID)
}

// Update updates the currently active scene.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
