package scenes

import (
	"log"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/game"
	"github.com/gonewx/latecoffee/pkg/utils"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// InputSource 每帧提供一次输入快照（utils.InputPoller 实现）
type InputSource interface {
	Poll() utils.InputSnapshot
}

// Runtime 所有场景共享的运行时依赖
//
// Resources / Audio / Media / Input 都可以为 nil：
// 对应的绘制、声音、过场和输入被跳过。
type Runtime struct {
	Config    *config.GameConfig
	Resources *game.ResourceManager
	Audio     game.AudioChannel
	Loader    game.SceneLoader
	Session   *game.Session
	Input     InputSource
}

// NewSceneFactory 返回按场景配置类型创建场景的工厂函数
// 未知场景ID返回 nil（SceneManager 记录错误并保持当前场景）
func NewSceneFactory(rt *Runtime) game.SceneFactory {
	return func(sceneID string) game.Scene {
		sc, ok := rt.Config.Scene(sceneID)
		if !ok {
			log.Printf("[SceneFactory] 未知场景: %s", sceneID)
			return nil
		}

		switch sc.Type {
		case config.SceneTypeDialogue:
			return NewDialogueScene(rt, sc)
		case config.SceneTypeKitchen:
			return NewKitchenScene(rt, sc)
		case config.SceneTypeChase:
			return NewChaseScene(rt, sc)
		case config.SceneTypeGameOver:
			return NewGameOverScene(rt, sc)
		case config.SceneTypeMenu:
			return NewMenuScene(rt, sc)
		case config.SceneTypeCredits:
			return NewCreditsScene(rt, sc)
		default:
			log.Printf("[SceneFactory] 场景 %s 类型未知: %s", sceneID, sc.Type)
			return nil
		}
	}
}
