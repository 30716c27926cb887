package scenes

import (
	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gonewx/latecoffee/pkg/entities"
	"github.com/gonewx/latecoffee/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// DialogueScene 漫画分镜/对话场景：点击逐格推进，结束后淡出切换
type DialogueScene struct {
	*sceneBase
	dialogueSystem *systems.DialogueSystem
}

// NewDialogueScene 创建对话场景
func NewDialogueScene(rt *Runtime, sc *config.SceneConfig) *DialogueScene {
	base := newSceneBase(rt, sc)
	entity := entities.NewDialogueEntity(base.entityManager, sc.Dialogue)

	s := &DialogueScene{
		sceneBase:      base,
		dialogueSystem: systems.NewDialogueSystem(base.entityManager, entity, base.fadeSystem, base.services),
	}
	return s
}

// Start 显示第一个分镜并播放配音
func (s *DialogueScene) Start() {
	s.sceneBase.Start()
	s.dialogueSystem.Start()
}

// Update 推进对话和共有系统
func (s *DialogueScene) Update(deltaTime float64) {
	in := s.pollInput()
	s.dialogueSystem.Update(deltaTime, in)
	s.updateCommon(deltaTime, in)
}

// Draw 绘制当前分镜和对白
func (s *DialogueScene) Draw(screen *ebiten.Image) {
	s.drawWorld(screen)
	s.drawOverlay(screen, s.dialogueSystem.CurrentText())
}
