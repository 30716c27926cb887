package game

import (
	"log"

	"github.com/google/uuid"
)

// Session 一次游戏运行的会话状态
//
// 由 App 创建并显式传给每个场景，取代全局单例。
// 不做持久化：进程退出即丢弃。
type Session struct {
	// ID 会话标识（日志关联用）
	ID string
	// CurrentScene 当前场景ID
	CurrentScene string
	// RetryScene 最近一次失败的场景ID（游戏结束场景"重试"的目标）
	RetryScene string
	// Attempts 每个场景的失败次数
	Attempts map[string]int

	quitRequested bool
}

// NewSession 创建新会话
func NewSession() *Session {
	s := &Session{
		ID:       uuid.NewString(),
		Attempts: make(map[string]int),
	}
	log.Printf("[Session] 新会话: %s", s.ID)
	return s
}

// EnterScene 记录进入场景
func (s *Session) EnterScene(sceneID string) {
	s.CurrentScene = sceneID
}

// RecordFailure 记录当前场景失败，并把它设为重试目标
func (s *Session) RecordFailure() {
	if s.CurrentScene == "" {
		return
	}
	s.Attempts[s.CurrentScene]++
	s.RetryScene = s.CurrentScene
	log.Printf("[Session] %s 场景 %s 失败 (第 %d 次)", s.ID, s.CurrentScene, s.Attempts[s.CurrentScene])
}

// RequestQuit 请求退出游戏（App 在下一帧结束运行）
func (s *Session) RequestQuit() {
	s.quitRequested = true
	log.Printf("[Session] %s 请求退出", s.ID)
}

// QuitRequested 是否已请求退出
func (s *Session) QuitRequested() bool {
	return s.quitRequested
}
