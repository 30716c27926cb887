package game

import (
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/gonewx/latecoffee/pkg/config"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioManager 音频管理器，实现 AudioChannel
//
// 按 clip ID 播放音频：
//   - 文件（.wav / .ogg / .mp3）用 beep 解码并重采样到 48kHz，缓存在内存中
//   - 文件缺失时使用配置中的合成音；都没有时该片段静音（IsPlaying 始终为 false）
//   - 每个 clip 同时只有一个播放实例，再次 Play 会从头开始
//
// context 为 nil 时所有操作都是空操作（无音频设备的环境）。
type AudioManager struct {
	context         *audio.Context
	resourceManager *ResourceManager
	specs           map[string]config.ClipSpec
	buffers         map[string]*beep.Buffer // clip ID -> 解码后的PCM
	unavailable     map[string]bool         // 无文件也无合成音的 clip
	voices          map[string]*activeVoice
	volumes         map[string]float64 // clip ID -> 音量倍数（默认 1）
	pitches         map[string]float64 // clip ID -> 音高（默认 1）
}

type activeVoice struct {
	voice  *voice
	player *audio.Player
}

// NewAudioManager 创建音频管理器（片段按需加载）
func NewAudioManager(ctx *audio.Context, rm *ResourceManager, clips []config.ClipSpec) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		resourceManager: rm,
		specs:           make(map[string]config.ClipSpec, len(clips)),
		buffers:         make(map[string]*beep.Buffer),
		unavailable:     make(map[string]bool),
		voices:          make(map[string]*activeVoice),
		volumes:         make(map[string]float64),
		pitches:         make(map[string]float64),
	}
	for _, c := range clips {
		am.specs[c.ID] = c
	}
	return am
}

// Play 单次播放
func (am *AudioManager) Play(clipID string) {
	am.start(clipID, false)
}

// PlayLoop 循环播放，直到 Stop
func (am *AudioManager) PlayLoop(clipID string) {
	am.start(clipID, true)
}

// Stop 停止播放（未在播放时为空操作）
func (am *AudioManager) Stop(clipID string) {
	av, ok := am.voices[clipID]
	if !ok {
		return
	}
	delete(am.voices, clipID)
	if err := av.player.Close(); err != nil {
		log.Printf("[AudioManager] Warning: failed to close player %s: %v", clipID, err)
	}
}

// StopAll 停止所有片段（场景卸载时调用）
func (am *AudioManager) StopAll() {
	for id := range am.voices {
		am.Stop(id)
	}
}

// IsPlaying 片段是否正在播放
func (am *AudioManager) IsPlaying(clipID string) bool {
	av, ok := am.voices[clipID]
	return ok && av.player.IsPlaying()
}

// SetVolume 设置音量倍数，对当前和之后的播放都生效
func (am *AudioManager) SetVolume(clipID string, volume float64) {
	am.volumes[clipID] = volume
	if av, ok := am.voices[clipID]; ok {
		av.voice.setVolume(volume)
	}
}

// SetPitch 设置音高（播放速率），对当前和之后的播放都生效
func (am *AudioManager) SetPitch(clipID string, pitch float64) {
	am.pitches[clipID] = pitch
	if av, ok := am.voices[clipID]; ok {
		av.voice.setPitch(pitch)
	}
}

func (am *AudioManager) start(clipID string, loop bool) {
	if am.context == nil || clipID == "" {
		return
	}

	buf := am.buffer(clipID)
	if buf == nil || buf.Len() == 0 {
		return
	}

	am.Stop(clipID)

	spec := am.specs[clipID]
	v := newVoice(buf, loop, spec.Gain, am.volumeOf(clipID), am.pitchOf(clipID))
	player, err := am.context.NewPlayerF32(v)
	if err != nil {
		log.Printf("[AudioManager] Warning: failed to create player %s: %v", clipID, err)
		return
	}
	player.Play()
	am.voices[clipID] = &activeVoice{voice: v, player: player}
}

func (am *AudioManager) volumeOf(clipID string) float64 {
	if v, ok := am.volumes[clipID]; ok {
		return v
	}
	return 1
}

func (am *AudioManager) pitchOf(clipID string) float64 {
	if p, ok := am.pitches[clipID]; ok {
		return p
	}
	return 1
}

// buffer 获取或加载片段的 PCM 缓冲区
func (am *AudioManager) buffer(clipID string) *beep.Buffer {
	if buf, ok := am.buffers[clipID]; ok {
		return buf
	}
	if am.unavailable[clipID] {
		return nil
	}

	spec, ok := am.specs[clipID]
	if !ok {
		log.Printf("[AudioManager] Warning: unknown clip %s", clipID)
		am.unavailable[clipID] = true
		return nil
	}

	buf, err := am.loadFile(spec)
	if err != nil {
		stream := NewSynth(spec.Synth, spec.Frequency, spec.Duration)
		if stream == nil {
			log.Printf("[AudioManager] %v, clip is silent", err)
			am.unavailable[clipID] = true
			return nil
		}
		log.Printf("[AudioManager] %v, using %s synth", err, spec.Synth)
		buf = newPCMBuffer()
		buf.Append(stream)
	}

	am.buffers[clipID] = buf
	return buf
}

func newPCMBuffer() *beep.Buffer {
	return beep.NewBuffer(beep.Format{SampleRate: synthSampleRate, NumChannels: 2, Precision: 2})
}

// loadFile 按扩展名解码音频文件并重采样到统一采样率
func (am *AudioManager) loadFile(spec config.ClipSpec) (*beep.Buffer, error) {
	if spec.Path == "" || am.resourceManager == nil {
		return nil, fmt.Errorf("clip %s has no file", spec.ID)
	}

	f, err := am.resourceManager.OpenAsset(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("clip %s: %w", spec.ID, err)
	}
	defer f.Close()

	stream, format, err := decodeAudio(f, spec.Path)
	if err != nil {
		return nil, fmt.Errorf("clip %s: %w", spec.ID, err)
	}
	defer stream.Close()

	buf := newPCMBuffer()
	buf.Append(beep.Resample(4, format.SampleRate, synthSampleRate, stream))
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("clip %s: decode: %w", spec.ID, err)
	}
	return buf, nil
}

// decodeAudio 根据文件扩展名选择解码器
func decodeAudio(rc io.ReadCloser, name string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		return wav.Decode(rc)
	case ".ogg":
		return vorbis.Decode(rc)
	case ".mp3":
		return mp3.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format: %s", name)
	}
}
