package game

import (
	"encoding/binary"
	"io"
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// bytesPerFrame 立体声 float32 小端：2 声道 x 4 字节
const bytesPerFrame = 8

// voice 一个正在播放的片段实例
//
// 流水线：缓冲区 -> [Loop] -> Resampler(音高) -> Volume(音量)。
// ebiten 在自己的 goroutine 中拉取数据，游戏循环修改音量/音高，
// 两者通过 mu 互斥。
type voice struct {
	mu        sync.Mutex
	resampler *beep.Resampler
	volume    *effects.Volume
	gain      float64 // 片段基础增益
	drained   bool
	tmp       [][2]float64
}

// newVoice 基于已解码的缓冲区创建播放实例
func newVoice(buf *beep.Buffer, loop bool, gain, volume, pitch float64) *voice {
	var src beep.Streamer = buf.Streamer(0, buf.Len())
	if loop {
		src = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}

	v := &voice{gain: gain}
	v.resampler = beep.ResampleRatio(4, clampPitch(pitch), src)
	v.volume = &effects.Volume{Streamer: v.resampler, Base: 2}
	v.applyVolume(volume)
	return v
}

// setVolume 设置音量倍数 [0, +inf)，最终音量 = 倍数 x 片段增益
func (v *voice) setVolume(volume float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.applyVolume(volume)
}

func (v *voice) applyVolume(volume float64) {
	level := volume * v.gain
	if level <= 0 {
		v.volume.Volume = 0
		v.volume.Silent = true
		return
	}
	v.volume.Volume = math.Log2(level)
	v.volume.Silent = false
}

// setPitch 设置播放速率（1 = 原速）
func (v *voice) setPitch(pitch float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resampler.SetRatio(clampPitch(pitch))
}

// Read 实现 io.Reader：输出立体声 float32 小端 PCM，供 audio.Context.NewPlayerF32 使用
// 流结束后返回 io.EOF
func (v *voice) Read(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.drained {
		return 0, io.EOF
	}

	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(v.tmp) < frames {
		v.tmp = make([][2]float64, frames)
	}
	samples := v.tmp[:frames]

	n, ok := v.volume.Stream(samples)
	for i := 0; i < n; i++ {
		off := i * bytesPerFrame
		binary.LittleEndian.PutUint32(p[off:], math.Float32bits(float32(samples[i][0])))
		binary.LittleEndian.PutUint32(p[off+4:], math.Float32bits(float32(samples[i][1])))
	}

	if !ok || n == 0 {
		v.drained = true
		if n == 0 {
			return 0, io.EOF
		}
	}
	return n * bytesPerFrame, nil
}

// clampPitch 音高限制在 [0.25, 4]，避免重采样器比例为 0
func clampPitch(pitch float64) float64 {
	if pitch < 0.25 {
		return 0.25
	}
	if pitch > 4 {
		return 4
	}
	return pitch
}
