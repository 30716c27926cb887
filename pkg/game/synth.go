package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// 合成音类型（ClipSpec.Synth）
const (
	SynthTone   = "tone"   // 正弦音，带起音/释音包络
	SynthBreath = "breath" // 调制噪声，一呼一吸
	SynthSting  = "sting"  // 下滑音，指数衰减
	SynthNoise  = "noise"  // 噪声脉冲（脚步、门响）
)

// synthSampleRate 合成音和解码后统一的采样率
const synthSampleRate = beep.SampleRate(48000)

// sampleFunc 给定时间 t（秒）返回单声道样本
type sampleFunc func(t float64) float64

// synthStreamer 按 sampleFunc 逐样本生成固定长度的单声道信号
type synthStreamer struct {
	fn       sampleFunc
	rate     beep.SampleRate
	position int
	total    int
}

func newSynthStreamer(fn sampleFunc, duration time.Duration, rate beep.SampleRate) *synthStreamer {
	return &synthStreamer{fn: fn, rate: rate, total: rate.N(duration)}
}

func (s *synthStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.position >= s.total {
		return 0, false
	}
	for i := range samples {
		if s.position >= s.total {
			return i, true
		}
		t := float64(s.position) / float64(s.rate)
		val := s.fn(t)
		samples[i][0] = val
		samples[i][1] = val
		s.position++
	}
	return len(samples), true
}

func (s *synthStreamer) Err() error { return nil }

// NewSynth 创建合成音流
//
// kind 为空或未知时返回 nil；duration <= 0 时使用 0.5 秒
func NewSynth(kind string, frequency, duration float64) beep.Streamer {
	if duration <= 0 {
		duration = 0.5
	}
	d := time.Duration(duration * float64(time.Second))

	var fn sampleFunc
	switch kind {
	case SynthTone:
		fn = toneFunc(frequency, duration)
	case SynthBreath:
		fn = breathFunc(duration)
	case SynthSting:
		fn = stingFunc(frequency, duration)
	case SynthNoise:
		fn = noiseFunc()
	default:
		return nil
	}
	return newSynthStreamer(fn, d, synthSampleRate)
}

// attackRelease 线性起音/释音包络
func attackRelease(t, duration, attack, release float64) float64 {
	vol := 1.0
	if attack > 0 && t < attack {
		vol = t / attack
	}
	if remaining := duration - t; release > 0 && remaining < release {
		vol = math.Min(vol, remaining/release)
	}
	return math.Max(0, vol)
}

func toneFunc(freq, duration float64) sampleFunc {
	if freq <= 0 {
		freq = 440
	}
	return func(t float64) float64 {
		env := attackRelease(t, duration, 0.01, math.Min(0.1, duration/3))
		return math.Sin(2*math.Pi*freq*t) * env
	}
}

// breathFunc 低通噪声，振幅按 sin^2 在一个周期内起伏
func breathFunc(duration float64) sampleFunc {
	rng := rand.New(rand.NewSource(1))
	var lp float64
	return func(t float64) float64 {
		white := rng.Float64()*2 - 1
		lp += 0.08 * (white - lp)
		swell := math.Sin(math.Pi * t / duration)
		return math.Max(-1, math.Min(1, lp*2.5*swell*swell))
	}
}

// stingFunc 频率从 freq 滑到 freq/2，指数衰减
func stingFunc(freq, duration float64) sampleFunc {
	if freq <= 0 {
		freq = 220
	}
	var phase float64
	return func(t float64) float64 {
		f := freq * (1 - 0.5*t/duration)
		phase += f / float64(synthSampleRate)
		phase -= math.Floor(phase)
		env := math.Exp(-3*t/duration) * attackRelease(t, duration, 0.005, 0.05)
		return math.Sin(2*math.Pi*phase) * env
	}
}

// noiseFunc 开头约 80ms 的衰减噪声，之后静音
// 循环播放时形成周期性的脚步声
func noiseFunc() sampleFunc {
	rng := rand.New(rand.NewSource(2))
	return func(t float64) float64 {
		if t > 0.08 {
			return 0
		}
		return (rng.Float64()*2 - 1) * math.Exp(-t*40)
	}
}
