package utils

import "math"

// 插值与缓动工具
//
// 反馈组件（镜头缩放、呼吸音效、淡入淡出）都是进度值的纯函数，
// 这里集中放置它们共用的插值公式。

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b（t 不做裁剪）
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp 反向插值，返回 v 在 [a, b] 区间内的比例
// a == b 时返回 0
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}

// Clamp 将 v 限制在 [lo, hi] 区间
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 将 v 限制在 [0, 1] 区间
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// EaseInOutQuad 二次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 2t²
//	t >= 0.5: f(t) = 1 - (-2t + 2)² / 2
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// ExpApproach 指数逼近：current 以 rate（1/秒）的速率趋近 target
//
// 与帧率无关：两次 dt/2 的结果等于一次 dt。
// rate <= 0 时直接返回 target（瞬间跟随）。
func ExpApproach(current, target, rate, dt float64) float64 {
	if rate <= 0 {
		return target
	}
	return target + (current-target)*math.Exp(-rate*dt)
}
