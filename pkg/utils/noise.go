package utils

import "math"

// ValueNoise2D 二维平滑值噪声，返回 [0, 1]
//
// 在整数格点上用哈希生成伪随机值，格点之间做 smoothstep 双线性插值，
// 因此相邻采样连续变化，适合做镜头抖动这类"有机"的偏移。
// 同一输入总是得到同一输出。
func ValueNoise2D(x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := smoothstep(x - x0)
	fy := smoothstep(y - y0)

	ix, iy := int64(x0), int64(y0)
	v00 := latticeValue(ix, iy)
	v10 := latticeValue(ix+1, iy)
	v01 := latticeValue(ix, iy+1)
	v11 := latticeValue(ix+1, iy+1)

	top := Lerp(v00, v10, fx)
	bottom := Lerp(v01, v11, fx)
	return Lerp(top, bottom, fy)
}

// SignedNoise2D 将 ValueNoise2D 映射到 [-1, 1]
func SignedNoise2D(x, y float64) float64 {
	return ValueNoise2D(x, y)*2 - 1
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// latticeValue 格点哈希（整数混洗），返回 [0, 1]
func latticeValue(x, y int64) float64 {
	h := uint64(x)*0x9E3779B97F4A7C15 ^ uint64(y)*0xC2B2AE3D27D4EB4F
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	h *= 0xC4CEB9FE1A85EC53
	h ^= h >> 33
	return float64(h>>11) / float64(1<<53)
}
