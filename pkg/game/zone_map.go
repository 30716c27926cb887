package game

import "github.com/gonewx/latecoffee/pkg/utils"

// ZoneMap 命名区域表，实现 OverlapTester
//
// 区域来自场景配置（世界坐标矩形）。未知区域名对任何点/矩形都返回 false。
type ZoneMap struct {
	zones map[string]utils.Rect
}

// NewZoneMap 创建区域表
func NewZoneMap(zones map[string]utils.Rect) *ZoneMap {
	zm := &ZoneMap{zones: make(map[string]utils.Rect, len(zones))}
	for name, r := range zones {
		zm.zones[name] = r
	}
	return zm
}

// Set 添加或替换一个区域
func (zm *ZoneMap) Set(name string, r utils.Rect) {
	zm.zones[name] = r
}

// Get 返回区域矩形
func (zm *ZoneMap) Get(name string) (utils.Rect, bool) {
	r, ok := zm.zones[name]
	return r, ok
}

// PointInZone 点是否在区域内
func (zm *ZoneMap) PointInZone(zone string, x, y float64) bool {
	r, ok := zm.zones[zone]
	return ok && r.Contains(x, y)
}

// RectOverlapsZone 矩形是否与区域重叠
func (zm *ZoneMap) RectOverlapsZone(zone string, rect utils.Rect) bool {
	r, ok := zm.zones[zone]
	return ok && r.Intersects(rect)
}
