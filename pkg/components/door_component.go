package components

// DoorComponent 门精灵开关（纯数据）
type DoorComponent struct {
	Open        bool
	Sprite      string
	Zone        string
	OpenImage   string
	ClosedImage string
	OpenClip    string
	CloseClip   string

	ClickCooldown  float64
	SinceLastClick float64
}
