package components

// MenuButtonState 菜单按钮
type MenuButtonState struct {
	Label string
	Zone  string
	Scene string
	Quit  bool
}

// MenuComponent 标题菜单状态（纯数据）
type MenuComponent struct {
	Buttons      []MenuButtonState
	ClickClip    string
	FadeDuration float64

	// Hovered 指针所在按钮下标，-1 表示没有
	Hovered int
	// Selected 已选择的按钮下标，-1 表示尚未选择；选择后忽略输入
	Selected int

	ActionFired bool
}
