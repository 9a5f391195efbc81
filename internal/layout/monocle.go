package layout

// Monocle shows only the master window, fullscreen. All other members of
// the view stay hidden, so new windows are swapped into the master slot on
// creation to become visible immediately.
type Monocle struct{}

// NewMonocle returns a Monocle layout.
func NewMonocle() *Monocle {
	return &Monocle{}
}

func (m *Monocle) Name() string { return "monocle" }

func (m *Monocle) Arrange(numWindows int, screen ScreenSize) []*Geometry {
	res := make([]*Geometry, 0, numWindows)
	if numWindows == 0 {
		return res
	}
	res = append(res, &Geometry{
		X:      screen.OffsetX,
		Y:      screen.OffsetY,
		Width:  screen.Width,
		Height: screen.Height,
	})
	for i := 1; i < numWindows; i++ {
		res = append(res, nil)
	}
	return res
}

// Only one window is visible, so there are no spatial neighbors.
func (m *Monocle) RightWindow(_, _ int) (int, bool)  { return 0, false }
func (m *Monocle) LeftWindow(_, _ int) (int, bool)   { return 0, false }
func (m *Monocle) TopWindow(_, _ int) (int, bool)    { return 0, false }
func (m *Monocle) BottomWindow(_, _ int) (int, bool) { return 0, false }

func (m *Monocle) NewWindowAsMaster() bool { return true }

func (m *Monocle) Edit(Message) {}
