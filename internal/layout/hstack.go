package layout

// HStack places the master window across the top of the screen and stacks
// the remaining windows side by side below it. Inverted swaps master and
// stack areas vertically.
type HStack struct {
	MasterFactor uint8 // percent of screen height for the master area
	Inverted     bool
	Fixed        bool // keep the master area size even with one window
}

// NewHStack returns an HStack with an even split.
func NewHStack() *HStack {
	return &HStack{MasterFactor: 50}
}

func (h *HStack) Name() string { return "hstack" }

func (h *HStack) Arrange(numWindows int, screen ScreenSize) []*Geometry {
	res := make([]*Geometry, 0, numWindows)

	masterHeight := screen.Height
	if h.MasterFactor < 100 {
		masterHeight = int(h.MasterFactor) * screen.Height / 100
	}

	switch {
	case numWindows == 1:
		height := screen.Height
		if h.Fixed {
			height = masterHeight
		}
		res = append(res, &Geometry{
			X:      screen.OffsetX,
			Y:      screen.OffsetY,
			Width:  screen.Width,
			Height: height,
		})
	case numWindows > 1:
		masterY, slaveY := 0, masterHeight
		if h.Inverted {
			masterY, slaveY = screen.Height-masterHeight, 0
		}
		res = append(res, &Geometry{
			X:      screen.OffsetX,
			Y:      masterY + screen.OffsetY,
			Width:  screen.Width,
			Height: masterHeight,
		})
		// remainder pixels of the division are not redistributed
		slaveWidth := screen.Width / (numWindows - 1)
		for i := 1; i < numWindows; i++ {
			res = append(res, &Geometry{
				X:      (i-1)*slaveWidth + screen.OffsetX,
				Y:      slaveY + screen.OffsetY,
				Width:  slaveWidth,
				Height: screen.Height - masterHeight,
			})
		}
	}
	return res
}

func (h *HStack) RightWindow(index, max int) (int, bool) {
	if index == 0 {
		return max, true
	}
	if index < max {
		return index + 1, true
	}
	return 0, false
}

func (h *HStack) LeftWindow(index, _ int) (int, bool) {
	if index <= 1 {
		return 0, false
	}
	return index - 1, true
}

func (h *HStack) TopWindow(index, max int) (int, bool) {
	if index == 0 {
		if h.Inverted && max >= 1 {
			return 1, true
		}
		return 0, false
	}
	if !h.Inverted {
		return 0, true
	}
	return 0, false
}

func (h *HStack) BottomWindow(index, max int) (int, bool) {
	if index == 0 {
		if !h.Inverted && max >= 1 {
			return 1, true
		}
		return 0, false
	}
	if h.Inverted {
		return 0, true
	}
	return 0, false
}

func (h *HStack) NewWindowAsMaster() bool { return false }

func (h *HStack) Edit(msg Message) {
	editFactor(&h.MasterFactor, &h.Fixed, msg)
}
