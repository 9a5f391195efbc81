package layout

// VStack places the master window on the left of the screen and stacks the
// remaining windows on top of each other to its right. Inverted swaps
// master and stack areas horizontally.
type VStack struct {
	MasterFactor uint8 // percent of screen width for the master area
	Inverted     bool
	Fixed        bool // keep the master area size even with one window
}

// NewVStack returns a VStack with an even split.
func NewVStack() *VStack {
	return &VStack{MasterFactor: 50}
}

func (v *VStack) Name() string { return "vstack" }

func (v *VStack) Arrange(numWindows int, screen ScreenSize) []*Geometry {
	res := make([]*Geometry, 0, numWindows)

	masterWidth := screen.Width
	if v.MasterFactor < 100 {
		masterWidth = int(v.MasterFactor) * screen.Width / 100
	}

	switch {
	case numWindows == 1:
		width := screen.Width
		if v.Fixed {
			width = masterWidth
		}
		res = append(res, &Geometry{
			X:      screen.OffsetX,
			Y:      screen.OffsetY,
			Width:  width,
			Height: screen.Height,
		})
	case numWindows > 1:
		masterX, slaveX := 0, masterWidth
		if v.Inverted {
			masterX, slaveX = screen.Width-masterWidth, 0
		}
		res = append(res, &Geometry{
			X:      masterX + screen.OffsetX,
			Y:      screen.OffsetY,
			Width:  masterWidth,
			Height: screen.Height,
		})
		// remainder pixels of the division are not redistributed
		slaveHeight := screen.Height / (numWindows - 1)
		for i := 1; i < numWindows; i++ {
			res = append(res, &Geometry{
				X:      slaveX + screen.OffsetX,
				Y:      (i-1)*slaveHeight + screen.OffsetY,
				Width:  screen.Width - masterWidth,
				Height: slaveHeight,
			})
		}
	}
	return res
}

func (v *VStack) RightWindow(index, max int) (int, bool) {
	if index == 0 {
		if !v.Inverted && max >= 1 {
			return 1, true
		}
		return 0, false
	}
	if v.Inverted {
		return 0, true
	}
	return 0, false
}

func (v *VStack) LeftWindow(index, max int) (int, bool) {
	if index == 0 {
		if v.Inverted && max >= 1 {
			return 1, true
		}
		return 0, false
	}
	if v.Inverted {
		return 0, false
	}
	return 0, true
}

func (v *VStack) TopWindow(index, _ int) (int, bool) {
	if index <= 1 {
		return 0, false
	}
	return index - 1, true
}

func (v *VStack) BottomWindow(index, max int) (int, bool) {
	if index == 0 {
		return max, true
	}
	if index < max {
		return index + 1, true
	}
	return 0, false
}

func (v *VStack) NewWindowAsMaster() bool { return false }

func (v *VStack) Edit(msg Message) {
	editFactor(&v.MasterFactor, &v.Fixed, msg)
}
