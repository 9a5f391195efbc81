// Package layout computes window geometries for the currently viewed set of
// clients. Layouts are pure: given a member count and the usable screen
// region they return one geometry per member, in view order, with nil
// meaning "do not display this member".
package layout

// Geometry is a window position and size on screen.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// ScreenSize describes the usable screen region windows are arranged in.
type ScreenSize struct {
	Width   int
	Height  int
	OffsetX int
	OffsetY int
}

// MessageKind enumerates layout adjustment messages.
type MessageKind int

const (
	// MasterFactorAbs sets the master factor to Factor (mod 100).
	MasterFactorAbs MessageKind = iota
	// MasterFactorRel adjusts the master factor by Delta percent.
	// Decreases saturate at 0, increases saturate then wrap mod 100.
	MasterFactorRel
	// FixedAbs sets the fixed-size flag to Fixed.
	FixedAbs
	// FixedRel toggles the fixed-size flag.
	FixedRel
)

// Message is a typed layout adjustment. Layouts ignore kinds they do not
// understand.
type Message struct {
	Kind   MessageKind
	Factor uint8 // for MasterFactorAbs
	Delta  int   // for MasterFactorRel
	Fixed  bool  // for FixedAbs
}

// Layout arranges the members of a view and answers spatial navigation
// queries over their indices. Direction queries receive the current index
// and the maximum valid index and report whether a neighbor exists; they
// never wrap.
type Layout interface {
	Name() string
	Arrange(numWindows int, screen ScreenSize) []*Geometry
	RightWindow(index, max int) (int, bool)
	LeftWindow(index, max int) (int, bool)
	TopWindow(index, max int) (int, bool)
	BottomWindow(index, max int) (int, bool)
	NewWindowAsMaster() bool
	Edit(msg Message)
}

// New returns a fresh layout instance with default parameters for a known
// layout name.
func New(name string) (Layout, bool) {
	switch name {
	case "hstack":
		return NewHStack(), true
	case "vstack":
		return NewVStack(), true
	case "monocle":
		return NewMonocle(), true
	}
	return nil, false
}

// Names lists the known layout names.
func Names() []string {
	return []string{"hstack", "monocle", "vstack"}
}

func satAdd(a, b uint8) uint8 {
	if int(a)+int(b) > 255 {
		return 255
	}
	return a + b
}

func satSub(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

// deltaMagnitude clamps a relative adjustment into the uint8 domain.
func deltaMagnitude(delta int) uint8 {
	if delta < 0 {
		delta = -delta
	}
	if delta > 255 {
		delta = 255
	}
	return uint8(delta)
}

// editFactor applies the shared master-factor/fixed-flag message semantics.
func editFactor(factor *uint8, fixed *bool, msg Message) {
	switch msg.Kind {
	case MasterFactorAbs:
		*factor = msg.Factor % 100
	case MasterFactorRel:
		if msg.Delta < 0 {
			*factor = satSub(*factor, deltaMagnitude(msg.Delta))
		} else {
			*factor = satAdd(*factor, deltaMagnitude(msg.Delta)) % 100
		}
	case FixedAbs:
		*fixed = msg.Fixed
	case FixedRel:
		*fixed = !*fixed
	}
}
