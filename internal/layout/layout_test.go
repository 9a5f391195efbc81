package layout

import "testing"

var testScreen = ScreenSize{Width: 800, Height: 600}

func TestHStackArrangeSingleWindow(t *testing.T) {
	h := NewHStack()

	geoms := h.Arrange(1, testScreen)
	if len(geoms) != 1 {
		t.Fatalf("expected 1 geometry, got %d", len(geoms))
	}
	want := Geometry{X: 0, Y: 0, Width: 800, Height: 600}
	if *geoms[0] != want {
		t.Fatalf("expected fullscreen %+v, got %+v", want, *geoms[0])
	}

	h.Fixed = true
	geoms = h.Arrange(1, testScreen)
	if geoms[0].Height != 300 {
		t.Fatalf("expected fixed master height 300, got %d", geoms[0].Height)
	}
	if geoms[0].Width != 800 {
		t.Fatalf("expected full width 800, got %d", geoms[0].Width)
	}
}

func TestHStackArrangeSplitsStack(t *testing.T) {
	h := NewHStack()

	geoms := h.Arrange(4, testScreen)
	if len(geoms) != 4 {
		t.Fatalf("expected 4 geometries, got %d", len(geoms))
	}
	master := *geoms[0]
	if master.Y != 0 || master.Height != 300 || master.Width != 800 {
		t.Fatalf("unexpected master geometry: %+v", master)
	}
	// 800 / 3 = 266 with 2 remainder pixels left undistributed
	for i, g := range geoms[1:] {
		if g.Width != 266 {
			t.Fatalf("slave %d: expected width 266, got %d", i, g.Width)
		}
		if g.Y != 300 || g.Height != 300 {
			t.Fatalf("slave %d: expected y=300 height=300, got %+v", i, *g)
		}
		if g.X != i*266 {
			t.Fatalf("slave %d: expected x=%d, got %d", i, i*266, g.X)
		}
	}
}

func TestHStackArrangeInverted(t *testing.T) {
	h := NewHStack()
	h.Inverted = true

	geoms := h.Arrange(2, testScreen)
	if geoms[0].Y != 300 {
		t.Fatalf("expected inverted master at y=300, got %d", geoms[0].Y)
	}
	if geoms[1].Y != 0 {
		t.Fatalf("expected inverted slave at y=0, got %d", geoms[1].Y)
	}
}

func TestVStackArrangeThreeWindows(t *testing.T) {
	v := NewVStack()

	geoms := v.Arrange(3, testScreen)
	if len(geoms) != 3 {
		t.Fatalf("expected 3 geometries, got %d", len(geoms))
	}
	master := *geoms[0]
	if master.X != 0 || master.Width != 400 || master.Height != 600 {
		t.Fatalf("unexpected master geometry: %+v", master)
	}
	for i, g := range geoms[1:] {
		if g.X != 400 || g.Width != 400 {
			t.Fatalf("slave %d: expected x=400 width=400, got %+v", i, *g)
		}
		if g.Height != 300 {
			t.Fatalf("slave %d: expected height 300, got %d", i, g.Height)
		}
		if g.Y != i*300 {
			t.Fatalf("slave %d: expected y=%d, got %d", i, i*300, g.Y)
		}
	}
}

func TestVStackArrangeInvertedPlacesStackLeft(t *testing.T) {
	v := NewVStack()
	v.Inverted = true

	geoms := v.Arrange(3, testScreen)
	if geoms[0].X != 400 {
		t.Fatalf("expected inverted master at x=400, got %d", geoms[0].X)
	}
	if geoms[1].X != 0 || geoms[2].X != 0 {
		t.Fatalf("expected inverted slaves at x=0, got %d and %d", geoms[1].X, geoms[2].X)
	}
}

func TestArrangeAppliesScreenOffsets(t *testing.T) {
	screen := ScreenSize{Width: 800, Height: 600, OffsetX: 10, OffsetY: 20}

	v := NewVStack()
	geoms := v.Arrange(2, screen)
	if geoms[0].X != 10 || geoms[0].Y != 20 {
		t.Fatalf("expected master at offset (10,20), got (%d,%d)", geoms[0].X, geoms[0].Y)
	}
	if geoms[1].X != 410 || geoms[1].Y != 20 {
		t.Fatalf("expected slave at (410,20), got (%d,%d)", geoms[1].X, geoms[1].Y)
	}
}

func TestArrangeEmptyView(t *testing.T) {
	for _, name := range Names() {
		l, ok := New(name)
		if !ok {
			t.Fatalf("unknown layout %q", name)
		}
		if geoms := l.Arrange(0, testScreen); len(geoms) != 0 {
			t.Fatalf("%s: expected no geometries for empty view, got %d", name, len(geoms))
		}
	}
}

func TestMasterFactorSaturatesAtFullScreen(t *testing.T) {
	h := NewHStack()
	h.MasterFactor = 150

	geoms := h.Arrange(2, testScreen)
	if geoms[0].Height != 600 {
		t.Fatalf("expected factor >= 100 to cover the screen, got height %d", geoms[0].Height)
	}
}

func TestMonocleShowsOnlyMaster(t *testing.T) {
	m := NewMonocle()

	geoms := m.Arrange(3, testScreen)
	if len(geoms) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(geoms))
	}
	if geoms[0] == nil {
		t.Fatal("expected visible master")
	}
	if *geoms[0] != (Geometry{X: 0, Y: 0, Width: 800, Height: 600}) {
		t.Fatalf("expected fullscreen master, got %+v", *geoms[0])
	}
	if geoms[1] != nil || geoms[2] != nil {
		t.Fatal("expected hidden slaves")
	}
	if !m.NewWindowAsMaster() {
		t.Fatal("monocle should create new windows as master")
	}
}

func TestDirectionQueriesStayInBounds(t *testing.T) {
	layouts := []Layout{NewHStack(), NewVStack(), NewMonocle(),
		&HStack{MasterFactor: 50, Inverted: true}, &VStack{MasterFactor: 50, Inverted: true}}

	for _, l := range layouts {
		for max := 0; max < 5; max++ {
			for index := 0; index <= max; index++ {
				queries := []func(int, int) (int, bool){
					l.RightWindow, l.LeftWindow, l.TopWindow, l.BottomWindow,
				}
				for qi, q := range queries {
					target, ok := q(index, max)
					if !ok {
						continue
					}
					if target < 0 || target > max {
						t.Fatalf("%s query %d: index %d max %d returned out-of-bounds %d",
							l.Name(), qi, index, max, target)
					}
				}
			}
		}
	}
}

func TestHStackNeighbors(t *testing.T) {
	h := NewHStack()

	// master to stack and back
	if idx, ok := h.BottomWindow(0, 3); !ok || idx != 1 {
		t.Fatalf("expected bottom of master = 1, got %d ok=%v", idx, ok)
	}
	if idx, ok := h.TopWindow(2, 3); !ok || idx != 0 {
		t.Fatalf("expected top of slave = master, got %d ok=%v", idx, ok)
	}
	// within the stack
	if idx, ok := h.RightWindow(1, 3); !ok || idx != 2 {
		t.Fatalf("expected right of slave 1 = 2, got %d ok=%v", idx, ok)
	}
	if idx, ok := h.LeftWindow(2, 3); !ok || idx != 1 {
		t.Fatalf("expected left of slave 2 = 1, got %d ok=%v", idx, ok)
	}
	// no wrapping at the edges
	if _, ok := h.RightWindow(3, 3); ok {
		t.Fatal("expected no neighbor right of the last slave")
	}
	if _, ok := h.LeftWindow(1, 3); ok {
		t.Fatal("expected no neighbor left of the first slave")
	}
	if _, ok := h.TopWindow(0, 3); ok {
		t.Fatal("expected no neighbor above the master")
	}
}

func TestVStackNeighbors(t *testing.T) {
	v := NewVStack()

	if idx, ok := v.RightWindow(0, 3); !ok || idx != 1 {
		t.Fatalf("expected right of master = 1, got %d ok=%v", idx, ok)
	}
	if idx, ok := v.LeftWindow(2, 3); !ok || idx != 0 {
		t.Fatalf("expected left of slave = master, got %d ok=%v", idx, ok)
	}
	if idx, ok := v.BottomWindow(1, 3); !ok || idx != 2 {
		t.Fatalf("expected bottom of slave 1 = 2, got %d ok=%v", idx, ok)
	}
	if _, ok := v.TopWindow(1, 3); ok {
		t.Fatal("expected no neighbor above the first slave")
	}
	if _, ok := v.BottomWindow(3, 3); ok {
		t.Fatal("expected no neighbor below the last slave")
	}
}

func TestEditMasterFactor(t *testing.T) {
	v := NewVStack()

	v.Edit(Message{Kind: MasterFactorAbs, Factor: 130})
	if v.MasterFactor != 30 {
		t.Fatalf("expected absolute set to wrap mod 100, got %d", v.MasterFactor)
	}

	v.Edit(Message{Kind: MasterFactorRel, Delta: -50})
	if v.MasterFactor != 0 {
		t.Fatalf("expected relative decrease to saturate at 0, got %d", v.MasterFactor)
	}

	v.Edit(Message{Kind: MasterFactorRel, Delta: 110})
	if v.MasterFactor != 10 {
		t.Fatalf("expected relative increase to wrap mod 100, got %d", v.MasterFactor)
	}

	v.Edit(Message{Kind: FixedAbs, Fixed: true})
	if !v.Fixed {
		t.Fatal("expected fixed flag set")
	}
	v.Edit(Message{Kind: FixedRel})
	if v.Fixed {
		t.Fatal("expected fixed flag toggled off")
	}
}

func TestEditIgnoresUnknownMessages(t *testing.T) {
	h := NewHStack()
	h.Edit(Message{Kind: MessageKind(99)})
	if h.MasterFactor != 50 || h.Fixed {
		t.Fatalf("unknown message must be a no-op, got factor=%d fixed=%v", h.MasterFactor, h.Fixed)
	}
}
