package wm

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tagwm/internal/client"
	"github.com/1broseidon/tagwm/internal/layout"
)

func testState(windows ...xproto.Window) (*client.ClientSet, *client.TagStack) {
	cs := client.NewClientSet()
	ts := client.NewTagStackFrom(
		client.NewTagSet([]client.Tag{"work"}, layout.NewVStack()))
	for _, w := range windows {
		cs.Add(client.New(w, []client.Tag{"work"}, client.Props{}))
	}
	cs.ViewOrder([]client.Tag{"work"})
	return cs, ts
}

func TestResolveRejectsMalformedActions(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	for _, name := range []string{
		"",
		"frobnicate",
		"view:",
		"view_nth:abc",
		"toggle_tag:",
		"set_layout:spiral",
		"master_factor:",
		"master_factor:abc",
		"master_factor:500",
		"mode:",
		"move_to:",
		"toggle_window_tag:",
	} {
		if _, err := actions.Resolve(name); err == nil {
			t.Errorf("Resolve(%q) should fail", name)
		}
	}
}

func TestResolveAcceptsAllNamedActions(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	for _, name := range []string{
		"focus_next", "focus_prev", "focus_left", "focus_right",
		"focus_top", "focus_bottom",
		"swap_next", "swap_prev", "swap_left", "swap_right",
		"swap_top", "swap_bottom", "swap_master",
		"kill", "quit", "view_prev", "view_nth:1",
		"view:web,code", "toggle_tag:web",
		"move_to:web", "toggle_window_tag:web",
		"set_layout:monocle", "master_factor:+5", "master_factor:40",
		"toggle_fixed", "mode:resize",
	} {
		if _, err := actions.Resolve(name); err != nil {
			t.Errorf("Resolve(%q): %v", name, err)
		}
	}
}

func TestFocusActionsReturnFocusCommand(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	cs, ts := testState(1, 2)

	fn, _ := actions.Resolve("focus_next")
	cmd := fn(cs, ts)
	if cmd.Kind != CmdFocus {
		t.Fatalf("command = %+v", cmd)
	}
	if window, _ := cs.FocusedWindow(ts.Current().Tags); window != 2 {
		t.Fatalf("focused = %d", window)
	}
}

func TestSwapMasterReturnsRedraw(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	cs, ts := testState(1, 2, 3)
	cs.FocusNext(ts.Current())
	cs.FocusNext(ts.Current())

	fn, _ := actions.Resolve("swap_master")
	cmd := fn(cs, ts)
	if cmd.Kind != CmdRedraw {
		t.Fatalf("command = %+v", cmd)
	}
	order := cs.ViewOrder(ts.Current().Tags)
	if order[0] != 3 {
		t.Fatalf("order = %v", order)
	}
}

func TestNavigationOnEmptyStackIsNoop(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	cs := client.NewClientSet()
	ts := client.NewTagStack()

	for _, name := range []string{"focus_next", "swap_master", "kill", "toggle_fixed"} {
		fn, _ := actions.Resolve(name)
		if cmd := fn(cs, ts); cmd.Kind != CmdNone {
			t.Errorf("%s on empty stack = %+v", name, cmd)
		}
	}
}

func TestKillTargetsFocusedWindow(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	cs, ts := testState(1, 2)

	fn, _ := actions.Resolve("kill")
	cmd := fn(cs, ts)
	if cmd.Kind != CmdKill || cmd.Window != 1 {
		t.Fatalf("command = %+v", cmd)
	}
}

func TestViewPushesTagSetWithDefaultLayout(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "monocle"}
	cs, ts := testState()

	fn, _ := actions.Resolve("view:web, mail")
	cmd := fn(cs, ts)
	if cmd.Kind != CmdRedraw {
		t.Fatalf("command = %+v", cmd)
	}
	cur := ts.Current()
	if len(cur.Tags) != 2 || cur.Tags[0] != "web" || cur.Tags[1] != "mail" {
		t.Fatalf("tags = %v", cur.Tags)
	}
	if cur.Layout.Name() != "monocle" {
		t.Fatalf("layout = %q", cur.Layout.Name())
	}
	if ts.Len() != 2 {
		t.Fatalf("stack length = %d", ts.Len())
	}
}

func TestViewPrevSwapsHistory(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	cs, ts := testState()
	viewWeb, _ := actions.Resolve("view:web")
	viewWeb(cs, ts)

	fn, _ := actions.Resolve("view_prev")
	fn(cs, ts)
	if ts.Current().Tags[0] != "work" {
		t.Fatalf("tags = %v", ts.Current().Tags)
	}
	fn(cs, ts)
	if ts.Current().Tags[0] != "web" {
		t.Fatalf("tags = %v", ts.Current().Tags)
	}
}

func TestToggleTagEditsCurrentViewInPlace(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	cs, ts := testState()

	fn, _ := actions.Resolve("toggle_tag:web")
	fn(cs, ts)
	cur := ts.Current()
	if len(cur.Tags) != 2 {
		t.Fatalf("tags = %v", cur.Tags)
	}
	if ts.Len() != 1 {
		t.Fatalf("toggle_tag must not push history, length = %d", ts.Len())
	}
	fn(cs, ts)
	if len(cur.Tags) != 1 || cur.Tags[0] != "work" {
		t.Fatalf("tags = %v", cur.Tags)
	}
}

func TestMoveToRetagsFocusedClient(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	cs, ts := testState(1, 2)

	fn, _ := actions.Resolve("move_to:web")
	cmd := fn(cs, ts)
	if cmd.Kind != CmdRedraw {
		t.Fatalf("command = %+v", cmd)
	}
	c, _ := cs.Get(1)
	if tags := c.Tags(); len(tags) != 1 || tags[0] != "web" {
		t.Fatalf("tags = %v", tags)
	}
	order := cs.ViewOrder(ts.Current().Tags)
	if len(order) != 1 || order[0] != 2 {
		t.Fatalf("view order = %v", order)
	}
}

func TestMasterFactorEditsLayout(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	cs, ts := testState()

	abs, _ := actions.Resolve("master_factor:30")
	abs(cs, ts)
	rel, _ := actions.Resolve("master_factor:+5")
	rel(cs, ts)

	vs, ok := ts.Current().Layout.(*layout.VStack)
	if !ok {
		t.Fatalf("layout = %T", ts.Current().Layout)
	}
	if vs.MasterFactor != 35 {
		t.Fatalf("master factor = %d", vs.MasterFactor)
	}
}

func TestModeSwitchCommand(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	cs, ts := testState()

	fn, _ := actions.Resolve("mode:resize")
	cmd := fn(cs, ts)
	if cmd.Kind != CmdModeSwitch || cmd.Mode != client.Mode("resize") {
		t.Fatalf("command = %+v", cmd)
	}
}

func TestQuitCommand(t *testing.T) {
	actions := &ActionSet{DefaultLayout: "vstack"}
	fn, _ := actions.Resolve("quit")
	if cmd := fn(nil, client.NewTagStack()); cmd.Kind != CmdQuit {
		t.Fatalf("command = %+v", cmd)
	}
}
