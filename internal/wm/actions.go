package wm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tagwm/internal/client"
	"github.com/1broseidon/tagwm/internal/layout"
)

// KeyPress identifies a physical key press in a keyboard mode.
type KeyPress struct {
	Code xproto.Keycode
	Mods uint16
	Mode client.Mode
}

// BindingFunc mutates the registry and tag stack in response to a key and
// returns the follow-up command.
type BindingFunc func(*client.ClientSet, *client.TagStack) Command

// Bindings is the dispatcher's binding table.
type Bindings map[KeyPress]BindingFunc

// ActionSet resolves named actions into binding callbacks. Action names
// are verbs, optionally parameterized after a colon, e.g. "focus_next",
// "view:web,code", "master_factor:+5".
type ActionSet struct {
	// DefaultLayout is instantiated for tag sets pushed by view actions.
	DefaultLayout string
}

// withCurrent wraps a navigation callback that needs the current tag set,
// degrading to a no-op when the stack is empty.
func withCurrent(cmd Command, f func(*client.ClientSet, *client.TagSet)) BindingFunc {
	return func(cs *client.ClientSet, ts *client.TagStack) Command {
		cur := ts.Current()
		if cur == nil {
			return None()
		}
		f(cs, cur)
		return cmd
	}
}

// Resolve returns the binding callback for a named action.
func (a *ActionSet) Resolve(name string) (BindingFunc, error) {
	verb, arg := name, ""
	if i := strings.IndexByte(name, ':'); i >= 0 {
		verb, arg = name[:i], name[i+1:]
	}

	switch verb {
	case "focus_next":
		return withCurrent(Focus(), (*client.ClientSet).FocusNext), nil
	case "focus_prev":
		return withCurrent(Focus(), (*client.ClientSet).FocusPrev), nil
	case "focus_left":
		return withCurrent(Focus(), (*client.ClientSet).FocusLeft), nil
	case "focus_right":
		return withCurrent(Focus(), (*client.ClientSet).FocusRight), nil
	case "focus_top":
		return withCurrent(Focus(), (*client.ClientSet).FocusTop), nil
	case "focus_bottom":
		return withCurrent(Focus(), (*client.ClientSet).FocusBottom), nil
	case "swap_next":
		return withCurrent(Redraw(), (*client.ClientSet).SwapNext), nil
	case "swap_prev":
		return withCurrent(Redraw(), (*client.ClientSet).SwapPrev), nil
	case "swap_left":
		return withCurrent(Redraw(), (*client.ClientSet).SwapLeft), nil
	case "swap_right":
		return withCurrent(Redraw(), (*client.ClientSet).SwapRight), nil
	case "swap_top":
		return withCurrent(Redraw(), (*client.ClientSet).SwapTop), nil
	case "swap_bottom":
		return withCurrent(Redraw(), (*client.ClientSet).SwapBottom), nil
	case "swap_master":
		return withCurrent(Redraw(), (*client.ClientSet).SwapMaster), nil

	case "kill":
		return func(cs *client.ClientSet, ts *client.TagStack) Command {
			cur := ts.Current()
			if cur == nil {
				return None()
			}
			if window, ok := cs.FocusedWindow(cur.Tags); ok {
				return Kill(window)
			}
			return None()
		}, nil

	case "quit":
		return func(*client.ClientSet, *client.TagStack) Command {
			return Quit()
		}, nil

	case "view_prev":
		return func(_ *client.ClientSet, ts *client.TagStack) Command {
			ts.SwapTop()
			return Redraw()
		}, nil

	case "view_nth":
		index, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("view_nth: bad index %q", arg)
		}
		return func(_ *client.ClientSet, ts *client.TagStack) Command {
			ts.ViewNth(index)
			return Redraw()
		}, nil

	case "view":
		tags, err := parseTags(arg)
		if err != nil {
			return nil, fmt.Errorf("view: %w", err)
		}
		layoutName := a.DefaultLayout
		return func(_ *client.ClientSet, ts *client.TagStack) Command {
			l, ok := layout.New(layoutName)
			if !ok {
				l = layout.NewVStack()
			}
			ts.Push(client.NewTagSet(tags, l))
			return Redraw()
		}, nil

	case "toggle_tag":
		if arg == "" {
			return nil, fmt.Errorf("toggle_tag: missing tag")
		}
		tag := client.Tag(arg)
		return withCurrent(Redraw(), func(_ *client.ClientSet, ts *client.TagSet) {
			ts.ToggleTag(tag)
		}), nil

	case "move_to":
		tags, err := parseTags(arg)
		if err != nil {
			return nil, fmt.Errorf("move_to: %w", err)
		}
		return func(cs *client.ClientSet, ts *client.TagStack) Command {
			cur := ts.Current()
			if cur == nil {
				return None()
			}
			window, ok := cs.FocusedWindow(cur.Tags)
			if !ok {
				return None()
			}
			cmd, found := client.Update(cs, window, func(c *client.Client) Command {
				c.SetTags(tags)
				return Redraw()
			})
			if !found {
				return None()
			}
			return cmd
		}, nil

	case "toggle_window_tag":
		if arg == "" {
			return nil, fmt.Errorf("toggle_window_tag: missing tag")
		}
		tag := client.Tag(arg)
		return func(cs *client.ClientSet, ts *client.TagStack) Command {
			cur := ts.Current()
			if cur == nil {
				return None()
			}
			window, ok := cs.FocusedWindow(cur.Tags)
			if !ok {
				return None()
			}
			cmd, found := client.Update(cs, window, func(c *client.Client) Command {
				c.ToggleTag(tag)
				return Redraw()
			})
			if !found {
				return None()
			}
			return cmd
		}, nil

	case "set_layout":
		if _, ok := layout.New(arg); !ok {
			return nil, fmt.Errorf("set_layout: unknown layout %q", arg)
		}
		layoutName := arg
		return withCurrent(Redraw(), func(_ *client.ClientSet, ts *client.TagSet) {
			if l, ok := layout.New(layoutName); ok {
				ts.SetLayout(l)
			}
		}), nil

	case "master_factor":
		msg, err := parseFactor(arg)
		if err != nil {
			return nil, err
		}
		return withCurrent(Redraw(), func(_ *client.ClientSet, ts *client.TagSet) {
			ts.Layout.Edit(msg)
		}), nil

	case "toggle_fixed":
		return withCurrent(Redraw(), func(_ *client.ClientSet, ts *client.TagSet) {
			ts.Layout.Edit(layout.Message{Kind: layout.FixedRel})
		}), nil

	case "mode":
		if arg == "" {
			return nil, fmt.Errorf("mode: missing mode name")
		}
		mode := client.Mode(arg)
		return func(*client.ClientSet, *client.TagStack) Command {
			return ModeSwitch(mode)
		}, nil
	}

	return nil, fmt.Errorf("unknown action %q", name)
}

func parseTags(arg string) ([]client.Tag, error) {
	var tags []client.Tag
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			tags = append(tags, client.Tag(part))
		}
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("missing tags")
	}
	return tags, nil
}

// parseFactor parses a master-factor adjustment: a leading sign makes the
// change relative, a bare number sets the factor absolutely.
func parseFactor(arg string) (layout.Message, error) {
	if arg == "" {
		return layout.Message{}, fmt.Errorf("master_factor: missing value")
	}
	if arg[0] == '+' || arg[0] == '-' {
		delta, err := strconv.Atoi(arg)
		if err != nil {
			return layout.Message{}, fmt.Errorf("master_factor: bad delta %q", arg)
		}
		return layout.Message{Kind: layout.MasterFactorRel, Delta: delta}, nil
	}
	abs, err := strconv.ParseUint(arg, 10, 8)
	if err != nil {
		return layout.Message{}, fmt.Errorf("master_factor: bad value %q", arg)
	}
	return layout.Message{Kind: layout.MasterFactorAbs, Factor: uint8(abs)}, nil
}
