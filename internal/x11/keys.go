package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/tagwm/internal/client"
	"github.com/1broseidon/tagwm/internal/wm"
)

// GrabBindings compiles the configured key table into a binding table and
// grabs every bound key on the root window. Keys from all modes are
// grabbed up front; the dispatcher decides per mode which are live.
func (c *Connection) GrabBindings(modes map[string]map[string]string, actions *wm.ActionSet) (wm.Bindings, error) {
	bindings := make(wm.Bindings)
	for mode, keys := range modes {
		for sequence, action := range keys {
			mods, keycodes, err := keybind.ParseString(c.xu, sequence)
			if err != nil {
				return nil, fmt.Errorf("binding %q: %w", sequence, err)
			}
			if len(keycodes) == 0 {
				return nil, fmt.Errorf("binding %q: no keycode for key", sequence)
			}

			callback, err := actions.Resolve(action)
			if err != nil {
				return nil, fmt.Errorf("binding %q: %w", sequence, err)
			}

			for _, keycode := range keycodes {
				if err := keybind.GrabChecked(c.xu, c.root, mods, keycode); err != nil {
					return nil, fmt.Errorf("failed to grab %q: %w", sequence, err)
				}
				press := wm.KeyPress{Code: keycode, Mods: mods, Mode: client.Mode(mode)}
				bindings[press] = callback
			}
		}
	}
	return bindings, nil
}
