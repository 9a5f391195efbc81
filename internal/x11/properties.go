package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/tagwm/internal/client"
)

// Properties fetches a window's type, name, and class. ok is false when
// the window cannot be queried or carries no window type; such windows
// are left unmanaged.
func (c *Connection) Properties(window xproto.Window) (client.Props, bool) {
	if _, err := xproto.GetWindowAttributes(c.xu.Conn(), window).Reply(); err != nil {
		return client.Props{}, false
	}

	types, err := ewmh.WmWindowTypeGet(c.xu, window)
	if err != nil {
		types = nil
	}
	windowType, ok := primaryWindowType(types)
	if !ok {
		return client.Props{}, false
	}
	props := client.Props{WindowType: windowType}

	if name, err := ewmh.WmNameGet(c.xu, window); err == nil && name != "" {
		props.Name = name
	} else if name, err := icccm.WmNameGet(c.xu, window); err == nil {
		props.Name = name
	}

	if class, err := icccm.WmClassGet(c.xu, window); err == nil {
		props.Class = []string{class.Instance, class.Class}
	}

	return props, true
}

// primaryWindowType picks the window type a window is classified by. A
// window advertising no type at all is not manageable.
func primaryWindowType(types []string) (string, bool) {
	if len(types) == 0 {
		return "", false
	}
	return types[0], true
}

// IsDock reports whether a window type denotes a surface that is never
// tiled: panels, docks, desktops, splash screens, and notifications.
func (c *Connection) IsDock(windowType string) bool {
	switch windowType {
	case "_NET_WM_WINDOW_TYPE_DOCK",
		"_NET_WM_WINDOW_TYPE_DESKTOP",
		"_NET_WM_WINDOW_TYPE_SPLASH",
		"_NET_WM_WINDOW_TYPE_NOTIFICATION":
		return true
	}
	return false
}
