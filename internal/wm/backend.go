package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tagwm/internal/client"
	"github.com/1broseidon/tagwm/internal/layout"
)

// Backend is the windowing collaborator the dispatcher talks to. The core
// never touches protocol bytes; it consumes classified events and raw
// property data and issues abstract placement, focus, and destroy intents.
type Backend interface {
	// NextEvent blocks until the next classified event is available.
	NextEvent() (Event, error)

	// Properties fetches the properties of a window. ok is false when the
	// window cannot be queried or carries no window type; such windows are
	// treated as unmanageable.
	Properties(window xproto.Window) (props client.Props, ok bool)

	// IsDock reports whether a window-type classifier denotes a panel or
	// dock window excluded from tiling.
	IsDock(windowType string) bool

	// Screen returns the usable screen region.
	Screen() layout.ScreenSize

	// Place moves and resizes a window.
	Place(window xproto.Window, geom layout.Geometry)

	// Hide takes windows off the visible screen.
	Hide(windows []xproto.Window)

	// MapWindow makes a window viewable.
	MapWindow(window xproto.Window)

	// SetBorderWidth sets a window's border width in pixels.
	SetBorderWidth(window xproto.Window, width int)

	// FocusWindow gives a window input focus and the focused border color.
	FocusWindow(window xproto.Window)

	// UnfocusWindow resets a window's border to the unfocused color.
	UnfocusWindow(window xproto.Window)

	// DestroyWindow asks the window's client to close, killing it if the
	// request cannot be delivered.
	DestroyWindow(window xproto.Window)

	// ExistingWindows enumerates the windows present at startup.
	ExistingWindows() ([]xproto.Window, error)
}

// Event is a classified external stimulus delivered by the backend, one
// per loop iteration.
type Event interface {
	isEvent()
}

// KeyEvent is a key press in the active keyboard mode. Mods carries the
// modifier state with lock modifiers already masked out.
type KeyEvent struct {
	Code xproto.Keycode
	Mods uint16
}

// MapRequestEvent reports a window asking to be displayed.
type MapRequestEvent struct {
	Window xproto.Window
}

// DestroyNotifyEvent reports a window that is gone.
type DestroyNotifyEvent struct {
	Window xproto.Window
}

// UrgencyEvent reports a change of a window's urgency hint.
type UrgencyEvent struct {
	Window xproto.Window
	Urgent bool
}

// ControlEvent carries an out-of-band control request (IPC) through the
// same serialized event stream as protocol events, preserving the
// single-writer model. The response is sent on Reply if it is non-nil.
type ControlEvent struct {
	Request ControlRequest
	Reply   chan ControlResponse
}

// UnknownEvent is anything the backend classified as irrelevant.
type UnknownEvent struct{}

func (KeyEvent) isEvent()           {}
func (MapRequestEvent) isEvent()    {}
func (DestroyNotifyEvent) isEvent() {}
func (UrgencyEvent) isEvent()       {}
func (ControlEvent) isEvent()       {}
func (UnknownEvent) isEvent()       {}
