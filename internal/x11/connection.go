// Package x11 implements the windowing backend on the X protocol via
// xgb and xgbutil. It classifies raw X events into the dispatcher's
// event vocabulary and translates placement, focus, and destroy intents
// back into protocol requests.
package x11

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/1broseidon/tagwm/internal/config"
	"github.com/1broseidon/tagwm/internal/wm"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	log  *slog.Logger

	screen           config.Screen
	borderFocused    uint32
	borderUnfocused  uint32
	lockMask         uint16
	atomProtocols    xproto.Atom
	atomDeleteWindow xproto.Atom
	atomTakeFocus    xproto.Atom

	events  chan wm.Event
	control chan wm.Event
	errs    chan error
}

// NewConnection establishes a connection to the X11 server and resolves
// the resources the backend needs up front.
func NewConnection(cfg *config.Config, logger *slog.Logger) (*Connection, error) {
	if logger == nil {
		logger = slog.Default()
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	// Initialize keybind state (keymap and modifier map).
	keybind.Initialize(xu)

	focused, err := config.ParseColor(cfg.FocusedColor)
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}
	unfocused, err := config.ParseColor(cfg.UnfocusedColor)
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}

	c := &Connection{
		xu:              xu,
		root:            xu.RootWin(),
		log:             logger,
		screen:          cfg.Screen,
		borderFocused:   focused,
		borderUnfocused: unfocused,
		lockMask:        lockModifierMask(xu),
		events:          make(chan wm.Event),
		control:         make(chan wm.Event),
		errs:            make(chan error, 1),
	}

	for _, atom := range []struct {
		name string
		dest *xproto.Atom
	}{
		{"WM_PROTOCOLS", &c.atomProtocols},
		{"WM_DELETE_WINDOW", &c.atomDeleteWindow},
		{"WM_TAKE_FOCUS", &c.atomTakeFocus},
	} {
		a, err := internAtom(xu, atom.name)
		if err != nil {
			xu.Conn().Close()
			return nil, err
		}
		*atom.dest = a
	}

	return c, nil
}

// Register claims window management on the root window and starts the
// event pump. It fails when another window manager is already running.
func (c *Connection) Register() error {
	mask := uint32(xproto.EventMaskSubstructureRedirect |
		xproto.EventMaskSubstructureNotify |
		xproto.EventMaskPropertyChange)
	err := xproto.ChangeWindowAttributesChecked(
		c.xu.Conn(), c.root, xproto.CwEventMask, []uint32{mask}).Check()
	if err != nil {
		return fmt.Errorf("another window manager is already running: %w", err)
	}

	go c.pump()

	return nil
}

// pump reads raw X events, classifies them, and feeds the event channel.
// It exits when the connection dies.
func (c *Connection) pump() {
	for {
		ev, xerr := c.xu.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			c.errs <- fmt.Errorf("X connection closed")
			return
		}
		if xerr != nil {
			// Protocol errors (e.g. racing a window that just died)
			// are expected; log and move on.
			c.log.Debug("X error", "error", xerr)
			continue
		}

		c.events <- c.classify(ev)
	}
}

func (c *Connection) classify(ev xgb.Event) wm.Event {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return wm.KeyEvent{Code: e.Detail, Mods: e.State &^ c.lockMask}
	case xproto.MapRequestEvent:
		return wm.MapRequestEvent{Window: e.Window}
	case xproto.DestroyNotifyEvent:
		return wm.DestroyNotifyEvent{Window: e.Window}
	case xproto.PropertyNotifyEvent:
		if e.Atom == xproto.AtomWmHints {
			return wm.UrgencyEvent{Window: e.Window, Urgent: c.urgencyHint(e.Window)}
		}
		return wm.UnknownEvent{}
	default:
		return wm.UnknownEvent{}
	}
}

func (c *Connection) urgencyHint(window xproto.Window) bool {
	hints, err := icccm.WmHintsGet(c.xu, window)
	if err != nil {
		return false
	}
	return hints.Flags&icccm.HintUrgency != 0
}

// NextEvent returns the next event, merging the X stream with injected
// control events into one serialized sequence.
func (c *Connection) NextEvent() (wm.Event, error) {
	select {
	case ev := <-c.events:
		return ev, nil
	case ev := <-c.control:
		return ev, nil
	case err := <-c.errs:
		return nil, err
	}
}

// InjectControl queues a control event for the dispatcher loop.
func (c *Connection) InjectControl(ev wm.ControlEvent) {
	c.control <- ev
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.xu.Conn().Close()
}

func internAtom(xu *xgbutil.XUtil, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(xu.Conn(), false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to intern atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

// lockModifierMask returns the combined modifier mask of CapsLock,
// NumLock, and ScrollLock, masked out of key events before dispatch.
func lockModifierMask(xu *xgbutil.XUtil) uint16 {
	mask := uint16(xproto.ModMaskLock)
	mask |= modMaskForKeysym(xu, "Num_Lock")
	mask |= modMaskForKeysym(xu, "Scroll_Lock")
	return mask
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
