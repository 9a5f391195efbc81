package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/tagwm/internal/layout"
)

// Screen returns the usable screen region, applying the configured
// overrides on top of the root window's size.
func (c *Connection) Screen() layout.ScreenSize {
	size := layout.ScreenSize{
		Width:   int(c.xu.Screen().WidthInPixels),
		Height:  int(c.xu.Screen().HeightInPixels),
		OffsetX: c.screen.OffsetX,
		OffsetY: c.screen.OffsetY,
	}
	if c.screen.Width > 0 {
		size.Width = c.screen.Width
	} else {
		size.Width -= c.screen.OffsetX
	}
	if c.screen.Height > 0 {
		size.Height = c.screen.Height
	} else {
		size.Height -= c.screen.OffsetY
	}
	return size
}

// Place moves and resizes a window
func (c *Connection) Place(window xproto.Window, geom layout.Geometry) {
	xwindow.New(c.xu, window).MoveResize(geom.X, geom.Y, geom.Width, geom.Height)
}

// Hide moves windows past the right screen edge. Unmapping them instead
// would generate UnmapNotify events that are indistinguishable from
// clients going away.
func (c *Connection) Hide(windows []xproto.Window) {
	off := 2 * int(c.xu.Screen().WidthInPixels)
	for _, window := range windows {
		xwindow.New(c.xu, window).Move(off, 0)
	}
}

// MapWindow makes a window viewable and subscribes to its property
// changes so urgency hint updates reach the event loop.
func (c *Connection) MapWindow(window xproto.Window) {
	xproto.ChangeWindowAttributes(c.xu.Conn(), window,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange})
	xproto.MapWindow(c.xu.Conn(), window)
}

// SetBorderWidth sets a window's border width in pixels
func (c *Connection) SetBorderWidth(window xproto.Window, width int) {
	xproto.ConfigureWindow(c.xu.Conn(), window,
		xproto.ConfigWindowBorderWidth, []uint32{uint32(width)})
}

// FocusWindow gives a window input focus and the focused border color.
// Focus is offered through WM_TAKE_FOCUS and forced with SetInputFocus
// for clients that never answer the protocol.
func (c *Connection) FocusWindow(window xproto.Window) {
	c.setBorderColor(window, c.borderFocused)
	if err := c.sendProtocolMessage(window, c.atomTakeFocus); err != nil {
		c.log.Debug("WM_TAKE_FOCUS not delivered", "window", window, "error", err)
	}
	xproto.SetInputFocus(c.xu.Conn(),
		xproto.InputFocusPointerRoot, window, xproto.TimeCurrentTime)
}

// UnfocusWindow resets a window's border to the unfocused color
func (c *Connection) UnfocusWindow(window xproto.Window) {
	c.setBorderColor(window, c.borderUnfocused)
}

// DestroyWindow asks the window's client to close via WM_DELETE_WINDOW,
// killing the client outright when the message cannot be delivered.
func (c *Connection) DestroyWindow(window xproto.Window) {
	if err := c.sendProtocolMessage(window, c.atomDeleteWindow); err != nil {
		c.log.Debug("WM_DELETE_WINDOW not delivered, killing client",
			"window", window, "error", err)
		xproto.KillClient(c.xu.Conn(), uint32(window))
	}
}

// ExistingWindows enumerates the root window's children
func (c *Connection) ExistingWindows() ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.xu.Conn(), c.root).Reply()
	if err != nil {
		return nil, err
	}
	return tree.Children, nil
}

func (c *Connection) setBorderColor(window xproto.Window, pixel uint32) {
	xproto.ChangeWindowAttributes(c.xu.Conn(), window,
		xproto.CwBorderPixel, []uint32{pixel})
}

func (c *Connection) sendProtocolMessage(window xproto.Window, protocol xproto.Atom) error {
	message, err := xevent.NewClientMessage(32, window, c.atomProtocols,
		int(protocol), int(xproto.TimeCurrentTime))
	if err != nil {
		return err
	}
	return xproto.SendEventChecked(c.xu.Conn(), false, window,
		xproto.EventMaskNoEvent, string(message.Bytes())).Check()
}
