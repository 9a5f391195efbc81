package wm

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tagwm/internal/client"
	"github.com/1broseidon/tagwm/internal/layout"
)

// Options configures a Manager.
type Options struct {
	// Bindings is the compiled keybinding table.
	Bindings Bindings
	// Matcher decides default tags for new clients; may be nil.
	Matcher Matcher
	// BorderWidth is applied to newly managed windows.
	BorderWidth int
	// DefaultLayout names the layout used for views pushed over control
	// surfaces and for the initial view.
	DefaultLayout string
	// TagStack is the initial view history; a single default view is used
	// when nil.
	TagStack *client.TagStack
	// Logger receives diagnostics; slog.Default() when nil.
	Logger *slog.Logger
}

// Manager is the event reactor coordinating the client registry, the tag
// stack, and the windowing backend. It owns both structures exclusively;
// every mutation runs to completion inside one Run loop iteration.
type Manager struct {
	backend     Backend
	log         *slog.Logger
	bindings    Bindings
	matcher     Matcher
	actions     *ActionSet
	borderWidth int

	clients  *client.ClientSet
	tagStack *client.TagStack

	visible   []xproto.Window
	focused   xproto.Window
	unmanaged []xproto.Window
}

// NewManager wraps a backend into a window manager.
func NewManager(backend Backend, opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DefaultLayout == "" {
		opts.DefaultLayout = "vstack"
	}
	if opts.TagStack == nil {
		l, ok := layout.New(opts.DefaultLayout)
		if !ok {
			l = layout.NewVStack()
		}
		opts.TagStack = client.NewTagStackFrom(
			client.NewTagSet([]client.Tag{client.DefaultTag}, l))
	}
	return &Manager{
		backend:     backend,
		log:         opts.Logger,
		bindings:    opts.Bindings,
		matcher:     opts.Matcher,
		actions:     &ActionSet{DefaultLayout: opts.DefaultLayout},
		borderWidth: opts.BorderWidth,
		clients:     client.NewClientSet(),
		tagStack:    opts.TagStack,
	}
}

// AdoptExisting feeds all windows already present through the map-request
// path, rebuilding the in-memory state from the live window set.
func (m *Manager) AdoptExisting() error {
	windows, err := m.backend.ExistingWindows()
	if err != nil {
		return fmt.Errorf("enumerating existing windows: %w", err)
	}
	for _, window := range windows {
		m.handleMapRequest(window)
	}
	return nil
}

// Run waits for events and handles them, one at a time, until a quit
// command or a backend error.
func (m *Manager) Run() error {
	for {
		ev, err := m.backend.NextEvent()
		if err != nil {
			return err
		}
		if !m.handle(ev) {
			return nil
		}
	}
}

// handle dispatches one event; it returns false when the loop must stop.
func (m *Manager) handle(ev Event) bool {
	switch ev := ev.(type) {
	case KeyEvent:
		return m.handleKey(ev)
	case MapRequestEvent:
		m.handleMapRequest(ev.Window)
	case DestroyNotifyEvent:
		m.handleDestroyNotify(ev.Window)
	case UrgencyEvent:
		if _, ok := client.Update(m.clients, ev.Window, func(c *client.Client) struct{} {
			c.SetUrgent(ev.Urgent)
			return struct{}{}
		}); ok {
			m.log.Debug("urgency changed", "window", ev.Window, "urgent", ev.Urgent)
		}
	case ControlEvent:
		return m.handleControl(ev)
	case UnknownEvent:
	default:
		m.log.Debug("ignoring event", "type", fmt.Sprintf("%T", ev))
	}
	return true
}

// apply interprets a command exactly once.
func (m *Manager) apply(cmd Command) bool {
	switch cmd.Kind {
	case CmdRedraw:
		m.arrange()
		m.resetFocus()
	case CmdFocus:
		m.resetFocus()
	case CmdKill:
		m.backend.DestroyWindow(cmd.Window)
	case CmdModeSwitch:
		m.tagStack.Mode = cmd.Mode
	case CmdQuit:
		return false
	}
	return true
}

func (m *Manager) handleKey(ev KeyEvent) bool {
	key := KeyPress{Code: ev.Code, Mods: ev.Mods, Mode: m.tagStack.Mode}
	binding, ok := m.bindings[key]
	if !ok {
		m.log.Debug("unbound key", "code", ev.Code, "mods", ev.Mods, "mode", m.tagStack.Mode)
		return true
	}
	return m.apply(binding(m.clients, m.tagStack))
}

// handleMapRequest registers a window asking to be displayed. Dock windows
// and windows whose properties cannot be queried are mapped but left
// unmanaged.
func (m *Manager) handleMapRequest(window xproto.Window) {
	if _, known := m.clients.Get(window); known {
		return
	}
	for _, w := range m.unmanaged {
		if w == window {
			return
		}
	}

	c := m.constructClient(window)
	if c == nil {
		m.backend.MapWindow(window)
		m.unmanaged = append(m.unmanaged, window)
		m.log.Info("registered unmanaged window", "window", window)
		return
	}

	m.backend.MapWindow(window)
	m.backend.SetBorderWidth(window, m.borderWidth)
	m.addClient(c)
	m.arrange()
	m.resetFocus()
}

// constructClient builds a client for a window, or returns nil if the
// window is not to be managed.
func (m *Manager) constructClient(window xproto.Window) *client.Client {
	props, ok := m.backend.Properties(window)
	if !ok {
		m.log.Warn("could not look up window properties", "window", window)
		return nil
	}
	if m.backend.IsDock(props.WindowType) {
		return nil
	}

	var tags []client.Tag
	if m.matcher != nil {
		tags, _ = m.matcher(props)
	}
	if len(tags) == 0 {
		if cur := m.tagStack.Current(); cur != nil {
			tags = cur.Tags
		} else {
			tags = []client.Tag{client.DefaultTag}
		}
	}
	return client.New(window, tags, props)
}

// addClient stores a client, swapping it into the master slot when the
// current layout wants new windows visible immediately.
func (m *Manager) addClient(c *client.Client) {
	m.clients.Add(c)
	if cur := m.tagStack.Current(); cur != nil && cur.Layout.NewWindowAsMaster() {
		m.clients.SwapMaster(cur)
	}
}

func (m *Manager) handleDestroyNotify(window xproto.Window) {
	if m.focused == window {
		m.focused = 0
	}
	if m.clients.Remove(window) {
		m.arrange()
		m.resetFocus()
		return
	}
	for i, w := range m.unmanaged {
		if w == window {
			m.unmanaged[i] = m.unmanaged[len(m.unmanaged)-1]
			m.unmanaged = m.unmanaged[:len(m.unmanaged)-1]
			m.log.Info("unregistered unmanaged window", "window", window)
			return
		}
	}
}

// arrange hides the previously visible windows and places the members of
// the current view, in view order. A no-op without a current view.
func (m *Manager) arrange() {
	m.backend.Hide(m.visible)
	m.visible = m.visible[:0]

	cur := m.tagStack.Current()
	if cur == nil {
		return
	}

	order := m.clients.ViewOrder(cur.Tags)
	geometries := cur.Layout.Arrange(len(order), m.backend.Screen())
	// placements are issued serially in member order; some display servers
	// render batched geometry changes lazily otherwise
	for i, window := range order {
		if i >= len(geometries) || geometries[i] == nil {
			continue
		}
		m.visible = append(m.visible, window)
		m.backend.Place(window, *geometries[i])
	}
}

// resetFocus focuses the current view's focused client and recolors the
// borders involved.
func (m *Manager) resetFocus() {
	cur := m.tagStack.Current()
	if cur == nil {
		return
	}
	window, ok := m.clients.FocusedWindow(cur.Tags)
	if !ok {
		return
	}
	if m.focused != 0 && m.focused != window {
		m.backend.UnfocusWindow(m.focused)
	}
	m.backend.FocusWindow(window)
	m.focused = window
}

// handleControl serves one control request and relays the reply.
func (m *Manager) handleControl(ev ControlEvent) bool {
	resp, keepRunning := m.control(ev.Request)
	if ev.Reply != nil {
		ev.Reply <- resp
	}
	return keepRunning
}

func (m *Manager) control(req ControlRequest) (ControlResponse, bool) {
	switch req.Action {
	case ControlStatus:
		return ControlResponse{Status: m.statusSnapshot()}, true

	case ControlClients:
		return ControlResponse{Clients: m.clientInfos()}, true

	case ControlView:
		if len(req.Tags) == 0 {
			return ControlResponse{Err: fmt.Errorf("view: no tags given")}, true
		}
		l, ok := layout.New(m.actions.DefaultLayout)
		if !ok {
			l = layout.NewVStack()
		}
		m.tagStack.Push(client.NewTagSet(req.Tags, l))
		m.arrange()
		m.resetFocus()
		return ControlResponse{Status: m.statusSnapshot()}, true

	case ControlSetLayout:
		cur := m.tagStack.Current()
		if cur == nil {
			return ControlResponse{Err: fmt.Errorf("set_layout: no current view")}, true
		}
		l, ok := layout.New(req.Layout)
		if !ok {
			return ControlResponse{Err: fmt.Errorf("set_layout: unknown layout %q", req.Layout)}, true
		}
		cur.SetLayout(l)
		m.arrange()
		m.resetFocus()
		return ControlResponse{Status: m.statusSnapshot()}, true

	case ControlDo:
		binding, err := m.actions.Resolve(req.Name)
		if err != nil {
			return ControlResponse{Err: err}, true
		}
		keepRunning := m.apply(binding(m.clients, m.tagStack))
		return ControlResponse{Status: m.statusSnapshot()}, keepRunning
	}
	return ControlResponse{Err: fmt.Errorf("unknown control action %q", req.Action)}, true
}

func (m *Manager) statusSnapshot() *StatusSnapshot {
	snap := &StatusSnapshot{
		Mode:        m.tagStack.Mode,
		ClientCount: m.clients.Len(),
	}
	if cur := m.tagStack.Current(); cur != nil {
		snap.Tags = append([]client.Tag(nil), cur.Tags...)
		snap.Layout = cur.Layout.Name()
		if window, ok := m.clients.FocusedWindow(cur.Tags); ok {
			snap.Focused = window
		}
	}
	return snap
}

func (m *Manager) clientInfos() []ClientInfo {
	var focused xproto.Window
	if cur := m.tagStack.Current(); cur != nil {
		focused, _ = m.clients.FocusedWindow(cur.Tags)
	}
	clients := m.clients.Clients()
	infos := make([]ClientInfo, 0, len(clients))
	for _, c := range clients {
		infos = append(infos, ClientInfo{
			Window:  c.Window,
			Name:    c.Name(),
			Class:   c.Class(),
			Tags:    c.Tags(),
			Urgent:  c.Urgent(),
			Focused: c.Window == focused,
		})
	}
	return infos
}
