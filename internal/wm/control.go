package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tagwm/internal/client"
)

// ControlAction enumerates the control operations reachable over IPC.
type ControlAction string

const (
	ControlStatus    ControlAction = "status"
	ControlClients   ControlAction = "clients"
	ControlView      ControlAction = "view"
	ControlSetLayout ControlAction = "set_layout"
	ControlDo        ControlAction = "do"
)

// ControlRequest is a control operation with its arguments.
type ControlRequest struct {
	Action ControlAction
	Tags   []client.Tag // ControlView
	Layout string       // ControlSetLayout
	Name   string       // ControlDo: a named dispatcher action
}

// ControlResponse is the dispatcher's answer to a control request. All
// contained data are snapshots; the dispatcher's structures are never
// shared.
type ControlResponse struct {
	Err     error
	Status  *StatusSnapshot
	Clients []ClientInfo
}

// StatusSnapshot describes the current view.
type StatusSnapshot struct {
	Tags        []client.Tag
	Layout      string
	Mode        client.Mode
	ClientCount int
	Focused     xproto.Window
}

// ClientInfo describes one managed client.
type ClientInfo struct {
	Window  xproto.Window
	Name    string
	Class   []string
	Tags    []client.Tag
	Urgent  bool
	Focused bool
}
