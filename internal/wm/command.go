// Package wm is the command dispatcher: it receives classified events from
// the windowing backend, mutates the client registry and tag stack, and
// issues placement and focus intents back to the backend. All mutation
// happens on the single goroutine running the manager loop.
package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tagwm/internal/client"
)

// CommandKind enumerates the follow-up actions a binding or mutation can
// request from the dispatcher.
type CommandKind int

const (
	// CmdNone requests no action.
	CmdNone CommandKind = iota
	// CmdRedraw recomputes geometry for the current view and refocuses.
	CmdRedraw
	// CmdFocus resets focus without rearranging.
	CmdFocus
	// CmdKill asks the backend to destroy a window; local removal happens
	// when the destroy notification arrives.
	CmdKill
	// CmdModeSwitch switches the keyboard input mode.
	CmdModeSwitch
	// CmdQuit terminates the event loop.
	CmdQuit
)

// Command is the dispatcher's closed intent set. Each command is
// interpreted exactly once per event.
type Command struct {
	Kind   CommandKind
	Window xproto.Window // for CmdKill
	Mode   client.Mode   // for CmdModeSwitch
}

// None returns the no-op command.
func None() Command { return Command{Kind: CmdNone} }

// Redraw returns the redraw-and-refocus command.
func Redraw() Command { return Command{Kind: CmdRedraw} }

// Focus returns the refocus-only command.
func Focus() Command { return Command{Kind: CmdFocus} }

// Kill returns a command destroying the given window.
func Kill(window xproto.Window) Command {
	return Command{Kind: CmdKill, Window: window}
}

// ModeSwitch returns a command switching the keyboard mode.
func ModeSwitch(mode client.Mode) Command {
	return Command{Kind: CmdModeSwitch, Mode: mode}
}

// Quit returns the terminate command.
func Quit() Command { return Command{Kind: CmdQuit} }
