package mcp

// StatusInput is the input for the wm_status tool.
type StatusInput struct{}

// StatusOutput is the output for the wm_status tool.
type StatusOutput struct {
	Tags        []string `json:"tags"`
	Layout      string   `json:"layout"`
	Mode        string   `json:"mode"`
	ClientCount int      `json:"client_count"`
	Focused     uint32   `json:"focused,omitempty"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// WindowInfo describes a single managed window.
type WindowInfo struct {
	Window  uint32   `json:"window"`
	Name    string   `json:"name"`
	Class   []string `json:"class,omitempty"`
	Tags    []string `json:"tags"`
	Urgent  bool     `json:"urgent,omitempty"`
	Focused bool     `json:"focused,omitempty"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// ViewTagsInput is the input for the view_tags tool.
type ViewTagsInput struct {
	Tags []string `json:"tags" jsonschema:"required,Tags the view should show (e.g. [\"web\"] or [\"1\", \"2\"])"`
}

// ViewTagsOutput is the output for the view_tags tool.
type ViewTagsOutput struct {
	Tags []string `json:"tags"`
}

// SetLayoutInput is the input for the set_layout tool.
type SetLayoutInput struct {
	Layout string `json:"layout" jsonschema:"required,Layout name: hstack, vstack, or monocle"`
}

// SetLayoutOutput is the output for the set_layout tool.
type SetLayoutOutput struct {
	Layout string `json:"layout"`
}

// RunActionInput is the input for the run_action tool.
type RunActionInput struct {
	Action string `json:"action" jsonschema:"required,Action name, optionally parameterized after a colon (e.g. focus_next, view:web, master_factor:+5)"`
}

// RunActionOutput is the output for the run_action tool.
type RunActionOutput struct {
	Action string `json:"action"`
}
