// Package ipc implements the unix-socket control protocol: one JSON
// request per line, one JSON response per line.
package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandListClients CommandType = "LIST_CLIENTS"
	CommandView        CommandType = "VIEW"
	CommandSetLayout   CommandType = "SET_LAYOUT"
	CommandDo          CommandType = "DO"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	Tags        []string `json:"tags"`
	Layout      string   `json:"layout"`
	Mode        string   `json:"mode"`
	ClientCount int      `json:"client_count"`
	Focused     uint32   `json:"focused,omitempty"`
}

// ClientData represents one managed window in LIST_CLIENTS output
type ClientData struct {
	Window  uint32   `json:"window"`
	Name    string   `json:"name"`
	Class   []string `json:"class,omitempty"`
	Tags    []string `json:"tags"`
	Urgent  bool     `json:"urgent,omitempty"`
	Focused bool     `json:"focused,omitempty"`
}

// ClientsData represents the data returned by LIST_CLIENTS
type ClientsData struct {
	Clients []ClientData `json:"clients"`
}

// ViewPayload represents the payload for the VIEW command
type ViewPayload struct {
	Tags []string `json:"tags"`
}

// SetLayoutPayload represents the payload for the SET_LAYOUT command
type SetLayoutPayload struct {
	Layout string `json:"layout"`
}

// DoPayload represents the payload for the DO command
type DoPayload struct {
	Action string `json:"action"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
