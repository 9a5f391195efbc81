package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/tagwm/internal/runtimepath"
)

// Client handles IPC communication with the window manager
type Client struct {
	socketPath string
	pathErr    error
	timeout    time.Duration
}

// NewClient creates a new IPC client. Constructing never fails; a socket
// path resolution error is surfaced by the first request.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	return &Client{
		socketPath: socketPath,
		pathErr:    err,
		timeout:    5 * time.Second,
	}
}

// NewClientWithSocket creates a client talking to an explicit socket path.
func NewClientWithSocket(socketPath string) *Client {
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	if c.pathErr != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", c.pathErr)
	}

	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to window manager: %w (is tagwm running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("window manager error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus retrieves the current view status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// ListClients retrieves the managed windows
func (c *Client) ListClients() (*ClientsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListClients})
	if err != nil {
		return nil, err
	}

	var clients ClientsData
	if err := json.Unmarshal(resp.Data, &clients); err != nil {
		return nil, fmt.Errorf("failed to parse clients data: %w", err)
	}

	return &clients, nil
}

// View switches to the view showing the given tags
func (c *Client) View(tags []string) error {
	payload, err := json.Marshal(ViewPayload{Tags: tags})
	if err != nil {
		return fmt.Errorf("failed to marshal view payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandView, Payload: payload})
	return err
}

// SetLayout switches the current view's layout
func (c *Client) SetLayout(layout string) error {
	payload, err := json.Marshal(SetLayoutPayload{Layout: layout})
	if err != nil {
		return fmt.Errorf("failed to marshal set_layout payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandSetLayout, Payload: payload})
	return err
}

// Do runs a named action, as if its key binding had been pressed
func (c *Client) Do(action string) error {
	payload, err := json.Marshal(DoPayload{Action: action})
	if err != nil {
		return fmt.Errorf("failed to marshal do payload: %w", err)
	}

	_, err = c.sendRequest(&Request{Command: CommandDo, Payload: payload})
	return err
}

// Ping checks if the window manager is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
