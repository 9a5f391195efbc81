package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/tagwm/internal/client"
	"github.com/1broseidon/tagwm/internal/wm"
)

// replyTimeout bounds how long a connection waits for the dispatcher to
// pick up an injected control event.
const replyTimeout = 5 * time.Second

// Dispatcher receives control events on the window manager's serialized
// event stream.
type Dispatcher interface {
	InjectControl(ev wm.ControlEvent)
}

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	dispatcher   Dispatcher
	log          *slog.Logger
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server forwarding commands to dispatcher.
func NewServer(socketPath string, dispatcher Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		socketPath: socketPath,
		dispatcher: dispatcher,
		log:        logger,
	}
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// Remove existing socket if present
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info("IPC server listening", "socket", s.socketPath)

	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			s.log.Warn("IPC accept error", "error", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Warn("IPC read error", "error", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendResponse(conn, NewErrorResponse(fmt.Sprintf("Invalid request: %v", err)))
		return
	}

	s.sendResponse(conn, s.handleCommand(req))
}

// handleCommand translates an IPC command into a control request, runs it
// through the dispatcher, and renders the result.
func (s *Server) handleCommand(req *Request) *Response {
	ctrl, err := translateRequest(req)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	result, err := s.dispatch(ctrl)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	switch req.Command {
	case CommandGetStatus:
		resp, err := NewOKResponse(statusData(result.Status))
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return resp
	case CommandListClients:
		resp, err := NewOKResponse(clientsData(result.Clients))
		if err != nil {
			return NewErrorResponse(err.Error())
		}
		return resp
	default:
		resp, _ := NewOKResponse(nil)
		return resp
	}
}

func translateRequest(req *Request) (wm.ControlRequest, error) {
	switch req.Command {
	case CommandGetStatus:
		return wm.ControlRequest{Action: wm.ControlStatus}, nil
	case CommandListClients:
		return wm.ControlRequest{Action: wm.ControlClients}, nil
	case CommandView:
		var payload ViewPayload
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return wm.ControlRequest{}, fmt.Errorf("invalid view payload: %w", err)
		}
		if len(payload.Tags) == 0 {
			return wm.ControlRequest{}, fmt.Errorf("view requires at least one tag")
		}
		tags := make([]client.Tag, len(payload.Tags))
		for i, t := range payload.Tags {
			tags[i] = client.Tag(t)
		}
		return wm.ControlRequest{Action: wm.ControlView, Tags: tags}, nil
	case CommandSetLayout:
		var payload SetLayoutPayload
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return wm.ControlRequest{}, fmt.Errorf("invalid set_layout payload: %w", err)
		}
		if payload.Layout == "" {
			return wm.ControlRequest{}, fmt.Errorf("layout is required")
		}
		return wm.ControlRequest{Action: wm.ControlSetLayout, Layout: payload.Layout}, nil
	case CommandDo:
		var payload DoPayload
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return wm.ControlRequest{}, fmt.Errorf("invalid do payload: %w", err)
		}
		if payload.Action == "" {
			return wm.ControlRequest{}, fmt.Errorf("action is required")
		}
		return wm.ControlRequest{Action: wm.ControlDo, Name: payload.Action}, nil
	default:
		return wm.ControlRequest{}, fmt.Errorf("unknown command: %s", req.Command)
	}
}

// dispatch injects a control event and waits for the manager's reply.
func (s *Server) dispatch(ctrl wm.ControlRequest) (wm.ControlResponse, error) {
	reply := make(chan wm.ControlResponse, 1)
	s.dispatcher.InjectControl(wm.ControlEvent{Request: ctrl, Reply: reply})

	select {
	case result := <-reply:
		if result.Err != nil {
			return wm.ControlResponse{}, result.Err
		}
		return result, nil
	case <-time.After(replyTimeout):
		return wm.ControlResponse{}, fmt.Errorf("window manager did not respond")
	}
}

func statusData(status *wm.StatusSnapshot) *StatusData {
	if status == nil {
		return &StatusData{}
	}
	tags := make([]string, len(status.Tags))
	for i, t := range status.Tags {
		tags[i] = string(t)
	}
	return &StatusData{
		Tags:        tags,
		Layout:      status.Layout,
		Mode:        string(status.Mode),
		ClientCount: status.ClientCount,
		Focused:     uint32(status.Focused),
	}
}

func clientsData(infos []wm.ClientInfo) *ClientsData {
	clients := make([]ClientData, len(infos))
	for i, info := range infos {
		tags := make([]string, len(info.Tags))
		for j, t := range info.Tags {
			tags[j] = string(t)
		}
		clients[i] = ClientData{
			Window:  uint32(info.Window),
			Name:    info.Name,
			Class:   info.Class,
			Tags:    tags,
			Urgent:  info.Urgent,
			Focused: info.Focused,
		}
	}
	return &ClientsData{Clients: clients}
}

// sendResponse writes one response line to the connection.
func (s *Server) sendResponse(conn net.Conn, resp *Response) {
	data, err := resp.Marshal()
	if err != nil {
		s.log.Warn("failed to marshal response", "error", err)
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		s.log.Warn("failed to send response", "error", err)
	}
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}
