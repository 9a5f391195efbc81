package ipc

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/tagwm/internal/client"
	"github.com/1broseidon/tagwm/internal/wm"
)

// scriptDispatcher answers control events inline, recording what it saw.
type scriptDispatcher struct {
	requests []wm.ControlRequest
	respond  func(wm.ControlRequest) wm.ControlResponse
}

func (d *scriptDispatcher) InjectControl(ev wm.ControlEvent) {
	d.requests = append(d.requests, ev.Request)
	resp := wm.ControlResponse{}
	if d.respond != nil {
		resp = d.respond(ev.Request)
	}
	ev.Reply <- resp
}

func startTestServer(t *testing.T, dispatcher Dispatcher) *Client {
	t.Helper()
	socket := filepath.Join(t.TempDir(), "tagwm-test.sock")
	srv := NewServer(socket, dispatcher, slog.Default())
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(srv.Stop)
	return NewClientWithSocket(socket)
}

func TestGetStatusRoundTrip(t *testing.T) {
	dispatcher := &scriptDispatcher{
		respond: func(wm.ControlRequest) wm.ControlResponse {
			return wm.ControlResponse{Status: &wm.StatusSnapshot{
				Tags:        []client.Tag{"web", "code"},
				Layout:      "vstack",
				Mode:        client.ModeNormal,
				ClientCount: 2,
				Focused:     7,
			}}
		},
	}
	c := startTestServer(t, dispatcher)

	status, err := c.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if len(status.Tags) != 2 || status.Tags[0] != "web" {
		t.Fatalf("tags = %v", status.Tags)
	}
	if status.Layout != "vstack" || status.Mode != "normal" {
		t.Fatalf("status = %+v", status)
	}
	if status.ClientCount != 2 || status.Focused != 7 {
		t.Fatalf("status = %+v", status)
	}
	if len(dispatcher.requests) != 1 || dispatcher.requests[0].Action != wm.ControlStatus {
		t.Fatalf("requests = %+v", dispatcher.requests)
	}
}

func TestListClientsRoundTrip(t *testing.T) {
	dispatcher := &scriptDispatcher{
		respond: func(wm.ControlRequest) wm.ControlResponse {
			return wm.ControlResponse{Clients: []wm.ClientInfo{
				{Window: 1, Name: "editor", Class: []string{"emacs", "Emacs"}, Tags: []client.Tag{"code"}, Focused: true},
				{Window: 2, Name: "browser", Tags: []client.Tag{"web"}, Urgent: true},
			}}
		},
	}
	c := startTestServer(t, dispatcher)

	clients, err := c.ListClients()
	if err != nil {
		t.Fatalf("ListClients: %v", err)
	}
	if len(clients.Clients) != 2 {
		t.Fatalf("clients = %+v", clients)
	}
	if clients.Clients[0].Window != 1 || !clients.Clients[0].Focused {
		t.Fatalf("first client = %+v", clients.Clients[0])
	}
	if !clients.Clients[1].Urgent {
		t.Fatalf("second client = %+v", clients.Clients[1])
	}
}

func TestViewTranslatesTags(t *testing.T) {
	dispatcher := &scriptDispatcher{}
	c := startTestServer(t, dispatcher)

	if err := c.View([]string{"web", "mail"}); err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(dispatcher.requests) != 1 {
		t.Fatalf("requests = %+v", dispatcher.requests)
	}
	req := dispatcher.requests[0]
	if req.Action != wm.ControlView || len(req.Tags) != 2 || req.Tags[1] != "mail" {
		t.Fatalf("request = %+v", req)
	}
}

func TestViewRequiresTags(t *testing.T) {
	c := startTestServer(t, &scriptDispatcher{})
	if err := c.View(nil); err == nil {
		t.Fatal("expected error for empty tag list")
	}
}

func TestSetLayoutAndDo(t *testing.T) {
	dispatcher := &scriptDispatcher{}
	c := startTestServer(t, dispatcher)

	if err := c.SetLayout("monocle"); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	if err := c.Do("focus_next"); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(dispatcher.requests) != 2 {
		t.Fatalf("requests = %+v", dispatcher.requests)
	}
	if dispatcher.requests[0].Layout != "monocle" {
		t.Fatalf("set_layout request = %+v", dispatcher.requests[0])
	}
	if dispatcher.requests[1].Name != "focus_next" {
		t.Fatalf("do request = %+v", dispatcher.requests[1])
	}
}

func TestClientSurfacesSocketPathError(t *testing.T) {
	c := &Client{pathErr: fmt.Errorf("no runtime directory")}
	_, err := c.GetStatus()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no runtime directory") {
		t.Fatalf("error %q does not carry the resolution failure", err)
	}
}

func TestDispatcherErrorBecomesClientError(t *testing.T) {
	dispatcher := &scriptDispatcher{
		respond: func(wm.ControlRequest) wm.ControlResponse {
			return wm.ControlResponse{Err: fmt.Errorf("unknown layout: spiral")}
		},
	}
	c := startTestServer(t, dispatcher)

	err := c.SetLayout("spiral")
	if err == nil {
		t.Fatal("expected error")
	}
}
