package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ StatusInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{
		Tags:        status.Tags,
		Layout:      status.Layout,
		Mode:        status.Mode,
		ClientCount: status.ClientCount,
		Focused:     status.Focused,
	}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	clients, err := s.client.ListClients()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	windows := make([]WindowInfo, len(clients.Clients))
	for i, c := range clients.Clients {
		windows[i] = WindowInfo{
			Window:  c.Window,
			Name:    c.Name,
			Class:   c.Class,
			Tags:    c.Tags,
			Urgent:  c.Urgent,
			Focused: c.Focused,
		}
	}
	return nil, ListWindowsOutput{Windows: windows}, nil
}

func (s *Server) handleViewTags(_ context.Context, _ *mcpsdk.CallToolRequest, args ViewTagsInput) (*mcpsdk.CallToolResult, ViewTagsOutput, error) {
	if err := s.client.View(args.Tags); err != nil {
		return nil, ViewTagsOutput{}, err
	}
	return nil, ViewTagsOutput{Tags: args.Tags}, nil
}

func (s *Server) handleSetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args SetLayoutInput) (*mcpsdk.CallToolResult, SetLayoutOutput, error) {
	if err := s.client.SetLayout(args.Layout); err != nil {
		return nil, SetLayoutOutput{}, err
	}
	return nil, SetLayoutOutput{Layout: args.Layout}, nil
}

func (s *Server) handleRunAction(_ context.Context, _ *mcpsdk.CallToolRequest, args RunActionInput) (*mcpsdk.CallToolResult, RunActionOutput, error) {
	if err := s.client.Do(args.Action); err != nil {
		return nil, RunActionOutput{}, err
	}
	return nil, RunActionOutput{Action: args.Action}, nil
}
