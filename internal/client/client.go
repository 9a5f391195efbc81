// Package client tracks every managed window, groups clients into
// overlapping tagged subsets, and maintains the ordered, focus-tracking
// views the window manager navigates.
package client

import (
	"github.com/BurntSushi/xgb/xproto"
)

// Tag is a symbolic label a client is visible on. A client carries at
// least one tag at all times.
type Tag string

// DefaultTag is assigned to new clients when neither a match rule nor a
// current view provides tags.
const DefaultTag Tag = "1"

// Props holds the window properties fetched when a client is created.
// WindowType is the first _NET_WM_WINDOW_TYPE atom name, if any.
type Props struct {
	WindowType string
	Name       string
	Class      []string
}

// Client wraps a managed window: a container for the associated metadata.
// The properties themselves never drive the window manager directly, they
// only alter the structures the manager consults.
type Client struct {
	Window xproto.Window
	props  Props
	urgent bool
	tags   []Tag
}

// New sets up a client for a window, visible on a set of tags.
func New(window xproto.Window, tags []Tag, props Props) *Client {
	return &Client{
		Window: window,
		props:  props,
		tags:   append([]Tag(nil), tags...),
	}
}

// Name returns the client's display name.
func (c *Client) Name() string { return c.props.Name }

// Class returns the client's class strings.
func (c *Client) Class() []string { return append([]string(nil), c.props.Class...) }

// WindowType returns the client's window-type classifier.
func (c *Client) WindowType() string { return c.props.WindowType }

// Urgent reports whether the urgency hint is set.
func (c *Client) Urgent() bool { return c.urgent }

// SetUrgent sets or clears the urgency hint.
func (c *Client) SetUrgent(urgent bool) { c.urgent = urgent }

// Tags returns a copy of the tags the client is visible on.
func (c *Client) Tags() []Tag { return append([]Tag(nil), c.tags...) }

// SetTags moves the client to a new set of tags. An empty set is rejected
// as a no-op: a client always stays on at least one tag.
func (c *Client) SetTags(tags []Tag) {
	if len(tags) > 0 {
		c.tags = append([]Tag(nil), tags...)
	}
}

// ToggleTag adds or removes a tag. Removing the last remaining tag is a
// no-op.
func (c *Client) ToggleTag(tag Tag) {
	for i, t := range c.tags {
		if t == tag {
			if len(c.tags) > 1 {
				c.tags = append(c.tags[:i], c.tags[i+1:]...)
			}
			return
		}
	}
	c.tags = append(c.tags, tag)
}

// MatchTags reports whether the client is visible on any of the given tags.
func (c *Client) MatchTags(tags []Tag) bool {
	for _, t := range c.tags {
		for _, t2 := range tags {
			if t == t2 {
				return true
			}
		}
	}
	return false
}
