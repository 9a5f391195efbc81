package client

import (
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// viewEntry is the cached ordering of one tag combination: the member
// windows in view order plus the focused member. References are plain
// window handles owned by nobody; they are resolved against the client
// map before use and pruned as soon as a client is removed.
type viewEntry struct {
	tags    []Tag
	focused xproto.Window // 0 when nothing is focused
	refs    []xproto.Window
}

// ClientSet manages all clients known to the window manager, as well as
// their orderings on different tag combinations. Orderings are created
// lazily the first time a combination is viewed and are never dropped;
// the distinct combinations in use stay few in practice. Cleanup of
// removed clients is immediate, not deferred.
type ClientSet struct {
	clients map[xproto.Window]*Client
	order   map[string]*viewEntry
	added   []xproto.Window // insertion order, used to seed new view entries
}

// NewClientSet initializes an empty client set.
func NewClientSet() *ClientSet {
	return &ClientSet{
		clients: make(map[xproto.Window]*Client),
		order:   make(map[string]*viewEntry),
	}
}

// tagKey normalizes a tag combination into a cache key. The combination is
// an unordered set, so the key is deduplicated and sorted.
func tagKey(tags []Tag) string {
	uniq := make([]string, 0, len(tags))
	seen := make(map[Tag]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, string(t))
	}
	sort.Strings(uniq)
	return strings.Join(uniq, "\x1f")
}

// Get returns the client owning a window.
func (cs *ClientSet) Get(window xproto.Window) (*Client, bool) {
	c, ok := cs.clients[window]
	return c, ok
}

// Len returns the number of clients currently owned.
func (cs *ClientSet) Len() int { return len(cs.clients) }

// Clients returns all clients in insertion order.
func (cs *ClientSet) Clients() []*Client {
	res := make([]*Client, 0, len(cs.clients))
	for _, window := range cs.added {
		if c, ok := cs.clients[window]; ok {
			res = append(res, c)
		}
	}
	return res
}

// resolve checks a reference for liveness.
func (cs *ClientSet) resolve(window xproto.Window) (*Client, bool) {
	if window == 0 {
		return nil, false
	}
	c, ok := cs.clients[window]
	return c, ok
}

// orderOrInsert returns the view entry for a tag combination, creating it
// on first use from the clients matching the combination, in insertion
// order. The first match becomes the initial focus.
func (cs *ClientSet) orderOrInsert(tags []Tag) *viewEntry {
	key := tagKey(tags)
	if entry, ok := cs.order[key]; ok {
		return entry
	}
	entry := &viewEntry{tags: append([]Tag(nil), tags...)}
	for _, window := range cs.added {
		if c, ok := cs.clients[window]; ok && c.MatchTags(tags) {
			entry.refs = append(entry.refs, window)
		}
	}
	if len(entry.refs) > 0 {
		entry.focused = entry.refs[0]
	}
	cs.order[key] = entry
	return entry
}

// ViewOrder returns the member windows of a tag combination in view order.
func (cs *ClientSet) ViewOrder(tags []Tag) []xproto.Window {
	entry := cs.orderOrInsert(tags)
	res := make([]xproto.Window, 0, len(entry.refs))
	for _, window := range entry.refs {
		if _, ok := cs.resolve(window); ok {
			res = append(res, window)
		}
	}
	return res
}

// FocusedWindow returns the focused window of a tag combination, if the
// focus reference still resolves.
func (cs *ClientSet) FocusedWindow(tags []Tag) (xproto.Window, bool) {
	entry, ok := cs.order[tagKey(tags)]
	if !ok {
		return 0, false
	}
	if _, live := cs.resolve(entry.focused); !live {
		return 0, false
	}
	return entry.focused, true
}

// Add inserts a newly owned client and appends a reference to every
// materialized view entry it is visible on. The new client becomes focused
// within each of those views.
func (cs *ClientSet) Add(c *Client) {
	cs.clients[c.Window] = c
	cs.added = append(cs.added, c.Window)
	for _, entry := range cs.order {
		if c.MatchTags(entry.tags) {
			entry.refs = append(entry.refs, c.Window)
			entry.focused = c.Window
		}
	}
}

// Remove drops ownership of the client owning a window and prunes all
// references to it. Reports whether a client existed.
func (cs *ClientSet) Remove(window xproto.Window) bool {
	if _, ok := cs.clients[window]; !ok {
		return false
	}
	delete(cs.clients, window)
	for i, w := range cs.added {
		if w == window {
			cs.added = append(cs.added[:i], cs.added[i+1:]...)
			break
		}
	}
	cs.clean()
	return true
}

// clean sweeps all view entries, dropping dead references and resetting
// decayed focus to the first remaining member.
func (cs *ClientSet) clean() {
	for _, entry := range cs.order {
		live := entry.refs[:0]
		for _, window := range entry.refs {
			if _, ok := cs.resolve(window); ok {
				live = append(live, window)
			}
		}
		entry.refs = live
		if _, ok := cs.resolve(entry.focused); !ok {
			entry.focused = 0
			if len(entry.refs) > 0 {
				entry.focused = entry.refs[0]
			}
		}
	}
}

// fixReferences reconciles all view entries after a client changed: views
// it no longer matches drop their reference (and reassign focus if it was
// focused there), views it newly matches gain one (and focus it if nothing
// was focused).
func (cs *ClientSet) fixReferences(c *Client) {
	for _, entry := range cs.order {
		switch {
		case !c.MatchTags(entry.tags):
			for i, window := range entry.refs {
				if window == c.Window {
					entry.refs = append(entry.refs[:i], entry.refs[i+1:]...)
					break
				}
			}
			if entry.focused == c.Window {
				entry.focused = 0
				if len(entry.refs) > 0 {
					entry.focused = entry.refs[0]
				}
			}
		case !containsWindow(entry.refs, c.Window):
			entry.refs = append(entry.refs, c.Window)
			if _, ok := cs.resolve(entry.focused); !ok {
				entry.focused = entry.refs[0]
			}
		}
	}
}

func containsWindow(refs []xproto.Window, window xproto.Window) bool {
	for _, w := range refs {
		if w == window {
			return true
		}
	}
	return false
}

// Update applies a mutator to the client owning a window and reconciles
// all view entries afterwards. The mutator's result is returned unchanged;
// ok reports whether the window was known.
func Update[T any](cs *ClientSet, window xproto.Window, f func(*Client) T) (result T, ok bool) {
	c, exists := cs.clients[window]
	if !exists {
		return result, false
	}
	result = f(c)
	cs.fixReferences(c)
	return result, true
}

// focusOffset moves the focus of a view by an index offset, wrapping
// around. A no-op when the view is empty or the focus has decayed.
func (cs *ClientSet) focusOffset(tags []Tag, offset int) {
	entry := cs.orderOrInsert(tags)
	idx, ok := cs.focusedIndex(entry)
	if !ok {
		return
	}
	n := len(entry.refs)
	entry.focused = entry.refs[((idx+offset)%n+n)%n]
}

// swapOffset exchanges the focused member with the one an index offset
// away, wrapping around, without moving focus.
func (cs *ClientSet) swapOffset(tags []Tag, offset int) {
	entry := cs.orderOrInsert(tags)
	idx, ok := cs.focusedIndex(entry)
	if !ok {
		return
	}
	n := len(entry.refs)
	target := ((idx+offset)%n + n) % n
	entry.refs[idx], entry.refs[target] = entry.refs[target], entry.refs[idx]
}

// focusedIndex locates the focused member within a view's ordering.
func (cs *ClientSet) focusedIndex(entry *viewEntry) (int, bool) {
	if _, ok := cs.resolve(entry.focused); !ok {
		return 0, false
	}
	for i, window := range entry.refs {
		if window == entry.focused {
			return i, true
		}
	}
	return 0, false
}

// focusDirection moves the focus along a layout-supplied direction query.
func (cs *ClientSet) focusDirection(tags []Tag, query func(index, max int) (int, bool)) {
	entry := cs.orderOrInsert(tags)
	idx, ok := cs.focusedIndex(entry)
	if !ok {
		return
	}
	if target, found := query(idx, len(entry.refs)-1); found && target < len(entry.refs) {
		entry.focused = entry.refs[target]
	}
}

// swapDirection exchanges the focused member with a layout-supplied
// neighbor, without moving focus.
func (cs *ClientSet) swapDirection(tags []Tag, query func(index, max int) (int, bool)) {
	entry := cs.orderOrInsert(tags)
	idx, ok := cs.focusedIndex(entry)
	if !ok {
		return
	}
	if target, found := query(idx, len(entry.refs)-1); found && target < len(entry.refs) {
		entry.refs[idx], entry.refs[target] = entry.refs[target], entry.refs[idx]
	}
}

// FocusNext focuses the next window in view order.
func (cs *ClientSet) FocusNext(ts *TagSet) { cs.focusOffset(ts.Tags, 1) }

// FocusPrev focuses the previous window in view order.
func (cs *ClientSet) FocusPrev(ts *TagSet) { cs.focusOffset(ts.Tags, -1) }

// SwapNext swaps the focused window with the next one.
func (cs *ClientSet) SwapNext(ts *TagSet) { cs.swapOffset(ts.Tags, 1) }

// SwapPrev swaps the focused window with the previous one.
func (cs *ClientSet) SwapPrev(ts *TagSet) { cs.swapOffset(ts.Tags, -1) }

// FocusRight focuses the window to the right, as defined by the layout.
func (cs *ClientSet) FocusRight(ts *TagSet) { cs.focusDirection(ts.Tags, ts.Layout.RightWindow) }

// FocusLeft focuses the window to the left.
func (cs *ClientSet) FocusLeft(ts *TagSet) { cs.focusDirection(ts.Tags, ts.Layout.LeftWindow) }

// FocusTop focuses the window above.
func (cs *ClientSet) FocusTop(ts *TagSet) { cs.focusDirection(ts.Tags, ts.Layout.TopWindow) }

// FocusBottom focuses the window below.
func (cs *ClientSet) FocusBottom(ts *TagSet) { cs.focusDirection(ts.Tags, ts.Layout.BottomWindow) }

// SwapRight swaps the focused window with the one to the right.
func (cs *ClientSet) SwapRight(ts *TagSet) { cs.swapDirection(ts.Tags, ts.Layout.RightWindow) }

// SwapLeft swaps the focused window with the one to the left.
func (cs *ClientSet) SwapLeft(ts *TagSet) { cs.swapDirection(ts.Tags, ts.Layout.LeftWindow) }

// SwapTop swaps the focused window with the one above.
func (cs *ClientSet) SwapTop(ts *TagSet) { cs.swapDirection(ts.Tags, ts.Layout.TopWindow) }

// SwapBottom swaps the focused window with the one below.
func (cs *ClientSet) SwapBottom(ts *TagSet) { cs.swapDirection(ts.Tags, ts.Layout.BottomWindow) }

// SwapMaster swaps the focused window into the master slot.
func (cs *ClientSet) SwapMaster(ts *TagSet) {
	cs.swapDirection(ts.Tags, func(_, _ int) (int, bool) { return 0, true })
}
