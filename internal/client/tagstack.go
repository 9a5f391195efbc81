package client

import (
	"github.com/1broseidon/tagwm/internal/layout"
)

// Mode is the active keyboard input mode; keybindings are looked up per
// mode.
type Mode string

// ModeNormal is the default input mode.
const ModeNormal Mode = "normal"

// TagSet is a set of tags paired with the layout used to display them. It
// determines the windows shown at a given point in time.
type TagSet struct {
	Tags   []Tag
	Layout layout.Layout
}

// NewTagSet pairs tags with a layout.
func NewTagSet(tags []Tag, l layout.Layout) *TagSet {
	return &TagSet{
		Tags:   append([]Tag(nil), tags...),
		Layout: l,
	}
}

// ToggleTag adds or removes a tag on the tag set.
func (ts *TagSet) ToggleTag(tag Tag) {
	for i, t := range ts.Tags {
		if t == tag {
			ts.Tags = append(ts.Tags[:i], ts.Tags[i+1:]...)
			return
		}
	}
	ts.Tags = append(ts.Tags, tag)
}

// SetLayout replaces the layout used for the tag set.
func (ts *TagSet) SetLayout(l layout.Layout) {
	ts.Layout = l
}

// maxStackDepth bounds the tag set history; older entries are dropped.
const maxStackDepth = 4

// TagStack is the history of viewed tag sets, most recent last, together
// with the active keyboard mode. The last entry is the currently displayed
// view.
type TagStack struct {
	sets []*TagSet
	Mode Mode
}

// NewTagStack sets up an empty tag stack.
func NewTagStack() *TagStack {
	return &TagStack{Mode: ModeNormal}
}

// NewTagStackFrom sets up a tag stack from existing tag sets, first is
// bottom.
func NewTagStackFrom(sets ...*TagSet) *TagStack {
	return &TagStack{
		sets: append([]*TagSet(nil), sets...),
		Mode: ModeNormal,
	}
}

// Len returns the number of tag sets on the stack.
func (s *TagStack) Len() int { return len(s.sets) }

// Current returns the currently displayed tag set, or nil if the stack is
// empty.
func (s *TagStack) Current() *TagSet {
	if len(s.sets) == 0 {
		return nil
	}
	return s.sets[len(s.sets)-1]
}

// Push makes a tag set current, dropping the oldest entries to keep the
// stack depth bounded.
func (s *TagStack) Push(ts *TagSet) {
	if len(s.sets) >= maxStackDepth {
		s.sets = append(s.sets[:0:0], s.sets[len(s.sets)-(maxStackDepth-1):]...)
	}
	s.sets = append(s.sets, ts)
}

// SwapTop exchanges the two most recent tag sets, switching back to the
// previously viewed one. A no-op with fewer than two entries.
func (s *TagStack) SwapTop() {
	if len(s.sets) < 2 {
		return
	}
	n := len(s.sets)
	s.sets[n-1], s.sets[n-2] = s.sets[n-2], s.sets[n-1]
}

// ViewNth raises the tag set at the given stack index to the top.
func (s *TagStack) ViewNth(index int) {
	if index < 0 || index >= len(s.sets) {
		return
	}
	ts := s.sets[index]
	s.sets = append(s.sets[:index], s.sets[index+1:]...)
	s.sets = append(s.sets, ts)
}
