package client

import (
	"testing"

	"github.com/1broseidon/tagwm/internal/layout"
)

func TestTagStackPushBoundsHistory(t *testing.T) {
	s := NewTagStack()
	for i := 0; i < 6; i++ {
		s.Push(testTagSet(Tag(rune('a' + i))))
	}

	if s.Len() != 4 {
		t.Fatalf("expected stack capped at 4 entries, got %d", s.Len())
	}
	if cur := s.Current(); cur == nil || cur.Tags[0] != "f" {
		t.Fatalf("expected most recent entry current, got %v", cur)
	}
	// the 3 oldest entries are gone
	s.ViewNth(0)
	if cur := s.Current(); cur.Tags[0] != "c" {
		t.Fatalf("expected oldest surviving entry to be c, got %v", cur.Tags)
	}
}

func TestTagStackCurrentOnEmpty(t *testing.T) {
	s := NewTagStack()
	if s.Current() != nil {
		t.Fatal("expected nil current on an empty stack")
	}
	s.SwapTop() // no-op
	s.ViewNth(0)
	if s.Len() != 0 {
		t.Fatalf("expected stack to stay empty, got %d", s.Len())
	}
}

func TestTagStackSwapTop(t *testing.T) {
	s := NewTagStackFrom(testTagSet("web"), testTagSet("code"))

	s.SwapTop()
	if s.Current().Tags[0] != "web" {
		t.Fatalf("expected previously viewed set current, got %v", s.Current().Tags)
	}
	s.SwapTop()
	if s.Current().Tags[0] != "code" {
		t.Fatalf("expected toggle back, got %v", s.Current().Tags)
	}

	single := NewTagStackFrom(testTagSet("web"))
	single.SwapTop()
	if single.Current().Tags[0] != "web" {
		t.Fatal("expected SwapTop no-op with one entry")
	}
}

func TestTagStackMutatesCurrentInPlace(t *testing.T) {
	s := NewTagStackFrom(testTagSet("web"))

	s.Current().ToggleTag("code")
	s.Current().SetLayout(layout.NewMonocle())

	if s.Len() != 1 {
		t.Fatalf("in-place mutation must not push history, got %d entries", s.Len())
	}
	cur := s.Current()
	if len(cur.Tags) != 2 || cur.Tags[1] != "code" {
		t.Fatalf("expected tag toggled on, got %v", cur.Tags)
	}
	if cur.Layout.Name() != "monocle" {
		t.Fatalf("expected layout replaced, got %s", cur.Layout.Name())
	}

	cur.ToggleTag("web")
	if len(cur.Tags) != 1 || cur.Tags[0] != "code" {
		t.Fatalf("expected tag toggled off, got %v", cur.Tags)
	}
}

func TestTagStackViewNth(t *testing.T) {
	s := NewTagStackFrom(testTagSet("a"), testTagSet("b"), testTagSet("c"))

	s.ViewNth(0)
	if s.Current().Tags[0] != "a" {
		t.Fatalf("expected entry 0 raised, got %v", s.Current().Tags)
	}
	if s.Len() != 3 {
		t.Fatalf("expected stack size unchanged, got %d", s.Len())
	}
	s.ViewNth(5) // out of range, no-op
	if s.Current().Tags[0] != "a" {
		t.Fatal("expected out-of-range ViewNth to be a no-op")
	}
}
