// Package config loads and validates the tagwm configuration file.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/tagwm/internal/layout"
)

// Screen overrides the usable screen region. Zero width/height means "use
// the size reported by the display server"; offsets shift the region, e.g.
// to leave room for a panel.
type Screen struct {
	OffsetX int `yaml:"offset_x"`
	OffsetY int `yaml:"offset_y"`
	Width   int `yaml:"width,omitempty"`
	Height  int `yaml:"height,omitempty"`
}

// Rule assigns default tags to new windows by their properties.
type Rule struct {
	Class        string   `yaml:"class,omitempty"`
	NameContains string   `yaml:"name_contains,omitempty"`
	Tags         []string `yaml:"tags"`
}

// Config is the full tagwm configuration.
type Config struct {
	// FocusedColor and UnfocusedColor are window border colors, as #rrggbb.
	FocusedColor   string `yaml:"focused_color"`
	UnfocusedColor string `yaml:"unfocused_color"`
	// BorderWidth is the window border width in pixels.
	BorderWidth int `yaml:"border_width"`
	// Tags lists the tags available to view and bind.
	Tags []string `yaml:"tags"`
	// DefaultLayout is used for newly pushed views.
	DefaultLayout string `yaml:"default_layout"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Screen Screen `yaml:"screen,omitempty"`

	// Bindings maps keyboard mode -> key sequence -> action name.
	Bindings map[string]map[string]string `yaml:"bindings"`

	// Rules assign default tags to new windows; first match wins.
	Rules []Rule `yaml:"rules,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		FocusedColor:   "#5294e2",
		UnfocusedColor: "#3b4252",
		BorderWidth:    1,
		Tags:           []string{"1", "2", "3", "4", "5"},
		DefaultLayout:  "vstack",
		LogLevel:       "info",
		Bindings: map[string]map[string]string{
			"normal": {
				"Mod4-j":       "focus_next",
				"Mod4-k":       "focus_prev",
				"Mod4-Shift-j": "swap_next",
				"Mod4-Shift-k": "swap_prev",
				"Mod4-h":       "focus_left",
				"Mod4-l":       "focus_right",
				"Mod4-Shift-h": "swap_left",
				"Mod4-Shift-l": "swap_right",
				"Mod4-Return":  "swap_master",
				"Mod4-q":       "kill",
				"Mod4-Tab":     "view_prev",
				"Mod4-1":       "view:1",
				"Mod4-2":       "view:2",
				"Mod4-3":       "view:3",
				"Mod4-4":       "view:4",
				"Mod4-5":       "view:5",
				"Mod4-m":       "set_layout:monocle",
				"Mod4-v":       "set_layout:vstack",
				"Mod4-b":       "set_layout:hstack",
				"Mod4-r":       "mode:resize",
				"Mod4-Shift-q": "quit",
			},
			"resize": {
				"h":      "master_factor:-5",
				"l":      "master_factor:+5",
				"f":      "toggle_fixed",
				"Escape": "mode:normal",
			},
		},
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if _, err := ParseColor(c.FocusedColor); err != nil {
		return fmt.Errorf("focused_color: %w", err)
	}
	if _, err := ParseColor(c.UnfocusedColor); err != nil {
		return fmt.Errorf("unfocused_color: %w", err)
	}
	if c.BorderWidth < 0 {
		return fmt.Errorf("border_width must not be negative")
	}
	if len(c.Tags) == 0 {
		return fmt.Errorf("at least one tag must be configured")
	}
	if _, ok := layout.New(c.DefaultLayout); !ok {
		return fmt.Errorf("default_layout must be one of: %s", strings.Join(layout.Names(), ", "))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}
	if c.Screen.Width < 0 || c.Screen.Height < 0 {
		return fmt.Errorf("screen size override must not be negative")
	}
	if len(c.Bindings) == 0 {
		return fmt.Errorf("at least one keyboard mode must be bound")
	}
	for mode, keys := range c.Bindings {
		if mode == "" {
			return fmt.Errorf("bindings: empty mode name")
		}
		for seq, action := range keys {
			if seq == "" || action == "" {
				return fmt.Errorf("bindings[%s]: empty key sequence or action", mode)
			}
		}
	}
	for i, rule := range c.Rules {
		if rule.Class == "" && rule.NameContains == "" {
			return fmt.Errorf("rules[%d]: needs class or name_contains", i)
		}
		if len(rule.Tags) == 0 {
			return fmt.Errorf("rules[%d]: needs at least one tag", i)
		}
	}
	return nil
}

// ParseColor parses a #rrggbb color into an X pixel value.
func ParseColor(s string) (uint32, error) {
	if !strings.HasPrefix(s, "#") || len(s) != 7 {
		return 0, fmt.Errorf("invalid color %q, expected #rrggbb", s)
	}
	value, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(value), nil
}
