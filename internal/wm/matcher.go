package wm

import (
	"strings"

	"github.com/1broseidon/tagwm/internal/client"
	"github.com/1broseidon/tagwm/internal/config"
)

// Matcher decides the default tags of a new client from its properties.
// ok is false if no rule applies, in which case the dispatcher falls back
// to the current view's tags, then to the default tag.
type Matcher func(client.Props) (tags []client.Tag, ok bool)

// RuleMatcher builds a Matcher from configured window rules. The first
// matching rule wins. A rule matches when its class equals one of the
// client's class strings and, if set, name_contains occurs in the client's
// name.
func RuleMatcher(rules []config.Rule) Matcher {
	if len(rules) == 0 {
		return nil
	}
	return func(props client.Props) ([]client.Tag, bool) {
		for _, rule := range rules {
			if !matchesRule(rule, props) {
				continue
			}
			tags := make([]client.Tag, 0, len(rule.Tags))
			for _, t := range rule.Tags {
				tags = append(tags, client.Tag(t))
			}
			return tags, true
		}
		return nil, false
	}
}

func matchesRule(rule config.Rule, props client.Props) bool {
	if rule.Class != "" {
		found := false
		for _, class := range props.Class {
			if class == rule.Class {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if rule.NameContains != "" && !strings.Contains(props.Name, rule.NameContains) {
		return false
	}
	return rule.Class != "" || rule.NameContains != ""
}
