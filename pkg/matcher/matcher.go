// Package matcher decides whether a reported document type is wanted.
package matcher

import (
	"fmt"
	"strings"
)

// Mode selects how wanted types are compared with reported types
type Mode string

const (
	// Exact requires case-insensitive equality
	Exact Mode = "exact"
	// Substring requires a wanted type to appear inside the reported type
	Substring Mode = "substring"
)

// ParseMode converts a configured mode name. Empty means Substring.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Substring:
		return Substring, nil
	case Exact:
		return Exact, nil
	default:
		return "", fmt.Errorf("unknown match mode %q (expected exact or substring)", s)
	}
}

// Matcher holds the wanted types and the comparison mode
type Matcher struct {
	Wanted []string
	Mode   Mode
}

// New creates a matcher, lowering the wanted types once
func New(wanted []string, mode Mode) *Matcher {
	lowered := make([]string, 0, len(wanted))
	for _, w := range wanted {
		lowered = append(lowered, strings.ToLower(w))
	}
	return &Matcher{Wanted: lowered, Mode: mode}
}

// Matches reports whether reported is one of the wanted types.
// In substring mode a short wanted token such as "order" matches longer
// labels such as "Order on Motion to Dismiss"; the reverse does not hold.
func (m *Matcher) Matches(reported string) bool {
	reported = strings.ToLower(reported)
	for _, w := range m.Wanted {
		if m.Mode == Exact {
			if reported == w {
				return true
			}
		} else if strings.Contains(reported, w) {
			return true
		}
	}
	return false
}

// Matches is a convenience for one-off checks
func Matches(reported string, wanted []string, mode Mode) bool {
	return New(wanted, mode).Matches(reported)
}
