package layers

import (
	"fmt"
	"strings"
)

// Mode selects which stored types satisfy a type search. The zero value is
// Same.
type Mode int

const (
	// Same accepts only values whose type is exactly the searched type.
	Same Mode = iota
	// Parents accepts the searched type or any of its ancestors.
	Parents
	// Children accepts the searched type or any of its descendants.
	Children
	// Both accepts ancestors and descendants.
	Both
)

func (m Mode) String() string {
	switch m {
	case Same:
		return "same"
	case Parents:
		return "parents"
	case Children:
		return "children"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts "same", "parents", "children" or "both" (any case) into
// a Mode. The empty string means Same.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "same":
		return Same, nil
	case "parents", "parent":
		return Parents, nil
	case "children", "child":
		return Children, nil
	case "both":
		return Both, nil
	}
	return Same, fmt.Errorf("layers: unknown mode %q", s)
}
