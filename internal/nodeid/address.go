// internal/nodeid/address.go
package nodeid

import (
	"slices"
	"strings"
)

// String serializes the Address into its canonical path string representation.
func (a *Address) String() string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 || a.Absolute {
			sb.WriteRune('/')
		}
		sb.WriteString(segment.String())
	}

	return sb.String()
}

// Equal checks for deep equality between two Address pointers.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Absolute == other.Absolute && slices.Equal(a.Path, other.Path)
}

// Names returns the unprefixed node names of the path, in order.
func (a *Address) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, len(a.Path))
	for i, segment := range a.Path {
		names[i] = segment.Name
	}
	return names
}
