// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex parses a single segment of a path, e.g. `name` or `pfx:name`.
var segmentRegex = regexp.MustCompile(`^(?:([a-zA-Z_][a-zA-Z0-9_.-]*):)?([a-zA-Z_][a-zA-Z0-9_.-]*)$`)

// Parse creates a new Address struct by parsing its canonical string representation.
func Parse(rawID string) (*Address, error) {
	if rawID == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}

	addr := &Address{}
	body := rawID
	if strings.HasPrefix(body, "/") {
		addr.Absolute = true
		body = body[1:]
		if body == "" {
			return nil, fmt.Errorf("identifier %q has no segments", rawID)
		}
	}

	for _, segmentStr := range strings.Split(body, "/") {
		if segmentStr == "" {
			return nil, fmt.Errorf("identifier path contains empty segment")
		}

		matches := segmentRegex.FindStringSubmatch(segmentStr)
		if matches == nil {
			return nil, fmt.Errorf("invalid path segment format: %q", segmentStr)
		}

		addr.Path = append(addr.Path, NewPrefixedPathSegment(matches[1], matches[2]))
	}

	return addr, nil
}
