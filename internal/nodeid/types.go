// internal/nodeid/types.go
package nodeid

// PathSegment represents a single component of a schema node identifier,
// e.g. `if:interface`.
type PathSegment struct {
	// Prefix is the module prefix, or empty when the segment is unprefixed.
	Prefix string
	Name   string
}

// NewPathSegment creates a new path segment without a prefix.
func NewPathSegment(name string) PathSegment {
	return PathSegment{Name: name}
}

// NewPrefixedPathSegment creates a new path segment qualified by a module
// prefix.
func NewPrefixedPathSegment(prefix, name string) PathSegment {
	return PathSegment{Prefix: prefix, Name: name}
}

// HasPrefix returns true if the path segment has an explicit prefix.
func (ps PathSegment) HasPrefix() bool {
	return ps.Prefix != ""
}

// String renders the segment as `prefix:name` or `name`.
func (ps PathSegment) String() string {
	if ps.HasPrefix() {
		return ps.Prefix + ":" + ps.Name
	}
	return ps.Name
}

// Address is the structured representation of a schema node identifier.
type Address struct {
	// Absolute is set for identifiers that start at the module root.
	Absolute bool
	Path     []PathSegment
}
