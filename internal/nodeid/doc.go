// internal/nodeid/doc.go

/*
Package nodeid provides a structured representation for schema node
identifiers, the target paths of augment statements.

The format is a slash-separated sequence of optionally prefixed node names,
e.g. `/if:interfaces/if:interface/ip:ipv4`. An absolute identifier starts
with a slash; a descendant identifier does not and is resolved relative to
the node that declares it.

This package centralizes all formatting and parsing of identifiers so the
loader never splits path strings by hand.
*/
package nodeid
