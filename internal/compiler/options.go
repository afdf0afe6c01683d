package compiler

import "errors"

// SchemaURI is the meta-schema of every generated document.
const SchemaURI = "https://json-schema.org/draft/2020-12/schema"

// DefaultTitle is used when Options.Title is empty.
const DefaultTitle = "YANG Model Schema"

var (
	// ErrMissingLinkage is returned for nodes without an owning module or,
	// below the module root, without a parent.
	ErrMissingLinkage = errors.New("missing schema linkage")

	// ErrUnhandledKind is returned when a node kind reaches the compiler
	// that it has no rule for.
	ErrUnhandledKind = errors.New("unhandled node kind")
)

// Options controls a compilation run.
type Options struct {
	// Title is the document title.
	Title string
	// NoNamespaces keys "$defs" by bare typedef name instead of
	// "<module>_<typedef>". Typedefs with the same name in different
	// modules then collide and the first one compiled wins.
	NoNamespaces bool
	// ConfigOnly drops config false nodes from the data section. It never
	// applies to operations.
	ConfigOnly bool
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}
