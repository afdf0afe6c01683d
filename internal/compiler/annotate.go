package compiler

import (
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

// Annotate sets the description of s from n: the node's own description,
// the descriptions of its enumeration values, and one line per when
// condition, separated by blank lines. A nil schema stays nil.
func Annotate(n *yang.Node, s *jsonschema.Schema) *jsonschema.Schema {
	if s == nil {
		return nil
	}

	var parts []string
	if desc, ok := n.Description(); ok {
		parts = append(parts, desc)
	}

	if t := n.SearchOne(yang.KindType); t != nil && t.Arg == "enumeration" {
		var values []string
		for _, e := range t.Search(yang.KindEnum) {
			if desc, ok := e.Description(); ok {
				values = append(values, "  * "+e.Arg+": "+strings.TrimSpace(desc))
			}
		}
		if len(values) > 0 {
			parts = append(parts, "Supported values:\n"+strings.Join(values, "\n"))
		}
	}

	for _, w := range n.Search(yang.KindWhen) {
		parts = append(parts, "Condition: "+w.Arg)
	}

	if len(parts) > 0 {
		s.Description = strings.Join(parts, "\n\n")
	}
	return s
}
