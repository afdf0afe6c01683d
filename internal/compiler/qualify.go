package compiler

import (
	"fmt"

	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

// Qualify returns the property key of n inside its enclosing object: the
// bare identifier, or "<module>:<identifier>" for operations, top-level
// nodes, and nodes owned by a different module than their parent.
//
// Choice and case levels are skipped when looking at the parent, since they
// never appear in the encoding. Sibling collisions are not detected; the
// last node written under a key wins.
func Qualify(n *yang.Node) (string, error) {
	mod, err := n.ModuleName()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingLinkage, err)
	}
	qualified := mod + ":" + n.Arg

	if n.Kind.IsOperation() {
		return qualified, nil
	}

	parent := n.DataParent()
	if parent == nil {
		return "", fmt.Errorf("%w: %s %q has no parent", ErrMissingLinkage, n.Kind, n.Arg)
	}
	if parent.Kind.IsModule() {
		return qualified, nil
	}
	if parent.Module != nil && parent.Module.Arg != mod {
		return qualified, nil
	}
	return n.Arg, nil
}
