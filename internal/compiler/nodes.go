package compiler

import (
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

// children compiles every eligible child of n into an ordered property map.
// With filter set, config false nodes and their subtrees are dropped; the
// flag is passed unchanged to every level below.
func (c *compiler) children(n *yang.Node, filter bool) (*properties, error) {
	props := newProperties()
	if err := c.collect(props, n, filter); err != nil {
		return nil, err
	}
	return props, nil
}

func (c *compiler) collect(props *properties, n *yang.Node, filter bool) error {
	for _, child := range n.Children {
		if filter && child.Config == yang.ConfigFalse {
			c.logger.Debug("Skipping non-config node.", "path", child.Path())
			continue
		}

		// Choice and case members are siblings of the choice in the encoding.
		if child.Kind.IsTransparent() {
			c.logDropped(child)
			if err := c.collect(props, child, filter); err != nil {
				return err
			}
		}

		schema, err := c.produce(child, filter)
		if err != nil {
			return err
		}
		if schema == nil {
			continue
		}

		name, err := Qualify(child)
		if err != nil {
			return err
		}
		props.Set(name, schema)
	}
	return nil
}

// logDropped reports the annotations of a choice or case, which have no
// schema of their own to carry them.
func (c *compiler) logDropped(n *yang.Node) {
	if _, ok := n.Description(); ok {
		c.logger.Debug("Description is not carried onto flattened members.", "kind", n.Kind, "path", n.Path())
	}
	if whens := n.Search(yang.KindWhen); len(whens) > 0 {
		c.logger.Debug("Condition is not carried onto flattened members.", "kind", n.Kind, "path", n.Path(), "conditions", len(whens))
	}
}

// produce compiles one node. It returns nil for nodes that have no schema
// of their own.
func (c *compiler) produce(n *yang.Node, filter bool) (*jsonschema.Schema, error) {
	var (
		s   *jsonschema.Schema
		err error
	)

	switch n.Kind {
	case yang.KindContainer:
		var props *properties
		if props, err = c.children(n, filter); err != nil {
			return nil, err
		}
		s = object(props)

	case yang.KindList:
		var props *properties
		if props, err = c.children(n, filter); err != nil {
			return nil, err
		}
		s = &jsonschema.Schema{Type: "array", Items: object(props)}

	case yang.KindLeafList:
		var items *jsonschema.Schema
		if items, err = c.typeSchema(n.SearchOne(yang.KindType)); err != nil {
			return nil, fmt.Errorf("%s: %w", n.Path(), err)
		}
		s = &jsonschema.Schema{Type: "array", Items: items}

	case yang.KindLeaf:
		if s, err = c.typeSchema(n.SearchOne(yang.KindType)); err != nil {
			return nil, fmt.Errorf("%s: %w", n.Path(), err)
		}

	case yang.KindAnydata, yang.KindAnyxml:
		s = &jsonschema.Schema{Type: "object"}

	case yang.KindChoice, yang.KindCase:
		// flattened by collect
		return nil, nil

	case yang.KindModule, yang.KindSubmodule,
		yang.KindRPC, yang.KindAction, yang.KindInput, yang.KindOutput,
		yang.KindType, yang.KindTypedef, yang.KindEnum, yang.KindPattern,
		yang.KindDescription, yang.KindDefault, yang.KindWhen:
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %s at %s", ErrUnhandledKind, n.Kind, n.Path())
	}

	return Annotate(n, s), nil
}
