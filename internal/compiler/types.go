package compiler

import (
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

const (
	// RFC 7951 section 6.1: 64-bit integers are JSON strings.
	patternInteger64 = `^-?[0-9]+$`
	// A decimal point and at least one fractional digit are required.
	patternDecimal64 = `^-?[0-9]+\.[0-9]+$`
)

func stringSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string"}
}

// typeSchema maps a type statement to its schema. Typedef references
// compile the typedef into the registry once and return a "$ref".
func (c *compiler) typeSchema(t *yang.Node) (*jsonschema.Schema, error) {
	if t == nil {
		return stringSchema(), nil
	}
	if t.Typedef != nil {
		return c.typedefRef(t.Typedef)
	}

	switch t.Arg {
	case "int8", "int16", "int32", "uint8", "uint16", "uint32":
		return &jsonschema.Schema{Type: "integer"}, nil
	case "int64", "uint64":
		return &jsonschema.Schema{Type: "string", Pattern: patternInteger64}, nil
	case "decimal64":
		return &jsonschema.Schema{Type: "string", Pattern: patternDecimal64}, nil
	case "string":
		s := stringSchema()
		patterns := t.Search(yang.KindPattern)
		if len(patterns) > 0 {
			s.Pattern = patterns[0].Arg
		}
		if len(patterns) > 1 {
			c.logger.Debug("Only the first pattern of a string type is emitted.", "path", t.Parent.Path(), "patterns", len(patterns))
		}
		return s, nil
	case "boolean":
		return &jsonschema.Schema{Type: "boolean"}, nil
	case "enumeration":
		enums := t.Search(yang.KindEnum)
		values := make([]any, 0, len(enums))
		for _, e := range enums {
			values = append(values, e.Arg)
		}
		return &jsonschema.Schema{Type: "string", Enum: values}, nil
	case "empty":
		one := uint64(1)
		return &jsonschema.Schema{
			Type:        "array",
			PrefixItems: []*jsonschema.Schema{{Type: "null"}},
			MaxItems:    &one,
		}, nil
	case "union":
		members := t.Search(yang.KindType)
		anyOf := make([]*jsonschema.Schema, 0, len(members))
		for _, m := range members {
			s, err := c.typeSchema(m)
			if err != nil {
				return nil, err
			}
			anyOf = append(anyOf, s)
		}
		return &jsonschema.Schema{AnyOf: anyOf}, nil
	default:
		return stringSchema(), nil
	}
}

// definitionKey returns the "$defs" key of a typedef.
func (c *compiler) definitionKey(td *yang.Node) (DefinitionKey, error) {
	if c.opts.NoNamespaces {
		return DefinitionKey(td.Arg), nil
	}
	mod, err := td.ModuleName()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingLinkage, err)
	}
	return DefinitionKey(mod + "_" + td.Arg), nil
}

// typedefRef registers td on first sight and returns a reference to it.
// The key enters the in-progress state before the base type is compiled,
// so a chain that leads back to td ends in a "$ref" instead of recursing.
func (c *compiler) typedefRef(td *yang.Node) (*jsonschema.Schema, error) {
	key, err := c.definitionKey(td)
	if err != nil {
		return nil, err
	}

	if !c.defs.Begin(key) {
		c.logger.Debug("Reusing typedef definition.", "key", key, "state", c.defs.State(key))
		return &jsonschema.Schema{Ref: key.Ref()}, nil
	}

	c.logger.Debug("Compiling typedef.", "key", key)
	base, err := c.typeSchema(td.SearchOne(yang.KindType))
	if err != nil {
		return nil, fmt.Errorf("typedef %s: %w", key, err)
	}
	if c.closesCycle(base) {
		// The entry never refers back into its own chain.
		c.defs.MarkIncomplete(key)
		base = &jsonschema.Schema{Comments: IncompleteComment}
		c.logger.Debug("Typedef chain loops without a built-in base.", "key", key)
	}
	if err := c.defs.Complete(key, Annotate(td, base)); err != nil {
		return nil, err
	}
	return &jsonschema.Schema{Ref: key.Ref()}, nil
}

// closesCycle reports whether s is a bare reference to a definition that
// has not produced a real schema.
func (c *compiler) closesCycle(s *jsonschema.Schema) bool {
	key, ok := keyFromRef(s.Ref)
	if !ok {
		return false
	}
	return c.defs.IsIncomplete(key)
}
