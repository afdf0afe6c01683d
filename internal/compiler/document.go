package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

// Document is the assembled output of one compilation run. Field order is
// the key order of the serialized document.
type Document struct {
	Schema     string                                             `json:"$schema"`
	Title      string                                             `json:"title"`
	Type       string                                             `json:"type"`
	Properties *orderedmap.OrderedMap[string, *jsonschema.Schema] `json:"properties"`
	Defs       *orderedmap.OrderedMap[string, *jsonschema.Schema] `json:"$defs,omitempty"`

	// Incomplete lists the "$defs" keys that were left as cyclic
	// placeholders. It is not serialized.
	Incomplete []DefinitionKey `json:"-"`
}

// Data returns the data section.
func (d *Document) Data() *jsonschema.Schema {
	s, _ := d.Properties.Get("data")
	return s
}

// Operations returns the operations section.
func (d *Document) Operations() *jsonschema.Schema {
	s, _ := d.Properties.Get("operations")
	return s
}

// Compile builds the document for the given modules. Modules are visited in
// order for the data section and again for the operations section, sharing
// one Registry so a typedef used by both is defined once.
func Compile(ctx context.Context, modules []*yang.Node, opts Options) (*Document, error) {
	c := newCompiler(ctx, opts, NewRegistry())

	data, err := c.dataSection(modules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile data tree: %w", err)
	}
	ops, err := c.operationsSection(modules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile operations: %w", err)
	}

	sections := newProperties()
	sections.Set("data", data)
	sections.Set("operations", ops)

	doc := &Document{
		Schema:     SchemaURI,
		Title:      opts.title(),
		Type:       "object",
		Properties: sections,
		Defs:       c.defs.Definitions(),
		Incomplete: c.defs.Incomplete(),
	}

	c.logger.Debug("Schema compilation finished.",
		"modules", len(modules),
		"data_properties", data.Properties.Len(),
		"operations", ops.Properties.Len(),
		"definitions", c.defs.Keys(),
		"incomplete", len(doc.Incomplete),
	)
	return doc, nil
}

func (c *compiler) dataSection(modules []*yang.Node) (*jsonschema.Schema, error) {
	props := newProperties()
	for _, m := range modules {
		c.logger.Debug("Compiling module data tree.", "module", m.Arg, "config_only", c.opts.ConfigOnly)
		modProps, err := c.children(m, c.opts.ConfigOnly)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Arg, err)
		}
		merge(props, modProps)
	}

	s := object(props)
	s.Title = "Data Tree"
	s.Description = "The configuration and state data tree."
	return s, nil
}

func (c *compiler) operationsSection(modules []*yang.Node) (*jsonschema.Schema, error) {
	props := newProperties()
	for _, m := range modules {
		for _, rpc := range m.Search(yang.KindRPC) {
			if err := c.addOperation(props, rpc); err != nil {
				return nil, fmt.Errorf("module %s: %w", m.Arg, err)
			}
		}
		if err := c.findActions(props, m); err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Arg, err)
		}
	}

	s := object(props)
	s.Title = "Operations"
	s.Description = "RPCs and Actions."
	return s, nil
}

// findActions descends the whole tree below n and adds every action.
func (c *compiler) findActions(props *properties, n *yang.Node) error {
	var err error
	n.Walk(func(node *yang.Node) bool {
		if err != nil {
			return false
		}
		if node.Kind == yang.KindAction {
			err = c.addOperation(props, node)
		}
		return err == nil
	})
	return err
}

func (c *compiler) addOperation(props *properties, n *yang.Node) error {
	name, err := Qualify(n)
	if err != nil {
		return err
	}
	c.logger.Debug("Compiling operation.", "name", name, "kind", n.Kind)
	op, err := c.operation(n)
	if err != nil {
		return fmt.Errorf("%s %s: %w", n.Kind, name, err)
	}
	props.Set(name, op)
	return nil
}

// operation compiles the input and output of an rpc or action. Config
// filtering never applies here.
func (c *compiler) operation(n *yang.Node) (*jsonschema.Schema, error) {
	payloads := newProperties()
	for _, kind := range []yang.Kind{yang.KindInput, yang.KindOutput} {
		payload := n.SearchOne(kind)
		if payload == nil {
			continue
		}
		props, err := c.children(payload, false)
		if err != nil {
			return nil, err
		}
		payloads.Set(kind.String(), object(props))
	}
	return Annotate(n, object(payloads)), nil
}

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be 'json' or 'yaml'", s)
	}
}

// Render serializes the document. JSON is indented by two spaces; YAML is
// converted from the JSON text so both keep the same key order.
func (d *Document) Render(format Format) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	compact, err := canonicalize(bytes.TrimSpace(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to order document keys: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent document: %w", err)
	}
	out.WriteByte('\n')

	switch format {
	case FormatJSON, "":
		return out.Bytes(), nil
	case FormatYAML:
		converted, err := yaml.JSONToYAML(out.Bytes())
		if err != nil {
			return nil, fmt.Errorf("failed to convert document to yaml: %w", err)
		}
		return converted, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
