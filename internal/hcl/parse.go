package hcl

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// statement is one parsed statement before resolution. Blocks and
// attributes both become statements, in source order.
type statement struct {
	// Keyword is the statement name in YANG spelling, e.g. "leaf-list" for
	// both `leaf-list` and `leaf_list` blocks.
	Keyword  string
	Arg      string
	Children []*statement
	Range    hcl.Range
}

// find returns the first child with the given keyword.
func (s *statement) find(keyword string) *statement {
	for _, c := range s.Children {
		if c.Keyword == keyword {
			return c
		}
	}
	return nil
}

// argOf returns the argument of the first child with the given keyword.
func (s *statement) argOf(keyword string) (string, bool) {
	if c := s.find(keyword); c != nil {
		return c.Arg, true
	}
	return "", false
}

type valueShape uint8

const (
	shapeString valueShape = iota
	shapeStrings
	shapeBool
)

// blockLabels lists the statement blocks and how many labels each takes.
var blockLabels = map[string]int{
	"module":    1,
	"submodule": 1,
	"container": 1,
	"list":      1,
	"leaf":      1,
	"leaf-list": 1,
	"choice":    1,
	"case":      1,
	"rpc":       1,
	"action":    1,
	"input":     0,
	"output":    0,
	"anydata":   1,
	"anyxml":    1,
	"typedef":   1,
	"type":      1,
	"enum":      1,
	"grouping":  1,
	"uses":      1,
	"augment":   1,
}

var attributeShapes = map[string]valueShape{
	"description": shapeString,
	"when":        shapeStrings,
	"config":      shapeBool,
	"default":     shapeString,
	"type":        shapeString,
	"pattern":     shapeStrings,
	"prefix":      shapeString,
	"namespace":   shapeString,
	"belongs-to":  shapeString,
}

// ignored are YANG statements that are accepted but have no bearing on the
// generated schema.
var ignored = map[string]bool{
	"base": true, "bit": true, "contact": true, "deviation": true,
	"error-message": true, "extension": true, "feature": true,
	"fraction-digits": true, "identity": true, "if-feature": true,
	"import": true, "include": true, "key": true, "length": true,
	"mandatory": true, "max-elements": true, "min-elements": true,
	"must": true, "notification": true, "ordered-by": true,
	"organization": true, "path": true, "position": true, "presence": true,
	"range": true, "reference": true, "require-instance": true,
	"revision": true, "status": true, "unique": true, "units": true,
	"value": true, "yang-version": true,
}

// keywordOf maps an HCL identifier to YANG spelling.
func keywordOf(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}

// fileParser turns HCL files into statement trees.
type fileParser struct {
	logger *slog.Logger
	hcl    *hclparse.Parser
}

func newFileParser(logger *slog.Logger) *fileParser {
	return &fileParser{logger: logger, hcl: hclparse.NewParser()}
}

// parseFile returns the top-level statements of one file.
func (p *fileParser) parseFile(path string) ([]*statement, error) {
	f, diags := p.hcl.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("HCL file %s is not in native syntax", path)
	}
	stmts, err := p.body(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, err)
	}
	return stmts, nil
}

type positioned struct {
	offset int
	stmts  []*statement
}

// body translates every attribute and block of b. HCL keeps attributes in
// a map, so order is restored from byte offsets.
func (p *fileParser) body(b *hclsyntax.Body) ([]*statement, error) {
	entries := make([]positioned, 0, len(b.Attributes)+len(b.Blocks))

	for _, attr := range b.Attributes {
		stmts, err := p.attribute(attr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, positioned{offset: attr.SrcRange.Start.Byte, stmts: stmts})
	}
	for _, blk := range b.Blocks {
		st, err := p.block(blk)
		if err != nil {
			return nil, err
		}
		if st != nil {
			entries = append(entries, positioned{offset: blk.TypeRange.Start.Byte, stmts: []*statement{st}})
		}
	}

	slices.SortFunc(entries, func(a, b positioned) int {
		return cmp.Compare(a.offset, b.offset)
	})

	var out []*statement
	for _, e := range entries {
		out = append(out, e.stmts...)
	}
	return out, nil
}

func (p *fileParser) block(blk *hclsyntax.Block) (*statement, error) {
	kw := keywordOf(blk.Type)
	labels, known := blockLabels[kw]
	if !known {
		if ignored[kw] {
			p.logger.Debug("Ignoring statement without schema effect.", "keyword", kw, "range", blk.TypeRange.String())
		} else {
			p.logger.Warn("Skipping unknown block.", "type", blk.Type, "range", blk.TypeRange.String())
		}
		return nil, nil
	}
	if len(blk.Labels) != labels {
		return nil, fmt.Errorf("%s: %s block takes %d label(s), got %d", blk.TypeRange, blk.Type, labels, len(blk.Labels))
	}

	st := &statement{Keyword: kw, Arg: kw, Range: blk.Range()}
	if labels == 1 {
		st.Arg = blk.Labels[0]
	}
	children, err := p.body(blk.Body)
	if err != nil {
		return nil, err
	}
	st.Children = children
	return st, nil
}

func (p *fileParser) attribute(attr *hclsyntax.Attribute) ([]*statement, error) {
	kw := keywordOf(attr.Name)
	shape, known := attributeShapes[kw]
	if !known {
		if ignored[kw] {
			p.logger.Debug("Ignoring statement without schema effect.", "keyword", kw, "range", attr.SrcRange.String())
		} else {
			p.logger.Warn("Skipping unknown attribute.", "name", attr.Name, "range", attr.SrcRange.String())
		}
		return nil, nil
	}

	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate attribute %q: %w", attr.Name, diags)
	}

	var args []string
	switch shape {
	case shapeString:
		s, err := p.text(val)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %q: %w", attr.SrcRange, attr.Name, err)
		}
		args = []string{s}
	case shapeStrings:
		ty := val.Type()
		if !val.IsNull() && (ty.IsListType() || ty.IsTupleType() || ty.IsSetType()) {
			for it := val.ElementIterator(); it.Next(); {
				_, elem := it.Element()
				s, err := p.text(elem)
				if err != nil {
					return nil, fmt.Errorf("%s: attribute %q: %w", attr.SrcRange, attr.Name, err)
				}
				args = append(args, s)
			}
		} else {
			s, err := p.text(val)
			if err != nil {
				return nil, fmt.Errorf("%s: attribute %q: %w", attr.SrcRange, attr.Name, err)
			}
			args = []string{s}
		}
	case shapeBool:
		b, err := convert.Convert(val, cty.Bool)
		if err != nil || b.IsNull() {
			return nil, fmt.Errorf("%s: attribute %q must be a bool, got %s", attr.SrcRange, attr.Name, val.Type().FriendlyName())
		}
		args = []string{fmt.Sprint(b.True())}
	}

	stmts := make([]*statement, len(args))
	for i, a := range args {
		stmts[i] = &statement{Keyword: kw, Arg: a, Range: attr.SrcRange}
	}
	return stmts, nil
}

// text converts a primitive value to its string form.
func (p *fileParser) text(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", fmt.Errorf("value must not be null")
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert %s to string: %w", val.Type().FriendlyName(), err)
	}
	if !val.Type().Equals(cty.String) {
		p.logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", cty.String.FriendlyName(),
		)
	}
	return str.AsString(), nil
}
