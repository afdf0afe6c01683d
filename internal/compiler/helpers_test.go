package compiler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

// leaf builds `leaf name { type typ; ... }`.
func leaf(name, typ string, extra ...*yang.Node) *yang.Node {
	children := append([]*yang.Node{yang.New(yang.KindType, typ)}, extra...)
	return yang.New(yang.KindLeaf, name, children...)
}

// typedefLeaf builds a leaf whose type resolved to td.
func typedefLeaf(name string, td *yang.Node) *yang.Node {
	t := yang.New(yang.KindType, td.Arg)
	t.Typedef = td
	return yang.New(yang.KindLeaf, name, t)
}

// typedef builds a typedef owned by mod. Typedefs are not part of the
// children of a resolved tree, so ownership is set directly.
func typedef(mod *yang.Node, name string, children ...*yang.Node) *yang.Node {
	td := yang.New(yang.KindTypedef, name, children...)
	td.Module = mod
	return td
}

func desc(text string) *yang.Node {
	return yang.New(yang.KindDescription, text)
}

func testCompiler(opts Options) *compiler {
	return newCompiler(context.Background(), opts, NewRegistry())
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func keys(props *properties) []string {
	var out []string
	for pair := props.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func prop(t *testing.T, s *jsonschema.Schema, name string) *jsonschema.Schema {
	t.Helper()
	require.NotNil(t, s)
	require.NotNil(t, s.Properties, "schema has no properties")
	p, ok := s.Properties.Get(name)
	require.True(t, ok, "property %q not found, have %v", name, keys(s.Properties))
	return p
}

func compileDoc(t *testing.T, opts Options, modules ...*yang.Node) *Document {
	t.Helper()
	doc, err := Compile(context.Background(), modules, opts)
	require.NoError(t, err)
	return doc
}

func decodeJSON(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var v map[string]any
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}
