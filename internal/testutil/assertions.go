package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

// AssertLogged checks that the captured log output contains substr.
func AssertLogged(t *testing.T, result *HarnessResult, substr string) {
	t.Helper()
	require.True(t,
		strings.Contains(result.LogOutput, substr),
		"expected log output %q was not found in logs:\n%s", substr, result.LogOutput,
	)
}

// Module returns the loaded module with the given name.
func Module(t *testing.T, result *HarnessResult, name string) *yang.Node {
	t.Helper()
	require.NoError(t, result.Err)
	for _, m := range result.Modules {
		if m.Arg == name {
			return m
		}
	}
	require.Failf(t, "module not loaded", "no module %q among %d modules", name, len(result.Modules))
	return nil
}

// Find follows a path of node names from n through its children. Input and
// output are named by keyword.
func Find(t *testing.T, n *yang.Node, names ...string) *yang.Node {
	t.Helper()
	cur := n
	for _, name := range names {
		var next *yang.Node
		for _, c := range cur.Children {
			if c.Arg == name && c.Kind != yang.KindDescription && c.Kind != yang.KindWhen {
				next = c
				break
			}
		}
		require.NotNil(t, next, "%s has no child %q", cur.Path(), name)
		cur = next
	}
	return cur
}

// ChildNames lists the arguments of the data definitions, operations and
// payloads directly below n.
func ChildNames(n *yang.Node) []string {
	var names []string
	for _, c := range n.Children {
		if c.Kind.IsDataDef() || c.Kind.IsOperation() || c.Kind == yang.KindInput || c.Kind == yang.KindOutput {
			names = append(names, c.Arg)
		}
	}
	return names
}
