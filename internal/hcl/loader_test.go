package hcl

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/yangjsonschema/internal/testutil"
	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

const exampleHCL = `
module "m" {
  prefix      = "m"
  namespace   = "urn:m"
  description = "Example."

  typedef "pct" {
    type        = "uint8"
    description = "Percent."
  }
  typedef "counter" { type = "uint64" }

  container "top" {
    leaf "a" { type = "uint64" }
    leaf "mode" {
      type "enumeration" {
        enum "up"   { description = "Link up." }
        enum "down" {}
      }
    }
    leaf "c" { type = "pct" }
    leaf-list "tags" { type = "string" }
    choice "addr" {
      case "v4" {
        leaf "ipv4" { type = "string" }
      }
      leaf "hostname" { type = "string" }
    }
    container "stats" {
      config = false
      leaf "hits" { type = "counter" }
    }
    action "reset" {
      input {
        leaf "force" { type = "boolean" }
      }
    }
  }

  grouping "endpoint" {
    leaf "port" { type = "uint16" }
  }
  list "peer" {
    uses "endpoint" {}
  }

  rpc "ping" {
    input {
      leaf "host" { type = "string" }
    }
    output {
      leaf "rtt" { type = "decimal64" }
    }
  }
}

module "aug" {
  prefix = "x"
  augment "/m:top" {
    leaf "extra" { type = "m:pct" }
  }
}
`

func TestLoad_Example(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"models/example.hcl": exampleHCL}

	// --- Act ---
	result := testutil.RunLoaderTest(t, NewLoader(), files)

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Len(t, result.Modules, 2)
	m := testutil.Module(t, result, "m")
	aug := testutil.Module(t, result, "aug")

	assert.Equal(t, "m", m.Prefix)
	assert.Equal(t, "urn:m", m.Namespace)
	assert.Equal(t, "x", aug.Prefix)
	desc, ok := m.Description()
	require.True(t, ok)
	assert.Equal(t, "Example.", desc)

	assert.Equal(t, []string{"top", "peer", "ping"}, testutil.ChildNames(m), "typedefs and groupings are not children")
	top := testutil.Find(t, m, "top")
	assert.Equal(t, []string{"a", "mode", "c", "tags", "addr", "stats", "reset", "extra"}, testutil.ChildNames(top))

	t.Run("typedef references resolve to one shared node", func(t *testing.T) {
		local := testutil.Find(t, top, "c").SearchOne(yang.KindType)
		foreign := testutil.Find(t, top, "extra").SearchOne(yang.KindType)
		require.NotNil(t, local.Typedef)
		assert.Same(t, local.Typedef, foreign.Typedef)
		assert.Equal(t, "pct", local.Typedef.Arg)
		assert.Same(t, m, local.Typedef.Module)
		assert.Equal(t, "uint8", local.Typedef.SearchOne(yang.KindType).Arg)
		assert.Nil(t, testutil.Find(t, top, "a").SearchOne(yang.KindType).Typedef, "built-in types have no typedef")
	})

	t.Run("enumeration keeps values and their descriptions", func(t *testing.T) {
		typ := testutil.Find(t, top, "mode").SearchOne(yang.KindType)
		enums := typ.Search(yang.KindEnum)
		require.Len(t, enums, 2)
		assert.Equal(t, "up", enums[0].Arg)
		d, ok := enums[0].Description()
		assert.True(t, ok)
		assert.Equal(t, "Link up.", d)
		assert.Equal(t, "down", enums[1].Arg)
	})

	t.Run("choice keeps cases and shorthand members", func(t *testing.T) {
		addr := testutil.Find(t, top, "addr")
		assert.Equal(t, yang.KindChoice, addr.Kind)
		assert.Equal(t, []string{"v4", "hostname"}, testutil.ChildNames(addr))
	})

	t.Run("uses copies the grouping into the using node", func(t *testing.T) {
		port := testutil.Find(t, m, "peer", "port")
		assert.Equal(t, yang.KindLeaf, port.Kind)
		assert.Same(t, m, port.Module)
		assert.Equal(t, "/m:peer/port", port.Path())
	})

	t.Run("augment nodes are owned by the augmenting module", func(t *testing.T) {
		extra := testutil.Find(t, top, "extra")
		assert.Same(t, aug, extra.Module)
		assert.Same(t, top, extra.Parent)
		assert.Equal(t, "/m:top/aug:extra", extra.Path())
		assert.Empty(t, testutil.ChildNames(aug), "augment contributes nothing to its own module")
	})

	t.Run("operations and payloads", func(t *testing.T) {
		ping := testutil.Find(t, m, "ping")
		assert.Equal(t, yang.KindRPC, ping.Kind)
		assert.Equal(t, []string{"input", "output"}, testutil.ChildNames(ping))
		assert.Equal(t, yang.KindInput, testutil.Find(t, ping, "input").Kind)
		reset := testutil.Find(t, top, "reset")
		assert.Equal(t, yang.KindAction, reset.Kind)
	})

	t.Run("config inheritance", func(t *testing.T) {
		assert.Equal(t, yang.ConfigTrue, top.Config)
		assert.Equal(t, yang.ConfigTrue, testutil.Find(t, top, "addr", "v4", "ipv4").Config)
		assert.Equal(t, yang.ConfigFalse, testutil.Find(t, top, "stats").Config)
		assert.Equal(t, yang.ConfigFalse, testutil.Find(t, top, "stats", "hits").Config)
		assert.Equal(t, yang.ConfigUnset, testutil.Find(t, top, "reset", "input", "force").Config)
		assert.Equal(t, yang.ConfigUnset, testutil.Find(t, m, "ping", "output", "rtt").Config)
		assert.Equal(t, yang.ConfigTrue, testutil.Find(t, top, "extra").Config)
	})

	t.Run("every node is linked", func(t *testing.T) {
		for _, mod := range result.Modules {
			mod.Walk(func(n *yang.Node) bool {
				assert.NotNil(t, n.Module, "%s has no module", n.Path())
				if n != mod {
					assert.NotNil(t, n.Parent, "%s has no parent", n.Path())
				}
				return true
			})
		}
	})
}

func TestLoad_DeclarationOrderInterleavesAttributesAndBlocks(t *testing.T) {
	result := testutil.RunLoaderTest(t, NewLoader(), map[string]string{"m.hcl": `
module "m" {
  container "c" {
    leaf "z" { type = "string" }
    description = "Between."
    leaf "a" {
      when = ["../z = 'x'", "../z != 'y'"]
      type = "string"
    }
  }
}
`})

	c := testutil.Find(t, testutil.Module(t, result, "m"), "c")
	require.Len(t, c.Children, 3)
	assert.Equal(t, yang.KindLeaf, c.Children[0].Kind)
	assert.Equal(t, yang.KindDescription, c.Children[1].Kind)
	assert.Equal(t, yang.KindLeaf, c.Children[2].Kind)

	a := c.Children[2]
	whens := a.Search(yang.KindWhen)
	require.Len(t, whens, 2)
	assert.Equal(t, "../z = 'x'", whens[0].Arg)
	assert.Equal(t, "../z != 'y'", whens[1].Arg)
	assert.Equal(t, yang.KindType, a.Children[2].Kind, "type follows the when attribute")
}

func TestLoad_Submodule(t *testing.T) {
	result := testutil.RunLoaderTest(t, NewLoader(), map[string]string{
		"a_sub.hcl": `
submodule "m-sub" {
  belongs_to = "m"
  typedef "name" { type = "string" }
  leaf "from-sub" { type = "name" }
}
`,
		"b_main.hcl": `
module "m" {
  leaf "from-main" { type = "name" }
}
`,
	})

	m := testutil.Module(t, result, "m")
	require.Len(t, result.Modules, 1, "submodules are not returned as roots")
	assert.Equal(t, []string{"from-main", "from-sub"}, testutil.ChildNames(m))
	sub := testutil.Find(t, m, "from-sub")
	assert.Same(t, m, sub.Module)
	assert.Equal(t, "name", testutil.Find(t, m, "from-main").SearchOne(yang.KindType).Typedef.Arg)
}

func TestLoad_LexicalTypedefScope(t *testing.T) {
	result := testutil.RunLoaderTest(t, NewLoader(), map[string]string{"m.hcl": `
module "m" {
  typedef "id" { type = "string" }
  container "outer" {
    typedef "id" { type = "uint32" }
    leaf "inner" { type = "id" }
  }
  leaf "top" { type = "id" }
}
`})

	m := testutil.Module(t, result, "m")
	inner := testutil.Find(t, m, "outer", "inner").SearchOne(yang.KindType).Typedef
	top := testutil.Find(t, m, "top").SearchOne(yang.KindType).Typedef
	assert.Equal(t, "uint32", inner.SearchOne(yang.KindType).Arg)
	assert.Equal(t, "string", top.SearchOne(yang.KindType).Arg)
	assert.NotSame(t, inner, top)
}

func TestLoad_SelfReferentialTypedef(t *testing.T) {
	result := testutil.RunLoaderTest(t, NewLoader(), map[string]string{"m.hcl": `
module "m" {
  typedef "t" { type = "t" }
  leaf "x" { type = "t" }
}
`})

	m := testutil.Module(t, result, "m")
	td := testutil.Find(t, m, "x").SearchOne(yang.KindType).Typedef
	require.NotNil(t, td)
	assert.Same(t, td, td.SearchOne(yang.KindType).Typedef)
}

func TestLoad_NestedGroupingsAndUsesConditions(t *testing.T) {
	result := testutil.RunLoaderTest(t, NewLoader(), map[string]string{"m.hcl": `
module "m" {
  grouping "addr" {
    description = "Not copied."
    leaf "ip" { type = "string" }
  }
  grouping "endpoint" {
    uses "addr" {}
    leaf "port" { type = "uint16" }
  }
  container "a" {
    uses "endpoint" { when = "../enabled" }
  }
  container "b" {
    uses "endpoint" {}
  }
}
`})

	m := testutil.Module(t, result, "m")
	a := testutil.Find(t, m, "a")
	b := testutil.Find(t, m, "b")
	assert.Equal(t, []string{"ip", "port"}, testutil.ChildNames(a))
	assert.Equal(t, []string{"ip", "port"}, testutil.ChildNames(b))
	_, hasDesc := a.Description()
	assert.False(t, hasDesc, "grouping description stays with the grouping")

	assert.NotSame(t, testutil.Find(t, a, "port"), testutil.Find(t, b, "port"), "each uses gets its own copy")
	assert.Len(t, testutil.Find(t, a, "port").Search(yang.KindWhen), 1)
	assert.Len(t, testutil.Find(t, a, "ip").Search(yang.KindWhen), 1)
	assert.Empty(t, testutil.Find(t, b, "port").Search(yang.KindWhen))
}

func TestLoad_ForeignGroupingIsOwnedByUser(t *testing.T) {
	result := testutil.RunLoaderTest(t, NewLoader(), map[string]string{"m.hcl": `
module "lib" {
  prefix = "l"
  typedef "port" { type = "uint16" }
  grouping "endpoint" {
    leaf "port" { type = "port" }
  }
}
module "app" {
  container "server" {
    uses "l:endpoint" {}
  }
}
`})

	lib := testutil.Module(t, result, "lib")
	app := testutil.Module(t, result, "app")
	port := testutil.Find(t, app, "server", "port")
	assert.Same(t, app, port.Module)
	td := port.SearchOne(yang.KindType).Typedef
	require.NotNil(t, td)
	assert.Same(t, lib, td.Module, "typedefs stay owned by their defining module")
}

func TestLoad_AugmentChain(t *testing.T) {
	// The second augment targets a node added by the first; files load in
	// lexical order so it is declared first.
	result := testutil.RunLoaderTest(t, NewLoader(), map[string]string{
		"a.hcl": `
module "late" {
  augment "/m:top/e:added" {
    when = "../kind = 'x'"
    leaf "deep" { type = "string" }
  }
}
`,
		"b.hcl": `
module "m" {
  container "top" {}
  rpc "op" {
    input {}
  }
}
module "early" {
  prefix = "e"
  augment "/m:top" {
    container "added" {}
  }
  augment "/m:op/m:input" {
    leaf "arg" { type = "string" }
  }
}
`,
	})

	m := testutil.Module(t, result, "m")
	late := testutil.Module(t, result, "late")
	deep := testutil.Find(t, m, "top", "added", "deep")
	assert.Same(t, late, deep.Module)
	assert.Len(t, deep.Search(yang.KindWhen), 1)
	assert.Equal(t, "/m:top/early:added/late:deep", deep.Path())

	arg := testutil.Find(t, m, "op", "input", "arg")
	assert.Equal(t, yang.ConfigUnset, arg.Config)
}

func TestLoad_UnknownStatementsAreSkipped(t *testing.T) {
	result := testutil.RunLoaderTest(t, NewLoader(), map[string]string{"m.hcl": `
module "m" {
  organization = "ACME"
  vendor_flag  = true
  acme_extension "x" {}
  leaf "a" {
    type      = "string"
    mandatory = true
  }
}
`})

	require.NoError(t, result.Err)
	assert.Equal(t, []string{"a"}, testutil.ChildNames(testutil.Module(t, result, "m")))
	testutil.AssertLogged(t, result, "Skipping unknown attribute.")
	testutil.AssertLogged(t, result, "name=vendor_flag")
	testutil.AssertLogged(t, result, "Skipping unknown block.")
	testutil.AssertLogged(t, result, "Ignoring statement without schema effect.")
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr error
		wantMsg string
	}{
		{
			name: "unresolved type",
			src: `module "m" {
  leaf "a" { type = "nope" }
}`,
			wantErr: ErrUnresolvedType,
			wantMsg: `"nope"`,
		},
		{
			name: "unknown prefix",
			src: `module "m" {
  leaf "a" { type = "zz:thing" }
}`,
			wantErr: ErrUnknownModule,
			wantMsg: `prefix "zz"`,
		},
		{
			name: "unresolved grouping",
			src: `module "m" {
  container "c" {
    uses "missing" {}
  }
}`,
			wantErr: ErrUnresolvedGrouping,
		},
		{
			name: "grouping cycle",
			src: `module "m" {
  grouping "a" {
    uses "b" {}
  }
  grouping "b" {
    uses "a" {}
  }
  container "c" {
    uses "a" {}
  }
}`,
			wantErr: ErrGroupingCycle,
		},
		{
			name: "missing augment target",
			src: `module "m" {
  container "c" {}
}
module "x" {
  augment "/m:c/m:nope" {
    leaf "y" { type = "string" }
  }
}`,
			wantErr: ErrAugmentTarget,
			wantMsg: `"m:nope"`,
		},
		{
			name:    "submodule of unknown module",
			src:     `submodule "s" { belongs_to = "ghost" }`,
			wantErr: ErrUnknownModule,
		},
		{
			name: "augment of a leaf",
			src: `module "m" {
  leaf "l" { type = "string" }
  augment "/l" {
    leaf "y" {}
  }
}`,
			wantMsg: "is a leaf",
		},
		{
			name: "relative augment",
			src: `module "m" {
  container "c" {}
  augment "c" {
    leaf "y" {}
  }
}`,
			wantMsg: "must be an absolute path",
		},
		{
			name: "duplicate module",
			src: `module "m" {}
module "m" {}`,
			wantMsg: `duplicate module "m"`,
		},
		{
			name: "duplicate typedef",
			src: `module "m" {
  typedef "t" { type = "string" }
  typedef "t" { type = "string" }
}`,
			wantMsg: `duplicate typedef "t"`,
		},
		{
			name: "wrong label count",
			src: `module "m" {
  container {}
}`,
			wantMsg: "container block takes 1 label(s), got 0",
		},
		{
			name: "config is not a bool",
			src: `module "m" {
  leaf "a" { config = "maybe" }
}`,
			wantMsg: `attribute "config" must be a bool`,
		},
		{
			name:    "syntax error",
			src:     `module "m" {`,
			wantMsg: "failed to parse HCL file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := testutil.RunLoaderTest(t, NewLoader(), map[string]string{"m.hcl": tc.src})

			require.Error(t, result.Err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, result.Err, tc.wantErr)
			}
			if tc.wantMsg != "" {
				assert.Contains(t, result.Err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestLoad_ExplicitFileAndMissingPath(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"schema.txt": `module "m" {
  leaf "a" { type = "string" }
}`})
	loader := NewLoader()

	modules, err := loader.Load(context.Background(), filepath.Join(root, "schema.txt"))
	require.NoError(t, err)
	require.Len(t, modules, 1)

	_, err = loader.Load(context.Background(), filepath.Join(root, "absent.hcl"))
	require.Error(t, err)
}

func TestLoad_CanceledContext(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"m.hcl": `module "m" {}`})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Load(ctx, root)

	require.ErrorIs(t, err, context.Canceled)
}
