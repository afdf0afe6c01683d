package yang

import (
	"context"
	"fmt"
	"strings"
)

// Loader is the interface for a format-specific schema tree loader.
type Loader interface {
	// Load reads schema sources from the given paths, resolves them, and
	// returns the top-level module nodes in source order.
	Load(ctx context.Context, paths ...string) ([]*Node, error)
}

// Node is a single resolved statement of a schema tree.
type Node struct {
	Kind Kind
	// Arg is the statement argument: the identifier of a data node, the
	// text of a description, the expression of a when, the name of a type.
	Arg string

	// Module is the owning module. For nodes contributed by an augment it is
	// the augmenting module, not the module of the structural parent.
	Module   *Node
	Parent   *Node
	Children []*Node

	// Config is the inherited config flag. Only data nodes carry one.
	Config Config

	// Typedef is the resolved typedef of a type statement, or nil for a
	// built-in type.
	Typedef *Node

	// Prefix and Namespace are only set on modules.
	Prefix    string
	Namespace string
}

// New creates a node and appends the given children to it.
func New(kind Kind, arg string, children ...*Node) *Node {
	n := &Node{Kind: kind, Arg: arg}
	n.Append(children...)
	return n
}

// NewModule creates a module root that owns itself.
func NewModule(name string, children ...*Node) *Node {
	m := &Node{Kind: KindModule, Arg: name, Prefix: name}
	m.Module = m
	m.Append(children...)
	return m
}

// Append links children under n. Nodes without an owning module inherit it
// from their nearest owned ancestor, so hand-built trees come out fully
// linked.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Parent = n
		if c.Module == nil {
			c.Module = n.Module
		}
		c.fillModule()
		n.Children = append(n.Children, c)
	}
	return n
}

func (n *Node) fillModule() {
	if n.Module == nil {
		return
	}
	for _, c := range n.Children {
		if c.Module == nil {
			c.Module = n.Module
		}
		c.fillModule()
	}
}

// SearchOne returns the first direct child of the given kind.
func (n *Node) SearchOne(kind Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// Search returns every direct child of the given kind, in order.
func (n *Node) Search(kind Kind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Description returns the text of the node's description statement.
func (n *Node) Description() (string, bool) {
	d := n.SearchOne(KindDescription)
	if d == nil {
		return "", false
	}
	return d.Arg, true
}

// ModuleName returns the name of the owning module.
func (n *Node) ModuleName() (string, error) {
	if n.Module == nil {
		return "", fmt.Errorf("%s %q has no owning module", n.Kind, n.Arg)
	}
	return n.Module.Arg, nil
}

// DataParent returns the nearest ancestor that is not a choice or case.
func (n *Node) DataParent() *Node {
	p := n.Parent
	for p != nil && p.Kind.IsTransparent() {
		p = p.Parent
	}
	return p
}

// Path renders the schema path of the node for diagnostics, e.g.
// "/m:top/a".
func (n *Node) Path() string {
	if n == nil {
		return ""
	}
	var segs []string
	for cur := n; cur != nil && !cur.Kind.IsModule(); cur = cur.Parent {
		seg := cur.Arg
		if cur.Module != nil && (cur.Parent == nil || cur.Parent.Module != cur.Module || cur.Parent.Kind.IsModule()) {
			seg = cur.Module.Arg + ":" + seg
		}
		segs = append(segs, seg)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return "/" + strings.Join(segs, "/")
}

// Walk calls fn for n and every descendant in depth-first declaration order.
// Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
