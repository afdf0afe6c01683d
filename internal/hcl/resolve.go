package hcl

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/specialistvlad/yangjsonschema/internal/nodeid"
	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

// builtinTypes resolve to no typedef.
var builtinTypes = map[string]bool{
	"int8": true, "int16": true, "int32": true, "int64": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"decimal64": true, "string": true, "boolean": true, "enumeration": true,
	"bits": true, "binary": true, "empty": true, "union": true,
	"leafref": true, "identityref": true, "instance-identifier": true,
}

// module is one loaded module during resolution.
type module struct {
	stmt  *statement
	node  *yang.Node
	scope *scope
}

// scope holds the typedefs and groupings declared directly in one
// statement body.
type scope struct {
	parent    *scope
	module    *module
	typedefs  map[string]*statement
	groupings map[string]*statement
}

func newScope(parent *scope, mod *module, stmts []*statement) (*scope, error) {
	s := &scope{
		parent:    parent,
		module:    mod,
		typedefs:  make(map[string]*statement),
		groupings: make(map[string]*statement),
	}
	for _, st := range stmts {
		var defs map[string]*statement
		switch st.Keyword {
		case "typedef":
			defs = s.typedefs
		case "grouping":
			defs = s.groupings
		default:
			continue
		}
		if prev, ok := defs[st.Arg]; ok {
			return nil, fmt.Errorf("%s: duplicate %s %q, first declared at %s", st.Range, st.Keyword, st.Arg, prev.Range)
		}
		defs[st.Arg] = st
	}
	return s, nil
}

// enter returns the scope for the body of st.
func (s *scope) enter(st *statement) (*scope, error) {
	for _, c := range st.Children {
		if c.Keyword == "typedef" || c.Keyword == "grouping" {
			return newScope(s, s.module, st.Children)
		}
	}
	return s, nil
}

// lookup finds a definition by walking outwards. It returns the scope that
// declares it, in which its own body must be resolved.
func (s *scope) lookup(keyword, name string) (*statement, *scope) {
	for cur := s; cur != nil; cur = cur.parent {
		defs := cur.typedefs
		if keyword == "grouping" {
			defs = cur.groupings
		}
		if st, ok := defs[name]; ok {
			return st, cur
		}
	}
	return nil, nil
}

type pendingAugment struct {
	stmt  *statement
	scope *scope
	owner *module
}

// resolver turns parsed statements into resolved schema trees. It lives
// for one Load call.
type resolver struct {
	logger   *slog.Logger
	modules  []*module
	byName   map[string]*module
	byPrefix map[string]*module

	typedefs  map[*statement]*yang.Node
	expanding map[*statement]bool
	augments  []pendingAugment
}

func newResolver(logger *slog.Logger) *resolver {
	return &resolver{
		logger:    logger,
		byName:    make(map[string]*module),
		byPrefix:  make(map[string]*module),
		typedefs:  make(map[*statement]*yang.Node),
		expanding: make(map[*statement]bool),
	}
}

// resolve runs every resolution phase over the top-level statements of all
// loaded files and returns the module roots in load order.
func (r *resolver) resolve(stmts []*statement) ([]*yang.Node, error) {
	var submodules []*statement
	for _, st := range stmts {
		switch st.Keyword {
		case "module":
			if err := r.addModule(st); err != nil {
				return nil, err
			}
		case "submodule":
			submodules = append(submodules, st)
		default:
			r.logger.Warn("Skipping top-level statement that is not a module.", "keyword", st.Keyword, "range", st.Range.String())
		}
	}

	for _, sub := range submodules {
		if err := r.mergeSubmodule(sub); err != nil {
			return nil, err
		}
	}

	for _, m := range r.modules {
		s, err := newScope(nil, m, m.stmt.Children)
		if err != nil {
			return nil, err
		}
		m.scope = s
	}

	for _, m := range r.modules {
		r.logger.Debug("Resolving module.", "module", m.node.Arg, "prefix", m.node.Prefix)
		children, err := r.buildStatements(m.stmt.Children, m.scope, m, true)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.node.Arg, err)
		}
		m.node.Append(children...)
	}

	if err := r.applyAugments(); err != nil {
		return nil, err
	}

	roots := make([]*yang.Node, 0, len(r.modules))
	for _, m := range r.modules {
		inheritConfig(m.node, yang.ConfigTrue)
		roots = append(roots, m.node)
	}
	return roots, nil
}

func (r *resolver) addModule(st *statement) error {
	if prev, ok := r.byName[st.Arg]; ok {
		return fmt.Errorf("%s: duplicate module %q, first declared at %s", st.Range, st.Arg, prev.stmt.Range)
	}

	node := yang.NewModule(st.Arg)
	if prefix, ok := st.argOf("prefix"); ok {
		node.Prefix = prefix
	}
	node.Namespace, _ = st.argOf("namespace")

	if prev, ok := r.byPrefix[node.Prefix]; ok {
		return fmt.Errorf("%s: module %q reuses prefix %q of module %q", st.Range, st.Arg, node.Prefix, prev.node.Arg)
	}

	m := &module{stmt: st, node: node}
	r.modules = append(r.modules, m)
	r.byName[st.Arg] = m
	r.byPrefix[node.Prefix] = m
	return nil
}

// mergeSubmodule moves the body of a submodule into the module it belongs
// to, so its nodes and definitions are owned by that module.
func (r *resolver) mergeSubmodule(sub *statement) error {
	owner, ok := sub.argOf("belongs-to")
	if !ok {
		return fmt.Errorf("%s: submodule %q has no belongs_to", sub.Range, sub.Arg)
	}
	m, ok := r.byName[owner]
	if !ok {
		return fmt.Errorf("%s: submodule %q: %w %q", sub.Range, sub.Arg, ErrUnknownModule, owner)
	}
	for _, c := range sub.Children {
		switch c.Keyword {
		case "belongs-to", "prefix", "namespace", "description":
			continue
		}
		m.stmt.Children = append(m.stmt.Children, c)
	}
	r.logger.Debug("Merged submodule.", "submodule", sub.Arg, "module", owner)
	return nil
}

// moduleFor returns the module a prefix refers to from inside from. Module
// names are accepted as prefixes too.
func (r *resolver) moduleFor(prefix string, from *module) (*module, error) {
	if prefix == "" || prefix == from.node.Prefix {
		return from, nil
	}
	if m, ok := r.byPrefix[prefix]; ok {
		return m, nil
	}
	if m, ok := r.byName[prefix]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w for prefix %q", ErrUnknownModule, prefix)
}

// definition resolves a possibly prefixed typedef or grouping name.
// Unprefixed and own-prefix names are looked up lexically; names with a
// foreign prefix only see that module's top level.
func (r *resolver) definition(keyword, ref string, sc *scope) (*statement, *scope, error) {
	prefix, name, qualified := strings.Cut(ref, ":")
	if !qualified {
		prefix, name = "", ref
	}
	m, err := r.moduleFor(prefix, sc.module)
	if err != nil {
		return nil, nil, err
	}
	if m == sc.module {
		st, found := sc.lookup(keyword, name)
		return st, found, nil
	}
	st, found := m.scope.lookup(keyword, name)
	return st, found, nil
}

// buildStatements translates a statement body. Typedefs and groupings only
// populate scopes; uses is replaced by the grouping body; augments at the
// module level are queued until every module tree exists.
func (r *resolver) buildStatements(stmts []*statement, sc *scope, owner *module, topLevel bool) ([]*yang.Node, error) {
	var out []*yang.Node
	for _, st := range stmts {
		switch st.Keyword {
		case "typedef", "grouping", "prefix", "namespace", "belongs-to", "config":
			continue

		case "uses":
			nodes, err := r.expandUses(st, sc, owner)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)

		case "augment":
			if !topLevel {
				r.logger.Warn("Skipping augment that is not at module level.", "target", st.Arg, "range", st.Range.String())
				continue
			}
			r.augments = append(r.augments, pendingAugment{stmt: st, scope: sc, owner: owner})

		case "module", "submodule":
			return nil, fmt.Errorf("%s: %s %q cannot be nested", st.Range, st.Keyword, st.Arg)

		default:
			n, err := r.buildNode(st, sc, owner)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *resolver) buildNode(st *statement, sc *scope, owner *module) (*yang.Node, error) {
	kind, ok := yang.ParseKind(st.Keyword)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected %s statement", st.Range, st.Keyword)
	}

	n := &yang.Node{Kind: kind, Arg: st.Arg, Module: owner.node}
	if kind == yang.KindType && !builtinTypes[st.Arg] {
		td, err := r.resolveType(st, sc)
		if err != nil {
			return nil, err
		}
		n.Typedef = td
	}
	if c, ok := st.argOf("config"); ok {
		n.Config = yang.ConfigTrue
		if c == "false" {
			n.Config = yang.ConfigFalse
		}
	}

	inner, err := sc.enter(st)
	if err != nil {
		return nil, err
	}
	children, err := r.buildStatements(st.Children, inner, owner, false)
	if err != nil {
		return nil, err
	}
	n.Append(children...)
	return n, nil
}

func (r *resolver) resolveType(st *statement, sc *scope) (*yang.Node, error) {
	def, defScope, err := r.definition("typedef", st.Arg, sc)
	if err != nil {
		return nil, fmt.Errorf("%s: type %q: %w", st.Range, st.Arg, err)
	}
	if def == nil {
		return nil, fmt.Errorf("%s: %w %q", st.Range, ErrUnresolvedType, st.Arg)
	}
	return r.typedefNode(def, defScope)
}

// typedefNode builds a typedef once. The node is memoized before its body
// is built, so a typedef whose type refers back to itself resolves to the
// same node instead of recursing.
func (r *resolver) typedefNode(def *statement, sc *scope) (*yang.Node, error) {
	if n, ok := r.typedefs[def]; ok {
		return n, nil
	}
	n := &yang.Node{Kind: yang.KindTypedef, Arg: def.Arg, Module: sc.module.node}
	r.typedefs[def] = n

	children, err := r.buildStatements(def.Children, sc, sc.module, false)
	if err != nil {
		return nil, fmt.Errorf("typedef %s: %w", def.Arg, err)
	}
	n.Append(children...)
	return n, nil
}

// expandUses builds a fresh copy of the grouping body owned by the module
// that contains the uses.
func (r *resolver) expandUses(st *statement, sc *scope, owner *module) ([]*yang.Node, error) {
	def, defScope, err := r.definition("grouping", st.Arg, sc)
	if err != nil {
		return nil, fmt.Errorf("%s: uses %q: %w", st.Range, st.Arg, err)
	}
	if def == nil {
		return nil, fmt.Errorf("%s: %w %q", st.Range, ErrUnresolvedGrouping, st.Arg)
	}
	if r.expanding[def] {
		return nil, fmt.Errorf("%s: %w: %q uses itself", st.Range, ErrGroupingCycle, def.Arg)
	}
	r.expanding[def] = true
	defer delete(r.expanding, def)

	inner, err := defScope.enter(def)
	if err != nil {
		return nil, err
	}
	body, _ := payload(def.Children)
	nodes, err := r.buildStatements(body, inner, owner, false)
	if err != nil {
		return nil, fmt.Errorf("grouping %s: %w", def.Arg, err)
	}

	_, whens := payload(st.Children)
	addConditions(nodes, whens)
	r.logger.Debug("Expanded grouping.", "grouping", def.Arg, "nodes", len(nodes), "owner", owner.node.Arg)
	return nodes, nil
}

// payload splits the body of a grouping, uses or augment into the
// statements it contributes and its when conditions. Its description
// documents the statement itself and is dropped.
func payload(stmts []*statement) (body, whens []*statement) {
	for _, st := range stmts {
		switch st.Keyword {
		case "when":
			whens = append(whens, st)
		case "description":
		default:
			body = append(body, st)
		}
	}
	return body, whens
}

// addConditions attaches the when conditions of a uses or augment to every
// data node it contributes.
func addConditions(nodes []*yang.Node, whens []*statement) {
	for _, n := range nodes {
		if !n.Kind.IsDataDef() {
			continue
		}
		for _, w := range whens {
			n.Append(yang.New(yang.KindWhen, w.Arg))
		}
	}
}

// applyAugments applies queued augments in declaration order. An augment
// whose target does not exist yet is retried after the others, so an
// augment may target nodes added by another augment.
func (r *resolver) applyAugments() error {
	pending := r.augments
	for len(pending) > 0 {
		var (
			deferred []pendingAugment
			lastErr  error
		)
		for _, a := range pending {
			target, err := r.augmentTarget(a)
			if errors.Is(err, ErrAugmentTarget) {
				deferred = append(deferred, a)
				lastErr = err
				continue
			}
			if err != nil {
				return err
			}
			if err := r.augment(a, target); err != nil {
				return err
			}
		}
		if len(deferred) == len(pending) {
			return lastErr
		}
		pending = deferred
	}
	return nil
}

func (r *resolver) augmentTarget(a pendingAugment) (*yang.Node, error) {
	addr, err := nodeid.Parse(a.stmt.Arg)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid augment target: %w", a.stmt.Range, err)
	}
	if !addr.Absolute {
		return nil, fmt.Errorf("%s: augment target %q must be an absolute path", a.stmt.Range, a.stmt.Arg)
	}

	m, err := r.moduleFor(addr.Path[0].Prefix, a.owner)
	if err != nil {
		return nil, fmt.Errorf("%s: augment %q: %w", a.stmt.Range, a.stmt.Arg, err)
	}

	cur := m.node
	for _, seg := range addr.Path {
		next := schemaChild(cur, seg.Name)
		if next == nil {
			return nil, fmt.Errorf("%s: %w: %s has no child %q", a.stmt.Range, ErrAugmentTarget, cur.Path(), seg.String())
		}
		cur = next
	}

	switch cur.Kind {
	case yang.KindContainer, yang.KindList, yang.KindChoice, yang.KindCase, yang.KindInput, yang.KindOutput:
		r.logger.Debug("Resolved augment target.", "module", m.node.Arg, "path", addr.Names())
		return cur, nil
	default:
		return nil, fmt.Errorf("%s: augment target %s is a %s", a.stmt.Range, cur.Path(), cur.Kind)
	}
}

// schemaChild returns the child of n that a schema node identifier segment
// names. Input and output are addressed by keyword.
func schemaChild(n *yang.Node, name string) *yang.Node {
	for _, c := range n.Children {
		if (c.Kind.IsDataDef() || c.Kind.IsOperation() || c.Kind == yang.KindInput || c.Kind == yang.KindOutput) && c.Arg == name {
			return c
		}
	}
	return nil
}

func (r *resolver) augment(a pendingAugment, target *yang.Node) error {
	inner, err := a.scope.enter(a.stmt)
	if err != nil {
		return err
	}
	body, whens := payload(a.stmt.Children)
	nodes, err := r.buildStatements(body, inner, a.owner, false)
	if err != nil {
		return fmt.Errorf("augment %s: %w", a.stmt.Arg, err)
	}
	addConditions(nodes, whens)
	target.Append(nodes...)

	r.logger.Debug("Applied augment.", "target", target.Path(), "module", a.owner.node.Arg, "nodes", len(nodes))
	return nil
}

// inheritConfig computes the effective config flag below n. An explicit
// false holds for the whole subtree; nodes inside operations carry none.
func inheritConfig(n *yang.Node, inherited yang.Config) {
	for _, c := range n.Children {
		switch {
		case c.Kind.IsOperation() || c.Kind == yang.KindInput || c.Kind == yang.KindOutput:
			c.Config = yang.ConfigUnset
			inheritConfig(c, yang.ConfigUnset)
		case c.Kind.IsDataDef():
			switch {
			case inherited == yang.ConfigUnset:
				c.Config = yang.ConfigUnset
			case inherited == yang.ConfigFalse || c.Config == yang.ConfigFalse:
				c.Config = yang.ConfigFalse
			default:
				c.Config = yang.ConfigTrue
			}
			inheritConfig(c, c.Config)
		}
	}
}
