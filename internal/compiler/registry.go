package compiler

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const defsPrefix = "#/$defs/"

// IncompleteComment marks a "$defs" entry whose typedef chain loops back on
// itself without reaching a built-in type.
const IncompleteComment = "incomplete definition: cyclic typedef chain"

// DefinitionKey identifies a typedef inside "$defs".
type DefinitionKey string

// Ref returns the JSON pointer reference to the definition.
func (k DefinitionKey) Ref() string {
	return defsPrefix + string(k)
}

func keyFromRef(ref string) (DefinitionKey, bool) {
	if !strings.HasPrefix(ref, defsPrefix) {
		return "", false
	}
	return DefinitionKey(strings.TrimPrefix(ref, defsPrefix)), true
}

// DefinitionState is the lifecycle state of one registry key.
type DefinitionState uint8

const (
	StateUnseen DefinitionState = iota
	StateInProgress
	StateComplete
)

func (s DefinitionState) String() string {
	switch s {
	case StateInProgress:
		return "in-progress"
	case StateComplete:
		return "complete"
	default:
		return "unseen"
	}
}

type definition struct {
	state      DefinitionState
	schema     *jsonschema.Schema
	incomplete bool
}

// Registry maps definition keys to compiled typedef schemas for the
// lifetime of one compilation run. Keys are append-only and keep the order
// in which they were first seen.
type Registry struct {
	keys []DefinitionKey
	defs map[DefinitionKey]*definition
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[DefinitionKey]*definition)}
}

// State returns the current state of key.
func (r *Registry) State(key DefinitionKey) DefinitionState {
	if d, ok := r.defs[key]; ok {
		return d.state
	}
	return StateUnseen
}

// Begin moves an unseen key to in-progress. It reports false, and changes
// nothing, when the key was seen before; the caller must then not compile
// the definition again.
func (r *Registry) Begin(key DefinitionKey) bool {
	if _, ok := r.defs[key]; ok {
		return false
	}
	r.defs[key] = &definition{state: StateInProgress}
	r.keys = append(r.keys, key)
	return true
}

// Complete stores the compiled schema of an in-progress key.
func (r *Registry) Complete(key DefinitionKey, schema *jsonschema.Schema) error {
	d, ok := r.defs[key]
	if !ok || d.state != StateInProgress {
		return fmt.Errorf("registry: cannot complete %q in state %s", key, r.State(key))
	}
	d.state = StateComplete
	d.schema = schema
	return nil
}

// MarkIncomplete flags key as the member of a cycle without escape.
func (r *Registry) MarkIncomplete(key DefinitionKey) {
	if d, ok := r.defs[key]; ok {
		d.incomplete = true
	}
}

// IsIncomplete reports whether key was flagged by MarkIncomplete, or is
// still in progress.
func (r *Registry) IsIncomplete(key DefinitionKey) bool {
	d, ok := r.defs[key]
	return ok && (d.incomplete || d.state == StateInProgress)
}

// Lookup returns the schema of a completed key.
func (r *Registry) Lookup(key DefinitionKey) (*jsonschema.Schema, bool) {
	d, ok := r.defs[key]
	if !ok || d.state != StateComplete {
		return nil, false
	}
	return d.schema, true
}

// Len returns the number of keys seen.
func (r *Registry) Len() int {
	return len(r.keys)
}

// Keys returns every key in first-seen order.
func (r *Registry) Keys() []DefinitionKey {
	return append([]DefinitionKey(nil), r.keys...)
}

// Incomplete returns the keys that IsIncomplete reports, in first-seen order.
func (r *Registry) Incomplete() []DefinitionKey {
	var out []DefinitionKey
	for _, k := range r.keys {
		if r.IsIncomplete(k) {
			out = append(out, k)
		}
	}
	return out
}

// Definitions renders the registry as the ordered "$defs" object, or nil
// when nothing was registered. An entry that never completed is rendered as
// a schema carrying only IncompleteComment.
func (r *Registry) Definitions() *orderedmap.OrderedMap[string, *jsonschema.Schema] {
	if r.Len() == 0 {
		return nil
	}
	out := orderedmap.New[string, *jsonschema.Schema]()
	for _, k := range r.keys {
		d := r.defs[k]
		schema := d.schema
		if d.state != StateComplete || schema == nil {
			schema = &jsonschema.Schema{Comments: IncompleteComment}
		}
		out.Set(string(k), schema)
	}
	return out
}
