package compiler

import (
	"context"
	"log/slog"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/specialistvlad/yangjsonschema/internal/ctxlog"
)

// properties is the ordered property map used for objects and sections.
type properties = orderedmap.OrderedMap[string, *jsonschema.Schema]

func newProperties() *properties {
	return orderedmap.New[string, *jsonschema.Schema]()
}

// compiler holds what one run threads through every recursive call.
type compiler struct {
	logger *slog.Logger
	opts   Options
	defs   *Registry
}

func newCompiler(ctx context.Context, opts Options, defs *Registry) *compiler {
	if defs == nil {
		defs = NewRegistry()
	}
	return &compiler{
		logger: ctxlog.FromContext(ctx),
		opts:   opts,
		defs:   defs,
	}
}

// object builds a closed object schema over props.
func object(props *properties) *jsonschema.Schema {
	if props == nil {
		props = newProperties()
	}
	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		AdditionalProperties: jsonschema.FalseSchema,
	}
}

// merge copies src into dst. Existing keys keep their position and take the
// new value.
func merge(dst, src *properties) {
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(pair.Key, pair.Value)
	}
}
