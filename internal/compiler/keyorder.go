package compiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// rawObject is a JSON object decoded one level deep, in source key order.
type rawObject = orderedmap.OrderedMap[string, json.RawMessage]

// layout describes the key order of one kind of fragment. Keys named in
// lead are moved to the front in that order; the other keys keep the order
// of the schema type. Keys in defaults are added when missing.
type layout struct {
	lead     []string
	defaults []defaultValue
	props    *layout // layout of the values of "properties"
}

type defaultValue struct {
	key   string
	value json.RawMessage
}

var (
	fragmentLayout = &layout{lead: []string{"type"}}

	operationLayout = &layout{
		lead:     []string{"type", "description"},
		defaults: []defaultValue{{key: "description", value: json.RawMessage(`""`)}},
	}

	sectionLayouts = map[string]*layout{
		"data":       {lead: []string{"type", "title", "description"}},
		"operations": {lead: []string{"type", "title", "description"}, props: operationLayout},
	}
)

func (l *layout) child() *layout {
	if l.props != nil {
		return l.props
	}
	return fragmentLayout
}

// Keywords whose values are schemas, maps of schemas, or lists of schemas.
var (
	schemaMaps = map[string]bool{
		"properties": true, "$defs": true, "patternProperties": true, "dependentSchemas": true,
	}
	schemaValues = map[string]bool{
		"items": true, "additionalProperties": true, "not": true, "if": true, "then": true,
		"else": true, "contains": true, "propertyNames": true, "unevaluatedItems": true,
		"unevaluatedProperties": true, "contentSchema": true,
	}
	schemaLists = map[string]bool{
		"allOf": true, "anyOf": true, "oneOf": true, "prefixItems": true,
	}
)

// canonicalize rewrites the compact JSON text of a Document so every
// fragment lists "type" first, the data and operations sections follow
// with their title and description, and every operation carries a
// description. Document-level keys are left in place.
func canonicalize(doc []byte) ([]byte, error) {
	root, ok, err := decodeObject(doc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("document is not a JSON object")
	}

	if raw, ok := root.Get("properties"); ok {
		sections, ok, err := decodeObject(raw)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("document properties is not a JSON object")
		}
		for pair := sections.Oldest(); pair != nil; pair = pair.Next() {
			l, known := sectionLayouts[pair.Key]
			if !known {
				l = fragmentLayout
			}
			if pair.Value, err = reorder(pair.Value, l); err != nil {
				return nil, fmt.Errorf("section %s: %w", pair.Key, err)
			}
		}
		root.Set("properties", encodeObject(sections))
	}

	if raw, ok := root.Get("$defs"); ok {
		defs, err := reorderMap(raw, fragmentLayout)
		if err != nil {
			return nil, fmt.Errorf("$defs: %w", err)
		}
		root.Set("$defs", defs)
	}

	return encodeObject(root), nil
}

// reorder applies l to one fragment and the fragment layout to the schemas
// nested in it. Boolean schemas are returned unchanged.
func reorder(raw json.RawMessage, l *layout) (json.RawMessage, error) {
	obj, ok, err := decodeObject(raw)
	if err != nil || !ok {
		return raw, err
	}

	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		switch {
		case pair.Key == "properties":
			pair.Value, err = reorderMap(pair.Value, l.child())
		case schemaMaps[pair.Key]:
			pair.Value, err = reorderMap(pair.Value, fragmentLayout)
		case schemaValues[pair.Key]:
			pair.Value, err = reorder(pair.Value, fragmentLayout)
		case schemaLists[pair.Key]:
			pair.Value, err = reorderList(pair.Value)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", pair.Key, err)
		}
	}

	for _, d := range l.defaults {
		if _, present := obj.Get(d.key); !present {
			obj.Set(d.key, d.value)
		}
	}
	for i := len(l.lead) - 1; i >= 0; i-- {
		// A missing key is not an error; there is nothing to move.
		_ = obj.MoveToFront(l.lead[i])
	}
	return encodeObject(obj), nil
}

func reorderMap(raw json.RawMessage, l *layout) (json.RawMessage, error) {
	obj, ok, err := decodeObject(raw)
	if err != nil || !ok {
		return raw, err
	}
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value, err = reorder(pair.Value, l); err != nil {
			return nil, fmt.Errorf("%s: %w", pair.Key, err)
		}
	}
	return encodeObject(obj), nil
}

func reorderList(raw json.RawMessage) (json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, item := range items {
		out, err := reorder(item, fragmentLayout)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(out)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// decodeObject decodes raw when it holds an object and reports false for
// any other JSON value.
func decodeObject(raw json.RawMessage) (*rawObject, bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false, nil
	}
	obj := orderedmap.New[string, json.RawMessage]()
	if err := json.Unmarshal(trimmed, obj); err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

// encodeObject writes obj as compact JSON. Values are written as decoded,
// so text keeps the escaping chosen by the first encoding pass.
func encodeObject(obj *rawObject) json.RawMessage {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if pair != obj.Oldest() {
			buf.WriteByte(',')
		}
		writeKey(&buf, pair.Key)
		buf.WriteByte(':')
		buf.Write(pair.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func writeKey(buf *bytes.Buffer, key string) {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(key)
	buf.Truncate(buf.Len() - 1) // Encode appends a newline.
}
