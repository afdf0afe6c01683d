package hcl

import "errors"

var (
	// ErrUnresolvedType is returned when a type name is neither a built-in
	// type nor a visible typedef.
	ErrUnresolvedType = errors.New("unresolved type")

	// ErrUnresolvedGrouping is returned when a uses statement names no
	// visible grouping.
	ErrUnresolvedGrouping = errors.New("unresolved grouping")

	// ErrGroupingCycle is returned when a grouping uses itself, directly or
	// through other groupings.
	ErrGroupingCycle = errors.New("grouping cycle")

	// ErrAugmentTarget is returned when an augment path does not lead to an
	// existing node.
	ErrAugmentTarget = errors.New("augment target not found")

	// ErrUnknownModule is returned for prefixes, submodule owners and
	// augment targets that name no loaded module.
	ErrUnknownModule = errors.New("unknown module")
)
