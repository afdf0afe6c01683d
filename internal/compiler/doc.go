// Package compiler turns resolved YANG schema trees into a single JSON
// Schema (draft 2020-12) document describing both the data tree and the
// RPC/action operations of the loaded modules.
//
// The compilation is a synchronous recursive fold over an immutable tree.
// The only run-scoped mutable state is the definition Registry, which
// deduplicates typedefs into "$defs" and guards against self-referential
// typedef chains. A Registry must never be shared by concurrent runs.
//
// Encodings follow RFC 7951: 64-bit integers and decimal64 values are
// strings, "empty" is [null], and choice/case levels are flattened into
// their enclosing object.
package compiler
