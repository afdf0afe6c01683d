// Package yang defines the format-agnostic, already-resolved schema tree that
// the compiler walks, along with the Loader interface for producing it from
// a concrete source format.
//
// A loaded tree is read-only. Every Node carries its resolved owning module,
// its parent, its inherited config flag and, for type statements, the
// typedef the type name resolved to. The compiler never parses or resolves
// anything itself; it only reads these fields.
package yang
