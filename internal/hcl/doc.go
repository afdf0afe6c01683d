// Package hcl provides the concrete HCL implementation of the yang.Loader
// interface. It is responsible for all file parsing, the translation of HCL
// blocks and attributes into schema statements, and the resolution work
// that the compiler expects to be done already: submodule merging, typedef
// lookup, grouping expansion, augmentation and config inheritance.
package hcl
