package hcl

import (
	"context"
	"fmt"

	"github.com/specialistvlad/yangjsonschema/internal/ctxlog"
	"github.com/specialistvlad/yangjsonschema/internal/fsutil"
	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

// Extension is the file extension picked up when a directory is loaded.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the yang.Loader interface.
type Loader struct{}

var _ yang.Loader = (*Loader)(nil)

// NewLoader creates a new HCL schema loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every source reachable from paths and returns the resolved
// module trees. Files are read in argument order, directories in lexical
// order, and modules keep the order in which they were declared.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*yang.Node, error) {
	ctx = ctxlog.With(ctx, "loader", "hcl")
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.ExpandPaths(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := newFileParser(logger)
	var stmts []*statement
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileStmts, err := parser.parseFile(file)
		if err != nil {
			return nil, err
		}
		logger.Debug("Parsed HCL file.", "file", file, "statements", len(fileStmts))
		stmts = append(stmts, fileStmts...)
	}

	modules, err := newResolver(logger).resolve(stmts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema: %w", err)
	}

	logger.Debug("HCL loading complete.", "files", len(files), "modules", len(modules))
	return modules, nil
}
