package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/yangjsonschema/internal/compiler"
	"github.com/specialistvlad/yangjsonschema/internal/output"
)

// Run loads the schema sources, compiles them into one document and either
// writes it or checks it against an existing file.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.", "paths", a.config.Paths)

	modules, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}
	a.logger.Debug("Schema loaded.", "modules", len(modules))

	doc, err := compiler.Compile(ctx, modules, a.config.CompilerOptions())
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}
	a.logger.Debug("Schema compiled.",
		"data_properties", doc.Data().Properties.Len(),
		"operations", doc.Operations().Properties.Len(),
	)
	for _, key := range doc.Incomplete {
		a.logger.Warn("Definition left incomplete by a cyclic typedef chain.", "key", key)
	}

	rendered, err := doc.Render(a.config.Format)
	if err != nil {
		return err
	}

	if a.config.CheckPath != "" {
		checker := output.Checker{Color: a.config.Color}
		if err := checker.Check(a.config.CheckPath, rendered, a.outW); err != nil {
			return err
		}
		a.logger.Info("Generated schema matches file.", "path", a.config.CheckPath)
		return nil
	}

	if err := output.Write(a.config.OutputPath, rendered, a.outW); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.", "bytes", len(rendered), "output", a.config.OutputPath)
	return nil
}
