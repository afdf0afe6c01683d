package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/specialistvlad/yangjsonschema/internal/app"
	"github.com/specialistvlad/yangjsonschema/internal/compiler"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("yangjsonschema", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
yangjsonschema - Compile YANG schema trees into one JSON Schema document.

Usage:
  yangjsonschema [options] PATH [PATH...]

Arguments:
  PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	outputFlag := flagSet.String("output", "", "Write the document to this file instead of stdout.")
	oFlag := flagSet.String("o", "", "Write the document to this file (shorthand).")
	formatFlag := flagSet.String("format", string(compiler.FormatJSON), "Document encoding. Options: 'json' or 'yaml'.")
	titleFlag := flagSet.String("title", compiler.DefaultTitle, "Title of the generated document.")
	noNamespacesFlag := flagSet.Bool("no-namespaces", false, "Key typedef definitions by bare name.")
	configOnlyFlag := flagSet.Bool("config-only", false, "Drop config false nodes from the data tree.")
	checkFlag := flagSet.String("check", "", "Compare the document with this file and fail on differences.")
	colorFlag := flagSet.Bool("color", !color.NoColor, "Colorize the diff printed by -check.")
	debugFlag := flagSet.Bool("debug", false, "Shorthand for -log-level=debug.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := flagSet.Args()
	if len(paths) == 0 {
		slog.Debug("No schema path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = *oFlag
	}

	format, err := compiler.ParseFormat(strings.ToLower(*formatFlag))
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: "invalid format: " + err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Paths:        paths,
		OutputPath:   outputPath,
		CheckPath:    *checkFlag,
		Format:       format,
		Color:        *colorFlag,
		Title:        *titleFlag,
		NoNamespaces: *noNamespacesFlag,
		ConfigOnly:   *configOnlyFlag,
		Debug:        *debugFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
