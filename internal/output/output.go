// Package output writes generated documents and compares them against
// previously generated files.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// ErrMismatch is returned by Check when the file differs from the document.
var ErrMismatch = errors.New("generated schema differs from file")

// Stdout is the path that selects standard output.
const Stdout = "-"

// Write stores data at path, creating parent directories. An empty path or
// Stdout writes to w instead.
func Write(path string, data []byte, w io.Writer) error {
	if path == "" || path == Stdout {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

// Diff returns the unified diff from the old text to the new one, or an
// empty string when they are equal.
func Diff(fromName string, from []byte, toName string, to []byte) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(from)),
		B:        difflib.SplitLines(string(to)),
		FromFile: fromName,
		ToFile:   toName,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to compute diff: %w", err)
	}
	return text, nil
}

// Checker compares a generated document with the file it is expected to
// match.
type Checker struct {
	// Color enables ANSI colors in the printed diff.
	Color bool
}

// Check reads the file at path and compares it with data. On mismatch the
// diff is written to w and ErrMismatch is returned.
func (c Checker) Check(path string, data []byte, w io.Writer) error {
	existing, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read check file: %w", err)
	}

	diff, err := Diff(path, existing, "generated", data)
	if err != nil {
		return err
	}
	if diff == "" {
		return nil
	}

	if c.Color {
		diff = colorize(diff)
	}
	if _, err := io.WriteString(w, diff); err != nil {
		return fmt.Errorf("failed to write diff: %w", err)
	}
	return fmt.Errorf("%w: %s", ErrMismatch, path)
}

var (
	headerColor = forced(color.New(color.Bold))
	hunkColor   = forced(color.New(color.FgCyan))
	addColor    = forced(color.New(color.FgGreen))
	removeColor = forced(color.New(color.FgRed))
)

// forced keeps a color active regardless of terminal detection; Checker
// decides whether coloring happens at all.
func forced(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

func colorize(diff string) string {
	var sb strings.Builder
	for _, line := range difflib.SplitLines(diff) {
		body := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			body = headerColor.Sprint(body)
		case strings.HasPrefix(body, "@@"):
			body = hunkColor.Sprint(body)
		case strings.HasPrefix(body, "+"):
			body = addColor.Sprint(body)
		case strings.HasPrefix(body, "-"):
			body = removeColor.Sprint(body)
		}
		sb.WriteString(body)
		if strings.HasSuffix(line, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
