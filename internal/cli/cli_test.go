package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/yangjsonschema/internal/compiler"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	cfg, shouldExit, err := Parse([]string{"models", "extra.hcl"}, out)

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, []string{"models", "extra.hcl"}, cfg.Paths)
	assert.Equal(t, compiler.FormatJSON, cfg.Format)
	assert.Equal(t, compiler.DefaultTitle, cfg.Title)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.OutputPath)
	assert.Empty(t, cfg.CheckPath)
	assert.Empty(t, out.String())
}

func TestParse_AllFlags(t *testing.T) {
	t.Parallel()

	cfg, shouldExit, err := Parse([]string{
		"-o", "out.yaml",
		"-format", "YAML",
		"-title", "Device",
		"-no-namespaces",
		"-config-only",
		"-color=false",
		"-debug",
		"-log-format", "json",
		"models",
	}, &bytes.Buffer{})

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "out.yaml", cfg.OutputPath)
	assert.Equal(t, compiler.FormatYAML, cfg.Format)
	assert.Equal(t, compiler.Options{Title: "Device", NoNamespaces: true, ConfigOnly: true}, cfg.CompilerOptions())
	assert.False(t, cfg.Color)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_LongOutputFlagWins(t *testing.T) {
	t.Parallel()

	cfg, _, err := Parse([]string{"-output", "long.json", "-o", "short.json", "m.hcl"}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "long.json", cfg.OutputPath)
}

func TestParse_ShouldExit(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "help flag", args: []string{"-h"}},
		{name: "no path", args: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)
			require.NoError(t, err)
			assert.True(t, shouldExit)
			assert.Nil(t, cfg)
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"-bogus", "m.hcl"}, wantMsg: "flag provided but not defined"},
		{name: "bad format", args: []string{"-format", "xml", "m.hcl"}, wantMsg: "invalid format"},
		{name: "bad log format", args: []string{"-log-format", "xml", "m.hcl"}, wantMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "loud", "m.hcl"}, wantMsg: "invalid log-level"},
		{name: "output with check", args: []string{"-o", "a.json", "-check", "b.json", "m.hcl"}, wantMsg: "cannot be combined"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, shouldExit, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, shouldExit)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
