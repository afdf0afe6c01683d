// Package testutil holds shared helpers for loader and application tests.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/yangjsonschema/internal/ctxlog"
	"github.com/specialistvlad/yangjsonschema/internal/yang"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteFiles writes files, keyed by slash-separated relative path, below a
// fresh temporary directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}
	return root
}

// LoggingContext returns a context carrying a debug-level text logger that
// writes into the returned buffer. Set YANGJS_TEST_LOGS=true to see the
// captured output of every test.
func LoggingContext(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()

	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("YANGJS_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// HarnessResult holds the outcome of a loader run.
type HarnessResult struct {
	LogOutput string
	Err       error
	Modules   []*yang.Node
}

// RunLoaderTest writes files to a temporary directory and loads that
// directory with loader.
func RunLoaderTest(t *testing.T, loader yang.Loader, files map[string]string) *HarnessResult {
	t.Helper()

	root := WriteFiles(t, files)
	ctx, logs := LoggingContext(t)
	modules, err := loader.Load(ctx, root)
	return &HarnessResult{
		LogOutput: logs.String(),
		Err:       err,
		Modules:   modules,
	}
}
