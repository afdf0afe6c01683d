package app

import (
	"context"
	"os"
	"testing"

	"github.com/specialistvlad/yangjsonschema/internal/hcl"
	"github.com/specialistvlad/yangjsonschema/internal/testutil"
)

// runResult holds the outcome of one App.Run in a test.
type runResult struct {
	Out  string
	Logs string
	Err  error
}

// runApp writes files to a temporary directory, points cfg.Paths at it and
// runs the app with the HCL loader at debug level.
func runApp(t *testing.T, files map[string]string, cfg Config) runResult {
	t.Helper()

	root := testutil.WriteFiles(t, files)
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{root}
	}
	cfg.LogLevel = "debug"
	appConfig, err := NewConfig(cfg)
	if err != nil {
		return runResult{Err: err}
	}

	out := &testutil.SafeBuffer{}
	logs := &testutil.SafeBuffer{}
	testApp := NewApp(out, logs, appConfig, hcl.NewLoader())
	runErr := testApp.Run(context.Background())

	t.Cleanup(func() {
		if os.Getenv("YANGJS_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return runResult{Out: out.String(), Logs: logs.String(), Err: runErr}
}
