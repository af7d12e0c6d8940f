package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/lanes/internal/app"
	lanescli "github.com/thenoetrevino/lanes/internal/cli"
	"github.com/thenoetrevino/lanes/internal/testutil"
)

// ExecuteCLICommand executes a CLI command with a test app instance.
// The app is injected through the context the same way the root command does it.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()
	return ExecuteCLICommandWithContext(t, context.Background(), testApp, cmd, args)
}

// ExecuteCLICommandWithContext executes a CLI command with a specific context and test app
func ExecuteCLICommandWithContext(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	ctxWithApp := lanescli.WithCLI(ctx, &lanescli.CLI{App: testApp})

	// Disable usage output on error for cleaner test output
	testutil.SetupCobraCommand(cmd, args)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctxWithApp)
	})

	return output, executeErr
}
