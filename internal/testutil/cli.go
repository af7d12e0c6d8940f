package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

// redirect swaps *target for a pipe and returns a function that restores it
// and yields everything written in between.
func redirect(t *testing.T, target **os.File) func() string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	original := *target
	*target = w

	collected := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		collected <- buf.String()
	}()

	return func() string {
		_ = w.Close()
		*target = original
		return <-collected
	}
}

// CaptureOutput captures stdout during function execution
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()
	stdout, _ := CaptureStreams(t, fn)
	return stdout
}

// CaptureStreams captures stdout and stderr during function execution
func CaptureStreams(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	restoreOut := redirect(t, &os.Stdout)
	restoreErr := redirect(t, &os.Stderr)

	fn()

	stderr = restoreErr()
	stdout = restoreOut()
	return stdout, stderr
}

// SetupCobraCommand sets up a cobra command with args for testing
func SetupCobraCommand(cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}
