package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/lanes/internal/models"
	boardservice "github.com/thenoetrevino/lanes/internal/services/board"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, network errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Board, column or card IDs that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Moves whose target cannot accept the card, data that cannot be processed.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty or oversized titles and descriptions, non-positive IDs.
	ExitValidation = 5

	// ExitUnavailable indicates a configured integration is missing.
	// Use for: Board export without an S3 bucket.
	ExitUnavailable = 69
)

// ExitCodeError carries the process exit code for a failed command
type ExitCodeError struct {
	Code int
	Err  error

	// Reported is set once the error has been shown to the user
	Reported bool
}

func (e *ExitCodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCodeFor maps an error onto the exit code a command should return
func ExitCodeFor(err error) int {
	var exitErr *ExitCodeError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &exitErr):
		return exitErr.Code
	case errors.Is(err, models.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, models.ErrValidation):
		return ExitValidation
	case errors.Is(err, models.ErrInvalidTarget):
		return ExitDataErr
	case errors.Is(err, boardservice.ErrExportDisabled):
		return ExitUnavailable
	default:
		return ExitError
	}
}

// errorCode names an error for JSON output
func errorCode(err error) string {
	switch ExitCodeFor(err) {
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitDataErr:
		return "INVALID_TARGET"
	case ExitUnavailable:
		return "UNAVAILABLE"
	case ExitUsage:
		return "USAGE_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
