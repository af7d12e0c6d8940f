package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	// Out and ErrOut default to os.Stdout and os.Stderr
	Out    io.Writer
	ErrOut io.Writer
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out != nil {
		return f.Out
	}
	return os.Stdout
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.ErrOut != nil {
		return f.ErrOut
	}
	return os.Stderr
}

// Success outputs successful operation result. render produces the
// human-readable form; nil falls back to a plain dump of data.
func (f *OutputFormatter) Success(data interface{}, render func() string) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			_, err := fmt.Fprintf(f.out(), "%d\n", idGetter.GetID())
			return err
		}
		if idLister, ok := data.(interface{ IDs() []int }); ok {
			for _, id := range idLister.IDs() {
				if _, err := fmt.Fprintf(f.out(), "%d\n", id); err != nil {
					return err
				}
			}
			return nil
		}
		// Data without an ID falls through to the selected format
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]interface{}{
			"success": true,
			"data":    data,
		})
	}

	if f.Quiet {
		return nil
	}

	// Human-readable format
	if render != nil {
		_, err := fmt.Fprintln(f.out(), render())
		return err
	}
	_, err := fmt.Fprintf(f.out(), "%+v\n", data)
	return err
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]interface{}{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]interface{}{
			"success": false,
			"error":   errData,
		})
	}

	if f.Quiet {
		return nil
	}

	// Human-readable error
	fmt.Fprintf(f.errOut(), "Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(f.errOut(), "Suggestion: %s\n", suggestion)
	}
	return nil
}
