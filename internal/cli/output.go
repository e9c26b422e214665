package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/mealmax/internal/battle"
	"github.com/roach88/mealmax/internal/meal"
	"github.com/roach88/mealmax/internal/random"
	"github.com/roach88/mealmax/internal/store"
)

// Process exit codes.
const (
	ExitSuccess      = 0 // command completed
	ExitFailure      = 1 // a catalog or battle operation failed
	ExitCommandError = 2 // the command could not run: bad flags, config or database
)

// ExitError carries the exit code main should use for a failed command.
type ExitError struct {
	Code     int
	Message  string
	Err      error // optional cause
	Reported bool  // already written to the command output
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError returns an ExitError without a cause.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError returns an ExitError wrapping err.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode returns the code of the first ExitError in err's chain,
// or ExitFailure if there is none.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Reported reports whether err was already written to the command output,
// in which case main must not print it again.
func Reported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// reported marks e as already written to the command output.
func reported(e *ExitError) *ExitError {
	e.Reported = true
	return e
}

// CLIResponse is the envelope of every JSON-formatted result.
type CLIResponse struct {
	Status string      `json:"status"` // "ok" | "error"
	Data   interface{} `json:"data,omitempty"`
	Error  *CLIError   `json:"error,omitempty"`
}

// CLIError describes a failure in a CLIResponse.
type CLIError struct {
	Code    string      `json:"code"` // see ErrorCode
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// OutputFormatter writes command results as text or JSON.
type OutputFormatter struct {
	Format    string // "text" | "json"
	Writer    io.Writer
	ErrWriter io.Writer // diagnostics; falls back to Writer
	Verbose   bool
}

func (f *OutputFormatter) isJSON() bool { return f.Format == "json" }

func (f *OutputFormatter) encode(resp CLIResponse) error {
	return json.NewEncoder(f.Writer).Encode(resp)
}

// Success writes data, printed with %v in text mode.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.isJSON() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Result writes data in JSON mode and text verbatim otherwise.
func (f *OutputFormatter) Result(text string, data interface{}) error {
	if f.isJSON() {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := io.WriteString(f.Writer, text)
	return err
}

// Error writes a coded failure. Details are shown in text mode only when
// verbose.
func (f *OutputFormatter) Error(code, message string, details interface{}) error {
	if f.isJSON() {
		return f.encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err under its ErrorCode and returns an ExitFailure
// ExitError wrapping it.
func (f *OutputFormatter) Fail(message string, err error) error {
	if outErr := f.Error(ErrorCode(err), err.Error(), nil); outErr != nil {
		return outErr
	}
	return reported(WrapExitError(ExitFailure, message, err))
}

// VerboseLog writes a diagnostic line to ErrWriter when verbose.
func (f *OutputFormatter) VerboseLog(format string, args ...interface{}) {
	if f.Verbose {
		fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
	}
}

// GetErrWriter returns ErrWriter, or Writer if ErrWriter is unset.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter == nil {
		return f.Writer
	}
	return f.ErrWriter
}

// ErrorCode names the domain error behind err for CLI output.
func ErrorCode(err error) string {
	if code := battle.CodeOf(err); code != "" {
		return string(code)
	}
	switch {
	case errors.Is(err, store.ErrMealNotFound):
		return "NOT_FOUND"
	case errors.Is(err, store.ErrMealDeleted):
		return "DELETED"
	case errors.Is(err, store.ErrDuplicateMeal):
		return "DUPLICATE"
	case errors.Is(err, store.ErrInvalidSort),
		errors.Is(err, store.ErrInvalidPrice),
		errors.Is(err, meal.ErrInvalidMeal):
		return "INVALID_INPUT"
	case errors.Is(err, random.ErrUnavailable):
		return "RANDOM_UNAVAILABLE"
	case errors.Is(err, random.ErrMalformed):
		return "RANDOM_MALFORMED"
	default:
		return "INTERNAL"
	}
}
