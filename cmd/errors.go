package cmd

import (
	"errors"
	"fmt"

	"github.com/eykd/fmx/internal/domain"
)

// ErrNotInProject is returned when a command needs a workspace and none
// was found.
var ErrNotInProject = errors.New("not in an fmx workspace (run 'fmx init' first)")

// ContextError adds operation and path context to an underlying error.
type ContextError struct {
	Op   string
	Path string
	Err  error
}

// Error returns the formatted error string with context.
func (e *ContextError) Error() string {
	if e.Op != "" && e.Path != "" {
		return e.Op + ": " + e.Path + ": " + e.Err.Error()
	}
	if e.Op != "" {
		return e.Op + ": " + e.Err.Error()
	}
	if e.Path != "" {
		return e.Path + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ContextError) Unwrap() error {
	return e.Err
}

// NoticeError is returned when an operation raised error notices, such
// as an invalid date format setting. The operation's other effects stand.
type NoticeError struct {
	Count int
}

// Error implements the error interface.
func (e *NoticeError) Error() string {
	if e.Count == 1 {
		return "1 configuration problem reported"
	}
	return fmt.Sprintf("%d configuration problems reported", e.Count)
}

// ExitCode returns the exit code for reported problems (always 2).
func (e *NoticeError) ExitCode() int {
	return 2
}

// RenameError is returned when the document was updated but renaming
// the file failed.
type RenameError struct {
	Err error
}

// Error implements the error interface.
func (e *RenameError) Error() string {
	return "metadata updated but file not renamed: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *RenameError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for a partial slug update (always 3).
func (e *RenameError) ExitCode() int {
	return 3
}

// noticeError returns a *NoticeError when notices holds any error.
func noticeError(notices []domain.Notice) error {
	n := 0
	for _, notice := range notices {
		if notice.Severity == domain.SeverityError {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return &NoticeError{Count: n}
}

// ExitCoder is implemented by errors that carry a specific process exit code.
type ExitCoder interface {
	ExitCode() int
}

// ExitCodeFromError returns the appropriate exit code for an error.
// nil returns 0, ExitCoder errors return their code, all others return 1.
func ExitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

// FormatError formats an error with the "fmx: " prefix and trailing newline.
func FormatError(err error) string {
	return fmt.Sprintf("fmx: %s\n", err.Error())
}
