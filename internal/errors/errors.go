package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/habit-tracker/internal/logger"
)

// Notice is an error meant to be shown to the user as-is, without the
// underlying cause. Cause is still logged.
type Notice struct {
	Message string
	Cause   error
}

func (n *Notice) Error() string { return n.Message }
func (n *Notice) Unwrap() error { return n.Cause }

// NewNotice wraps cause behind a user-facing message
func NewNotice(message string, cause error) error {
	return &Notice{Message: message, Cause: cause}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Report logs err and writes it to w. It returns false when err is nil.
func Report(w io.Writer, err error) bool {
	if err == nil {
		return false
	}

	keyvals := []interface{}{"error", err}
	var n *Notice
	if errors.As(err, &n) && n.Cause != nil {
		keyvals = append(keyvals, "cause", n.Cause)
	}
	logger.Error("Command execution failed", keyvals...)
	fmt.Fprintln(w, Format(err))
	return true
}

// Fatal reports err on stderr and exits with code 1
func Fatal(err error) {
	if Report(os.Stderr, err) {
		os.Exit(1)
	}
}

func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
