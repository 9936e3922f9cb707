package run

import (
	"fmt"
	"io"

	"github.com/flarebyte/seshat-scribe/internal/stage"
)

const (
	exitCodeSuccess = 0
	exitCodeExecErr = 1
)

type runExitError struct {
	code int
	msg  string
}

func (e runExitError) Error() string { return e.msg }
func (e runExitError) ExitCode() int { return e.code }

// reportDeferred logs every deferred record. Used when a fatal error ends
// the run before the drain, so earlier records are not lost.
func reportDeferred(env stage.Envelope, w io.Writer) {
	for _, e := range env.Errors {
		_, _ = fmt.Fprintf(w, "error stage=%s: %s\n", e.Stage, e.Message)
	}
}

// evaluateRunExit drains the deferred-error accumulator exactly once. One
// record fails the run with its own message; several are logged individually
// and folded into an aggregate failure.
func evaluateRunExit(env stage.Envelope, w io.Writer) error {
	switch len(env.Errors) {
	case 0:
		return nil
	case 1:
		return runExitError{code: exitCodeExecErr, msg: env.Errors[0].Message}
	default:
		for _, e := range env.Errors {
			_, _ = fmt.Fprintf(w, "error stage=%s: %s\n", e.Stage, e.Message)
		}
		return runExitError{code: exitCodeExecErr, msg: fmt.Sprintf("%d runtime errors occurred", len(env.Errors))}
	}
}
