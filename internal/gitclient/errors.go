package gitclient

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGitOperationFailed is the sentinel wrapped by every GitError.
var ErrGitOperationFailed = errors.New("git operation failed")

// GitError captures a failed git invocation with its captured stderr.
type GitError struct {
	Op     string
	Args   []string
	Err    error
	Output string
}

func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s failed", e.Op)
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, strings.TrimSpace(e.Output))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *GitError) Unwrap() error { return e.Err }

func newGitError(op string, args []string, err error, output string) *GitError {
	return &GitError{Op: op, Args: args, Err: fmt.Errorf("%w: %v", ErrGitOperationFailed, err), Output: output}
}

// IsPathspecMiss reports whether err is an add/rm failure caused by a pathspec
// matching no working-tree entries, as opposed to any other failure.
func IsPathspecMiss(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	var ge *GitError
	if errors.As(err, &ge) {
		msg = ge.Output + " " + msg
	}
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "did not match any files") {
		return true
	}
	return strings.Contains(lower, "pathspec") && strings.Contains(lower, "did not match")
}
