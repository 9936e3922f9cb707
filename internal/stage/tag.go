package stage

import (
	"context"
	"fmt"
)

const tagStage = "tag"

// tagRunner creates the configured tag. Failure is recorded, not fatal: push
// still runs.
func tagRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	if terminalClean(in) || !cfg(in).Tag.Enabled() {
		return in, nil
	}
	out := in
	if err := deps.Git.Tag(cfg(in).Tag.Args); err != nil {
		out.Errors = append(out.Errors, Error{Stage: tagStage, Message: sanitizeErrorMessage(fmt.Sprintf("tag: %v", err))})
		return out, nil
	}
	out.Meta.Result.Tagged = true
	return out, nil
}

func init() { Register(tagStage, tagRunner) }
