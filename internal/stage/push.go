package stage

import (
	"context"
	"fmt"
)

const pushStage = "push"

// pushRunner pushes each commit individually in commit:branch form, in chunk
// order, so every chunk boundary becomes a distinct remote state. Tags go out
// separately afterwards. Push failures are recorded, not fatal.
func pushRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	pc := cfg(in).Push
	if terminalClean(in) || !pc.Enabled() {
		return in, nil
	}
	out := in

	branch := in.Meta.Branch
	if branch == "" {
		cur, err := deps.Git.CurrentBranch()
		if err != nil {
			out.Errors = append(out.Errors, Error{Stage: pushStage, Message: sanitizeErrorMessage(fmt.Sprintf("push: %v", err))})
			return out, nil
		}
		branch = cur
		out.Meta.Branch = branch
	}

	remote := cfg(in).Fetch.Remote
	failed := false
	for _, sha := range in.Meta.Result.CommitShas {
		refspec := sha + ":refs/heads/" + branch
		if err := deps.Git.Push(remote, refspec, pc.Args); err != nil {
			out.Errors = append(out.Errors, Error{Stage: pushStage, Message: sanitizeErrorMessage(fmt.Sprintf("push %s: %v", refspec, err))})
			failed = true
		}
	}
	if !failed && len(in.Meta.Result.CommitShas) > 0 {
		out.Meta.Result.Pushed = true
	}

	if cfg(in).Tag.Enabled() {
		if err := deps.Git.PushTags(remote, cfg(in).Tag.PushArgs); err != nil {
			out.Errors = append(out.Errors, Error{Stage: pushStage, Message: sanitizeErrorMessage(fmt.Sprintf("push tags: %v", err))})
		} else {
			out.Meta.Result.TagPushed = true
		}
	}
	return out, nil
}

func init() { Register(pushStage, pushRunner) }
