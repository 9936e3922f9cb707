package stage

import (
	"context"
	"fmt"
	"strings"
)

const pullStage = "pull"

// pullRunner fetches, pulls with the configured arguments and then inspects
// the conflict set. Conflicts are fatal regardless of the tolerance mode;
// nothing here resolves them.
func pullRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	if terminalClean(in) || !cfg(in).Pull.Enabled {
		return in, nil
	}
	if err := deps.Git.Fetch(fetchArgv(in)); err != nil {
		return Envelope{}, fmt.Errorf("%s: fetch: %w", pullStage, err)
	}
	if err := deps.Git.Pull(cfg(in).Pull.Args); err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", pullStage, err)
	}
	snap, err := deps.Git.Status()
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: status: %w", pullStage, err)
	}
	if len(snap.Conflicted) > 0 {
		return Envelope{}, fmt.Errorf("%s: merge conflict in %s", pullStage, strings.Join(snap.Conflicted, ", "))
	}
	return in, nil
}

func init() { Register(pullStage, pullRunner) }
