package stage

import (
	"context"
	"fmt"
)

const detectStage = "detect-changes"

// detectRunner takes the first status snapshot. A clean tree without the
// allow-empty override ends the run right here; later stages pass through.
func detectRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	snap, err := deps.Git.Status()
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", detectStage, err)
	}
	out := in
	if len(snap.Files) == 0 && !cfg(in).Commit.AllowEmpty {
		out.Meta.Clean = true
	}
	return out, nil
}

func init() { Register(detectStage, detectRunner) }
