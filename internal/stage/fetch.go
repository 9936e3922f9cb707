package stage

import (
	"context"
	"fmt"
)

const fetchStage = "fetch"

// fetchArgv appends the remote after any configured fetch options.
func fetchArgv(in Envelope) []string {
	fc := cfg(in).Fetch
	return append(append([]string{}, fc.Args...), fc.Remote)
}

func fetchRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	if terminalClean(in) || !cfg(in).Fetch.Enabled {
		return in, nil
	}
	if err := deps.Git.Fetch(fetchArgv(in)); err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", fetchStage, err)
	}
	out := in
	out.Meta.FetchRan = true
	return out, nil
}

func init() { Register(fetchStage, fetchRunner) }
