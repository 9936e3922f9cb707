package stage

import (
	"context"
	"fmt"
)

const identityStage = "configure-identity"

// identityRunner writes author and committer identity into the repository
// config before any commit is made.
func identityRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	if terminalClean(in) {
		return in, nil
	}
	id := cfg(in).Identity
	pairs := [][2]string{
		{"user.name", id.Name},
		{"user.email", id.Email},
	}
	if id.CommitterName != id.Name || id.CommitterEmail != id.Email {
		pairs = append(pairs,
			[2]string{"committer.name", id.CommitterName},
			[2]string{"committer.email", id.CommitterEmail},
		)
	}
	for _, kv := range pairs {
		if kv[1] == "" {
			continue
		}
		if err := deps.Git.AddConfig(kv[0], kv[1]); err != nil {
			return Envelope{}, fmt.Errorf("%s: set %s: %w", identityStage, kv[0], err)
		}
	}
	return in, nil
}

func init() { Register(identityStage, identityRunner) }
