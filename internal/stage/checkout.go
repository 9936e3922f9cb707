package stage

import (
	"context"
	"fmt"
	"os"
)

const checkoutStage = "checkout-branch"

// checkoutRunner switches to the target branch, creating it when it does not
// exist locally. Pushing a branch created without a prior fetch can fail
// downstream, so that combination gets a warning.
func checkoutRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	branch := cfg(in).Branch
	if terminalClean(in) || branch == "" {
		return in, nil
	}
	out := in
	if err := deps.Git.Checkout(branch); err != nil {
		if !out.Meta.FetchRan {
			fmt.Fprintf(os.Stderr, "warning: creating branch %s without a prior fetch; push may be rejected\n", branch)
		}
		if err := deps.Git.CheckoutNew(branch); err != nil {
			return Envelope{}, fmt.Errorf("%s: create %s: %w", checkoutStage, branch, err)
		}
		out.Meta.NewBranch = true
	}
	out.Meta.Branch = branch
	return out, nil
}

func init() { Register(checkoutStage, checkoutRunner) }
