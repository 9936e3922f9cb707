package stage

import (
	"fmt"
	"strings"

	"github.com/flarebyte/seshat-scribe/internal/gitclient"
)

// fakeClient is a scripted VCS client recording every call in order.
type fakeClient struct {
	calls []string

	statusQueue []gitclient.Snapshot
	statusIdx   int

	addErrs    []error
	addIdx     int
	rmErrs     []error
	rmIdx      int
	commitErrs []error
	commitIdx  int
	commitN    int

	branch      string
	branchErr   error
	checkoutErr error
	newErr      error
	fetchErr    error
	pullErr     error
	tagErr      error
	pushErr     error
	pushTagsErr error
}

func (f *fakeClient) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeClient) Status() (gitclient.Snapshot, error) {
	f.record("status")
	if len(f.statusQueue) == 0 {
		return gitclient.Snapshot{}, nil
	}
	i := f.statusIdx
	if i >= len(f.statusQueue) {
		i = len(f.statusQueue) - 1
	}
	f.statusIdx++
	return f.statusQueue[i], nil
}

func (f *fakeClient) AddConfig(key, value string) error {
	f.record("config %s=%s", key, value)
	return nil
}

func (f *fakeClient) Fetch(args []string) error {
	f.record("fetch %s", strings.Join(args, " "))
	return f.fetchErr
}

func (f *fakeClient) Pull(args []string) error {
	f.record("pull %s", strings.Join(args, " "))
	return f.pullErr
}

func (f *fakeClient) Checkout(branch string) error {
	f.record("checkout %s", branch)
	return f.checkoutErr
}

func (f *fakeClient) CheckoutNew(branch string) error {
	f.record("checkout-new %s", branch)
	return f.newErr
}

func (f *fakeClient) CurrentBranch() (string, error) {
	f.record("current-branch")
	if f.branch == "" {
		return "main", f.branchErr
	}
	return f.branch, f.branchErr
}

func (f *fakeClient) Add(paths []string) error {
	f.record("add %s", strings.Join(paths, " "))
	if f.addIdx < len(f.addErrs) {
		err := f.addErrs[f.addIdx]
		f.addIdx++
		return err
	}
	return nil
}

func (f *fakeClient) Remove(paths []string) error {
	f.record("rm %s", strings.Join(paths, " "))
	if f.rmIdx < len(f.rmErrs) {
		err := f.rmErrs[f.rmIdx]
		f.rmIdx++
		return err
	}
	return nil
}

func (f *fakeClient) Commit(message string, args []string) (string, error) {
	f.record("commit %q %s", message, strings.Join(args, " "))
	if f.commitIdx < len(f.commitErrs) {
		err := f.commitErrs[f.commitIdx]
		f.commitIdx++
		if err != nil {
			return "", err
		}
	} else {
		f.commitIdx++
	}
	f.commitN++
	return fmt.Sprintf("%040d", f.commitN), nil
}

func (f *fakeClient) Tag(args []string) error {
	f.record("tag %s", strings.Join(args, " "))
	return f.tagErr
}

func (f *fakeClient) Push(remote, refspec string, args []string) error {
	f.record("push %s %s %s", remote, refspec, strings.Join(args, " "))
	return f.pushErr
}

func (f *fakeClient) PushTags(remote string, args []string) error {
	f.record("push-tags %s %s", remote, strings.Join(args, " "))
	return f.pushTagsErr
}

// pathspecMissErr builds the classified miss the policy tolerates.
func pathspecMissErr(path string) error {
	return fmt.Errorf("git add failed: fatal: pathspec '%s' did not match any files", path)
}

func (f *fakeClient) callsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
