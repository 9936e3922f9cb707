package gitclient

import (
	"bytes"
	"os/exec"
	"strings"
)

// CLIClient runs git operations through the git binary in a fixed working
// directory. Status and CurrentBranch go through go-git instead (status.go)
// for machine-stable codes.
type CLIClient struct {
	dir string
}

// New returns a Client rooted at dir.
func New(dir string) *CLIClient {
	if dir == "" {
		dir = "."
	}
	return &CLIClient{dir: dir}
}

// runGit executes git with args and returns captured stdout. Stderr is folded
// into the returned GitError on non-zero exit.
func (c *CLIClient) runGit(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		op := ""
		var rest []string
		if len(args) > 0 {
			op = args[0]
			rest = args[1:]
		}
		return "", newGitError(op, rest, err, stderr.String())
	}
	return stdout.String(), nil
}

func (c *CLIClient) AddConfig(key, value string) error {
	_, err := c.runGit("config", key, value)
	return err
}

func (c *CLIClient) Fetch(args []string) error {
	_, err := c.runGit(append([]string{"fetch"}, args...)...)
	return err
}

func (c *CLIClient) Pull(args []string) error {
	_, err := c.runGit(append([]string{"pull"}, args...)...)
	return err
}

func (c *CLIClient) Checkout(branch string) error {
	_, err := c.runGit("checkout", branch)
	return err
}

func (c *CLIClient) CheckoutNew(branch string) error {
	_, err := c.runGit("checkout", "-b", branch)
	return err
}

func (c *CLIClient) Add(paths []string) error {
	_, err := c.runGit(append([]string{"add", "--"}, paths...)...)
	return err
}

func (c *CLIClient) Remove(paths []string) error {
	_, err := c.runGit(append([]string{"rm", "--"}, paths...)...)
	return err
}

// Commit records the staged changes and returns the full hash of the new
// commit.
func (c *CLIClient) Commit(message string, args []string) (string, error) {
	argv := append([]string{"commit", "-m", message}, args...)
	if _, err := c.runGit(argv...); err != nil {
		return "", err
	}
	out, err := c.runGit("rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *CLIClient) Tag(args []string) error {
	_, err := c.runGit(append([]string{"tag"}, args...)...)
	return err
}

func (c *CLIClient) Push(remote, refspec string, args []string) error {
	argv := append([]string{"push"}, args...)
	argv = append(argv, remote, refspec)
	_, err := c.runGit(argv...)
	return err
}

func (c *CLIClient) PushTags(remote string, args []string) error {
	argv := append([]string{"push"}, args...)
	argv = append(argv, remote, "--tags")
	_, err := c.runGit(argv...)
	return err
}
