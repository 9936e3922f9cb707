package gitclient

import (
	"fmt"
	"sort"

	git "github.com/go-git/go-git/v5"
)

func (c *CLIClient) open() (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(c.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", c.dir, err)
	}
	return repo, nil
}

// Status snapshots the working tree. Entries come back sorted by path so two
// snapshots of the same tree compare equal.
func (c *CLIClient) Status() (Snapshot, error) {
	repo, err := c.open()
	if err != nil {
		return Snapshot{}, err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return Snapshot{}, fmt.Errorf("worktree: %w", err)
	}
	st, err := wt.Status()
	if err != nil {
		return Snapshot{}, fmt.Errorf("status: %w", err)
	}

	var snap Snapshot
	for path, fs := range st {
		if fs.Staging == git.Unmodified && fs.Worktree == git.Unmodified {
			continue
		}
		if fs.Staging == git.UpdatedButUnmerged || fs.Worktree == git.UpdatedButUnmerged {
			snap.Conflicted = append(snap.Conflicted, path)
		}
		snap.Files = append(snap.Files, FileStatus{
			Path:    path,
			Working: statusName(fs.Worktree),
			Index:   statusName(fs.Staging),
		})
	}
	sort.Slice(snap.Files, func(i, j int) bool { return snap.Files[i].Path < snap.Files[j].Path })
	sort.Strings(snap.Conflicted)
	return snap, nil
}

// CurrentBranch resolves the short name of the branch HEAD points at.
func (c *CLIClient) CurrentBranch() (string, error) {
	repo, err := c.open()
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

func statusName(code git.StatusCode) string {
	switch code {
	case git.Unmodified:
		return StatusUnmodified
	case git.Modified:
		return StatusModified
	case git.Added:
		return StatusAdded
	case git.Deleted:
		return StatusDeleted
	case git.Renamed:
		return StatusRenamed
	case git.Copied:
		return StatusCopied
	case git.Untracked:
		return StatusUntracked
	case git.UpdatedButUnmerged:
		return StatusUnmerged
	default:
		return StatusModified
	}
}
