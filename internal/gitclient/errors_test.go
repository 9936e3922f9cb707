package gitclient

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsPathspecMissFromOutput(t *testing.T) {
	err := newGitError("add", []string{"--", "missing.txt"}, errors.New("exit status 128"),
		"fatal: pathspec 'missing.txt' did not match any files\n")
	if !IsPathspecMiss(err) {
		t.Fatalf("expected pathspec miss for add output")
	}
}

func TestIsPathspecMissRmPhrase(t *testing.T) {
	err := newGitError("rm", []string{"--", "gone"}, errors.New("exit status 128"),
		"fatal: pathspec 'gone' did not match any files\n")
	if !IsPathspecMiss(err) {
		t.Fatalf("expected pathspec miss for rm output")
	}
}

func TestIsPathspecMissOtherFailures(t *testing.T) {
	cases := []error{
		newGitError("add", nil, errors.New("exit status 128"), "fatal: Unable to create '.git/index.lock': Permission denied\n"),
		newGitError("commit", nil, errors.New("exit status 1"), "fatal: could not open ODB\n"),
		errors.New("network unreachable"),
		nil,
	}
	for i, err := range cases {
		if IsPathspecMiss(err) {
			t.Fatalf("case %d: unexpected pathspec classification: %v", i, err)
		}
	}
}

func TestIsPathspecMissWrapped(t *testing.T) {
	ge := newGitError("add", nil, errors.New("exit status 128"),
		"fatal: pathspec 'a' did not match any files\n")
	wrapped := fmt.Errorf("staging chunk 2: %w", ge)
	if !IsPathspecMiss(wrapped) {
		t.Fatalf("expected classification to survive wrapping")
	}
}

func TestGitErrorMessageAndUnwrap(t *testing.T) {
	err := newGitError("push", []string{"origin"}, errors.New("exit status 1"), "rejected\n")
	if !errors.Is(err, ErrGitOperationFailed) {
		t.Fatalf("expected sentinel in chain")
	}
	msg := err.Error()
	if msg == "" || msg == "git push failed" {
		t.Fatalf("expected output folded into message, got %q", msg)
	}
}
