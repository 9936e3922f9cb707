package stage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flarebyte/seshat-scribe/internal/gitclient"
)

func TestProbeSizeMissingFileIsZero(t *testing.T) {
	if got := probeSize(t.TempDir(), "does/not/exist.txt"); got != 0 {
		t.Fatalf("missing file must probe as 0, got %d", got)
	}
}

func TestProbeSizeReadsBytes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "f.txt"), []byte("12345"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := probeSize(dir, "f.txt"); got != 5 {
		t.Fatalf("expected 5 bytes, got %d", got)
	}
}

func TestSnapshotSizesPreservesStatusOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{"a.txt", "b.txt", "c.txt", "d.txt"}
	for i, p := range paths {
		data := make([]byte, (i+1)*10)
		if err := os.WriteFile(filepath.Join(dir, p), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", p, err)
		}
	}
	var snap gitclient.Snapshot
	for _, p := range paths {
		snap.Files = append(snap.Files, gitclient.FileStatus{Path: p, Working: gitclient.StatusModified})
	}
	cfg := baseConfig()
	cfg.Repo = dir
	cfg.Workers = 3
	git := &fakeClient{statusQueue: []gitclient.Snapshot{snap}}

	env, err := runNames(t, newEnv(cfg), Deps{Git: git}, "snapshot-sizes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Records) != len(paths) {
		t.Fatalf("expected %d records, got %d", len(paths), len(env.Records))
	}
	for i, r := range env.Records {
		if r.Path != paths[i] {
			t.Fatalf("order broken at %d: %s", i, r.Path)
		}
		if want := int64((i + 1) * 10); r.Size != want {
			t.Fatalf("size for %s: got %d, want %d", r.Path, r.Size, want)
		}
	}
}
