package stage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const snapshotStage = "snapshot-sizes"

// probeSize returns the byte size of path under root. Any stat failure means
// size 0: a file deleted between status and probe is a legitimate race.
func probeSize(root, path string) int64 {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil || info.IsDir() {
		return 0
	}
	return info.Size()
}

type sizeProbeRes struct {
	idx  int
	size int64
}

// snapshotSizesRunner takes the porcelain status snapshot that feeds the
// chunker and resolves each entry's size. The probe is the only parallel
// fan-out in the pipeline; it is read-only and results are merged back in
// input order because chunking is order-sensitive.
func snapshotSizesRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	if terminalClean(in) {
		return in, nil
	}
	snap, err := deps.Git.Status()
	if err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", snapshotStage, err)
	}

	root := cfg(in).Repo
	records := make([]Record, len(snap.Files))
	for i, f := range snap.Files {
		records[i] = Record{Path: f.Path, WorkingStatus: f.Working, IndexStatus: f.Index}
	}
	results := runIndexedParallel(len(records), getWorkers(in.Meta), func(idx int) sizeProbeRes {
		return sizeProbeRes{idx: idx, size: probeSize(root, records[idx].Path)}
	})
	for _, r := range results {
		records[r.idx].Size = r.size
	}

	out := in
	out.Records = records
	return out, nil
}

func init() { Register(snapshotStage, snapshotSizesRunner) }
