package stage

import (
	"context"
	"fmt"
	"strings"

	"github.com/flarebyte/seshat-scribe/internal/gitclient"
)

const commitChunksStage = "commit-chunks"

// splitChunkPaths separates a chunk into paths to stage with add and paths to
// stage with rm, based on the snapshot's working status.
func splitChunkPaths(records []Record, ch Chunk) (adds, removals []string) {
	status := make(map[string]string, len(records))
	for _, r := range records {
		status[r.Path] = r.WorkingStatus
	}
	for _, p := range ch.Paths {
		if status[p] == gitclient.StatusDeleted {
			removals = append(removals, p)
		} else {
			adds = append(adds, p)
		}
	}
	return adds, removals
}

// applyPolicy acts on a staging failure: suppress, defer into errs, or raise.
// A deferred failure leaves the step looking successful so the chunk still
// proceeds to commit.
func applyPolicy(mode Mode, err error, paths []string, errs *[]Error) error {
	switch Resolve(mode, err) {
	case Suppress:
		return nil
	case Defer:
		*errs = append(*errs, Error{Stage: commitChunksStage, Message: sanitizeErrorMessage(err.Error())})
		return nil
	default:
		return fmt.Errorf("%s: staging %s: %w", commitChunksStage, strings.Join(paths, " "), err)
	}
}

// stageChunk stages one chunk's files in batch calls, adds then removals.
func stageChunk(deps Deps, records []Record, ch Chunk, mode Mode, errs *[]Error) error {
	adds, removals := splitChunkPaths(records, ch)
	if len(adds) > 0 {
		if err := deps.Git.Add(adds); err != nil {
			if raise := applyPolicy(mode, err, adds, errs); raise != nil {
				return raise
			}
		}
	}
	if len(removals) > 0 {
		if err := deps.Git.Remove(removals); err != nil {
			if raise := applyPolicy(mode, err, removals, errs); raise != nil {
				return raise
			}
		}
	}
	return nil
}

// commitChunksRunner stages and commits each chunk in order. A commit-step
// failure is recorded and the loop moves on, so later chunks still get their
// chance; a raised staging failure aborts the run here.
func commitChunksRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	if terminalClean(in) {
		return in, nil
	}
	out := in
	mode := policyMode(in.Meta)
	cc := cfg(in).Commit

	if len(in.Meta.Chunks) == 0 {
		if !cc.AllowEmpty {
			return out, nil
		}
		// git refuses an empty commit unless asked explicitly.
		args := append(append([]string{}, cc.Args...), "--allow-empty")
		sha, err := deps.Git.Commit(cc.Message, args)
		if err != nil {
			return Envelope{}, fmt.Errorf("%s: empty commit: %w", commitChunksStage, err)
		}
		out.Meta.Result.Committed = true
		out.Meta.Result.CommitShas = append(out.Meta.Result.CommitShas, sha)
		return out, nil
	}

	for i, ch := range in.Meta.Chunks {
		if err := stageChunk(deps, in.Records, ch, mode, &out.Errors); err != nil {
			return Envelope{}, err
		}
		sha, err := deps.Git.Commit(cc.Message, cc.Args)
		if err != nil {
			out.Errors = append(out.Errors, Error{
				Stage:   commitChunksStage,
				Message: sanitizeErrorMessage(fmt.Sprintf("commit chunk %d of %d: %v", i+1, len(in.Meta.Chunks), err)),
			})
			continue
		}
		out.Meta.Result.Committed = true
		out.Meta.Result.CommitShas = append(out.Meta.Result.CommitShas, sha)
	}
	return out, nil
}

func init() { Register(commitChunksStage, commitChunksRunner) }
