package run

import (
	"context"

	"github.com/flarebyte/seshat-scribe/internal/config"
	"github.com/flarebyte/seshat-scribe/internal/stage"
)

// pipelineStages is the fixed, ordered stage list for `seshat run`. Every
// optional stage passes through when its config is absent.
var pipelineStages = []string{
	"detect-changes",
	"configure-identity",
	"fetch",
	"checkout-branch",
	"pull",
	"snapshot-sizes",
	"filter-files",
	"chunk-changes",
	"commit-chunks",
	"tag",
	"push",
}

// executePipeline runs the stage list over a fresh envelope. On a fatal stage
// error the envelope accumulated so far comes back with the error, so outputs
// can still be published.
func executePipeline(ctx context.Context, cfg *config.Config, deps stage.Deps) (stage.Envelope, error) {
	in := stage.Envelope{Records: []stage.Record{}, Meta: &stage.Meta{Config: cfg}}
	reporter := newProgressReporter(cfg, cmdStderr)
	out := in
	for _, name := range pipelineStages {
		next, err := reporter.runStage(ctx, name, out, deps)
		if err != nil {
			return out, err
		}
		out = next
	}
	return out, nil
}
