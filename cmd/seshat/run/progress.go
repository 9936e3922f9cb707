package run

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/flarebyte/seshat-scribe/internal/config"
	"github.com/flarebyte/seshat-scribe/internal/stage"
)

// cmdStderr is swappable in tests.
var cmdStderr io.Writer = os.Stderr

type progressReporter struct {
	enabled  bool
	interval time.Duration
	w        io.Writer

	mu        sync.Mutex
	stageName string
	files     int
	errors    int
}

func newProgressReporter(cfg *config.Config, w io.Writer) *progressReporter {
	if cfg == nil || !cfg.UI.Progress {
		return &progressReporter{enabled: false}
	}
	interval := cfg.UI.ProgressIntervalMs
	if interval <= 0 {
		interval = 500
	}
	return &progressReporter{
		enabled:  true,
		interval: time.Duration(interval) * time.Millisecond,
		w:        w,
	}
}

func (p *progressReporter) runStage(ctx context.Context, name string, in stage.Envelope, deps stage.Deps) (stage.Envelope, error) {
	if p == nil || !p.enabled {
		return stage.Run(ctx, name, in, deps)
	}

	p.setSnapshot(name, len(in.Records), len(in.Errors))
	p.emit()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				p.emit()
			case <-done:
				return
			}
		}
	}()

	out, err := stage.Run(ctx, name, in, deps)
	close(done)
	if err == nil {
		p.setSnapshot(name, len(out.Records), len(out.Errors))
		p.emit()
	}
	return out, err
}

func (p *progressReporter) setSnapshot(stageName string, files, errs int) {
	p.mu.Lock()
	p.stageName = stageName
	p.files = files
	p.errors = errs
	p.mu.Unlock()
}

func (p *progressReporter) emit() {
	if p == nil || !p.enabled || p.w == nil {
		return
	}
	p.mu.Lock()
	_, _ = fmt.Fprintf(p.w, "progress stage=%s files=%d errors=%d\n", p.stageName, p.files, p.errors)
	p.mu.Unlock()
}
