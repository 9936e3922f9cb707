package stage

import (
	"github.com/flarebyte/seshat-scribe/internal/config"
	"github.com/flarebyte/seshat-scribe/internal/gitclient"
)

// Mode is the tolerance applied to pathspec misses during add/rm.
type Mode string

const (
	ModeIgnore     Mode = "ignore"
	ModeFailFast   Mode = "fail-fast"
	ModeAccumulate Mode = "accumulate"
)

// Action is the outcome of resolving a staging failure against the mode.
type Action int

const (
	// Suppress drops the error; the step is treated as successful.
	Suppress Action = iota
	// RaiseNow aborts the run at this point.
	RaiseNow
	// Defer records the error for drain at the end and keeps going.
	Defer
)

// policyMode maps the configured pathspec handling onto a tolerance mode.
func policyMode(meta *Meta) Mode {
	if meta == nil || meta.Config == nil {
		return ModeFailFast
	}
	switch meta.Config.Pathspec {
	case config.PathspecIgnore:
		return ModeIgnore
	case config.PathspecExitAtEnd:
		return ModeAccumulate
	default:
		return ModeFailFast
	}
}

// Resolve decides what to do with a staging failure. Only pathspec misses are
// subject to the tolerant modes; everything else raises immediately.
func Resolve(mode Mode, err error) Action {
	if !gitclient.IsPathspecMiss(err) {
		return RaiseNow
	}
	switch mode {
	case ModeIgnore:
		return Suppress
	case ModeAccumulate:
		return Defer
	default:
		return RaiseNow
	}
}
