package stage

import (
	"errors"
	"testing"

	"github.com/flarebyte/seshat-scribe/internal/config"
)

func TestResolvePathspecMissPerMode(t *testing.T) {
	miss := pathspecMissErr("gone.txt")
	cases := []struct {
		mode Mode
		want Action
	}{
		{ModeIgnore, Suppress},
		{ModeFailFast, RaiseNow},
		{ModeAccumulate, Defer},
	}
	for _, c := range cases {
		if got := Resolve(c.mode, miss); got != c.want {
			t.Fatalf("mode %s: got action %d, want %d", c.mode, got, c.want)
		}
	}
}

func TestResolveOtherErrorsAlwaysRaise(t *testing.T) {
	boom := errors.New("fatal: unable to write index")
	for _, mode := range []Mode{ModeIgnore, ModeFailFast, ModeAccumulate} {
		if got := Resolve(mode, boom); got != RaiseNow {
			t.Fatalf("mode %s: non-pathspec error must raise, got %d", mode, got)
		}
	}
}

func TestPolicyModeMapping(t *testing.T) {
	cases := []struct {
		handling config.PathspecHandling
		want     Mode
	}{
		{config.PathspecIgnore, ModeIgnore},
		{config.PathspecExitImmediately, ModeFailFast},
		{config.PathspecExitAtEnd, ModeAccumulate},
	}
	for _, c := range cases {
		meta := &Meta{Config: &config.Config{Pathspec: c.handling}}
		if got := policyMode(meta); got != c.want {
			t.Fatalf("handling %s: got %s, want %s", c.handling, got, c.want)
		}
	}
	if got := policyMode(nil); got != ModeFailFast {
		t.Fatalf("nil meta should default to fail-fast, got %s", got)
	}
}
