package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

func parseCUE(path string) (rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rawConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return rawConfig{}, fmt.Errorf("invalid config: %v", err)
	}
	if err := requireStringField(v, "configVersion"); err != nil {
		return rawConfig{}, err
	}

	var raw rawConfig
	raw.ConfigVersion = strAt(v, "configVersion")
	raw.Repo = strAt(v, "repo")
	raw.Branch = strAt(v, "branch")
	raw.Workers = intAt(v, "workers")

	if iv := v.LookupPath(cue.ParsePath("identity")); iv.Exists() {
		raw.Identity.Name = strAt(iv, "name")
		raw.Identity.Email = strAt(iv, "email")
		raw.Identity.CommitterName = strAt(iv, "committerName")
		raw.Identity.CommitterEmail = strAt(iv, "committerEmail")
	}
	if cv := v.LookupPath(cue.ParsePath("commit")); cv.Exists() {
		raw.Commit.Message = strAt(cv, "message")
		raw.Commit.Args = strAt(cv, "args")
		raw.Commit.AllowEmpty = boolAt(cv, "allowEmpty")
	}
	if fv := v.LookupPath(cue.ParsePath("fetch")); fv.Exists() {
		raw.Fetch.Enabled = boolAt(fv, "enabled")
		raw.Fetch.Remote = strAt(fv, "remote")
		raw.Fetch.Args = strAt(fv, "args")
	}
	if pv := v.LookupPath(cue.ParsePath("pull")); pv.Exists() {
		raw.Pull.Enabled = boolAt(pv, "enabled")
		raw.Pull.Args = strAt(pv, "args")
	}
	if tv := v.LookupPath(cue.ParsePath("tag")); tv.Exists() {
		raw.Tag.Args = strAt(tv, "args")
		raw.Tag.PushArgs = strAt(tv, "pushArgs")
	}
	if ev := v.LookupPath(cue.ParsePath("errors")); ev.Exists() {
		raw.Errors.PathspecHandling = strAt(ev, "pathspecHandling")
	}
	if lv := v.LookupPath(cue.ParsePath("limits")); lv.Exists() {
		raw.Limits.ChunkBytes = int64At(lv, "chunkBytes")
	}
	if flv := v.LookupPath(cue.ParsePath("filter")); flv.Exists() {
		raw.Filter.Inline = strAt(flv, "inline")
	}
	if uv := v.LookupPath(cue.ParsePath("ui")); uv.Exists() {
		raw.UI.Progress = boolAt(uv, "progress")
		raw.UI.ProgressIntervalMs = intAt(uv, "progressIntervalMs")
	}

	// push is bool | string; keep whichever kind the file used.
	if pv := v.LookupPath(cue.ParsePath("push")); pv.Exists() {
		switch pv.Kind() {
		case cue.BoolKind:
			var b bool
			if err := pv.Decode(&b); err != nil {
				return rawConfig{}, fmt.Errorf("invalid value for push: %v", err)
			}
			raw.Push = b
		case cue.StringKind:
			var s string
			if err := pv.Decode(&s); err != nil {
				return rawConfig{}, fmt.Errorf("invalid value for push: %v", err)
			}
			raw.Push = s
		default:
			return rawConfig{}, fmt.Errorf("invalid type for field: push (expected bool or string)")
		}
	}
	return raw, nil
}

func requireStringField(v cue.Value, name string) error {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return fmt.Errorf("missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	return nil
}

func strAt(v cue.Value, name string) string {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() || f.Kind() != cue.StringKind {
		return ""
	}
	var s string
	if err := f.Decode(&s); err != nil {
		return ""
	}
	return s
}

func boolAt(v cue.Value, name string) bool {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() || f.Kind() != cue.BoolKind {
		return false
	}
	var b bool
	if err := f.Decode(&b); err != nil {
		return false
	}
	return b
}

// int64At decodes without going through the platform int, so byte limits
// above 2 GiB survive 32-bit builds.
func int64At(v cue.Value, name string) int64 {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() || f.Kind() != cue.IntKind {
		return 0
	}
	var n int64
	if err := f.Decode(&n); err != nil {
		return 0
	}
	return n
}

func intAt(v cue.Value, name string) int {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() || f.Kind() != cue.IntKind {
		return 0
	}
	var n int
	if err := f.Decode(&n); err != nil {
		return 0
	}
	return n
}
