package stage

import (
	"context"
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

const luaFilterStage = "filter-files"

// buildLuaPredicate wraps expressions without an explicit return.
func buildLuaPredicate(code string) string {
	if !strings.Contains(code, "return") {
		return "return (" + code + ")"
	}
	return code
}

// filterGlobals exposes one changed file to the predicate.
func filterGlobals(r Record) map[string]lua.LValue {
	return map[string]lua.LValue{
		"path":           lua.LString(r.Path),
		"working_status": lua.LString(r.WorkingStatus),
		"index_status":   lua.LString(r.IndexStatus),
		"size":           lua.LNumber(r.Size),
	}
}

// luaFilterRunner drops files the configured predicate rejects, before any
// chunking happens. Runs sequentially: the size probe is the only fan-out the
// pipeline allows. A predicate failure is a config error and fails the run.
func luaFilterRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	code := cfg(in).Filter.Inline
	if terminalClean(in) || code == "" {
		return in, nil
	}
	pred := buildLuaPredicate(code)

	out := in
	out.Records = make([]Record, 0, len(in.Records))
	for _, r := range in.Records {
		ret, violation, err := runLuaScript(luaFilterStage, r.Path, filterGlobals(r), pred)
		if err != nil {
			return Envelope{}, fmt.Errorf("%s: %s: %v", luaFilterStage, r.Path, err)
		}
		if violation != "" {
			return Envelope{}, luaViolation(luaFilterStage, violation)
		}
		if lua.LVAsBool(ret) {
			out.Records = append(out.Records, r)
		}
	}
	return out, nil
}

func init() { Register(luaFilterStage, luaFilterRunner) }
