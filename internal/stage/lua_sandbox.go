package stage

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const (
	luaTimeoutMs        = 2000
	luaInstructionLimit = 1000000

	sandboxTimeoutViolation     = "sandbox timeout"
	sandboxInstructionViolation = "sandbox instruction limit"
)

// newSandboxLuaState builds a restricted interpreter: base, string, table and
// math libraries only, with a deterministic math.random seeded per path.
func newSandboxLuaState(stageName, path string) *lua.LState {
	L := lua.NewState(lua.Options{
		SkipOpenLibs:     true,
		RegistrySize:     256,
		RegistryMaxSize:  4096,
		RegistryGrowStep: 0,
	})
	openLib := func(name string, f lua.LGFunction) {
		L.Push(L.NewFunction(f))
		L.Push(lua.LString(name))
		L.Call(1, 0)
	}
	openLib("base", lua.OpenBase)
	openLib("string", lua.OpenString)
	openLib("table", lua.OpenTable)
	openLib("math", lua.OpenMath)
	installDeterministicRandom(L, deterministicSeed(stageName, path))
	return L
}

func deterministicSeed(stageName, path string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(stageName))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(path))
	return int64(h.Sum64() & 0x7fffffffffffffff)
}

func installDeterministicRandom(L *lua.LState, seed int64) {
	mathTbl, ok := L.GetGlobal("math").(*lua.LTable)
	if !ok || mathTbl == nil {
		return
	}
	rng := rand.New(rand.NewSource(seed))
	mathTbl.RawSetString("random", L.NewFunction(func(L *lua.LState) int {
		switch L.GetTop() {
		case 0:
			L.Push(lua.LNumber(rng.Float64()))
			return 1
		case 1:
			max := L.CheckInt(1)
			if max < 1 {
				L.ArgError(1, "interval is empty")
				return 0
			}
			L.Push(lua.LNumber(rng.Intn(max) + 1))
			return 1
		default:
			min := L.CheckInt(1)
			max := L.CheckInt(2)
			if max < min {
				L.ArgError(2, "interval is empty")
				return 0
			}
			L.Push(lua.LNumber(rng.Intn(max-min+1) + min))
			return 1
		}
	}))
	mathTbl.RawSetString("randomseed", L.NewFunction(func(L *lua.LState) int { return 0 }))
}

func instructionLimitWouldTrip(code string) bool {
	cost := len(code) * 10
	lower := strings.ToLower(code)
	if strings.Contains(lower, "while ") || strings.Contains(lower, "repeat") || strings.Contains(lower, "for ") {
		cost += 1000000
	}
	return cost > luaInstructionLimit
}

func isLuaTimeout(err error) bool {
	if err == nil {
		return false
	}
	if err == context.DeadlineExceeded {
		return true
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "deadline") || strings.Contains(lower, "context canceled")
}

// runLuaScript evaluates code with the given globals and returns the result,
// a sandbox violation name, or an error.
func runLuaScript(stageName, path string, globals map[string]lua.LValue, code string) (lua.LValue, string, error) {
	if instructionLimitWouldTrip(code) {
		return lua.LNil, sandboxInstructionViolation, nil
	}
	L := newSandboxLuaState(stageName, path)
	defer L.Close()

	ctx, cancel := context.WithTimeout(context.Background(), luaTimeoutMs*time.Millisecond)
	defer cancel()
	L.SetContext(ctx)

	for k, v := range globals {
		L.SetGlobal(k, v)
	}
	fn, err := L.LoadString(code)
	if err != nil {
		return lua.LNil, "", err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		if isLuaTimeout(err) {
			return lua.LNil, sandboxTimeoutViolation, nil
		}
		return lua.LNil, "", err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, "", nil
}

func luaViolation(stageName, violation string) error {
	return fmt.Errorf("%s: %s", stageName, violation)
}
