// Package scripting provides a sandboxed GopherLua environment for zone
// scripts. Scripts define optional hook functions that may return a line of
// flavour text; they never mutate game state directly.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per
// script execution when no limit is configured.
const DefaultInstructionLimit = 100_000

// opcodeBudget is a context that cancels itself once Done has been polled
// limit times. GopherLua polls Done once per executed opcode.
type opcodeBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

// Done implements context.Context, charging one opcode per call.
func (b *opcodeBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// newBudget returns a context good for limit opcodes. A limit <= 0 uses
// DefaultInstructionLimit.
func newBudget(limit int) (context.Context, context.CancelFunc) {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &opcodeBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	return b, cancel
}

// withBudget runs fn with a fresh instLimit-opcode budget installed on L.
func withBudget(L *lua.LState, instLimit int, fn func() error) error {
	ctx, cancel := newBudget(instLimit)
	defer cancel()
	L.SetContext(ctx)
	defer L.RemoveContext()
	return fn()
}

// NewSandboxedState creates a Lua state with only the base, table, string and
// math libraries, no file or module loading globals, and an instLimit opcode
// budget.
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil LState. The caller owns it and must call
// L.Close() when done. The limit covers everything run until the context is
// replaced.
func NewSandboxedState(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	ctx, _ := newBudget(instLimit) //nolint:govet // the budget cancels itself
	L.SetContext(ctx)

	return L
}
