package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wildlands/internal/game/dice"
)

// globalZone is the reserved key for the shared script loaded via
// LoadGlobal. CallHook falls back to it when a zone has no script.
const globalZone = "__global__"

// Hook names.
const (
	HookOutcome = "on_outcome"
	HookVictory = "on_victory"
)

// Manager owns one sandboxed LState per zone and exposes hook dispatch.
//
// Each LState is single-threaded; the mutex serialises every call.
type Manager struct {
	mu        sync.Mutex
	states    map[string]*lua.LState
	// names maps a zone key to the zone name it was loaded under.
	names     map[string]string
	instLimit int
	roller    *dice.Roller
	logger    *zap.Logger

	// Stat backs engine.stat. nil makes engine.stat return nil.
	Stat func(name string) (int, bool)
}

// NewManager creates a Manager whose scripts run under instLimit opcodes per
// call.
//
// Precondition: roller and logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no zone scripts.
func NewManager(roller *dice.Roller, logger *zap.Logger, instLimit int) *Manager {
	return &Manager{
		states:    make(map[string]*lua.LState),
		names:     make(map[string]string),
		instLimit: instLimit,
		roller:    roller,
		logger:    logger,
	}
}

func key(zone string) string {
	return strings.ToLower(strings.TrimSpace(zone))
}

// LoadZone creates a sandboxed VM for zone and runs the script at path.
//
// Precondition: zone must be non-empty.
// Postcondition: the zone VM replaces any previous one; returns an error on a
// read or Lua load failure and leaves the previous VM in place.
func (m *Manager) LoadZone(zone, path string) error {
	if err := m.loadInto(key(zone), path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names[key(zone)] = strings.TrimSpace(zone)
	return nil
}

// zoneName returns the name zone's script was loaded under, or zone itself
// when no zone script matches.
func (m *Manager) zoneName(zone string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if name, ok := m.names[key(zone)]; ok {
		return name
	}
	return zone
}

// LoadGlobal loads the shared fallback script.
func (m *Manager) LoadGlobal(path string) error {
	return m.loadInto(globalZone, path)
}

// LoadDir loads scripts[zone] from dir for every zone, plus global.lua when
// present.
//
// Postcondition: returns the first load error.
func (m *Manager) LoadDir(dir string, scripts map[string]string) error {
	for zone, file := range scripts {
		if file == "" {
			continue
		}
		if err := m.LoadZone(zone, filepath.Join(dir, file)); err != nil {
			return err
		}
	}
	global := filepath.Join(dir, "global.lua")
	if _, err := os.Stat(global); err == nil {
		return m.LoadGlobal(global)
	}
	return nil
}

func (m *Manager) loadInto(k, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("scripting: reading %q for %q: %w", path, k, err)
	}
	L := NewSandboxedState(m.instLimit)
	m.RegisterModules(L)
	if err := withBudget(L, m.instLimit, func() error { return L.DoString(string(src)) }); err != nil {
		L.Close()
		return fmt.Errorf("scripting: loading %q for %q: %w", path, k, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.states[k]; ok {
		old.Close()
	}
	m.states[k] = L
	m.logger.Debug("zone script loaded", zap.String("zone", k), zap.String("path", path))
	return nil
}

// Zones returns the number of loaded VMs, the global one included.
func (m *Manager) Zones() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// CallHook calls the named Lua global in zone's VM, falling back to the
// global VM. Lua runtime errors are logged at Warn level and never
// propagated.
//
// Postcondition: Returns the hook's first return value, or LNil when the
// hook is undefined, no VM exists or the call failed.
func (m *Manager) CallHook(zone, hook string, args ...lua.LValue) lua.LValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	L, ok := m.states[key(zone)]
	if !ok {
		L = m.states[globalZone]
	}
	if L == nil {
		return lua.LNil
	}
	fn := L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}
	err := withBudget(L, m.instLimit, func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("zone", zone),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

func (m *Manager) callText(zone, hook string, args ...lua.LValue) string {
	ret := m.CallHook(zone, hook, args...)
	if s, ok := ret.(lua.LString); ok {
		return strings.TrimSpace(string(s))
	}
	return ""
}

// OnOutcome runs on_outcome(zone, choice, text). Lua sees a 1-based choice
// and the zone name the script was loaded under, whatever case the caller
// used.
//
// Postcondition: returns "" unless the hook returned a string.
func (m *Manager) OnOutcome(zone string, choice int, text string) string {
	return m.callText(zone, HookOutcome, lua.LString(m.zoneName(zone)), lua.LNumber(choice+1), lua.LString(text))
}

// OnVictory runs on_victory(enemy, level) in zone's VM.
//
// Postcondition: returns "" unless the hook returned a string.
func (m *Manager) OnVictory(zone, enemy string, level int) string {
	return m.callText(zone, HookVictory, lua.LString(enemy), lua.LNumber(level))
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, L := range m.states {
		L.Close()
		delete(m.states, k)
		delete(m.names, k)
	}
}
