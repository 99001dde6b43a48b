package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine table into L:
//
//	engine.roll(lo, hi)  inclusive random integer
//	engine.stat(name)    current player stat, or nil
//	engine.log(msg)      debug log line
//
// Precondition: L must be from NewSandboxedState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "roll", L.NewFunction(m.luaRoll))
	L.SetField(engine, "stat", L.NewFunction(m.luaStat))
	L.SetField(engine, "log", L.NewFunction(m.luaLog))
	L.SetGlobal("engine", engine)
}

func (m *Manager) luaRoll(L *lua.LState) int {
	lo := L.CheckInt(1)
	hi := L.CheckInt(2)
	if hi < lo {
		L.ArgError(2, "hi must be >= lo")
		return 0
	}
	L.Push(lua.LNumber(m.roller.Between("script.roll", lo, hi)))
	return 1
}

func (m *Manager) luaStat(L *lua.LState) int {
	name := L.CheckString(1)
	if m.Stat == nil {
		L.Push(lua.LNil)
		return 1
	}
	v, ok := m.Stat(name)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (m *Manager) luaLog(L *lua.LState) int {
	m.logger.Debug("script log", zap.String("msg", L.CheckString(1)))
	return 0
}
