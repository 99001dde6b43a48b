package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/wildlands/internal/scripting"
	"github.com/cory-johannsen/wildlands/internal/testutil"
)

func newTestManager(t testing.TB, ints ...int) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	roller := testutil.Roller(testutil.NewFixedSource(ints, nil))
	return scripting.NewManager(roller, logger, 0), logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestManager_OnOutcome_ReturnsText(t *testing.T) {
	mgr, _ := newTestManager(t)
	path := writeTempLua(t, "grove.lua", `
		function on_outcome(zone, choice, text)
			if choice == 1 and string.find(text, "wolf") then
				return "  Howling echoes through " .. zone .. ".  "
			end
		end
	`)
	require.NoError(t, mgr.LoadZone("Shady Grove", path))
	assert.Equal(t, "Howling echoes through Shady Grove.", mgr.OnOutcome("shady grove", 0, "a wolf appears"))
	assert.Empty(t, mgr.OnOutcome("Shady Grove", 1, "a wolf appears"))
}

func TestManager_OnOutcome_PassesLoadedZoneName(t *testing.T) {
	mgr, _ := newTestManager(t)
	path := writeTempLua(t, "grove.lua", `
		function on_outcome(zone, choice, text)
			return zone
		end
	`)
	require.NoError(t, mgr.LoadZone("Shady Grove", path))
	for _, asked := range []string{"Shady Grove", "shady grove", "  SHADY GROVE "} {
		assert.Equal(t, "Shady Grove", mgr.OnOutcome(asked, 0, ""), asked)
	}
}

func TestManager_OnVictory(t *testing.T) {
	mgr, _ := newTestManager(t)
	path := writeTempLua(t, "v.lua", `
		function on_victory(enemy, level)
			return enemy .. " L" .. level .. " falls."
		end
	`)
	require.NoError(t, mgr.LoadZone("Arid Desert", path))
	assert.Equal(t, "Troll L4 falls.", mgr.OnVictory("Arid Desert", "Troll", 4))
}

func TestManager_NonStringReturnIgnored(t *testing.T) {
	mgr, _ := newTestManager(t)
	path := writeTempLua(t, "n.lua", `function on_outcome() return 42 end`)
	require.NoError(t, mgr.LoadZone("Z", path))
	assert.Empty(t, mgr.OnOutcome("Z", 0, ""))
}

func TestManager_MissingHookAndZone(t *testing.T) {
	mgr, _ := newTestManager(t)
	path := writeTempLua(t, "empty.lua", `-- no functions`)
	require.NoError(t, mgr.LoadZone("Z", path))
	assert.Equal(t, lua.LNil, mgr.CallHook("Z", "nonexistent_hook"))
	assert.Equal(t, lua.LNil, mgr.CallHook("nowhere", scripting.HookOutcome))
}

func TestManager_GlobalFallback(t *testing.T) {
	mgr, _ := newTestManager(t)
	path := writeTempLua(t, "global.lua", `function on_outcome(zone) return "global " .. zone end`)
	require.NoError(t, mgr.LoadGlobal(path))
	assert.Equal(t, "global Anywhere", mgr.OnOutcome("Anywhere", 0, ""))
}

func TestManager_RuntimeErrorLogsWarn(t *testing.T) {
	mgr, logs := newTestManager(t)
	path := writeTempLua(t, "bad.lua", `function on_outcome() error("intentional error") end`)
	require.NoError(t, mgr.LoadZone("Z", path))
	assert.Empty(t, mgr.OnOutcome("Z", 0, ""))
	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).Len())
}

func TestManager_LoadErrorKeepsPreviousVM(t *testing.T) {
	mgr, _ := newTestManager(t)
	good := writeTempLua(t, "good.lua", `function on_outcome() return "ok" end`)
	bad := writeTempLua(t, "bad.lua", `function (`)
	require.NoError(t, mgr.LoadZone("Z", good))
	assert.Error(t, mgr.LoadZone("Z", bad))
	assert.Equal(t, "ok", mgr.OnOutcome("Z", 0, ""))
	assert.Error(t, mgr.LoadZone("Z", filepath.Join(t.TempDir(), "missing.lua")))
}

func TestManager_InstructionBudgetIsPerCall(t *testing.T) {
	core, _ := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(testutil.Roller(testutil.NewFixedSource(nil, nil)), zap.New(core), 500)
	path := writeTempLua(t, "loop.lua", `
		function on_outcome()
			local n = 0
			for i = 1, 20 do n = n + i end
			return "sum " .. n
		end
		function on_victory()
			while true do end
		end
	`)
	require.NoError(t, mgr.LoadZone("Z", path))
	for i := 0; i < 50; i++ {
		require.Equal(t, "sum 210", mgr.OnOutcome("Z", 0, ""))
	}
	assert.Empty(t, mgr.OnVictory("Z", "Wolf", 1))
	assert.Equal(t, "sum 210", mgr.OnOutcome("Z", 0, ""))
}

func TestManager_EngineModule(t *testing.T) {
	mgr, logs := newTestManager(t, 2)
	mgr.Stat = func(name string) (int, bool) {
		if name == "health" {
			return 64, true
		}
		return 0, false
	}
	path := writeTempLua(t, "engine.lua", `
		function on_outcome()
			engine.log("rolling")
			local r = engine.roll(1, 6)
			local h = engine.stat("health")
			local missing = engine.stat("mana")
			return "r=" .. r .. " h=" .. h .. " m=" .. tostring(missing)
		end
	`)
	require.NoError(t, mgr.LoadZone("Z", path))
	assert.Equal(t, "r=3 h=64 m=nil", mgr.OnOutcome("Z", 0, ""))
	assert.Equal(t, 1, logs.FilterMessage("script log").Len())
}

func TestManager_LoadDir(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grove.lua"), []byte(`function on_outcome() return "grove" end`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "global.lua"), []byte(`function on_outcome() return "global" end`), 0644))
	require.NoError(t, mgr.LoadDir(dir, map[string]string{"Shady Grove": "grove.lua", "Village": ""}))
	assert.Equal(t, 2, mgr.Zones())
	assert.Equal(t, "grove", mgr.OnOutcome("Shady Grove", 0, ""))
	assert.Equal(t, "global", mgr.OnOutcome("Village", 0, ""))
	mgr.Close()
	assert.Zero(t, mgr.Zones())
}
