package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wildlands/internal/config"
	"github.com/cory-johannsen/wildlands/internal/content"
	"github.com/cory-johannsen/wildlands/internal/game/dice"
	"github.com/cory-johannsen/wildlands/internal/game/scene"
	"github.com/cory-johannsen/wildlands/internal/gameserver"
	"github.com/cory-johannsen/wildlands/internal/lifecycle"
	"github.com/cory-johannsen/wildlands/internal/observability"
	"github.com/cory-johannsen/wildlands/internal/scripting"
	"github.com/cory-johannsen/wildlands/internal/tui"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (defaults apply when empty)")
	contentDir := flag.String("content", "", "override content.dir")
	scriptsDir := flag.String("scripts", "", "override scripting.dir")
	logFile := flag.String("log", "wildlands.log", "log file used when logging.file is unset")
	flag.Parse()

	var (
		cfg config.Config
		err error
	)
	if *configPath == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(*configPath)
	}
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}
	if *scriptsDir != "" {
		cfg.Scripting.Dir = *scriptsDir
	}
	// The terminal belongs to the TUI; log lines on stderr would tear the frame.
	if cfg.Logging.File == "" {
		cfg.Logging.File = *logFile
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := content.LoadDir(cfg.Content.Dir)
	if err != nil {
		logger.Fatal("loading content", zap.String("dir", cfg.Content.Dir), zap.Error(err))
	}
	logger.Info("content loaded",
		zap.Int("zones", len(store.World.Zones())),
		zap.Duration("elapsed", time.Since(start)),
	)
	for _, f := range store.Lint() {
		logger.Warn("content finding", zap.String("finding", f.String()))
	}

	var src dice.Source
	if cfg.Game.Seed != 0 {
		src = dice.NewSeededSource(cfg.Game.Seed)
		logger.Info("using seeded dice", zap.Int64("seed", cfg.Game.Seed))
	} else {
		src = dice.NewCryptoSource()
	}
	roller := dice.NewLoggedRoller(src, logger)

	var (
		hooks   gameserver.Hooks
		scripts *scripting.Manager
	)
	if cfg.Scripting.Enabled() {
		scripts = scripting.NewManager(roller, logger, cfg.Scripting.InstructionLimit)
		defer scripts.Close()
		files := make(map[string]string)
		for _, z := range store.World.Zones() {
			files[z.Name] = z.Script
		}
		if err := scripts.LoadDir(cfg.Scripting.Dir, files); err != nil {
			logger.Fatal("loading zone scripts", zap.String("dir", cfg.Scripting.Dir), zap.Error(err))
		}
		logger.Info("zone scripts loaded", zap.Int("vms", scripts.Zones()))
		hooks = scripts
	}

	sc := tui.NewScene(logger)
	game := gameserver.NewGame(store, cfg, roller, sc, hooks, logger)
	if scripts != nil {
		scripts.Stat = game.StatReader()
	}
	game.Enter(scene.Handoff{Mode: scene.NewSession})

	lc := lifecycle.NewLifecycle(logger)
	lc.Add("game", lifecycle.ServiceFunc(func(ctx context.Context) error {
		<-game.Run(ctx)
		return nil
	}))
	lc.Add("tui", lifecycle.ServiceFunc(func(ctx context.Context) error {
		_, err := tea.NewProgram(tui.NewModel(game, sc), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}))

	logger.Info("game ready", zap.Duration("elapsed", time.Since(start)))
	if err := lc.Run(context.Background()); err != nil {
		logger.Error("shutdown after failure", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
