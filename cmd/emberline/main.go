package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/emberline/server/internal/component"
	"github.com/emberline/server/internal/config"
	"github.com/emberline/server/internal/core/entity"
	coresys "github.com/emberline/server/internal/core/system"
	"github.com/emberline/server/internal/data"
	"github.com/emberline/server/internal/scripting"
	"github.com/emberline/server/internal/sim"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           Emberline  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        entity simulation server           \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s \033[90m(id: %d)\033[0m\n\n", serverName, serverID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("EMBERLINE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	// 3. Load data tables
	printSection("data")

	archetypes, err := data.LoadArchetypeTable(cfg.Sim.ArchetypeFile)
	if err != nil {
		return fmt.Errorf("load archetypes: %w", err)
	}
	printStat("archetypes", archetypes.Count())

	// 4. Lua scripting engine (spawn policies)
	luaEngine, err := scripting.NewEngine(cfg.Sim.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer luaEngine.Close()
	printOK("lua scripts loaded")
	fmt.Println()

	// 5. Entity system and component stores
	entities := entity.NewSystem()

	labels := component.NewStore[component.Label]()
	transforms := component.NewStore[component.Transform]()
	lifetimes := component.NewStore[component.Lifetime]()

	entities.Events.Create.Subscribe(func(ev entity.Created) {
		if lbl, ok := labels.Get(ev.Handle); ok {
			log.Debug("entity created",
				zap.Int32("id", ev.Handle.Identifier()),
				zap.Int32("gen", ev.Handle.Generation()),
				zap.String("archetype", lbl.Archetype))
		}
	})
	entities.Events.Destroy.Subscribe(func(ev entity.Destroyed) {
		log.Debug("entity destroyed",
			zap.Int32("id", ev.Handle.Identifier()),
			zap.Int32("gen", ev.Handle.Generation()))
	})

	// 6. Seed RNG
	seed := cfg.Sim.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// 7. Systems
	runner := coresys.NewRunner()
	stores := sim.Stores{
		Labels:     labels,
		Transforms: transforms,
		Lifetimes:  lifetimes,
	}
	runner.Register(sim.NewSpawnSystem(entities, archetypes, stores, luaEngine, rng,
		cfg.Sim.Width, cfg.Sim.Height, log))
	runner.Register(sim.NewMotionSystem(entities, transforms, cfg.Sim.Width, cfg.Sim.Height))
	runner.Register(sim.NewLifetimeSystem(entities, lifetimes))
	runner.Register(sim.NewCommitSystem(entities))

	// Component cleanup binds last so destroy observers registered above
	// still see component data for the dying entity.
	registry := component.NewRegistry()
	registry.Register(labels)
	registry.Register(transforms)
	registry.Register(lifetimes)
	registry.Bind(entities)

	// 8. Start simulation loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("world %dx%d, seed %d", cfg.Sim.Width, cfg.Sim.Height, seed))
	printReady(fmt.Sprintf("simulation loop started (tick: %s)", cfg.Sim.TickRate))
	fmt.Println()

	censusCounter := 0
	const censusInterval = 50 // 50 ticks x 200ms = 10 seconds

	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Sim.TickRate)

			censusCounter++
			if censusCounter >= censusInterval {
				censusCounter = 0
				log.Info("census",
					zap.Int("live", entities.Count()),
					zap.Int("slots", entities.SlotCount()))
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			entities.DestroyAll()
			entities.Cleanup()
			log.Info("server stopped")
			return nil
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
