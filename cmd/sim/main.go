package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"TokenSentinel/internal/config"
	"TokenSentinel/internal/montecarlo"
	"TokenSentinel/internal/notifier"
	"TokenSentinel/internal/recorder"
	"TokenSentinel/internal/scenario"
	"TokenSentinel/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TokenSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Load scenarios
	var scenarios []scenario.Scenario
	if cfg.ScenarioFile != "" {
		scenarios, err = scenario.Load(cfg.ScenarioFile)
		if err != nil {
			log.Fatalf("[FATAL] load scenarios: %v", err)
		}
		log.Printf("[INFO] loaded %d scenarios from %s", len(scenarios), cfg.ScenarioFile)
	} else {
		scenarios = scenario.Defaults()
	}

	// Init Monte Carlo aggregator
	agg, err := montecarlo.NewAggregator(cfg.Simulation, montecarlo.DefaultRanges(),
		cfg.MonteCarlo.Runs, cfg.MonteCarlo.Workers, cfg.MonteCarlo.Seed)
	if err != nil {
		log.Fatalf("[FATAL] init monte carlo: %v", err)
	}

	// Init Telegram notifier
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, cfg.Simulation, scenarios, agg, tn, rec)
	sched.RunJSONPath = cfg.Output.RunJSON
	sched.MonteCarloJSONPath = cfg.Output.MonteCarloJSON

	if !cfg.Schedule.Enabled {
		// One-shot mode: run the scenario sweep and the Monte Carlo batch,
		// then exit.
		sched.RunScenariosNow()
		sched.RunMonteCarloNow()
		log.Println("[INFO] TokenSentinel done")
		return
	}

	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scenario sweep now")
		go sched.RunScenariosNow()
	}

	log.Println("[INFO] TokenSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TokenSentinel stopped")
}
