package main

import (
	"context"
	"flag"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mafia-engine/internal/agent"
	"mafia-engine/internal/config"
	"mafia-engine/internal/domain"
	"mafia-engine/internal/engine"
	"mafia-engine/internal/llm"
)

func main() {
	configPath := flag.String("config", "", "path to an optional JSON config file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	logger.Info("config loaded",
		zap.Int("total_players", cfg.Game.TotalPlayers), zap.String("model", cfg.AI.ModelName))

	// Constructing the Completer exercises the ai_settings wiring (spec §6);
	// prompt templates and model-output parsing are out of scope (spec §1),
	// so the default policy stays the deterministic HeuristicPolicy and the
	// completer is not yet consulted by any Policy implementation.
	if _, err := llm.NewOllamaCompleter(llm.OllamaOptions{
		BaseURL:      cfg.AI.OllamaBaseURL,
		Model:        cfg.AI.ModelName,
		Temperature:  cfg.AI.Temperature,
		MaxTokens:    cfg.AI.MaxTokens,
		ThinkingMode: cfg.AI.ThinkingMode,
	}); err != nil {
		logger.Warn("ollama completer unavailable, continuing with heuristic policies only", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(1))
	// A fresh *rand.Rand per seat, derived from rng while engine.Setup is
	// still building seats sequentially — HeuristicPolicy.Vote runs
	// concurrently across seats during vote collection, and math/rand.Rand
	// is not safe for concurrent use.
	policyFor := func(id int, role domain.Role) agent.Policy {
		return agent.NewHeuristicPolicy(rand.New(rand.NewSource(rng.Int63())))
	}

	eng, err := engine.Setup(cfg, policyFor, rng, logger)
	if err != nil {
		logger.Fatal("failed to set up game", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	final, err := eng.Run(ctx)
	if err != nil {
		logger.Fatal("game ended with an error", zap.Error(err))
	}

	logger.Info("game over",
		zap.String("winner", final.Winner.String()),
		zap.Int("rounds", final.Round),
		zap.Int("events_recorded", len(final.EventLog)),
	)
}
