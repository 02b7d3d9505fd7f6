package engine

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"mafia-engine/internal/agent"
	"mafia-engine/internal/config"
	"mafia-engine/internal/domain"
	"mafia-engine/internal/memory"
	"mafia-engine/internal/names"
)

// PolicyFactory builds the decision-maker for one seat. cmd/engine/main.go
// supplies this; tests can inject a HeuristicPolicy or another Policy double.
type PolicyFactory func(id int, role domain.Role) agent.Policy

// Setup builds a fresh Engine: creates the GameState, adds cfg.Game.TotalPlayers
// players, assigns roles per cfg.Game.Roles, wires a Seat (with memory-stream
// caps from cfg.Memory) and Policy for each, records werewolf teammate
// knowledge once (I3), and advances the game to round 1's Night phase.
func Setup(cfg *config.Config, policyFor PolicyFactory, rng *rand.Rand, logger *zap.Logger) (*Engine, error) {
	if policyFor == nil {
		// Each seat gets its own *rand.Rand, derived sequentially from rng
		// while Setup is still single-threaded. HeuristicPolicy.Vote is
		// called concurrently across seats during vote collection (C6), and
		// math/rand.Rand isn't safe for concurrent use, so sharing one
		// instance across every seat's policy would be a data race.
		policyFor = func(id int, role domain.Role) agent.Policy {
			return agent.NewHeuristicPolicy(rand.New(rand.NewSource(rng.Int63())))
		}
	}

	distribution := map[domain.Role]int{
		domain.RoleVillager: cfg.Game.Roles.Villager,
		domain.RoleWerewolf: cfg.Game.Roles.Werewolf,
		domain.RoleSeer:     cfg.Game.Roles.Seer,
		domain.RoleWitch:    cfg.Game.Roles.Witch,
	}
	if err := domain.ValidateRoleDistribution(distribution, cfg.Game.TotalPlayers); err != nil {
		return nil, fmt.Errorf("engine: setup: %w", err)
	}

	nameGen, err := names.NewGenerator(names.DefaultNamePool(cfg.Game.TotalPlayers))
	if err != nil {
		return nil, fmt.Errorf("engine: setup: %w", err)
	}

	state := domain.NewGameState("game")
	for i := 1; i <= cfg.Game.TotalPlayers; i++ {
		name, err := nameGen.Next()
		if err != nil {
			return nil, fmt.Errorf("engine: setup: %w", err)
		}
		state.AddPlayer(i, name, domain.RoleUnknown)
	}
	state.AssignRoles(distribution, rng)

	streamCaps := map[memory.Stream]int{
		memory.StreamNightDiscussions: cfg.Memory.NightDiscussionMemoryLimit,
		memory.StreamNightThinking:    cfg.Memory.NightThinkingMemoryLimit,
	}

	seats := make(map[int]*agent.Seat, cfg.Game.TotalPlayers)
	for _, p := range state.GetAlivePlayers() {
		identity := agent.Identity{ID: p.ID, Name: p.Name, Role: p.Role}
		seat := agent.NewSeat(identity, policyFor(p.ID, p.Role), streamCaps)
		seats[p.ID] = seat
	}
	for id, seat := range seats {
		if seat.Werewolf != nil {
			seat.InitTeammates(state.WerewolfTeammates(id))
		}
	}

	state.AdvancePhase() // Preparation -> Night, Round becomes 1
	for _, seat := range seats {
		seat.SetRound(state.Round)
	}

	logger.Info("game set up",
		zap.String("game_id", state.ID), zap.Int("players", cfg.Game.TotalPlayers))

	return &Engine{
		state:  state,
		seats:  seats,
		cfg:    cfg,
		logger: logger,
		rng:    rng,
	}, nil
}
