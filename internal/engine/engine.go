// Package engine implements the Orchestration Engine (C9): the single
// driver that advances a game through Night -> Day -> Discussion -> Voting
// and back, calling every other component in the fixed order spec §4.9
// describes. The teacher's Kafka Command/Effect split existed to decouple
// the engine from player processes running in separate OS containers; this
// repo's players are in-process Agent implementations, so that transport
// layer is gone (see SPEC_FULL.md "Dropped teacher dependencies"), but the
// teacher's underlying idea survives: each phase method performs its pure
// domain mutation first and only then logs/broadcasts, rather than
// interleaving the two.
package engine

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"mafia-engine/internal/agent"
	"mafia-engine/internal/config"
	"mafia-engine/internal/domain"
	"mafia-engine/internal/victory"
)

// Engine is the authoritative orchestrator of a single game.
type Engine struct {
	state  *domain.GameState
	seats  map[int]*agent.Seat
	cfg    *config.Config
	logger *zap.Logger
	rng    *rand.Rand
}

// State exposes the live game state for observers and tests. Callers must
// treat it as read-only; only the engine itself mutates it.
func (e *Engine) State() *domain.GameState {
	return e.state
}

// Run drives the game to completion, returning the final state. It returns
// early with an error if ctx is done, if the state is in a phase it cannot
// run, or if an invariant check fails (spec §7: "an engine bug, not a bad
// agent decision").
func (e *Engine) Run(ctx context.Context) (*domain.GameState, error) {
	for !e.state.Finished() {
		if err := ctx.Err(); err != nil {
			return e.state, err
		}

		switch e.state.Phase {
		case domain.PhaseNight:
			e.runNight(ctx)
		case domain.PhaseDay:
			e.runDay(ctx)
		case domain.PhaseDiscussion:
			e.runDiscussion(ctx)
		case domain.PhaseVoting:
			e.runVoting(ctx)
		default:
			return e.state, fmt.Errorf("engine: game stalled in unexpected phase %s", e.state.Phase)
		}

		if err := domain.CheckInvariants(e.state); err != nil {
			e.logger.Error("invariant violation, aborting game", zap.Error(err))
			return e.state, fmt.Errorf("aborted: invariant_violation: %w", err)
		}

		if e.state.Finished() {
			break
		}

		if e.state.Phase == domain.PhaseVoting && e.cfg.Game.MaxRounds > 0 && e.state.Round >= e.cfg.Game.MaxRounds {
			e.logger.Info("max rounds reached, forcing a draw",
				zap.Int("round", e.state.Round), zap.Int("max_rounds", e.cfg.Game.MaxRounds))
			e.state.SetWinner(domain.WinnerDraw)
			break
		}

		e.state.AdvancePhase()
		for _, seat := range e.seats {
			seat.SetRound(e.state.Round)
		}
	}

	e.logger.Info("game finished",
		zap.String("winner", e.state.Winner.String()), zap.Int("rounds", e.state.Round))
	return e.state, nil
}

// checkVictory evaluates C7 and, if the game is over, records the winner.
// Returns true if the game just ended.
func (e *Engine) checkVictory() bool {
	result := victory.Evaluate(e.state)
	if result.Over {
		e.state.SetWinner(result.Winner)
		e.logger.Info("victory condition met",
			zap.String("winner", result.Winner.String()), zap.String("reason", result.Reason))
		return true
	}
	return false
}

// broadcastDeath pushes an ObserveDeath signal to every seat but the victim's
// own (spec §4: "side-effect free signals pushed to the agent's memory").
func (e *Engine) broadcastDeath(victimID int, cause string) {
	for id, seat := range e.seats {
		if id == victimID {
			continue
		}
		seat.ObserveDeath(victimID, cause)
	}
}
