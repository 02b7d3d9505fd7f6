package engine

import (
	"context"

	"go.uber.org/zap"
)

// runDay announces the outcome of the just-finished Night phase (spec §4.9
// step 2) and prunes every living seat's memory streams down to
// memory_retention_rounds (spec §6 memory_settings.memory_retention_rounds).
// There is otherwise no agent interaction here — C2-C8 have nothing left to
// do until Discussion begins.
func (e *Engine) runDay(ctx context.Context) {
	for _, p := range e.state.GetAlivePlayers() {
		e.seats[p.ID].Memory().Prune(e.state.Round, e.cfg.Memory.MemoryRetentionRounds)
	}

	var deadThisRound []int
	for _, p := range e.state.GetDeadPlayers() {
		if p.DeathRound == e.state.Round {
			deadThisRound = append(deadThisRound, p.ID)
		}
	}

	if len(deadThisRound) == 0 {
		e.logger.Info("peaceful night", zap.Int("round", e.state.Round))
		return
	}

	for _, id := range deadThisRound {
		p := e.state.GetPlayer(id)
		e.logger.Info("player died overnight",
			zap.Int("round", e.state.Round), zap.Int("player_id", id), zap.String("cause", p.DeathCause))
	}
}
