package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mafia-engine/internal/dayend"
	"mafia-engine/internal/domain"
	"mafia-engine/internal/voting"
)

// runVoting runs the Voting phase: vote collection (C6), the tie/revote/skip
// state machine, exile, and — if the game is still running — the exiled
// player's last words and the end-of-day reflection pass (C8).
func (e *Engine) runVoting(ctx context.Context) {
	alive := e.state.GetAlivePlayers()
	for _, p := range alive {
		p.VotesReceived = 0
	}

	candidateIDs := make([]int, len(alive))
	voters := make([]voting.Voter, len(alive))
	for i, p := range alive {
		snap := e.state.Project(p.ID, e.cfg.UI.RevealRolesOnDeath)
		candidateIDs[i] = p.ID
		voters[i] = voting.SeatVoter{Seat: e.seats[p.ID], Snap: snap}
	}

	timeout := time.Duration(e.cfg.VoteTimeoutSeconds) * time.Second
	outcome := voting.ConductVote(ctx, voters, candidateIDs, false, timeout, e.rng)
	e.recordVoteOutcome(outcome, candidateIDs)

	if outcome.Action == voting.ActionRevoteRequired {
		e.runTieDefence(ctx, alive, outcome.TiedIDs)
		outcome = voting.ConductVote(ctx, voters, outcome.TiedIDs, true, timeout, e.rng)
		e.recordVoteOutcome(outcome, outcome.TiedIDs)
	}

	var exiledID int
	if outcome.Action == voting.ActionElimination {
		exiledID = outcome.TargetID
		if e.state.KillPlayer(exiledID, "exile") {
			e.broadcastDeath(exiledID, "exile")
		}
	}

	if e.checkVictory() {
		return
	}

	e.runDayEnd(ctx, exiledID)
}

// runTieDefence re-invokes Speak for the tied candidates only, tagged
// context=tie_defence, ahead of the revote (spec §4.6 step 4).
func (e *Engine) runTieDefence(ctx context.Context, alive []*domain.Player, tiedIDs []int) {
	for _, id := range tiedIDs {
		seat := e.seats[id]
		snap := e.state.Project(id, e.cfg.UI.RevealRolesOnDeath)

		text, err := seat.Speak(ctx, snap)
		if err != nil || text == "" {
			e.logger.Warn("tie defence speak failed, using fallback", zap.Int("player_id", id), zap.Error(err))
			text = fmt.Sprintf("%s offers no defence.", seat.Identity().Name)
		}

		e.state.RecordSpeech(id, "tie_defence", text)
		e.mirrorSpeech(alive, id, "tie_defence", text)
	}
}

func (e *Engine) recordVoteOutcome(outcome voting.Outcome, candidates []int) {
	e.state.ResetVotes()
	for _, b := range outcome.Ballots {
		e.state.RegisterVote(b.VoterID, b.TargetID, candidates)
		if b.Fallback {
			e.logger.Warn("vote fallback used", zap.Int("voter_id", b.VoterID), zap.Int("target_id", b.TargetID))
		}
	}

	switch outcome.Action {
	case voting.ActionElimination:
		e.state.RecordVoteExecution(outcome.TargetID, false)
	case voting.ActionRevoteRequired:
		e.state.RecordTieBreak(outcome.TiedIDs, "revote_required", 0)
	case voting.ActionSkipElimination:
		e.state.RecordVoteExecution(0, true)
	}
}

// runDayEnd runs C8: the exiled player's last words (if anyone was exiled)
// and every living player's end-of-day reflection.
func (e *Engine) runDayEnd(ctx context.Context, exiledID int) {
	survivors := e.state.GetAlivePlayers()

	if exiledID != 0 {
		observers := make([]dayend.Observer, 0, len(survivors))
		for _, p := range survivors {
			observers = append(observers, e.seats[p.ID])
		}
		snap := e.state.Project(exiledID, e.cfg.UI.RevealRolesOnDeath)
		if _, ok := dayend.ExileLastWords(ctx, e.seats[exiledID], snap, e.state.Round, observers); !ok {
			e.logger.Warn("exiled player produced no last words", zap.Int("player_id", exiledID))
		}
	}

	if len(survivors) == 0 {
		return
	}

	reflectors := make([]dayend.Reflector, 0, len(survivors))
	for _, p := range survivors {
		reflectors = append(reflectors, e.seats[p.ID])
	}
	results := dayend.ConductReflections(ctx, reflectors, e.state.ProjectPublic(e.cfg.UI.RevealRolesOnDeath), e.state.Round)
	for _, r := range results {
		if r.Failed {
			e.logger.Warn("reflection failed", zap.Int("player_id", r.PlayerID))
		}
	}
}
