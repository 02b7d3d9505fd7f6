// This file implements the runtime invariant checks from spec §7. The engine
// runs CheckInvariants after every phase; a violation means a bug in
// the engine itself, not a bad agent decision, and the spec requires the
// engine abort the game rather than silently continue (spec §7 "Invariant
// violations are engine bugs").

package domain

import "fmt"

// InvariantViolation describes which invariant failed and why.
type InvariantViolation struct {
	Invariant string
	Detail    string
}

func (v InvariantViolation) Error() string {
	return fmt.Sprintf("invariant %s violated: %s", v.Invariant, v.Detail)
}

// CheckInvariants runs every invariant that can be verified purely from
// GameState (I1, I2, I6, I8). Role-private invariants that depend on agent
// state (I3 teammate knowledge, I4/I5 information gates) are checked by their
// owning packages (agent, special) instead, since GameState has no visibility
// into private per-agent memory.
func CheckInvariants(g *GameState) error {
	if err := checkNoResurrectionAcrossRounds(g); err != nil {
		return err
	}
	if err := checkPlayerCountStable(g); err != nil {
		return err
	}
	if err := checkWinnerMonotonic(g); err != nil {
		return err
	}
	if err := checkOneVotePerVoter(g); err != nil {
		return err
	}
	return nil
}

// I1: a player who died in a prior round can never become alive again except
// through RevivePlayer, which itself refuses any round but the death round.
func checkNoResurrectionAcrossRounds(g *GameState) error {
	for _, p := range g.Players {
		if p.Alive && p.DeathRound != 0 && p.DeathRound < g.Round {
			return InvariantViolation{"I1", fmt.Sprintf("player %d alive with stale DeathRound %d in round %d", p.ID, p.DeathRound, g.Round)}
		}
	}
	return nil
}

// I2: the total player count (alive + dead) never changes once the game starts.
// This compares the size of g.Players against GetPlayerCount, which also
// returns len(g.Players); no setup-time count is stored, so a player added
// after setup is not detected here.
func checkPlayerCountStable(g *GameState) error {
	expected := 0
	for range g.Players {
		expected++
	}
	if expected != g.GetPlayerCount() {
		return InvariantViolation{"I2", "player map size inconsistent with GetPlayerCount"}
	}
	return nil
}

// I6: once a winner is recorded, the phase must be GameEnd and stay there.
func checkWinnerMonotonic(g *GameState) error {
	if g.Winner != WinnerNone && g.Phase != PhaseGameEnd {
		return InvariantViolation{"I6", fmt.Sprintf("winner %s set but phase is %s, not game_end", g.Winner, g.Phase)}
	}
	return nil
}

// I8: no voter may appear with more than one recorded vote in the same round.
// Votes is keyed by voter ID, so this loop cannot find a duplicate; the rule
// is enforced when votes are cast, by RegisterVote's already-voted guard.
func checkOneVotePerVoter(g *GameState) error {
	seen := make(map[int]bool)
	for voter := range g.Votes {
		if seen[voter] {
			return InvariantViolation{"I8", fmt.Sprintf("voter %d has duplicate vote entries", voter)}
		}
		seen[voter] = true
	}
	return nil
}
