package engine

import (
	"math/rand"
	"testing"

	"go.uber.org/zap/zaptest"

	"mafia-engine/internal/agent"
	"mafia-engine/internal/domain"
)

// TestRunWitchPhase_CanPoison drives runWitchPhase directly with a candidate
// whose recorded speeches are hedging and talkative enough to clear
// special.Decide's poison bar, proving the path is actually reachable and
// not just unit-tested in isolation with fabricated Suspicion literals.
func TestRunWitchPhase_CanPoison(t *testing.T) {
	state := domain.NewGameState("night-test")
	state.AddPlayer(1, "P1", domain.RoleWerewolf)
	state.AddPlayer(2, "P2", domain.RoleWitch)
	state.AddPlayer(3, "P3", domain.RoleVillager)
	state.AddPlayer(4, "P4", domain.RoleVillager)
	state.AdvancePhase() // Preparation -> Night, round 1

	rng := rand.New(rand.NewSource(1))
	seats := make(map[int]*agent.Seat, 4)
	for _, p := range state.GetAlivePlayers() {
		seats[p.ID] = agent.NewSeat(agent.Identity{ID: p.ID, Name: p.Name, Role: p.Role}, agent.NewHeuristicPolicy(rng), nil)
	}

	e := &Engine{state: state, seats: seats, logger: zaptest.NewLogger(t), rng: rng}

	for i := 0; i < 5; i++ {
		state.RecordSpeech(4, "discussion", "i think maybe not sure")
	}
	state.RecordSpeech(3, "discussion", "ok")

	_, poisoned := e.runWitchPhase(2, 0, e.allSpeeches())
	if poisoned != 4 {
		t.Fatalf("expected the witch to poison the hedging, talkative player 4, got poisoned=%d", poisoned)
	}

	witch := seats[2]
	if witch.Witch.HasPoison {
		t.Error("expected HasPoison to flip false once the poison is used")
	}
}
