package agent

import (
	"context"
	"math/rand"
	"testing"

	"mafia-engine/internal/domain"
	"mafia-engine/internal/memory"
)

func newTestSeat(id int, role domain.Role) *Seat {
	identity := Identity{ID: id, Name: "Test", Role: role}
	return NewSeat(identity, NewHeuristicPolicy(rand.New(rand.NewSource(1))), nil)
}

func TestNewSeat_RolePrivateStateWiring(t *testing.T) {
	tests := []struct {
		role      domain.Role
		wantWW    bool
		wantSeer  bool
		wantWitch bool
	}{
		{domain.RoleWerewolf, true, false, false},
		{domain.RoleSeer, false, true, false},
		{domain.RoleWitch, false, false, true},
		{domain.RoleVillager, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			s := newTestSeat(1, tt.role)
			if (s.Werewolf != nil) != tt.wantWW {
				t.Errorf("Werewolf state: got %v, want %v", s.Werewolf != nil, tt.wantWW)
			}
			if (s.Seer != nil) != tt.wantSeer {
				t.Errorf("Seer state: got %v, want %v", s.Seer != nil, tt.wantSeer)
			}
			if (s.Witch != nil) != tt.wantWitch {
				t.Errorf("Witch state: got %v, want %v", s.Witch != nil, tt.wantWitch)
			}
		})
	}
}

func TestInitTeammates_SetOnceOnly(t *testing.T) {
	s := newTestSeat(1, domain.RoleWerewolf)
	s.InitTeammates([]int{2, 3})
	s.InitTeammates([]int{4, 5}) // should be ignored

	if len(s.Werewolf.Teammates) != 2 || s.Werewolf.Teammates[0] != 2 {
		t.Errorf("teammates should stay as first set: got %v", s.Werewolf.Teammates)
	}
}

func TestRecordVision_ImmutableOnceSet(t *testing.T) {
	s := newTestSeat(1, domain.RoleSeer)
	s.RecordVision(2, domain.FactionWerewolf)
	s.RecordVision(2, domain.FactionVillager) // should be ignored

	if s.Seer.VisionResults[2] != domain.FactionWerewolf {
		t.Error("vision result should not change once recorded")
	}
}

func TestUseAntidote_OnceOnly(t *testing.T) {
	s := newTestSeat(1, domain.RoleWitch)

	if !s.UseAntidote(5) {
		t.Fatal("first UseAntidote should succeed")
	}
	if s.Witch.HasAntidote {
		t.Error("HasAntidote should flip false after use")
	}
	if s.UseAntidote(6) {
		t.Error("second UseAntidote should fail (I4/I5)")
	}
	if len(s.Witch.Saved) != 1 || s.Witch.Saved[0] != 5 {
		t.Errorf("saved list should contain only the first target, got %v", s.Witch.Saved)
	}
}

func TestUsePoison_OnceOnly(t *testing.T) {
	s := newTestSeat(1, domain.RoleWitch)

	if !s.UsePoison(5) {
		t.Fatal("first UsePoison should succeed")
	}
	if s.UsePoison(6) {
		t.Error("second UsePoison should fail (I4/I5)")
	}
}

func TestHeuristicPolicy_VoteReturnsCandidate(t *testing.T) {
	s := newTestSeat(1, domain.RoleVillager)
	candidates := []int{2, 3, 4}

	vote, err := s.Vote(context.Background(), domain.Snapshot{}, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, c := range candidates {
		if c == vote {
			found = true
		}
	}
	if !found {
		t.Errorf("vote %d not among candidates %v", vote, candidates)
	}
}

func TestHeuristicPolicy_VoteNoCandidatesErrors(t *testing.T) {
	s := newTestSeat(1, domain.RoleVillager)
	if _, err := s.Vote(context.Background(), domain.Snapshot{}, nil); err == nil {
		t.Error("expected error when there are no candidates")
	}
}

func TestHeuristicPolicy_WerewolfNightActionKills(t *testing.T) {
	s := newTestSeat(1, domain.RoleWerewolf)
	snap := domain.Snapshot{Players: []domain.PlayerView{
		{ID: 1, Alive: true}, {ID: 2, Alive: true}, {ID: 3, Alive: true},
	}}

	result, err := s.NightAction(context.Background(), snap, NightExtras{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != ActionKill || !result.Success {
		t.Errorf("got %+v, expected a successful kill", result)
	}
	if result.Target == 1 {
		t.Error("werewolf should never target itself")
	}
}

func TestHeuristicPolicy_WitchSavesOnlyWithAntidote(t *testing.T) {
	s := newTestSeat(1, domain.RoleWitch)
	extras := NightExtras{TonightVictimID: 7, HasTonightVictim: true}

	result, err := s.NightAction(context.Background(), domain.Snapshot{}, extras)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Kind != ActionSave || result.Target != 7 {
		t.Errorf("got %+v, expected save on 7", result)
	}

	s.UseAntidote(7)
	result2, _ := s.NightAction(context.Background(), domain.Snapshot{}, extras)
	if result2.Kind != ActionNoAction {
		t.Errorf("got %+v, expected no_action once antidote is used", result2)
	}
}

func TestMemory_ObserveDeathAppendsToObservations(t *testing.T) {
	s := newTestSeat(1, domain.RoleVillager)
	s.SetRound(3)
	s.ObserveDeath(2, "werewolf_kill")

	entries := s.Memory().All(memory.StreamObservations)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, expected 1", len(entries))
	}
	payload, ok := entries[0].Payload.(memory.ObservationPayload)
	if !ok {
		t.Fatal("payload should be an ObservationPayload")
	}
	if payload.PlayerID != 2 || payload.Cause != "werewolf_kill" {
		t.Errorf("got %+v, expected PlayerID=2 Cause=werewolf_kill", payload)
	}
	if entries[0].Round != 3 {
		t.Errorf("round tag: got %d, expected 3", entries[0].Round)
	}
}
