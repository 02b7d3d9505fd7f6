package agent

import (
	"context"

	"mafia-engine/internal/domain"
	"mafia-engine/internal/memory"
)

// WerewolfState is private role state for a werewolf seat (spec §3).
type WerewolfState struct {
	// Teammates is the set of every other werewolf's ID, fixed at setup and
	// read-only thereafter (I3) — set once by C9, never recomputed mid-game.
	Teammates []int
}

// SeerState is private role state for a seer seat.
type SeerState struct {
	// VisionResults maps player ID -> faction revealed by a past divination.
	// Once recorded, an entry is immutable (spec §3).
	VisionResults map[int]domain.Faction
}

// WitchState is private role state for a witch seat.
type WitchState struct {
	HasAntidote bool // true until used; flips to false exactly once (I4)
	HasPoison   bool // true until used; flips to false exactly once (I4)
	Saved       []int
	Poisoned    []int
}

// Seat is the concrete Agent implementation: a frozen Identity, a private
// memory store, role-private state, and a pluggable Policy that actually
// makes decisions.
type Seat struct {
	identity     Identity
	store        *memory.Store
	policy       Policy
	currentRound int

	Werewolf *WerewolfState
	Seer     *SeerState
	Witch    *WitchState
}

// NewSeat builds a seat for the given identity, wiring up whichever
// role-private state block applies.
func NewSeat(id Identity, policy Policy, streamCaps map[memory.Stream]int) *Seat {
	s := &Seat{
		identity: id,
		store:    memory.NewStore(streamCaps),
		policy:   policy,
	}

	switch id.Role {
	case domain.RoleWerewolf:
		s.Werewolf = &WerewolfState{}
	case domain.RoleSeer:
		s.Seer = &SeerState{VisionResults: make(map[int]domain.Faction)}
	case domain.RoleWitch:
		s.Witch = &WitchState{HasAntidote: true, HasPoison: true}
	}

	return s
}

func (s *Seat) Identity() Identity {
	return s.identity
}

func (s *Seat) Memory() *memory.Store {
	return s.store
}

// InitTeammates is called once by the engine at game setup (spec §3:
// "Werewolf teammates is set once by C9 at initialization and thereafter
// read-only"); calling it again is a no-op to protect I3.
func (s *Seat) InitTeammates(teammates []int) {
	if s.Werewolf == nil || s.Werewolf.Teammates != nil {
		return
	}
	s.Werewolf.Teammates = teammates
}

// RecordVision records a seer's divination result. Once a player's faction is
// recorded it never changes (spec §3: "once recorded, immutable").
func (s *Seat) RecordVision(targetID int, faction domain.Faction) {
	if s.Seer == nil {
		return
	}
	if _, exists := s.Seer.VisionResults[targetID]; exists {
		return
	}
	s.Seer.VisionResults[targetID] = faction
}

// UseAntidote flips HasAntidote false and records the saved player. Returns
// false if the antidote was already used (I4/I5).
func (s *Seat) UseAntidote(targetID int) bool {
	if s.Witch == nil || !s.Witch.HasAntidote {
		return false
	}
	s.Witch.HasAntidote = false
	s.Witch.Saved = append(s.Witch.Saved, targetID)
	return true
}

// UsePoison flips HasPoison false and records the poisoned player. Returns
// false if the poison was already used (I4/I5).
func (s *Seat) UsePoison(targetID int) bool {
	if s.Witch == nil || !s.Witch.HasPoison {
		return false
	}
	s.Witch.HasPoison = false
	s.Witch.Poisoned = append(s.Witch.Poisoned, targetID)
	return true
}

func (s *Seat) Speak(ctx context.Context, snap domain.Snapshot) (string, error) {
	return s.policy.Speak(ctx, s, snap)
}

func (s *Seat) Vote(ctx context.Context, snap domain.Snapshot, candidates []int) (int, error) {
	return s.policy.Vote(ctx, s, snap, candidates)
}

func (s *Seat) NightAction(ctx context.Context, snap domain.Snapshot, extras NightExtras) (ActionResult, error) {
	return s.policy.NightAction(ctx, s, snap, extras)
}

func (s *Seat) Reflect(ctx context.Context, snap domain.Snapshot) (string, error) {
	return s.policy.Reflect(ctx, s, snap)
}

// SetRound records the current round so subsequent memory writes get an
// accurate round tag; called by the engine on every phase transition.
func (s *Seat) SetRound(round int) {
	s.currentRound = round
}

func (s *Seat) ObserveDeath(playerID int, cause string) {
	s.store.Append(memory.StreamObservations, s.currentRound, memory.ObservationPayload{
		Kind: "death", PlayerID: playerID, Cause: cause,
	})
}

func (s *Seat) ObserveVote(voterID, targetID int) {
	s.store.Append(memory.StreamObservations, s.currentRound, memory.ObservationPayload{
		Kind: "vote", Voter: voterID, Target: targetID,
	})
}

var _ Agent = (*Seat)(nil)
