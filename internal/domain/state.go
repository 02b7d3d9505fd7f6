// This file contains the canonical mutable game state (State Store, C1) and
// its supporting methods. GameState is the single owner of player liveness,
// the event log, and the phase/round counters (spec §3 Ownership).

package domain

import (
	"fmt"
	"math/rand"

	"github.com/xyproto/randomstring"
)

// Winner identifies which faction ended the game, or that the game is still running.
type Winner int

const (
	WinnerNone Winner = iota
	WinnerWerewolves
	WinnerVillagers
	WinnerDraw
)

func (w Winner) String() string {
	switch w {
	case WinnerNone:
		return "none"
	case WinnerWerewolves:
		return "werewolves"
	case WinnerVillagers:
		return "villagers"
	case WinnerDraw:
		return "draw"
	default:
		return "invalid"
	}
}

// GameState is the live, authoritative state of a single game (C1).
type GameState struct {
	ID     string
	Round  int
	Phase  Phase
	Winner Winner

	// Players maps player ID -> player. '*Player' is used so callers never
	// copy the struct by accident.
	Players map[int]*Player

	// Votes maps voterID -> targetID for the in-progress voting phase.
	Votes map[int]int

	EventLog []EventLogEntry
}

// NewGameState initializes a new game in the Preparation phase.
func NewGameState(idPrefix string) *GameState {
	return &GameState{
		ID:      CreateGameID(idPrefix),
		Round:   0,
		Phase:   PhasePreparation,
		Winner:  WinnerNone,
		Players: make(map[int]*Player),
		Votes:   make(map[int]int),
	}
}

// CreateGameID creates a random game ID with the given prefix.
// Format: {prefix}-{random-string}, e.g. "game-a3k9m".
func CreateGameID(prefix string) string {
	const idLength = 5
	return fmt.Sprintf("%s-%s", prefix, randomstring.String(idLength))
}

// --- reading game state --- //

// GetPlayer retrieves a player by ID. Returns nil if the player doesn't exist.
func (g *GameState) GetPlayer(id int) *Player {
	return g.Players[id]
}

// GetAlivePlayers returns all currently-alive players, ordered by ascending ID
// (spec §4.9 discussion order; callers needing random order shuffle a copy).
func (g *GameState) GetAlivePlayers() []*Player {
	var alive []*Player
	for _, p := range g.Players {
		if p.Alive {
			alive = append(alive, p)
		}
	}
	sortPlayersByID(alive)
	return alive
}

// GetDeadPlayers returns all dead players, ordered by ascending ID.
func (g *GameState) GetDeadPlayers() []*Player {
	var dead []*Player
	for _, p := range g.Players {
		if !p.Alive {
			dead = append(dead, p)
		}
	}
	sortPlayersByID(dead)
	return dead
}

func sortPlayersByID(players []*Player) {
	for i := 1; i < len(players); i++ {
		for j := i; j > 0 && players[j].ID < players[j-1].ID; j-- {
			players[j], players[j-1] = players[j-1], players[j]
		}
	}
}

// GetPlayerCount returns the total number of players in the game (I2).
func (g *GameState) GetPlayerCount() int {
	return len(g.Players)
}

// FactionCounts is the faction census returned by GameState.FactionCounts.
type FactionCounts struct {
	VillagersPlain  int // RoleVillager only
	VillagerFaction int // Villager ∪ Seer ∪ Witch
	Werewolves      int
	TotalAlive      int
}

// FactionCounts tallies alive players by faction (spec §4.1).
func (g *GameState) FactionCounts() FactionCounts {
	var fc FactionCounts
	for _, p := range g.Players {
		if !p.Alive {
			continue
		}
		fc.TotalAlive++
		switch {
		case p.Role == RoleVillager:
			fc.VillagersPlain++
			fc.VillagerFaction++
		case p.Role.IsVillagerFaction():
			fc.VillagerFaction++
		case p.Role.IsWerewolfFaction():
			fc.Werewolves++
		}
	}
	return fc
}

// --- mutating game state --- //

// AddPlayer adds a player to the game during setup. Returns nil if a player
// with the same ID already exists.
func (g *GameState) AddPlayer(id int, name string, role Role) *Player {
	if _, exists := g.Players[id]; exists {
		return nil
	}
	p := NewPlayer(id, name)
	p.Role = role
	g.Players[id] = p
	return p
}

// AssignRoles shuffles live players and assigns roles per the given
// distribution (map[Role]count). rng is injected so tests stay reproducible
// (design note: inject a seedable RNG into every component that needs one).
func (g *GameState) AssignRoles(distribution map[Role]int, rng *rand.Rand) {
	ids := make([]int, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	sortInts(ids)
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	// fixed role iteration order so a fixed rng gives fixed assignments
	roles := []Role{RoleWerewolf, RoleSeer, RoleWitch, RoleVillager}
	idx := 0
	for _, role := range roles {
		for n := 0; n < distribution[role]; n++ {
			if idx >= len(ids) {
				return
			}
			g.Players[ids[idx]].Role = role
			idx++
		}
	}
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

// WerewolfTeammates returns the IDs of every other werewolf, dead or alive
// (I3: teammate knowledge is fixed at setup and never shrinks), self excluded.
func (g *GameState) WerewolfTeammates(id int) []int {
	var teammates []int
	for _, p := range g.Players {
		if p.ID != id && p.Role == RoleWerewolf {
			teammates = append(teammates, p.ID)
		}
	}
	sortInts(teammates)
	return teammates
}

// KillPlayer marks a player dead. Returns false (and does not mutate) if the
// player doesn't exist or is already dead (I1 rejects double-kills).
func (g *GameState) KillPlayer(id int, cause string) bool {
	p := g.Players[id]
	if p == nil || !p.Alive {
		return false
	}
	p.Alive = false
	p.DeathRound = g.Round
	p.DeathCause = cause
	g.RecordEvent(EventDeath, map[string]any{"player_id": id, "cause": cause, "round": g.Round})
	return true
}

// RevivePlayer undoes a kill, but only if the player died *this* round (used
// by the witch's antidote; spec §4.1 RevivePlayer).
func (g *GameState) RevivePlayer(id int) bool {
	p := g.Players[id]
	if p == nil || p.Alive || p.DeathRound != g.Round {
		return false
	}
	p.Alive = true
	p.DeathRound = 0
	p.DeathCause = ""
	return true
}

// AdvancePhase moves to the next phase in the fixed cycle, incrementing Round
// whenever entering Night (Preparation->Night->Day->Discussion->Voting->Night).
func (g *GameState) AdvancePhase() Phase {
	next := g.Phase.Next()
	if next == PhaseNight {
		g.Round++
	}
	g.Phase = next
	g.RecordEvent(EventPhaseChange, map[string]any{"phase": next.String(), "round": g.Round})
	return g.Phase
}

// RegisterVote records a day vote. Returns false if the voter is dead, the
// target isn't a live candidate, or the voter already voted (I8).
func (g *GameState) RegisterVote(voterID, targetID int, candidates []int) bool {
	voter := g.Players[voterID]
	if voter == nil || !voter.Alive {
		return false
	}
	if _, alreadyVoted := g.Votes[voterID]; alreadyVoted {
		return false
	}
	if !containsInt(candidates, targetID) {
		return false
	}
	target := g.Players[targetID]
	if target == nil || !target.Alive {
		return false
	}

	g.Votes[voterID] = targetID
	target.VotesReceived++
	g.RecordEvent(EventVote, map[string]any{"voter_id": voterID, "target_id": targetID})
	return true
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// ResetVotes clears the in-progress voting round (called between revote
// passes and at the start of each new Voting phase).
func (g *GameState) ResetVotes() {
	g.Votes = make(map[int]int)
}

// SetWinner sets the game's winner once (I6: once set, never overwritten).
// Returns false if a winner was already recorded.
func (g *GameState) SetWinner(w Winner) bool {
	if g.Winner != WinnerNone {
		return false
	}
	g.Winner = w
	g.Phase = PhaseGameEnd
	g.RecordEvent(EventGameEnd, map[string]any{"winner": w.String()})
	return true
}

// Finished reports whether a winner has been recorded (I6 short-circuit check).
func (g *GameState) Finished() bool {
	return g.Winner != WinnerNone
}
