// This file contains the append-only event log (spec §4.1 "narratable game
// history"). Every phase transition, death, vote, and game-ending moment is
// recorded here so the engine, observers, and tests can replay exactly what
// happened without re-deriving it from current state.

package domain

import "github.com/google/uuid"

// EventKind identifies the kind of entry recorded in the event log.
type EventKind string

const (
	EventPhaseChange   EventKind = "phase_change"
	EventDeath         EventKind = "death"
	EventVote          EventKind = "vote"
	EventVoteExecution EventKind = "vote_execution"
	EventTieBreak      EventKind = "tie_break"
	EventNightAction   EventKind = "night_action"
	EventSpeech        EventKind = "speech"
	EventGameEnd       EventKind = "game_end"
)

// EventLogEntry is one immutable record in the game's history.
type EventLogEntry struct {
	ID    string
	Round int
	Phase Phase
	Kind  EventKind
	Data  map[string]any
}

// RecordEvent appends a new entry to the event log. ID generation uses
// google/uuid so entries remain globally unique across games and restarts.
func (g *GameState) RecordEvent(kind EventKind, data map[string]any) EventLogEntry {
	entry := EventLogEntry{
		ID:    uuid.NewString(),
		Round: g.Round,
		Phase: g.Phase,
		Kind:  kind,
		Data:  data,
	}
	g.EventLog = append(g.EventLog, entry)
	return entry
}

// RecordSpeech appends a speech entry (day discussion or werewolf dialogue).
func (g *GameState) RecordSpeech(playerID int, context, text string) EventLogEntry {
	return g.RecordEvent(EventSpeech, map[string]any{
		"player_id": playerID,
		"context":   context,
		"text":      text,
	})
}

// RecordNightAction appends a private night-action entry. Witch/seer results
// are recorded here too; callers are responsible for only exposing them
// through role-hidden projections that respect the information gates (I4, I5).
func (g *GameState) RecordNightAction(role Role, actorID, targetID int, outcome string) EventLogEntry {
	return g.RecordEvent(EventNightAction, map[string]any{
		"role":      role.String(),
		"actor_id":  actorID,
		"target_id": targetID,
		"outcome":   outcome,
	})
}

// RecordTieBreak appends an entry describing how a voting tie was resolved.
func (g *GameState) RecordTieBreak(tiedIDs []int, resolution string, winnerID int) EventLogEntry {
	return g.RecordEvent(EventTieBreak, map[string]any{
		"tied_ids":   tiedIDs,
		"resolution": resolution,
		"winner_id":  winnerID,
	})
}

// RecordVoteExecution appends an entry for the final elimination decision of
// a voting phase (winner found, a tie with no resolution, or a skip).
func (g *GameState) RecordVoteExecution(eliminatedID int, skipped bool) EventLogEntry {
	return g.RecordEvent(EventVoteExecution, map[string]any{
		"eliminated_id": eliminatedID,
		"skipped":       skipped,
	})
}

// EventsSince returns every event recorded from the given index onward. Used
// by observers/tests that want to watch the log incrementally.
func (g *GameState) EventsSince(index int) []EventLogEntry {
	if index < 0 || index >= len(g.EventLog) {
		return nil
	}
	return g.EventLog[index:]
}
