// Package memory implements the per-agent Memory Store (C2): append-only
// typed streams with a hard per-stream cap and round tags. Every entry
// carries {round, timestamp, payload} (spec §3). Streams drop their oldest
// entry on overflow — a ring-buffer discipline, never an unbounded slice.
package memory

import "time"

// Stream names the six typed memory streams every agent owns.
type Stream string

const (
	StreamSpeeches         Stream = "speeches"
	StreamVotes            Stream = "votes"
	StreamNightActions     Stream = "night_actions"
	StreamObservations     Stream = "observations"
	StreamNightDiscussions Stream = "night_discussions"
	StreamNightThinking    Stream = "night_thinking"
	// StreamSelfReflection supplements the six spec-named streams with the
	// day-end reflection log described in original_source/day_end_system.py
	// (conduct_end_of_day_thinking), which the distilled spec folds into C8
	// without naming a storage stream for it.
	StreamSelfReflection Stream = "self_reflection"
)

// Entry is one record in a memory stream.
type Entry struct {
	Round     int
	Timestamp time.Time
	Payload   any
}

// Store holds one agent's private memory streams. It is owned exclusively by
// the agent it belongs to; external packages only read it through the
// agent's explicit getters (spec §3 Ownership).
type Store struct {
	caps    map[Stream]int
	entries map[Stream][]Entry
}

// DefaultCap is used for any stream not given an explicit cap in NewStore.
const DefaultCap = 50

// NewStore creates a Store with the given per-stream caps. Streams omitted
// from caps fall back to DefaultCap.
func NewStore(caps map[Stream]int) *Store {
	return &Store{
		caps:    caps,
		entries: make(map[Stream][]Entry),
	}
}

func (s *Store) capFor(stream Stream) int {
	if c, ok := s.caps[stream]; ok && c > 0 {
		return c
	}
	return DefaultCap
}

// Append adds an entry to the stream, evicting the oldest entry if the
// stream is at capacity.
func (s *Store) Append(stream Stream, round int, payload any) Entry {
	entry := Entry{Round: round, Timestamp: time.Now(), Payload: payload}

	buf := s.entries[stream]
	buf = append(buf, entry)
	if cap := s.capFor(stream); len(buf) > cap {
		buf = buf[len(buf)-cap:]
	}
	s.entries[stream] = buf
	return entry
}

// All returns a copy of every entry currently held in stream, oldest first.
func (s *Store) All(stream Stream) []Entry {
	buf := s.entries[stream]
	out := make([]Entry, len(buf))
	copy(out, buf)
	return out
}

// Recent returns the last n entries in stream (fewer if the stream holds less).
func (s *Store) Recent(stream Stream, n int) []Entry {
	buf := s.entries[stream]
	if n >= len(buf) {
		return s.All(stream)
	}
	out := make([]Entry, n)
	copy(out, buf[len(buf)-n:])
	return out
}

// FromRound returns every entry in stream tagged with the given round.
func (s *Store) FromRound(stream Stream, round int) []Entry {
	var out []Entry
	for _, e := range s.entries[stream] {
		if e.Round == round {
			out = append(out, e)
		}
	}
	return out
}

// Len reports how many entries stream currently holds.
func (s *Store) Len(stream Stream) int {
	return len(s.entries[stream])
}

// Prune drops every entry older than memoryRetentionRounds relative to
// currentRound (spec §6 memory_settings.memory_retention_rounds), across all
// streams. A non-positive retention disables pruning.
func (s *Store) Prune(currentRound, memoryRetentionRounds int) {
	if memoryRetentionRounds <= 0 {
		return
	}
	cutoff := currentRound - memoryRetentionRounds
	for stream, buf := range s.entries {
		kept := buf[:0:0]
		for _, e := range buf {
			if e.Round > cutoff {
				kept = append(kept, e)
			}
		}
		s.entries[stream] = kept
	}
}
