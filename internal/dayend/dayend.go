// Package dayend implements the Day-End System (C8): the exiled player's
// last words broadcast to every survivor, and the concurrent per-player
// end-of-day reflection pass. Grounded on
// original_source/src/day_end_system.py's handle_exile_last_words and
// conduct_end_of_day_thinking.
package dayend

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mafia-engine/internal/agent"
	"mafia-engine/internal/domain"
	"mafia-engine/internal/memory"
)

// LastWordsSpeaker is the minimal capability needed from the exiled seat.
type LastWordsSpeaker interface {
	Identity() agent.Identity
	Speak(ctx context.Context, snap domain.Snapshot) (string, error)
}

// Observer is any seat that can record a broadcast speech in its own memory.
type Observer interface {
	Identity() agent.Identity
	Memory() *memory.Store
}

// ExileLastWords asks the exiled seat for final words and appends them to
// every surviving observer's speeches stream tagged context=exile_last_words.
// A failure to produce last words (policy error, e.g. the model backend is
// down) is not fatal — the exile proceeds with no last words recorded,
// mirroring the Python original's try/except fallback.
func ExileLastWords(ctx context.Context, exiled LastWordsSpeaker, snap domain.Snapshot, round int, survivors []Observer) (string, bool) {
	text, err := exiled.Speak(ctx, snap)
	if err != nil || text == "" {
		return "", false
	}

	payload := memory.SpeechPayload{
		SpeakerID: exiled.Identity().ID,
		Context:   "exile_last_words",
		Text:      text,
	}
	for _, s := range survivors {
		s.Memory().Append(memory.StreamSpeeches, round, payload)
	}
	return text, true
}

// Reflector is the capability a seat exposes for its own end-of-day thinking.
type Reflector interface {
	Identity() agent.Identity
	Memory() *memory.Store
	Reflect(ctx context.Context, snap domain.Snapshot) (string, error)
}

// ReflectionResult is one player's end-of-day thinking outcome.
type ReflectionResult struct {
	PlayerID int
	Text     string
	Failed   bool
}

// ConductReflections runs every live player's reflection concurrently via
// errgroup (C8's one other concurrent-fan-out point besides voting).
// Individual failures don't abort the pass — a failed reflection is recorded
// as such rather than propagated, matching conduct_end_of_day_thinking's
// asyncio.gather(..., return_exceptions=True) semantics. The caller should
// skip this entirely once the game has ended (domain.GameState.Finished()).
func ConductReflections(ctx context.Context, reflectors []Reflector, snap domain.Snapshot, round int) []ReflectionResult {
	results := make([]ReflectionResult, len(reflectors))
	g, gctx := errgroup.WithContext(ctx)

	for i, r := range reflectors {
		i, r := i, r
		g.Go(func() error {
			text, err := r.Reflect(gctx, snap)
			if err != nil {
				results[i] = ReflectionResult{PlayerID: r.Identity().ID, Failed: true, Text: "no reflection"}
				return nil
			}
			results[i] = ReflectionResult{PlayerID: r.Identity().ID, Text: text}
			r.Memory().Append(memory.StreamSelfReflection, round, memory.SelfReflectionPayload{
				Round:       round,
				TriggerKind: "day_end",
				Text:        text,
			})
			return nil
		})
	}
	_ = g.Wait() // errors are captured per-result above, never propagated

	return results
}
