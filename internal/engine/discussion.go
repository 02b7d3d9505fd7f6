package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mafia-engine/internal/domain"
	"mafia-engine/internal/memory"
)

// runDiscussion runs the day discussion in fixed ascending-ID order (spec
// §4.9 step 3). Each speaker's memory already holds every earlier speaker's
// speech by the time they're asked to talk, because mirroring happens
// immediately after each Speak call rather than as a separate injection pass.
func (e *Engine) runDiscussion(ctx context.Context) {
	alive := e.state.GetAlivePlayers()

	for _, p := range alive {
		seat := e.seats[p.ID]
		snap := e.state.Project(p.ID, e.cfg.UI.RevealRolesOnDeath)

		text, err := seat.Speak(ctx, snap)
		if err != nil || text == "" {
			e.logger.Warn("speak failed, using fallback", zap.Int("player_id", p.ID), zap.Error(err))
			text = fmt.Sprintf("%s has nothing to add.", p.Name)
		}

		e.state.RecordSpeech(p.ID, "discussion", text)
		e.mirrorSpeech(alive, p.ID, "discussion", text)
	}
}

// mirrorSpeech appends a speech to every live seat's memory except the
// speaker's own (spec §4.9: "mirror into all other live seats' speeches
// memory").
func (e *Engine) mirrorSpeech(alive []*domain.Player, speakerID int, speechContext string, text string) {
	for _, other := range alive {
		if other.ID == speakerID {
			continue
		}
		e.seats[other.ID].Memory().Append(memory.StreamSpeeches, e.state.Round, memory.SpeechPayload{
			SpeakerID: speakerID,
			Context:   speechContext,
			Text:      text,
		})
	}
}
