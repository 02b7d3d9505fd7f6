package engine

import (
	"context"

	"go.uber.org/zap"

	"mafia-engine/internal/agent"
	"mafia-engine/internal/domain"
	"mafia-engine/internal/memory"
	"mafia-engine/internal/special"
	"mafia-engine/internal/werewolfcoop"
)

// werewolfSpeakerAdapter bridges a werewolf's Agent Contract Speak method to
// the narrower werewolfcoop.Speaker interface the group dialogue (C4) needs.
// Before each statement it's asked to make, every transcript entry the seat
// has not yet seen is mirrored into the seat's own night_discussions memory
// (spec §4.3: "every utterance is appended to every werewolf's memory"),
// tracked by a cursor so entries are never mirrored twice across the three
// dialogue rounds; runWerewolfPhase mirrors the rest once the dialogue ends.
type werewolfSpeakerAdapter struct {
	seat     *agent.Seat
	snap     domain.Snapshot
	mirrored int
}

func (a *werewolfSpeakerAdapter) ID() int { return a.seat.Identity().ID }

func (a *werewolfSpeakerAdapter) Statement(ctx context.Context, round string, transcript []werewolfcoop.Speech, candidates []werewolfcoop.Candidate) (string, error) {
	a.mirror(round, transcript)
	return a.seat.Speak(ctx, a.snap)
}

// mirror appends every transcript entry not yet seen by this seat, tagging
// new entries with the current dialogue round label.
func (a *werewolfSpeakerAdapter) mirror(round string, transcript []werewolfcoop.Speech) {
	for _, sp := range transcript[a.mirrored:] {
		a.seat.Memory().Append(memory.StreamNightDiscussions, a.snap.Round, memory.NightDiscussionPayload{
			SpeakerID: sp.SpeakerID,
			Round:     round,
			Text:      sp.Text,
		})
	}
	a.mirrored = len(transcript)
}

var _ werewolfcoop.Speaker = (*werewolfSpeakerAdapter)(nil)

// runNight executes the Night phase: werewolf kill-target cooperation (C4),
// the seer's divination (C5a), the witch's save/poison decision (C5b), death
// resolution in the fixed order (kill set -> saves -> poisons -> apply), and
// a victory check.
func (e *Engine) runNight(ctx context.Context) {
	alive := e.state.GetAlivePlayers()
	allSpeeches := e.allSpeeches()

	killTarget := e.runWerewolfPhase(ctx, alive, allSpeeches)

	if seerID := findRole(alive, domain.RoleSeer); seerID != 0 {
		e.runSeerPhase(seerID, alive, allSpeeches)
	}

	var saved, poisoned int
	if witchID := findRole(alive, domain.RoleWitch); witchID != 0 {
		saved, poisoned = e.runWitchPhase(witchID, killTarget, allSpeeches)
	}

	deaths := map[int]bool{}
	if killTarget != 0 {
		deaths[killTarget] = true
	}
	if saved != 0 {
		delete(deaths, saved)
	}
	if poisoned != 0 {
		deaths[poisoned] = true
	}

	for id := range deaths {
		cause := "killed_by_werewolves"
		if id == poisoned {
			cause = "witch_poison"
		}
		if e.state.KillPlayer(id, cause) {
			e.broadcastDeath(id, cause)
		}
	}

	e.checkVictory()
}

func findRole(alive []*domain.Player, role domain.Role) int {
	for _, p := range alive {
		if p.Role == role {
			return p.ID
		}
	}
	return 0
}

// allSpeeches collects every speech recorded so far this game from the event
// log, the authoritative record C4/C5a/C5b score candidates against.
func (e *Engine) allSpeeches() []werewolfcoop.Speech {
	var out []werewolfcoop.Speech
	for _, entry := range e.state.EventLog {
		if entry.Kind != domain.EventSpeech {
			continue
		}
		id, _ := entry.Data["player_id"].(int)
		text, _ := entry.Data["text"].(string)
		out = append(out, werewolfcoop.Speech{SpeakerID: id, Text: text})
	}
	return out
}

func speechesFor(id int, all []werewolfcoop.Speech) []werewolfcoop.Speech {
	var out []werewolfcoop.Speech
	for _, s := range all {
		if s.SpeakerID == id {
			out = append(out, s)
		}
	}
	return out
}

func (e *Engine) runWerewolfPhase(ctx context.Context, alive []*domain.Player, allSpeeches []werewolfcoop.Speech) int {
	var werewolves []*domain.Player
	for _, p := range alive {
		if p.Role == domain.RoleWerewolf {
			werewolves = append(werewolves, p)
		}
	}
	if len(werewolves) == 0 {
		return 0
	}

	var raw []werewolfcoop.Candidate
	for _, p := range alive {
		if p.Role == domain.RoleWerewolf {
			continue
		}
		score := werewolfcoop.ThreatScore(werewolfcoop.ThreatInput{
			CandidateID:       p.ID,
			CandidateSpeeches: speechesFor(p.ID, allSpeeches),
			AllSpeeches:       allSpeeches,
			Round:             e.state.Round,
		})
		raw = append(raw, werewolfcoop.Candidate{ID: p.ID, Name: p.Name, ThreatScore: score})
	}
	if len(raw) == 0 {
		return 0
	}
	ranked := werewolfcoop.RankCandidates(raw)

	speakers := make([]werewolfcoop.Speaker, len(werewolves))
	adapters := make([]*werewolfSpeakerAdapter, len(werewolves))
	for i, p := range werewolves {
		a := &werewolfSpeakerAdapter{
			seat: e.seats[p.ID],
			snap: e.state.Project(p.ID, e.cfg.UI.RevealRolesOnDeath),
		}
		adapters[i] = a
		speakers[i] = a
	}

	outcome, err := werewolfcoop.Decide(ctx, speakers, ranked)
	if err != nil {
		e.logger.Warn("werewolf cooperation failed, no kill this round", zap.Error(err))
		return 0
	}
	for _, a := range adapters {
		a.mirror("final", outcome.Transcript)
	}
	if !outcome.Success {
		return 0
	}

	e.state.RecordNightAction(domain.RoleWerewolf, werewolves[0].ID, outcome.TargetID, "kill_target_selected")
	return outcome.TargetID
}

func (e *Engine) runSeerPhase(seerID int, alive []*domain.Player, allSpeeches []werewolfcoop.Speech) {
	seat := e.seats[seerID]
	if seat.Seer == nil {
		return
	}

	var candidates []special.DivinationCandidate
	for _, p := range alive {
		if p.ID == seerID {
			continue
		}
		if _, divined := seat.Seer.VisionResults[p.ID]; divined {
			continue
		}
		candidates = append(candidates, special.DivinationCandidate{ID: p.ID, Speeches: speechesFor(p.ID, allSpeeches)})
	}

	target, _, ok := special.ChooseDivinationTarget(special.SeerInput{
		Candidates:  candidates,
		AllSpeeches: allSpeeches,
		Round:       e.state.Round,
		AliveCount:  len(alive),
	})
	if !ok {
		return
	}

	targetPlayer := e.state.GetPlayer(target)
	faction := domain.FactionVillager
	if targetPlayer.Role.IsWerewolfFaction() {
		faction = domain.FactionWerewolf
	}
	seat.RecordVision(target, faction)
	e.state.RecordNightAction(domain.RoleSeer, seerID, target, faction.String())
}

func (e *Engine) runWitchPhase(witchID, killTarget int, allSpeeches []werewolfcoop.Speech) (saved, poisoned int) {
	seat := e.seats[witchID]
	if seat.Witch == nil || (!seat.Witch.HasAntidote && !seat.Witch.HasPoison) {
		return 0, 0
	}

	hasVictim := killTarget != 0 && seat.Witch.HasAntidote
	var victimID int
	var victimSpeeches []werewolfcoop.Speech
	if hasVictim {
		victimID = killTarget
		victimSpeeches = speechesFor(killTarget, allSpeeches)
	}

	situation := special.WitchSituation{
		HasAntidote:      seat.Witch.HasAntidote,
		HasPoison:        seat.Witch.HasPoison,
		Round:            e.state.Round,
		TonightVictimID:  victimID,
		HasTonightVictim: hasVictim,
		VictimSpeeches:   victimSpeeches,
		AllSpeeches:      allSpeeches,
		AlreadySaved:     toBoolSet(seat.Witch.Saved),
		AlreadyPoisoned:  toBoolSet(seat.Witch.Poisoned),
	}

	var poisonCandidates []special.PoisonCandidate
	for _, p := range e.state.GetAlivePlayers() {
		if p.ID == witchID {
			continue
		}
		poisonCandidates = append(poisonCandidates, special.PoisonCandidate{ID: p.ID, Speeches: speechesFor(p.ID, allSpeeches)})
	}

	decision := special.Decide(situation, poisonCandidates, witchID)
	switch decision.Kind {
	case "save":
		if seat.UseAntidote(decision.Target) {
			saved = decision.Target
		}
	case "poison":
		if seat.UsePoison(decision.Target) {
			poisoned = decision.Target
		}
	}
	e.state.RecordNightAction(domain.RoleWitch, witchID, decision.Target, decision.Kind)
	return saved, poisoned
}

func toBoolSet(ids []int) map[int]bool {
	out := make(map[int]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out
}
