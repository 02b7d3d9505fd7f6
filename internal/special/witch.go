// This file implements the Witch night-thinking component (C5b): the save
// and poison value heuristics (ported from _calculate_save_value and
// _calculate_poison_value), and the strict tonight's-victim information gate
// (spec §4.5 — she's told the kill target only if she still has the antidote).

package special

import "mafia-engine/internal/werewolfcoop"

// WitchSituation is the role-private context handed to the witch's decision.
type WitchSituation struct {
	HasAntidote bool
	HasPoison   bool
	Round       int

	// TonightVictimID/HasTonightVictim carry the werewolves' kill target.
	// The engine must only set HasTonightVictim when HasAntidote is true —
	// this package trusts that gate rather than re-deriving it, since the
	// witch's private state (HasAntidote) lives in internal/agent, not here.
	TonightVictimID  int
	HasTonightVictim bool

	VictimSpeeches []werewolfcoop.Speech
	AllSpeeches    []werewolfcoop.Speech

	AlreadySaved    map[int]bool
	AlreadyPoisoned map[int]bool
}

// SaveValue scores how valuable saving the tonight's victim would be
// (_calculate_save_value): base 5.0, +2.0 if the victim is an active
// speaker (>20% of the speeches in allSpeeches), +1.5 once the game reaches
// round 3 or later.
func SaveValue(victimID, round int, victimSpeeches, allSpeeches []werewolfcoop.Speech) float64 {
	value := 5.0
	if len(allSpeeches) > 0 && float64(len(victimSpeeches)) > float64(len(allSpeeches))*0.2 {
		value += 2.0
	}
	if round >= 3 {
		value += 1.5
	}
	return round2(value)
}

// PoisonCandidate is one live player the witch could poison.
type PoisonCandidate struct {
	ID        int
	Suspicion float64 // 0 if the witch holds no suspicion estimate for this player
	Speeches  []werewolfcoop.Speech
}

// PoisonValue scores how valuable poisoning a candidate would be
// (_calculate_poison_value): base 3.0, +4×suspicion (falling back to
// EstimateSuspicion's speech-based estimate when the witch holds no prior
// belief about this candidate), +1.5 if the candidate is unusually talkative
// (>30% of the speeches in allSpeeches).
func PoisonValue(c PoisonCandidate, allSpeeches []werewolfcoop.Speech) float64 {
	value := 3.0
	value += EstimateSuspicion(c.Suspicion, c.Speeches) * 4
	if len(allSpeeches) > 0 && float64(len(c.Speeches)) > float64(len(allSpeeches))*0.3 {
		value += 1.5
	}
	return round2(value)
}

// RankPoisonCandidates scores and sorts candidates by descending poison
// value, matching the Python helper's "top 3" behavior — callers decide how
// many to actually consider.
func RankPoisonCandidates(candidates []PoisonCandidate, allSpeeches []werewolfcoop.Speech) []ScoredPoisonCandidate {
	scored := make([]ScoredPoisonCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, ScoredPoisonCandidate{PoisonCandidate: c, Value: PoisonValue(c, allSpeeches)})
	}
	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].Value > scored[j-1].Value; j-- {
			scored[j], scored[j-1] = scored[j-1], scored[j]
		}
	}
	return scored
}

// ScoredPoisonCandidate pairs a candidate with its computed poison value.
type ScoredPoisonCandidate struct {
	PoisonCandidate
	Value float64
}

// WitchDecision is the outcome of the witch's night thinking: at most one of
// Save/Poison is populated (spec §4.5 "exactly one of Save/Poison/NoAction").
type WitchDecision struct {
	Kind   string // "save", "poison", or "no_action"
	Target int
}

// Decide runs the default witch policy: save the tonight's victim when doing
// so clears a meaningful value bar and the antidote hasn't been used yet;
// otherwise consider poisoning the highest-value live suspect; otherwise do
// nothing. Decide itself never picks selfID as a save or poison target, never
// re-saves a player in AlreadySaved and never re-poisons one in
// AlreadyPoisoned.
func Decide(situation WitchSituation, poisonCandidates []PoisonCandidate, selfID int) WitchDecision {
	if situation.HasAntidote && situation.HasTonightVictim && situation.TonightVictimID != selfID &&
		!situation.AlreadySaved[situation.TonightVictimID] {
		value := SaveValue(situation.TonightVictimID, situation.Round, situation.VictimSpeeches, situation.AllSpeeches)
		if value >= 5.0 {
			return WitchDecision{Kind: "save", Target: situation.TonightVictimID}
		}
	}

	if situation.HasPoison {
		ranked := RankPoisonCandidates(poisonCandidates, situation.AllSpeeches)
		for _, candidate := range ranked {
			if candidate.ID == selfID || situation.AlreadyPoisoned[candidate.ID] {
				continue
			}
			if candidate.Value >= 6.0 {
				return WitchDecision{Kind: "poison", Target: candidate.ID}
			}
			break // ranked descending; nothing further clears the bar either
		}
	}

	return WitchDecision{Kind: "no_action"}
}
