// Package werewolfcoop implements the Werewolf Cooperation component (C4):
// threat scoring, the three-round group dialogue, and the mention-biased
// final kill vote. Scoring weights are ported from
// original_source/src/werewolf_cooperation.py's target_priority/threat_factors.
package werewolfcoop

import (
	"math"
	"strings"
)

// Speech is a minimal view of a recorded utterance, enough to run the
// keyword-based role-estimation and influence heuristics.
type Speech struct {
	SpeakerID int
	Text      string
}

// rolePriority mirrors the Python target_priority table: killing a suspected
// seer is worth the most, then witch, then a plain villager.
var rolePriority = map[string]float64{
	"seer":     10,
	"witch":    8,
	"villager": 5,
}

// threatFactors mirrors the Python threat_factors weights.
const (
	weightSpeechLogic       = 3
	weightSuspicionAccuracy = 4
	weightInfluence         = 2
	weightSurvivalRounds    = 1
)

var seerKeywords = []string{"divine", "divination", "checked", "confirmed", "identity", "vision", "detect"}
var witchKeywords = []string{"save", "poison", "potion", "witch", "antidote", "last night", "death"}
var logicKeywords = []string{"because", "therefore", "based on", "analysis", "infer", "logic", "evidence"}

// ThreatInput bundles what's needed to score one candidate target.
type ThreatInput struct {
	CandidateID      int
	CandidateSpeeches []Speech // this candidate's own speeches so far
	AllSpeeches       []Speech // every speech recorded so far in the game (for influence share)
	Round             int
	// SuspicionAccuracy lets a caller plug in an external suspicion model
	// (0-1); the reference heuristic has no persistent suspicion tracking
	// of its own, so this defaults to 0.3 ("default medium accuracy") when
	// the caller passes nil/zero.
	SuspicionAccuracy float64
}

// EstimateRole guesses a candidate's role from keyword hits in their
// speeches, mirroring _estimate_player_role's keyword-matching heuristic.
func EstimateRole(speeches []Speech) string {
	for _, s := range speeches {
		lower := strings.ToLower(s.Text)
		if containsAny(lower, seerKeywords) {
			return "seer"
		}
	}
	for _, s := range speeches {
		lower := strings.ToLower(s.Text)
		if containsAny(lower, witchKeywords) {
			return "witch"
		}
	}
	return "villager"
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// speechLogicScore mirrors _analyze_speech_logic: counts logic-indicator
// keyword hits per speech, normalized to [0,1], averaged across speeches. A
// candidate with no speeches yet gets the Python default of 0.3.
func speechLogicScore(speeches []Speech) float64 {
	if len(speeches) == 0 {
		return 0.3
	}
	total := 0.0
	for _, s := range speeches {
		lower := strings.ToLower(s.Text)
		hits := 0
		for _, kw := range logicKeywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		score := float64(hits) / float64(len(logicKeywords))
		if score > 1 {
			score = 1
		}
		total += score
	}
	return total / float64(len(speeches))
}

// influenceScore mirrors _analyze_influence: speech frequency share weighted
// 0.6 plus normalized average speech length weighted 0.4.
func influenceScore(candidateID int, all []Speech) float64 {
	var mine []Speech
	for _, s := range all {
		if s.SpeakerID == candidateID {
			mine = append(mine, s)
		}
	}
	if len(mine) == 0 {
		return 0.2
	}

	frequency := float64(len(mine)) / math.Max(float64(len(all)), 1)

	totalLen := 0
	for _, s := range mine {
		totalLen += len(s.Text)
	}
	avgLen := float64(totalLen) / float64(len(mine))
	lengthScore := math.Min(avgLen/100, 1.0)

	influence := frequency*0.6 + lengthScore*0.4
	return math.Min(influence, 1.0)
}

// ThreatScore computes a candidate's threat score (higher = more dangerous
// to the werewolves, i.e. a more attractive kill target), ported from
// _calculate_threat_score.
func ThreatScore(in ThreatInput) float64 {
	role := EstimateRole(in.CandidateSpeeches)
	base := rolePriority[role]
	if base == 0 {
		base = 3 // Python's target_priority.get(role, 3) default
	}

	suspicion := in.SuspicionAccuracy
	if suspicion == 0 {
		suspicion = 0.3
	}

	score := base
	score += speechLogicScore(in.CandidateSpeeches) * weightSpeechLogic
	score += suspicion * weightSuspicionAccuracy
	score += influenceScore(in.CandidateID, in.AllSpeeches) * weightInfluence
	score += float64(in.Round) * weightSurvivalRounds

	return math.Round(score*100) / 100
}
