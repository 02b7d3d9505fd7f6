// Package special implements the Seer (C5a) and Witch (C5b) night-thinking
// components. Weights are ported from
// original_source/src/special_roles_thinking.py's seer_analysis_factors and
// witch save/poison value heuristics.
package special

import (
	"strings"

	"mafia-engine/internal/werewolfcoop"
)

// seerFactors mirrors seer_analysis_factors: each is scaled ×10 in the
// original before being added to the base score.
const (
	weightSuspicionLevel     = 0.4
	weightSpeechInconsistency = 0.3
	weightBehaviorPattern    = 0.2
	weightStrategicValue     = 0.1
)

var suspiciousKeywords = []string{"i think", "maybe", "not sure", "whatever", "either way"}
var confidentKeywords = []string{"certain", "definitely", "believe", "know", "saw"}

// DivinationCandidate is one player the seer could target tonight.
type DivinationCandidate struct {
	ID        int
	Speeches  []werewolfcoop.Speech // this candidate's own speeches
	Suspicion float64               // prior suspicion held by the seer, 0 if unknown
}

// SeerInput bundles everything needed to score a round of candidates.
type SeerInput struct {
	Candidates  []DivinationCandidate
	AllSpeeches []werewolfcoop.Speech // every speech recorded so far in the game, for behavior-pattern share
	Round       int
	AliveCount  int
}

// DivinationValue scores one candidate (_calculate_divination_value).
func DivinationValue(c DivinationCandidate, allSpeeches []werewolfcoop.Speech, round, aliveCount int) float64 {
	value := 0.0
	value += suspicionScore(c) * weightSuspicionLevel * 10
	value += speechInconsistency(c.Speeches) * weightSpeechInconsistency * 10
	value += behaviorPattern(c.ID, allSpeeches) * weightBehaviorPattern * 10
	value += strategicValue(round, aliveCount) * weightStrategicValue * 10
	return round2(value)
}

// ChooseDivinationTarget picks the argmax-scoring candidate. Returns ok=false
// if there are no candidates (e.g. everyone already divined).
func ChooseDivinationTarget(in SeerInput) (id int, value float64, ok bool) {
	best := -1
	bestValue := -1.0
	for _, c := range in.Candidates {
		v := DivinationValue(c, in.AllSpeeches, in.Round, in.AliveCount)
		if v > bestValue || (v == bestValue && (best == -1 || c.ID < best)) {
			best, bestValue = c.ID, v
		}
	}
	if best == -1 {
		return 0, 0, false
	}
	return best, bestValue, true
}

func suspicionScore(c DivinationCandidate) float64 {
	return EstimateSuspicion(c.Suspicion, c.Speeches)
}

// EstimateSuspicion derives a speech-based suspicion estimate in [0,1] from
// hedging vs. confident keyword usage, falling back to this whenever no prior
// estimate (e.g. a seer's past vision, or a caller-supplied belief) is held.
// Both the seer's divination scoring and the witch's poison scoring
// (witch.go's PoisonValue) use it: neither the original's seer suspicion
// tracking nor its witch.suspicions dict has a closed-form update rule to
// port (original_source/src/roles/witch.py, witch_tools.py) — both are
// populated by an LLM tool call instead — so this heuristic gives both paths
// a deterministic signal to act on.
func EstimateSuspicion(prior float64, speeches []werewolfcoop.Speech) float64 {
	if prior > 0 {
		return minFloat(prior, 1.0)
	}
	if len(speeches) == 0 {
		return 0.5
	}

	suspiciousCount, confidentCount := 0, 0
	for _, s := range speeches {
		lower := strings.ToLower(s.Text)
		suspiciousCount += countHits(lower, suspiciousKeywords)
		confidentCount += countHits(lower, confidentKeywords)
	}
	if suspiciousCount > confidentCount {
		return 0.7
	}
	return 0.4
}

// speechInconsistency approximates _analyze_speech_inconsistency: a stance
// flip proxy is beyond what a bare keyword scan can detect reliably, so this
// uses the ratio of hedging-to-confident keyword switches across a
// candidate's speeches as a stand-in signal.
func speechInconsistency(speeches []werewolfcoop.Speech) float64 {
	if len(speeches) < 2 {
		return 0.0
	}
	flips := 0
	wasConfident := false
	hasPrior := false
	for _, s := range speeches {
		lower := strings.ToLower(s.Text)
		confident := countHits(lower, confidentKeywords) > countHits(lower, suspiciousKeywords)
		if hasPrior && confident != wasConfident {
			flips++
		}
		wasConfident = confident
		hasPrior = true
	}
	return minFloat(float64(flips)/float64(len(speeches)), 1.0)
}

func behaviorPattern(candidateID int, allSpeeches []werewolfcoop.Speech) float64 {
	if len(allSpeeches) == 0 {
		return 0.3
	}
	count := 0
	for _, s := range allSpeeches {
		if s.SpeakerID == candidateID {
			count++
		}
	}
	frequency := float64(count) / float64(len(allSpeeches))
	if frequency < 0.1 || frequency > 0.4 {
		return 0.7
	}
	return 0.3
}

func strategicValue(round, aliveCount int) float64 {
	lateGameBonus := minFloat(float64(round)/5, 0.5)
	scarcityBonus := maxFloat(0, float64(7-aliveCount)/7*0.3)
	return lateGameBonus + scarcityBonus
}

func countHits(text string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	return hits
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
