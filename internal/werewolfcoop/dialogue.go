// This file runs the three-round werewolf dialogue and the mention-biased
// final kill vote (spec §4.3). Dialogue turns are sequential within the
// group — each statement may reference prior ones — so no fan-out here; the
// concurrency budget (errgroup) is reserved for C6 voting and C8 reflections
// where calls are genuinely independent.
package werewolfcoop

import (
	"context"
	"sort"
	"strings"
)

// Speaker is the minimal capability dialogue needs from a werewolf seat: it
// can produce a statement given the transcript so far.
type Speaker interface {
	ID() int
	Statement(ctx context.Context, round string, transcript []Speech, candidates []Candidate) (string, error)
}

// Candidate is a scored kill target, sorted by descending threat.
type Candidate struct {
	ID          int
	Name        string
	ThreatScore float64
}

// Outcome is C4's output: {success, target_id, vote_tally, transcript}.
type Outcome struct {
	Success    bool
	TargetID   int
	VoteTally  map[int]int
	Transcript []Speech
}

// RankCandidates sorts candidates by descending threat score (ties broken by
// ascending ID for determinism).
func RankCandidates(candidates []Candidate) []Candidate {
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	sort.Slice(out, func(i, j int) bool {
		if out[i].ThreatScore != out[j].ThreatScore {
			return out[i].ThreatScore > out[j].ThreatScore
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Decide runs C4 end-to-end. werewolves must all be alive; candidates is the
// pre-scored, already-ranked target list (ranked via RankCandidates).
func Decide(ctx context.Context, werewolves []Speaker, candidates []Candidate) (Outcome, error) {
	if len(werewolves) == 0 {
		return Outcome{Success: false}, nil
	}
	if len(candidates) == 0 {
		return Outcome{Success: false}, nil
	}
	if len(werewolves) == 1 {
		// skip discussion entirely; top-threat candidate wins by default
		return Outcome{Success: true, TargetID: candidates[0].ID, VoteTally: map[int]int{candidates[0].ID: 1}}, nil
	}

	var transcript []Speech

	appendRound := func(round string) error {
		for _, w := range werewolves {
			text, err := w.Statement(ctx, round, transcript, candidates)
			if err != nil {
				text = "" // spec §4.9 failure semantics: caught, safe default, not propagated
			}
			transcript = append(transcript, Speech{SpeakerID: w.ID(), Text: text})
		}
		return nil
	}

	_ = appendRound("opening")
	if len(werewolves) >= 3 {
		_ = appendRound("debate")
	}
	_ = appendRound("final")

	mentions := countMentions(transcript, candidates)

	tally := make(map[int]int)
	for _, w := range werewolves {
		target := pickVote(w.ID(), candidates, mentions)
		tally[target]++
	}

	winner := resolveTie(tally, candidates)

	return Outcome{
		Success:    true,
		TargetID:   winner,
		VoteTally:  tally,
		Transcript: transcript,
	}, nil
}

// countMentions counts, per candidate ID, how many transcript statements
// contain their name, case-insensitively (mirrors the Python mention-counting
// bias). IDs are not matched, and a statement counts once however often it
// repeats the name.
func countMentions(transcript []Speech, candidates []Candidate) map[int]int {
	mentions := make(map[int]int)
	for _, c := range candidates {
		count := 0
		needle := strings.ToLower(c.Name)
		for _, s := range transcript {
			if needle != "" && strings.Contains(strings.ToLower(s.Text), needle) {
				count++
			}
		}
		mentions[c.ID] = count
	}
	return mentions
}

// pickVote picks one werewolf's vote: the highest-threat candidate mentioned
// at least twice is preferred; otherwise default to the top-threat candidate.
// Every mention counts the same; the tone of a statement is not examined.
func pickVote(voterID int, candidates []Candidate, mentions map[int]int) int {
	for _, c := range candidates { // already ranked by threat descending
		if mentions[c.ID] >= 2 {
			return c.ID
		}
	}
	return candidates[0].ID
}

// resolveTie picks the final kill target from the per-werewolf vote tally:
// the most-voted candidate, ties broken by higher threat score, then by
// lowest ID as the deterministic last resort (spec §4.3).
func resolveTie(tally map[int]int, candidates []Candidate) int {
	threatByID := make(map[int]float64, len(candidates))
	for _, c := range candidates {
		threatByID[c.ID] = c.ThreatScore
	}

	best := -1
	bestVotes := -1
	bestThreat := -1.0
	for id, votes := range tally {
		switch {
		case votes > bestVotes:
			best, bestVotes, bestThreat = id, votes, threatByID[id]
		case votes == bestVotes:
			threat := threatByID[id]
			if threat > bestThreat || (threat == bestThreat && id < best) {
				best, bestThreat = id, threat
			}
		}
	}
	return best
}
