package werewolfcoop

import (
	"context"
	"testing"
)

type scriptedSpeaker struct {
	id   int
	text string
}

func (s scriptedSpeaker) ID() int { return s.id }
func (s scriptedSpeaker) Statement(ctx context.Context, round string, transcript []Speech, candidates []Candidate) (string, error) {
	return s.text, nil
}

func TestDecide_NoWerewolvesNoKill(t *testing.T) {
	out, err := Decide(context.Background(), nil, []Candidate{{ID: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Success {
		t.Error("expected no kill when there are no werewolves")
	}
}

func TestDecide_SingleWerewolfSkipsDiscussion(t *testing.T) {
	werewolves := []Speaker{scriptedSpeaker{id: 1, text: "should not be called"}}
	candidates := RankCandidates([]Candidate{
		{ID: 2, Name: "Bob", ThreatScore: 5},
		{ID: 3, Name: "Carl", ThreatScore: 9},
	})

	out, err := Decide(context.Background(), werewolves, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Success || out.TargetID != 3 {
		t.Errorf("got %+v, expected top-threat candidate 3", out)
	}
	if len(out.Transcript) != 0 {
		t.Error("single werewolf should skip discussion entirely")
	}
}

func TestDecide_MultiWerewolfMentionBias(t *testing.T) {
	werewolves := []Speaker{
		scriptedSpeaker{id: 1, text: "I think Carl is suspicious, we should kill Carl"},
		scriptedSpeaker{id: 2, text: "Agreed, Carl has been acting strange, kill Carl"},
	}
	candidates := RankCandidates([]Candidate{
		{ID: 2, Name: "Bob", ThreatScore: 9}, // higher threat
		{ID: 3, Name: "Carl", ThreatScore: 5}, // mentioned repeatedly
	})

	out, err := Decide(context.Background(), werewolves, candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.TargetID != 3 {
		t.Errorf("got target %d, expected Carl (3) due to mention bias", out.TargetID)
	}
}

func TestDecide_DebateOnlyWithThreeOrMore(t *testing.T) {
	calls := map[string]int{}
	makeSpeaker := func(id int) Speaker {
		return trackingSpeaker{id: id, calls: calls}
	}
	werewolves := []Speaker{makeSpeaker(1), makeSpeaker(2)}
	candidates := RankCandidates([]Candidate{{ID: 3, Name: "Target", ThreatScore: 5}})

	if _, err := Decide(context.Background(), werewolves, candidates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls["debate"] != 0 {
		t.Error("debate round should not run with only 2 werewolves")
	}
	if calls["opening"] != 2 || calls["final"] != 2 {
		t.Errorf("expected opening/final to run for both werewolves, got %v", calls)
	}

	calls = map[string]int{}
	werewolves3 := []Speaker{makeSpeaker(1), makeSpeaker(2), makeSpeaker(4)}
	if _, err := Decide(context.Background(), werewolves3, candidates); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls["debate"] != 3 {
		t.Errorf("debate round should run once per werewolf with 3+, got %d", calls["debate"])
	}
}

type trackingSpeaker struct {
	id    int
	calls map[string]int
}

func (s trackingSpeaker) ID() int { return s.id }
func (s trackingSpeaker) Statement(ctx context.Context, round string, transcript []Speech, candidates []Candidate) (string, error) {
	s.calls[round]++
	return "statement", nil
}

func TestResolveTie_BreaksOnThreatThenID(t *testing.T) {
	candidates := []Candidate{
		{ID: 2, ThreatScore: 9},
		{ID: 3, ThreatScore: 9},
		{ID: 5, ThreatScore: 1},
	}
	tally := map[int]int{2: 1, 3: 1, 5: 2}
	// 5 has most votes, wins outright
	if got := resolveTie(tally, candidates); got != 5 {
		t.Errorf("got %d, expected 5 (most votes)", got)
	}

	tied := map[int]int{2: 1, 3: 1}
	if got := resolveTie(tied, candidates); got != 2 {
		t.Errorf("got %d, expected 2 (tie broken by lowest ID at equal threat)", got)
	}
}

func TestThreatScore_SeerKeywordsBoostPriority(t *testing.T) {
	seerLike := ThreatInput{
		CandidateID:       1,
		CandidateSpeeches: []Speech{{SpeakerID: 1, Text: "I checked and confirmed their identity"}},
		Round:             1,
	}
	villagerLike := ThreatInput{
		CandidateID:       2,
		CandidateSpeeches: []Speech{{SpeakerID: 2, Text: "I don't know what to think"}},
		Round:             1,
	}

	if ThreatScore(seerLike) <= ThreatScore(villagerLike) {
		t.Error("a candidate speaking like a seer should score a higher threat than a plain villager")
	}
}
