package voting

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"
)

type scriptedVoter struct {
	id     int
	target int
	err    error
	delay  time.Duration
}

func (v scriptedVoter) ID() int { return v.id }

func (v scriptedVoter) Vote(ctx context.Context, candidates []int) (int, error) {
	if v.delay > 0 {
		select {
		case <-time.After(v.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return v.target, v.err
}

func TestConductVote_ClearWinnerEliminates(t *testing.T) {
	voters := []Voter{
		scriptedVoter{id: 1, target: 9},
		scriptedVoter{id: 2, target: 9},
		scriptedVoter{id: 3, target: 8},
	}
	out := ConductVote(context.Background(), voters, []int{8, 9}, false, time.Second, rand.New(rand.NewSource(1)))
	if out.Action != ActionElimination || out.TargetID != 9 {
		t.Errorf("got %+v, expected elimination of 9", out)
	}
}

func TestConductVote_TieFirstPassRequiresRevote(t *testing.T) {
	voters := []Voter{
		scriptedVoter{id: 1, target: 8},
		scriptedVoter{id: 2, target: 9},
	}
	out := ConductVote(context.Background(), voters, []int{8, 9}, false, time.Second, rand.New(rand.NewSource(1)))
	if out.Action != ActionRevoteRequired {
		t.Errorf("got action %v, expected revote_required on a first-pass tie", out.Action)
	}
	if len(out.TiedIDs) != 2 {
		t.Errorf("expected both tied candidates recorded, got %v", out.TiedIDs)
	}
}

func TestConductVote_TieOnRevoteSkipsElimination(t *testing.T) {
	voters := []Voter{
		scriptedVoter{id: 1, target: 8},
		scriptedVoter{id: 2, target: 9},
	}
	out := ConductVote(context.Background(), voters, []int{8, 9}, true, time.Second, rand.New(rand.NewSource(1)))
	if out.Action != ActionSkipElimination {
		t.Errorf("got action %v, expected skip_elimination on a repeated tie", out.Action)
	}
}

func TestConductVote_TimeoutFallsBackToRandomLegalChoice(t *testing.T) {
	voters := []Voter{
		scriptedVoter{id: 1, target: 9, delay: time.Second},
	}
	out := ConductVote(context.Background(), voters, []int{9}, false, 10*time.Millisecond, rand.New(rand.NewSource(1)))
	if len(out.Ballots) != 1 || !out.Ballots[0].Fallback {
		t.Errorf("expected a fallback ballot on timeout, got %+v", out.Ballots)
	}
	if out.Ballots[0].TargetID != 9 {
		t.Errorf("fallback should still choose a legal candidate, got %d", out.Ballots[0].TargetID)
	}
}

func TestConductVote_IllegalChoiceFallsBack(t *testing.T) {
	voters := []Voter{
		scriptedVoter{id: 1, target: 999}, // not in candidates
	}
	out := ConductVote(context.Background(), voters, []int{5, 6}, false, time.Second, rand.New(rand.NewSource(1)))
	if !out.Ballots[0].Fallback {
		t.Error("an out-of-candidate-set vote should be treated as a fallback")
	}
	if out.Ballots[0].TargetID != 5 && out.Ballots[0].TargetID != 6 {
		t.Errorf("fallback target %d not among legal candidates", out.Ballots[0].TargetID)
	}
}

func TestConductVote_ErrorFallsBack(t *testing.T) {
	voters := []Voter{
		scriptedVoter{id: 1, err: errors.New("boom")},
	}
	out := ConductVote(context.Background(), voters, []int{5}, false, time.Second, rand.New(rand.NewSource(1)))
	if !out.Ballots[0].Fallback || out.Ballots[0].TargetID != 5 {
		t.Errorf("got %+v, expected a fallback to the only legal candidate", out.Ballots[0])
	}
}

func TestConductVote_NoVotersSkipsElimination(t *testing.T) {
	out := ConductVote(context.Background(), nil, []int{5}, false, time.Second, rand.New(rand.NewSource(1)))
	if out.Action != ActionSkipElimination {
		t.Errorf("got %v, expected skip_elimination with no voters", out.Action)
	}
}

func TestConductVote_ZeroTimeoutUsesDefault(t *testing.T) {
	voters := []Voter{scriptedVoter{id: 1, target: 5}}
	out := ConductVote(context.Background(), voters, []int{5}, false, 0, rand.New(rand.NewSource(1)))
	if out.Action != ActionElimination {
		t.Errorf("got %v, expected elimination with the default timeout applied", out.Action)
	}
}
