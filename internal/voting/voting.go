// Package voting implements the Voting System (C6): concurrent fan-out vote
// collection with a per-call timeout and random-legal-choice fallback, plus
// the tie/revote/skip state machine (spec §4.6). Concurrency uses
// golang.org/x/sync/errgroup, the fan-out primitive the pack's go-spacemesh
// hare3 example uses for concurrent per-participant operations.
package voting

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"mafia-engine/internal/agent"
	"mafia-engine/internal/domain"
)

// Voter is the minimal capability ConductVote needs from a seat.
type Voter interface {
	ID() int
	Vote(ctx context.Context, candidates []int) (int, error)
}

// SeatVoter adapts an agent.Seat (whose Vote signature also threads a
// snapshot, per the spec's Agent Contract) to the Voter interface ConductVote
// needs, closing over the snapshot all voters see this round.
type SeatVoter struct {
	Seat *agent.Seat
	Snap domain.Snapshot
}

func (v SeatVoter) ID() int { return v.Seat.Identity().ID }

func (v SeatVoter) Vote(ctx context.Context, candidates []int) (int, error) {
	return v.Seat.Vote(ctx, v.Snap, candidates)
}

// Ballot is one voter's recorded choice, including whether it came from the
// fallback path (timeout or illegal choice).
type Ballot struct {
	VoterID  int
	TargetID int
	Fallback bool
}

// Action is the outcome discriminator for VoteOutcome.
type Action string

const (
	ActionElimination   Action = "elimination"
	ActionRevoteRequired Action = "revote_required"
	ActionSkipElimination Action = "skip_elimination"
)

// Outcome is C6's result (spec §4.6 VoteOutcome).
type Outcome struct {
	Action   Action
	TargetID int // 0 when Action != ActionElimination
	TiedIDs  []int
	Ballots  []Ballot
	Tally    map[int]int
}

// DefaultTimeout is the per-call vote timeout (spec §5 default 30s).
const DefaultTimeout = 30 * time.Second

// ConductVote fans `Vote` out to every voter concurrently, applies the
// per-call timeout and fallback, tallies, and resolves ties per isRevote.
func ConductVote(ctx context.Context, voters []Voter, candidates []int, isRevote bool, timeout time.Duration, rng *rand.Rand) Outcome {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	// Each goroutine below gets its own *rand.Rand, derived sequentially from
	// the shared rng before any fan-out starts. math/rand.Rand is not safe
	// for concurrent use (only the package-level top-level funcs carry an
	// internal lock), and castBallot's fallback draws from rng on every
	// voter's goroutine, so sharing one instance across the errgroup would be
	// a data race.
	fallbackRNGs := make([]*rand.Rand, len(voters))
	for i := range voters {
		fallbackRNGs[i] = rand.New(rand.NewSource(rng.Int63()))
	}

	ballots := make([]Ballot, len(voters))
	g, gctx := errgroup.WithContext(ctx)

	for i, voter := range voters {
		i, voter := i, voter
		g.Go(func() error {
			ballots[i] = castBallot(gctx, voter, candidates, timeout, fallbackRNGs[i])
			return nil
		})
	}
	_ = g.Wait() // castBallot never returns an error; every voter always produces a ballot

	votes := make(map[int]int, len(ballots))
	for _, b := range ballots {
		votes[b.VoterID] = b.TargetID
	}
	tally := domain.TallyVotes(votes)
	leaders := domain.TopVoted(votes)

	switch {
	case len(leaders) == 0:
		return Outcome{Action: ActionSkipElimination, Ballots: ballots, Tally: tally}
	case len(leaders) == 1:
		return Outcome{Action: ActionElimination, TargetID: leaders[0], Ballots: ballots, Tally: tally}
	case !isRevote:
		return Outcome{Action: ActionRevoteRequired, TiedIDs: leaders, Ballots: ballots, Tally: tally}
	default:
		return Outcome{Action: ActionSkipElimination, TiedIDs: leaders, Ballots: ballots, Tally: tally}
	}
}

// castBallot runs one voter's Vote call under a timeout, falling back to a
// uniformly random legal candidate on timeout, error, or an illegal choice.
func castBallot(ctx context.Context, voter Voter, candidates []int, timeout time.Duration, rng *rand.Rand) Ballot {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		target int
		err    error
	}
	resultCh := make(chan result, 1)
	go func() {
		target, err := voter.Vote(callCtx, candidates)
		resultCh <- result{target, err}
	}()

	select {
	case r := <-resultCh:
		if r.err == nil && containsInt(candidates, r.target) {
			return Ballot{VoterID: voter.ID(), TargetID: r.target}
		}
	case <-callCtx.Done():
	}

	return Ballot{VoterID: voter.ID(), TargetID: randomChoice(candidates, rng), Fallback: true}
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func randomChoice(candidates []int, rng *rand.Rand) int {
	if len(candidates) == 0 {
		return 0
	}
	return candidates[rng.Intn(len(candidates))]
}
