package agent

import (
	"context"
	"fmt"
	"math/rand"

	"mafia-engine/internal/domain"
)

// HeuristicPolicy is a deterministic, non-LLM Policy used for tests and as a
// fallback when no Completer is configured. It never calls out to a model;
// it picks uniformly among legal options using an injected RNG, matching the
// engine's own "random legal choice" fallback described in spec §4.2.
type HeuristicPolicy struct {
	Rng *rand.Rand
}

func NewHeuristicPolicy(rng *rand.Rand) *HeuristicPolicy {
	return &HeuristicPolicy{Rng: rng}
}

func (p *HeuristicPolicy) Speak(ctx context.Context, seat *Seat, snap domain.Snapshot) (string, error) {
	return fmt.Sprintf("%s has nothing conclusive to share yet.", seat.Identity().Name), nil
}

func (p *HeuristicPolicy) Vote(ctx context.Context, seat *Seat, snap domain.Snapshot, candidates []int) (int, error) {
	if len(candidates) == 0 {
		return 0, fmt.Errorf("agent: no candidates to vote for")
	}
	return candidates[p.Rng.Intn(len(candidates))], nil
}

func (p *HeuristicPolicy) NightAction(ctx context.Context, seat *Seat, snap domain.Snapshot, extras NightExtras) (ActionResult, error) {
	alive := snap.AlivePlayerIDs()
	self := seat.Identity().ID

	switch seat.Identity().Role {
	case domain.RoleWerewolf:
		target := randomOtherPlayer(p.Rng, alive, self)
		if target == 0 {
			return ActionResult{Kind: ActionNoAction, Success: false}, nil
		}
		return ActionResult{Kind: ActionKill, Target: target, Success: true}, nil

	case domain.RoleSeer:
		target := randomOtherPlayer(p.Rng, alive, self)
		if target == 0 {
			return ActionResult{Kind: ActionNoAction, Success: false}, nil
		}
		return ActionResult{Kind: ActionDivine, Target: target, Success: true}, nil

	case domain.RoleWitch:
		if extras.HasTonightVictim && seat.Witch.HasAntidote {
			return ActionResult{Kind: ActionSave, Target: extras.TonightVictimID, Success: true}, nil
		}
		return ActionResult{Kind: ActionNoAction, Success: false}, nil

	default:
		return ActionResult{Kind: ActionNoAction, Success: false}, nil
	}
}

func (p *HeuristicPolicy) Reflect(ctx context.Context, seat *Seat, snap domain.Snapshot) (string, error) {
	return fmt.Sprintf("%s considers today's events without reaching a firm conclusion.", seat.Identity().Name), nil
}

func randomOtherPlayer(rng *rand.Rand, alive []int, self int) int {
	var candidates []int
	for _, id := range alive {
		if id != self {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return 0
	}
	return candidates[rng.Intn(len(candidates))]
}

var _ Policy = (*HeuristicPolicy)(nil)
