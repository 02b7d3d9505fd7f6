// Package victory implements the Victory Evaluation component (C7): the
// exact win/lose/draw determination run after every death, plus a
// non-authoritative win-probability estimate ported from
// original_source/src/victory_checker.py's predict_victory_probability.
// The estimate never feeds back into Evaluate's result.
package victory

import "mafia-engine/internal/domain"

// Result is the outcome of a single evaluation pass.
type Result struct {
	Over   bool
	Winner domain.Winner
	Reason string
}

// Evaluate runs the exact victory condition check (is_game_over):
// werewolves win once the entire villager faction (villagers, seer, witch)
// is gone; villagers win once every werewolf is gone; a simultaneous wipe is
// a draw. Otherwise the game continues.
func Evaluate(g *domain.GameState) Result {
	counts := g.FactionCounts()

	if counts.VillagerFaction == 0 && counts.Werewolves > 0 {
		return Result{Over: true, Winner: domain.WinnerWerewolves, Reason: "every villager-faction player is dead"}
	}
	if counts.Werewolves == 0 && counts.VillagerFaction > 0 {
		return Result{Over: true, Winner: domain.WinnerVillagers, Reason: "every werewolf is dead"}
	}
	if counts.TotalAlive == 0 {
		return Result{Over: true, Winner: domain.WinnerDraw, Reason: "no players remain alive"}
	}
	return Result{Over: false}
}

// Probabilities is a non-authoritative win-probability estimate; callers
// must never use it to decide Evaluate's outcome (spec §4.7).
type Probabilities struct {
	Villagers  float64
	Werewolves float64
	Draw       float64
}

// EstimateWinProbability ports predict_victory_probability: the
// already-decided cases (nobody alive, no werewolves, no villager faction)
// short-circuit to a certainty, otherwise a rough
// ratio-based estimate is computed and normalized. Werewolves get a fixed
// advantage bump since their victory condition is easier to satisfy than
// the villagers'.
func EstimateWinProbability(g *domain.GameState) Probabilities {
	counts := g.FactionCounts()

	if counts.TotalAlive == 0 {
		return Probabilities{Draw: 1.0}
	}
	if counts.Werewolves == 0 {
		return Probabilities{Villagers: 1.0}
	}
	if counts.VillagerFaction == 0 {
		return Probabilities{Werewolves: 1.0}
	}

	villagerRatio := float64(counts.VillagerFaction) / float64(counts.TotalAlive)
	werewolfRatio := float64(counts.Werewolves) / float64(counts.TotalAlive)

	villagerAdvantage := maxFloat(0, villagerRatio-0.3)
	werewolfAdvantage := werewolfRatio + 0.3

	totalAdvantage := villagerAdvantage + werewolfAdvantage
	var villagerProb, werewolfProb float64
	if totalAdvantage > 0 {
		villagerProb = villagerAdvantage / totalAdvantage
		werewolfProb = werewolfAdvantage / totalAdvantage
	} else {
		villagerProb, werewolfProb = 0.5, 0.5
	}

	totalProb := villagerProb + werewolfProb
	if totalProb > 0 {
		villagerProb /= totalProb
		werewolfProb /= totalProb
	}
	drawProb := maxFloat(0, 1.0-villagerProb-werewolfProb)

	return Probabilities{
		Villagers:  round3(villagerProb),
		Werewolves: round3(werewolfProb),
		Draw:       round3(drawProb),
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}
