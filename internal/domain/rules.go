// Setup-time constants and pure validation helpers.

package domain

import "fmt"

// Rule helpers are pure functions; player/role bounds are supplied by the
// caller (engine/config) so they stay configurable at runtime (spec §6).

const (
	MinPlayers = 5
	MaxPlayers = 12
)

// CanAddPlayer returns true if another player can join given the configured max.
func CanAddPlayer(currentPlayerCount, maxPlayers int) bool {
	return currentPlayerCount < maxPlayers
}

// CanStartGame returns true if currentPlayerCount is within [minPlayers, maxPlayers].
func CanStartGame(currentPlayerCount, minPlayers, maxPlayers int) bool {
	return currentPlayerCount >= minPlayers && currentPlayerCount <= maxPlayers
}

// DefaultRoleDistribution mirrors the reference configuration's default split
// for a 7-player game (3 villagers, 2 werewolves, 1 seer, 1 witch) and scales
// the werewolf/villager counts for other player counts while keeping exactly
// one seer and one witch.
func DefaultRoleDistribution(totalPlayers int) map[Role]int {
	werewolfCount := (totalPlayers + 1) / 4
	if werewolfCount < 1 {
		werewolfCount = 1
	}
	seerCount := 1
	witchCount := 1
	villagerCount := totalPlayers - werewolfCount - seerCount - witchCount
	if villagerCount < 0 {
		villagerCount = 0
	}

	return map[Role]int{
		RoleVillager: villagerCount,
		RoleWerewolf: werewolfCount,
		RoleSeer:     seerCount,
		RoleWitch:    witchCount,
	}
}

// ValidateRoleDistribution checks that an explicit role distribution (spec §6
// game_settings.roles) sums to totalPlayers and has no negative counts.
func ValidateRoleDistribution(counts map[Role]int, totalPlayers int) error {
	sum := 0
	for role, n := range counts {
		if n < 0 {
			return fmt.Errorf("role %s has negative count %d", role, n)
		}
		sum += n
	}
	if sum != totalPlayers {
		return fmt.Errorf("role distribution sums to %d, want %d", sum, totalPlayers)
	}
	return nil
}
