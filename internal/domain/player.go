// This file contains the player and role structs and their supporting methods.

package domain

// --- Player struct --- //

// Player holds the canonical, engine-owned data for one seat (I1-I3).
// ID/Name/Role are immutable after AssignRoles; Alive, DeathRound, DeathCause
// and VotesReceived are the only fields mutated after setup, and only by the
// State Store.
type Player struct {
	ID   int
	Name string
	Role Role

	Alive         bool
	DeathRound    int
	DeathCause    string
	VotesReceived int
}

// NewPlayer creates a new live, role-unassigned player.
// Role assignment happens later via GameState.AssignRoles.
func NewPlayer(id int, name string) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Role:  RoleUnknown,
		Alive: true,
	}
}

func (p *Player) IsAlive() bool {
	return p.Alive
}

// --- Role enum --- //

// Role is one of the four supported roles (spec Non-goals fix this set at four).
type Role int

const (
	RoleUnknown Role = iota
	RoleVillager
	RoleWerewolf
	RoleSeer
	RoleWitch
)

func (r Role) String() string {
	switch r {
	case RoleUnknown:
		return "unknown"
	case RoleVillager:
		return "villager"
	case RoleWerewolf:
		return "werewolf"
	case RoleSeer:
		return "seer"
	case RoleWitch:
		return "witch"
	default:
		return "invalid"
	}
}

// Faction is Villager (Villager ∪ Seer ∪ Witch) or Werewolf (see GLOSSARY).
type Faction int

const (
	FactionUnknown Faction = iota
	FactionVillager
	FactionWerewolf
)

func (f Faction) String() string {
	switch f {
	case FactionVillager:
		return "villager"
	case FactionWerewolf:
		return "werewolf"
	default:
		return "unknown"
	}
}

// IsVillagerFaction reports whether the role belongs to the village coalition.
func (r Role) IsVillagerFaction() bool {
	return r == RoleVillager || r == RoleSeer || r == RoleWitch
}

// IsWerewolfFaction reports whether the role belongs to the werewolf faction.
func (r Role) IsWerewolfFaction() bool {
	return r == RoleWerewolf
}

// Faction returns the coalition this role belongs to.
func (r Role) Faction() Faction {
	switch {
	case r.IsWerewolfFaction():
		return FactionWerewolf
	case r.IsVillagerFaction():
		return FactionVillager
	default:
		return FactionUnknown
	}
}

// HasNightAction reports whether this role acts during the Night phase.
// Plain villagers have no night action.
func (r Role) HasNightAction() bool {
	return r == RoleWerewolf || r == RoleSeer || r == RoleWitch
}
