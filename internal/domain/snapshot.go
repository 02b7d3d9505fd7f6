// This file implements the role-hidden Snapshot projection (I7): the view of
// GameState that is safe to hand to an agent's policy. Snapshot always hides
// other players' roles unless the viewer has a legitimate reason to know them
// (the viewer's own role, or werewolf-to-werewolf teammate knowledge).

package domain

// PlayerView is the externally visible slice of a Player. Role is RoleUnknown
// unless the snapshot's viewer is entitled to see it.
type PlayerView struct {
	ID         int
	Name       string
	Alive      bool
	Role       Role // RoleUnknown unless revealed to this viewer
	DeathRound int
	DeathCause string
}

// Snapshot is an immutable, role-hidden view of the game state, frozen at the
// moment it was taken. It is the only form of game state ever handed to an
// agent's decision-making code (spec §3: "Agents never see the mutable
// GameState directly").
type Snapshot struct {
	GameID string
	Round  int
	Phase  Phase
	Winner Winner

	Players []PlayerView

	// ViewerID is 0 for a fully public snapshot (e.g. observer/log sink).
	ViewerID int
	// ViewerRole is the viewing player's own role, always visible to themself.
	ViewerRole Role
}

// Project produces a Snapshot of g as seen by viewerID (I7): for every live
// player only {id, name, alive} is visible; dead players additionally reveal
// death_round/death_cause. Role fields are redacted unless the viewer is
// looking at themself, a werewolf teammate, or revealRolesOnDeath is set and
// the player in question is dead. viewerID 0 means no privileged viewer
// (observer/log-sink view).
func (g *GameState) Project(viewerID int, revealRolesOnDeath bool) Snapshot {
	viewer := g.Players[viewerID]

	var viewerRole Role
	var teammates map[int]bool
	if viewer != nil {
		viewerRole = viewer.Role
		if viewer.Role == RoleWerewolf {
			teammates = make(map[int]bool)
			for _, id := range g.WerewolfTeammates(viewerID) {
				teammates[id] = true
			}
		}
	}

	ids := make([]int, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	sortInts(ids)

	views := make([]PlayerView, 0, len(ids))
	for _, id := range ids {
		p := g.Players[id]
		view := PlayerView{
			ID:    p.ID,
			Name:  p.Name,
			Alive: p.Alive,
			Role:  RoleUnknown,
		}
		if !p.Alive {
			view.DeathRound = p.DeathRound
			view.DeathCause = p.DeathCause
		}
		switch {
		case p.ID == viewerID:
			view.Role = p.Role
		case teammates != nil && teammates[p.ID]:
			view.Role = p.Role
		case !p.Alive && revealRolesOnDeath:
			view.Role = p.Role
		}
		views = append(views, view)
	}

	return Snapshot{
		GameID:     g.ID,
		Round:      g.Round,
		Phase:      g.Phase,
		Winner:     g.Winner,
		Players:    views,
		ViewerID:   viewerID,
		ViewerRole: viewerRole,
	}
}

// ProjectPublic is Project(0, revealRolesOnDeath): a snapshot with no
// privileged viewer, used for logging and observer tooling.
func (g *GameState) ProjectPublic(revealRolesOnDeath bool) Snapshot {
	return g.Project(0, revealRolesOnDeath)
}

// ProjectFinal is the full, all-roles-visible view used once the game has
// ended (spec §4: the end-of-game summary is the one place a total reveal is
// expected, independent of the reveal_roles_on_death configuration flag).
func (g *GameState) ProjectFinal() Snapshot {
	ids := make([]int, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	sortInts(ids)

	views := make([]PlayerView, 0, len(ids))
	for _, id := range ids {
		p := g.Players[id]
		views = append(views, PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Alive:      p.Alive,
			Role:       p.Role,
			DeathRound: p.DeathRound,
			DeathCause: p.DeathCause,
		})
	}

	return Snapshot{
		GameID:  g.ID,
		Round:   g.Round,
		Phase:   g.Phase,
		Winner:  g.Winner,
		Players: views,
	}
}

// AlivePlayerIDs returns the IDs of alive players in the snapshot, ascending.
func (s Snapshot) AlivePlayerIDs() []int {
	var ids []int
	for _, p := range s.Players {
		if p.Alive {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
