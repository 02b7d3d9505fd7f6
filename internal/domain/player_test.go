package domain

import "testing"

func TestNewPlayer(t *testing.T) {
	p := NewPlayer(1, "Aldric")

	if p.ID != 1 {
		t.Errorf("ID: got %d, expected 1", p.ID)
	}
	if p.Name != "Aldric" {
		t.Errorf("Name: got %s, expected Aldric", p.Name)
	}
	if p.Role != RoleUnknown {
		t.Errorf("Role: got %v, expected RoleUnknown (assigned later)", p.Role)
	}
	if !p.Alive {
		t.Error("new player should be alive")
	}
}

func TestRoleString(t *testing.T) {
	tests := []struct {
		role     Role
		expected string
	}{
		{RoleUnknown, "unknown"},
		{RoleVillager, "villager"},
		{RoleWerewolf, "werewolf"},
		{RoleSeer, "seer"},
		{RoleWitch, "witch"},
		{Role(999), "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.role.String(); got != tt.expected {
				t.Errorf("got %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestRoleIsVillagerFaction(t *testing.T) {
	tests := []struct {
		role     Role
		expected bool
	}{
		{RoleVillager, true},
		{RoleSeer, true},
		{RoleWitch, true},
		{RoleWerewolf, false},
		{RoleUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := tt.role.IsVillagerFaction(); got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRoleIsWerewolfFaction(t *testing.T) {
	tests := []struct {
		role     Role
		expected bool
	}{
		{RoleWerewolf, true},
		{RoleVillager, false},
		{RoleSeer, false},
		{RoleWitch, false},
		{RoleUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := tt.role.IsWerewolfFaction(); got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRoleFaction(t *testing.T) {
	tests := []struct {
		role     Role
		expected Faction
	}{
		{RoleWerewolf, FactionWerewolf},
		{RoleVillager, FactionVillager},
		{RoleSeer, FactionVillager},
		{RoleWitch, FactionVillager},
		{RoleUnknown, FactionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := tt.role.Faction(); got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRoleHasNightAction(t *testing.T) {
	tests := []struct {
		role     Role
		expected bool
	}{
		{RoleWerewolf, true},
		{RoleSeer, true},
		{RoleWitch, true},
		{RoleVillager, false},
		{RoleUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := tt.role.HasNightAction(); got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}
