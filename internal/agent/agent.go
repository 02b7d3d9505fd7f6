// Package agent implements the Agent Contract (C3): the fixed interface
// every seat exposes to the engine, a frozen per-seat Identity, and the
// role-private state each seat owns exclusively. How an agent decides is
// delegated to a pluggable Policy (spec §2: "policy is deliberately treated
// as a pluggable collaborator").
package agent

import (
	"context"

	"mafia-engine/internal/domain"
	"mafia-engine/internal/memory"
)

// ActionKind is the tagged-variant discriminator for ActionResult.
type ActionKind string

const (
	ActionKill     ActionKind = "kill"
	ActionDivine   ActionKind = "divine"
	ActionSave     ActionKind = "save"
	ActionPoison   ActionKind = "poison"
	ActionNoAction ActionKind = "no_action"
	ActionReflect  ActionKind = "reflect"
)

// ActionResult is the tagged result of a night action (spec §4.2).
type ActionResult struct {
	Kind    ActionKind
	Target  int // 0 means "no target"
	Success bool
	Message string
}

// NightExtras carries role-conditioned information the engine injects before
// a NightAction call — e.g. the witch's tonight's-victim datum, gated behind
// her still holding the antidote (I4/I5; SPEC_FULL.md Open Question: the gate
// is strict, there is no configuration to relax it).
type NightExtras struct {
	// TonightVictimID is the werewolves' chosen kill target for this round.
	// Populated for the witch only, and only when HasAntidote is true.
	TonightVictimID int
	HasTonightVictim bool
}

// Identity is the immutable profile assigned to a seat at setup. It is
// deliberately decoupled from Agent so Policy implementations never need a
// circular reference back to the seat that owns them.
type Identity struct {
	ID   int
	Name string
	Role domain.Role
}

// Agent is the fixed contract the engine drives every seat through.
type Agent interface {
	Identity() Identity

	Speak(ctx context.Context, snap domain.Snapshot) (string, error)
	Vote(ctx context.Context, snap domain.Snapshot, candidates []int) (int, error)
	NightAction(ctx context.Context, snap domain.Snapshot, extras NightExtras) (ActionResult, error)

	// Reflect drives the day-end self-reflection pass (C8), a supplemented
	// feature private to each agent's own memory.
	Reflect(ctx context.Context, snap domain.Snapshot) (string, error)

	ObserveDeath(playerID int, cause string)
	ObserveVote(voterID, targetID int)

	// Memory exposes the agent's private memory store through an explicit
	// getter (spec §3 Ownership: "external reads only via explicit getters").
	Memory() *memory.Store
}

// Policy is the pluggable decision-maker an Agent delegates to. The engine
// never talks to a Policy directly — only through the owning Seat — so that
// role-private state (WerewolfState/SeerState/WitchState) stays encapsulated.
type Policy interface {
	Speak(ctx context.Context, seat *Seat, snap domain.Snapshot) (string, error)
	Vote(ctx context.Context, seat *Seat, snap domain.Snapshot, candidates []int) (int, error)
	NightAction(ctx context.Context, seat *Seat, snap domain.Snapshot, extras NightExtras) (ActionResult, error)
	Reflect(ctx context.Context, seat *Seat, snap domain.Snapshot) (string, error)
}
