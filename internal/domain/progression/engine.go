// Package progression implements the experience carry-over leveling engine.
// It is a pure function of current state plus a delta: no I/O, no failure
// modes, no partial state.
package progression

import (
	"singularity/internal/domain/entity"
)

const (
	// attributeFloor is the minimum value any attribute can hold. Absent
	// keys default to the floor before a delta is added.
	attributeFloor = 1

	// expPerLevel scales the next-level threshold: level N requires N*100
	// experience to advance.
	expPerLevel = 100
)

// State is an account's progression snapshot.
type State struct {
	Level      int
	Experience int
	Attributes map[string]int
}

// Threshold returns the experience required to advance past the given level.
func Threshold(level int) int {
	return level * expPerLevel
}

// Advance converts an experience gain into a new (level, residual experience)
// pair. The resulting experience is strictly below the new level's threshold
// by construction.
func Advance(level, experience, gained int) (int, int) {
	if level < 1 {
		level = 1
	}
	if experience < 0 {
		experience = 0
	}
	if gained < 0 {
		gained = 0
	}

	total := experience + gained
	for total >= Threshold(level) {
		total -= Threshold(level)
		level++
	}

	return level, total
}

// ApplyAttributeDeltas merges non-negative attribute gains into the current
// attribute map, returning a new map. Attributes never drop below the floor.
func ApplyAttributeDeltas(current, deltas map[string]int) map[string]int {
	next := make(map[string]int, len(current)+len(deltas))
	for attr, value := range current {
		if value < attributeFloor {
			value = attributeFloor
		}
		next[attr] = value
	}

	for attr, gain := range deltas {
		if gain < 0 {
			continue
		}
		base, ok := next[attr]
		if !ok {
			base = attributeFloor
		}
		next[attr] = base + gain
	}

	return next
}

// Apply computes the next progression state from a snapshot and a delta.
func Apply(current State, experienceGained int, attributeDeltas map[string]int) State {
	level, experience := Advance(current.Level, current.Experience, experienceGained)

	return State{
		Level:      level,
		Experience: experience,
		Attributes: ApplyAttributeDeltas(current.Attributes, attributeDeltas),
	}
}

// StartingAttributes builds a fresh attribute map for a new account: a base
// of 1 in each of the four attributes plus the class bonus distribution.
// The bonus table is configuration data; unknown classes fall back to the
// warrior distribution.
func StartingAttributes(class entity.Class, bonuses map[string]map[string]int) map[string]int {
	attrs := make(map[string]int, len(entity.AttributeNames))
	for _, name := range entity.AttributeNames {
		attrs[name] = attributeFloor
	}

	bonus, ok := bonuses[string(class)]
	if !ok {
		bonus = bonuses[string(entity.ClassWarrior)]
	}
	for attr, value := range bonus {
		attrs[attr] += value
	}

	return attrs
}
