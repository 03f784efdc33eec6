// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Attribute names form a fixed set; attributes never drop below 1.
const (
	AttrStrength     = "strength"
	AttrAgility      = "agility"
	AttrVitality     = "vitality"
	AttrIntelligence = "intelligence"
)

// AttributeNames lists the fixed attribute set in display order.
var AttributeNames = []string{AttrStrength, AttrAgility, AttrVitality, AttrIntelligence}

// Class is the character class chosen at registration. It only influences
// the starting attribute distribution.
type Class string

const (
	ClassWarrior Class = "warrior"
	ClassMage    Class = "mage"
	ClassRogue   Class = "rogue"
	ClassCleric  Class = "cleric"
)

// ParseClass canonicalizes a class name. Unrecognized input falls back to
// warrior rather than failing registration.
func ParseClass(s string) Class {
	switch Class(strings.ToLower(strings.TrimSpace(s))) {
	case ClassMage:
		return ClassMage
	case ClassRogue:
		return ClassRogue
	case ClassCleric:
		return ClassCleric
	default:
		return ClassWarrior
	}
}

// Account is the core entity: a registered user's identity plus their game
// progression state.
type Account struct {
	ID           uuid.UUID      // Assigned by the repository at creation, immutable thereafter.
	Email        string         // Unique, stored lower-case.
	Username     string         // Unique, case-sensitive.
	FullName     string         // Display name.
	Class        Class          // Character class, fixed at creation.
	PasswordHash string         // Credential codec output. Never plaintext, never logged.
	Level        int            // >= 1.
	Experience   int            // >= 0 and < Level*100 at all times.
	Attributes   map[string]int // Fixed attribute set, each >= 1.
	Energy       int            // 0 <= Energy <= MaxEnergy. Storage only for this core.
	MaxEnergy    int
	Version      int64 // Optimistic-concurrency counter for progression writes.
	CreatedAt    time.Time
	LastLogin    time.Time
	LastActivity time.Time
}

// NormalizeEmail canonicalizes an email address for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
