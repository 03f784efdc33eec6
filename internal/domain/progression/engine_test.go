package progression

import (
	"testing"

	"singularity/config"
	"singularity/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestAdvance_CarryOverScenario(t *testing.T) {
	// Start level=1, experience=90; gain 30 -> total 120 >= 100 ->
	// level=2, experience=20 (and 20 < 200).
	level, experience := Advance(1, 90, 30)
	assert.Equal(t, 2, level)
	assert.Equal(t, 20, experience)
}

func TestAdvance_MultipleLevels(t *testing.T) {
	// 100 (level 1) + 200 (level 2) consumed, 50 remaining.
	level, experience := Advance(1, 0, 350)
	assert.Equal(t, 3, level)
	assert.Equal(t, 50, experience)
}

func TestAdvance_ZeroGainIsIdentity(t *testing.T) {
	level, experience := Advance(4, 250, 0)
	assert.Equal(t, 4, level)
	assert.Equal(t, 250, experience)
}

func TestAdvance_InvariantHolds(t *testing.T) {
	// For any valid start, the result satisfies experience < level*100.
	starts := []struct{ level, experience, gain int }{
		{1, 0, 0},
		{1, 99, 1},
		{2, 199, 1},
		{5, 0, 10000},
		{1, 90, 30},
		{3, 150, 12345},
	}

	for _, s := range starts {
		level, experience := Advance(s.level, s.experience, s.gain)
		assert.GreaterOrEqual(t, level, s.level, "level never decreases")
		assert.GreaterOrEqual(t, experience, 0)
		assert.Less(t, experience, Threshold(level),
			"residual experience must stay below the next threshold (start %+v)", s)
	}
}

func TestApplyAttributeDeltas_FloorsAndDefaults(t *testing.T) {
	current := map[string]int{
		entity.AttrStrength: 3,
		entity.AttrAgility:  1,
	}
	deltas := map[string]int{
		entity.AttrStrength:     2,
		entity.AttrVitality:     1, // absent key defaults to the floor of 1
		entity.AttrIntelligence: 0,
	}

	next := ApplyAttributeDeltas(current, deltas)
	assert.Equal(t, 5, next[entity.AttrStrength])
	assert.Equal(t, 1, next[entity.AttrAgility])
	assert.Equal(t, 2, next[entity.AttrVitality])
	assert.Equal(t, 1, next[entity.AttrIntelligence])

	// Input maps are not mutated.
	assert.Equal(t, 3, current[entity.AttrStrength])
}

func TestApply_FullDelta(t *testing.T) {
	next := Apply(State{
		Level:      1,
		Experience: 90,
		Attributes: map[string]int{entity.AttrStrength: 2},
	}, 30, map[string]int{entity.AttrStrength: 1})

	assert.Equal(t, 2, next.Level)
	assert.Equal(t, 20, next.Experience)
	assert.Equal(t, 3, next.Attributes[entity.AttrStrength])
}

func TestStartingAttributes_MageScenario(t *testing.T) {
	attrs := StartingAttributes(entity.ClassMage, config.DefaultClassBonuses())

	assert.Equal(t, 2, attrs[entity.AttrStrength])
	assert.Equal(t, 2, attrs[entity.AttrAgility])
	assert.Equal(t, 2, attrs[entity.AttrVitality])
	assert.Equal(t, 4, attrs[entity.AttrIntelligence])
}

func TestStartingAttributes_UnknownClassFallsBackToWarrior(t *testing.T) {
	bonuses := config.DefaultClassBonuses()

	unknown := StartingAttributes(entity.Class("paladin"), bonuses)
	warrior := StartingAttributes(entity.ClassWarrior, bonuses)
	assert.Equal(t, warrior, unknown)
	assert.Equal(t, 4, warrior[entity.AttrStrength])
}
