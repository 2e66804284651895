// Package gamification drives the goal lifecycle, achievement evaluation,
// XP and leveling, milestone detection, and daily challenge generation.
package gamification

import (
	"math"
)

// LevelingStrategy converts accumulated XP into a level. The original
// product shipped two incompatible curves; leveling is therefore pluggable,
// and whichever strategy is configured is used uniformly by both the
// gamification engine and the analytics aggregator.
type LevelingStrategy interface {
	Level(xp int) int
	Name() string
}

// LinearLeveling levels up every 1000 XP.
type LinearLeveling struct{}

func (LinearLeveling) Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/1000 + 1
}

func (LinearLeveling) Name() string { return "linear" }

// SquareRootLeveling makes each level progressively more expensive:
// level = floor(sqrt(xp/100)) + 1. This is the canonical default.
type SquareRootLeveling struct{}

func (SquareRootLeveling) Level(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return int(math.Sqrt(float64(xp)/100)) + 1
}

func (SquareRootLeveling) Name() string { return "sqrt" }

// StrategyByName returns the named strategy, defaulting to square-root.
func StrategyByName(name string) LevelingStrategy {
	if name == "linear" {
		return LinearLeveling{}
	}
	return SquareRootLeveling{}
}

// BaseXP is the activity-derived XP floor: every created item and every
// recorded event contributes. Awards from goals and achievements stack on
// top of this.
func BaseXP(itemsCreated, totalEvents int) int {
	return itemsCreated*100 + totalEvents*10
}

// priorityMultipliers weight goal-completion XP by priority.
var priorityMultipliers = map[string]float64{
	"high":   1.5,
	"medium": 1.2,
	"low":    1.0,
}

// GoalXP computes the XP awarded for completing a goal.
func GoalXP(target float64, priority string) int {
	mult, ok := priorityMultipliers[priority]
	if !ok {
		mult = 1.0
	}
	base := target / 10
	if base < 1 {
		base = 1
	}
	return int(math.Round(100 * base * mult))
}
