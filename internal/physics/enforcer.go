// Package physics holds the deterministic survival rules that every turn's
// proposed state is corrected against. Nothing here performs I/O.
package physics

import "github.com/tatianab/last-survivor/internal/models"

const (
	hazardDamage       = 5
	hazardThirstCost   = 5
	hazardHungerCost   = 2
	maxResource        = 100
	fallbackClock      = "03:00"
	fallbackClockValue = nightStartMinutes
)

// Enforcer reconciles a proposed state with the survival rules.
type Enforcer struct {
	classifier *Classifier
}

// NewEnforcer returns an Enforcer that reads actions with c.
func NewEnforcer(c *Classifier) *Enforcer {
	return &Enforcer{classifier: c}
}

// Correct returns proposed with its survival fields replaced by what the
// rules allow, given the previous state and the player's action. Neither
// input is modified.
func (e *Enforcer) Correct(previous models.GameState, action string, proposed models.GameState) models.GameState {
	out := proposed.Clone()

	clock, elapsed := resolveClock(previous.Time, proposed.Time)
	out.Time = clock
	out.Temperature = Temperature(elapsed)

	cost := e.classifier.Classify(action)

	if out.Temperature >= HazardTemperature {
		out.Health = max(0, out.Health-hazardDamage)
		cost.Thirst += hazardThirstCost
		cost.Hunger += hazardHungerCost
	}

	// Reserves can only go up through an explicit eating or drinking action.
	if !e.classifier.IsEating(action) {
		out.Hunger = decay(proposed.Hunger, previous.Hunger, cost.Hunger)
	}
	if !e.classifier.IsDrinking(action) {
		out.Thirst = decay(proposed.Thirst, previous.Thirst, cost.Thirst)
	}
	out.Oxygen = decay(proposed.Oxygen, previous.Oxygen, cost.Oxygen)

	out.Health = clamp(out.Health)
	out.Hunger = clamp(out.Hunger)
	out.Thirst = clamp(out.Thirst)
	out.Oxygen = clamp(out.Oxygen)

	if out.Health <= 0 || previous.IsGameOver {
		out.IsGameOver = true
	}
	return out
}

// decay caps the proposed value at what the previous value allows after cost.
func decay(proposed, previous, cost float64) float64 {
	return max(0, min(proposed, previous-cost))
}

func clamp(v float64) float64 {
	return max(0, min(maxResource, v))
}

// resolveClock picks the clock string for the corrected state and its
// elapsed minutes. A proposal that is malformed or earlier than the previous
// time keeps the previous time; if both are malformed the clock resets to 03:00.
func resolveClock(previous, proposed string) (string, int) {
	prevMinutes, prevErr := ParseClock(previous)
	propMinutes, propErr := ParseClock(proposed)
	switch {
	case propErr == nil && (prevErr != nil || propMinutes >= prevMinutes):
		return proposed, propMinutes - nightStartMinutes
	case prevErr == nil:
		return previous, prevMinutes - nightStartMinutes
	default:
		return fallbackClock, fallbackClockValue - nightStartMinutes
	}
}
