package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// MaxSlots is the number of equipment slots
const MaxSlots = 4

var knownCategories = map[string]bool{
	"rifle":   true,
	"shotgun": true,
	"pistol":  true,
	"melee":   true,
	"knife":   true,
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks the values the locomotion code divides by or clamps with
func (c *TuningConfig) Validate() error {
	if c.Movement.WalkForwardSpeed <= 0 {
		return invalid("movement.walkForwardSpeed must be positive")
	}
	if c.View.PitchMin >= c.View.PitchMax {
		return invalid("view.pitchMin %.1f must be below pitchMax %.1f", c.View.PitchMin, c.View.PitchMax)
	}
	if c.Grounding.Radius <= 0 {
		return invalid("grounding.radius must be positive")
	}
	if c.Stance.ProbeRadius <= 0 {
		return invalid("stance.probeRadius must be positive")
	}
	for name, p := range map[string]StanceProfileConfig{
		"stand":  c.Stance.Stand,
		"crouch": c.Stance.Crouch,
		"prone":  c.Stance.Prone,
	} {
		if p.ColliderHeight <= 0 {
			return invalid("stance.%s.colliderHeight must be positive", name)
		}
	}
	if c.Sprint.Cooldown < 0 {
		return invalid("sprint.cooldown must not be negative")
	}
	return nil
}

// Validate checks slots, categories and the firearm capacities
func (c *WeaponsConfig) Validate() error {
	if len(c.Weapons) == 0 {
		return invalid("no weapons defined")
	}

	seen := make(map[int]string)
	for _, w := range c.Weapons {
		if w.Slot < 1 || w.Slot > MaxSlots {
			return invalid("weapon %s: slot %d out of range 1-%d", w.ID, w.Slot, MaxSlots)
		}
		if other, ok := seen[w.Slot]; ok {
			return invalid("weapon %s: slot %d already used by %s", w.ID, w.Slot, other)
		}
		seen[w.Slot] = w.ID

		category := strings.ToLower(w.Category)
		if !knownCategories[category] {
			return invalid("weapon %s: unknown category %q", w.ID, w.Category)
		}
		if w.Range <= 0 {
			return invalid("weapon %s: range must be positive", w.ID)
		}
		if w.Damage < 0 {
			return invalid("weapon %s: damage must not be negative", w.ID)
		}
		if category == "melee" || category == "knife" {
			continue
		}
		if w.MagazineSize <= 0 {
			return invalid("weapon %s: magazineSize must be positive", w.ID)
		}
		if w.BulletsPerTap < 1 {
			return invalid("weapon %s: bulletsPerTap must be at least 1", w.ID)
		}
		if w.StartingReserve < 0 {
			return invalid("weapon %s: startingReserve must not be negative", w.ID)
		}
	}

	for tag, p := range c.Pickups {
		if !knownCategories[strings.ToLower(p.Category)] {
			return invalid("pickup %s: unknown category %q", tag, p.Category)
		}
		if p.Amount <= 0 {
			return invalid("pickup %s: amount must be positive", tag)
		}
	}
	return nil
}

// Validate checks box extents
func (c *RangeConfig) Validate() error {
	for i, b := range c.Boxes {
		for axis := 0; axis < 3; axis++ {
			if b.Min[axis] > b.Max[axis] {
				return invalid("box %d (%s): min exceeds max on axis %d", i, b.Name, axis)
			}
		}
		if b.Health < 0 {
			return invalid("box %d (%s): health must not be negative", i, b.Name)
		}
	}
	return nil
}
