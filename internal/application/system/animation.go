package system

import "github.com/younwookim/fpscore/internal/domain/entity"

// landingDelay is how long the character must be airborne before touching
// down plays the landing reaction
const landingDelay = 0.1

// WeaponAnimationSystem feeds locomotion state to the weapon animator
type WeaponAnimationSystem struct {
	sink AnimationSink
}

// NewWeaponAnimationSystem creates a new weapon animation system
func NewWeaponAnimationSystem(sink AnimationSink) (*WeaponAnimationSystem, error) {
	if sink == nil {
		return nil, missing("animation sink")
	}
	return &WeaponAnimationSystem{sink: sink}, nil
}

// Update sets the per-frame parameters and fires landing and falling
// triggers on ground contact changes
func (s *WeaponAnimationSystem) Update(c *entity.Character, w *entity.Weapon, dt float64) {
	if w.GroundedTrigger {
		w.AirborneTime = 0
	} else {
		w.AirborneTime += dt
	}

	switch {
	case c.Grounded && !w.GroundedTrigger && w.AirborneTime > landingDelay:
		s.sink.SetTrigger(w.ID, AnimLand)
		w.GroundedTrigger = true
	case !c.Grounded && w.GroundedTrigger:
		s.sink.SetTrigger(w.ID, AnimFalling)
		w.GroundedTrigger = false
	}

	s.sink.SetBool(w.ID, AnimIsSprinting, c.Sprinting)
	s.sink.SetFloat(w.ID, AnimWeaponSpeed, c.AnimationSpeed)
}

// TriggerJump plays the jump reaction on the weapon
func (s *WeaponAnimationSystem) TriggerJump(w *entity.Weapon) {
	s.sink.SetTrigger(w.ID, AnimJump)
	w.GroundedTrigger = false
}
