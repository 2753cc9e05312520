package system

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/config"
	"github.com/younwookim/fpscore/internal/infrastructure/telemetry"
)

// FrameDeps is everything NewFrame needs to wire the systems together
type FrameDeps struct {
	Spawn    mgl64.Vec3
	SpawnYaw float64
	Tuning   *config.TuningConfig
	Collab   Collaborators
	Registry *WeaponRegistry
	Pickups  PickupTable
	Rng      *rand.Rand
	Metrics  *telemetry.CombatMetrics
	Logger   zerolog.Logger
}

// Frame owns the character and runs every system once per fixed update
// in a fixed order
type Frame struct {
	Character *entity.Character
	Scheduler *Scheduler

	Locomotion  *LocomotionSystem
	Aim         *AimSystem
	Animation   *WeaponAnimationSystem
	FireControl *FireControlSystem
	Equipment   *EquipmentSystem
	Interaction *InteractionSystem
	Footsteps   *FootstepSystem

	Crosshair entity.CrosshairState
	frame     int
}

// NewFrame builds all systems and a character at spawn
func NewFrame(deps FrameDeps) (*Frame, error) {
	if deps.Tuning == nil {
		return nil, missing("tuning config")
	}
	if err := deps.Collab.Validate(); err != nil {
		return nil, err
	}
	if deps.Registry == nil {
		deps.Registry = NewWeaponRegistry()
	}

	f := &Frame{Scheduler: NewScheduler()}

	var err error
	if f.Locomotion, err = NewLocomotionSystem(deps.Tuning, deps.Collab.Physics, deps.Collab.Mover, deps.Metrics, deps.Logger); err != nil {
		return nil, err
	}
	if f.Aim, err = NewAimSystem(&deps.Tuning.Crosshair); err != nil {
		return nil, err
	}
	if f.Animation, err = NewWeaponAnimationSystem(deps.Collab.Animation); err != nil {
		return nil, err
	}
	if f.FireControl, err = NewFireControlSystem(deps.Collab, f.Scheduler, deps.Rng, deps.Metrics, deps.Logger); err != nil {
		return nil, err
	}
	if f.Equipment, err = NewEquipmentSystem(deps.Registry, deps.Logger); err != nil {
		return nil, err
	}
	if f.Interaction, err = NewInteractionSystem(deps.Collab, deps.Registry, deps.Pickups, deps.Tuning.Interaction.Range, deps.Metrics, deps.Logger); err != nil {
		return nil, err
	}
	if f.Footsteps, err = NewFootstepSystem(&deps.Tuning.Footsteps, deps.Collab.Audio); err != nil {
		return nil, err
	}

	f.Character = f.Locomotion.NewCharacter(deps.Spawn, deps.SpawnYaw)
	f.Locomotion.OnJump = func() {
		if w := f.Equipment.Active(); w != nil {
			f.Animation.TriggerJump(w)
		}
	}
	return f, nil
}

// Step advances the simulation by one frame of dt seconds
func (f *Frame) Step(in InputSample, dt float64) {
	c := f.Character

	f.Scheduler.Advance(dt)
	f.Equipment.HandleInput(c, in)

	f.Locomotion.Update(c, in, dt)

	if w := f.Equipment.Active(); w != nil {
		f.Aim.Update(c, w, in, dt)
		f.Animation.Update(c, w, dt)
		f.FireControl.Update(c, w, in)
	}
	f.Crosshair = f.Aim.Crosshair(c, in)

	f.Interaction.Update(c, in)
	f.Footsteps.Update(c, dt)

	f.frame++
}

// FrameCount returns the number of steps taken
func (f *Frame) FrameCount() int {
	return f.frame
}

// Respawn resets the character and abandons pending weapon callbacks
func (f *Frame) Respawn() {
	f.Character.Respawn()
	f.Equipment.Redraw(f.Character)
}
