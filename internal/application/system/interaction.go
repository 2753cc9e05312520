package system

import (
	"github.com/rs/zerolog"
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/telemetry"
)

// PickupTable maps an ammo box tag to the pickup it grants
type PickupTable map[string]entity.AmmoPickup

// InteractionSystem looks at what the camera points at when the interact
// key goes down and collects ammo boxes
type InteractionSystem struct {
	physics  PhysicsQuery
	audio    AudioSink
	registry *WeaponRegistry
	pickups  PickupTable
	reach    float64
	metrics  *telemetry.CombatMetrics
	logger   zerolog.Logger
}

// NewInteractionSystem creates a new interaction system
func NewInteractionSystem(collab Collaborators, registry *WeaponRegistry, pickups PickupTable, reach float64, metrics *telemetry.CombatMetrics, logger zerolog.Logger) (*InteractionSystem, error) {
	if err := collab.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, missing("weapon registry")
	}
	return &InteractionSystem{
		physics:  collab.Physics,
		audio:    collab.Audio,
		registry: registry,
		pickups:  pickups,
		reach:    reach,
		metrics:  metrics,
		logger:   logger.With().Str("system", "interaction").Logger(),
	}, nil
}

// Update handles the interact edge of the frame
func (s *InteractionSystem) Update(c *entity.Character, in InputSample) bool {
	if !in.InteractPressed {
		return false
	}
	return s.Interact(c)
}

// Interact casts the interaction ray and collects an ammo box if one is in
// reach. Returns true when ammo was added.
func (s *InteractionSystem) Interact(c *entity.Character) bool {
	hit, ok := s.physics.Raycast(c.CameraPosition(), c.CameraForward(), s.reach, entity.AllLayers)
	if !ok {
		return false
	}

	pickup, ok := s.pickups[hit.Collider.Tag]
	if !ok {
		return false
	}

	if !s.registry.RouteAmmoPickup(pickup) {
		s.logger.Debug().
			Stringer("category", pickup.Category).
			Msg("no weapon for ammo pickup")
		return false
	}

	if hit.Collider.Pickup != nil {
		hit.Collider.Pickup.Consume()
	}
	s.audio.Play(SoundPickup, 1, 1)
	s.metrics.AmmoPickedUp(pickup.Category.String(), pickup.Amount)
	s.logger.Info().
		Stringer("category", pickup.Category).
		Int("amount", pickup.Amount).
		Msg("ammo picked up")
	return true
}
