package system

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/domain/entity"
)

// ErrMissingCollaborator is returned by constructors when a required
// dependency is nil.
var ErrMissingCollaborator = errors.New("missing collaborator")

func missing(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingCollaborator, name)
}

// PhysicsQuery answers overlap and ray questions about the world
type PhysicsQuery interface {
	SphereCheck(center mgl64.Vec3, radius float64, mask entity.LayerMask) bool
	Raycast(origin, dir mgl64.Vec3, maxDist float64, mask entity.LayerMask) (entity.Hit, bool)
	CapsuleCheck(p0, p1 mgl64.Vec3, radius float64, mask entity.LayerMask) bool
}

// Mover applies a displacement to the character's feet and returns the
// position it actually reached. height is the current collider height.
type Mover interface {
	Move(from, displacement mgl64.Vec3, height float64) mgl64.Vec3
}

// AnimationSink receives animation parameter updates for a weapon
type AnimationSink interface {
	SetTrigger(weapon entity.EntityID, name string)
	SetBool(weapon entity.EntityID, name string, value bool)
	SetFloat(weapon entity.EntityID, name string, value float64)
}

// Animation parameter names
const (
	AnimJump        = "Jump"
	AnimLand        = "Land"
	AnimFalling     = "Falling"
	AnimIsSprinting = "isSprinting"
	AnimReload      = "reload"
	AnimAttack      = "attack"
	AnimWeaponSpeed = "WeaponAnimationSpeed"
)

// EffectKind identifies a spawned visual effect
type EffectKind int

const (
	EffectMuzzleFlash EffectKind = iota
	EffectDecal
	EffectEnemyHit
	EffectEnemyKill
	EffectBlowUpHit
	EffectBlowUpKill
)

// String returns the string representation of the effect kind
func (k EffectKind) String() string {
	switch k {
	case EffectMuzzleFlash:
		return "muzzle_flash"
	case EffectDecal:
		return "decal"
	case EffectEnemyHit:
		return "enemy_hit"
	case EffectEnemyKill:
		return "enemy_kill"
	case EffectBlowUpHit:
		return "blowup_hit"
	case EffectBlowUpKill:
		return "blowup_kill"
	default:
		return "unknown"
	}
}

// Effect is a request to show something at a point in the world
type Effect struct {
	Kind     EffectKind
	Position mgl64.Vec3
	Normal   mgl64.Vec3
}

// EffectID identifies a spawned effect so it can be removed later
type EffectID uint64

// EffectSink spawns and removes visual effects
type EffectSink interface {
	Spawn(e Effect) EffectID
	Despawn(id EffectID)
}

// Sound names
const (
	SoundShot     = "shot"
	SoundMelee    = "melee"
	SoundReload   = "reload"
	SoundPickup   = "ammo_pickup"
	SoundFootstep = "footstep"
)

// AudioSink plays and stops sounds
type AudioSink interface {
	Play(sound string, pitch, volume float64)
	Stop(sound string)
}

// Collaborators bundles the outside world the core talks to
type Collaborators struct {
	Physics   PhysicsQuery
	Mover     Mover
	Animation AnimationSink
	Effects   EffectSink
	Audio     AudioSink
}

// Validate reports the first missing collaborator
func (c Collaborators) Validate() error {
	switch {
	case c.Physics == nil:
		return missing("physics query")
	case c.Mover == nil:
		return missing("mover")
	case c.Animation == nil:
		return missing("animation sink")
	case c.Effects == nil:
		return missing("effect sink")
	case c.Audio == nil:
		return missing("audio sink")
	}
	return nil
}
