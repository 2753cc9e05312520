package entity

import "github.com/go-gl/mathgl/mgl64"

// EntityID is a unique identifier for an entity
type EntityID uint32

// LayerMask selects which collider layers a physics query considers
type LayerMask uint32

// AllLayers matches every collider
const AllLayers LayerMask = ^LayerMask(0)

// Has reports whether any bit of other is set in m
func (m LayerMask) Has(other LayerMask) bool {
	return m&other != 0
}

// Collider tags recognised by the combat and interaction code
const (
	TagNoShoot     = "NoShoot"
	TagEnemy       = "Enemy"
	TagEnemyBlowUp = "EnemyBlowUp"
	TagCrate       = "Crate"
	TagRifleAmmo   = "RifleAmmo"
	TagShotgunAmmo = "ShotgunAmmo"
	TagPistolAmmo  = "PistolAmmo"
)

// Up is the world up axis
var Up = mgl64.Vec3{0, 1, 0}

// Damageable is implemented by anything a hit can hurt.
// ApplyDamage returns true when the hit destroyed the target.
type Damageable interface {
	ApplyDamage(amount int) bool
}

// Consumable is implemented by world objects that disappear once used,
// such as ammo boxes.
type Consumable interface {
	Consume()
}

// Collider is what a physics query reports about the object it touched
type Collider struct {
	ID     EntityID
	Tag    string
	Target Damageable
	Pickup Consumable
}

// Hit is a single raycast result
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Collider Collider
}
