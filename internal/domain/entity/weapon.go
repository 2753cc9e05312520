package entity

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// WeaponCategory groups weapons that share an ammo reserve
type WeaponCategory int

const (
	CategoryRifle WeaponCategory = iota
	CategoryShotgun
	CategoryPistol
	CategoryMelee
)

// String returns the string representation of the category
func (c WeaponCategory) String() string {
	switch c {
	case CategoryRifle:
		return "rifle"
	case CategoryShotgun:
		return "shotgun"
	case CategoryPistol:
		return "pistol"
	case CategoryMelee:
		return "melee"
	default:
		return "unknown"
	}
}

// ParseWeaponCategory converts a config string to a category
func ParseWeaponCategory(s string) (WeaponCategory, error) {
	switch strings.ToLower(s) {
	case "rifle":
		return CategoryRifle, nil
	case "shotgun":
		return CategoryShotgun, nil
	case "pistol":
		return CategoryPistol, nil
	case "melee", "knife":
		return CategoryMelee, nil
	default:
		return 0, fmt.Errorf("unknown weapon category %q", s)
	}
}

// DecalLifetimes are seconds before an effect is despawned. Zero or less
// keeps the effect for the rest of the session.
type DecalLifetimes struct {
	Environment float64
	EnemyHit    float64
	EnemyKill   float64
	BlowUpHit   float64
	BlowUpKill  float64
	MuzzleFlash float64
}

// SwaySettings tune the procedural weapon motion
type SwaySettings struct {
	Amount         float64
	InvertX        bool
	InvertY        bool
	Smoothing      float64
	ResetSmoothing float64
	ClampX         float64
	ClampY         float64

	MovementX         float64
	MovementY         float64
	MovementInvertX   bool
	MovementInvertY   bool
	MovementSmoothing float64

	BreathAmountA float64
	BreathAmountB float64
	BreathScale   float64
	BreathLerp    float64
}

// SightSettings describe the rest pose and the aim-down-sight alignment.
// Positions are in camera space.
type SightSettings struct {
	RestPosition  mgl64.Vec3
	SightPosition mgl64.Vec3 // sight relative to the weapon root
	Offset        float64    // distance in front of the camera
	AimingInTime  float64
}

// WeaponStats is the immutable tuning of a weapon
type WeaponStats struct {
	Category              WeaponCategory
	Damage                int
	Spread                float64
	Range                 float64
	HitMask               LayerMask
	MagazineCapacity      int
	StartingReserve       int
	BulletsPerTap         int
	AllowButtonHold       bool
	TimeBetweenShots      float64
	TimeBetweenBurstShots float64
	ReloadTime            float64

	Decals DecalLifetimes
	Sway   SwaySettings
	Sight  SightSettings
}

// Weapon is the fire-control state of one weapon instance
type Weapon struct {
	ID    EntityID
	Name  string
	Slot  int
	Stats WeaponStats

	RoundsInMagazine int
	FireReady        bool
	Reloading        bool
	BurstRemaining   int
	Triggering       bool
	Active           bool

	// Generation changes whenever the weapon is deactivated so that
	// callbacks scheduled before can tell they are stale.
	Generation uint64

	Pose WeaponPose

	// Animation bookkeeping
	GroundedTrigger bool
	AirborneTime    float64

	ammo *AmmoPouch
}

// NewWeapon creates a weapon with a full magazine drawing on the pouch
func NewWeapon(id EntityID, name string, slot int, stats WeaponStats, pouch *AmmoPouch) *Weapon {
	if stats.BulletsPerTap < 1 {
		stats.BulletsPerTap = 1
	}
	w := &Weapon{
		ID:               id,
		Name:             name,
		Slot:             slot,
		Stats:            stats,
		RoundsInMagazine: stats.MagazineCapacity,
		FireReady:        true,
		GroundedTrigger:  true,
		ammo:             pouch,
	}
	w.Pose = NewWeaponPose(stats)
	return w
}

// Category returns the ammo category of the weapon
func (w *Weapon) Category() WeaponCategory {
	return w.Stats.Category
}

// UsesAmmo is false for melee tools
func (w *Weapon) UsesAmmo() bool {
	return w.Stats.Category != CategoryMelee
}

// Reserve returns the rounds left outside the magazine
func (w *Weapon) Reserve() int {
	if w.ammo == nil || !w.UsesAmmo() {
		return 0
	}
	return w.ammo.Reserve(w.Stats.Category)
}

// IsFull reports whether the magazine is at capacity
func (w *Weapon) IsFull() bool {
	return w.RoundsInMagazine >= w.Stats.MagazineCapacity
}

// RoundsToLoad is how many rounds a reload would move right now
func (w *Weapon) RoundsToLoad() int {
	missing := w.Stats.MagazineCapacity - w.RoundsInMagazine
	return max(0, min(missing, w.Reserve()))
}

// ConsumeRound removes one round from the magazine
func (w *Weapon) ConsumeRound() bool {
	if w.RoundsInMagazine <= 0 {
		return false
	}
	w.RoundsInMagazine--
	return true
}

// LoadFromReserve moves min(reserve, capacity-rounds) into the magazine
// and returns the number moved.
func (w *Weapon) LoadFromReserve() int {
	n := w.RoundsToLoad()
	if n == 0 {
		return 0
	}
	taken := w.ammo.Take(w.Stats.Category, n)
	w.RoundsInMagazine += taken
	return taken
}

// AddReserve grows the shared reserve of the weapon's category
func (w *Weapon) AddReserve(amount int) {
	if w.ammo == nil || !w.UsesAmmo() {
		return
	}
	w.ammo.Add(w.Stats.Category, amount)
}

// ResetAmmo refills the magazine and resets the category reserve
func (w *Weapon) ResetAmmo() {
	w.RoundsInMagazine = w.Stats.MagazineCapacity
	if w.ammo != nil && w.UsesAmmo() {
		w.ammo.Set(w.Stats.Category, w.Stats.StartingReserve)
	}
}

// Activate marks the weapon as the one in hand
func (w *Weapon) Activate() {
	w.Active = true
	w.GroundedTrigger = true
	w.AirborneTime = 0
}

// Deactivate puts the weapon away. Pending reloads and bursts are
// abandoned. A running fire cooldown keeps counting down.
func (w *Weapon) Deactivate() {
	w.Active = false
	w.Generation++
	w.Reloading = false
	w.BurstRemaining = 0
	w.Triggering = false
}

// Firing reports whether the trigger is held or a burst is in flight
func (w *Weapon) Firing() bool {
	return w.Triggering || w.BurstRemaining > 0
}

// HUDText formats the ammo counter
func (w *Weapon) HUDText() string {
	if !w.UsesAmmo() {
		return w.Name
	}
	return fmt.Sprintf("%d / %d Reserve: %d", w.RoundsInMagazine, w.Stats.MagazineCapacity, w.Reserve())
}
