package system

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/config"
)

const testDT = 1.0 / 60.0

// fakePlane is a wall perpendicular to +Z that rays can hit
type fakePlane struct {
	z        float64
	layer    entity.LayerMask
	collider entity.Collider
}

type fakePhysics struct {
	grounded  bool
	groundRay bool
	ceiling   float64 // capsule tops above this are blocked; 0 disables
	planes    []fakePlane

	raycasts      int
	capsuleChecks int
}

func (p *fakePhysics) SphereCheck(center mgl64.Vec3, radius float64, mask entity.LayerMask) bool {
	return p.grounded
}

func (p *fakePhysics) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask entity.LayerMask) (entity.Hit, bool) {
	p.raycasts++
	if dir.Y() < -0.99 {
		return entity.Hit{Normal: entity.Up}, p.groundRay
	}
	if dir.Z() <= 0 {
		return entity.Hit{}, false
	}

	best := -1
	bestT := 0.0
	for i, pl := range p.planes {
		if !mask.Has(pl.layer) {
			continue
		}
		t := (pl.z - origin.Z()) / dir.Z()
		if t <= 0 || t > maxDist {
			continue
		}
		if best < 0 || t < bestT {
			best, bestT = i, t
		}
	}
	if best < 0 {
		return entity.Hit{}, false
	}
	return entity.Hit{
		Point:    origin.Add(dir.Mul(bestT)),
		Normal:   mgl64.Vec3{0, 0, -1},
		Distance: bestT,
		Collider: p.planes[best].collider,
	}, true
}

func (p *fakePhysics) CapsuleCheck(p0, p1 mgl64.Vec3, radius float64, mask entity.LayerMask) bool {
	p.capsuleChecks++
	return p.ceiling > 0 && p1.Y()+radius > p.ceiling
}

// fakeMover never lets the feet sink below y=0
type fakeMover struct {
	moves      int
	lastHeight float64
}

func (m *fakeMover) Move(from, displacement mgl64.Vec3, height float64) mgl64.Vec3 {
	m.moves++
	m.lastHeight = height
	to := from.Add(displacement)
	if to.Y() < 0 {
		to[1] = 0
	}
	return to
}

type fakeAnimation struct {
	triggers []string
	bools    map[string]bool
	floats   map[string]float64
}

func newFakeAnimation() *fakeAnimation {
	return &fakeAnimation{bools: map[string]bool{}, floats: map[string]float64{}}
}

func (a *fakeAnimation) SetTrigger(weapon entity.EntityID, name string) {
	a.triggers = append(a.triggers, name)
}

func (a *fakeAnimation) SetBool(weapon entity.EntityID, name string, value bool) {
	a.bools[name] = value
}

func (a *fakeAnimation) SetFloat(weapon entity.EntityID, name string, value float64) {
	a.floats[name] = value
}

func (a *fakeAnimation) count(name string) int {
	n := 0
	for _, t := range a.triggers {
		if t == name {
			n++
		}
	}
	return n
}

type fakeEffects struct {
	next      EffectID
	live      map[EffectID]Effect
	spawned   []Effect
	despawned []EffectID
}

func newFakeEffects() *fakeEffects {
	return &fakeEffects{live: map[EffectID]Effect{}}
}

func (e *fakeEffects) Spawn(effect Effect) EffectID {
	e.next++
	e.live[e.next] = effect
	e.spawned = append(e.spawned, effect)
	return e.next
}

func (e *fakeEffects) Despawn(id EffectID) {
	delete(e.live, id)
	e.despawned = append(e.despawned, id)
}

func (e *fakeEffects) kinds() []EffectKind {
	kinds := make([]EffectKind, 0, len(e.spawned))
	for _, s := range e.spawned {
		kinds = append(kinds, s.Kind)
	}
	return kinds
}

func (e *fakeEffects) countKind(kind EffectKind) int {
	n := 0
	for _, s := range e.spawned {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

type playedSound struct {
	name   string
	pitch  float64
	volume float64
}

type fakeAudio struct {
	played  []playedSound
	stopped []string
}

func (a *fakeAudio) Play(sound string, pitch, volume float64) {
	a.played = append(a.played, playedSound{sound, pitch, volume})
}

func (a *fakeAudio) Stop(sound string) {
	a.stopped = append(a.stopped, sound)
}

func (a *fakeAudio) count(name string) int {
	n := 0
	for _, p := range a.played {
		if p.name == name {
			n++
		}
	}
	return n
}

// fakeTarget is a damageable box with hit points
type fakeTarget struct {
	health   int
	hits     int
	consumed bool
}

func (t *fakeTarget) ApplyDamage(amount int) bool {
	t.hits++
	t.health -= amount
	return t.health <= 0
}

func (t *fakeTarget) Consume() {
	t.consumed = true
}

type testRig struct {
	physics   *fakePhysics
	mover     *fakeMover
	anim      *fakeAnimation
	effects   *fakeEffects
	audio     *fakeAudio
	collab    Collaborators
	scheduler *Scheduler
}

func createTestRig() *testRig {
	r := &testRig{
		physics:   &fakePhysics{grounded: true, groundRay: true},
		mover:     &fakeMover{},
		anim:      newFakeAnimation(),
		effects:   newFakeEffects(),
		audio:     &fakeAudio{},
		scheduler: NewScheduler(),
	}
	r.collab = Collaborators{
		Physics:   r.physics,
		Mover:     r.mover,
		Animation: r.anim,
		Effects:   r.effects,
		Audio:     r.audio,
	}
	return r
}

func createTestRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func createTestTuning() *config.TuningConfig {
	return &config.TuningConfig{
		View: config.ViewConfig{
			SensitivityX:   12,
			SensitivityY:   12,
			AimingEffector: 0.5,
			PitchMin:       -70,
			PitchMax:       80,
		},
		Movement: config.MovementConfig{
			WalkForwardSpeed:     4,
			WalkStrafeSpeed:      3,
			RunForwardSpeed:      7,
			RunStrafeSpeed:       5,
			FallingSpeedEffector: 0.5,
			CrouchSpeedEffector:  0.6,
			ProneSpeedEffector:   0.3,
			AimingSpeedEffector:  0.5,
		},
		Jump:    config.JumpConfig{Height: 6, Falloff: 0.2},
		Gravity: config.GravityConfig{Amount: 20, Min: -50, GroundedFloor: -1},
		Grounding: config.GroundingConfig{
			Radius:           0.3,
			ExtraRayDistance: 0.5,
			FallingSpeed:     0.5,
		},
		Stance: config.StanceConfig{
			Smoothing:   0.15,
			ProbeRadius: 0.3,
			ProbeSkin:   0.05,
			Stand:       config.StanceProfileConfig{CameraHeight: 1.6, ColliderHeight: 1.8, ColliderCenter: [3]float64{0, 0.9, 0}},
			Crouch:      config.StanceProfileConfig{CameraHeight: 1.0, ColliderHeight: 1.2, ColliderCenter: [3]float64{0, 0.6, 0}},
			Prone:       config.StanceProfileConfig{CameraHeight: 0.3, ColliderHeight: 0.5, ColliderCenter: [3]float64{0, 0.25, 0}},
		},
		Lean:      config.LeanConfig{Angle: 15, Smoothing: 0.1, CancelSpeed: 3},
		Sprint:    config.SprintConfig{Cooldown: 0.5, ForwardThreshold: 0.2},
		Crosshair: config.CrosshairConfig{NormalSize: 50, MovingSize: 75},
		Footsteps: config.FootstepConfig{
			MinSpeed:     0.1,
			RunSpeed:     5,
			WalkInterval: 0.5,
			RunInterval:  0.33,
			WalkPitch:    1.0,
			RunPitch:     1.3,
			Volume:       0.8,
		},
		Interaction: config.InteractionConfig{Range: 3},
		Layers:      config.LayerConfig{Ground: 1, Player: 1},
	}
}

func createTestRifleStats() entity.WeaponStats {
	return entity.WeaponStats{
		Category:         entity.CategoryRifle,
		Damage:           25,
		Range:            100,
		HitMask:          entity.AllLayers,
		MagazineCapacity: 30,
		StartingReserve:  90,
		BulletsPerTap:    1,
		AllowButtonHold:  true,
		TimeBetweenShots: 0.1,
		ReloadTime:       1.5,
		Decals: entity.DecalLifetimes{
			Environment: 0.75,
			EnemyHit:    0.75,
			EnemyKill:   5,
			BlowUpHit:   0.75,
			BlowUpKill:  0.5,
			MuzzleFlash: 1,
		},
		Sway: entity.SwaySettings{
			Amount:            4,
			Smoothing:         0.1,
			ResetSmoothing:    0.1,
			ClampX:            8,
			ClampY:            8,
			MovementX:         6,
			MovementY:         6,
			MovementSmoothing: 0.1,
			BreathAmountA:     1,
			BreathAmountB:     2,
			BreathScale:       250,
			BreathLerp:        14,
		},
		Sight: entity.SightSettings{
			RestPosition:  mgl64.Vec3{0.25, -0.25, 0.5},
			SightPosition: mgl64.Vec3{0, 0.08, 0.1},
			Offset:        0.35,
			AimingInTime:  0.15,
		},
	}
}

func createTestKnifeStats() entity.WeaponStats {
	stats := createTestRifleStats()
	stats.Category = entity.CategoryMelee
	stats.Damage = 50
	stats.Range = 2
	stats.HitMask = 2
	stats.MagazineCapacity = 0
	stats.StartingReserve = 0
	stats.AllowButtonHold = false
	stats.TimeBetweenShots = 0.5
	stats.Decals.EnemyKill = 0
	return stats
}

// createTestWeapon returns an active weapon with its reserve set
func createTestWeapon(stats entity.WeaponStats, reserve int) *entity.Weapon {
	pouch := entity.NewAmmoPouch()
	pouch.Set(stats.Category, reserve)
	w := entity.NewWeapon(1, stats.Category.String(), 1, stats, pouch)
	w.Activate()
	return w
}

func createTestCharacter() *entity.Character {
	c := entity.NewCharacter(mgl64.Vec3{}, 0, entity.StanceProfile{
		CameraHeight:   1.6,
		ColliderHeight: 1.8,
		ColliderCenter: mgl64.Vec3{0, 0.9, 0},
	})
	c.Grounded = true
	return c
}
