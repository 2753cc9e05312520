package system

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/telemetry"
)

const (
	// passThroughSkin moves a ray just past a no-shoot surface
	passThroughSkin = 0.1
	// maxPassThrough bounds how many no-shoot surfaces one ray may cross
	maxPassThrough = 16
	// decalOffset lifts decals off the surface they mark
	decalOffset = 0.001
	// muzzleDistance places the flash in front of the camera
	muzzleDistance = 0.5
)

// FireControlSystem handles firing, bursts, reloads and hit resolution
// for the held weapon
type FireControlSystem struct {
	physics   PhysicsQuery
	effects   EffectSink
	anim      AnimationSink
	audio     AudioSink
	scheduler *Scheduler
	rng       *rand.Rand
	metrics   *telemetry.CombatMetrics
	logger    zerolog.Logger

	// Event callbacks
	OnHit func(hit entity.Hit, destroyed bool)
}

// NewFireControlSystem creates a new fire control system
func NewFireControlSystem(collab Collaborators, scheduler *Scheduler, rng *rand.Rand, metrics *telemetry.CombatMetrics, logger zerolog.Logger) (*FireControlSystem, error) {
	if err := collab.Validate(); err != nil {
		return nil, err
	}
	if scheduler == nil {
		return nil, missing("scheduler")
	}
	if rng == nil {
		return nil, missing("random source")
	}
	return &FireControlSystem{
		physics:   collab.Physics,
		effects:   collab.Effects,
		anim:      collab.Animation,
		audio:     collab.Audio,
		scheduler: scheduler,
		rng:       rng,
		metrics:   metrics,
		logger:    logger.With().Str("system", "firecontrol").Logger(),
	}, nil
}

// Update polls the trigger and reload input for the held weapon
func (s *FireControlSystem) Update(c *entity.Character, w *entity.Weapon, in InputSample) {
	if !w.UsesAmmo() {
		s.updateMelee(c, w, in)
		return
	}

	if in.FirePressed && !c.Sprinting {
		w.Triggering = true
	}
	if in.FireReleased {
		w.Triggering = false
	}

	shooting := in.FirePressed
	if w.Stats.AllowButtonHold {
		shooting = w.Triggering
	}

	if in.ReloadPressed {
		s.Reload(c, w)
	}
	if shooting {
		s.Fire(c, w)
	}

	s.anim.SetBool(w.ID, AnimReload, w.Reloading && !c.Aiming && !w.Firing() && w.GroundedTrigger)
}

// CanFire reports whether a trigger pull would be accepted right now
func (s *FireControlSystem) CanFire(c *entity.Character, w *entity.Weapon) bool {
	return w.Active &&
		w.FireReady &&
		!w.Reloading &&
		w.RoundsInMagazine > 0 &&
		!c.Sprinting
}

// Fire starts a trigger pull of BulletsPerTap rounds. The first round
// leaves immediately.
func (s *FireControlSystem) Fire(c *entity.Character, w *entity.Weapon) bool {
	if !s.CanFire(c, w) {
		return false
	}
	w.BurstRemaining = w.Stats.BulletsPerTap
	s.shoot(c, w)
	return true
}

// shoot fires one round and schedules the cooldown and the next round of
// the burst
func (s *FireControlSystem) shoot(c *entity.Character, w *entity.Weapon) {
	w.FireReady = false
	guard := weaponGuard(w)

	origin := c.CameraPosition()
	forward := c.CameraForward()
	s.spawnEffect(Effect{
		Kind:     EffectMuzzleFlash,
		Position: origin.Add(forward.Mul(muzzleDistance)),
		Normal:   forward,
	}, w.Stats.Decals.MuzzleFlash)
	s.audio.Play(SoundShot, 1, 1)

	dir := s.spreadDirection(c, w.Stats.Spread)
	if hit, ok := s.Hitscan(origin, dir, w.Stats.Range, w.Stats.HitMask); ok {
		s.resolveHit(w, hit)
	}

	w.ConsumeRound()
	w.BurstRemaining--
	s.metrics.ShotFired(w.Category().String())

	// the cooldown outlives weapon switches
	s.scheduler.After(w.Stats.TimeBetweenShots, nil, func() {
		w.FireReady = true
	})

	if w.BurstRemaining <= 0 || w.RoundsInMagazine <= 0 {
		w.BurstRemaining = 0
		return
	}
	if w.Stats.TimeBetweenBurstShots <= 0 {
		s.continueBurst(c, w)
		return
	}
	s.scheduler.After(w.Stats.TimeBetweenBurstShots, guard, func() {
		s.continueBurst(c, w)
	})
}

// continueBurst fires the next round of a burst unless something changed
// since it was scheduled
func (s *FireControlSystem) continueBurst(c *entity.Character, w *entity.Weapon) {
	if w.BurstRemaining <= 0 || w.RoundsInMagazine <= 0 || w.Reloading || c.Sprinting {
		w.BurstRemaining = 0
		return
	}
	s.shoot(c, w)
}

// spreadDirection jitters the view direction along the camera axes
func (s *FireControlSystem) spreadDirection(c *entity.Character, spread float64) mgl64.Vec3 {
	forward := c.CameraForward()
	if spread <= 0 {
		return forward
	}
	x := (s.rng.Float64()*2 - 1) * spread
	y := (s.rng.Float64()*2 - 1) * spread
	return forward.
		Add(c.CameraRight().Mul(x)).
		Add(c.CameraUp().Mul(y)).
		Normalize()
}

// Hitscan casts a ray that passes through no-shoot colliders. Each pass
// only gets the range left over from the previous one.
func (s *FireControlSystem) Hitscan(origin, dir mgl64.Vec3, maxRange float64, mask entity.LayerMask) (entity.Hit, bool) {
	dir = dir.Normalize()
	remaining := maxRange

	for i := 0; i < maxPassThrough && remaining > 0; i++ {
		hit, ok := s.physics.Raycast(origin, dir, remaining, mask)
		if !ok {
			return entity.Hit{}, false
		}
		if hit.Collider.Tag != entity.TagNoShoot {
			return hit, true
		}
		origin = hit.Point.Add(dir.Mul(passThroughSkin))
		remaining -= hit.Distance + passThroughSkin
	}
	return entity.Hit{}, false
}

// resolveHit damages what was hit and marks the spot
func (s *FireControlSystem) resolveHit(w *entity.Weapon, hit entity.Hit) {
	tag := hit.Collider.Tag
	destroyed := false
	if target := hit.Collider.Target; target != nil && isDamageableTag(tag) {
		destroyed = target.ApplyDamage(max(0, w.Stats.Damage))
	}

	s.metrics.Hit(tag, destroyed)
	if destroyed {
		s.logger.Info().
			Str("weapon", w.Name).
			Str("tag", tag).
			Uint32("target", uint32(hit.Collider.ID)).
			Msg("target destroyed")
	}
	if s.OnHit != nil {
		s.OnHit(hit, destroyed)
	}

	kind, lifetime, ok := decalFor(tag, destroyed, w.Stats.Decals)
	if !ok {
		return
	}
	s.spawnEffect(Effect{
		Kind:     kind,
		Position: hit.Point.Add(hit.Normal.Mul(decalOffset)),
		Normal:   hit.Normal,
	}, lifetime)
}

func isDamageableTag(tag string) bool {
	switch tag {
	case entity.TagEnemy, entity.TagEnemyBlowUp, entity.TagCrate:
		return true
	default:
		return false
	}
}

// decalFor picks the decal variant and lifetime for a hit. A destroyed
// crate leaves nothing behind.
func decalFor(tag string, destroyed bool, d entity.DecalLifetimes) (EffectKind, float64, bool) {
	switch tag {
	case entity.TagEnemy:
		if destroyed {
			return EffectEnemyKill, d.EnemyKill, true
		}
		return EffectEnemyHit, d.EnemyHit, true
	case entity.TagEnemyBlowUp:
		if destroyed {
			return EffectBlowUpKill, d.BlowUpKill, true
		}
		return EffectBlowUpHit, d.BlowUpHit, true
	case entity.TagCrate:
		if destroyed {
			return 0, 0, false
		}
		return EffectDecal, d.Environment, true
	default:
		return EffectDecal, d.Environment, true
	}
}

// spawnEffect shows e and removes it after lifetime seconds. A lifetime of
// zero or less keeps it.
func (s *FireControlSystem) spawnEffect(e Effect, lifetime float64) {
	id := s.effects.Spawn(e)
	if lifetime <= 0 {
		return
	}
	s.scheduler.After(lifetime, nil, func() {
		s.effects.Despawn(id)
	})
}

// Reload starts refilling the magazine. Returns false if the weapon cannot
// reload right now.
func (s *FireControlSystem) Reload(c *entity.Character, w *entity.Weapon) bool {
	if !w.UsesAmmo() || w.Reloading || w.IsFull() || w.Reserve() <= 0 || c.Aiming || w.Firing() {
		return false
	}

	w.Reloading = true
	s.audio.Play(SoundReload, 1, 1)
	s.scheduler.After(w.Stats.ReloadTime, weaponGuard(w), func() {
		s.finishReload(w)
	})
	return true
}

// finishReload moves rounds from the reserve. The amount is recomputed so
// pickups during the reload are honored.
func (s *FireControlSystem) finishReload(w *entity.Weapon) {
	moved := w.LoadFromReserve()
	w.Reloading = false
	s.metrics.Reloaded(w.Category().String(), moved)
	s.logger.Debug().
		Str("weapon", w.Name).
		Int("rounds", w.RoundsInMagazine).
		Int("reserve", w.Reserve()).
		Msg("reload finished")
}

// updateMelee handles the melee tool: one masked ray per press, no ammo
func (s *FireControlSystem) updateMelee(c *entity.Character, w *entity.Weapon, in InputSample) {
	attacking := in.FirePressed && !c.Sprinting
	s.anim.SetBool(w.ID, AnimAttack, attacking)

	if attacking && w.Active && w.FireReady {
		s.swing(c, w)
	}
}

func (s *FireControlSystem) swing(c *entity.Character, w *entity.Weapon) {
	w.FireReady = false

	origin := c.CameraPosition()
	forward := c.CameraForward()
	if hit, ok := s.physics.Raycast(origin, forward, w.Stats.Range, w.Stats.HitMask); ok {
		s.resolveHit(w, hit)
		s.spawnEffect(Effect{
			Kind:     EffectMuzzleFlash,
			Position: hit.Point,
			Normal:   hit.Normal,
		}, w.Stats.Decals.MuzzleFlash)
	}
	s.audio.Play(SoundMelee, 1, 1)

	s.scheduler.After(w.Stats.TimeBetweenShots, nil, func() {
		w.FireReady = true
	})
}

// weaponGuard invalidates a callback once the weapon has been put away
func weaponGuard(w *entity.Weapon) Guard {
	gen := w.Generation
	return func() bool {
		return w.Generation == gen
	}
}
