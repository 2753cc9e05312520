package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/logging"
)

func createTestFireControl(t *testing.T, rig *testRig) *FireControlSystem {
	t.Helper()
	sys, err := NewFireControlSystem(rig.collab, rig.scheduler, createTestRand(), nil, logging.Nop())
	require.NoError(t, err)
	return sys
}

func createTestShotgunStats() entity.WeaponStats {
	stats := createTestRifleStats()
	stats.Category = entity.CategoryShotgun
	stats.MagazineCapacity = 7
	stats.BulletsPerTap = 6
	stats.AllowButtonHold = false
	stats.TimeBetweenShots = 0.8
	return stats
}

// addEnemy puts a damageable wall in front of the camera
func addEnemy(rig *testRig, z float64, tag string, health int) *fakeTarget {
	target := &fakeTarget{health: health}
	rig.physics.planes = append(rig.physics.planes, fakePlane{
		z:     z,
		layer: 2,
		collider: entity.Collider{
			ID:     entity.EntityID(len(rig.physics.planes) + 1),
			Tag:    tag,
			Target: target,
		},
	})
	return target
}

func TestNewFireControlSystem(t *testing.T) {
	rig := createTestRig()

	_, err := NewFireControlSystem(Collaborators{}, rig.scheduler, createTestRand(), nil, logging.Nop())
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	_, err = NewFireControlSystem(rig.collab, nil, createTestRand(), nil, logging.Nop())
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	_, err = NewFireControlSystem(rig.collab, rig.scheduler, nil, nil, logging.Nop())
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestFireControl_EmptyMagazineThenReload(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestRifleStats(), 90)

	for i := 0; i < 30; i++ {
		require.True(t, sys.Fire(c, w), "shot %d", i+1)
		rig.scheduler.Advance(0.2)
	}
	assert.Equal(t, 0, w.RoundsInMagazine)
	assert.Equal(t, 30, rig.physics.raycasts)

	spawned := len(rig.effects.spawned)
	assert.False(t, sys.Fire(c, w))
	assert.Equal(t, 30, rig.physics.raycasts, "no query on an empty magazine")
	assert.Len(t, rig.effects.spawned, spawned)
	assert.Equal(t, 30, rig.audio.count(SoundShot))

	require.True(t, sys.Reload(c, w))
	rig.scheduler.Advance(1.5)

	assert.Equal(t, 30, w.RoundsInMagazine)
	assert.Equal(t, 60, w.Reserve())
	assert.False(t, w.Reloading)
}

func TestFireControl_FireRejected(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *entity.Character, w *entity.Weapon)
	}{
		{"reloading", func(c *entity.Character, w *entity.Weapon) { w.Reloading = true }},
		{"not ready", func(c *entity.Character, w *entity.Weapon) { w.FireReady = false }},
		{"empty", func(c *entity.Character, w *entity.Weapon) { w.RoundsInMagazine = 0 }},
		{"sprinting", func(c *entity.Character, w *entity.Weapon) { c.Sprinting = true }},
		{"holstered", func(c *entity.Character, w *entity.Weapon) { w.Active = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := createTestRig()
			sys := createTestFireControl(t, rig)
			c := createTestCharacter()
			w := createTestWeapon(createTestRifleStats(), 90)
			tt.setup(c, w)
			rounds := w.RoundsInMagazine

			assert.False(t, sys.CanFire(c, w))
			assert.False(t, sys.Fire(c, w))

			assert.Equal(t, rounds, w.RoundsInMagazine)
			assert.Zero(t, rig.physics.raycasts)
			assert.Empty(t, rig.effects.spawned)
			assert.Empty(t, rig.audio.played)
			assert.Zero(t, rig.scheduler.Pending())
		})
	}
}

func TestFireControl_CooldownGatesNextShot(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestRifleStats(), 90)

	require.True(t, sys.Fire(c, w))
	assert.False(t, w.FireReady)
	assert.False(t, sys.Fire(c, w))

	rig.scheduler.Advance(0.05)
	assert.False(t, sys.Fire(c, w))

	rig.scheduler.Advance(0.05)
	assert.True(t, w.FireReady)
	assert.True(t, sys.Fire(c, w))
	assert.Equal(t, 28, w.RoundsInMagazine)
}

func TestFireControl_HoldToFire(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestRifleStats(), 90)

	sys.Update(c, w, InputSample{FirePressed: true})
	for i := 1; i < 60; i++ {
		rig.scheduler.Advance(testDT)
		sys.Update(c, w, InputSample{})
	}
	assert.InDelta(t, 10, 30-w.RoundsInMagazine, 1)

	sys.Update(c, w, InputSample{FireReleased: true})
	assert.False(t, w.Triggering)
	fired := 30 - w.RoundsInMagazine
	for i := 0; i < 60; i++ {
		rig.scheduler.Advance(testDT)
		sys.Update(c, w, InputSample{})
	}
	assert.Equal(t, fired, 30-w.RoundsInMagazine)
}

func TestFireControl_TapToFire(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	stats := createTestRifleStats()
	stats.AllowButtonHold = false
	w := createTestWeapon(stats, 90)

	sys.Update(c, w, InputSample{FirePressed: true})
	for i := 0; i < 60; i++ {
		rig.scheduler.Advance(testDT)
		sys.Update(c, w, InputSample{})
	}

	assert.Equal(t, 29, w.RoundsInMagazine)
}

func TestFireControl_TriggerIgnoredWhileSprinting(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	c.Sprinting = true
	w := createTestWeapon(createTestRifleStats(), 90)

	sys.Update(c, w, InputSample{FirePressed: true})

	assert.False(t, w.Triggering)
	assert.Equal(t, 30, w.RoundsInMagazine)
}

func TestFireControl_Burst(t *testing.T) {
	tests := []struct {
		name     string
		rounds   int
		interval float64
		want     int
	}{
		{"same frame", 7, 0, 6},
		{"same frame short magazine", 4, 0, 4},
		{"spaced", 7, 0.05, 6},
		{"spaced short magazine", 2, 0.05, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := createTestRig()
			sys := createTestFireControl(t, rig)
			c := createTestCharacter()
			stats := createTestShotgunStats()
			stats.TimeBetweenBurstShots = tt.interval
			w := createTestWeapon(stats, 14)
			w.RoundsInMagazine = tt.rounds

			require.True(t, sys.Fire(c, w))
			rig.scheduler.Advance(1)

			assert.Equal(t, tt.rounds-tt.want, w.RoundsInMagazine)
			assert.Equal(t, tt.want, rig.physics.raycasts)
			assert.Equal(t, tt.want, rig.audio.count(SoundShot))
			assert.Zero(t, w.BurstRemaining)
			assert.False(t, w.Firing())
		})
	}
}

func TestFireControl_BurstInFlightCountsAsFiring(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	stats := createTestShotgunStats()
	stats.TimeBetweenBurstShots = 0.05
	w := createTestWeapon(stats, 14)
	w.RoundsInMagazine = 6

	require.True(t, sys.Fire(c, w))
	assert.True(t, w.Firing())
	assert.False(t, sys.Reload(c, w), "no reload mid-burst")

	rig.scheduler.Advance(0.05)
	assert.Equal(t, 4, w.RoundsInMagazine)
}

func TestFireControl_NoShootPassThrough(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestRifleStats(), 90)

	rig.physics.planes = append(rig.physics.planes, fakePlane{
		z:        5,
		layer:    16,
		collider: entity.Collider{ID: 99, Tag: entity.TagNoShoot},
	})
	enemy := addEnemy(rig, 8, entity.TagEnemy, 100)

	var hits []entity.Hit
	sys.OnHit = func(hit entity.Hit, destroyed bool) {
		hits = append(hits, hit)
	}

	require.True(t, sys.Fire(c, w))

	assert.Equal(t, 1, enemy.hits)
	assert.Equal(t, 75, enemy.health)
	require.Len(t, hits, 1)
	assert.Equal(t, entity.TagEnemy, hits[0].Collider.Tag)
	assert.Equal(t, []EffectKind{EffectMuzzleFlash, EffectEnemyHit}, rig.effects.kinds())
	assert.InDelta(t, 8.0, rig.effects.spawned[1].Position.Z(), 0.01)
}

func TestFireControl_PassThroughUsesRemainingRange(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)

	rig.physics.planes = append(rig.physics.planes, fakePlane{
		z:        5,
		layer:    16,
		collider: entity.Collider{Tag: entity.TagNoShoot},
	})
	enemy := addEnemy(rig, 8, entity.TagEnemy, 100)

	_, ok := sys.Hitscan(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 7, entity.AllLayers)
	assert.False(t, ok, "enemy lies beyond the range left after the glass")
	assert.Zero(t, enemy.hits)
	assert.Equal(t, 2, rig.physics.raycasts)

	hit, ok := sys.Hitscan(mgl64.Vec3{}, mgl64.Vec3{0, 0, 1}, 8.5, entity.AllLayers)
	require.True(t, ok)
	assert.Equal(t, entity.TagEnemy, hit.Collider.Tag)
	assert.Equal(t, 4, rig.physics.raycasts)
}

func TestFireControl_HitEffects(t *testing.T) {
	tests := []struct {
		name   string
		tag    string
		health int
		want   []EffectKind
	}{
		{"enemy hit", entity.TagEnemy, 100, []EffectKind{EffectMuzzleFlash, EffectEnemyHit}},
		{"enemy kill", entity.TagEnemy, 25, []EffectKind{EffectMuzzleFlash, EffectEnemyKill}},
		{"blow up hit", entity.TagEnemyBlowUp, 100, []EffectKind{EffectMuzzleFlash, EffectBlowUpHit}},
		{"blow up kill", entity.TagEnemyBlowUp, 10, []EffectKind{EffectMuzzleFlash, EffectBlowUpKill}},
		{"crate hit", entity.TagCrate, 100, []EffectKind{EffectMuzzleFlash, EffectDecal}},
		{"crate destroyed", entity.TagCrate, 25, []EffectKind{EffectMuzzleFlash}},
		{"static", "", 100, []EffectKind{EffectMuzzleFlash, EffectDecal}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := createTestRig()
			sys := createTestFireControl(t, rig)
			c := createTestCharacter()
			w := createTestWeapon(createTestRifleStats(), 90)
			target := addEnemy(rig, 10, tt.tag, tt.health)

			var destroyed bool
			sys.OnHit = func(hit entity.Hit, d bool) { destroyed = d }

			require.True(t, sys.Fire(c, w))

			assert.Equal(t, tt.want, rig.effects.kinds())
			if tt.tag == "" {
				assert.Zero(t, target.hits, "untagged colliders take no damage")
			} else {
				assert.Equal(t, 1, target.hits)
				assert.Equal(t, tt.health <= 25, destroyed)
			}
		})
	}
}

func TestFireControl_DecalLifetime(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestRifleStats(), 90)
	addEnemy(rig, 10, entity.TagEnemy, 25)

	require.True(t, sys.Fire(c, w))
	require.Len(t, rig.effects.live, 2)

	rig.scheduler.Advance(1)
	assert.Len(t, rig.effects.live, 1, "muzzle flash gone")

	rig.scheduler.Advance(3.9)
	assert.Len(t, rig.effects.live, 1)

	rig.scheduler.Advance(0.2)
	assert.Empty(t, rig.effects.live)
	assert.Equal(t, []EffectID{1, 2}, rig.effects.despawned)
}

func TestFireControl_NegativeDamageClamped(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	stats := createTestRifleStats()
	stats.Damage = -10
	w := createTestWeapon(stats, 90)
	enemy := addEnemy(rig, 10, entity.TagEnemy, 100)

	require.True(t, sys.Fire(c, w))

	assert.Equal(t, 1, enemy.hits)
	assert.Equal(t, 100, enemy.health)
}

func TestFireControl_SpreadStaysInCone(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	c.Yaw = 30
	c.Pitch = -10
	forward := c.CameraForward()

	assert.Equal(t, forward, sys.spreadDirection(c, 0))

	const spread = 0.05
	maxAngle := math.Atan(spread * math.Sqrt2)
	for i := 0; i < 1000; i++ {
		dir := sys.spreadDirection(c, spread)
		require.InDelta(t, 1.0, dir.Len(), 1e-9)
		angle := math.Acos(mgl64.Clamp(dir.Dot(forward), -1, 1))
		require.LessOrEqual(t, angle, maxAngle+1e-9)
	}
}

func TestFireControl_ReloadGating(t *testing.T) {
	tests := []struct {
		name    string
		stats   func() entity.WeaponStats
		reserve int
		setup   func(c *entity.Character, w *entity.Weapon)
	}{
		{"aiming", createTestRifleStats, 90, func(c *entity.Character, w *entity.Weapon) {
			w.RoundsInMagazine = 10
			c.Aiming = true
		}},
		{"trigger held", createTestRifleStats, 90, func(c *entity.Character, w *entity.Weapon) {
			w.RoundsInMagazine = 10
			w.Triggering = true
		}},
		{"full", createTestRifleStats, 90, func(c *entity.Character, w *entity.Weapon) {}},
		{"no reserve", createTestRifleStats, 0, func(c *entity.Character, w *entity.Weapon) {
			w.RoundsInMagazine = 10
		}},
		{"already reloading", createTestRifleStats, 90, func(c *entity.Character, w *entity.Weapon) {
			w.RoundsInMagazine = 10
			w.Reloading = true
		}},
		{"melee", createTestKnifeStats, 0, func(c *entity.Character, w *entity.Weapon) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := createTestRig()
			sys := createTestFireControl(t, rig)
			c := createTestCharacter()
			w := createTestWeapon(tt.stats(), tt.reserve)
			tt.setup(c, w)

			assert.False(t, sys.Reload(c, w))
			assert.Zero(t, rig.audio.count(SoundReload))
			assert.Zero(t, rig.scheduler.Pending())
		})
	}
}

func TestFireControl_ReloadTransfersOnce(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestRifleStats(), 12)
	w.RoundsInMagazine = 5

	require.True(t, sys.Reload(c, w))
	assert.True(t, w.Reloading)
	assert.False(t, sys.Fire(c, w), "cannot fire while reloading")

	rig.scheduler.Advance(1.4)
	assert.Equal(t, 5, w.RoundsInMagazine)

	rig.scheduler.Advance(0.1)
	assert.Equal(t, 17, w.RoundsInMagazine)
	assert.Equal(t, 0, w.Reserve())

	rig.scheduler.Advance(5)
	assert.Equal(t, 17, w.RoundsInMagazine)
	assert.Equal(t, 1, rig.audio.count(SoundReload))
}

func TestFireControl_PickupDuringReload(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestRifleStats(), 10)
	w.RoundsInMagazine = 0

	require.True(t, sys.Reload(c, w))
	w.AddReserve(30)
	rig.scheduler.Advance(1.5)

	assert.Equal(t, 30, w.RoundsInMagazine)
	assert.Equal(t, 10, w.Reserve())
}

func TestFireControl_DeactivateAbandonsReload(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestRifleStats(), 90)
	w.RoundsInMagazine = 3

	require.True(t, sys.Reload(c, w))
	w.Deactivate()
	w.Activate()
	rig.scheduler.Advance(2)

	assert.Equal(t, 3, w.RoundsInMagazine)
	assert.Equal(t, 90, w.Reserve())
	assert.False(t, w.Reloading)
}

func TestFireControl_DeactivateAbandonsBurst(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	stats := createTestShotgunStats()
	stats.TimeBetweenBurstShots = 0.05
	w := createTestWeapon(stats, 14)

	require.True(t, sys.Fire(c, w))
	w.Deactivate()
	rig.scheduler.Advance(1)

	assert.Equal(t, 6, w.RoundsInMagazine)
	assert.Zero(t, w.BurstRemaining)
	assert.True(t, w.FireReady)
}

func TestFireControl_ReloadAnimation(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestRifleStats(), 90)
	w.RoundsInMagazine = 10

	sys.Update(c, w, InputSample{ReloadPressed: true})
	assert.True(t, rig.anim.bools[AnimReload])

	c.Aiming = true
	sys.Update(c, w, InputSample{})
	assert.False(t, rig.anim.bools[AnimReload], "hidden while aiming")

	c.Aiming = false
	rig.scheduler.Advance(1.5)
	sys.Update(c, w, InputSample{})
	assert.False(t, rig.anim.bools[AnimReload])
}

func TestFireControl_Melee(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestKnifeStats(), 0)
	enemy := addEnemy(rig, 1, entity.TagEnemy, 120)

	sys.Update(c, w, InputSample{FirePressed: true})
	assert.True(t, rig.anim.bools[AnimAttack])
	assert.Equal(t, 1, enemy.hits)
	assert.Equal(t, 1, rig.audio.count(SoundMelee))
	assert.Equal(t, []EffectKind{EffectEnemyHit, EffectMuzzleFlash}, rig.effects.kinds())

	rig.scheduler.Advance(0.2)
	sys.Update(c, w, InputSample{FirePressed: true})
	assert.Equal(t, 1, enemy.hits, "still recovering")

	rig.scheduler.Advance(0.3)
	sys.Update(c, w, InputSample{FirePressed: true})
	assert.Equal(t, 2, enemy.hits)

	sys.Update(c, w, InputSample{})
	assert.False(t, rig.anim.bools[AnimAttack])
	assert.Equal(t, 0, w.RoundsInMagazine)
}

func TestFireControl_MeleeMiss(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestKnifeStats(), 0)
	enemy := addEnemy(rig, 5, entity.TagEnemy, 100)

	sys.Update(c, w, InputSample{FirePressed: true})

	assert.Zero(t, enemy.hits, "out of reach")
	assert.Empty(t, rig.effects.spawned)
	assert.Equal(t, 1, rig.audio.count(SoundMelee))
}

func TestFireControl_MeleeKillDecalPersists(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	w := createTestWeapon(createTestKnifeStats(), 0)
	addEnemy(rig, 1, entity.TagEnemy, 50)

	sys.Update(c, w, InputSample{FirePressed: true})
	rig.scheduler.Advance(100)

	require.Len(t, rig.effects.live, 1)
	for _, e := range rig.effects.live {
		assert.Equal(t, EffectEnemyKill, e.Kind)
	}
}

func TestFireControl_MeleeWhileSprinting(t *testing.T) {
	rig := createTestRig()
	sys := createTestFireControl(t, rig)
	c := createTestCharacter()
	c.Sprinting = true
	w := createTestWeapon(createTestKnifeStats(), 0)
	enemy := addEnemy(rig, 1, entity.TagEnemy, 100)

	sys.Update(c, w, InputSample{FirePressed: true})

	assert.False(t, rig.anim.bools[AnimAttack])
	assert.Zero(t, enemy.hits)
	assert.Zero(t, rig.physics.raycasts)
}
