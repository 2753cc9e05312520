package feedback

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/fpscore/internal/application/system"
	"github.com/younwookim/fpscore/internal/domain/entity"
)

// compile-time checks
var (
	_ system.AnimationSink = (*Animation)(nil)
	_ system.EffectSink    = (*Effects)(nil)
	_ system.AudioSink     = (*Audio)(nil)
)

func TestAnimation_RecordsParameters(t *testing.T) {
	a := NewAnimation(zerolog.Nop())
	w := entity.EntityID(3)

	assert.Equal(t, "", a.LastTrigger(w))

	a.SetTrigger(w, system.AnimJump)
	a.SetTrigger(w, system.AnimLand)
	a.SetBool(w, system.AnimReload, true)
	a.SetFloat(w, system.AnimWeaponSpeed, 0.5)

	assert.Equal(t, system.AnimLand, a.LastTrigger(w))
	assert.Equal(t, []string{system.AnimJump, system.AnimLand}, a.Triggers[w])
	assert.True(t, a.Bools[w][system.AnimReload])
	assert.Equal(t, 0.5, a.Floats[w][system.AnimWeaponSpeed])
}

func TestAnimation_LogsBoolOnlyOnChange(t *testing.T) {
	var buf bytes.Buffer
	a := NewAnimation(zerolog.New(&buf))

	a.SetBool(1, system.AnimIsSprinting, false)
	a.SetBool(1, system.AnimIsSprinting, false)
	a.SetBool(1, system.AnimIsSprinting, true)

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("animation bool")))
}

func TestEffects_SpawnDespawn(t *testing.T) {
	s := NewEffects(zerolog.Nop())

	flash := s.Spawn(system.Effect{Kind: system.EffectMuzzleFlash})
	decal := s.Spawn(system.Effect{Kind: system.EffectDecal, Position: mgl64.Vec3{1, 2, 3}})
	require.NotEqual(t, flash, decal)
	assert.Equal(t, 2, s.Len())

	s.Despawn(flash)
	s.Despawn(flash)
	s.Despawn(999)

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Spawned)

	var kinds []system.EffectKind
	s.Each(func(_ system.EffectID, e system.Effect) {
		kinds = append(kinds, e.Kind)
	})
	assert.Equal(t, []system.EffectKind{system.EffectDecal}, kinds)
}

func TestEffects_EachOldestFirst(t *testing.T) {
	s := NewEffects(zerolog.Nop())
	for i := range 5 {
		s.Spawn(system.Effect{Position: mgl64.Vec3{float64(i), 0, 0}})
	}

	var xs []float64
	s.Each(func(_ system.EffectID, e system.Effect) {
		xs = append(xs, e.Position.X())
	})
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, xs)
}

func TestAudio_CountsPlays(t *testing.T) {
	a := NewAudio(zerolog.Nop())

	a.Play(system.SoundShot, 1, 1)
	a.Play(system.SoundShot, 1, 1)
	a.Play(system.SoundReload, 1, 0.5)
	a.Stop(system.SoundFootstep)

	assert.Equal(t, 2, a.Plays[system.SoundShot])
	assert.Equal(t, system.SoundReload, a.Last)
}
