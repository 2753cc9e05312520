package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/logging"
)

func createTestPickups() PickupTable {
	return PickupTable{
		entity.TagRifleAmmo:   {Category: entity.CategoryRifle, Amount: 30},
		entity.TagShotgunAmmo: {Category: entity.CategoryShotgun, Amount: 14},
	}
}

// addAmmoBox puts an ammo box on the pickup layer in front of the camera
func addAmmoBox(rig *testRig, z float64, tag string) *fakeTarget {
	box := &fakeTarget{}
	rig.physics.planes = append(rig.physics.planes, fakePlane{
		z:        z,
		layer:    8,
		collider: entity.Collider{ID: 50, Tag: tag, Pickup: box},
	})
	return box
}

func createTestInteraction(t *testing.T, rig *testRig) (*InteractionSystem, *entity.Weapon) {
	t.Helper()
	registry := NewWeaponRegistry()
	rifle, _, _, _ := createTestArsenal()
	registry.Register(rifle)

	sys, err := NewInteractionSystem(rig.collab, registry, createTestPickups(), 3, nil, logging.Nop())
	require.NoError(t, err)
	return sys, rifle
}

func TestNewInteractionSystem(t *testing.T) {
	rig := createTestRig()

	_, err := NewInteractionSystem(Collaborators{}, NewWeaponRegistry(), nil, 3, nil, logging.Nop())
	assert.ErrorIs(t, err, ErrMissingCollaborator)

	_, err = NewInteractionSystem(rig.collab, nil, nil, 3, nil, logging.Nop())
	assert.ErrorIs(t, err, ErrMissingCollaborator)
}

func TestInteraction_CollectsAmmo(t *testing.T) {
	rig := createTestRig()
	sys, rifle := createTestInteraction(t, rig)
	box := addAmmoBox(rig, 2, entity.TagRifleAmmo)
	c := createTestCharacter()

	assert.True(t, sys.Update(c, InputSample{InteractPressed: true}))

	assert.Equal(t, 90, rifle.Reserve())
	assert.True(t, box.consumed)
	assert.Equal(t, 1, rig.audio.count(SoundPickup))
}

func TestInteraction_Rejected(t *testing.T) {
	tests := []struct {
		name string
		z    float64
		tag  string
	}{
		{"out of reach", 5, entity.TagRifleAmmo},
		{"not a pickup", 2, entity.TagCrate},
		{"no weapon for category", 2, entity.TagShotgunAmmo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rig := createTestRig()
			sys, rifle := createTestInteraction(t, rig)
			box := addAmmoBox(rig, tt.z, tt.tag)
			c := createTestCharacter()

			assert.False(t, sys.Interact(c))

			assert.Equal(t, 60, rifle.Reserve())
			assert.False(t, box.consumed)
			assert.Empty(t, rig.audio.played)
		})
	}
}

func TestInteraction_OnlyOnPress(t *testing.T) {
	rig := createTestRig()
	sys, _ := createTestInteraction(t, rig)
	addAmmoBox(rig, 2, entity.TagRifleAmmo)
	c := createTestCharacter()

	assert.False(t, sys.Update(c, InputSample{}))
	assert.Zero(t, rig.physics.raycasts)
}
