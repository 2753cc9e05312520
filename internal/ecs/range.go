package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/config"
)

// pickupLayer is the collider layer ammo boxes live on
const pickupLayer entity.LayerMask = 8

// LoadRange converts a RangeConfig into a World
func LoadRange(cfg *config.RangeConfig, bodyRadius float64) *World {
	w := NewWorld(bodyRadius)
	for _, b := range cfg.Boxes {
		layer := entity.LayerMask(b.Layer)
		w.CreateBox(BoxConfig{
			Name:   b.Name,
			Min:    mgl64.Vec3(b.Min),
			Max:    mgl64.Vec3(b.Max),
			Layer:  layer,
			Tag:    b.Tag,
			Health: b.Health,
			Pickup: layer.Has(pickupLayer),
		})
	}
	return w
}

// Spawn returns the spawn point and yaw of a range
func Spawn(cfg *config.RangeConfig) (mgl64.Vec3, float64) {
	return mgl64.Vec3(cfg.Spawn), cfg.SpawnYaw
}
