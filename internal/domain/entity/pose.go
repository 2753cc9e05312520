package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/domain/smooth"
)

// WeaponPose is the procedural aim and sway state of a held weapon.
// Rotations are Euler degrees, positions are camera space.
type WeaponPose struct {
	SwayPhase    float64
	SwayPosition mgl64.Vec3

	RotationTarget smooth.Vec3
	RotationSway   smooth.Vec3
	MovementTarget smooth.Vec3
	MovementSway   smooth.Vec3
	Position       smooth.Vec3
	AimBlend       smooth.Float
}

// NewWeaponPose creates a pose resting at the weapon's hip position
func NewWeaponPose(stats WeaponStats) WeaponPose {
	sway := stats.Sway
	return WeaponPose{
		RotationTarget: smooth.NewVec3(mgl64.Vec3{}, sway.ResetSmoothing),
		RotationSway:   smooth.NewVec3(mgl64.Vec3{}, sway.Smoothing),
		MovementTarget: smooth.NewVec3(mgl64.Vec3{}, sway.ResetSmoothing),
		MovementSway:   smooth.NewVec3(mgl64.Vec3{}, sway.MovementSmoothing),
		Position:       smooth.NewVec3(stats.Sight.RestPosition, stats.Sight.AimingInTime),
		AimBlend:       smooth.NewFloat(0, stats.Sight.AimingInTime),
	}
}

// Rotation is the combined local rotation of the weapon
func (p *WeaponPose) Rotation() mgl64.Vec3 {
	return p.RotationSway.Value.Add(p.MovementSway.Value)
}

// FinalPosition is the weapon position including idle sway
func (p *WeaponPose) FinalPosition() mgl64.Vec3 {
	return p.Position.Value.Add(p.SwayPosition)
}

// CrosshairState is the presentation hint for the reticle
type CrosshairState struct {
	Visible bool
	Size    float64
}
