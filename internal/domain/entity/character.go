package entity

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/domain/smooth"
)

// Character is the locomotion state of the player.
// Yaw and Pitch are in degrees; positive pitch looks down.
type Character struct {
	Position mgl64.Vec3 // feet
	Velocity mgl64.Vec3 // displacement applied last frame, per second
	Yaw      float64
	Pitch    float64

	Stance    Stance
	Grounded  bool
	Falling   bool
	Sprinting bool
	Aiming    bool

	VerticalVelocity float64
	JumpImpulse      smooth.Vec3

	CameraHeight   smooth.Float
	ColliderHeight smooth.Float
	ColliderCenter smooth.Vec3

	Lean          smooth.Float
	LeanTarget    float64
	LeanLeftHeld  bool
	LeanRightHeld bool
	CanLean       bool

	// Timers
	SprintCooldown float64

	// Derived each frame for the weapon
	SpeedEffector  float64
	AnimationSpeed float64

	spawnPosition mgl64.Vec3
	spawnYaw      float64
	standProfile  StanceProfile
}

// NewCharacter creates a standing character at the spawn point
func NewCharacter(spawn mgl64.Vec3, yaw float64, stand StanceProfile) *Character {
	c := &Character{
		spawnPosition: spawn,
		spawnYaw:      yaw,
		standProfile:  stand,
	}
	c.Respawn()
	return c
}

// Respawn puts the character back at its spawn point in a fresh state.
// Smoothing times survive the reset.
func (c *Character) Respawn() {
	c.Position = c.spawnPosition
	c.Velocity = mgl64.Vec3{}
	c.Yaw = c.spawnYaw
	c.Pitch = 0

	c.Stance = StanceStand
	c.Grounded = false
	c.Falling = false
	c.Sprinting = false
	c.Aiming = false

	c.VerticalVelocity = 0
	c.JumpImpulse.Reset(mgl64.Vec3{})

	c.CameraHeight.Reset(c.standProfile.CameraHeight)
	c.ColliderHeight.Reset(c.standProfile.ColliderHeight)
	c.ColliderCenter.Reset(c.standProfile.ColliderCenter)

	c.Lean.Reset(0)
	c.LeanTarget = 0
	c.LeanLeftHeld = false
	c.LeanRightHeld = false
	c.CanLean = true

	c.SprintCooldown = 0
	c.SpeedEffector = 1
	c.AnimationSpeed = 0
}

// Speed returns the magnitude of the last frame's velocity
func (c *Character) Speed() float64 {
	return c.Velocity.Len()
}

// HorizontalSpeed ignores the vertical component of the velocity
func (c *Character) HorizontalSpeed() float64 {
	return mgl64.Vec2{c.Velocity.X(), c.Velocity.Z()}.Len()
}

// Forward is the yaw-only facing direction on the ground plane
func (c *Character) Forward() mgl64.Vec3 {
	yaw := mgl64.DegToRad(c.Yaw)
	return mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)}
}

// Right is the yaw-only strafe direction
func (c *Character) Right() mgl64.Vec3 {
	yaw := mgl64.DegToRad(c.Yaw)
	return mgl64.Vec3{math.Cos(yaw), 0, -math.Sin(yaw)}
}

// CameraPosition returns the eye point
func (c *Character) CameraPosition() mgl64.Vec3 {
	return c.Position.Add(Up.Mul(c.CameraHeight.Value))
}

// CameraForward is the full view direction including pitch
func (c *Character) CameraForward() mgl64.Vec3 {
	yaw := mgl64.DegToRad(c.Yaw)
	pitch := mgl64.DegToRad(c.Pitch)
	return mgl64.Vec3{
		math.Sin(yaw) * math.Cos(pitch),
		-math.Sin(pitch),
		math.Cos(yaw) * math.Cos(pitch),
	}
}

// CameraRight is the horizontal right axis of the view
func (c *Character) CameraRight() mgl64.Vec3 {
	return c.Right()
}

// CameraUp is perpendicular to both CameraForward and CameraRight
func (c *Character) CameraUp() mgl64.Vec3 {
	return c.CameraForward().Cross(c.CameraRight())
}
