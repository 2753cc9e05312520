package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/domain/smooth"
	"github.com/younwookim/fpscore/internal/infrastructure/config"
)

// aimingSwayDivisor damps every sway source while aiming down sights
const aimingSwayDivisor = 3

// AimSystem drives the procedural pose of the held weapon: idle breathing
// sway, look and movement sway, and the aim-down-sight blend.
type AimSystem struct {
	config *config.CrosshairConfig
}

// NewAimSystem creates a new aim system
func NewAimSystem(cfg *config.CrosshairConfig) (*AimSystem, error) {
	if cfg == nil {
		return nil, missing("crosshair config")
	}
	return &AimSystem{config: cfg}, nil
}

// Update advances the weapon pose by one frame
func (s *AimSystem) Update(c *entity.Character, w *entity.Weapon, in InputSample, dt float64) {
	s.CalculateRotationSway(c, w, in.View, dt)
	s.CalculateMovementSway(c, w, in.Move, dt)
	s.CalculateIdleSway(c, w, dt)
	s.CalculateAimingIn(c, w, dt)
}

// CalculateRotationSway pushes the weapon against the look direction and
// lets it spring back
func (s *AimSystem) CalculateRotationSway(c *entity.Character, w *entity.Weapon, view mgl64.Vec2, dt float64) {
	sw := w.Stats.Sway
	p := &w.Pose

	amount := sw.Amount
	if c.Aiming {
		amount /= aimingSwayDivisor
	}

	// looking up tips the weapon down unless inverted
	dx, dy := view.X(), -view.Y()
	if sw.InvertX {
		dx = -dx
	}
	if sw.InvertY {
		dy = -dy
	}

	target := p.RotationTarget.Value
	target[0] = mgl64.Clamp(target[0]+amount*dy*dt, -sw.ClampX, sw.ClampY)
	target[1] = mgl64.Clamp(target[1]+amount*dx*dt, -sw.ClampX, sw.ClampY)
	if c.Aiming {
		target[2] = 0
	} else {
		target[2] = target[1]
	}
	p.RotationTarget.Value = target

	p.RotationTarget.Step(mgl64.Vec3{}, dt)
	p.RotationSway.Step(p.RotationTarget.Value, dt)
}

// CalculateMovementSway tilts the weapon with the movement input
func (s *AimSystem) CalculateMovementSway(c *entity.Character, w *entity.Weapon, move mgl64.Vec2, dt float64) {
	sw := w.Stats.Sway
	p := &w.Pose

	mx := mgl64.Clamp(move.X(), -1, 1)
	my := mgl64.Clamp(move.Y(), -1, 1)
	if sw.MovementInvertX {
		mx = -mx
	}
	if sw.MovementInvertY {
		my = -my
	}

	swayX, swayY := sw.MovementX, sw.MovementY
	if c.Aiming {
		swayX /= aimingSwayDivisor
		swayY /= aimingSwayDivisor
	}

	target := p.MovementTarget.Value
	target[0] = swayY * my
	target[2] = swayX * mx
	p.MovementTarget.Value = target

	p.MovementTarget.Step(mgl64.Vec3{}, dt)
	p.MovementSway.Step(p.MovementTarget.Value, dt)
}

// CalculateIdleSway traces a Lissajous curve with the weapon position
func (s *AimSystem) CalculateIdleSway(c *entity.Character, w *entity.Weapon, dt float64) {
	sw := w.Stats.Sway
	p := &w.Pose

	scale := sw.BreathScale
	if c.Aiming {
		scale *= aimingSwayDivisor
	}

	target := mgl64.Vec3{}
	if scale > 0 {
		l := Lissajous(sw.BreathAmountA, sw.BreathAmountB, p.SwayPhase)
		target = mgl64.Vec3{l.X() / scale, l.Y() / scale, 0}
	}
	p.SwayPosition = smooth.LerpVec3(p.SwayPosition, target, dt*sw.BreathLerp)

	p.SwayPhase += dt
	if p.SwayPhase >= 2*math.Pi {
		p.SwayPhase -= 2 * math.Pi
	}
}

// Lissajous returns the idle sway curve at phase t
func Lissajous(a, b, t float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Sin(t), a * math.Sin(b*t+math.Pi)}
}

// CalculateAimingIn blends the weapon between its rest pose and the pose
// that puts the sight on the camera axis
func (s *AimSystem) CalculateAimingIn(c *entity.Character, w *entity.Weapon, dt float64) {
	sight := w.Stats.Sight
	p := &w.Pose

	target := sight.RestPosition
	blend := 0.0
	if c.Aiming {
		target = SightAlignedPosition(sight)
		blend = 1
	}

	p.Position.Step(target, dt)
	p.AimBlend.Step(blend, dt)
}

// SightAlignedPosition is the weapon root position, in camera space, that
// places the sight on the view axis Offset meters ahead of the camera
func SightAlignedPosition(sight entity.SightSettings) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, sight.Offset}.Sub(sight.SightPosition)
}

// Crosshair returns the reticle hint for the frame
func (s *AimSystem) Crosshair(c *entity.Character, in InputSample) entity.CrosshairState {
	if c.Aiming || c.Sprinting {
		return entity.CrosshairState{}
	}
	if in.Move.Len() > 0 || c.Falling {
		return entity.CrosshairState{Visible: true, Size: s.config.MovingSize}
	}
	return entity.CrosshairState{Visible: true, Size: s.config.NormalSize}
}
