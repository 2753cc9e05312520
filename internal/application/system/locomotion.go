package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/config"
	"github.com/younwookim/fpscore/internal/infrastructure/telemetry"
)

// LocomotionSystem turns input into view rotation, movement, stance and
// lean for the character. It is the only writer of entity.Character.
type LocomotionSystem struct {
	config   *config.TuningConfig
	profiles entity.StanceProfiles
	physics  PhysicsQuery
	mover    Mover
	metrics  *telemetry.CombatMetrics
	logger   zerolog.Logger

	// Event callbacks
	OnJump func()
}

// NewLocomotionSystem creates a new locomotion system
func NewLocomotionSystem(cfg *config.TuningConfig, physics PhysicsQuery, mover Mover, metrics *telemetry.CombatMetrics, logger zerolog.Logger) (*LocomotionSystem, error) {
	if cfg == nil {
		return nil, missing("tuning config")
	}
	if physics == nil {
		return nil, missing("physics query")
	}
	if mover == nil {
		return nil, missing("mover")
	}
	return &LocomotionSystem{
		config:   cfg,
		profiles: StanceProfilesFromConfig(cfg.Stance),
		physics:  physics,
		mover:    mover,
		metrics:  metrics,
		logger:   logger.With().Str("system", "locomotion").Logger(),
	}, nil
}

// StanceProfilesFromConfig converts the config geometry to profiles
func StanceProfilesFromConfig(cfg config.StanceConfig) entity.StanceProfiles {
	convert := func(p config.StanceProfileConfig) entity.StanceProfile {
		return entity.StanceProfile{
			CameraHeight:   p.CameraHeight,
			ColliderHeight: p.ColliderHeight,
			ColliderCenter: mgl64.Vec3(p.ColliderCenter),
		}
	}
	return entity.StanceProfiles{
		Stand:  convert(cfg.Stand),
		Crouch: convert(cfg.Crouch),
		Prone:  convert(cfg.Prone),
	}
}

// Profiles returns the stance geometry used by the system
func (s *LocomotionSystem) Profiles() entity.StanceProfiles {
	return s.profiles
}

// NewCharacter creates a character at spawn with the configured smoothing
func (s *LocomotionSystem) NewCharacter(spawn mgl64.Vec3, yaw float64) *entity.Character {
	c := entity.NewCharacter(spawn, yaw, s.profiles.Stand)
	c.CameraHeight.SmoothTime = s.config.Stance.Smoothing
	c.ColliderHeight.SmoothTime = s.config.Stance.Smoothing
	c.ColliderCenter.SmoothTime = s.config.Stance.Smoothing
	c.Lean.SmoothTime = s.config.Lean.Smoothing
	c.JumpImpulse.SmoothTime = s.config.Jump.Falloff
	return c
}

// Update runs one frame of locomotion
func (s *LocomotionSystem) Update(c *entity.Character, in InputSample, dt float64) {
	s.updateTimers(c, dt)

	s.SetGrounded(c)
	s.SetFalling(c)

	s.handleEdges(c, in)

	s.CalculateView(c, in.View, dt)
	s.CalculateMovement(c, in.Move, dt)
	s.CalculateJump(c, dt)
	s.CalculateStance(c, dt)
	s.CalculateLean(c, dt)
}

// updateTimers updates the character timers
func (s *LocomotionSystem) updateTimers(c *entity.Character, dt float64) {
	if c.SprintCooldown > 0 {
		c.SprintCooldown -= dt
		if c.SprintCooldown < 0 {
			c.SprintCooldown = 0
		}
	}
}

// handleEdges applies the discrete input events of the frame
func (s *LocomotionSystem) handleEdges(c *entity.Character, in InputSample) {
	if in.LeanLeftPressed {
		c.LeanLeftHeld = true
	}
	if in.LeanLeftReleased {
		c.LeanLeftHeld = false
	}
	if in.LeanRightPressed {
		c.LeanRightHeld = true
	}
	if in.LeanRightReleased {
		c.LeanRightHeld = false
	}

	if in.AimPressed {
		s.SetAiming(c, true)
	}
	if in.AimReleased {
		s.SetAiming(c, false)
	}

	if in.SprintPressed {
		s.ToggleSprint(c, in.Move.Y())
	}
	if in.SprintReleased {
		s.StopSprint(c)
	}

	if in.CrouchPressed {
		s.Crouch(c)
	}
	if in.PronePressed {
		s.Prone(c)
	}

	if in.JumpPressed {
		s.Jump(c)
	}
}

// SetGrounded probes for ground under the feet
func (s *LocomotionSystem) SetGrounded(c *entity.Character) {
	g := s.config.Grounding
	mask := entity.LayerMask(s.config.Layers.Ground)

	if s.physics.SphereCheck(c.Position, g.Radius, mask) {
		c.Grounded = true
		return
	}
	_, hit := s.physics.Raycast(c.Position, entity.Up.Mul(-1), g.Radius+g.ExtraRayDistance, mask)
	c.Grounded = hit
}

// SetFalling marks the character as falling when airborne and moving fast
func (s *LocomotionSystem) SetFalling(c *entity.Character) {
	c.Falling = !c.Grounded && c.Speed() >= s.config.Grounding.FallingSpeed
}

// CalculateView applies the look input to yaw and pitch
func (s *LocomotionSystem) CalculateView(c *entity.Character, view mgl64.Vec2, dt float64) {
	v := s.config.View
	sensX, sensY := v.SensitivityX, v.SensitivityY
	if c.Aiming {
		sensX *= v.AimingEffector
		sensY *= v.AimingEffector
	}

	dx, dy := view.X(), view.Y()
	if v.InvertX {
		dx = -dx
	}
	if !v.InvertY {
		dy = -dy
	}

	c.Yaw = math.Mod(c.Yaw+sensX*dx*dt, 360)
	c.Pitch = mgl64.Clamp(c.Pitch+sensY*dy*dt, v.PitchMin, v.PitchMax)
}

// CalculateMovement integrates horizontal and vertical motion and hands
// the displacement to the mover
func (s *LocomotionSystem) CalculateMovement(c *entity.Character, move mgl64.Vec2, dt float64) {
	m := s.config.Movement

	if move.Y() <= s.config.Sprint.ForwardThreshold || c.Stance != entity.StanceStand {
		c.Sprinting = false
	}

	if c.HorizontalSpeed() > s.config.Lean.CancelSpeed && !c.Aiming {
		c.LeanLeftHeld = false
		c.LeanRightHeld = false
	}

	forwardSpeed, strafeSpeed := m.WalkForwardSpeed, m.WalkStrafeSpeed
	if c.Sprinting {
		forwardSpeed, strafeSpeed = m.RunForwardSpeed, m.RunStrafeSpeed
		c.Aiming = false
	}

	c.SpeedEffector = s.speedEffector(c)
	forwardSpeed *= c.SpeedEffector
	strafeSpeed *= c.SpeedEffector

	move = ClampMove(move)
	horizontal := c.Right().Mul(strafeSpeed * move.X()).
		Add(c.Forward().Mul(forwardSpeed * move.Y()))

	s.applyGravity(c, dt)

	velocity := horizontal.
		Add(entity.Up.Mul(c.VerticalVelocity)).
		Add(c.JumpImpulse.Value)

	if dt > 0 {
		from := c.Position
		c.Position = s.mover.Move(from, velocity.Mul(dt), c.ColliderHeight.Value)
		c.Velocity = c.Position.Sub(from).Mul(1 / dt)
	}

	walk := m.WalkForwardSpeed * c.SpeedEffector
	if walk > 0 {
		c.AnimationSpeed = math.Min(c.Speed()/walk, 1)
	} else {
		c.AnimationSpeed = 0
	}
}

// speedEffector picks the single multiplier that applies this frame
func (s *LocomotionSystem) speedEffector(c *entity.Character) float64 {
	m := s.config.Movement
	switch {
	case !c.Grounded:
		return m.FallingSpeedEffector
	case c.Stance == entity.StanceCrouch:
		return m.CrouchSpeedEffector
	case c.Stance == entity.StanceProne:
		return m.ProneSpeedEffector
	case c.Aiming:
		return m.AimingSpeedEffector
	default:
		return 1
	}
}

func (s *LocomotionSystem) applyGravity(c *entity.Character, dt float64) {
	g := s.config.Gravity
	if !c.Grounded {
		if c.VerticalVelocity > g.Min {
			c.VerticalVelocity = math.Max(c.VerticalVelocity-g.Amount*dt, g.Min)
		}
		return
	}
	// stops accumulated fall speed without cancelling a jump
	c.VerticalVelocity = math.Max(c.VerticalVelocity, g.GroundedFloor)
}

// CalculateJump decays the jump impulse toward zero
func (s *LocomotionSystem) CalculateJump(c *entity.Character, dt float64) {
	c.JumpImpulse.Step(mgl64.Vec3{}, dt)
}

// CalculateStance eases the body geometry toward the current stance
func (s *LocomotionSystem) CalculateStance(c *entity.Character, dt float64) {
	p := s.profiles.For(c.Stance)
	c.CameraHeight.Step(p.CameraHeight, dt)
	c.ColliderHeight.Step(p.ColliderHeight, dt)
	c.ColliderCenter.Step(p.ColliderCenter, dt)
}

// CalculateLean eases the lean angle toward the held direction
func (s *LocomotionSystem) CalculateLean(c *entity.Character, dt float64) {
	target := 0.0
	if c.CanLean && c.Stance == entity.StanceStand {
		switch {
		case c.LeanLeftHeld:
			target = s.config.Lean.Angle
		case c.LeanRightHeld:
			target = -s.config.Lean.Angle
		}
	}
	c.LeanTarget = target
	c.Lean.Step(target, dt)
}

// Jump launches the character if grounded and standing. From crouch or
// prone it tries to stand up instead. Returns true when a jump started.
func (s *LocomotionSystem) Jump(c *entity.Character) bool {
	if !c.Grounded {
		return false
	}

	if c.Stance != entity.StanceStand {
		s.changeStance(c, entity.StanceStand)
		return false
	}

	c.JumpImpulse.Value = entity.Up.Mul(s.config.Jump.Height)
	c.JumpImpulse.Velocity = mgl64.Vec3{}
	c.VerticalVelocity = 0

	if s.OnJump != nil {
		s.OnJump()
	}
	return true
}

// Crouch toggles between stand and crouch, or rises from prone to crouch.
// Only rising is checked for clearance.
func (s *LocomotionSystem) Crouch(c *entity.Character) bool {
	switch c.Stance {
	case entity.StanceCrouch:
		return s.changeStance(c, entity.StanceStand)
	case entity.StanceStand:
		c.Stance = entity.StanceCrouch
		c.Sprinting = false
		return true
	default:
		return s.changeStance(c, entity.StanceCrouch)
	}
}

// Prone drops to prone. Going down needs no clearance.
func (s *LocomotionSystem) Prone(c *entity.Character) {
	c.Stance = entity.StanceProne
	c.Sprinting = false
}

// changeStance moves to stance if its capsule fits
func (s *LocomotionSystem) changeStance(c *entity.Character, stance entity.Stance) bool {
	if c.Stance == stance {
		return true
	}
	if !s.CanOccupy(c, stance) {
		s.logger.Debug().
			Stringer("from", c.Stance).
			Stringer("to", stance).
			Msg("stance change blocked")
		s.metrics.StanceRejected(c.Stance.String(), stance.String())
		return false
	}
	c.Stance = stance
	if stance != entity.StanceStand {
		c.Sprinting = false
	}
	return true
}

// CanOccupy probes a capsule the size of the stance's collider at the
// character's position
func (s *LocomotionSystem) CanOccupy(c *entity.Character, stance entity.Stance) bool {
	st := s.config.Stance
	radius := st.ProbeRadius
	height := s.profiles.For(stance).ColliderHeight

	bottom := c.Position.Add(entity.Up.Mul(radius + st.ProbeSkin))
	top := c.Position.Add(entity.Up.Mul(math.Max(height-radius, radius+st.ProbeSkin)))

	return !s.physics.CapsuleCheck(bottom, top, radius, entity.LayerMask(s.config.Layers.Player))
}

// ToggleSprint flips sprinting if the cooldown has expired. forward is the
// forward movement input of the frame.
func (s *LocomotionSystem) ToggleSprint(c *entity.Character, forward float64) bool {
	if c.SprintCooldown > 0 {
		return false
	}
	if forward <= s.config.Sprint.ForwardThreshold || c.Stance != entity.StanceStand {
		c.Sprinting = false
		return false
	}

	c.Sprinting = !c.Sprinting
	c.SprintCooldown = s.config.Sprint.Cooldown
	if c.Sprinting {
		c.Aiming = false
	}
	return true
}

// StopSprint ends sprinting when the sprint key is configured as hold
func (s *LocomotionSystem) StopSprint(c *entity.Character) {
	if s.config.Sprint.Hold {
		c.Sprinting = false
	}
}

// SetAiming starts or stops aiming. Aiming cannot start while sprinting.
func (s *LocomotionSystem) SetAiming(c *entity.Character, aiming bool) {
	if aiming && c.Sprinting {
		return
	}
	c.Aiming = aiming
}
