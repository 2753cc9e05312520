package config

// TuningConfig is the root config for tuning.json
type TuningConfig struct {
	Display     DisplayConfig     `json:"display"`
	View        ViewConfig        `json:"view"`
	Movement    MovementConfig    `json:"movement"`
	Jump        JumpConfig        `json:"jump"`
	Gravity     GravityConfig     `json:"gravity"`
	Grounding   GroundingConfig   `json:"grounding"`
	Stance      StanceConfig      `json:"stance"`
	Lean        LeanConfig        `json:"lean"`
	Sprint      SprintConfig      `json:"sprint"`
	Crosshair   CrosshairConfig   `json:"crosshair"`
	Footsteps   FootstepConfig    `json:"footsteps"`
	Interaction InteractionConfig `json:"interaction"`
	Layers      LayerConfig       `json:"layers"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// ViewConfig configures mouse look. Pitch limits are degrees.
type ViewConfig struct {
	SensitivityX   float64 `json:"sensitivityX"`
	SensitivityY   float64 `json:"sensitivityY"`
	AimingEffector float64 `json:"aimingEffector"` // sensitivity multiplier while aiming
	InvertX        bool    `json:"invertX"`
	InvertY        bool    `json:"invertY"`
	PitchMin       float64 `json:"pitchMin"`
	PitchMax       float64 `json:"pitchMax"`
}

// MovementConfig speeds are meters per second
type MovementConfig struct {
	WalkForwardSpeed     float64 `json:"walkForwardSpeed"`
	WalkStrafeSpeed      float64 `json:"walkStrafeSpeed"`
	RunForwardSpeed      float64 `json:"runForwardSpeed"`
	RunStrafeSpeed       float64 `json:"runStrafeSpeed"`
	FallingSpeedEffector float64 `json:"fallingSpeedEffector"`
	CrouchSpeedEffector  float64 `json:"crouchSpeedEffector"`
	ProneSpeedEffector   float64 `json:"proneSpeedEffector"`
	AimingSpeedEffector  float64 `json:"aimingSpeedEffector"`
}

type JumpConfig struct {
	Height  float64 `json:"height"`  // initial upward impulse (m/s)
	Falloff float64 `json:"falloff"` // impulse smoothing time (seconds)
}

type GravityConfig struct {
	Amount        float64 `json:"amount"`        // m/s^2 while airborne
	Min           float64 `json:"min"`           // terminal vertical velocity
	GroundedFloor float64 `json:"groundedFloor"` // lowest vertical velocity kept while grounded
}

type GroundingConfig struct {
	Radius           float64 `json:"radius"`
	ExtraRayDistance float64 `json:"extraRayDistance"`
	FallingSpeed     float64 `json:"fallingSpeed"`
}

type StanceProfileConfig struct {
	CameraHeight   float64    `json:"cameraHeight"`
	ColliderHeight float64    `json:"colliderHeight"`
	ColliderCenter [3]float64 `json:"colliderCenter"`
}

type StanceConfig struct {
	Smoothing   float64             `json:"smoothing"`
	ProbeRadius float64             `json:"probeRadius"`
	ProbeSkin   float64             `json:"probeSkin"`
	Stand       StanceProfileConfig `json:"stand"`
	Crouch      StanceProfileConfig `json:"crouch"`
	Prone       StanceProfileConfig `json:"prone"`
}

type LeanConfig struct {
	Angle       float64 `json:"angle"`
	Smoothing   float64 `json:"smoothing"`
	CancelSpeed float64 `json:"cancelSpeed"`
}

type SprintConfig struct {
	Cooldown         float64 `json:"cooldown"`
	ForwardThreshold float64 `json:"forwardThreshold"`
	Hold             bool    `json:"hold"` // releasing the key stops sprinting
}

type CrosshairConfig struct {
	NormalSize float64 `json:"normalSize"`
	MovingSize float64 `json:"movingSize"`
}

type FootstepConfig struct {
	MinSpeed     float64 `json:"minSpeed"`
	RunSpeed     float64 `json:"runSpeed"`
	WalkInterval float64 `json:"walkInterval"`
	RunInterval  float64 `json:"runInterval"`
	WalkPitch    float64 `json:"walkPitch"`
	RunPitch     float64 `json:"runPitch"`
	Volume       float64 `json:"volume"`
}

type InteractionConfig struct {
	Range float64 `json:"range"`
}

// LayerConfig holds collider layer bitmasks
type LayerConfig struct {
	Ground uint32 `json:"ground"`
	Player uint32 `json:"player"` // obstacles for stance probes
}
