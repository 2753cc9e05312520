package entity

import "github.com/go-gl/mathgl/mgl64"

// Stance is the body posture of the character
type Stance int

const (
	StanceStand Stance = iota
	StanceCrouch
	StanceProne
)

// String returns the string representation of the stance
func (s Stance) String() string {
	switch s {
	case StanceStand:
		return "stand"
	case StanceCrouch:
		return "crouch"
	case StanceProne:
		return "prone"
	default:
		return "unknown"
	}
}

// StanceProfile is the body geometry of one stance. Profiles are read only.
type StanceProfile struct {
	CameraHeight   float64
	ColliderHeight float64
	ColliderCenter mgl64.Vec3
}

// StanceProfiles holds one profile per stance
type StanceProfiles struct {
	Stand  StanceProfile
	Crouch StanceProfile
	Prone  StanceProfile
}

// For returns the profile of the given stance
func (p StanceProfiles) For(s Stance) StanceProfile {
	switch s {
	case StanceCrouch:
		return p.Crouch
	case StanceProne:
		return p.Prone
	default:
		return p.Stand
	}
}
