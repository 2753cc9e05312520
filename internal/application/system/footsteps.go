package system

import (
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/config"
)

// FootstepSystem paces footstep sounds to the character's ground speed
type FootstepSystem struct {
	config *config.FootstepConfig
	audio  AudioSink

	timer   float64
	playing bool
}

// NewFootstepSystem creates a new footstep system
func NewFootstepSystem(cfg *config.FootstepConfig, audio AudioSink) (*FootstepSystem, error) {
	if cfg == nil {
		return nil, missing("footstep config")
	}
	if audio == nil {
		return nil, missing("audio sink")
	}
	return &FootstepSystem{config: cfg, audio: audio}, nil
}

// Update plays a step whenever the interval for the current gait elapses
func (s *FootstepSystem) Update(c *entity.Character, dt float64) {
	speed := c.HorizontalSpeed()
	if !c.Grounded || speed <= s.config.MinSpeed {
		if s.playing {
			s.audio.Stop(SoundFootstep)
			s.playing = false
		}
		s.timer = 0
		return
	}

	interval, pitch := s.config.WalkInterval, s.config.WalkPitch
	if speed >= s.config.RunSpeed {
		interval, pitch = s.config.RunInterval, s.config.RunPitch
	}

	s.timer -= dt
	if s.timer > 0 {
		return
	}
	s.audio.Play(SoundFootstep, pitch, s.config.Volume)
	s.playing = true
	s.timer = interval
}
