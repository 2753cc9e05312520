// Package feedback implements the animation, effect and audio sinks the
// core systems report to. Nothing is rendered or played here; the sinks
// keep enough state for the debug view and log every request.
package feedback

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/younwookim/fpscore/internal/application/system"
	"github.com/younwookim/fpscore/internal/domain/entity"
)

// Animation remembers the last value of every weapon animation parameter
type Animation struct {
	logger zerolog.Logger

	Bools    map[entity.EntityID]map[string]bool
	Floats   map[entity.EntityID]map[string]float64
	Triggers map[entity.EntityID][]string
}

// NewAnimation creates an empty animation sink
func NewAnimation(logger zerolog.Logger) *Animation {
	return &Animation{
		logger:   logger.With().Str("sink", "animation").Logger(),
		Bools:    make(map[entity.EntityID]map[string]bool),
		Floats:   make(map[entity.EntityID]map[string]float64),
		Triggers: make(map[entity.EntityID][]string),
	}
}

// SetTrigger records a one-shot trigger
func (a *Animation) SetTrigger(weapon entity.EntityID, name string) {
	a.Triggers[weapon] = append(a.Triggers[weapon], name)
	a.logger.Debug().Uint32("weapon", uint32(weapon)).Str("trigger", name).Msg("animation trigger")
}

// SetBool records a boolean parameter and logs when it changes
func (a *Animation) SetBool(weapon entity.EntityID, name string, value bool) {
	params, ok := a.Bools[weapon]
	if !ok {
		params = make(map[string]bool)
		a.Bools[weapon] = params
	}
	if old, seen := params[name]; !seen || old != value {
		a.logger.Debug().Uint32("weapon", uint32(weapon)).Str("param", name).Bool("value", value).Msg("animation bool")
	}
	params[name] = value
}

// SetFloat records a float parameter
func (a *Animation) SetFloat(weapon entity.EntityID, name string, value float64) {
	params, ok := a.Floats[weapon]
	if !ok {
		params = make(map[string]float64)
		a.Floats[weapon] = params
	}
	params[name] = value
}

// LastTrigger returns the most recent trigger fired on weapon
func (a *Animation) LastTrigger(weapon entity.EntityID) string {
	t := a.Triggers[weapon]
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1]
}

// Effects keeps every effect that has been spawned and not despawned
type Effects struct {
	logger zerolog.Logger
	nextID system.EffectID
	live   map[system.EffectID]system.Effect

	Spawned int
}

// NewEffects creates an empty effect sink
func NewEffects(logger zerolog.Logger) *Effects {
	return &Effects{
		logger: logger.With().Str("sink", "effects").Logger(),
		nextID: 1,
		live:   make(map[system.EffectID]system.Effect),
	}
}

// Spawn stores e and returns its id
func (s *Effects) Spawn(e system.Effect) system.EffectID {
	id := s.nextID
	s.nextID++
	s.live[id] = e
	s.Spawned++

	s.logger.Debug().
		Uint64("id", uint64(id)).
		Stringer("kind", e.Kind).
		Floats64("pos", e.Position[:]).
		Msg("effect spawned")
	return id
}

// Despawn removes an effect. Unknown ids are ignored.
func (s *Effects) Despawn(id system.EffectID) {
	if _, ok := s.live[id]; !ok {
		return
	}
	delete(s.live, id)
	s.logger.Trace().Uint64("id", uint64(id)).Msg("effect despawned")
}

// Len returns the number of live effects
func (s *Effects) Len() int {
	return len(s.live)
}

// Each calls fn for every live effect, oldest first
func (s *Effects) Each(fn func(id system.EffectID, e system.Effect)) {
	ids := make([]system.EffectID, 0, len(s.live))
	for id := range s.live {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fn(id, s.live[id])
	}
}

// Audio tracks which sounds were played last and how often
type Audio struct {
	logger zerolog.Logger

	Plays map[string]int
	Last  string
}

// NewAudio creates an empty audio sink
func NewAudio(logger zerolog.Logger) *Audio {
	return &Audio{
		logger: logger.With().Str("sink", "audio").Logger(),
		Plays:  make(map[string]int),
	}
}

// Play records a sound request
func (a *Audio) Play(sound string, pitch, volume float64) {
	a.Plays[sound]++
	a.Last = sound
	a.logger.Trace().Str("sound", sound).Float64("pitch", pitch).Float64("volume", volume).Msg("play")
}

// Stop records a stop request
func (a *Audio) Stop(sound string) {
	a.logger.Trace().Str("sound", sound).Msg("stop")
}
