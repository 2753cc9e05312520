// Package playing provides the firing range scene.
package playing

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/younwookim/fpscore/internal/application/feedback"
	"github.com/younwookim/fpscore/internal/application/scene"
	"github.com/younwookim/fpscore/internal/application/state"
	"github.com/younwookim/fpscore/internal/application/system"
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/ecs"
	"github.com/younwookim/fpscore/internal/infrastructure/config"
	"github.com/younwookim/fpscore/internal/infrastructure/telemetry"
)

// Colors for rendering
var (
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorFloor     = color.RGBA{40, 40, 56, 255}
	colorWall      = color.RGBA{80, 80, 100, 255}
	colorGlass     = color.RGBA{120, 180, 220, 90}
	colorEnemy     = color.RGBA{200, 100, 100, 255}
	colorCrate     = color.RGBA{160, 110, 60, 255}
	colorAmmo      = color.RGBA{255, 215, 0, 255}
	colorPlayer    = color.RGBA{100, 200, 100, 255}
	colorFacing    = color.RGBA{200, 255, 200, 255}
	colorFlash     = color.RGBA{255, 240, 160, 255}
	colorDecal     = color.RGBA{20, 20, 20, 255}
	colorHit       = color.RGBA{255, 60, 60, 255}
	colorCrosshair = color.RGBA{255, 255, 255, 220}
)

const (
	// pixelsPerMeter is the top-down map scale
	pixelsPerMeter = 8.0
	// fallLimit is the height below which the character is respawned
	fallLimit = -20.0
)

// InputSource supplies one input sample per update. It reports false when
// there is nothing left to play.
type InputSource interface {
	GetInput() (system.InputSample, bool)
}

type liveInput struct {
	sys *system.InputSystem
}

func (l liveInput) GetInput() (system.InputSample, bool) {
	return l.sys.GetInput(), true
}

// Options configures a Playing scene
type Options struct {
	Config  *config.GameConfig
	Range   *config.RangeConfig
	Metrics *telemetry.CombatMetrics
	Logger  zerolog.Logger

	// Seed feeds the spread rng. Zero picks one from the clock.
	Seed int64
	// Input overrides keyboard and mouse, e.g. with a replay
	Input InputSource
	// RecordPath enables input recording when not empty
	RecordPath string
}

// Playing is the firing range scene
type Playing struct {
	config   *config.GameConfig
	rangeCfg *config.RangeConfig
	state    state.GameState
	logger   zerolog.Logger

	world   *ecs.World
	frame   *system.Frame
	loadout *system.Loadout

	input InputSource
	live  *system.InputSystem

	anim    *feedback.Animation
	effects *feedback.Effects
	audio   *feedback.Audio

	screenW   int
	screenH   int
	destroyed int

	// Deterministic RNG
	rng  *rand.Rand
	seed int64

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene on the given range
func New(opts Options) (*Playing, error) {
	if opts.Config == nil || opts.Config.Tuning == nil || opts.Config.Weapons == nil {
		return nil, fmt.Errorf("playing: %w: game config", system.ErrMissingCollaborator)
	}
	if opts.Range == nil {
		return nil, fmt.Errorf("playing: %w: range config", system.ErrMissingCollaborator)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tuning := opts.Config.Tuning

	p := &Playing{
		config:         opts.Config,
		rangeCfg:       opts.Range,
		state:          state.StatePlaying,
		logger:         opts.Logger.With().Str("range", opts.Range.ID).Logger(),
		world:          ecs.LoadRange(opts.Range, tuning.Stance.ProbeRadius),
		anim:           feedback.NewAnimation(opts.Logger),
		effects:        feedback.NewEffects(opts.Logger),
		audio:          feedback.NewAudio(opts.Logger),
		screenW:        tuning.Display.ScreenWidth,
		screenH:        tuning.Display.ScreenHeight,
		rng:            rand.New(rand.NewSource(seed)),
		seed:           seed,
		input:          opts.Input,
		recordFilename: opts.RecordPath,
	}
	if p.input == nil {
		p.live = system.NewInputSystem()
		p.input = liveInput{sys: p.live}
	}

	p.world.OnDestroyed = func(id ecs.EntityID, body ecs.Body) {
		if body.Tag == "" {
			return
		}
		p.destroyed++
		p.logger.Info().Uint32("id", uint32(id)).Str("name", body.Name).Str("tag", body.Tag).Msg("target removed")
	}

	loadout, err := system.NewLoadout(opts.Config.Weapons)
	if err != nil {
		return nil, err
	}
	p.loadout = loadout

	spawn, yaw := ecs.Spawn(opts.Range)
	p.frame, err = system.NewFrame(system.FrameDeps{
		Spawn:    spawn,
		SpawnYaw: yaw,
		Tuning:   tuning,
		Collab: system.Collaborators{
			Physics:   p.world,
			Mover:     p.world.NewMover(entity.LayerMask(tuning.Layers.Player)),
			Animation: p.anim,
			Effects:   p.effects,
			Audio:     p.audio,
		},
		Registry: system.NewWeaponRegistry(),
		Pickups:  loadout.Pickups,
		Rng:      p.rng,
		Metrics:  opts.Metrics,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	if err := loadout.Equip(p.frame.Equipment, p.frame.Character); err != nil {
		return nil, err
	}

	if opts.RecordPath != "" {
		p.recorder = NewRecorder(seed, opts.Range.ID)
		p.logger.Info().Str("path", opts.RecordPath).Int64("seed", seed).Msg("recording enabled")
	}

	return p, nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	switch p.state {
	case state.StatePlaying:
		return nil, p.updatePlaying(dt)
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.resume()
		}
	case state.StateReplayDone:
		return nil, scene.ErrDone
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying(dt float64) error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.pause()
		return nil
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		p.copyReport()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		p.respawn("manual")
	}

	input, ok := p.input.GetInput()
	if !ok {
		p.state = state.StateReplayDone
		p.logger.Info().Int("frames", p.frame.FrameCount()).Msg("replay finished")
		return scene.ErrDone
	}

	if p.recorder != nil {
		p.recorder.RecordFrame(input)
	}

	p.frame.Step(input, dt)

	if p.frame.Character.Position.Y() < fallLimit {
		p.respawn("fell out of range")
	}
	return nil
}

func (p *Playing) pause() {
	p.state = state.StatePaused
	if p.live != nil {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
}

func (p *Playing) resume() {
	p.state = state.StatePlaying
	if p.live != nil {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		p.live.ResetCursor()
	}
}

func (p *Playing) respawn(reason string) {
	p.frame.Respawn()
	p.logger.Info().Str("reason", reason).Msg("respawned")
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.logger.Error().Err(err).Msg("failed to save recording")
	} else {
		p.logger.Info().Str("path", filename).Int("frames", p.recorder.FrameCount()).Msg("recording saved")
	}
}

// Report summarizes the character and weapon state as plain text
func (p *Playing) Report() string {
	c := p.frame.Character
	var b strings.Builder

	fmt.Fprintf(&b, "range: %s seed: %d frame: %d\n", p.rangeCfg.ID, p.seed, p.frame.FrameCount())
	fmt.Fprintf(&b, "position: %.2f %.2f %.2f yaw: %.1f pitch: %.1f\n",
		c.Position.X(), c.Position.Y(), c.Position.Z(), c.Yaw, c.Pitch)
	fmt.Fprintf(&b, "stance: %s grounded: %t sprinting: %t aiming: %t\n", c.Stance, c.Grounded, c.Sprinting, c.Aiming)
	if w := p.frame.Equipment.Active(); w != nil {
		fmt.Fprintf(&b, "weapon: %s (%s) %s\n", w.Name, w.Category(), w.HUDText())
	}
	fmt.Fprintf(&b, "targets removed: %d effects live: %d\n", p.destroyed, p.effects.Len())
	return b.String()
}

func (p *Playing) copyReport() {
	if err := clipboard.WriteAll(p.Report()); err != nil {
		p.logger.Warn().Err(err).Msg("failed to copy report")
		return
	}
	p.logger.Info().Msg("report copied to clipboard")
}

// Draw renders a top-down view of the range with a text HUD
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	p.drawRange(screen)
	p.drawEffects(screen)
	p.drawCharacter(screen)
	p.drawCrosshair(screen)
	p.drawHUD(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nPress ESC to resume")
	case state.StateReplayDone:
		p.drawOverlay(screen, "REPLAY FINISHED")
	}
}

// toScreen maps world x/z to screen pixels centred on the character,
// with +z pointing up the screen
func (p *Playing) toScreen(x, z float64) (float64, float64) {
	c := p.frame.Character.Position
	return float64(p.screenW)/2 + (x-c.X())*pixelsPerMeter,
		float64(p.screenH)/2 - (z-c.Z())*pixelsPerMeter
}

func (p *Playing) boxColor(id ecs.EntityID, box ecs.AABB, body ecs.Body) color.Color {
	if _, ok := p.world.IsPickup[id]; ok {
		return colorAmmo
	}
	switch body.Tag {
	case entity.TagEnemy, entity.TagEnemyBlowUp:
		return colorEnemy
	case entity.TagCrate:
		return colorCrate
	case entity.TagNoShoot:
		return colorGlass
	}
	if box.Max.Y() <= p.frame.Character.Position.Y()+0.01 {
		return colorFloor
	}
	return colorWall
}

func (p *Playing) drawRange(screen *ebiten.Image) {
	p.world.Each(func(id ecs.EntityID, box ecs.AABB, body ecs.Body) {
		x, y := p.toScreen(box.Min.X(), box.Max.Z())
		size := box.Size()
		ebitenutil.DrawRect(screen, x, y, size.X()*pixelsPerMeter, size.Z()*pixelsPerMeter, p.boxColor(id, box, body))
	})
}

func (p *Playing) drawEffects(screen *ebiten.Image) {
	p.effects.Each(func(_ system.EffectID, e system.Effect) {
		var c color.Color
		switch e.Kind {
		case system.EffectMuzzleFlash:
			c = colorFlash
		case system.EffectDecal:
			c = colorDecal
		default:
			c = colorHit
		}
		x, y := p.toScreen(e.Position.X(), e.Position.Z())
		ebitenutil.DrawRect(screen, x-1, y-1, 2, 2, c)
	})
}

func (p *Playing) drawCharacter(screen *ebiten.Image) {
	c := p.frame.Character
	radius := p.config.Tuning.Stance.ProbeRadius * pixelsPerMeter
	x, y := p.toScreen(c.Position.X(), c.Position.Z())

	ebitenutil.DrawRect(screen, x-radius, y-radius, radius*2, radius*2, colorPlayer)

	fwd := c.CameraForward()
	look := mgl64.Vec2{fwd.X(), fwd.Z()}
	if look.Len() > 1e-6 {
		look = look.Normalize().Mul(3 * pixelsPerMeter)
	}
	ebitenutil.DrawLine(screen, x, y, x+look.X(), y-look.Y(), colorFacing)
}

func (p *Playing) drawCrosshair(screen *ebiten.Image) {
	ch := p.frame.Crosshair
	if !ch.Visible {
		return
	}
	cx, cy := float64(p.screenW)/2, float64(p.screenH)/2
	gap := ch.Size / 10
	const arm = 4.0

	ebitenutil.DrawRect(screen, cx-gap-arm, cy, arm, 1, colorCrosshair)
	ebitenutil.DrawRect(screen, cx+gap, cy, arm, 1, colorCrosshair)
	ebitenutil.DrawRect(screen, cx, cy-gap-arm, 1, arm, colorCrosshair)
	ebitenutil.DrawRect(screen, cx, cy+gap, 1, arm, colorCrosshair)
}

func (p *Playing) drawHUD(screen *ebiten.Image) {
	c := p.frame.Character

	status := fmt.Sprintf("%s  %.1f m/s", c.Stance, c.HorizontalSpeed())
	if c.Sprinting {
		status += "  SPRINT"
	}
	if c.Aiming {
		status += "  AIM"
	}
	ebitenutil.DebugPrintAt(screen, status, 10, p.screenH-35)

	if w := p.frame.Equipment.Active(); w != nil {
		ammo := fmt.Sprintf("[%d] %s  %s", w.Slot, w.Name, w.HUDText())
		if w.Reloading {
			ammo += "  RELOADING"
		}
		ebitenutil.DebugPrintAt(screen, ammo, 10, p.screenH-20)
	}

	controls := "WASD: Move | Space: Jump | C/Z: Crouch/Prone | Q/E: Lean | Shift: Sprint | LMB/RMB: Fire/Aim | R: Reload | Tab: Use | ESC: Pause"
	ebitenutil.DebugPrint(screen, controls)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	overlay := color.RGBA{0, 0, 0, 128}
	ebitenutil.DrawRect(screen, 0, 0, float64(p.screenW), float64(p.screenH), overlay)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-50, p.screenH/2-20)
}

// OnEnter captures the mouse for live play
func (p *Playing) OnEnter() {
	if p.live != nil {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording()
}

// Frame exposes the simulation for the replay runner and tests
func (p *Playing) Frame() *system.Frame {
	return p.frame
}

// State returns the current scene state
func (p *Playing) State() state.GameState {
	return p.state
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}
