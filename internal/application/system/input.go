package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSample is everything the core reads from the devices for one frame.
// Move is (strafe, forward) in [-1, 1]; View is the mouse delta in pixels.
type InputSample struct {
	Move mgl64.Vec2
	View mgl64.Vec2

	JumpPressed bool

	CrouchPressed bool
	PronePressed  bool

	SprintPressed  bool
	SprintReleased bool

	AimPressed  bool
	AimReleased bool

	FirePressed  bool
	FireReleased bool

	ReloadPressed bool

	LeanLeftPressed   bool
	LeanLeftReleased  bool
	LeanRightPressed  bool
	LeanRightReleased bool

	InteractPressed bool

	// EquipSlot is 1-4 on the frame a slot key goes down, otherwise 0
	EquipSlot int
}

// InputSystem polls ebiten for keyboard and mouse state
type InputSystem struct {
	lastCursor mgl64.Vec2
	hasCursor  bool
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

var equipKeys = [...]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputSample {
	mx, my := ebiten.CursorPosition()
	cursor := mgl64.Vec2{float64(mx), float64(my)}
	view := mgl64.Vec2{}
	if s.hasCursor {
		view = cursor.Sub(s.lastCursor)
		// screen y grows downward; positive view y looks up
		view[1] = -view[1]
	}
	s.lastCursor = cursor
	s.hasCursor = true

	in := InputSample{
		Move: mgl64.Vec2{
			axis(ebiten.KeyA, ebiten.KeyD),
			axis(ebiten.KeyS, ebiten.KeyW),
		},
		View:              view,
		JumpPressed:       inpututil.IsKeyJustPressed(ebiten.KeySpace),
		CrouchPressed:     inpututil.IsKeyJustPressed(ebiten.KeyC),
		PronePressed:      inpututil.IsKeyJustPressed(ebiten.KeyZ),
		SprintPressed:     inpututil.IsKeyJustPressed(ebiten.KeyShiftLeft),
		SprintReleased:    inpututil.IsKeyJustReleased(ebiten.KeyShiftLeft),
		AimPressed:        inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		AimReleased:       inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight),
		FirePressed:       inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		FireReleased:      inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		ReloadPressed:     inpututil.IsKeyJustPressed(ebiten.KeyR),
		LeanLeftPressed:   inpututil.IsKeyJustPressed(ebiten.KeyQ),
		LeanLeftReleased:  inpututil.IsKeyJustReleased(ebiten.KeyQ),
		LeanRightPressed:  inpututil.IsKeyJustPressed(ebiten.KeyE),
		LeanRightReleased: inpututil.IsKeyJustReleased(ebiten.KeyE),
		InteractPressed:   inpututil.IsKeyJustPressed(ebiten.KeyTab),
	}

	for i, key := range equipKeys {
		if inpututil.IsKeyJustPressed(key) {
			in.EquipSlot = i + 1
			break
		}
	}

	return in
}

// ResetCursor forgets the last cursor position so the next sample reports
// no view movement. Used after pausing.
func (s *InputSystem) ResetCursor() {
	s.hasCursor = false
}

func axis(negative, positive ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(negative) {
		v--
	}
	if ebiten.IsKeyPressed(positive) {
		v++
	}
	return v
}

// ClampMove limits the movement vector to unit length
func ClampMove(move mgl64.Vec2) mgl64.Vec2 {
	if l := move.Len(); l > 1 {
		return move.Mul(1 / l)
	}
	return move
}

// Idle reports whether the sample carries no input at all
func (in InputSample) Idle() bool {
	return in == InputSample{}
}
