package replay

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/application/system"
)

// FrameInput records input state for a single frame
type FrameInput struct {
	F   int        `json:"f"`             // Frame number
	M   [2]float64 `json:"m"`             // Move (strafe, forward)
	V   [2]float64 `json:"v"`             // View delta
	J   bool       `json:"j,omitempty"`   // JumpPressed
	C   bool       `json:"c,omitempty"`   // CrouchPressed
	P   bool       `json:"p,omitempty"`   // PronePressed
	SP  bool       `json:"sp,omitempty"`  // SprintPressed
	SR  bool       `json:"sr,omitempty"`  // SprintReleased
	AP  bool       `json:"ap,omitempty"`  // AimPressed
	AR  bool       `json:"ar,omitempty"`  // AimReleased
	FP  bool       `json:"fp,omitempty"`  // FirePressed
	FR  bool       `json:"fr,omitempty"`  // FireReleased
	RL  bool       `json:"rl,omitempty"`  // ReloadPressed
	LLP bool       `json:"llp,omitempty"` // LeanLeftPressed
	LLR bool       `json:"llr,omitempty"` // LeanLeftReleased
	LRP bool       `json:"lrp,omitempty"` // LeanRightPressed
	LRR bool       `json:"lrr,omitempty"` // LeanRightReleased
	I   bool       `json:"i,omitempty"`   // InteractPressed
	E   int        `json:"e,omitempty"`   // EquipSlot
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Range     string       `json:"range"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// FrameFromInput packs one sample for frame f
func FrameFromInput(f int, in system.InputSample) FrameInput {
	return FrameInput{
		F:   f,
		M:   [2]float64(in.Move),
		V:   [2]float64(in.View),
		J:   in.JumpPressed,
		C:   in.CrouchPressed,
		P:   in.PronePressed,
		SP:  in.SprintPressed,
		SR:  in.SprintReleased,
		AP:  in.AimPressed,
		AR:  in.AimReleased,
		FP:  in.FirePressed,
		FR:  in.FireReleased,
		RL:  in.ReloadPressed,
		LLP: in.LeanLeftPressed,
		LLR: in.LeanLeftReleased,
		LRP: in.LeanRightPressed,
		LRR: in.LeanRightReleased,
		I:   in.InteractPressed,
		E:   in.EquipSlot,
	}
}

// Sample unpacks the recorded frame
func (fi FrameInput) Sample() system.InputSample {
	return system.InputSample{
		Move:              mgl64.Vec2(fi.M),
		View:              mgl64.Vec2(fi.V),
		JumpPressed:       fi.J,
		CrouchPressed:     fi.C,
		PronePressed:      fi.P,
		SprintPressed:     fi.SP,
		SprintReleased:    fi.SR,
		AimPressed:        fi.AP,
		AimReleased:       fi.AR,
		FirePressed:       fi.FP,
		FireReleased:      fi.FR,
		ReloadPressed:     fi.RL,
		LeanLeftPressed:   fi.LLP,
		LeanLeftReleased:  fi.LLR,
		LeanRightPressed:  fi.LRP,
		LeanRightReleased: fi.LRR,
		InteractPressed:   fi.I,
		EquipSlot:         fi.E,
	}
}
