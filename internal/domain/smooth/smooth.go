// Package smooth provides critically damped spring interpolation.
//
// Values that must ease toward a target (camera height, lean, weapon sway,
// jump impulse) are stepped through Damp/DampVec3 once per frame instead of
// being snapped. The spring never overshoots its target.
package smooth

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// minSmoothTime keeps omega finite for zero or negative smoothing times.
const minSmoothTime = 0.0001

// Damp moves current toward target over roughly smoothTime seconds.
// velocity carries the spring state between calls and is updated in place.
func Damp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if dt <= 0 {
		return current
	}

	omega, decay := springTerms(smoothTime, dt)

	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * decay
	out := target + (change+temp)*decay

	// Clamp to target if the step crossed it
	if (target-current > 0) == (out > target) {
		out = target
		*velocity = 0
	}
	return out
}

// DampVec3 is the vector form of Damp. The overshoot check is done on the
// whole vector so direction is preserved.
func DampVec3(current, target mgl64.Vec3, velocity *mgl64.Vec3, smoothTime, dt float64) mgl64.Vec3 {
	if dt <= 0 {
		return current
	}

	omega, decay := springTerms(smoothTime, dt)

	change := current.Sub(target)
	temp := velocity.Add(change.Mul(omega)).Mul(dt)
	*velocity = velocity.Sub(temp.Mul(omega)).Mul(decay)
	out := target.Add(change.Add(temp).Mul(decay))

	if target.Sub(current).Dot(out.Sub(target)) > 0 {
		out = target
		*velocity = mgl64.Vec3{}
	}
	return out
}

func springTerms(smoothTime, dt float64) (omega, decay float64) {
	smoothTime = math.Max(minSmoothTime, smoothTime)
	omega = 2 / smoothTime
	x := omega * dt
	decay = 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	return omega, decay
}

// Lerp interpolates between a and b with t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*clamp01(t)
}

// LerpVec3 interpolates between a and b with t clamped to [0, 1].
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(clamp01(t)))
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
