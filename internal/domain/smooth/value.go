package smooth

import "github.com/go-gl/mathgl/mgl64"

// Float is a scalar that eases toward whatever target it is stepped with.
type Float struct {
	Value      float64
	Velocity   float64
	SmoothTime float64
}

// NewFloat returns a Float resting at value.
func NewFloat(value, smoothTime float64) Float {
	return Float{Value: value, SmoothTime: smoothTime}
}

// Step advances the spring by dt toward target and returns the new value.
func (f *Float) Step(target, dt float64) float64 {
	f.Value = Damp(f.Value, target, &f.Velocity, f.SmoothTime, dt)
	return f.Value
}

// Reset snaps the value and clears the spring velocity.
func (f *Float) Reset(value float64) {
	f.Value = value
	f.Velocity = 0
}

// Vec3 is the vector counterpart of Float.
type Vec3 struct {
	Value      mgl64.Vec3
	Velocity   mgl64.Vec3
	SmoothTime float64
}

// NewVec3 returns a Vec3 resting at value.
func NewVec3(value mgl64.Vec3, smoothTime float64) Vec3 {
	return Vec3{Value: value, SmoothTime: smoothTime}
}

// Step advances the spring by dt toward target and returns the new value.
func (v *Vec3) Step(target mgl64.Vec3, dt float64) mgl64.Vec3 {
	v.Value = DampVec3(v.Value, target, &v.Velocity, v.SmoothTime, dt)
	return v.Value
}

// Reset snaps the value and clears the spring velocity.
func (v *Vec3) Reset(value mgl64.Vec3) {
	v.Value = value
	v.Velocity = mgl64.Vec3{}
}
