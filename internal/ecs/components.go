package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/domain/entity"
)

// AABB is an axis aligned box in world coordinates
type AABB struct {
	Min, Max mgl64.Vec3
}

// Center returns the middle of the box
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis
func (b AABB) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box
func (b AABB) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Overlaps reports whether two boxes share volume. Touching faces do not
// count.
func (b AABB) Overlaps(o AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] <= o.Min[i] || b.Min[i] >= o.Max[i] {
			return false
		}
	}
	return true
}

// ClosestPoint clamps p onto the box
func (b AABB) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p[0], b.Min[0], b.Max[0]),
		mgl64.Clamp(p[1], b.Min[1], b.Max[1]),
		mgl64.Clamp(p[2], b.Min[2], b.Max[2]),
	}
}

// IntersectsSphere reports whether the sphere touches the box
func (b AABB) IntersectsSphere(center mgl64.Vec3, radius float64) bool {
	d := b.ClosestPoint(center).Sub(center)
	return d.Dot(d) <= radius*radius
}

// Ray returns the entry distance and surface normal of a ray against the
// box using the slab method. dir must be normalized.
func (b AABB) Ray(origin, dir mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	tMin, tMax := math.Inf(-1), math.Inf(1)
	axis, sign := -1, 0.0

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - origin[i]) * inv
		t2 := (b.Max[i] - origin[i]) * inv
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1
		}
		if t1 > tMin {
			tMin, axis, sign = t1, i, s
		}
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, mgl64.Vec3{}, false
		}
	}

	if axis < 0 || tMin < 0 {
		return 0, mgl64.Vec3{}, false
	}
	var normal mgl64.Vec3
	normal[axis] = sign
	return tMin, normal, true
}

// Body describes how a box takes part in queries
type Body struct {
	Name  string
	Layer entity.LayerMask
	Tag   string
}

// Health represents hit points of a destructible box
type Health struct {
	Current int
	Max     int
}

// TakeDamage applies damage, returns true if destroyed
func (h *Health) TakeDamage(amount int) bool {
	h.Current -= amount
	return h.Current <= 0
}

// IsAlive returns true if health > 0
func (h *Health) IsAlive() bool {
	return h.Current > 0
}
