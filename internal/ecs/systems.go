package ecs

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/domain/entity"
)

const (
	// maxMoveStep is the largest distance moved per collision substep
	maxMoveStep = 0.05
	// capsuleSpacing is the sphere spacing of capsule checks as a fraction
	// of the radius
	capsuleSpacing = 0.5
)

// SphereCheck reports whether any box on mask touches the sphere
func (w *World) SphereCheck(center mgl64.Vec3, radius float64, mask entity.LayerMask) bool {
	for _, id := range w.order {
		box, ok := w.Box[id]
		if !ok || !mask.Has(w.Body[id].Layer) {
			continue
		}
		if box.IntersectsSphere(center, radius) {
			return true
		}
	}
	return false
}

// CapsuleCheck sweeps spheres from p0 to p1 and reports any overlap
func (w *World) CapsuleCheck(p0, p1 mgl64.Vec3, radius float64, mask entity.LayerMask) bool {
	seg := p1.Sub(p0)
	length := seg.Len()
	steps := 1
	if radius > 0 {
		steps = max(1, int(math.Ceil(length/(radius*capsuleSpacing))))
	}
	for i := 0; i <= steps; i++ {
		p := p0.Add(seg.Mul(float64(i) / float64(steps)))
		if w.SphereCheck(p, radius, mask) {
			return true
		}
	}
	return false
}

// Raycast returns the nearest box on mask along the ray. Boxes that
// contain the origin are ignored so a ray can start on a surface.
func (w *World) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask entity.LayerMask) (entity.Hit, bool) {
	if dir.Len() == 0 || maxDist <= 0 {
		return entity.Hit{}, false
	}
	dir = dir.Normalize()

	var best entity.Hit
	found := false
	for _, id := range w.order {
		box, ok := w.Box[id]
		if !ok || !mask.Has(w.Body[id].Layer) || box.Contains(origin) {
			continue
		}
		t, normal, ok := box.Ray(origin, dir)
		if !ok || t > maxDist {
			continue
		}
		if found && t >= best.Distance {
			continue
		}
		best = entity.Hit{
			Point:    origin.Add(dir.Mul(t)),
			Normal:   normal,
			Distance: t,
			Collider: w.Collider(id),
		}
		found = true
	}
	return best, found
}

// Mover moves a character collider through the solid boxes on a mask
type Mover struct {
	world *World
	mask  entity.LayerMask
}

// NewMover creates a mover that collides with boxes on mask
func (w *World) NewMover(mask entity.LayerMask) *Mover {
	return &Mover{world: w, mask: mask}
}

// Move moves the feet by displacement with substep collision, one axis at
// a time. The collider is a box BodyRadius wide and height tall.
func (m *Mover) Move(from, displacement mgl64.Vec3, height float64) mgl64.Vec3 {
	steps := max(1, int(math.Ceil(displacement.Len()/maxMoveStep)))
	step := displacement.Mul(1 / float64(steps))

	pos := from
	blocked := [3]bool{}
	for i := 0; i < steps; i++ {
		// Horizontal first so walking off a ledge does not snag on it
		for _, axis := range [3]int{0, 2, 1} {
			if blocked[axis] || step[axis] == 0 {
				continue
			}
			var hit bool
			pos, hit = m.moveAxis(pos, axis, step[axis], height)
			blocked[axis] = hit
		}
	}
	return pos
}

// moveAxis moves along one axis and snaps to the face of the first box
// entered. Boxes already overlapping the collider are ignored.
func (m *Mover) moveAxis(pos mgl64.Vec3, axis int, delta, height float64) (mgl64.Vec3, bool) {
	before := m.bodyAt(pos, height)
	next := pos
	next[axis] += delta
	after := m.bodyAt(next, height)

	hit := false
	for _, id := range m.world.order {
		box, ok := m.world.Box[id]
		if !ok || !m.mask.Has(m.world.Body[id].Layer) {
			continue
		}
		if !after.Overlaps(box) || before.Overlaps(box) {
			continue
		}
		hit = true
		if delta > 0 {
			next[axis] = math.Min(next[axis], box.Min[axis]-(after.Max[axis]-next[axis]))
		} else {
			next[axis] = math.Max(next[axis], box.Max[axis]+(next[axis]-after.Min[axis]))
		}
	}
	return next, hit
}

// bodyAt returns the character collider with its feet at pos
func (m *Mover) bodyAt(pos mgl64.Vec3, height float64) AABB {
	r := m.world.BodyRadius
	return AABB{
		Min: mgl64.Vec3{pos[0] - r, pos[1], pos[2] - r},
		Max: mgl64.Vec3{pos[0] + r, pos[1] + height, pos[2] + r},
	}
}
