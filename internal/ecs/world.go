package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/domain/entity"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID = entity.EntityID

// World holds the boxes of a firing range and answers physics queries
// about them
type World struct {
	nextID EntityID
	order  []EntityID

	// Components
	Box    map[EntityID]AABB
	Body   map[EntityID]Body
	Health map[EntityID]Health

	// Tags
	IsPickup map[EntityID]struct{}

	// BodyRadius is the horizontal half extent of the character collider
	BodyRadius float64

	// Event callbacks
	OnDestroyed func(id EntityID, body Body)
}

// NewWorld creates a new empty world
func NewWorld(bodyRadius float64) *World {
	return &World{
		nextID:     1, // 0 is "nil"
		Box:        make(map[EntityID]AABB),
		Body:       make(map[EntityID]Body),
		Health:     make(map[EntityID]Health),
		IsPickup:   make(map[EntityID]struct{}),
		BodyRadius: bodyRadius,
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.order = append(w.order, id)
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	if !w.Exists(id) {
		return
	}
	body := w.Body[id]

	delete(w.Box, id)
	delete(w.Body, id)
	delete(w.Health, id)
	delete(w.IsPickup, id)

	if w.OnDestroyed != nil {
		w.OnDestroyed(id, body)
	}
}

// Exists checks if an entity has a Box component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Box[id]
	return ok
}

// Len returns the number of live boxes
func (w *World) Len() int {
	return len(w.Box)
}

// BoxConfig holds configuration for creating a box
type BoxConfig struct {
	Name   string
	Min    mgl64.Vec3
	Max    mgl64.Vec3
	Layer  entity.LayerMask
	Tag    string
	Health int // 0 means indestructible
	Pickup bool
}

// CreateBox creates a box entity
func (w *World) CreateBox(cfg BoxConfig) EntityID {
	id := w.NewEntity()

	w.Box[id] = AABB{Min: cfg.Min, Max: cfg.Max}
	w.Body[id] = Body{Name: cfg.Name, Layer: cfg.Layer, Tag: cfg.Tag}
	if cfg.Health > 0 {
		w.Health[id] = Health{Current: cfg.Health, Max: cfg.Health}
	}
	if cfg.Pickup {
		w.IsPickup[id] = struct{}{}
	}

	return id
}

// Each calls fn for every live box in creation order
func (w *World) Each(fn func(id EntityID, box AABB, body Body)) {
	for _, id := range w.order {
		box, ok := w.Box[id]
		if !ok {
			continue
		}
		fn(id, box, w.Body[id])
	}
}

// Collider returns the query view of a box
func (w *World) Collider(id EntityID) entity.Collider {
	ref := boxRef{world: w, id: id}
	c := entity.Collider{
		ID:     id,
		Tag:    w.Body[id].Tag,
		Target: ref,
	}
	if _, ok := w.IsPickup[id]; ok {
		c.Pickup = ref
	}
	return c
}

// boxRef lets hits damage or consume the box they touched
type boxRef struct {
	world *World
	id    EntityID
}

// ApplyDamage hurts the box and removes it once its health runs out.
// Boxes without health ignore damage.
func (r boxRef) ApplyDamage(amount int) bool {
	h, ok := r.world.Health[r.id]
	if !ok {
		return false
	}
	if !h.TakeDamage(amount) {
		r.world.Health[r.id] = h
		return false
	}
	r.world.DestroyEntity(r.id)
	return true
}

// Consume removes the box
func (r boxRef) Consume() {
	r.world.DestroyEntity(r.id)
}
