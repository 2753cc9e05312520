package system

import "github.com/younwookim/fpscore/internal/domain/entity"

// WeaponRegistry indexes live weapons by category so ammo pickups can be
// routed without knowing which weapon is in hand
type WeaponRegistry struct {
	byCategory map[entity.WeaponCategory][]*entity.Weapon
}

// NewWeaponRegistry creates an empty registry
func NewWeaponRegistry() *WeaponRegistry {
	return &WeaponRegistry{
		byCategory: make(map[entity.WeaponCategory][]*entity.Weapon),
	}
}

// Register adds a weapon. Registering twice is a no-op.
func (r *WeaponRegistry) Register(w *entity.Weapon) {
	cat := w.Category()
	for _, existing := range r.byCategory[cat] {
		if existing == w {
			return
		}
	}
	r.byCategory[cat] = append(r.byCategory[cat], w)
}

// Unregister removes a weapon
func (r *WeaponRegistry) Unregister(w *entity.Weapon) {
	cat := w.Category()
	list := r.byCategory[cat]
	for i, existing := range list {
		if existing == w {
			r.byCategory[cat] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(r.byCategory[cat]) == 0 {
		delete(r.byCategory, cat)
	}
}

// Weapons returns the registered weapons of a category in registration order
func (r *WeaponRegistry) Weapons(cat entity.WeaponCategory) []*entity.Weapon {
	return r.byCategory[cat]
}

// Find returns the first registered weapon of a category
func (r *WeaponRegistry) Find(cat entity.WeaponCategory) (*entity.Weapon, bool) {
	list := r.byCategory[cat]
	if len(list) == 0 {
		return nil, false
	}
	return list[0], true
}

// Len returns the number of registered weapons
func (r *WeaponRegistry) Len() int {
	n := 0
	for _, list := range r.byCategory {
		n += len(list)
	}
	return n
}

// RouteAmmoPickup adds the pickup to the reserve of the first weapon of its
// category. Returns false when nothing could take it.
func (r *WeaponRegistry) RouteAmmoPickup(p entity.AmmoPickup) bool {
	if p.Amount <= 0 || p.Category == entity.CategoryMelee {
		return false
	}
	w, ok := r.Find(p.Category)
	if !ok {
		return false
	}
	w.AddReserve(p.Amount)
	return true
}
