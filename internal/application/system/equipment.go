package system

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/config"
)

// EquipmentSystem owns the weapon slots and switches the active weapon.
// Exactly one weapon is active once anything has been equipped.
type EquipmentSystem struct {
	slots    [config.MaxSlots]*entity.Weapon
	active   int // slot index, -1 when nothing is in hand
	registry *WeaponRegistry
	logger   zerolog.Logger

	// Event callbacks
	OnEquip func(w *entity.Weapon)
}

// NewEquipmentSystem creates a new equipment system
func NewEquipmentSystem(registry *WeaponRegistry, logger zerolog.Logger) (*EquipmentSystem, error) {
	if registry == nil {
		return nil, missing("weapon registry")
	}
	return &EquipmentSystem{
		active:   -1,
		registry: registry,
		logger:   logger.With().Str("system", "equipment").Logger(),
	}, nil
}

// Assign puts a weapon into slot 1-4 and registers it for ammo routing
func (e *EquipmentSystem) Assign(slot int, w *entity.Weapon) error {
	if slot < 1 || slot > config.MaxSlots {
		return fmt.Errorf("slot %d out of range 1-%d", slot, config.MaxSlots)
	}
	if old := e.slots[slot-1]; old != nil {
		e.Remove(slot)
	}
	w.Slot = slot
	e.slots[slot-1] = w
	e.registry.Register(w)
	return nil
}

// Remove destroys the weapon in a slot
func (e *EquipmentSystem) Remove(slot int) {
	if slot < 1 || slot > config.MaxSlots {
		return
	}
	w := e.slots[slot-1]
	if w == nil {
		return
	}
	w.Deactivate()
	e.registry.Unregister(w)
	e.slots[slot-1] = nil
	if e.active == slot-1 {
		e.active = -1
	}
}

// Slot returns the weapon in slot 1-4, or nil
func (e *EquipmentSystem) Slot(slot int) *entity.Weapon {
	if slot < 1 || slot > config.MaxSlots {
		return nil
	}
	return e.slots[slot-1]
}

// Active returns the weapon in hand, or nil
func (e *EquipmentSystem) Active() *entity.Weapon {
	if e.active < 0 {
		return nil
	}
	return e.slots[e.active]
}

// ActiveSlot returns the slot number in hand, or 0
func (e *EquipmentSystem) ActiveSlot() int {
	return e.active + 1
}

// HandleInput equips the slot requested by the frame's input
func (e *EquipmentSystem) HandleInput(c *entity.Character, in InputSample) {
	if in.EquipSlot != 0 {
		e.Equip(c, in.EquipSlot)
	}
}

// Equip makes the weapon in slot active and puts every other weapon away.
// Equipping an empty slot does nothing, and neither does equipping the
// slot already in hand.
func (e *EquipmentSystem) Equip(c *entity.Character, slot int) bool {
	w := e.Slot(slot)
	if w == nil {
		return false
	}
	if w.Active && e.active == slot-1 {
		return true
	}

	for i, other := range e.slots {
		if other != nil && i != slot-1 && other.Active {
			other.Deactivate()
		}
	}
	w.Activate()
	e.active = slot - 1
	c.CanLean = w.UsesAmmo()

	e.logger.Debug().
		Int("slot", slot).
		Str("weapon", w.Name).
		Msg("weapon equipped")
	if e.OnEquip != nil {
		e.OnEquip(w)
	}
	return true
}

// Redraw puts the active weapon away and takes it out again, dropping
// its pending reload and burst
func (e *EquipmentSystem) Redraw(c *entity.Character) {
	w := e.Active()
	if w == nil {
		return
	}
	w.Deactivate()
	w.Activate()
	c.CanLean = w.UsesAmmo()
}

// ResetAmmo refills every weapon to its starting state
func (e *EquipmentSystem) ResetAmmo() {
	for _, w := range e.slots {
		if w != nil {
			w.ResetAmmo()
		}
	}
}
