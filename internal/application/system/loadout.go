package system

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/younwookim/fpscore/internal/domain/entity"
	"github.com/younwookim/fpscore/internal/infrastructure/config"
)

// Loadout is the set of weapons built from weapons.yaml
type Loadout struct {
	Weapons []*entity.Weapon
	Pouch   *entity.AmmoPouch
	Pickups PickupTable
}

// NewLoadout builds every configured weapon around one shared ammo pouch
func NewLoadout(cfg *config.WeaponsConfig) (*Loadout, error) {
	pouch := entity.NewAmmoPouch()
	l := &Loadout{
		Pouch:   pouch,
		Pickups: make(PickupTable, len(cfg.Pickups)),
	}

	for i, wc := range cfg.Weapons {
		stats, err := WeaponStatsFromConfig(wc)
		if err != nil {
			return nil, err
		}
		w := entity.NewWeapon(entity.EntityID(i+1), wc.Name, wc.Slot, stats, pouch)
		if _, seen := l.find(stats.Category); !seen && w.UsesAmmo() {
			pouch.Set(stats.Category, stats.StartingReserve)
		}
		l.Weapons = append(l.Weapons, w)
	}

	for tag, pc := range cfg.Pickups {
		cat, err := entity.ParseWeaponCategory(pc.Category)
		if err != nil {
			return nil, fmt.Errorf("pickup %s: %w", tag, err)
		}
		l.Pickups[tag] = entity.AmmoPickup{Category: cat, Amount: pc.Amount}
	}

	return l, nil
}

func (l *Loadout) find(cat entity.WeaponCategory) (*entity.Weapon, bool) {
	for _, w := range l.Weapons {
		if w.Category() == cat {
			return w, true
		}
	}
	return nil, false
}

// Equip assigns every weapon to its slot and equips the lowest slot
func (l *Loadout) Equip(e *EquipmentSystem, c *entity.Character) error {
	first := 0
	for _, w := range l.Weapons {
		if err := e.Assign(w.Slot, w); err != nil {
			return fmt.Errorf("weapon %s: %w", w.Name, err)
		}
		if first == 0 || w.Slot < first {
			first = w.Slot
		}
	}
	if first != 0 {
		e.Equip(c, first)
	}
	return nil
}

// WeaponStatsFromConfig converts one weapons.yaml entry
func WeaponStatsFromConfig(wc config.WeaponConfig) (entity.WeaponStats, error) {
	cat, err := entity.ParseWeaponCategory(strings.TrimSpace(wc.Category))
	if err != nil {
		return entity.WeaponStats{}, fmt.Errorf("weapon %s: %w", wc.ID, err)
	}

	mask := entity.LayerMask(wc.HitMask)
	if mask == 0 {
		mask = entity.AllLayers
	}

	return entity.WeaponStats{
		Category:              cat,
		Damage:                max(0, wc.Damage),
		Spread:                wc.Spread,
		Range:                 wc.Range,
		HitMask:               mask,
		MagazineCapacity:      wc.MagazineSize,
		StartingReserve:       max(0, wc.StartingReserve),
		BulletsPerTap:         max(1, wc.BulletsPerTap),
		AllowButtonHold:       wc.AllowButtonHold,
		TimeBetweenShots:      wc.TimeBetweenShots,
		TimeBetweenBurstShots: wc.TimeBetweenBurstShots,
		ReloadTime:            wc.ReloadTime,
		Decals: entity.DecalLifetimes{
			Environment: wc.Decals.Environment,
			EnemyHit:    wc.Decals.EnemyHit,
			EnemyKill:   wc.Decals.EnemyKill,
			BlowUpHit:   wc.Decals.BlowUpHit,
			BlowUpKill:  wc.Decals.BlowUpKill,
			MuzzleFlash: wc.Decals.MuzzleFlash,
		},
		Sway: entity.SwaySettings{
			Amount:            wc.Sway.Amount,
			InvertX:           wc.Sway.InvertX,
			InvertY:           wc.Sway.InvertY,
			Smoothing:         wc.Sway.Smoothing,
			ResetSmoothing:    wc.Sway.ResetSmoothing,
			ClampX:            wc.Sway.ClampX,
			ClampY:            wc.Sway.ClampY,
			MovementX:         wc.Sway.MovementX,
			MovementY:         wc.Sway.MovementY,
			MovementInvertX:   wc.Sway.MovementInvertX,
			MovementInvertY:   wc.Sway.MovementInvertY,
			MovementSmoothing: wc.Sway.MovementSmoothing,
			BreathAmountA:     wc.Breathing.AmountA,
			BreathAmountB:     wc.Breathing.AmountB,
			BreathScale:       wc.Breathing.Scale,
			BreathLerp:        wc.Breathing.LerpSpeed,
		},
		Sight: entity.SightSettings{
			RestPosition:  mgl64.Vec3(wc.Sight.RestPosition),
			SightPosition: mgl64.Vec3(wc.Sight.SightPosition),
			Offset:        wc.Sight.Offset,
			AimingInTime:  wc.Sight.AimingInTime,
		},
	}, nil
}
