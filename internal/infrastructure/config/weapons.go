package config

// WeaponsConfig is the root config for weapons.yaml
type WeaponsConfig struct {
	Weapons []WeaponConfig          `yaml:"weapons"`
	Pickups map[string]PickupConfig `yaml:"pickups"` // keyed by collider tag
}

// WeaponConfig describes one weapon slot
type WeaponConfig struct {
	ID                    string  `yaml:"id"`
	Name                  string  `yaml:"name"`
	Slot                  int     `yaml:"slot"`
	Category              string  `yaml:"category"`
	Damage                int     `yaml:"damage"`
	Spread                float64 `yaml:"spread"`
	Range                 float64 `yaml:"range"`
	HitMask               uint32  `yaml:"hitMask"` // 0 means every layer
	MagazineSize          int     `yaml:"magazineSize"`
	StartingReserve       int     `yaml:"startingReserve"`
	BulletsPerTap         int     `yaml:"bulletsPerTap"`
	AllowButtonHold       bool    `yaml:"allowButtonHold"`
	TimeBetweenShots      float64 `yaml:"timeBetweenShots"`
	TimeBetweenBurstShots float64 `yaml:"timeBetweenBurstShots"`
	ReloadTime            float64 `yaml:"reloadTime"`

	Sway      SwayConfig      `yaml:"sway"`
	Breathing BreathingConfig `yaml:"breathing"`
	Sight     SightConfig     `yaml:"sight"`
	Decals    DecalConfig     `yaml:"decals"`
}

type SwayConfig struct {
	Amount            float64 `yaml:"amount"`
	InvertX           bool    `yaml:"invertX"`
	InvertY           bool    `yaml:"invertY"`
	Smoothing         float64 `yaml:"smoothing"`
	ResetSmoothing    float64 `yaml:"resetSmoothing"`
	ClampX            float64 `yaml:"clampX"`
	ClampY            float64 `yaml:"clampY"`
	MovementX         float64 `yaml:"movementX"`
	MovementY         float64 `yaml:"movementY"`
	MovementInvertX   bool    `yaml:"movementInvertX"`
	MovementInvertY   bool    `yaml:"movementInvertY"`
	MovementSmoothing float64 `yaml:"movementSmoothing"`
}

type BreathingConfig struct {
	AmountA   float64 `yaml:"amountA"`
	AmountB   float64 `yaml:"amountB"`
	Scale     float64 `yaml:"scale"`
	LerpSpeed float64 `yaml:"lerpSpeed"`
}

type SightConfig struct {
	RestPosition  [3]float64 `yaml:"restPosition"`
	SightPosition [3]float64 `yaml:"sightPosition"`
	Offset        float64    `yaml:"offset"`
	AimingInTime  float64    `yaml:"aimingInTime"`
}

// DecalConfig lifetimes are seconds; zero or less keeps the decal
type DecalConfig struct {
	Environment float64 `yaml:"environment"`
	EnemyHit    float64 `yaml:"enemyHit"`
	EnemyKill   float64 `yaml:"enemyKill"`
	BlowUpHit   float64 `yaml:"blowUpHit"`
	BlowUpKill  float64 `yaml:"blowUpKill"`
	MuzzleFlash float64 `yaml:"muzzleFlash"`
}

// PickupConfig maps an ammo box tag to the rounds it grants
type PickupConfig struct {
	Category string `yaml:"category"`
	Amount   int    `yaml:"amount"`
}
