package entity

// AmmoPouch holds reserve rounds per weapon category. Weapons of the same
// category share one reserve.
type AmmoPouch struct {
	reserves map[WeaponCategory]int
}

// NewAmmoPouch creates an empty pouch
func NewAmmoPouch() *AmmoPouch {
	return &AmmoPouch{reserves: make(map[WeaponCategory]int)}
}

// Reserve returns the rounds held for a category
func (p *AmmoPouch) Reserve(cat WeaponCategory) int {
	return p.reserves[cat]
}

// Add grows a reserve. Non-positive amounts are ignored.
func (p *AmmoPouch) Add(cat WeaponCategory, amount int) int {
	if amount > 0 {
		p.reserves[cat] += amount
	}
	return p.reserves[cat]
}

// Take removes up to amount rounds and returns how many were taken
func (p *AmmoPouch) Take(cat WeaponCategory, amount int) int {
	if amount <= 0 {
		return 0
	}
	taken := min(amount, p.reserves[cat])
	p.reserves[cat] -= taken
	return taken
}

// Set overwrites a reserve, clamped at zero
func (p *AmmoPouch) Set(cat WeaponCategory, amount int) {
	p.reserves[cat] = max(0, amount)
}

// AmmoPickup is a request to add rounds to a category's reserve
type AmmoPickup struct {
	Category WeaponCategory
	Amount   int
}
