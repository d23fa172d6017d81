// Package rpg holds the durable per-player record and the resource
// accounting rules shared by the adventure engine and the economy
// handlers.
package rpg

import "time"

// MaxHealth caps the health stat.
const MaxHealth = 100

// MaxEnergy caps the energy stat.
const MaxEnergy = 100

// Record is the durable RPG state for one player.
//
// Named stats and equipment live in struct fields; open-ended resources
// (materials, crates, pets, flavor stats granted by adventure events)
// live in Items. Resource names used by catalogs and handlers resolve
// through Amount/Add/Debit so both kinds behave uniformly.
type Record struct {
	Health     int `json:"health"`
	Energy     int `json:"energy"`
	Money      int `json:"money"`
	Level      int `json:"level"`
	Experience int `json:"experience"`

	Sword      int  `json:"sword"`
	Armor      int  `json:"armor"`
	Pickaxe    int  `json:"pickaxe"`
	FishingRod bool `json:"fishingrod"`

	SwordDurability      int `json:"sworddurability"`
	ArmorDurability      int `json:"armordurability"`
	PickaxeDurability    int `json:"pickaxedurability"`
	FishingRodDurability int `json:"fishingroddurability"`

	Items map[string]int `json:"items"`

	EventProgress   map[string]int `json:"event_progress"`
	EventDeficit    map[string]int `json:"event_deficit"`
	TotalAdventures int            `json:"total_adventures"`

	LastFishing time.Time `json:"last_fishing"`
}

// NewRecord returns a record with starting stats.
func NewRecord() Record {
	return Record{
		Health:        MaxHealth,
		Energy:        MaxEnergy,
		Level:         1,
		Items:         make(map[string]int),
		EventProgress: make(map[string]int),
		EventDeficit:  make(map[string]int),
	}
}

// Normalize repairs zero-value maps and out-of-range stats on records
// loaded from storage.
func (r *Record) Normalize() {
	if r.Items == nil {
		r.Items = make(map[string]int)
	}
	if r.EventProgress == nil {
		r.EventProgress = make(map[string]int)
	}
	if r.EventDeficit == nil {
		r.EventDeficit = make(map[string]int)
	}
	if r.Level < 1 {
		r.Level = 1
	}
	if r.Health < 0 {
		r.Health = 0
	}
	if r.Health > MaxHealth {
		r.Health = MaxHealth
	}
}

// Amount returns the current balance for a resource name.
func (r *Record) Amount(resource string) int {
	switch resource {
	case "health":
		return r.Health
	case "energy":
		return r.Energy
	case "money":
		return r.Money
	case "exp", "experience":
		return r.Experience
	case "level":
		return r.Level
	case "sworddurability":
		return r.SwordDurability
	case "armordurability":
		return r.ArmorDurability
	case "pickaxedurability":
		return r.PickaxeDurability
	case "fishingroddurability":
		return r.FishingRodDurability
	default:
		return r.Items[resource]
	}
}

// Add credits a resource. Health clamps to MaxHealth; experience
// rewards route to the experience accumulator; no balance goes
// negative.
func (r *Record) Add(resource string, amount int) {
	r.set(resource, r.Amount(resource)+amount)
}

// Debit subtracts from a resource, flooring the balance at zero.
func (r *Record) Debit(resource string, amount int) {
	r.set(resource, r.Amount(resource)-amount)
}

func (r *Record) set(resource string, value int) {
	if value < 0 {
		value = 0
	}
	switch resource {
	case "health":
		if value > MaxHealth {
			value = MaxHealth
		}
		r.Health = value
	case "energy":
		r.Energy = value
	case "money":
		r.Money = value
	case "exp", "experience":
		r.Experience = value
	case "level":
		r.Level = value
	case "sworddurability":
		r.SwordDurability = value
	case "armordurability":
		r.ArmorDurability = value
	case "pickaxedurability":
		r.PickaxeDurability = value
	case "fishingroddurability":
		r.FishingRodDurability = value
	default:
		if r.Items == nil {
			r.Items = make(map[string]int)
		}
		r.Items[resource] = value
	}
}

// Progress returns the event index reached in a location.
func (r *Record) Progress(locationKey string) int {
	return r.EventProgress[locationKey]
}

// Deficit returns the accumulated fair-pass deficit for a location.
func (r *Record) Deficit(locationKey string) int {
	return r.EventDeficit[locationKey]
}
