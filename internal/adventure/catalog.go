// Package adventure implements the RPG adventure engine: a static
// catalog of locations and events, strict linear progression gating,
// and probabilistic resolution of A/B/C choices.
package adventure

import (
	"errors"
	"fmt"
)

// Choice is one selectable option on an event.
type Choice struct {
	Key     string
	Text    string
	Button  string
	Costs   []ResourceAmount
	Rewards []ResourceAmount
	// SuccessRate is the probability of not failing. Among successes,
	// 70% of the mass is a perfect pass and 30% a fair pass.
	SuccessRate float64
}

// ResourceAmount pairs a resource name with an amount.
type ResourceAmount struct {
	Resource string
	Amount   int
}

// RangeReward grants a uniform integer amount in [Min, Max].
type RangeReward struct {
	Resource string
	Min      int
	Max      int
}

// WeightedReward is one bucket in a location's rare-reward table.
// Buckets are walked in declaration order against a single uniform
// draw; the residual probability grants nothing.
type WeightedReward struct {
	Resource string
	Chance   float64
}

// Event is one catalog event with its choices.
type Event struct {
	Key         string
	Title       string
	Image       string
	Description string
	Choices     []Choice
}

// Location is one catalog location. Locations unlock in Catalog.Order:
// a location is enterable only when the previous one is fully cleared.
type Location struct {
	Key            string
	Name           string
	MinLevel       int
	Events         []string
	BaseRewards    []RangeReward
	SpecialRewards []WeightedReward
	HealthCost     [2]int
	ArmorCost      [2]int
}

// Catalog holds the full static adventure data set.
type Catalog struct {
	Order     []string
	Locations map[string]Location
	Events    map[string]Event
}

// Location returns a catalog location by key.
func (c *Catalog) Location(key string) (Location, bool) {
	loc, ok := c.Locations[key]
	return loc, ok
}

// Event returns a catalog event by key.
func (c *Catalog) Event(key string) (Event, bool) {
	ev, ok := c.Events[key]
	return ev, ok
}

// Previous returns the location preceding key in the unlock order, or
// false for the first location.
func (c *Catalog) Previous(key string) (Location, bool) {
	for i, k := range c.Order {
		if k == key && i > 0 {
			return c.Locations[c.Order[i-1]], true
		}
	}
	return Location{}, false
}

// Validate checks catalog integrity once at startup so lookups never
// have to re-check it.
func (c *Catalog) Validate() error {
	if len(c.Order) == 0 {
		return errors.New("catalog has no locations")
	}
	for _, key := range c.Order {
		loc, ok := c.Locations[key]
		if !ok {
			return fmt.Errorf("location %q in order but not defined", key)
		}
		if len(loc.Events) == 0 {
			return fmt.Errorf("location %q has no events", key)
		}
		if loc.HealthCost[0] > loc.HealthCost[1] || loc.ArmorCost[0] > loc.ArmorCost[1] {
			return fmt.Errorf("location %q has inverted cost ranges", key)
		}
		var sum float64
		for _, special := range loc.SpecialRewards {
			if special.Chance < 0 {
				return fmt.Errorf("location %q special reward %q has negative chance", key, special.Resource)
			}
			sum += special.Chance
		}
		if sum > 1 {
			return fmt.Errorf("location %q special reward chances sum to %.2f", key, sum)
		}
		for _, base := range loc.BaseRewards {
			if base.Min > base.Max {
				return fmt.Errorf("location %q base reward %q has inverted range", key, base.Resource)
			}
		}
		for _, eventKey := range loc.Events {
			ev, ok := c.Events[eventKey]
			if !ok {
				return fmt.Errorf("location %q references unknown event %q", key, eventKey)
			}
			if len(ev.Choices) == 0 {
				return fmt.Errorf("event %q has no choices", eventKey)
			}
			seen := make(map[string]bool)
			for _, choice := range ev.Choices {
				if choice.SuccessRate <= 0 || choice.SuccessRate > 1 {
					return fmt.Errorf("event %q choice %q has success rate %.2f", eventKey, choice.Key, choice.SuccessRate)
				}
				if seen[choice.Key] {
					return fmt.Errorf("event %q has duplicate choice key %q", eventKey, choice.Key)
				}
				seen[choice.Key] = true
			}
		}
	}
	return nil
}
