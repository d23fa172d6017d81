package adventure

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/louisbranch/questline/internal/random"
	"github.com/louisbranch/questline/internal/rpg"
	"github.com/louisbranch/questline/internal/storage"
)

// Outcome is the result tier of a resolved choice.
type Outcome int

const (
	// OutcomeFail blocks progression but still charges costs.
	OutcomeFail Outcome = iota
	// OutcomeFair progresses with reduced rewards and a deficit mark.
	OutcomeFair
	// OutcomePass progresses with full rewards.
	OutcomePass
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeFair:
		return "fair"
	default:
		return "fail"
	}
}

// deficitPerFair is added to a location's deficit on each fair pass;
// on completion the deficit converts to money at penaltyPerDeficit.
const (
	deficitPerFair    = 2
	penaltyPerDeficit = 5
)

// Resolution reports everything a resolved choice did to the record.
type Resolution struct {
	Location Location
	Event    Event
	Choice   Choice
	Outcome  Outcome

	// Shortfalls is non-empty when the choice was unaffordable; the
	// record was not touched and no other field is meaningful.
	Shortfalls []string

	// Rewards are the amounts actually credited, in grant order.
	Rewards      []ResourceAmount
	HealthUpkeep int
	ArmorUpkeep  int

	Progressed        bool
	Completed         bool
	CompletionPenalty int
	Deficit           int
	NextEventKey      string
	ProgressCount     int
	EventTotal        int
	TotalAdventures   int
}

// Engine resolves adventure choices against the catalog and the user
// store. The random draws and their consumption order are fixed so
// resolution is reproducible under an injected roll source.
type Engine struct {
	catalog *Catalog
	store   storage.UserStore

	roll    func() float64
	randInt func(min, max int) int
}

// NewEngine creates an Engine with a seeded random source.
func NewEngine(catalog *Catalog, store storage.UserStore) *Engine {
	var mu sync.Mutex
	src, err := random.NewSource()
	if err != nil {
		// Entropy read failed; a clock seed keeps rolls serviceable.
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		catalog: catalog,
		store:   store,
		roll: func() float64 {
			mu.Lock()
			defer mu.Unlock()
			return src.Float64()
		},
		randInt: func(min, max int) int {
			mu.Lock()
			defer mu.Unlock()
			return src.Intn(max-min+1) + min
		},
	}
}

// Catalog exposes the engine's data set.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// CanEnter reports whether a location is unlocked: the first location
// always is, later ones only once the previous location's every event
// has been cleared. Level alone never unlocks a location.
func (e *Engine) CanEnter(rec rpg.Record, locationKey string) bool {
	prev, ok := e.catalog.Previous(locationKey)
	if !ok {
		return true
	}
	return rec.Progress(prev.Key) >= len(prev.Events)
}

// CurrentEventIndex returns the player's frontier event index in a
// location.
func (e *Engine) CurrentEventIndex(rec rpg.Record, locationKey string) int {
	return rec.Progress(locationKey)
}

// outcomeFor buckets a uniform draw into pass/fair/fail. The pass cut
// is quantized to milli-units so that rate 0.8 gives exactly
// pass < 0.56, fair [0.56, 0.8), fail >= 0.8.
func outcomeFor(rate, u float64) Outcome {
	passCut := math.Round(rate*700) / 1000
	switch {
	case u < passCut:
		return OutcomePass
	case u < rate:
		return OutcomeFair
	default:
		return OutcomeFail
	}
}

// Resolve applies a selected choice to the user's record and persists
// the result in a single write. Costs and location upkeep apply on
// every outcome, including failure; only reward magnitude and
// progression are gated by the roll.
func (e *Engine) Resolve(ctx context.Context, userID, locationKey, eventKey string, choice Choice) (*Resolution, error) {
	location, ok := e.catalog.Location(locationKey)
	if !ok {
		return nil, fmt.Errorf("resolve adventure: unknown location %q", locationKey)
	}
	event, ok := e.catalog.Event(eventKey)
	if !ok {
		return nil, fmt.Errorf("resolve adventure: unknown event %q", eventKey)
	}

	rec, err := e.store.FindRPG(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve adventure: %w", err)
	}

	res := &Resolution{
		Location:   location,
		Event:      event,
		Choice:     choice,
		EventTotal: len(location.Events),
	}

	// Affordability check. Collect every shortfall before aborting so
	// the player sees all of them at once, and touch nothing on abort.
	for _, cost := range choice.Costs {
		if have := rec.Amount(cost.Resource); have < cost.Amount {
			res.Shortfalls = append(res.Shortfalls,
				fmt.Sprintf("%s: need %d, have %d", cost.Resource, cost.Amount, have))
		}
	}
	if len(res.Shortfalls) > 0 {
		return res, nil
	}

	res.Outcome = outcomeFor(choice.SuccessRate, e.roll())

	for _, cost := range choice.Costs {
		rec.Debit(cost.Resource, cost.Amount)
	}

	var choiceMultiplier, baseMultiplier float64
	switch res.Outcome {
	case OutcomePass:
		choiceMultiplier, baseMultiplier = 1.0, 1.0
	case OutcomeFair:
		choiceMultiplier, baseMultiplier = 0.7, 0.7
	default:
		choiceMultiplier, baseMultiplier = 0.2, 0.3
	}

	for _, reward := range choice.Rewards {
		amount := int(math.Floor(float64(reward.Amount) * choiceMultiplier))
		if amount > 0 {
			rec.Add(reward.Resource, amount)
			res.addReward(reward.Resource, amount)
		}
	}

	for _, base := range location.BaseRewards {
		drawn := e.randInt(base.Min, base.Max)
		amount := int(math.Floor(float64(drawn) * baseMultiplier))
		if amount > 0 {
			rec.Add(base.Resource, amount)
			res.addReward(base.Resource, amount)
		}
	}

	// Rare reward: a single uniform draw walked through the cumulative
	// buckets in declaration order, with the residual granting nothing.
	// Failed attempts never roll for it.
	if res.Outcome != OutcomeFail && len(location.SpecialRewards) > 0 {
		u := e.roll()
		cumulative := 0.0
		for _, special := range location.SpecialRewards {
			cumulative += special.Chance
			if u < cumulative {
				rec.Add(special.Resource, 1)
				res.addReward(special.Resource, 1)
				break
			}
		}
	}

	// Location upkeep is unconditional.
	res.HealthUpkeep = e.randInt(location.HealthCost[0], location.HealthCost[1])
	res.ArmorUpkeep = e.randInt(location.ArmorCost[0], location.ArmorCost[1])
	rec.Debit("health", res.HealthUpkeep)
	rec.Debit("armordurability", res.ArmorUpkeep)

	if res.Outcome != OutcomeFail {
		res.Progressed = true
		rec.EventProgress[locationKey] = rec.Progress(locationKey) + 1
		if res.Outcome == OutcomeFair {
			rec.EventDeficit[locationKey] = rec.Deficit(locationKey) + deficitPerFair
		}
		if rec.Progress(locationKey) >= len(location.Events) {
			res.Completed = true
			if deficit := rec.Deficit(locationKey); deficit > 0 {
				res.CompletionPenalty = deficit * penaltyPerDeficit
				rec.Debit("money", res.CompletionPenalty)
				rec.EventDeficit[locationKey] = 0
			}
		} else {
			res.NextEventKey = location.Events[rec.Progress(locationKey)]
		}
	} else {
		res.NextEventKey = eventKey
	}

	rec.TotalAdventures++
	res.Deficit = rec.Deficit(locationKey)
	res.ProgressCount = rec.Progress(locationKey)
	res.TotalAdventures = rec.TotalAdventures

	if err := e.store.SaveRPG(ctx, userID, rec); err != nil {
		return nil, fmt.Errorf("resolve adventure: %w", err)
	}
	return res, nil
}

func (r *Resolution) addReward(resource string, amount int) {
	for i := range r.Rewards {
		if r.Rewards[i].Resource == resource {
			r.Rewards[i].Amount += amount
			return
		}
	}
	r.Rewards = append(r.Rewards, ResourceAmount{Resource: resource, Amount: amount})
}
