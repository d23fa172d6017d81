package adventure

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/questline/internal/rpg"
	"github.com/louisbranch/questline/internal/storage"
	"github.com/louisbranch/questline/internal/transport"
)

// minAdventureHealth gates starting a new adventure from the overview
// flow; resolving an already-offered choice is never health-gated.
const minAdventureHealth = 50

// Handler drives the adventure conversation: location overviews, event
// presentation, and choice replies (button or typed letter).
type Handler struct {
	engine  *Engine
	store   storage.UserStore
	pending *PendingChoices
	sender  transport.Sender
}

// NewHandler wires the adventure conversation handler.
func NewHandler(engine *Engine, store storage.UserStore, pending *PendingChoices, sender transport.Sender) *Handler {
	return &Handler{engine: engine, store: store, pending: pending, sender: sender}
}

// HandleCommand processes the adventure verb: no args lists unlocked
// locations, one arg shows a location's detail, two args presents the
// named event.
func (h *Handler) HandleCommand(ctx context.Context, userID string, args []string) error {
	rec, err := h.store.FindRPG(ctx, userID)
	if err != nil {
		return fmt.Errorf("adventure command: %w", err)
	}

	if len(args) >= 2 {
		locationKey := strings.ToLower(args[0])
		eventKey := strings.ToLower(args[1])
		location, ok := h.engine.Catalog().Location(locationKey)
		if ok {
			if _, ok := h.engine.Catalog().Event(eventKey); ok && contains(location.Events, eventKey) {
				return h.presentEvent(ctx, userID, rec, location, eventKey)
			}
		}
	}

	if rec.Health < minAdventureHealth {
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("❌ You need at least %d health to adventure! Use heal command to restore health.", minAdventureHealth))
	}

	if len(args) == 0 {
		return h.sendLocationList(ctx, userID, rec)
	}

	locationKey := strings.ToLower(args[0])
	location, ok := h.engine.Catalog().Location(locationKey)
	if !ok {
		return h.sender.SendText(ctx, userID, `❌ Unknown location! Type ".adventure" to see available locations.`)
	}
	if rec.Level < location.MinLevel {
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("⚠️ You need level %d to adventure in %s!", location.MinLevel, location.Name))
	}
	if !h.engine.CanEnter(rec, locationKey) {
		prev, _ := h.engine.Catalog().Previous(locationKey)
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("❌ You must complete all events in %s before accessing %s!", prev.Name, location.Name))
	}

	index := h.engine.CurrentEventIndex(rec, locationKey)
	if index >= len(location.Events) {
		return h.sender.SendText(ctx, userID, completedLocationMessage(location, rec.Deficit(locationKey), index, rec.TotalAdventures))
	}
	return h.sender.SendText(ctx, userID, locationDetailMessage(location, locationKey, index, rec.Deficit(locationKey)))
}

// HandleButtonReply resolves a structured button press against the
// user's pending choice. It reports false when the press is not an
// adventure selection so the router can try other interpretations.
func (h *Handler) HandleButtonReply(ctx context.Context, userID, buttonID string) (bool, error) {
	pc, ok := h.pending.Get(userID)
	if !ok {
		return false, nil
	}

	event, ok := h.engine.Catalog().Event(pc.EventKey)
	if !ok {
		return true, fmt.Errorf("button reply: unknown pending event %q", pc.EventKey)
	}
	for _, choice := range event.Choices {
		if buttonID == fmt.Sprintf("%s_%s_%s", pc.LocationKey, pc.EventKey, choice.Key) {
			// Consume only on a match; an invalid press leaves the
			// offer standing.
			h.pending.Take(userID)
			return true, h.resolve(ctx, userID, pc, choice)
		}
	}
	return true, h.sender.SendText(ctx, userID, "❌ Invalid choice selection!")
}

// HandleTextChoice resolves a typed A/B/C reply against the user's
// pending choice. It reports false when the message is not a choice
// letter or no choice is on the table, leaving the router to treat the
// text as a command.
func (h *Handler) HandleTextChoice(ctx context.Context, userID, body string) (bool, error) {
	letter := strings.ToUpper(strings.TrimSpace(body))
	if letter != "A" && letter != "B" && letter != "C" {
		return false, nil
	}
	pc, ok := h.pending.Get(userID)
	if !ok {
		return false, nil
	}

	event, ok := h.engine.Catalog().Event(pc.EventKey)
	if !ok {
		return true, fmt.Errorf("text choice: unknown pending event %q", pc.EventKey)
	}
	for _, choice := range event.Choices {
		if choice.Key == letter {
			// Consume only on a match; a stray letter leaves the offer
			// on the table.
			h.pending.Take(userID)
			return true, h.resolve(ctx, userID, pc, choice)
		}
	}
	return false, nil
}

func (h *Handler) presentEvent(ctx context.Context, userID string, rec rpg.Record, location Location, eventKey string) error {
	if rec.Level < location.MinLevel {
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("⚠️ You need level %d for %s!\nYour current level: %d", location.MinLevel, location.Name, rec.Level))
	}
	if !h.engine.CanEnter(rec, location.Key) {
		prev, _ := h.engine.Catalog().Previous(location.Key)
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("❌ You must complete all events in %s before accessing %s!", prev.Name, location.Name))
	}
	index := h.engine.CurrentEventIndex(rec, location.Key)
	deficit := rec.Deficit(location.Key)
	if index >= len(location.Events) {
		return h.sender.SendText(ctx, userID, completedLocationMessage(location, deficit, index, rec.TotalAdventures))
	}
	if current := location.Events[index]; current != eventKey {
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("⚠️ You must complete events in order!\nNext event: adventure %s %s", location.Key, current))
	}

	event, ok := h.engine.Catalog().Event(eventKey)
	if !ok {
		return fmt.Errorf("present event: unknown event %q", eventKey)
	}

	replaced := h.pending.Put(userID, PendingChoice{LocationKey: location.Key, EventKey: eventKey})

	var b strings.Builder
	if replaced {
		b.WriteString("🔄 Your previous unanswered choice was discarded.\n\n")
	}
	fmt.Fprintf(&b, "🎭 *%s* (Event %d/%d)\n", event.Title, index+1, len(location.Events))
	if deficit > 0 {
		fmt.Fprintf(&b, "⚠️ *Current Deficit: %d points* (from fair passes)\n", deficit)
	}
	fmt.Fprintf(&b, "\n%s\n\n*Choose your action:*\n", event.Description)
	for _, choice := range event.Choices {
		fmt.Fprintf(&b, "%s. %s\n", choice.Key, choice.Text)
	}
	b.WriteString("\n*Reply with the letter of your choice (A, B, or C)*")

	return h.sender.SendMedia(ctx, userID, event.Image, b.String())
}

func (h *Handler) resolve(ctx context.Context, userID string, pc PendingChoice, choice Choice) error {
	res, err := h.engine.Resolve(ctx, userID, pc.LocationKey, pc.EventKey, choice)
	if err != nil {
		return err
	}
	if len(res.Shortfalls) > 0 {
		var b strings.Builder
		b.WriteString("❌ *Insufficient Resources!*\n")
		for _, shortfall := range res.Shortfalls {
			fmt.Fprintf(&b, "\n⮕ %s", shortfall)
		}
		return h.sender.SendText(ctx, userID, b.String())
	}
	return h.sender.SendText(ctx, userID, formatResolution(res))
}

func (h *Handler) sendLocationList(ctx context.Context, userID string, rec rpg.Record) error {
	var b strings.Builder
	b.WriteString("🗺️ *Choose your adventure location:*\n")
	for _, key := range h.engine.Catalog().Order {
		location := h.engine.Catalog().Locations[key]
		if rec.Level < location.MinLevel || !h.engine.CanEnter(rec, key) {
			continue
		}
		progress := h.engine.CurrentEventIndex(rec, key)
		status := fmt.Sprintf("📍 %d/%d", progress, len(location.Events))
		if progress >= len(location.Events) {
			status = "✅ Completed"
		}
		fmt.Fprintf(&b, "%s - %s (Level %d+) %s\n", key, location.Name, location.MinLevel, status)
	}
	b.WriteString("\nUsage: .adventure <location>")
	return h.sender.SendText(ctx, userID, b.String())
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func formatResolution(res *Resolution) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗺️ *Adventure in %s*\n", res.Location.Name)
	fmt.Fprintf(&b, "🎭 *%s*\n", res.Event.Title)
	fmt.Fprintf(&b, "*You chose: %s*\n\n", res.Choice.Text)

	switch res.Outcome {
	case OutcomePass:
		b.WriteString("✅ *Perfect Pass!*\n\n")
	case OutcomeFair:
		b.WriteString("⚡ *Fair Pass!*\n\n")
	default:
		b.WriteString("❌ *Failed!*\n\n")
	}

	b.WriteString("*Rewards Gained:*\n")
	if len(res.Rewards) == 0 {
		b.WriteString("⮕ None\n")
	}
	for _, reward := range res.Rewards {
		fmt.Fprintf(&b, "⮕ %s: +%d\n", reward.Resource, reward.Amount)
	}

	b.WriteString("\n*Costs:*\n")
	fmt.Fprintf(&b, "⮕ Health: -%d\n", res.HealthUpkeep)
	fmt.Fprintf(&b, "⮕ Armor Durability: -%d", res.ArmorUpkeep)
	for _, cost := range res.Choice.Costs {
		if cost.Resource == "health" || cost.Resource == "armordurability" {
			continue
		}
		fmt.Fprintf(&b, "\n⮕ %s: -%d", cost.Resource, cost.Amount)
	}

	if res.Completed {
		fmt.Fprintf(&b, "\n🎉 *%s Completed!* You can now access the next location!", res.Location.Name)
		if res.CompletionPenalty > 0 {
			fmt.Fprintf(&b, "\n💰 *Deficit Penalty:* -%d money for fair passes", res.CompletionPenalty)
		}
	} else if res.Progressed {
		fmt.Fprintf(&b, "\n*Next Event:*\nadventure %s %s", res.Location.Key, res.NextEventKey)
	} else {
		fmt.Fprintf(&b, "\n🔄 *Try Again:* adventure %s %s", res.Location.Key, res.Event.Key)
	}

	if res.Deficit > 0 {
		fmt.Fprintf(&b, "\n⚠️ *Current Deficit:* %d points (from fair passes)", res.Deficit)
	}
	fmt.Fprintf(&b, "\n*Progress:* %d/%d events completed\n", res.ProgressCount, res.EventTotal)
	fmt.Fprintf(&b, "\n*Total Adventures: %d*", res.TotalAdventures)
	return b.String()
}

func completedLocationMessage(location Location, deficit, progress, totalAdventures int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 *%s Completed!*\n\n", location.Name)
	fmt.Fprintf(&b, "*Progress:* %d/%d events completed", progress, len(location.Events))
	if deficit > 0 {
		fmt.Fprintf(&b, "\n⚠️ *Current Deficit:* %d points (from fair passes)", deficit)
	}
	fmt.Fprintf(&b, "\n\n*Total Adventures: %d*\n\n", totalAdventures)
	b.WriteString(`You can now access the next location! Type ".adventure" to see available locations.`)
	return b.String()
}

func locationDetailMessage(location Location, locationKey string, index, deficit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗺️ *%s* (Level %d+)\n\n", location.Name, location.MinLevel)
	fmt.Fprintf(&b, "*Your Progress:* %d/%d events completed", index, len(location.Events))
	if deficit > 0 {
		fmt.Fprintf(&b, "\n⚠️ *Current Deficit:* %d points (from fair passes)", deficit)
	}
	fmt.Fprintf(&b, "\n\n*Next Event:* %s\n", location.Events[index])
	fmt.Fprintf(&b, "Command: adventure %s %s\n\n*All Events:*\n", locationKey, location.Events[index])
	for i, eventKey := range location.Events {
		status := "⏳"
		if i < index {
			status = "✅"
		} else if i == index {
			status = "🔄"
		}
		fmt.Fprintf(&b, "%s %d. %s\n", status, i+1, eventKey)
	}
	b.WriteString("\n*Base Rewards:*\n")
	for _, base := range location.BaseRewards {
		fmt.Fprintf(&b, "⮕ %s: %d-%d\n", base.Resource, base.Min, base.Max)
	}
	fmt.Fprintf(&b, "*Health Cost:* %d-%d\n", location.HealthCost[0], location.HealthCost[1])
	fmt.Fprintf(&b, "*Armor Cost:* %d-%d", location.ArmorCost[0], location.ArmorCost[1])
	return b.String()
}
