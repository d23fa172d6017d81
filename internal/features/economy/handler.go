// Package economy implements the RPG economy commands: profile and
// inventory views, blacksmith crafting, the shop, crate opening,
// healing, fishing, and pet adoption.
package economy

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/questline/internal/adventure"
	"github.com/louisbranch/questline/internal/random"
	"github.com/louisbranch/questline/internal/rpg"
	"github.com/louisbranch/questline/internal/storage"
	"github.com/louisbranch/questline/internal/transport"
)

const (
	healPerPotion   = 40
	fishingCooldown = 5 * time.Minute
	// fishing wears the rod by this much per cast; a rod below it is
	// broken.
	fishingWear = 5
)

// Handler serves the economy commands for one chat transport.
type Handler struct {
	store   storage.UserStore
	sender  transport.Sender
	catalog *adventure.Catalog
	printer *message.Printer

	clock   func() time.Time
	randInt func(min, max int) int
}

// NewHandler wires the economy command handler.
func NewHandler(store storage.UserStore, sender transport.Sender, catalog *adventure.Catalog) *Handler {
	var mu sync.Mutex
	src, err := random.NewSource()
	if err != nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Handler{
		store:   store,
		sender:  sender,
		catalog: catalog,
		printer: message.NewPrinter(language.English),
		clock:   time.Now,
		randInt: func(min, max int) int {
			mu.Lock()
			defer mu.Unlock()
			return src.Intn(max-min+1) + min
		},
	}
}

// Menu sends the game command overview.
func (h *Handler) Menu(ctx context.Context, userID string) error {
	return h.sender.SendText(ctx, userID, gameMenu)
}

// Profile renders the player's stats, equipment, and location progress.
func (h *Handler) Profile(ctx context.Context, userID string) error {
	rec, err := h.store.FindRPG(ctx, userID)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	var b strings.Builder
	b.WriteString("👤 *PLAYER PROFILE*\n\n")
	b.WriteString("🏷️ *Basic Stats:*\n")
	fmt.Fprintf(&b, "• Level: %d\n", rec.Level)
	fmt.Fprintf(&b, "• Experience: %d\n", rec.Experience)
	fmt.Fprintf(&b, "• Health: %d/%d ❤️\n", rec.Health, rpg.MaxHealth)
	fmt.Fprintf(&b, "• Energy: %d/%d ⚡\n", rec.Energy, rpg.MaxEnergy)
	b.WriteString(h.printer.Sprintf("• Money: %d 💰\n", rec.Money))

	b.WriteString("\n⚔️ *Equipment:*\n")
	fmt.Fprintf(&b, "• Sword: %s\n", tierDisplay("Sword", rec.Sword))
	fmt.Fprintf(&b, "• Armor: %s\n", tierDisplay("Armor", rec.Armor))
	fmt.Fprintf(&b, "• Pickaxe: %s\n", tierDisplay("Pickaxe", rec.Pickaxe))
	if rec.FishingRod {
		b.WriteString("• Fishing Rod: 🎣 Active\n")
	} else {
		b.WriteString("• Fishing Rod: ❌ None\n")
	}

	b.WriteString("\n📊 *Adventure Progress:*\n")
	fmt.Fprintf(&b, "• Total Adventures: %d\n", rec.TotalAdventures)
	for _, key := range h.catalog.Order {
		location := h.catalog.Locations[key]
		fmt.Fprintf(&b, "• %s Progress: %d/%d\n",
			cases.Title(language.English).String(key), rec.Progress(key), len(location.Events))
	}
	b.WriteString("\nUse `.inventory` to see all your items!")

	return h.sender.SendText(ctx, userID, b.String())
}

// Inventory renders every non-zero stat, tool, item, crate, and pet.
func (h *Handler) Inventory(ctx context.Context, userID string) error {
	rec, err := h.store.FindRPG(ctx, userID)
	if err != nil {
		return fmt.Errorf("inventory: %w", err)
	}

	var stats []string
	for _, name := range inventoryStats {
		if v := rec.Amount(name); v > 0 {
			stats = append(stats, fmt.Sprintf("⮕ %s: %d", name, v))
		}
	}

	var tools []string
	for _, recipes := range blacksmithRecipes {
		tier := toolTier(rec, recipes.Tool)
		if tier == 0 {
			continue
		}
		display := tierNames[tier]
		if recipes.Tool == "fishingrod" {
			display = "Active"
		} else {
			display += " " + cases.Title(language.English).String(recipes.Tool)
		}
		line := fmt.Sprintf("⮕ %s: %s", recipes.Tool, display)
		if durability := rec.Amount(recipes.Tool + "durability"); durability > 0 {
			line += fmt.Sprintf(" (%d durability)", durability)
		}
		tools = append(tools, line)
	}

	var items []string
	for _, name := range inventoryItems {
		if v := rec.Amount(name); v > 0 {
			items = append(items, fmt.Sprintf("⮕ %s: %d", name, v))
		}
	}

	var crates []string
	for _, name := range inventoryCrates {
		if v := rec.Amount(name); v > 0 {
			crates = append(crates, fmt.Sprintf("⮕ %s: %d", name, v))
		}
	}

	var pets []string
	for _, pet := range petLevelCaps {
		level := rec.Amount(pet.Name)
		if level == 0 {
			continue
		}
		if level >= pet.Cap {
			pets = append(pets, fmt.Sprintf("⮕ %s: Max Level", pet.Name))
		} else {
			pets = append(pets, fmt.Sprintf("⮕ %s: Level %d", pet.Name, level))
		}
	}

	var b strings.Builder
	b.WriteString("💍 *INVENTORY*\n\n")
	b.WriteString("👤 *Character Stats:*\n")
	b.WriteString(strings.Join(stats, "\n"))
	writeSection(&b, "🔧 *Tools:*", tools)
	writeSection(&b, "📦 *Items:*", items)
	writeSection(&b, "🎁 *Crates:*", crates)
	writeSection(&b, "🐾 *Pets:*", pets)
	if len(tools) == 0 && len(items) == 0 && len(crates) == 0 && len(pets) == 0 {
		b.WriteString("\n\nYour inventory is empty! Start adventuring to collect items.")
	}

	return h.sender.SendText(ctx, userID, b.String())
}

// Blacksmith crafts tools: args are [verb, tier] where verb is one of
// createsword/createarmor/createpickaxe/createfishingrod. With no
// recognizable verb it lists the whole workshop.
func (h *Handler) Blacksmith(ctx context.Context, userID string, args []string) error {
	rec, err := h.store.FindRPG(ctx, userID)
	if err != nil {
		return fmt.Errorf("blacksmith: %w", err)
	}

	verb := "createsword"
	if len(args) > 0 {
		verb = strings.ToLower(args[0])
	}
	recipes, ok := findRecipes(verb)
	if !ok {
		return h.sender.SendText(ctx, userID, workshopListing())
	}

	if len(args) < 2 {
		return h.sender.SendText(ctx, userID, recipeListing(recipes))
	}
	tier, ok := findTier(recipes, strings.ToLower(args[1]))
	if !ok {
		return h.sender.SendText(ctx, userID, recipeListing(recipes))
	}

	if toolTier(rec, recipes.Tool) != 0 {
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("You already have a %s! Come back when it's destroyed.", recipes.Tool))
	}

	var missing []string
	for _, material := range tier.Materials {
		if have := rec.Amount(material.Name); have < material.Amount {
			missing = append(missing, fmt.Sprintf("%d %s", material.Amount-have, material.Name))
		}
	}
	if len(missing) > 0 {
		return h.sender.SendText(ctx, userID,
			fmt.Sprintf("❌ Insufficient materials!\nYou need: %s", strings.Join(missing, ", ")))
	}

	for _, material := range tier.Materials {
		rec.Debit(material.Name, material.Amount)
	}
	setTool(&rec, recipes.Tool, tier.ID, tier.Durability)

	if err := h.store.SaveRPG(ctx, userID, rec); err != nil {
		return fmt.Errorf("blacksmith: %w", err)
	}
	return h.sender.SendText(ctx, userID,
		fmt.Sprintf("🔨 Successfully crafted your %s %s!", tier.Name, recipes.Tool))
}

// Shop buys and sells: args are [buy|sell, item, quantity].
func (h *Handler) Shop(ctx context.Context, userID string, args []string) error {
	rec, err := h.store.FindRPG(ctx, userID)
	if err != nil {
		return fmt.Errorf("shop: %w", err)
	}

	command := "buy"
	if len(args) > 0 {
		command = strings.ToLower(args[0])
	}
	if command != "buy" && command != "sell" {
		return h.sender.SendText(ctx, userID,
			"🏪 *SHOP* 🏪\n\nCommands:\n• .buy <item> [quantity] - Purchase items\n• .sell <item> [quantity] - Sell items\n\nUse .buy or .sell to see available items!")
	}

	listing := shopBuy
	if command == "sell" {
		listing = shopSell
	}

	var item string
	if len(args) > 1 {
		item = strings.ToLower(args[1])
	}
	price, ok := findPrice(listing, item)
	if !ok {
		return h.sender.SendText(ctx, userID, h.shopListing(command, listing))
	}

	quantity := parseQuantity(args, 2)
	total := price * quantity

	if command == "buy" {
		if rec.Money < total {
			return h.sender.SendText(ctx, userID, h.printer.Sprintf(
				"❌ Insufficient money!\nYou need: %d\nYou have: %d\nShortage: %d",
				total, rec.Money, total-rec.Money))
		}
		rec.Debit("money", total)
		rec.Add(item, quantity)
		if err := h.store.SaveRPG(ctx, userID, rec); err != nil {
			return fmt.Errorf("shop: %w", err)
		}
		return h.sender.SendText(ctx, userID, h.printer.Sprintf(
			"✅ Successfully bought %d %s(s) for %d money!", quantity, item, total))
	}

	if have := rec.Amount(item); have < quantity {
		return h.sender.SendText(ctx, userID, fmt.Sprintf(
			"❌ You don't have enough %s!\nYou have: %d\nTrying to sell: %d", item, have, quantity))
	}
	rec.Debit(item, quantity)
	rec.Add("money", total)
	if err := h.store.SaveRPG(ctx, userID, rec); err != nil {
		return fmt.Errorf("shop: %w", err)
	}
	return h.sender.SendText(ctx, userID, h.printer.Sprintf(
		"✅ Successfully sold %d %s(s) for %d money!", quantity, item, total))
}

// Open opens crates: args are [crate, quantity].
func (h *Handler) Open(ctx context.Context, userID string, args []string) error {
	rec, err := h.store.FindRPG(ctx, userID)
	if err != nil {
		return fmt.Errorf("open crates: %w", err)
	}

	var crateName string
	if len(args) > 0 {
		crateName = strings.ToLower(args[0])
	}
	crate, ok := findCrate(crateName)
	if !ok {
		var b strings.Builder
		b.WriteString("🎁 *OPEN CRATES* 🎁\n\nYour crates:\n")
		for _, table := range crateTables {
			fmt.Fprintf(&b, "• %s: %d available\n", table.Name, rec.Amount(table.Name))
		}
		b.WriteString("\n*Usage:* .open <crate_type> [quantity]\n*Example:* .open common 5")
		return h.sender.SendText(ctx, userID, b.String())
	}

	quantity := parseQuantity(args, 1)
	if have := rec.Amount(crate.Name); have < quantity {
		return h.sender.SendText(ctx, userID, fmt.Sprintf(
			"❌ Not enough %s crates!\nYou have: %d\nTrying to open: %d\nShortage: %d",
			crate.Name, have, quantity, quantity-have))
	}

	// Totals keyed and printed in schedule order.
	totals := make(map[string]int)
	var order []string
	grant := func(name string, amount int) {
		if amount <= 0 {
			return
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += amount
	}
	for i := 0; i < quantity; i++ {
		for _, fixed := range crate.Fixed {
			grant(fixed.Name, fixed.Amount)
		}
		for _, pick := range crate.Picks {
			grant(pick.Name, pick.Amounts[h.randInt(0, len(pick.Amounts)-1)])
		}
	}

	rec.Debit(crate.Name, quantity)
	for _, name := range order {
		rec.Add(name, totals[name])
	}
	if err := h.store.SaveRPG(ctx, userID, rec); err != nil {
		return fmt.Errorf("open crates: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎁 *Opened %d %s crate(s)!*\n\n*Rewards:*\n", quantity, crate.Name)
	for _, name := range order {
		fmt.Fprintf(&b, "• %s: +%d\n", name, totals[name])
	}
	var rares []string
	for _, name := range rareDrops {
		if totals[name] > 0 {
			rares = append(rares, fmt.Sprintf("%d %s", totals[name], name))
		}
	}
	if len(rares) > 0 {
		fmt.Fprintf(&b, "\n🎉 *RARE DROPS!* %s", strings.Join(rares, ", "))
	}
	return h.sender.SendText(ctx, userID, b.String())
}

// Heal spends potions at 40 health each: args are [quantity].
func (h *Handler) Heal(ctx context.Context, userID string, args []string) error {
	rec, err := h.store.FindRPG(ctx, userID)
	if err != nil {
		return fmt.Errorf("heal: %w", err)
	}

	if rec.Health >= rpg.MaxHealth {
		return h.sender.SendText(ctx, userID, "❤️ Your health is already full!")
	}

	quantity := parseQuantity(args, 0)
	if have := rec.Amount("potion"); have < quantity {
		return h.sender.SendText(ctx, userID, fmt.Sprintf(
			"❌ Not enough potions!\nYou have: %d\nTrying to use: %d\nBuy more potions with: .buy potion %d",
			have, quantity, quantity-have))
	}

	rec.Debit("potion", quantity)
	rec.Add("health", quantity*healPerPotion)
	if err := h.store.SaveRPG(ctx, userID, rec); err != nil {
		return fmt.Errorf("heal: %w", err)
	}
	return h.sender.SendText(ctx, userID, fmt.Sprintf(
		"❤️ Used %d potion(s) to restore %d health!\nCurrent health: %d/%d",
		quantity, quantity*healPerPotion, rec.Health, rpg.MaxHealth))
}

// Fishing casts once per cooldown, wearing the rod down.
func (h *Handler) Fishing(ctx context.Context, userID string) error {
	rec, err := h.store.FindRPG(ctx, userID)
	if err != nil {
		return fmt.Errorf("fishing: %w", err)
	}

	if !rec.FishingRod {
		return h.sender.SendText(ctx, userID,
			"🎣 You need a fishing rod! Craft one at the blacksmith with: .createfishingrod fishingrod")
	}
	if rec.FishingRodDurability < fishingWear {
		return h.sender.SendText(ctx, userID,
			"🎣 Your fishing rod is broken! Craft a new one at the blacksmith.")
	}

	now := h.clock()
	if elapsed := now.Sub(rec.LastFishing); elapsed < fishingCooldown {
		remaining := fishingCooldown - elapsed
		return h.sender.SendText(ctx, userID, fmt.Sprintf(
			"🎣 Please wait %dm %ds before fishing again!",
			int(remaining.Minutes()), int(remaining.Seconds())%60))
	}

	rec.FishingRodDurability -= fishingWear
	moneyReward := h.randInt(1, 120)
	trashReward := h.randInt(1, 30)
	rec.Add("money", moneyReward)
	rec.Add("trash", trashReward)
	rec.LastFishing = now

	var b strings.Builder
	fmt.Fprintf(&b, "🎣 *Fishing Complete!*\n\n*Rewards:*\n• Money: +%d\n• Trash: +%d\n\nFishing rod durability: %d",
		moneyReward, trashReward, rec.FishingRodDurability)
	if rec.FishingRodDurability < fishingWear {
		rec.FishingRod = false
		rec.FishingRodDurability = 0
		b.WriteString("\n\n💥 *Your fishing rod broke!* Craft a new one at the blacksmith.")
	}

	if err := h.store.SaveRPG(ctx, userID, rec); err != nil {
		return fmt.Errorf("fishing: %w", err)
	}
	return h.sender.SendText(ctx, userID, b.String())
}

// Pet adopts or levels a pet, consuming one pet crate: args are [type].
func (h *Handler) Pet(ctx context.Context, userID string, args []string) error {
	rec, err := h.store.FindRPG(ctx, userID)
	if err != nil {
		return fmt.Errorf("pet: %w", err)
	}

	var petName string
	if len(args) > 0 {
		petName = strings.ToLower(args[0])
	}
	maxLevel, ok := petCap(petName)
	if !ok {
		var names []string
		var status []string
		for _, pet := range petLevelCaps {
			names = append(names, pet.Name)
			if level := rec.Amount(pet.Name); level > 0 {
				status = append(status, fmt.Sprintf("• %s: Level %d/%d", pet.Name, level, pet.Cap))
			} else {
				status = append(status, fmt.Sprintf("• %s: Not owned", pet.Name))
			}
		}
		return h.sender.SendText(ctx, userID, fmt.Sprintf(
			"🐾 *PET ADOPTION* 🐾\n\nAvailable pets: %s\n\n*Your pets:*\n%s\n\n*Usage:* .pet <pet_type>\n*Example:* .pet cat\n\n💡 You need pet crates to adopt pets! Open them with: .open pet",
			strings.Join(names, ", "), strings.Join(status, "\n")))
	}

	if rec.Amount("pet") < 1 {
		return h.sender.SendText(ctx, userID, fmt.Sprintf(
			"❌ You need a pet crate to adopt a %s!\nOpen pet crates with: .open pet", petName))
	}
	if level := rec.Amount(petName); level >= maxLevel {
		return h.sender.SendText(ctx, userID, fmt.Sprintf(
			"✅ Your %s is already at max level (%d)!", petName, maxLevel))
	}

	rec.Debit("pet", 1)
	rec.Add(petName, 1)
	rec.Add(petName+"exp", 50)
	if err := h.store.SaveRPG(ctx, userID, rec); err != nil {
		return fmt.Errorf("pet: %w", err)
	}

	level := rec.Amount(petName)
	action, closing := "Leveled up", fmt.Sprintf("Your %s is getting stronger!", petName)
	if level == 1 {
		action, closing = "Adopted", fmt.Sprintf("Welcome your new %s companion!", petName)
	}
	return h.sender.SendText(ctx, userID, fmt.Sprintf(
		"🐾 *%s your %s!*\n\n• Level: %d/%d\n• Experience: %d\n\n%s",
		action, petName, level, maxLevel, rec.Amount(petName+"exp"), closing))
}

func toolTier(rec rpg.Record, tool string) int {
	switch tool {
	case "sword":
		return rec.Sword
	case "armor":
		return rec.Armor
	case "pickaxe":
		return rec.Pickaxe
	case "fishingrod":
		if rec.FishingRod {
			return 1
		}
		return 0
	default:
		return 0
	}
}

func setTool(rec *rpg.Record, tool string, id, durability int) {
	switch tool {
	case "sword":
		rec.Sword = id
		rec.SwordDurability = durability
	case "armor":
		rec.Armor = id
		rec.ArmorDurability = durability
	case "pickaxe":
		rec.Pickaxe = id
		rec.PickaxeDurability = durability
	case "fishingrod":
		rec.FishingRod = true
		rec.FishingRodDurability = durability
	}
}

func tierDisplay(tool string, tier int) string {
	name, ok := tierNames[tier]
	if !ok {
		return "❌ None"
	}
	return name + " " + tool
}

func parseQuantity(args []string, index int) int {
	if len(args) <= index {
		return 1
	}
	n, err := strconv.Atoi(args[index])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func materialList(materials []Material) string {
	parts := make([]string, len(materials))
	for i, material := range materials {
		parts[i] = fmt.Sprintf("%d %s", material.Amount, material.Name)
	}
	return strings.Join(parts, ", ")
}

func workshopListing() string {
	var b strings.Builder
	b.WriteString("🔨 *BLACKSMITH WORKSHOP* 🔨\n")
	for _, recipes := range blacksmithRecipes {
		fmt.Fprintf(&b, "\n*%s:*\n", strings.ToUpper(recipes.Verb))
		for _, tier := range recipes.Tiers {
			fmt.Fprintf(&b, "  • %s (%s)\n", tier.Name, materialList(tier.Materials))
		}
	}
	b.WriteString("\n*Usage:* .createsword <item_type>\n*Example:* .createsword iron")
	return b.String()
}

func recipeListing(recipes ToolRecipes) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔨 *%s*\n\nAvailable options:\n", strings.ToUpper(recipes.Verb))
	for _, tier := range recipes.Tiers {
		fmt.Fprintf(&b, "• %s - Materials: %s\n", tier.Name, materialList(tier.Materials))
	}
	fmt.Fprintf(&b, "\n*Usage:* .%s <type>", recipes.Verb)
	return b.String()
}

func (h *Handler) shopListing(command string, items []PricedItem) string {
	title := "🛒 *BUY ITEMS*"
	if command == "sell" {
		title = "💰 *SELL ITEMS*"
	}
	var b strings.Builder
	b.WriteString(title + "\n\nAvailable items:\n")
	for _, item := range items {
		b.WriteString(h.printer.Sprintf("• %s - %d money each\n", item.Name, item.Price))
	}
	fmt.Fprintf(&b, "\n*Usage:* .%s <item> [quantity]", command)
	return b.String()
}

func writeSection(b *strings.Builder, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(b, "\n\n%s\n%s", title, strings.Join(lines, "\n"))
}
