package economy

const gameMenu = "🎮 *ADVENTURE RPG GAME MENU* 🎮\n\n" +
	"📋 *MAIN COMMANDS:*\n" +
	"• `.menu` - Show this menu\n" +
	"• `.profile` - View your character stats\n" +
	"• `.inventory` - Check your items & equipment\n\n" +
	"🗺️ *ADVENTURE & EXPLORATION:*\n" +
	"• `.adventure` - Start adventures in different locations\n" +
	"• `.adventure <location>` - View location details\n" +
	"• `.adventure <location> <event>` - Engage in specific events\n\n" +
	"⚔️ *CRAFTING & EQUIPMENT:*\n" +
	"• `.blacksmith` - View crafting options\n" +
	"• `.createsword <type>` - Craft swords (wooden, stone, iron, gold, diamond, emerald)\n" +
	"• `.createarmor <type>` - Craft armor (wooden, stone, iron, gold, diamond, emerald)\n" +
	"• `.createpickaxe <type>` - Craft pickaxes (wooden, stone, iron, gold, diamond, emerald)\n" +
	"• `.createfishingrod` - Craft a fishing rod\n\n" +
	"🏪 *SHOPPING & TRADING:*\n" +
	"• `.shop` - View shop options\n" +
	"• `.buy <item> [quantity]` - Buy items (potion, trash, crates)\n" +
	"• `.sell <item> [quantity]` - Sell items for money\n\n" +
	"🎁 *CRATES & REWARDS:*\n" +
	"• `.open <crate> [quantity]` - Open crates (common, uncommon, mythic, legendary, pet)\n\n" +
	"🐾 *PETS & ACTIVITIES:*\n" +
	"• `.pet <type>` - Adopt pets (horse, cat, fox, dog)\n" +
	"• `.fishing` - Go fishing (requires fishing rod)\n\n" +
	"❤️ *HEALTH & RECOVERY:*\n" +
	"• `.heal [quantity]` - Use potions to restore health\n\n" +
	"💡 *TIPS:*\n" +
	"- Start with adventures in the forest to gain experience\n" +
	"- Craft better equipment for harder locations\n" +
	"- Use potions to heal when health is low\n" +
	"- Open crates for rare materials and pets\n" +
	"- Level up by gaining experience from adventures\n\n" +
	"Type any command to get started! 🚀"

// Material is one crafting or reward ingredient.
type Material struct {
	Name   string
	Amount int
}

// TierRecipe crafts one tool tier.
type TierRecipe struct {
	Name       string
	ID         int
	Durability int
	Materials  []Material
}

// ToolRecipes lists the craftable tiers for one tool, in display order.
type ToolRecipes struct {
	Tool  string
	Verb  string
	Tiers []TierRecipe
}

var standardTiers = []TierRecipe{
	{Name: "wooden", ID: 1, Durability: 60, Materials: []Material{{"wood", 10}, {"string", 4}}},
	{Name: "stone", ID: 2, Durability: 90, Materials: []Material{{"wood", 5}, {"rock", 7}, {"string", 4}}},
	{Name: "iron", ID: 3, Durability: 125, Materials: []Material{{"wood", 5}, {"iron", 7}, {"string", 4}}},
	{Name: "gold", ID: 4, Durability: 150, Materials: []Material{{"wood", 5}, {"string", 4}, {"gold", 7}}},
	{Name: "diamond", ID: 6, Durability: 200, Materials: []Material{{"wood", 5}, {"string", 4}, {"diamond", 7}}},
	{Name: "emerald", ID: 7, Durability: 175, Materials: []Material{{"wood", 5}, {"string", 4}, {"emerald", 7}}},
}

var blacksmithRecipes = []ToolRecipes{
	{Tool: "sword", Verb: "createsword", Tiers: standardTiers},
	{Tool: "armor", Verb: "createarmor", Tiers: standardTiers},
	{Tool: "pickaxe", Verb: "createpickaxe", Tiers: standardTiers},
	{Tool: "fishingrod", Verb: "createfishingrod", Tiers: []TierRecipe{
		{Name: "fishingrod", ID: 1, Durability: 150, Materials: []Material{{"wood", 10}, {"string", 15}}},
	}},
}

// tierNames maps tool tier ids to display names; tier 0 is unowned.
var tierNames = map[int]string{
	1: "Wooden",
	2: "Stone",
	3: "Iron",
	4: "Gold",
	6: "Diamond",
	7: "Emerald",
}

// PricedItem is one shop listing.
type PricedItem struct {
	Name  string
	Price int
}

var shopBuy = []PricedItem{
	{"potion", 1250},
	{"trash", 4},
	{"common", 10000},
	{"uncommon", 25000},
	{"mythic", 50000},
	{"legendary", 100000},
}

var shopSell = []PricedItem{
	{"potion", 625},
	{"trash", 4},
	{"wood", 50},
	{"rock", 75},
	{"string", 60},
	{"iron", 150},
	{"gold", 300},
	{"diamond", 500},
	{"emerald", 400},
}

// PickReward grants a uniformly drawn element of Amounts per crate.
type PickReward struct {
	Name    string
	Amounts []int
}

// CrateTable is one crate's reward schedule: fixed amounts granted on
// every open plus pick-one arrays (zero entries tune the drop odds).
type CrateTable struct {
	Name  string
	Fixed []Material
	Picks []PickReward
}

var crateTables = []CrateTable{
	{
		Name:  "common",
		Fixed: []Material{{"money", 101}, {"exp", 201}, {"trash", 11}},
		Picks: []PickReward{
			{"potion", []int{0, 1, 0, 1, 0, 0, 0, 0, 0}},
			{"common", []int{0, 1, 0, 1, 0, 0, 0, 0, 0, 0}},
			{"uncommon", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"wood", []int{1, 2, 3, 1, 2, 0, 1}},
			{"rock", []int{1, 2, 1, 2, 0, 1, 1}},
			{"string", []int{1, 2, 1, 1, 2, 0, 1}},
		},
	},
	{
		Name:  "uncommon",
		Fixed: []Material{{"money", 201}, {"exp", 401}, {"trash", 31}},
		Picks: []PickReward{
			{"potion", []int{0, 1, 0, 0, 0, 0, 0}},
			{"diamond", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"common", []int{0, 1, 0, 0, 0, 0, 0, 0}},
			{"uncommon", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"mythic", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"wood", []int{0, 1, 2, 3, 2, 1}},
			{"rock", []int{0, 1, 2, 3, 2, 1}},
			{"string", []int{0, 1, 2, 3, 2, 1}},
			{"iron", []int{0, 1, 0, 0, 1, 0}},
		},
	},
	{
		Name:  "mythic",
		Fixed: []Material{{"money", 301}, {"exp", 551}, {"trash", 61}},
		Picks: []PickReward{
			{"potion", []int{0, 1, 0, 0, 0, 0}},
			{"emerald", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"diamond", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"gold", []int{0, 1, 0, 0, 0, 0, 0, 0, 0}},
			{"iron", []int{0, 1, 0, 0, 0, 0, 0, 0}},
			{"common", []int{0, 1, 0, 0, 0, 0}},
			{"uncommon", []int{0, 1, 0, 0, 0, 0, 0, 0}},
			{"mythic", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"legendary", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"pet", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"wood", []int{1, 2, 3, 4, 2}},
			{"rock", []int{1, 2, 3, 4, 2}},
			{"string", []int{1, 2, 3, 4, 2}},
		},
	},
	{
		Name:  "legendary",
		Fixed: []Material{{"money", 401}, {"exp", 601}, {"trash", 101}},
		Picks: []PickReward{
			{"potion", []int{0, 1, 2, 1, 0}},
			{"emerald", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"diamond", []int{0, 1, 0, 0, 0, 0, 0, 0, 0}},
			{"gold", []int{0, 1, 0, 0, 0, 0, 0, 0}},
			{"iron", []int{0, 1, 0, 0, 0, 0, 0}},
			{"common", []int{0, 1, 0, 0}},
			{"uncommon", []int{0, 1, 0, 0, 0, 0}},
			{"mythic", []int{0, 1, 0, 0, 0, 0, 0, 0, 0}},
			{"legendary", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"pet", []int{0, 1, 0, 0, 0, 0, 0, 0, 0, 0}},
			{"wood", []int{2, 3, 4, 5, 3}},
			{"rock", []int{2, 3, 4, 5, 3}},
			{"string", []int{2, 3, 4, 5, 3}},
		},
	},
	{
		Name:  "pet",
		Fixed: []Material{{"pet", 5}},
	},
}

// rareDrops get a celebratory callout when a crate yields them.
var rareDrops = []string{"diamond", "mythic", "pet", "legendary", "emerald"}

// Pet adoption caps.
var petLevelCaps = []struct {
	Name string
	Cap  int
}{
	{"horse", 10},
	{"cat", 10},
	{"fox", 10},
	{"dog", 10},
}

// inventorySections drive the inventory display order.
var inventoryStats = []string{"health", "money", "exp", "level", "energy"}
var inventoryItems = []string{"potion", "trash", "wood", "rock", "string", "emerald", "diamond", "gold", "iron"}
var inventoryCrates = []string{"common", "uncommon", "mythic", "legendary", "pet"}

func findRecipes(verb string) (ToolRecipes, bool) {
	for _, recipes := range blacksmithRecipes {
		if recipes.Verb == verb {
			return recipes, true
		}
	}
	return ToolRecipes{}, false
}

func findTier(recipes ToolRecipes, name string) (TierRecipe, bool) {
	for _, tier := range recipes.Tiers {
		if tier.Name == name {
			return tier, true
		}
	}
	return TierRecipe{}, false
}

func findCrate(name string) (CrateTable, bool) {
	for _, crate := range crateTables {
		if crate.Name == name {
			return crate, true
		}
	}
	return CrateTable{}, false
}

func findPrice(items []PricedItem, name string) (int, bool) {
	for _, item := range items {
		if item.Name == name {
			return item.Price, true
		}
	}
	return 0, false
}

func petCap(name string) (int, bool) {
	for _, pet := range petLevelCaps {
		if pet.Name == name {
			return pet.Cap, true
		}
	}
	return 0, false
}
