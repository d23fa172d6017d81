package adventure

// DefaultCatalog returns the built-in adventure data set. Cost maps
// only name resources a player can actually hold, so the affordability
// check in Resolve never blocks a choice on something unobtainable.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Order: []string{"forest", "dungeon", "mountains"},
		Locations: map[string]Location{
			"forest": {
				Key:      "forest",
				Name:     "🌲 Mystic Forest",
				MinLevel: 1,
				Events:   []string{"treespirit", "hiddenchest", "wolfpack"},
				BaseRewards: []RangeReward{
					{Resource: "money", Min: 10, Max: 50},
					{Resource: "exp", Min: 15, Max: 45},
					{Resource: "wood", Min: 1, Max: 3},
				},
				SpecialRewards: []WeightedReward{
					{Resource: "uncommon", Chance: 0.3},
					{Resource: "mythic", Chance: 0.05},
				},
				HealthCost: [2]int{5, 15},
				ArmorCost:  [2]int{2, 8},
			},
			"dungeon": {
				Key:      "dungeon",
				Name:     "🏰 Ancient Dungeon",
				MinLevel: 5,
				Events:   []string{"traproom", "treasurevault", "magicfountain"},
				BaseRewards: []RangeReward{
					{Resource: "money", Min: 50, Max: 150},
					{Resource: "exp", Min: 30, Max: 80},
					{Resource: "rock", Min: 1, Max: 4},
				},
				SpecialRewards: []WeightedReward{
					{Resource: "uncommon", Chance: 0.4},
					{Resource: "mythic", Chance: 0.1},
					{Resource: "legendary", Chance: 0.02},
				},
				HealthCost: [2]int{15, 30},
				ArmorCost:  [2]int{5, 15},
			},
			"mountains": {
				Key:      "mountains",
				Name:     "⛰️ Dragon Peaks",
				MinLevel: 10,
				Events:   []string{"crystalcave", "dragonencounter", "skytemple"},
				BaseRewards: []RangeReward{
					{Resource: "money", Min: 100, Max: 300},
					{Resource: "exp", Min: 50, Max: 120},
					{Resource: "diamond", Min: 0, Max: 2},
				},
				SpecialRewards: []WeightedReward{
					{Resource: "mythic", Chance: 0.15},
					{Resource: "legendary", Chance: 0.05},
					{Resource: "diamond", Chance: 0.2},
				},
				HealthCost: [2]int{20, 40},
				ArmorCost:  [2]int{8, 20},
			},
		},
		Events: map[string]Event{
			"treespirit": {
				Key:         "treespirit",
				Title:       "🧚 Tree Spirit Encounter",
				Image:       "https://file.garden/aH6j2EOEQybcMMDx/droid.png",
				Description: "A wise tree spirit offers you a choice... What is your choice?",
				Choices: []Choice{
					{
						Key: "A", Text: "Accept blessing (+health)", Button: "Accept blessing", SuccessRate: 0.9,
						Costs:   []ResourceAmount{{"energy", 5}},
						Rewards: []ResourceAmount{{"health", 20}, {"exp", 10}},
					},
					{
						Key: "B", Text: "Ask for knowledge (+exp)", Button: "Accept knowledge", SuccessRate: 0.8,
						Costs:   []ResourceAmount{{"health", 5}},
						Rewards: []ResourceAmount{{"exp", 50}, {"wisdom", 1}},
					},
					{
						Key: "C", Text: "Request treasure (+rare item)", Button: "Request treasure", SuccessRate: 0.6,
						Costs:   []ResourceAmount{{"health", 10}},
						Rewards: []ResourceAmount{{"uncommon", 1}, {"money", 30}},
					},
				},
			},
			"hiddenchest": {
				Key:         "hiddenchest",
				Title:       "📦 Hidden Chest",
				Image:       "https://file.garden/aH6j2EOEQybcMMDx/phone.png",
				Description: "You discover a mysterious chest hidden among the roots. What do you do?",
				Choices: []Choice{
					{
						Key: "A", Text: "Open carefully", Button: "Open carefully", SuccessRate: 0.8,
						Costs:   []ResourceAmount{{"energy", 10}},
						Rewards: []ResourceAmount{{"money", 50}, {"exp", 20}},
					},
					{
						Key: "B", Text: "Check for traps first", Button: "Check for traps", SuccessRate: 0.9,
						Costs:   []ResourceAmount{{"energy", 15}},
						Rewards: []ResourceAmount{{"money", 30}, {"exp", 40}, {"agility", 1}},
					},
					{
						Key: "C", Text: "Break it open", Button: "Break it open", SuccessRate: 0.6,
						Costs:   []ResourceAmount{{"health", 15}, {"energy", 20}},
						Rewards: []ResourceAmount{{"money", 70}, {"wood", 2}},
					},
				},
			},
			"wolfpack": {
				Key:         "wolfpack",
				Title:       "🐺 Wolf Pack",
				Image:       "https://file.garden/aH6j2EOEQybcMMDx/wolves.png",
				Description: "A pack of wolves blocks your path. How do you handle this situation?",
				Choices: []Choice{
					{
						Key: "A", Text: "Fight them", Button: "Fight", SuccessRate: 0.7,
						Costs:   []ResourceAmount{{"health", 25}, {"armordurability", 10}},
						Rewards: []ResourceAmount{{"exp", 60}, {"strength", 2}, {"meat", 3}},
					},
					{
						Key: "B", Text: "Try to sneak past", Button: "Sneak past", SuccessRate: 0.6,
						Costs:   []ResourceAmount{{"energy", 20}},
						Rewards: []ResourceAmount{{"exp", 30}, {"agility", 1}},
					},
					{
						Key: "C", Text: "Offer food to distract", Button: "Offer food", SuccessRate: 0.8,
						Costs:   []ResourceAmount{{"energy", 10}},
						Rewards: []ResourceAmount{{"exp", 40}, {"respect", 2}},
					},
				},
			},
			"traproom": {
				Key:         "traproom",
				Title:       "🕳️ Trap Room",
				Image:       "https://file.garden/aH6j2EOEQybcMMDx/trap.png",
				Description: "You've triggered a trap! Quick thinking required... How do you react?",
				Choices: []Choice{
					{
						Key: "A", Text: "Dodge quickly", Button: "Dodge quickly", SuccessRate: 0.6,
						Costs:   []ResourceAmount{{"energy", 15}},
						Rewards: []ResourceAmount{{"exp", 25}, {"agility", 1}},
					},
					{
						Key: "B", Text: "Use tools to disable", Button: "Use tools", SuccessRate: 0.8,
						Costs:   []ResourceAmount{{"pickaxedurability", 10}},
						Rewards: []ResourceAmount{{"exp", 40}, {"rock", 1}},
					},
					{
						Key: "C", Text: "Tank the damage", Button: "Tank damage", SuccessRate: 0.9,
						Costs:   []ResourceAmount{{"health", 30}, {"armordurability", 15}},
						Rewards: []ResourceAmount{{"exp", 15}, {"toughness", 2}},
					},
				},
			},
			"treasurevault": {
				Key:         "treasurevault",
				Title:       "💰 Treasure Vault",
				Image:       "https://file.garden/aH6j2EOEQybcMMDx/vault.png",
				Description: "You've found an ancient treasure vault! How do you proceed?",
				Choices: []Choice{
					{
						Key: "A", Text: "Take everything", Button: "Take everything", SuccessRate: 0.7,
						Costs:   []ResourceAmount{{"energy", 30}},
						Rewards: []ResourceAmount{{"money", 200}, {"exp", 50}},
					},
					{
						Key: "B", Text: "Take only what you need", Button: "Take moderately", SuccessRate: 0.9,
						Costs:   []ResourceAmount{{"energy", 20}},
						Rewards: []ResourceAmount{{"money", 100}, {"exp", 60}, {"respect", 3}},
					},
					{
						Key: "C", Text: "Study the vault first", Button: "Study first", SuccessRate: 0.8,
						Costs:   []ResourceAmount{{"energy", 15}},
						Rewards: []ResourceAmount{{"exp", 80}, {"knowledge", 2}, {"money", 50}},
					},
				},
			},
			"magicfountain": {
				Key:         "magicfountain",
				Title:       "⛲ Magic Fountain",
				Image:       "https://file.garden/aH6j2EOEQybcMMDx/fountain.png",
				Description: "A glowing fountain bubbles in the dark. Its waters hum with power...",
				Choices: []Choice{
					{
						Key: "A", Text: "Drink deeply (+health)", Button: "Drink deeply", SuccessRate: 0.8,
						Costs:   []ResourceAmount{{"energy", 10}},
						Rewards: []ResourceAmount{{"health", 35}, {"exp", 20}},
					},
					{
						Key: "B", Text: "Bottle the water (+potion)", Button: "Bottle water", SuccessRate: 0.7,
						Costs:   []ResourceAmount{{"energy", 15}},
						Rewards: []ResourceAmount{{"potion", 1}, {"exp", 30}},
					},
					{
						Key: "C", Text: "Toss a coin and make a wish", Button: "Toss a coin", SuccessRate: 0.9,
						Costs:   []ResourceAmount{{"money", 25}},
						Rewards: []ResourceAmount{{"exp", 45}, {"respect", 1}},
					},
				},
			},
			"crystalcave": {
				Key:         "crystalcave",
				Title:       "💎 Crystal Cave",
				Image:       "https://file.garden/aH6j2EOEQybcMMDx/crystal.png",
				Description: "You discover a cave filled with glowing crystals...",
				Choices: []Choice{
					{
						Key: "A", Text: "Mine the crystals", Button: "Mine crystals", SuccessRate: 0.7,
						Costs:   []ResourceAmount{{"energy", 25}, {"pickaxedurability", 15}},
						Rewards: []ResourceAmount{{"diamond", 3}, {"exp", 45}},
					},
					{
						Key: "B", Text: "Study their magic", Button: "Study magic", SuccessRate: 0.8,
						Costs:   []ResourceAmount{{"energy", 20}},
						Rewards: []ResourceAmount{{"exp", 70}, {"wisdom", 2}},
					},
					{
						Key: "C", Text: "Take only small samples", Button: "Take samples", SuccessRate: 0.9,
						Costs:   []ResourceAmount{{"energy", 10}},
						Rewards: []ResourceAmount{{"diamond", 1}, {"exp", 30}, {"respect", 2}},
					},
				},
			},
			"dragonencounter": {
				Key:         "dragonencounter",
				Title:       "🐉 Dragon Encounter",
				Image:       "https://file.garden/aH6j2EOEQybcMMDx/dragon.png",
				Description: "A mighty dragon appears before you! What is your approach?",
				Choices: []Choice{
					{
						Key: "A", Text: "Challenge to combat", Button: "Fight dragon", SuccessRate: 0.4,
						Costs:   []ResourceAmount{{"health", 50}, {"armordurability", 30}},
						Rewards: []ResourceAmount{{"exp", 200}, {"legendary", 1}, {"dragonscale", 5}},
					},
					{
						Key: "B", Text: "Attempt negotiation", Button: "Negotiate", SuccessRate: 0.6,
						Costs:   []ResourceAmount{{"energy", 30}},
						Rewards: []ResourceAmount{{"exp", 120}, {"wisdom", 3}, {"gold", 100}},
					},
					{
						Key: "C", Text: "Show respect and retreat", Button: "Respectful retreat", SuccessRate: 0.9,
						Costs:   []ResourceAmount{{"energy", 20}},
						Rewards: []ResourceAmount{{"exp", 80}, {"respect", 5}},
					},
				},
			},
			"skytemple": {
				Key:         "skytemple",
				Title:       "🛕 Sky Temple",
				Image:       "https://file.garden/aH6j2EOEQybcMMDx/temple.png",
				Description: "An ancient temple clings to the peak above the clouds. The wind carries faint chanting...",
				Choices: []Choice{
					{
						Key: "A", Text: "Climb the spire", Button: "Climb spire", SuccessRate: 0.6,
						Costs:   []ResourceAmount{{"energy", 35}, {"health", 20}},
						Rewards: []ResourceAmount{{"exp", 90}, {"mythic", 1}},
					},
					{
						Key: "B", Text: "Meditate at the altar", Button: "Meditate", SuccessRate: 0.8,
						Costs:   []ResourceAmount{{"energy", 25}},
						Rewards: []ResourceAmount{{"exp", 110}, {"wisdom", 2}},
					},
					{
						Key: "C", Text: "Ring the great bell", Button: "Ring bell", SuccessRate: 0.9,
						Costs:   []ResourceAmount{{"energy", 15}},
						Rewards: []ResourceAmount{{"money", 150}, {"exp", 60}},
					},
				},
			},
		},
	}
}
