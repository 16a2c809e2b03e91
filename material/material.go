// Package material maps texture identifiers to material categories and the
// coefficients used to derive their PBR maps.
package material

import "strings"

// Category is a material class assigned to a texture
type Category string

// Known material categories
const (
	CategoryLightSource   Category = "light_source"
	CategoryRawOre        Category = "raw_ore"
	CategoryOre           Category = "ore"
	CategoryWater         Category = "water"
	CategoryOreDerivative Category = "ore_derivative"
	CategoryNaturalEntity Category = "natural_entity"
	CategoryMisc          Category = "misc"
	CategoryDefault       Category = "default"
)

// IsLiquid reports whether textures of this category get a procedural normal map
func (c Category) IsLiquid() bool {
	return c == CategoryWater
}

// Coefficients holds the per-channel scale factors for the MER map.
// All values are in [0,1].
type Coefficients struct {
	Metalness    float64
	Roughness    float64
	Emissiveness float64
}

// Classification is the result of classifying a texture identifier
type Classification struct {
	Category     Category
	Coefficients Coefficients
}

// Rule binds a category to the keywords that select it
type Rule struct {
	Category     Category
	Keywords     []string
	Coefficients Coefficients
}

// Matches reports whether any keyword is a substring of the identifier
func (r Rule) Matches(identifier string) bool {
	for _, keyword := range r.Keywords {
		if strings.Contains(identifier, keyword) {
			return true
		}
	}
	return false
}

// DefaultCoefficients apply when no rule matches
var DefaultCoefficients = Coefficients{Metalness: 0.50, Roughness: 0.45, Emissiveness: 0.10}

// rules is evaluated top to bottom; the first match wins.
// Light sources only raise emissiveness and keep the default metalness and roughness.
var rules = []Rule{
	{
		Category: CategoryLightSource,
		Keywords: []string{
			"beacon", "conduit", "end", "fire", "pickle", "glow",
			"jack", "lantern", "lava", "campfire", "lamp", "anchor", "torch",
			"rod", "furnace", "smoker", "portal", "crying", "candle", "lichen",
			"sculk", "magma", "brewing", "brown_mushroom", "dragon", "enchant",
		},
		Coefficients: Coefficients{Metalness: 0.50, Roughness: 0.45, Emissiveness: 0.5},
	},
	{
		Category:     CategoryRawOre,
		Keywords:     []string{"raw"},
		Coefficients: Coefficients{Metalness: 0.20, Roughness: 0.85, Emissiveness: 0.05},
	},
	{
		Category:     CategoryOre,
		Keywords:     []string{"_ore"},
		Coefficients: Coefficients{Metalness: 0.85, Roughness: 0.85, Emissiveness: 0.2},
	},
	{
		Category:     CategoryWater,
		Keywords:     []string{"water"},
		Coefficients: Coefficients{Metalness: 0.50, Roughness: 0.15, Emissiveness: 0.35},
	},
	{
		Category: CategoryOreDerivative,
		Keywords: []string{
			"iron", "chain", "gold", "diamond", "netherite",
			"emerald", "amethyst", "lapis", "obsidian", "copper",
		},
		Coefficients: Coefficients{Metalness: 1.0, Roughness: 0.85, Emissiveness: 0.1},
	},
	{
		Category: CategoryNaturalEntity,
		Keywords: []string{
			"seagrass", "grass", "dirt", "podzol", "mycelium",
			"gravel", "sand", "clay", "acacia", "birch", "dark_oak", "jungle",
			"mangrove", "oak", "spruce", "stone", "andesite", "diorite", "granite",
			"deep", "slate", "deepslate", "netherrack", "brick", "snow", "infested",
			"basalt", "nylium", "mud", "soul", "rooted", "sapling", "allium", "azure",
			"orchid", "cornflower", "dandelion", "lilac", "valley", "tulip", "oxeye",
			"peony", "poppy", "rose", "sunflower", "hay", "melon", "moss", "roots",
			"blossom", "dripleaf", "bush", "fern", "lily", "vine", "wool", "carpet",
			"terracotta", "banner", "honeycomb",
		},
		Coefficients: Coefficients{Metalness: 0.20, Roughness: 0.85, Emissiveness: 0.05},
	},
	{
		Category:     CategoryMisc,
		Keywords:     []string{"glass", "slime", "honey", "ice"},
		Coefficients: Coefficients{Metalness: 1.0, Roughness: 0.25, Emissiveness: 0.1},
	},
}

// Classify returns the category and coefficients for a texture identifier.
// Matching is case-sensitive. Identifiers matching no rule get CategoryDefault.
func Classify(identifier string) Classification {
	for _, rule := range rules {
		if rule.Matches(identifier) {
			return Classification{Category: rule.Category, Coefficients: rule.Coefficients}
		}
	}
	return Classification{Category: CategoryDefault, Coefficients: DefaultCoefficients}
}

// Rules returns a copy of the classification table in priority order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, rule := range rules {
		out[i] = Rule{
			Category:     rule.Category,
			Keywords:     append([]string(nil), rule.Keywords...),
			Coefficients: rule.Coefficients,
		}
	}
	return out
}

// Categories lists every category, Default last
func Categories() []Category {
	out := make([]Category, 0, len(rules)+1)
	for _, rule := range rules {
		out = append(out, rule.Category)
	}
	return append(out, CategoryDefault)
}
