package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		identifier string
		want       Category
	}{
		{identifier: "torch", want: CategoryLightSource},
		{identifier: "soul_lantern", want: CategoryLightSource},
		{identifier: "lava_still", want: CategoryLightSource},
		{identifier: "raw_iron", want: CategoryRawOre},
		{identifier: "raw_gold_block", want: CategoryRawOre},
		{identifier: "deepslate_iron_ore", want: CategoryOre},
		{identifier: "coal_ore", want: CategoryOre},
		{identifier: "water_still", want: CategoryWater},
		{identifier: "water_flow", want: CategoryWater},
		{identifier: "gold_block", want: CategoryOreDerivative},
		{identifier: "copper_block", want: CategoryOreDerivative},
		{identifier: "oak_planks", want: CategoryNaturalEntity},
		{identifier: "grass_block_side", want: CategoryNaturalEntity},
		{identifier: "glass", want: CategoryMisc},
		{identifier: "packed_ice", want: CategoryMisc},
		{identifier: "sponge", want: CategoryDefault},
		{identifier: "bookshelf", want: CategoryDefault},
		{identifier: "Torch", want: CategoryDefault},
		{identifier: "", want: CategoryDefault},
	}

	for _, tc := range testCases {
		t.Run(tc.identifier, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.identifier).Category)
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// "lava" (light source) outranks "water"
	assert.Equal(t, CategoryLightSource, Classify("lava_water").Category)
	// "raw" outranks "_ore" and "iron"
	assert.Equal(t, CategoryRawOre, Classify("raw_iron_ore").Category)
	// "_ore" outranks "iron"
	assert.Equal(t, CategoryOre, Classify("iron_ore").Category)
	// "water" outranks "stone"
	assert.Equal(t, CategoryWater, Classify("stone_water").Category)
}

func TestClassifyWaterCoefficients(t *testing.T) {
	want := Coefficients{Metalness: 0.50, Roughness: 0.15, Emissiveness: 0.35}
	for _, id := range []string{"water", "water_still", "water_flow", "underwater_overlay"} {
		got := Classify(id)
		require.Equal(t, CategoryWater, got.Category, id)
		assert.Equal(t, want, got.Coefficients, id)
		assert.True(t, got.Category.IsLiquid(), id)
	}
}

func TestClassifyDefaultCoefficients(t *testing.T) {
	for _, id := range []string{"sponge", "cactus", "bookshelf", "xyz"} {
		got := Classify(id)
		assert.Equal(t, CategoryDefault, got.Category, id)
		assert.Equal(t, Coefficients{Metalness: 0.50, Roughness: 0.45, Emissiveness: 0.10}, got.Coefficients, id)
		assert.False(t, got.Category.IsLiquid(), id)
	}
}

func TestLightSourceKeepsDefaultMetalnessAndRoughness(t *testing.T) {
	got := Classify("campfire_log").Coefficients
	assert.Equal(t, DefaultCoefficients.Metalness, got.Metalness)
	assert.Equal(t, DefaultCoefficients.Roughness, got.Roughness)
	assert.Equal(t, 0.5, got.Emissiveness)
}

func TestCoefficientsTable(t *testing.T) {
	want := map[Category]Coefficients{
		CategoryLightSource:   {Metalness: 0.50, Roughness: 0.45, Emissiveness: 0.5},
		CategoryRawOre:        {Metalness: 0.20, Roughness: 0.85, Emissiveness: 0.05},
		CategoryOre:           {Metalness: 0.85, Roughness: 0.85, Emissiveness: 0.20},
		CategoryWater:         {Metalness: 0.50, Roughness: 0.15, Emissiveness: 0.35},
		CategoryOreDerivative: {Metalness: 1.0, Roughness: 0.85, Emissiveness: 0.10},
		CategoryNaturalEntity: {Metalness: 0.20, Roughness: 0.85, Emissiveness: 0.05},
		CategoryMisc:          {Metalness: 1.0, Roughness: 0.25, Emissiveness: 0.10},
	}
	table := Rules()
	require.Len(t, table, len(want))
	for _, rule := range table {
		assert.Equal(t, want[rule.Category], rule.Coefficients, string(rule.Category))
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	table := Rules()
	table[0].Keywords[0] = "mutated"
	table[0].Coefficients.Emissiveness = 0

	assert.Equal(t, CategoryLightSource, Classify("beacon").Category)
	assert.Equal(t, 0.5, Classify("beacon").Coefficients.Emissiveness)
}

func TestCategoriesOrder(t *testing.T) {
	assert.Equal(t, []Category{
		CategoryLightSource,
		CategoryRawOre,
		CategoryOre,
		CategoryWater,
		CategoryOreDerivative,
		CategoryNaturalEntity,
		CategoryMisc,
		CategoryDefault,
	}, Categories())
}
