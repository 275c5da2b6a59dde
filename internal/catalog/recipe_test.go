package catalog_test

import (
	"testing"

	"github.com/andref/albion-market/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipeSingleList(t *testing.T) {
	raw := []byte(`{
		"@time": "10",
		"craftresource": [
			{"@uniquename": "T4_LEATHER", "@count": "16", "@maxreturnamount": "7"},
			{"@uniquename": "T4_CLOTH", "@count": "8", "@maxreturnamount": "3"}
		]
	}`)

	r := catalog.ParseRecipe(raw)
	require.False(t, r.Empty())
	assert.False(t, r.Multiple())

	mats := r.Materials()
	require.Len(t, mats, 2)
	assert.Equal(t, catalog.Material{UniqueName: "T4_LEATHER", Amount: 16, MaxReturnAmount: 7}, mats[0])
	assert.Equal(t, catalog.Material{UniqueName: "T4_CLOTH", Amount: 8, MaxReturnAmount: 3}, mats[1])
}

func TestParseRecipeSingleEntry(t *testing.T) {
	// One-element XML lists flatten to a plain object in the dump.
	raw := []byte(`{"craftresource": {"@uniquename": "T4_PLANKS", "@count": "4"}}`)

	mats := catalog.ParseRecipe(raw).Materials()
	require.Len(t, mats, 1)
	assert.Equal(t, "T4_PLANKS", mats[0].UniqueName)
	assert.Equal(t, 4, mats[0].Amount)
	assert.Equal(t, 0, mats[0].MaxReturnAmount)
}

func TestParseRecipeMultipleUsesFirst(t *testing.T) {
	raw := []byte(`{
		"recipes": [
			{"craftresource": [{"@uniquename": "T4_ORE", "@count": "2"}]},
			{"craftresource": [{"@uniquename": "T5_ORE", "@count": "1"}]}
		]
	}`)

	r := catalog.ParseRecipe(raw)
	assert.True(t, r.Multiple())

	mats := r.Materials()
	require.Len(t, mats, 1)
	assert.Equal(t, "T4_ORE", mats[0].UniqueName)

	// Alternative recipes stay visible for callers.
	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "T5_ORE", all[1][0].UniqueName)
}

func TestParseRecipeDegenerateShapes(t *testing.T) {
	cases := map[string][]byte{
		"empty payload":       nil,
		"no craftresource":    []byte(`{"@time": "10"}`),
		"empty recipes":       []byte(`{"recipes": []}`),
		"recipe missing list": []byte(`{"recipes": [{"@silver": "0"}]}`),
		"not an object":       []byte(`[1, 2, 3]`),
		"invalid json":        []byte(`{`),
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			r := catalog.ParseRecipe(raw)
			assert.True(t, r.Empty())
			assert.Empty(t, r.Materials())
		})
	}
}

func TestParseRecipeDefaultsAmountToOne(t *testing.T) {
	raw := []byte(`{"craftresource": [{"@uniquename": "T1_STONE"}]}`)

	mats := catalog.ParseRecipe(raw).Materials()
	require.Len(t, mats, 1)
	assert.Equal(t, 1, mats[0].Amount)
}

func TestParseRecipeSkipsUnnamedEntries(t *testing.T) {
	raw := []byte(`{"craftresource": [{"@count": "3"}, {"@uniquename": "T2_WOOD", "@count": "2"}]}`)

	mats := catalog.ParseRecipe(raw).Materials()
	require.Len(t, mats, 1)
	assert.Equal(t, "T2_WOOD", mats[0].UniqueName)
}
