package market_test

import (
	"testing"

	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sellQuote(city domain.City, quality domain.Quality, sellMin int64) domain.ItemPrice {
	return domain.ItemPrice{City: city, Quality: quality, SellPriceMin: sellMin}
}

func materialEdge(id uint, name string, amount int, prices ...domain.ItemPrice) domain.ItemMaterial {
	return domain.ItemMaterial{
		MaterialID: id,
		Amount:     amount,
		Material: &domain.Item{
			ID:           id,
			UniqueName:   name,
			ShopCategory: "resources",
			Prices:       prices,
		},
	}
}

func TestCraftingProfitabilityScenario(t *testing.T) {
	// T4_BAG: 16 x T4_LEATHER @ 10 + 8 x T4_CLOTH @ 5 = 200; sells for 300.
	in := market.CraftingInput{
		Item: &domain.Item{ID: 1, UniqueName: "T4_BAG", ShopCategory: "accessories"},
		Materials: []domain.ItemMaterial{
			materialEdge(2, "T4_LEATHER", 16, sellQuote(domain.CityMartlock, domain.QualityNormal, 10)),
			materialEdge(3, "T4_CLOTH", 8, sellQuote(domain.CityMartlock, domain.QualityNormal, 5)),
		},
		Prices: []domain.ItemPrice{sellQuote(domain.CityMartlock, domain.QualityNormal, 300)},
	}

	report, ok := market.CraftingProfitability(in, domain.CityMartlock, domain.QualityNormal, market.Options{})
	require.True(t, ok)
	assert.Equal(t, int64(200), report.MaterialCost)
	assert.Equal(t, int64(300), report.SellPrice)
	assert.Equal(t, int64(100), report.Profit)
	assert.InDelta(t, 50.0, report.ProfitMargin, 0.001)
	assert.True(t, report.IsProfitable)
	require.Len(t, report.Materials, 2)
	assert.Equal(t, int64(160), report.Materials[0].TotalCost)
	assert.Equal(t, int64(40), report.Materials[1].TotalCost)
}

func TestCraftingProfitabilitySign(t *testing.T) {
	build := func(cost, sell int64) (market.ProfitReport, bool) {
		in := market.CraftingInput{
			Item: &domain.Item{UniqueName: "T4_BAG"},
			Materials: []domain.ItemMaterial{
				materialEdge(2, "T4_LEATHER", 1, sellQuote(domain.CityMartlock, domain.QualityNormal, cost)),
			},
			Prices: []domain.ItemPrice{sellQuote(domain.CityMartlock, domain.QualityNormal, sell)},
		}
		return market.CraftingProfitability(in, domain.CityMartlock, domain.QualityNormal, market.Options{})
	}

	report, ok := build(200, 150)
	require.True(t, ok)
	assert.False(t, report.IsProfitable)
	assert.Equal(t, int64(-50), report.Profit)
	assert.InDelta(t, -25.0, report.ProfitMargin, 0.001)

	report, ok = build(0, 150)
	require.True(t, ok)
	// Zero material cost: margin pinned to 0 rather than dividing by zero.
	assert.Equal(t, 0.0, report.ProfitMargin)
	assert.True(t, report.IsProfitable)
}

func TestCraftingProfitabilityNoMaterials(t *testing.T) {
	in := market.CraftingInput{
		Item:   &domain.Item{UniqueName: "T4_BAG"},
		Prices: []domain.ItemPrice{sellQuote(domain.CityMartlock, domain.QualityNormal, 300)},
	}

	_, ok := market.CraftingProfitability(in, domain.CityMartlock, domain.QualityNormal, market.Options{})
	assert.False(t, ok)
}

func TestCraftingProfitabilityNoSellQuote(t *testing.T) {
	in := market.CraftingInput{
		Item: &domain.Item{UniqueName: "T4_BAG"},
		Materials: []domain.ItemMaterial{
			materialEdge(2, "T4_LEATHER", 1, sellQuote(domain.CityMartlock, domain.QualityNormal, 10)),
		},
	}

	_, ok := market.CraftingProfitability(in, domain.CityMartlock, domain.QualityNormal, market.Options{})
	assert.False(t, ok)

	// A quote with sell_price_min 0 is "no data", not a free item.
	in.Prices = []domain.ItemPrice{sellQuote(domain.CityMartlock, domain.QualityNormal, 0)}
	_, ok = market.CraftingProfitability(in, domain.CityMartlock, domain.QualityNormal, market.Options{})
	assert.False(t, ok)
}

func TestCraftingProfitabilityMissingMaterialPrice(t *testing.T) {
	in := market.CraftingInput{
		Item: &domain.Item{UniqueName: "T4_BAG"},
		Materials: []domain.ItemMaterial{
			materialEdge(2, "T4_LEATHER", 16, sellQuote(domain.CityMartlock, domain.QualityNormal, 10)),
			materialEdge(3, "T4_CLOTH", 8), // no quote anywhere
		},
		Prices: []domain.ItemPrice{sellQuote(domain.CityMartlock, domain.QualityNormal, 300)},
	}

	// Default policy: the unpriced material is skipped from the cost sum.
	report, ok := market.CraftingProfitability(in, domain.CityMartlock, domain.QualityNormal, market.Options{})
	require.True(t, ok)
	assert.Equal(t, int64(160), report.MaterialCost)
	assert.False(t, report.Indeterminate)
	assert.Len(t, report.Materials, 1)

	// Strict policy: same numbers, but the report is flagged indeterminate.
	report, ok = market.CraftingProfitability(in, domain.CityMartlock, domain.QualityNormal, market.Options{StrictMaterialCosts: true})
	require.True(t, ok)
	assert.True(t, report.Indeterminate)
}

func TestCraftingProfitabilityMaterialsPricedAtNormal(t *testing.T) {
	// The finished item is Excellent, the material quote is Normal only;
	// material cost must still come from the Normal quote.
	in := market.CraftingInput{
		Item: &domain.Item{UniqueName: "T4_BAG"},
		Materials: []domain.ItemMaterial{
			materialEdge(2, "T4_LEATHER", 2,
				sellQuote(domain.CityMartlock, domain.QualityNormal, 10),
				sellQuote(domain.CityMartlock, domain.QualityExcellent, 99)),
		},
		Prices: []domain.ItemPrice{sellQuote(domain.CityMartlock, domain.QualityExcellent, 100)},
	}

	report, ok := market.CraftingProfitability(in, domain.CityMartlock, domain.QualityExcellent, market.Options{})
	require.True(t, ok)
	assert.Equal(t, int64(20), report.MaterialCost)
}

func TestCraftingProfitabilityResourceForcedToNormal(t *testing.T) {
	// Resources are evaluated at quality 1 regardless of the requested
	// quality; only a Normal quote exists, so the lookup must still hit.
	in := market.CraftingInput{
		Item: &domain.Item{UniqueName: "T4_PLANKS", ShopCategory: "resources"},
		Materials: []domain.ItemMaterial{
			materialEdge(2, "T4_WOOD", 2, sellQuote(domain.CityMartlock, domain.QualityNormal, 10)),
		},
		Prices: []domain.ItemPrice{sellQuote(domain.CityMartlock, domain.QualityNormal, 50)},
	}

	report, ok := market.CraftingProfitability(in, domain.CityMartlock, domain.QualityMasterpiece, market.Options{})
	require.True(t, ok)
	assert.Equal(t, int64(50), report.SellPrice)
}
