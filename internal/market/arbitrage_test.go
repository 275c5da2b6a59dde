package market_test

import (
	"testing"

	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bmOrder(item *domain.Item, quality domain.Quality, buyMin int64) domain.ItemPrice {
	return domain.ItemPrice{
		ItemID:      item.ID,
		Item:        item,
		City:        domain.CityBlackMarket,
		Quality:     quality,
		BuyPriceMin: buyMin,
	}
}

func citySell(itemID uint, city domain.City, quality domain.Quality, sellMin int64) domain.ItemPrice {
	return domain.ItemPrice{ItemID: itemID, City: city, Quality: quality, SellPriceMin: sellMin}
}

func TestFindArbitrageScenario(t *testing.T) {
	// Black Market pays 1000, Caerleon sells for 800: 200 profit, 25%.
	sword := &domain.Item{ID: 1, UniqueName: "T4_SWORD", NiceName: "Broadsword", Tier: 4}

	ops := market.FindArbitrage(
		[]domain.ItemPrice{bmOrder(sword, domain.QualityNormal, 1000)},
		[]domain.ItemPrice{citySell(1, domain.CityCaerleon, domain.QualityNormal, 800)},
	)

	require.Len(t, ops, 1)
	assert.Equal(t, "T4_SWORD", ops[0].UniqueName)
	assert.Equal(t, string(domain.CityCaerleon), ops[0].City)
	assert.Equal(t, int64(800), ops[0].SellPriceMin)
	assert.Equal(t, int64(1000), ops[0].BlackMarketPrice)
	assert.Equal(t, int64(200), ops[0].Profit)
	assert.InDelta(t, 25.0, ops[0].ProfitPercentage, 0.001)
}

func TestFindArbitrageFiltersNonPositive(t *testing.T) {
	sword := &domain.Item{ID: 1, UniqueName: "T4_SWORD"}

	ops := market.FindArbitrage(
		[]domain.ItemPrice{bmOrder(sword, domain.QualityNormal, 500)},
		[]domain.ItemPrice{
			citySell(1, domain.CityCaerleon, domain.QualityNormal, 500), // break-even
			citySell(1, domain.CityMartlock, domain.QualityNormal, 600), // loss
			citySell(1, domain.CityLymhurst, domain.QualityNormal, 0),   // no data
		},
	)
	assert.Empty(t, ops)

	// A Black Market row without a buy order produces nothing either.
	ops = market.FindArbitrage(
		[]domain.ItemPrice{bmOrder(sword, domain.QualityNormal, 0)},
		[]domain.ItemPrice{citySell(1, domain.CityCaerleon, domain.QualityNormal, 100)},
	)
	assert.Empty(t, ops)
}

func TestFindArbitrageMatchesQuality(t *testing.T) {
	sword := &domain.Item{ID: 1, UniqueName: "T4_SWORD"}

	// The Black Market order is for Excellent quality; the only city quote
	// is Normal, so no pair forms.
	ops := market.FindArbitrage(
		[]domain.ItemPrice{bmOrder(sword, domain.QualityExcellent, 1000)},
		[]domain.ItemPrice{citySell(1, domain.CityCaerleon, domain.QualityNormal, 200)},
	)
	assert.Empty(t, ops)
}

func TestFindArbitrageIgnoresBlackMarketSells(t *testing.T) {
	sword := &domain.Item{ID: 1, UniqueName: "T4_SWORD"}

	// A Black Market sell quote must never appear as the buy side of a pair.
	ops := market.FindArbitrage(
		[]domain.ItemPrice{bmOrder(sword, domain.QualityNormal, 1000)},
		[]domain.ItemPrice{citySell(1, domain.CityBlackMarket, domain.QualityNormal, 100)},
	)
	assert.Empty(t, ops)
}

func TestFindArbitrageSortsByPercentageDesc(t *testing.T) {
	sword := &domain.Item{ID: 1, UniqueName: "T4_SWORD"}
	bow := &domain.Item{ID: 2, UniqueName: "T4_BOW"}

	ops := market.FindArbitrage(
		[]domain.ItemPrice{
			bmOrder(sword, domain.QualityNormal, 1000),
			bmOrder(bow, domain.QualityNormal, 1000),
		},
		[]domain.ItemPrice{
			citySell(1, domain.CityCaerleon, domain.QualityNormal, 900), // 11.1%
			citySell(2, domain.CityMartlock, domain.QualityNormal, 500), // 100%
			citySell(1, domain.CityLymhurst, domain.QualityNormal, 800), // 25%
		},
	)

	require.Len(t, ops, 3)
	assert.Equal(t, "T4_BOW", ops[0].UniqueName)
	assert.Equal(t, string(domain.CityLymhurst), ops[1].City)
	assert.Equal(t, string(domain.CityCaerleon), ops[2].City)
	assert.True(t, ops[0].ProfitPercentage >= ops[1].ProfitPercentage)
	assert.True(t, ops[1].ProfitPercentage >= ops[2].ProfitPercentage)
}
