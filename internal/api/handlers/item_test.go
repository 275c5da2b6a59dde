package handlers_test

import (
	"net/http"
	"testing"

	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/market"
	"github.com/andref/albion-market/internal/service"
	"github.com/andref/albion-market/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemEndpoints(t *testing.T) {
	ts := testutil.NewTestServer(t)

	bag := testutil.NewItemBuilder().WithUniqueName("T4_BAG").WithNiceName("Adept's Bag").Build(t, ts.DB.DB)
	leather := testutil.NewItemBuilder().WithUniqueName("T4_LEATHER").AsResource().Build(t, ts.DB.DB)
	testutil.NewItemBuilder().WithUniqueName("T4_SKIN_FOX").Build(t, ts.DB.DB)

	testutil.LinkMaterial(t, ts.DB.DB, bag.ID, leather.ID, 16)
	testutil.CreatePrice(t, ts.DB.DB, bag.ID, domain.CityMartlock, domain.QualityNormal, 300)
	testutil.CreatePrice(t, ts.DB.DB, leather.ID, domain.CityMartlock, domain.QualityNormal, 10)

	t.Run("list filters skins", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/items"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var items []service.SelectorItem
		testutil.AssertJSONResponse(t, resp, &items)
		require.Len(t, items, 2)
		for _, it := range items {
			assert.NotContains(t, it.UniqueName, "SKIN")
		}
	})

	t.Run("detail by unique name", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/items/T4_BAG"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var detail service.ItemDetail
		testutil.AssertJSONResponse(t, resp, &detail)
		require.NotNil(t, detail.Item)
		assert.Equal(t, "T4_BAG", detail.Item.UniqueName)
		require.Len(t, detail.Item.Materials, 1)

		// One sell quote exists, so one crafting report comes back.
		require.Len(t, detail.Crafting, 1)
		assert.Equal(t, int64(160), detail.Crafting[0].MaterialCost)
		assert.Equal(t, int64(140), detail.Crafting[0].Profit)
	})

	t.Run("detail not found", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/items/T4_NOPE"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("crafting report", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/items/T4_BAG/crafting?city=Martlock&quality=1"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var report market.ProfitReport
		testutil.AssertJSONResponse(t, resp, &report)
		assert.Equal(t, "Martlock", report.City)
		assert.Equal(t, int64(160), report.MaterialCost)
		assert.True(t, report.IsProfitable)
	})

	t.Run("crafting rejects bad quality", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/items/T4_BAG/crafting?city=Martlock&quality=9"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("crafting rejects unknown city", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/items/T4_BAG/crafting?city=Atlantis"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func TestMarketEndpoints(t *testing.T) {
	ts := testutil.NewTestServer(t)

	sword := testutil.NewItemBuilder().WithUniqueName("T4_SWORD").Build(t, ts.DB.DB)
	testutil.CreateBuyOrder(t, ts.DB.DB, sword.ID, domain.CityBlackMarket, domain.QualityNormal, 1000)
	testutil.CreatePrice(t, ts.DB.DB, sword.ID, domain.CityCaerleon, domain.QualityNormal, 800)

	ore := testutil.NewItemBuilder().WithUniqueName("T4_ORE").AsResource().Build(t, ts.DB.DB)
	testutil.CreatePrice(t, ts.DB.DB, ore.ID, domain.CityBridgewatch, domain.QualityNormal, 50)
	testutil.CreatePrice(t, ts.DB.DB, ore.ID, domain.CityMartlock, domain.QualityNormal, 70)

	t.Run("black market", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/market/black-market"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var ops []market.Opportunity
		testutil.AssertJSONResponse(t, resp, &ops)
		require.Len(t, ops, 1)
		assert.Equal(t, int64(200), ops[0].Profit)
		assert.InDelta(t, 25.0, ops[0].ProfitPercentage, 0.001)
	})

	t.Run("resources", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/market/resources"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var rows []service.ResourceRow
		testutil.AssertJSONResponse(t, resp, &rows)
		require.Len(t, rows, 1)
		assert.Equal(t, "T4_ORE", rows[0].UniqueName)
		require.NotNil(t, rows[0].Flip)
		assert.Equal(t, int64(20), rows[0].Flip.Profit)
	})
}
