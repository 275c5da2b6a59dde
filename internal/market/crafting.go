// Package market holds the profitability calculators: crafting margins,
// Black Market arbitrage and city-to-city resource flipping. Everything here
// is pure computation over already-loaded price data; persistence and
// fetching live in the service layer.
package market

import (
	"time"

	"github.com/andref/albion-market/internal/domain"
)

// MaterialCost is the cost contribution of one crafting material.
type MaterialCost struct {
	MaterialID uint   `json:"id"`
	UniqueName string `json:"uniquename"`
	NiceName   string `json:"nicename"`
	Amount     int    `json:"amount"`
	UnitPrice  int64  `json:"unit_price"`
	TotalCost  int64  `json:"total_cost"`
	Priced     bool   `json:"priced"`
}

// ProfitReport is the crafting profitability of an item in one city at one
// quality.
type ProfitReport struct {
	City          string         `json:"city"`
	Quality       int            `json:"quality"`
	MaterialCost  int64          `json:"material_cost"`
	Materials     []MaterialCost `json:"material_details"`
	SellPrice     int64          `json:"sell_price"`
	Profit        int64          `json:"profit"`
	ProfitMargin  float64        `json:"profit_margin"`
	IsProfitable  bool           `json:"is_profitable"`
	Indeterminate bool           `json:"indeterminate,omitempty"`
	UpdatedAt     *time.Time     `json:"updated_at"`
}

// CraftingInput is the loaded data a profitability computation needs:
// the item, its material edges (with material items and their prices),
// and the item's own quotes.
type CraftingInput struct {
	Item      *domain.Item
	Materials []domain.ItemMaterial
	Prices    []domain.ItemPrice
}

// Options tunes the missing-data policy.
type Options struct {
	// StrictMaterialCosts marks a report indeterminate when any material
	// has no price quote. The default mirrors the historical behavior of
	// silently skipping unpriced materials, which understates true cost.
	StrictMaterialCosts bool
}

// CraftingProfitability computes material cost, profit and margin for
// crafting the item and selling it in the given city at the given quality.
// Materials are always priced at Normal quality: raw and intermediate
// materials are not traded above quality 1. Items in the resources category
// are themselves evaluated at quality 1 regardless of the requested quality.
//
// Returns ok=false when the item has no materials or no sell quote exists
// for the city/quality — both are normal "nothing to report" cases.
func CraftingProfitability(in CraftingInput, city domain.City, quality domain.Quality, opts Options) (ProfitReport, bool) {
	if len(in.Materials) == 0 {
		return ProfitReport{}, false
	}

	itemQuality := quality
	if in.Item != nil && in.Item.IsResource() {
		itemQuality = domain.QualityNormal
	}

	var totalCost int64
	details := make([]MaterialCost, 0, len(in.Materials))
	indeterminate := false

	for _, edge := range in.Materials {
		if edge.Material == nil {
			continue
		}
		mc := MaterialCost{
			MaterialID: edge.MaterialID,
			UniqueName: edge.Material.UniqueName,
			NiceName:   edge.Material.NiceName,
			Amount:     edge.Amount,
		}

		price, found := findQuote(edge.Material.Prices, city, domain.QualityNormal)
		if !found {
			// Unpriced materials are skipped from the cost sum unless the
			// caller asked for strict accounting.
			if opts.StrictMaterialCosts {
				indeterminate = true
			}
			continue
		}

		mc.UnitPrice = price.SellPriceMin
		mc.TotalCost = price.SellPriceMin * int64(edge.Amount)
		mc.Priced = true
		totalCost += mc.TotalCost
		details = append(details, mc)
	}

	sell, found := findQuote(in.Prices, city, itemQuality)
	if !found || sell.SellPriceMin == 0 {
		return ProfitReport{}, false
	}

	profit := sell.SellPriceMin - totalCost
	margin := 0.0
	if totalCost > 0 {
		margin = float64(profit) / float64(totalCost) * 100
	}

	return ProfitReport{
		City:          string(city),
		Quality:       int(quality),
		MaterialCost:  totalCost,
		Materials:     details,
		SellPrice:     sell.SellPriceMin,
		Profit:        profit,
		ProfitMargin:  margin,
		IsProfitable:  profit > 0,
		Indeterminate: indeterminate,
		UpdatedAt:     sell.SellPriceMinDate,
	}, true
}

func findQuote(prices []domain.ItemPrice, city domain.City, quality domain.Quality) (domain.ItemPrice, bool) {
	for _, p := range prices {
		if p.City == city && p.Quality == quality {
			return p, true
		}
	}
	return domain.ItemPrice{}, false
}
