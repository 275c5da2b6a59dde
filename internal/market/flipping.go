package market

import "github.com/andref/albion-market/internal/domain"

// ResourceFlip is a buy-low-sell-high pair between two regular cities.
type ResourceFlip struct {
	BuyCity          string  `json:"buy_city"`
	BuyPrice         int64   `json:"buy_price"`
	SellCity         string  `json:"sell_city"`
	SellPrice        int64   `json:"sell_price"`
	Profit           int64   `json:"profit"`
	ProfitPercentage float64 `json:"profit_percentage"`
}

// PriceExtremes are the cheapest and dearest sell quotes across cities.
type PriceExtremes struct {
	MinCity  string `json:"min_city"`
	MinPrice int64  `json:"min_price"`
	MaxCity  string `json:"max_city"`
	MaxPrice int64  `json:"max_price"`
}

// SellPriceExtremes scans Normal-quality sell quotes across the flippable
// cities (Black Market and Brecilien excluded) and returns the min and max.
// Quotes without data (price 0) are ignored; ok=false when no city has a
// usable quote. Ties keep the first city encountered.
func SellPriceExtremes(quotes []domain.ItemPrice) (PriceExtremes, bool) {
	var ext PriceExtremes
	found := false
	for _, p := range quotes {
		if p.Quality != domain.QualityNormal || !p.City.Flippable() || p.SellPriceMin <= 0 {
			continue
		}
		if !found {
			ext = PriceExtremes{
				MinCity: string(p.City), MinPrice: p.SellPriceMin,
				MaxCity: string(p.City), MaxPrice: p.SellPriceMin,
			}
			found = true
			continue
		}
		if p.SellPriceMin < ext.MinPrice {
			ext.MinPrice = p.SellPriceMin
			ext.MinCity = string(p.City)
		}
		if p.SellPriceMin > ext.MaxPrice {
			ext.MaxPrice = p.SellPriceMin
			ext.MaxCity = string(p.City)
		}
	}
	return ext, found
}

// FindResourceFlip reports the buy-low-sell-high pair for a resource's
// Normal-quality quotes, when one exists. Resources only trade at quality 1,
// and a flip needs two cities with distinct prices.
func FindResourceFlip(quotes []domain.ItemPrice) (ResourceFlip, bool) {
	ext, ok := SellPriceExtremes(quotes)
	if !ok || ext.MinPrice >= ext.MaxPrice {
		return ResourceFlip{}, false
	}
	profit := ext.MaxPrice - ext.MinPrice
	return ResourceFlip{
		BuyCity:          ext.MinCity,
		BuyPrice:         ext.MinPrice,
		SellCity:         ext.MaxCity,
		SellPrice:        ext.MaxPrice,
		Profit:           profit,
		ProfitPercentage: float64(profit) / float64(ext.MinPrice) * 100,
	}, true
}
