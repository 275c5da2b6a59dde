package market

import (
	"sort"
	"time"

	"github.com/andref/albion-market/internal/domain"
)

// Opportunity is one profitable buy-in-city, sell-to-Black-Market pair.
type Opportunity struct {
	PriceID          uint      `json:"id"`
	ItemID           uint      `json:"item_id"`
	UniqueName       string    `json:"uniquename"`
	NiceName         string    `json:"nicename"`
	Tier             int       `json:"tier"`
	EnchantmentLevel int       `json:"enchantment_level"`
	Quality          int       `json:"quality"`
	City             string    `json:"city"`
	SellPriceMin     int64     `json:"sell_price_min"`
	BuyPriceMin      int64     `json:"buy_price_min"`
	BlackMarketPrice int64     `json:"black_market_price"`
	Profit           int64     `json:"profit"`
	ProfitPercentage float64   `json:"profit_percentage"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FindArbitrage pairs Black Market buy orders against regular-city sell
// quotes at the same quality. An opportunity is buying the item where it
// sells cheapest and delivering it to the Black Market buyer. Only pairs
// with positive profit are reported, sorted descending by profit
// percentage; the sort is stable so equal percentages keep encounter order.
//
// blackMarket rows need Item preloaded; citySells holds the sell quotes of
// the same items across regular cities.
func FindArbitrage(blackMarket []domain.ItemPrice, citySells []domain.ItemPrice) []Opportunity {
	type key struct {
		itemID  uint
		quality domain.Quality
	}
	sellsBy := make(map[key][]domain.ItemPrice)
	for _, p := range citySells {
		if p.City == domain.CityBlackMarket || p.SellPriceMin <= 0 {
			continue
		}
		k := key{p.ItemID, p.Quality}
		sellsBy[k] = append(sellsBy[k], p)
	}

	opportunities := make([]Opportunity, 0)
	for _, bm := range blackMarket {
		if bm.Item == nil || bm.BuyPriceMin <= 0 {
			continue
		}
		for _, cs := range sellsBy[key{bm.ItemID, bm.Quality}] {
			profit := bm.BuyPriceMin - cs.SellPriceMin
			if profit <= 0 {
				continue
			}
			opportunities = append(opportunities, Opportunity{
				PriceID:          cs.ID,
				ItemID:           bm.ItemID,
				UniqueName:       bm.Item.UniqueName,
				NiceName:         bm.Item.NiceName,
				Tier:             bm.Item.Tier,
				EnchantmentLevel: bm.Item.EnchantmentLevel,
				Quality:          int(cs.Quality),
				City:             string(cs.City),
				SellPriceMin:     cs.SellPriceMin,
				BuyPriceMin:      cs.BuyPriceMin,
				BlackMarketPrice: bm.BuyPriceMin,
				Profit:           profit,
				ProfitPercentage: float64(profit) / float64(cs.SellPriceMin) * 100,
				UpdatedAt:        cs.UpdatedAt,
			})
		}
	}

	sort.SliceStable(opportunities, func(i, j int) bool {
		return opportunities[i].ProfitPercentage > opportunities[j].ProfitPercentage
	})
	return opportunities
}
