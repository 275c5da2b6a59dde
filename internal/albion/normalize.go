package albion

import "time"

// CityQuote is a quote within one city after normalization. Zero dates from
// the API become nil.
type CityQuote struct {
	City             string     `json:"city"`
	SellPriceMin     int64      `json:"sell_price_min"`
	SellPriceMinDate *time.Time `json:"sell_price_min_date"`
	SellPriceMax     int64      `json:"sell_price_max"`
	SellPriceMaxDate *time.Time `json:"sell_price_max_date"`
	BuyPriceMin      int64      `json:"buy_price_min"`
	BuyPriceMinDate  *time.Time `json:"buy_price_min_date"`
	BuyPriceMax      int64      `json:"buy_price_max"`
	BuyPriceMaxDate  *time.Time `json:"buy_price_max_date"`
}

// QualityPrices groups city quotes under one quality tier.
type QualityPrices struct {
	Quality int         `json:"quality"`
	Cities  []CityQuote `json:"cities"`
}

// ItemPrices is the normalized quote tree for one item:
// item -> quality -> city.
type ItemPrices struct {
	ItemID    string          `json:"item_id"`
	Qualities []QualityPrices `json:"qualities"`
}

// Normalize reshapes the flat API rows into the nested item -> quality ->
// city structure. Grouping preserves first-appearance order; duplicate
// (item, quality, city) rows resolve last-write-wins.
func Normalize(quotes []RawQuote) []ItemPrices {
	items := make([]ItemPrices, 0)
	itemIdx := make(map[string]int)
	qualityIdx := make(map[string]map[int]int)
	cityIdx := make(map[string]map[int]map[string]int)

	for _, q := range quotes {
		i, ok := itemIdx[q.ItemID]
		if !ok {
			i = len(items)
			itemIdx[q.ItemID] = i
			items = append(items, ItemPrices{ItemID: q.ItemID})
			qualityIdx[q.ItemID] = make(map[int]int)
			cityIdx[q.ItemID] = make(map[int]map[string]int)
		}

		qi, ok := qualityIdx[q.ItemID][q.Quality]
		if !ok {
			qi = len(items[i].Qualities)
			qualityIdx[q.ItemID][q.Quality] = qi
			items[i].Qualities = append(items[i].Qualities, QualityPrices{Quality: q.Quality})
			cityIdx[q.ItemID][q.Quality] = make(map[string]int)
		}

		quote := CityQuote{
			City:             q.City,
			SellPriceMin:     q.SellPriceMin,
			SellPriceMinDate: ParseQuoteDate(q.SellPriceMinDate),
			SellPriceMax:     q.SellPriceMax,
			SellPriceMaxDate: ParseQuoteDate(q.SellPriceMaxDate),
			BuyPriceMin:      q.BuyPriceMin,
			BuyPriceMinDate:  ParseQuoteDate(q.BuyPriceMinDate),
			BuyPriceMax:      q.BuyPriceMax,
			BuyPriceMaxDate:  ParseQuoteDate(q.BuyPriceMaxDate),
		}

		if ci, ok := cityIdx[q.ItemID][q.Quality][q.City]; ok {
			items[i].Qualities[qi].Cities[ci] = quote
		} else {
			cityIdx[q.ItemID][q.Quality][q.City] = len(items[i].Qualities[qi].Cities)
			items[i].Qualities[qi].Cities = append(items[i].Qualities[qi].Cities, quote)
		}
	}
	return items
}

// Flatten inverts Normalize back into flat rows, optionally filtered by
// location and quality. The prices endpoint returns this shape.
func Flatten(items []ItemPrices, locations []string, qualities []int) []RawQuote {
	locSet := make(map[string]bool, len(locations))
	for _, l := range locations {
		locSet[l] = true
	}
	qualSet := make(map[int]bool, len(qualities))
	for _, q := range qualities {
		qualSet[q] = true
	}

	rows := make([]RawQuote, 0)
	for _, item := range items {
		for _, qp := range item.Qualities {
			if len(qualSet) > 0 && !qualSet[qp.Quality] {
				continue
			}
			for _, cq := range qp.Cities {
				if len(locSet) > 0 && !locSet[cq.City] {
					continue
				}
				rows = append(rows, RawQuote{
					ItemID:           item.ItemID,
					Quality:          qp.Quality,
					City:             cq.City,
					SellPriceMin:     cq.SellPriceMin,
					SellPriceMinDate: formatQuoteDate(cq.SellPriceMinDate),
					SellPriceMax:     cq.SellPriceMax,
					SellPriceMaxDate: formatQuoteDate(cq.SellPriceMaxDate),
					BuyPriceMin:      cq.BuyPriceMin,
					BuyPriceMinDate:  formatQuoteDate(cq.BuyPriceMinDate),
					BuyPriceMax:      cq.BuyPriceMax,
					BuyPriceMaxDate:  formatQuoteDate(cq.BuyPriceMaxDate),
				})
			}
		}
	}
	return rows
}

// quoteDateLayout is the API's date format (no zone; timestamps are UTC).
const quoteDateLayout = "2006-01-02T15:04:05"

// ParseQuoteDate maps the API's zero-date sentinel and unparsable values
// to nil.
func ParseQuoteDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(quoteDateLayout, s)
	if err != nil || t.IsZero() {
		return nil
	}
	return &t
}

func formatQuoteDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(quoteDateLayout)
}
