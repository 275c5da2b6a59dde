// Package albion wraps the public Albion Online Data price API.
package albion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://west.albion-online-data.com/api/v2/stats/prices/"

// RawQuote is one row of the price API response: one item at one quality in
// one city. Dates use the API's zero sentinel ("0001-01-01T00:00:00") for
// "no data".
type RawQuote struct {
	ItemID           string `json:"item_id"`
	Quality          int    `json:"quality"`
	City             string `json:"city"`
	SellPriceMin     int64  `json:"sell_price_min"`
	SellPriceMinDate string `json:"sell_price_min_date"`
	SellPriceMax     int64  `json:"sell_price_max"`
	SellPriceMaxDate string `json:"sell_price_max_date"`
	BuyPriceMin      int64  `json:"buy_price_min"`
	BuyPriceMinDate  string `json:"buy_price_min_date"`
	BuyPriceMax      int64  `json:"buy_price_max"`
	BuyPriceMaxDate  string `json:"buy_price_max_date"`
}

// QuoteFilter narrows a price request server-side.
type QuoteFilter struct {
	Locations []string
	Qualities []int
}

// Client is the price API client. Price availability is best effort: any
// transport error, non-200 status or malformed body degrades to an empty
// result with a logged warning, never an error to the caller. Stale or
// missing prices are a steady-state condition here, not a fault.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a price API client. The timeout bounds the whole
// request; there is no retry — a failed batch is simply retried on the
// caller's own cadence.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// FetchQuotes requests quotes for a batch of item ids in a single call.
// Callers chunk large id lists themselves; the API caps URL length well
// above the 100-id batches the refresh job uses.
func (c *Client) FetchQuotes(ctx context.Context, itemIDs []string, filter QuoteFilter) []RawQuote {
	if len(itemIDs) == 0 {
		return nil
	}

	reqURL := c.baseURL + url.PathEscape(strings.Join(itemIDs, ","))
	if q := filter.query(); q != "" {
		reqURL += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		log.Warn().Err(err).Msg("albion: building price request failed")
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Int("items", len(itemIDs)).Msg("albion: price request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Int("items", len(itemIDs)).Msg("albion: price API returned non-200")
		return nil
	}

	var quotes []RawQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		log.Warn().Err(err).Msg("albion: decoding price response failed")
		return nil
	}
	return quotes
}

func (f QuoteFilter) query() string {
	v := url.Values{}
	if len(f.Locations) > 0 {
		v.Set("locations", strings.Join(f.Locations, ","))
	}
	if len(f.Qualities) > 0 {
		qs := make([]string, len(f.Qualities))
		for i, q := range f.Qualities {
			qs[i] = strconv.Itoa(q)
		}
		v.Set("qualities", strings.Join(qs, ","))
	}
	return v.Encode()
}
