package albion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchQuotes(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"item_id":"T4_BAG","quality":1,"city":"Martlock","sell_price_min":300,"sell_price_min_date":"2025-05-01T10:00:00"},
			{"item_id":"T4_BAG","quality":1,"city":"Caerleon","sell_price_min":0,"sell_price_min_date":"0001-01-01T00:00:00"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second)
	quotes := c.FetchQuotes(context.Background(), []string{"T4_BAG", "T4_CAPE"}, QuoteFilter{
		Locations: []string{"Martlock", "Caerleon"},
		Qualities: []int{1, 2},
	})

	require.Len(t, quotes, 2)
	assert.Equal(t, "T4_BAG", quotes[0].ItemID)
	assert.Equal(t, int64(300), quotes[0].SellPriceMin)

	assert.Equal(t, "/T4_BAG,T4_CAPE", gotPath)
	assert.Contains(t, gotQuery, "locations=Martlock%2CCaerleon")
	assert.Contains(t, gotQuery, "qualities=1%2C2")
}

func TestFetchQuotesNon200ReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second)
	quotes := c.FetchQuotes(context.Background(), []string{"T4_BAG"}, QuoteFilter{})
	assert.Empty(t, quotes)
}

func TestFetchQuotesMalformedBodyReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 10*time.Second)
	quotes := c.FetchQuotes(context.Background(), []string{"T4_BAG"}, QuoteFilter{})
	assert.Empty(t, quotes)
}

func TestFetchQuotesTransportErrorReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, time.Second)
	quotes := c.FetchQuotes(context.Background(), []string{"T4_BAG"}, QuoteFilter{})
	assert.Empty(t, quotes)
}

func TestFetchQuotesEmptyBatch(t *testing.T) {
	c := NewClient("", 10*time.Second)
	assert.Empty(t, c.FetchQuotes(context.Background(), nil, QuoteFilter{}))
}
