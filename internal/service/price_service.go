package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andref/albion-market/internal/albion"
	"github.com/andref/albion-market/internal/config"
	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/repository"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// QuoteFetcher abstracts the price API client so tests can substitute a
// canned fetcher.
type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, itemIDs []string, filter albion.QuoteFilter) []albion.RawQuote
}

// PriceService fetches quotes from the price API, persists them and serves
// them through a TTL cache. Concurrent requests for the same id set collapse
// into a single upstream call.
type PriceService struct {
	itemRepo  repository.ItemRepository
	priceRepo repository.PriceRepository
	fetcher   QuoteFetcher
	cfg       *config.Config
	cache     *cache.Cache
	group     singleflight.Group
}

func NewPriceService(itemRepo repository.ItemRepository, priceRepo repository.PriceRepository, fetcher QuoteFetcher, cfg *config.Config) *PriceService {
	return &PriceService{
		itemRepo:  itemRepo,
		priceRepo: priceRepo,
		fetcher:   fetcher,
		cfg:       cfg,
		cache:     cache.New(cfg.PriceCacheTTL, 10*time.Minute),
	}
}

// GetPrices returns the normalized quote tree for the given item ids,
// fetching from the API at most once per TTL window per distinct request.
// forceRefresh bypasses the cache but still persists and repopulates it.
func (s *PriceService) GetPrices(ctx context.Context, itemIDs []string, filter albion.QuoteFilter, forceRefresh bool) ([]albion.ItemPrices, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	key := cacheKey(itemIDs, filter)
	if !forceRefresh {
		if v, ok := s.cache.Get(key); ok {
			return v.([]albion.ItemPrices), nil
		}
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		quotes := s.fetcher.FetchQuotes(ctx, itemIDs, filter)
		if _, err := s.persist(ctx, quotes); err != nil {
			return nil, err
		}
		normalized := albion.Normalize(quotes)
		s.cache.SetDefault(key, normalized)
		return normalized, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]albion.ItemPrices), nil
}

// RefreshAll fetches quotes for every item matching the filter, in batches
// with a fixed delay between them so bulk refreshes stay inside the API's
// rate budget. Returns the number of quote rows stored.
func (s *PriceService) RefreshAll(ctx context.Context, filter domain.ItemFilter, batchSize int) (int, error) {
	items, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing items for refresh: %w", err)
	}
	if batchSize <= 0 {
		batchSize = s.cfg.PriceBatchSize
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.UniqueName)
	}

	stored := 0
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		quotes := s.fetcher.FetchQuotes(ctx, ids[start:end], albion.QuoteFilter{})
		n, err := s.persist(ctx, quotes)
		if err != nil {
			return stored, err
		}
		stored += n
		log.Info().Int("batch_start", start).Int("batch_size", end-start).Int("stored", n).Msg("price batch refreshed")

		if end < len(ids) {
			select {
			case <-ctx.Done():
				return stored, ctx.Err()
			case <-time.After(s.cfg.PriceBatchDelay):
			}
		}
	}
	return stored, nil
}

// persist upserts API rows as price records. Rows for ids not present in
// the items table are skipped; the API echoes whatever ids it was asked
// about, known or not.
func (s *PriceService) persist(ctx context.Context, quotes []albion.RawQuote) (int, error) {
	if len(quotes) == 0 {
		return 0, nil
	}

	nameSet := make(map[string]bool)
	names := make([]string, 0)
	for _, q := range quotes {
		if !nameSet[q.ItemID] {
			nameSet[q.ItemID] = true
			names = append(names, q.ItemID)
		}
	}

	items, err := s.itemRepo.GetByUniqueNames(ctx, names)
	if err != nil {
		return 0, fmt.Errorf("resolving quote items: %w", err)
	}
	idByName := make(map[string]uint, len(items))
	for _, it := range items {
		idByName[it.UniqueName] = it.ID
	}

	prices := make([]*domain.ItemPrice, 0, len(quotes))
	for _, q := range quotes {
		itemID, ok := idByName[q.ItemID]
		if !ok {
			continue
		}
		prices = append(prices, &domain.ItemPrice{
			ItemID:           itemID,
			Quality:          domain.Quality(q.Quality),
			City:             domain.City(q.City),
			SellPriceMin:     q.SellPriceMin,
			SellPriceMinDate: albion.ParseQuoteDate(q.SellPriceMinDate),
			SellPriceMax:     q.SellPriceMax,
			SellPriceMaxDate: albion.ParseQuoteDate(q.SellPriceMaxDate),
			BuyPriceMin:      q.BuyPriceMin,
			BuyPriceMinDate:  albion.ParseQuoteDate(q.BuyPriceMinDate),
			BuyPriceMax:      q.BuyPriceMax,
			BuyPriceMaxDate:  albion.ParseQuoteDate(q.BuyPriceMaxDate),
		})
	}

	if err := s.priceRepo.UpsertMany(ctx, prices); err != nil {
		return 0, fmt.Errorf("storing quotes: %w", err)
	}
	return len(prices), nil
}

// cacheKey is order-insensitive over ids: the same id set requested in a
// different order hits the same entry.
func cacheKey(itemIDs []string, filter albion.QuoteFilter) string {
	ids := make([]string, len(itemIDs))
	copy(ids, itemIDs)
	sort.Strings(ids)

	locs := make([]string, len(filter.Locations))
	copy(locs, filter.Locations)
	sort.Strings(locs)

	quals := make([]string, 0, len(filter.Qualities))
	for _, q := range filter.Qualities {
		quals = append(quals, strconv.Itoa(q))
	}
	sort.Strings(quals)

	return strings.Join(ids, ",") + "|" + strings.Join(locs, ",") + "|" + strings.Join(quals, ",")
}
