package service

import (
	"context"
	"time"

	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/market"
	"github.com/andref/albion-market/internal/repository"
	"github.com/patrickmn/go-cache"
)

const resourceTableCacheKey = "resource-table"

// ResourceRow is one resource in the flipping table: its Normal-quality
// sell price per regular city and the best flip, when one exists.
type ResourceRow struct {
	ID               uint                 `json:"id"`
	UniqueName       string               `json:"uniquename"`
	NiceName         string               `json:"nicename"`
	Tier             int                  `json:"tier"`
	EnchantmentLevel int                  `json:"enchantment_level"`
	CityPrices       map[string]int64     `json:"city_prices"`
	Flip             *market.ResourceFlip `json:"flip,omitempty"`
}

type MarketService struct {
	itemRepo  repository.ItemRepository
	priceRepo repository.PriceRepository
	cache     *cache.Cache
}

func NewMarketService(itemRepo repository.ItemRepository, priceRepo repository.PriceRepository) *MarketService {
	return &MarketService{
		itemRepo:  itemRepo,
		priceRepo: priceRepo,
		cache:     cache.New(5*time.Minute, time.Minute),
	}
}

// BlackMarketOpportunities pairs stored Black Market buy orders against
// city sell quotes. No upstream fetch happens here; the data is whatever
// the refresh job last stored.
func (s *MarketService) BlackMarketOpportunities(ctx context.Context) ([]market.Opportunity, error) {
	orders, err := s.priceRepo.GetBlackMarketBuyOrders(ctx)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []market.Opportunity{}, nil
	}

	idSet := make(map[uint]bool)
	itemIDs := make([]uint, 0, len(orders))
	for _, o := range orders {
		if !idSet[o.ItemID] {
			idSet[o.ItemID] = true
			itemIDs = append(itemIDs, o.ItemID)
		}
	}

	sells, err := s.priceRepo.GetCitySells(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	return market.FindArbitrage(orders, sells), nil
}

// ResourceTable builds the per-city price table for every resource,
// cached briefly since it scans the full resource catalog.
func (s *MarketService) ResourceTable(ctx context.Context) ([]ResourceRow, error) {
	if v, ok := s.cache.Get(resourceTableCacheKey); ok {
		return v.([]ResourceRow), nil
	}

	resources, err := s.itemRepo.List(ctx, domain.ItemFilter{Category: "resources"})
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return []ResourceRow{}, nil
	}

	itemIDs := make([]uint, 0, len(resources))
	for _, r := range resources {
		itemIDs = append(itemIDs, r.ID)
	}
	prices, err := s.priceRepo.GetByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	quotesByItem := make(map[uint][]domain.ItemPrice)
	for _, p := range prices {
		quotesByItem[p.ItemID] = append(quotesByItem[p.ItemID], p)
	}

	rows := make([]ResourceRow, 0, len(resources))
	for _, r := range resources {
		quotes := quotesByItem[r.ID]
		row := ResourceRow{
			ID:               r.ID,
			UniqueName:       r.UniqueName,
			NiceName:         r.NiceName,
			Tier:             r.Tier,
			EnchantmentLevel: r.EnchantmentLevel,
			CityPrices:       make(map[string]int64, len(domain.FlippingCities)),
		}
		for _, q := range quotes {
			if q.Quality == domain.QualityNormal && q.City.Flippable() && q.SellPriceMin > 0 {
				row.CityPrices[string(q.City)] = q.SellPriceMin
			}
		}
		if flip, ok := market.FindResourceFlip(quotes); ok {
			row.Flip = &flip
		}
		rows = append(rows, row)
	}

	s.cache.SetDefault(resourceTableCacheKey, rows)
	return rows, nil
}
