package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/andref/albion-market/internal/albion"
	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/market"
	"github.com/andref/albion-market/internal/repository"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const selectorCacheKey = "selector-items"

// selectorIgnoreWords excludes cosmetic and promo ids from the picker even
// when they slipped through the import filter.
var selectorIgnoreWords = []string{"UNIQUE", "SKIN"}

// SelectorItem is the lightweight listing entry for item pickers.
type SelectorItem struct {
	ID               uint   `json:"id"`
	UniqueName       string `json:"uniquename"`
	NiceName         string `json:"nicename"`
	Tier             int    `json:"tier"`
	EnchantmentLevel int    `json:"enchantment_level"`
	ShopCategory     string `json:"shop_category"`
	ShopSubcategory1 string `json:"shop_subcategory1"`
}

// ItemDetail is the full item view: the item with prices, stats and
// materials preloaded, plus a crafting report per city and quality where a
// sell quote exists.
type ItemDetail struct {
	Item     *domain.Item          `json:"item"`
	Crafting []market.ProfitReport `json:"crafting"`
}

// EquipmentGroup buckets equipment items under their subcategory.
type EquipmentGroup struct {
	Subcategory string         `json:"subcategory"`
	Items       []*domain.Item `json:"items"`
}

type ItemService struct {
	itemRepo  repository.ItemRepository
	price     *PriceService
	listCache *cache.Cache
}

func NewItemService(itemRepo repository.ItemRepository, price *PriceService) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		price:    price,
		// The catalog changes on game patches, not on market ticks.
		listCache: cache.New(24*time.Hour, time.Hour),
	}
}

// SelectorList returns the filtered item picker list, cached for a day.
func (s *ItemService) SelectorList(ctx context.Context) ([]SelectorItem, error) {
	if v, ok := s.listCache.Get(selectorCacheKey); ok {
		return v.([]SelectorItem), nil
	}

	items, err := s.itemRepo.List(ctx, domain.ItemFilter{})
	if err != nil {
		return nil, err
	}

	entries := make([]SelectorItem, 0, len(items))
	for _, it := range items {
		if containsAny(it.UniqueName, selectorIgnoreWords) {
			continue
		}
		entries = append(entries, SelectorItem{
			ID:               it.ID,
			UniqueName:       it.UniqueName,
			NiceName:         it.NiceName,
			Tier:             it.Tier,
			EnchantmentLevel: it.EnchantmentLevel,
			ShopCategory:     it.ShopCategory,
			ShopSubcategory1: it.ShopSubcategory1,
		})
	}

	s.listCache.SetDefault(selectorCacheKey, entries)
	return entries, nil
}

// Detail resolves an item by numeric id or unique name, refreshes quotes
// for it and its crafting materials, and computes the crafting analysis.
// A failed refresh degrades to whatever quotes are already stored.
func (s *ItemService) Detail(ctx context.Context, idOrUniqueName string) (*ItemDetail, error) {
	item, err := s.resolve(ctx, idOrUniqueName)
	if err != nil {
		return nil, err
	}

	detail, err := s.itemRepo.GetDetail(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	names := []string{detail.UniqueName}
	for _, edge := range detail.Materials {
		if edge.Material != nil {
			names = append(names, edge.Material.UniqueName)
		}
	}
	if _, err := s.price.GetPrices(ctx, names, albion.QuoteFilter{}, false); err != nil {
		log.Warn().Err(err).Str("item", detail.UniqueName).Msg("price refresh failed, serving stored quotes")
	}

	detail, err = s.itemRepo.GetDetail(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	return &ItemDetail{
		Item:     detail,
		Crafting: craftingReports(detail),
	}, nil
}

// CraftingReport computes the profitability of crafting the item and
// selling it in one city at one quality. ok is false when the item has no
// recipe or no sell quote there.
func (s *ItemService) CraftingReport(ctx context.Context, idOrUniqueName string, city domain.City, quality domain.Quality) (market.ProfitReport, bool, error) {
	item, err := s.resolve(ctx, idOrUniqueName)
	if err != nil {
		return market.ProfitReport{}, false, err
	}

	detail, err := s.itemRepo.GetDetail(ctx, item.ID)
	if err != nil {
		return market.ProfitReport{}, false, err
	}

	report, ok := market.CraftingProfitability(craftingInput(detail), city, quality, market.Options{})
	return report, ok, nil
}

// Equipment lists equipment items grouped by subcategory.
func (s *ItemService) Equipment(ctx context.Context, filter domain.ItemFilter) ([]EquipmentGroup, error) {
	items, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	groups := make([]EquipmentGroup, 0)
	index := make(map[string]int)
	for _, it := range items {
		sub := it.ShopSubcategory1
		i, ok := index[sub]
		if !ok {
			i = len(groups)
			index[sub] = i
			groups = append(groups, EquipmentGroup{Subcategory: sub})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups, nil
}

func (s *ItemService) resolve(ctx context.Context, idOrUniqueName string) (*domain.Item, error) {
	if id, err := strconv.ParseUint(idOrUniqueName, 10, 32); err == nil {
		return s.itemRepo.GetByID(ctx, uint(id))
	}
	return s.itemRepo.GetByUniqueName(ctx, idOrUniqueName)
}

func craftingInput(detail *domain.Item) market.CraftingInput {
	return market.CraftingInput{
		Item:      detail,
		Materials: detail.Materials,
		Prices:    detail.Prices,
	}
}

// craftingReports evaluates every city and quality; combinations without a
// sell quote produce no report. Resources only trade at Normal quality.
func craftingReports(detail *domain.Item) []market.ProfitReport {
	qualities := domain.AllQualities
	if detail.IsResource() {
		qualities = []domain.Quality{domain.QualityNormal}
	}

	reports := make([]market.ProfitReport, 0)
	for _, city := range domain.AllCities {
		for _, quality := range qualities {
			if report, ok := market.CraftingProfitability(craftingInput(detail), city, quality, market.Options{}); ok {
				reports = append(reports, report)
			}
		}
	}
	return reports
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
