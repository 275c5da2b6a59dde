package postgres

import (
	"context"

	"github.com/andref/albion-market/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type priceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) *priceRepository {
	return &priceRepository{db: db}
}

// UpsertMany writes quotes keyed by (item_id, quality, city); a refreshed
// quote overwrites the stored row in place.
func (r *priceRepository) UpsertMany(ctx context.Context, prices []*domain.ItemPrice) error {
	if len(prices) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "item_id"}, {Name: "quality"}, {Name: "city"},
		},
		UpdateAll: true,
	}).CreateInBatches(prices, 500).Error
}

func (r *priceRepository) GetByItemID(ctx context.Context, itemID uint) ([]domain.ItemPrice, error) {
	var prices []domain.ItemPrice
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("quality ASC, city ASC").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *priceRepository) GetByItemIDs(ctx context.Context, itemIDs []uint) ([]domain.ItemPrice, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var prices []domain.ItemPrice
	err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

// GetBlackMarketBuyOrders returns Black Market quotes with a live buy order,
// with the item preloaded for display.
func (r *priceRepository) GetBlackMarketBuyOrders(ctx context.Context) ([]domain.ItemPrice, error) {
	var prices []domain.ItemPrice
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("city = ? AND buy_price_min > 0", domain.CityBlackMarket).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

// GetCitySells returns non-Black-Market sell quotes for the given items.
func (r *priceRepository) GetCitySells(ctx context.Context, itemIDs []uint) ([]domain.ItemPrice, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	var prices []domain.ItemPrice
	err := r.db.WithContext(ctx).
		Where("item_id IN ? AND city <> ? AND sell_price_min > 0", itemIDs, domain.CityBlackMarket).
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}
