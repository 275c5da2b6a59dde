package repository

import (
	"context"

	"github.com/andref/albion-market/internal/domain"
)

type ItemRepository interface {
	Upsert(ctx context.Context, item *domain.Item) error
	UpsertMany(ctx context.Context, items []*domain.Item) error
	GetByID(ctx context.Context, id uint) (*domain.Item, error)
	GetByUniqueName(ctx context.Context, uniqueName string) (*domain.Item, error)
	GetByUniqueNames(ctx context.Context, uniqueNames []string) ([]*domain.Item, error)
	GetDetail(ctx context.Context, id uint) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]*domain.Item, error)
	ListCategories(ctx context.Context) ([]string, error)
}

type PriceRepository interface {
	UpsertMany(ctx context.Context, prices []*domain.ItemPrice) error
	GetByItemID(ctx context.Context, itemID uint) ([]domain.ItemPrice, error)
	GetByItemIDs(ctx context.Context, itemIDs []uint) ([]domain.ItemPrice, error)
	GetBlackMarketBuyOrders(ctx context.Context) ([]domain.ItemPrice, error)
	GetCitySells(ctx context.Context, itemIDs []uint) ([]domain.ItemPrice, error)
}

type MaterialRepository interface {
	ReplaceForItem(ctx context.Context, itemID uint, materials []*domain.ItemMaterial) error
	GetForItem(ctx context.Context, itemID uint) ([]domain.ItemMaterial, error)
}

type StatRepository interface {
	Upsert(ctx context.Context, stat *domain.ItemStat) error
	GetByItemID(ctx context.Context, itemID uint) (*domain.ItemStat, error)
}

type Repositories struct {
	Item     ItemRepository
	Price    PriceRepository
	Material MaterialRepository
	Stat     StatRepository
}
