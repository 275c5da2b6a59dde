package service

import (
	"github.com/andref/albion-market/internal/albion"
	"github.com/andref/albion-market/internal/config"
	"github.com/andref/albion-market/internal/repository"
)

type Services struct {
	Item   *ItemService
	Price  *PriceService
	Market *MarketService
	Import *ImportService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	client := albion.NewClient(cfg.AlbionAPIBaseURL, cfg.PriceFetchTimeout)
	price := NewPriceService(repos.Item, repos.Price, client, cfg)
	return &Services{
		Item:   NewItemService(repos.Item, price),
		Price:  price,
		Market: NewMarketService(repos.Item, repos.Price),
		Import: NewImportService(repos.Item, repos.Stat, repos.Material),
	}
}
