// Command importer loads the game's item and stats dumps into the database,
// resolves crafting recipes and optionally refreshes market prices in bulk.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/andref/albion-market/internal/catalog"
	"github.com/andref/albion-market/internal/config"
	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/repository/postgres"
	"github.com/andref/albion-market/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	itemsFile := flag.String("items-file", "", "path to the flat item dump (JSON)")
	statsFile := flag.String("stats-file", "", "path to the nested stats dump (JSON)")
	processCrafting := flag.Bool("process-crafting", false, "resolve recipes into material edges")
	refreshPrices := flag.Bool("refresh-prices", false, "fetch market prices for stored items")
	category := flag.String("category", "", "limit the price refresh to one shop category")
	tier := flag.Int("tier", 0, "limit the price refresh to one tier")
	batchSize := flag.Int("batch-size", 0, "ids per price API request (default from config)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	repos := postgres.NewRepositories(db)
	services := service.NewServices(repos, cfg)
	ctx := context.Background()

	if *itemsFile != "" {
		f, err := os.Open(*itemsFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", *itemsFile).Msg("opening item dump failed")
		}
		n, err := services.Import.ImportItems(ctx, f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("item import failed")
		}
		log.Info().Int("items", n).Msg("item dump imported")
	}

	if *statsFile != "" {
		f, err := os.Open(*statsFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", *statsFile).Msg("opening stats dump failed")
		}
		cat, err := catalog.Load(f)
		f.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("parsing stats dump failed")
		}
		n, err := services.Import.ImportStats(ctx, cat)
		if err != nil {
			log.Fatal().Err(err).Msg("stats import failed")
		}
		log.Info().Int("resolved", n).Msg("stats imported")
	}

	if *processCrafting {
		n, err := services.Import.ProcessCrafting(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("crafting processing failed")
		}
		log.Info().Int("items", n).Msg("recipes resolved")
	}

	if *refreshPrices {
		filter := domain.ItemFilter{Category: *category, Tier: *tier}
		n, err := services.Price.RefreshAll(ctx, filter, *batchSize)
		if err != nil {
			log.Fatal().Err(err).Msg("price refresh failed")
		}
		log.Info().Int("quotes", n).Msg("prices refreshed")
	}

	if *itemsFile == "" && *statsFile == "" && !*processCrafting && !*refreshPrices {
		flag.Usage()
		os.Exit(2)
	}
}
