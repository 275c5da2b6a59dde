package api

import (
	"net/http"

	"github.com/andref/albion-market/internal/api/handlers"
	"github.com/andref/albion-market/internal/api/middleware"
	"github.com/andref/albion-market/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	itemHandler := handlers.NewItemHandler(services.Item)
	priceHandler := handlers.NewPriceHandler(services.Price)
	marketHandler := handlers.NewMarketHandler(services.Market)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemHandler.List)
			r.Get("/{idOrUniqueName}", itemHandler.Get)
			r.Get("/{idOrUniqueName}/crafting", itemHandler.Crafting)
		})

		r.Get("/equipment", itemHandler.Equipment)

		r.Post("/prices", priceHandler.Fetch)

		r.Route("/market", func(r chi.Router) {
			r.Get("/black-market", marketHandler.BlackMarket)
			r.Get("/resources", marketHandler.Resources)
		})
	})

	return r
}
