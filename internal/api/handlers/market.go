package handlers

import (
	"net/http"

	"github.com/andref/albion-market/internal/service"
	"github.com/rs/zerolog/log"
)

type MarketHandler struct {
	marketService *service.MarketService
}

func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

func (h *MarketHandler) BlackMarket(w http.ResponseWriter, r *http.Request) {
	opportunities, err := h.marketService.BlackMarketOpportunities(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("black market scan failed")
		writeEmpty(w)
		return
	}
	writeJSON(w, http.StatusOK, opportunities)
}

func (h *MarketHandler) Resources(w http.ResponseWriter, r *http.Request) {
	rows, err := h.marketService.ResourceTable(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("resource table failed")
		writeEmpty(w)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
