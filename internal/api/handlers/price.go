package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/andref/albion-market/internal/albion"
	"github.com/andref/albion-market/internal/service"
	"github.com/rs/zerolog/log"
)

type PriceHandler struct {
	priceService *service.PriceService
}

func NewPriceHandler(priceService *service.PriceService) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

type PriceRequest struct {
	Items        []string `json:"items"`
	Locations    []string `json:"locations,omitempty"`
	Qualities    []int    `json:"qualities,omitempty"`
	ForceRefresh bool     `json:"forceRefresh,omitempty"`
}

// Fetch serves quotes for the requested items, hitting the upstream API at
// most once per TTL window. An unreachable upstream degrades to whatever
// made it into the response, usually nothing, with a 200.
func (h *PriceHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		http.Error(w, "items is required", http.StatusBadRequest)
		return
	}

	filter := albion.QuoteFilter{Locations: req.Locations, Qualities: req.Qualities}
	normalized, err := h.priceService.GetPrices(r.Context(), req.Items, filter, req.ForceRefresh)
	if err != nil {
		log.Error().Err(err).Int("items", len(req.Items)).Msg("price fetch failed")
		writeEmpty(w)
		return
	}

	writeJSON(w, http.StatusOK, albion.Flatten(normalized, req.Locations, req.Qualities))
}
