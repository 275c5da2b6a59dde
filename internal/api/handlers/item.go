package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/andref/albion-market/internal/domain"
	"github.com/andref/albion-market/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ItemHandler struct {
	itemService *service.ItemService
}

func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemService.SelectorList(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("item list failed")
		writeEmpty(w)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	idOrName := chi.URLParam(r, "idOrUniqueName")

	detail, err := h.itemService.Detail(r.Context(), idOrName)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("item", idOrName).Msg("item detail failed")
		http.Error(w, "item not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *ItemHandler) Crafting(w http.ResponseWriter, r *http.Request) {
	idOrName := chi.URLParam(r, "idOrUniqueName")

	city := domain.City(r.URL.Query().Get("city"))
	if city == "" {
		city = domain.CityCaerleon
	}
	if !validCity(city) {
		http.Error(w, "unknown city", http.StatusBadRequest)
		return
	}

	quality := domain.QualityNormal
	if raw := r.URL.Query().Get("quality"); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil || !domain.Quality(q).Valid() {
			http.Error(w, "quality must be 1-5", http.StatusBadRequest)
			return
		}
		quality = domain.Quality(q)
	}

	report, ok, err := h.itemService.CraftingReport(r.Context(), idOrName, city, quality)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("item", idOrName).Msg("crafting report failed")
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ItemHandler) Equipment(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.ItemFilter{
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
	}
	if raw := q.Get("tier"); raw != "" {
		tier, err := strconv.Atoi(raw)
		if err != nil || tier < 1 || tier > 8 {
			http.Error(w, "tier must be 1-8", http.StatusBadRequest)
			return
		}
		filter.Tier = tier
	}
	if raw := q.Get("enchantment"); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil || level < 0 || level > 4 {
			http.Error(w, "enchantment must be 0-4", http.StatusBadRequest)
			return
		}
		filter.Enchantment = &level
	}

	groups, err := h.itemService.Equipment(r.Context(), filter)
	if err != nil {
		log.Error().Err(err).Msg("equipment listing failed")
		writeEmpty(w)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func validCity(c domain.City) bool {
	for _, city := range domain.AllCities {
		if c == city {
			return true
		}
	}
	return false
}
