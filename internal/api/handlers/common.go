package handlers

import (
	"encoding/json"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeEmpty is the degraded-path response: upstream or lookup trouble on
// list endpoints answers with an empty collection, never a 5xx.
func writeEmpty(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, []any{})
}
