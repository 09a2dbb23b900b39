package activity

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	agg *Aggregator
}

func NewHandler(agg *Aggregator) *Handler {
	return &Handler{agg: agg}
}

// GET /api/activity
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	events := h.agg.Feed(r.Context())
	if events == nil {
		events = []Event{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}
