package toggle

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type Handler struct {
	flag *Flag
	log  *slog.Logger
}

func NewHandler(flag *Flag, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{flag: flag, log: log}
}

func writeActive(w http.ResponseWriter, active bool) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"active": active})
}

// GET /api/heartbeat/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeActive(w, h.flag.Active())
}

// POST /api/heartbeat/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	active, err := h.flag.Toggle()
	if err != nil {
		h.log.Error("heartbeat toggle failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "toggle failed"})
		return
	}
	writeActive(w, active)
}
