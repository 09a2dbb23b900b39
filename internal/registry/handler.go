package registry

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ccteam/dashboard/internal/models"
)

type RegisterRequest struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type HeartbeatRequest struct {
	Status      *string `json:"status"`
	CurrentTask *string `json:"current_task"`
}

type Handler struct {
	svc *Service
	log *slog.Logger
}

func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// POST /api/agents/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	ag, created, err := h.svc.Register(r.Context(), req.Name, req.Role, req.Status)
	if err != nil {
		h.log.Error("register agent failed", "name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "register agent failed")
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, ag)
}

// POST /api/agents/{id}/heartbeat
func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	var req HeartbeatRequest
	if r.Body != nil {
		// A missing or empty body means "just bump last_active".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	ag, err := h.svc.Heartbeat(r.Context(), id, req.Status, req.CurrentTask)
	if err != nil {
		if errors.Is(err, ErrAgentNotFound) {
			writeError(w, http.StatusNotFound, "agent not found")
			return
		}
		h.log.Error("heartbeat failed", "agent_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "heartbeat failed")
		return
	}
	writeJSON(w, http.StatusOK, ag)
}

// GET /api/agents
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("list agents failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list agents failed")
		return
	}
	if list == nil {
		list = []*models.Agent{}
	}
	writeJSON(w, http.StatusOK, list)
}
