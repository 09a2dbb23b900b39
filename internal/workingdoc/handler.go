// Package workingdoc serves each agent's WORKING.md status file, rendered to
// HTML. The rendered output is sanitized so a compromised agent cannot plant
// script in the dashboard.
package workingdoc

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ccteam/dashboard/internal/models"
)

// AgentGetter resolves an agent id to its record. Implemented by
// registry.Repository.
type AgentGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error)
}

type Handler struct {
	agents   AgentGetter
	basePath string
	md       goldmark.Markdown
	policy   *bluemonday.Policy
	log      *slog.Logger
}

func NewHandler(agents AgentGetter, basePath string, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		agents:   agents,
		basePath: basePath,
		// Raw HTML passes through the renderer and is stripped by the
		// sanitizer afterwards, mirroring the render-then-clean pipeline.
		md:     goldmark.New(goldmark.WithRendererOptions(html.WithUnsafe())),
		policy: bluemonday.UGCPolicy(),
		log:    log,
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// GET /api/agents/{id}/working
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent id")
		return
	}

	ag, err := h.agents.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error("working doc: agent lookup failed", "agent_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "agent lookup failed")
		return
	}
	if ag == nil {
		writeError(w, http.StatusNotFound, "agent not found")
		return
	}

	path := filepath.Join(h.basePath, strings.ToLower(ag.Name), "WORKING.md")
	content, err := os.ReadFile(path)
	if err != nil {
		writeError(w, http.StatusNotFound, "WORKING.md not found")
		return
	}

	var buf bytes.Buffer
	if err := h.md.Convert(content, &buf); err != nil {
		h.log.Error("working doc: markdown render failed", "agent_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"agent_name":   ag.Name,
		"content":      string(content),
		"content_html": h.policy.Sanitize(buf.String()),
	})
}
