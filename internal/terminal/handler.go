// Package terminal serves read-only snapshots of agent tmux sessions. The
// capture output passes through the redactor before leaving the process.
package terminal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os/exec"
	"regexp"
	"time"
)

const captureTimeout = 5 * time.Second

var (
	ErrToolMissing = errors.New("tmux is not installed")
	ErrTimeout     = errors.New("tmux command timed out")
	ErrNoSession   = errors.New("tmux session not found")
)

// sessionNameRe rejects anything that could smuggle flags or path segments
// into the tmux invocation.
var sessionNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Redactor masks credential-shaped substrings. Satisfied by sanitize.Redact.
type Redactor func(string) string

type Handler struct {
	redact Redactor
	log    *slog.Logger

	// capture grabs the last 30 lines of the named tmux session. Replaced
	// in tests.
	capture func(ctx context.Context, session string) (string, error)
}

func NewHandler(redact Redactor, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		redact:  redact,
		log:     log,
		capture: capturePane,
	}
}

func capturePane(ctx context.Context, session string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, captureTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "tmux", "capture-pane", "-p", "-t", session, "-S", "-30")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	switch {
	case err == nil:
		return stdout.String(), nil
	case errors.Is(err, exec.ErrNotFound):
		return "", ErrToolMissing
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "", ErrTimeout
	default:
		// Non-zero exit: tmux reports an unknown session on stderr.
		return "", errors.Join(ErrNoSession, errors.New(stderr.String()))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// GET /api/agents/{name}/terminal
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !sessionNameRe.MatchString(name) {
		writeError(w, http.StatusBadRequest, "invalid agent name")
		return
	}

	out, err := h.capture(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, ErrToolMissing):
			writeError(w, http.StatusInternalServerError, ErrToolMissing.Error())
		case errors.Is(err, ErrTimeout):
			writeError(w, http.StatusInternalServerError, ErrTimeout.Error())
		default:
			writeError(w, http.StatusNotFound, ErrNoSession.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"name":   name,
		"output": h.redact(out),
	})
}
