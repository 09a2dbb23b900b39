package router

import (
	"net/http"

	"github.com/ccteam/dashboard/internal/activity"
	"github.com/ccteam/dashboard/internal/issues"
	"github.com/ccteam/dashboard/internal/middleware"
	"github.com/ccteam/dashboard/internal/registry"
	"github.com/ccteam/dashboard/internal/terminal"
	"github.com/ccteam/dashboard/internal/toggle"
	"github.com/ccteam/dashboard/internal/workingdoc"
)

// New returns the dashboard API handler. apiKey guards the privileged
// endpoints; an empty key disables the check.
func New(
	agents *registry.Handler,
	feed *activity.Handler,
	board *issues.Handler,
	working *workingdoc.Handler,
	term *terminal.Handler,
	heartbeat *toggle.Handler,
	apiKey string,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/agents/register", agents.Register)
	mux.HandleFunc("GET /api/agents", agents.List)
	mux.HandleFunc("POST /api/agents/{id}/heartbeat", agents.Heartbeat)
	mux.HandleFunc("GET /api/agents/{id}/working", working.Show)

	// The terminal view answers 401 when the key is missing or wrong; the
	// toggle answers 403.
	mux.Handle("GET /api/agents/{name}/terminal",
		middleware.SharedSecret(apiKey, http.StatusUnauthorized)(http.HandlerFunc(term.Snapshot)))

	mux.HandleFunc("GET /api/activity", feed.Feed)
	mux.HandleFunc("GET /api/issues", board.Board)

	mux.HandleFunc("GET /api/heartbeat/status", heartbeat.Status)
	mux.Handle("POST /api/heartbeat/toggle",
		middleware.SharedSecret(apiKey, http.StatusForbidden)(http.HandlerFunc(heartbeat.Toggle)))

	return mux
}
