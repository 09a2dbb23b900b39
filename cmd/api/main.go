package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/go-github/v66/github"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/ccteam/dashboard/internal/activity"
	"github.com/ccteam/dashboard/internal/config"
	"github.com/ccteam/dashboard/internal/identity"
	"github.com/ccteam/dashboard/internal/issues"
	"github.com/ccteam/dashboard/internal/registry"
	"github.com/ccteam/dashboard/internal/router"
	"github.com/ccteam/dashboard/internal/sanitize"
	"github.com/ccteam/dashboard/internal/slack"
	"github.com/ccteam/dashboard/internal/terminal"
	"github.com/ccteam/dashboard/internal/toggle"
	"github.com/ccteam/dashboard/internal/workingdoc"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// .env is optional; environment variables win.
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Unable to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("Cannot reach PostgreSQL. Ensure Postgres is running and DATABASE_URL is correct", "error", err)
		os.Exit(1)
	}

	// Registry
	repo := registry.NewRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		slog.Error("Failed to ensure agents schema", "error", err)
		os.Exit(1)
	}
	registrySvc := registry.NewService(repo, cfg.HeartbeatTimeout)
	registryHandler := registry.NewHandler(registrySvc, logger)

	// Activity feed
	slackClient := slack.NewClient(cfg.SlackBotToken)
	resolver := identity.NewResolver(slackClient, logger)

	var history activity.ChannelHistory
	if cfg.SlackBotToken != "" {
		history = slackClient
	}
	feedHandler := activity.NewHandler(activity.NewAggregator(
		activity.NewGitLogSource(cfg.ProjectDir, logger),
		activity.NewHeartbeatSource(registrySvc, logger),
		activity.NewMessageSource(cfg.SlackChannels, history, resolver, logger),
	))

	// Issue board
	ghClient := github.NewClient(nil)
	if cfg.GitHubToken != "" {
		ghClient = ghClient.WithAuthToken(cfg.GitHubToken)
	}
	issuesHandler := issues.NewHandler(issues.NewService(ghClient, cfg.GitHubRepos, cfg.IssueRefresh, logger))

	workingHandler := workingdoc.NewHandler(repo, cfg.AgentsBasePath, logger)
	terminalHandler := terminal.NewHandler(sanitize.Redact, logger)
	toggleHandler := toggle.NewHandler(toggle.NewFlag(cfg.HeartbeatFile), logger)

	api := router.New(
		registryHandler,
		feedHandler,
		issuesHandler,
		workingHandler,
		terminalHandler,
		toggleHandler,
		cfg.DashboardAPIKey,
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
	}).Handler(api)

	addr := "0.0.0.0:" + cfg.Port
	slog.Info("Starting HTTP server", "addr", addr)
	if err := http.ListenAndServe(addr, corsHandler); err != nil {
		slog.Error("HTTP server failed", "error", err)
		os.Exit(1)
	}
}
