// Package issues projects the team's open GitHub issues into a small kanban
// board. Results are cached in-process so the dashboard can poll without
// burning API quota.
package issues

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/go-github/v66/github"
)

// Board columns.
const (
	ColumnTodo       = "todo"
	ColumnInProgress = "in-progress"
)

// inProgressLabels are the label names that move a card out of todo.
var inProgressLabels = map[string]bool{
	"in-progress": true,
	"in progress": true,
	"doing":       true,
	"wip":         true,
}

// Card is one kanban entry, a plain projection of a GitHub issue.
type Card struct {
	Repo      string    `json:"repo"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Labels    []string  `json:"labels"`
	Assignee  string    `json:"assignee"`
	URL       string    `json:"url"`
	UpdatedAt time.Time `json:"updated_at"`
	Column    string    `json:"column"`
}

type Service struct {
	repos []string // "owner/name" specs
	ttl   time.Duration
	log   *slog.Logger

	// fetch lists open issues for one repository. Replaced in tests.
	fetch func(ctx context.Context, owner, name string) ([]*github.Issue, error)

	mu        sync.Mutex
	cached    []Card
	fetchedAt time.Time
}

func NewService(client *github.Client, repos []string, ttl time.Duration, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repos: repos,
		ttl:   ttl,
		log:   log,
		fetch: func(ctx context.Context, owner, name string) ([]*github.Issue, error) {
			list, _, err := client.Issues.ListByRepo(ctx, owner, name, &github.IssueListByRepoOptions{
				State:       "open",
				Sort:        "updated",
				ListOptions: github.ListOptions{PerPage: 50},
			})
			return list, err
		},
	}
}

// Board returns the cached card list, refreshing it when the cache is older
// than the refresh interval. A repository that fails to fetch contributes
// nothing; the remaining repositories still appear.
func (s *Service) Board(ctx context.Context) []Card {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.fetchedAt) < s.ttl {
		return s.cached
	}

	cards := make([]Card, 0)
	for _, spec := range s.repos {
		owner, name, ok := strings.Cut(spec, "/")
		if !ok || owner == "" || name == "" {
			s.log.Warn("skipping malformed repo spec", "repo", spec)
			continue
		}
		list, err := s.fetch(ctx, owner, name)
		if err != nil {
			s.log.Debug("issue fetch failed", "repo", spec, "error", err)
			continue
		}
		for _, issue := range list {
			if issue.IsPullRequest() {
				continue
			}
			cards = append(cards, toCard(spec, issue))
		}
	}

	s.cached = cards
	s.fetchedAt = time.Now()
	return cards
}

func toCard(repo string, issue *github.Issue) Card {
	labels := make([]string, 0, len(issue.Labels))
	column := ColumnTodo
	for _, l := range issue.Labels {
		name := l.GetName()
		labels = append(labels, name)
		if inProgressLabels[strings.ToLower(name)] {
			column = ColumnInProgress
		}
	}
	return Card{
		Repo:      repo,
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Labels:    labels,
		Assignee:  issue.GetAssignee().GetLogin(),
		URL:       issue.GetHTMLURL(),
		UpdatedAt: issue.GetUpdatedAt().Time,
		Column:    column,
	}
}
