package activity

import (
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const (
	commitLimit   = 20
	gitLogFormat  = "%h||%an||%s||%aI"
	gitLogTimeout = 5 * time.Second
)

// GitLogSource reads recent commits from the project repository via
// `git log`. Any failure (git missing, not a repository, timeout) yields an
// empty contribution.
type GitLogSource struct {
	log *slog.Logger

	// run executes the bounded git log invocation. Replaced in tests.
	run func(ctx context.Context) (string, error)
}

func NewGitLogSource(projectDir string, log *slog.Logger) *GitLogSource {
	if log == nil {
		log = slog.Default()
	}
	return &GitLogSource{
		log: log,
		run: func(ctx context.Context) (string, error) {
			ctx, cancel := context.WithTimeout(ctx, gitLogTimeout)
			defer cancel()
			cmd := exec.CommandContext(ctx, "git", "log", "--format="+gitLogFormat, "-"+strconv.Itoa(commitLimit))
			cmd.Dir = projectDir
			out, err := cmd.Output()
			return string(out), err
		},
	}
}

func (s *GitLogSource) Events(ctx context.Context) []Event {
	out, err := s.run(ctx)
	if err != nil {
		s.log.Debug("git log unavailable", "error", err)
		return nil
	}
	return parseGitLog(out)
}

// parseGitLog converts `git log --format=%h||%an||%s||%aI` output into
// events. Lines that do not split into exactly four fields are dropped.
func parseGitLog(out string) []Event {
	var events []Event
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "||", 4)
		if len(parts) != 4 {
			continue
		}
		events = append(events, Event{
			Type:      TypeCommit,
			Timestamp: parts[3],
			Agent:     parts[1],
			Message:   parts[0] + " " + parts[2],
		})
		if len(events) == commitLimit {
			break
		}
	}
	return events
}
