// Package activity builds the aggregated team activity feed from git
// history, agent heartbeats, and Slack messages. Each source is fail-soft:
// a broken collaborator contributes nothing instead of failing the feed.
package activity

import (
	"context"
	"sort"
)

// Event types in the feed.
const (
	TypeCommit    = "commit"
	TypeHeartbeat = "heartbeat"
	TypeMessage   = "message"
)

// feedLimit caps the aggregated feed.
const feedLimit = 20

// Event is one normalized feed entry. Timestamp is an ISO-8601 string so
// lexicographic comparison is chronological comparison; it is empty when the
// source timestamp could not be parsed, which sorts such events last.
type Event struct {
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Agent     string `json:"agent"`
	Message   string `json:"message"`
}

// Source produces the events one collaborator contributes to the feed.
// Implementations never fail; they log and return what they have.
type Source interface {
	Events(ctx context.Context) []Event
}

// Aggregator merges all sources into one ordered, capped feed.
type Aggregator struct {
	sources []Source
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{sources: sources}
}

// Feed collects events from every source, sorts them newest first, and
// truncates to the feed limit.
func (a *Aggregator) Feed(ctx context.Context) []Event {
	var events []Event
	for _, src := range a.sources {
		events = append(events, src.Events(ctx)...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp > events[j].Timestamp
	})

	if len(events) > feedLimit {
		events = events[:feedLimit]
	}
	return events
}
