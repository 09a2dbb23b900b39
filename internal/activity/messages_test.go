package activity

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ccteam/dashboard/internal/identity"
	"github.com/ccteam/dashboard/internal/sanitize"
	"github.com/ccteam/dashboard/internal/slack"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubHistory struct {
	byChannel map[string][]slack.Message
	errFor    map[string]error
}

func (s *stubHistory) ConversationsHistory(_ context.Context, channelID string, _ int) ([]slack.Message, error) {
	if err := s.errFor[channelID]; err != nil {
		return nil, err
	}
	return s.byChannel[channelID], nil
}

type stubDirectory struct {
	names map[string]string
	calls int
}

func (s *stubDirectory) LookupUser(_ context.Context, handle string) (string, string, error) {
	s.calls++
	if name, ok := s.names[handle]; ok {
		return name, "", nil
	}
	return "", "", errors.New("user_not_found")
}

func newMessageSource(history ChannelHistory, dir identity.DirectoryClient, channels ...string) *MessageSource {
	return NewMessageSource(channels, history, identity.NewResolver(dir, nil), nil)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestMessageSourceBasicEvent(t *testing.T) {
	history := &stubHistory{byChannel: map[string][]slack.Message{
		"C0AC7G548CV": {{Handle: "U1", Text: "shipping the fix", TS: "1748772000.000000"}},
	}}
	dir := &stubDirectory{names: map[string]string{"U1": "kat"}}

	events := newMessageSource(history, dir, "C0AC7G548CV").Events(context.Background())
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Type != TypeMessage || ev.Agent != "kat" || ev.Message != "shipping the fix" {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Timestamp == "" {
		t.Fatal("expected a parsed timestamp")
	}
}

func TestMessageSourceNoHandleUsesUnknown(t *testing.T) {
	history := &stubHistory{byChannel: map[string][]slack.Message{
		"C0X": {{Text: "anonymous webhook post", TS: "1748772000.5"}},
	}}
	dir := &stubDirectory{}

	events := newMessageSource(history, dir, "C0X").Events(context.Background())
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Agent != "unknown" {
		t.Fatalf("agent = %q, want unknown", events[0].Agent)
	}
	if dir.calls != 0 {
		t.Fatalf("directory must not be queried without a handle, got %d calls", dir.calls)
	}
}

func TestMessageSourceRelayBotInference(t *testing.T) {
	history := &stubHistory{byChannel: map[string][]slack.Message{
		"C0AC7G548CV": {{Handle: "B9", Text: "status update", TS: "1748772000.0", BotName: identity.RelayBotName}},
	}}
	// Lookup fails, so the resolver falls back to the bot profile name,
	// which inference then maps via the channel table.
	dir := &stubDirectory{}

	events := newMessageSource(history, dir, "C0AC7G548CV").Events(context.Background())
	if events[0].Agent != "Kat" {
		t.Fatalf("agent = %q, want Kat", events[0].Agent)
	}
}

func TestMessageSourceTruncatesTo200(t *testing.T) {
	long := strings.Repeat("x", 450)
	history := &stubHistory{byChannel: map[string][]slack.Message{
		"C0X": {{Handle: "U1", Text: long, TS: "1748772000.0"}},
	}}
	dir := &stubDirectory{names: map[string]string{"U1": "sam"}}

	events := newMessageSource(history, dir, "C0X").Events(context.Background())
	if got := len([]rune(events[0].Message)); got != 200 {
		t.Fatalf("message length = %d, want 200", got)
	}
}

func TestMessageSourceRedactsText(t *testing.T) {
	history := &stubHistory{byChannel: map[string][]slack.Message{
		"C0X": {{Handle: "U1", Text: "token is xoxb-1234-abcd", TS: "1748772000.0"}},
	}}
	dir := &stubDirectory{names: map[string]string{"U1": "sam"}}

	events := newMessageSource(history, dir, "C0X").Events(context.Background())
	if strings.Contains(events[0].Message, "xoxb-") {
		t.Fatalf("token survived redaction: %q", events[0].Message)
	}
	if !strings.Contains(events[0].Message, sanitize.Marker) {
		t.Fatalf("expected redaction marker: %q", events[0].Message)
	}
}

func TestMessageSourceUnparseableTimestamp(t *testing.T) {
	history := &stubHistory{byChannel: map[string][]slack.Message{
		"C0X": {{Handle: "U1", Text: "hello", TS: "not-a-number"}},
	}}
	dir := &stubDirectory{names: map[string]string{"U1": "sam"}}

	events := newMessageSource(history, dir, "C0X").Events(context.Background())
	if len(events) != 1 {
		t.Fatalf("event must still be included, got %d", len(events))
	}
	if events[0].Timestamp != "" {
		t.Fatalf("timestamp = %q, want empty", events[0].Timestamp)
	}
}

func TestMessageSourceChannelFailureIsIsolated(t *testing.T) {
	history := &stubHistory{
		byChannel: map[string][]slack.Message{
			"C0GOOD": {{Handle: "U1", Text: "still here", TS: "1748772000.0"}},
		},
		errFor: map[string]error{"C0BAD": errors.New("channel_not_found")},
	}
	dir := &stubDirectory{names: map[string]string{"U1": "sam"}}

	events := newMessageSource(history, dir, "C0BAD", "C0GOOD").Events(context.Background())
	if len(events) != 1 || events[0].Message != "still here" {
		t.Fatalf("healthy channel must still contribute: %+v", events)
	}
}

func TestMessageSourceUnconfigured(t *testing.T) {
	src := NewMessageSource(nil, nil, nil, nil)
	if events := src.Events(context.Background()); events != nil {
		t.Fatalf("unconfigured source must contribute nothing, got %d", len(events))
	}
}

func TestEpochToISO(t *testing.T) {
	if got := epochToISO("1748772000.000000"); got != "2025-06-01T10:00:00Z" {
		t.Fatalf("epochToISO = %q", got)
	}
	if got := epochToISO(""); got != "" {
		t.Fatalf("epochToISO(\"\") = %q, want empty", got)
	}
}
