package activity

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/ccteam/dashboard/internal/identity"
	"github.com/ccteam/dashboard/internal/sanitize"
	"github.com/ccteam/dashboard/internal/slack"
)

const (
	messagesPerChannel = 10
	messageTextLimit   = 200
)

// ChannelHistory is the Slack surface the message source reads from.
type ChannelHistory interface {
	ConversationsHistory(ctx context.Context, channelID string, limit int) ([]slack.Message, error)
}

// MessageSource turns recent Slack messages in the configured channels into
// feed events. One channel failing is logged and skipped; the remaining
// channels still contribute.
type MessageSource struct {
	channels []string
	history  ChannelHistory
	resolver *identity.Resolver
	log      *slog.Logger
}

func NewMessageSource(channels []string, history ChannelHistory, resolver *identity.Resolver, log *slog.Logger) *MessageSource {
	if log == nil {
		log = slog.Default()
	}
	return &MessageSource{
		channels: channels,
		history:  history,
		resolver: resolver,
		log:      log,
	}
}

func (s *MessageSource) Events(ctx context.Context) []Event {
	if s.history == nil || len(s.channels) == 0 {
		return nil
	}

	var events []Event
	for _, channelID := range s.channels {
		msgs, err := s.history.ConversationsHistory(ctx, channelID, messagesPerChannel)
		if err != nil {
			s.log.Debug("slack history unavailable", "channel", channelID, "error", err)
			continue
		}
		for _, m := range msgs {
			events = append(events, s.toEvent(ctx, channelID, m))
		}
	}
	return events
}

func (s *MessageSource) toEvent(ctx context.Context, channelID string, m slack.Message) Event {
	displayName := "unknown"
	if m.Handle != "" {
		displayName = s.resolver.Resolve(ctx, m.Handle, m.BotName)
	}
	agent := identity.Infer(displayName, channelID, m.Text)

	text := m.Text
	if runes := []rune(text); len(runes) > messageTextLimit {
		text = string(runes[:messageTextLimit])
	}

	return Event{
		Type:      TypeMessage,
		Timestamp: epochToISO(m.TS),
		Agent:     agent,
		Message:   sanitize.Redact(text),
	}
}

// epochToISO converts Slack's fractional seconds-since-epoch into an
// ISO-8601 string. Unparseable values become "" and sort last in the feed.
func epochToISO(ts string) string {
	f, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return ""
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC().Format(time.RFC3339)
}
