package identity

import "strings"

// RelayBotName is the bot identity that forwards messages on behalf of real
// team members. Messages from anyone else are never re-attributed.
const RelayBotName = "CC-Bridge"

// claudeSignature marks messages Dan relays through Claude.ai. It is
// channel-independent and wins over any channel mapping.
const claudeSignature = "Dan (via Claude.ai)"

// channelMembers maps a channel ID to the member whose traffic it carries.
var channelMembers = map[string]string{
	"C0ACEGVT7CL": "Mat", // #mat-pm
	"C0AC7G548CV": "Kat", // #kat-dev
	"C0ABVFJPM9D": "Sam", // #sam-dev
}

// memberPriority is the scan order for name mentions in message text.
var memberPriority = []string{"Mat", "Kat", "Sam", "Dan"}

// strategy attempts one way of attributing a relay-bot message. It returns
// ("", false) when it has no opinion.
type strategy func(channelID, text string) (string, bool)

// inferenceOrder encodes the attribution precedence: text signature beats
// channel mapping beats a name scan of the message text. Channel mapping is
// a fallback, not an override, so a member posting through someone else's
// channel is still attributed correctly when their signature is present.
var inferenceOrder = []strategy{
	signatureStrategy,
	channelStrategy,
	mentionStrategy,
}

func signatureStrategy(_, text string) (string, bool) {
	if strings.Contains(text, claudeSignature) {
		return "Dan", true
	}
	return "", false
}

func channelStrategy(channelID, _ string) (string, bool) {
	member, ok := channelMembers[channelID]
	return member, ok
}

func mentionStrategy(_, text string) (string, bool) {
	for _, name := range memberPriority {
		if strings.Contains(text, name) {
			return name, true
		}
	}
	return "", false
}

// Infer recovers the real sender of a relay-bot message from channel and
// text signals. Non-bot display names pass through unchanged; a bot message
// no strategy can attribute keeps the bot name.
func Infer(displayName, channelID, text string) string {
	if displayName != RelayBotName {
		return displayName
	}
	for _, s := range inferenceOrder {
		if name, ok := s(channelID, text); ok {
			return name
		}
	}
	return RelayBotName
}
