package sanitize

import "regexp"

// Marker replaces every credential-shaped substring found by Redact.
const Marker = "[REDACTED]"

var (
	// Slack-style tokens: xoxb-, xoxp-, xoxa-, xoxr-, xoxs- followed by
	// anything up to the next whitespace.
	slackTokenRe = regexp.MustCompile(`(?i)xox[bpars]-\S+`)

	// Long hex runs (32+ digits): API secrets, SHA-256 key material.
	hexRunRe = regexp.MustCompile(`(?i)[0-9a-f]{32,}`)

	// Assignment-style secrets: any key name containing SECRET, KEY, TOKEN
	// or PASSWORD followed by '='. The value is everything up to the next
	// whitespace.
	assignmentRe = regexp.MustCompile(`(?i)(\w*(?:secret|key|token|password)\w*=)\S+`)
)

// Redact masks credential-shaped substrings in text with Marker and leaves
// everything else byte-identical. It is applied to all externally sourced
// text (Slack messages, tmux capture output) before it reaches a response.
func Redact(text string) string {
	out := slackTokenRe.ReplaceAllString(text, Marker)
	out = assignmentRe.ReplaceAllString(out, "${1}"+Marker)
	out = hexRunRe.ReplaceAllString(out, Marker)
	return out
}
