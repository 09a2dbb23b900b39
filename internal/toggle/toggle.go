// Package toggle manages the file-backed heartbeat on/off flag shared with
// the agents' cron tooling.
package toggle

import (
	"os"
	"strings"
)

// Flag is an on/off switch persisted as a single word in a file. A missing
// file reads as off.
type Flag struct {
	path string
}

func NewFlag(path string) *Flag {
	return &Flag{path: path}
}

// Active reports whether the flag file currently reads "on".
func (f *Flag) Active() bool {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(string(data))) == "on"
}

// Toggle flips the flag and returns the new state.
func (f *Flag) Toggle() (bool, error) {
	next := "on"
	if f.Active() {
		next = "off"
	}
	if err := os.WriteFile(f.path, []byte(next+"\n"), 0o644); err != nil {
		return false, err
	}
	return next == "on", nil
}
