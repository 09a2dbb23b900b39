package identity

import (
	"context"
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// Stub directory
// ---------------------------------------------------------------------------

type stubDirectory struct {
	displayName string
	realName    string
	err         error
	calls       int
}

func (s *stubDirectory) LookupUser(_ context.Context, _ string) (string, string, error) {
	s.calls++
	return s.displayName, s.realName, s.err
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestResolvePrefersDisplayName(t *testing.T) {
	dir := &stubDirectory{displayName: "kat", realName: "Kat Smith"}
	r := NewResolver(dir, nil)
	if got := r.Resolve(context.Background(), "U123", ""); got != "kat" {
		t.Fatalf("Resolve = %q, want %q", got, "kat")
	}
}

func TestResolveFallsBackToRealName(t *testing.T) {
	dir := &stubDirectory{realName: "Kat Smith"}
	r := NewResolver(dir, nil)
	if got := r.Resolve(context.Background(), "U123", ""); got != "Kat Smith" {
		t.Fatalf("Resolve = %q, want %q", got, "Kat Smith")
	}
}

func TestResolveFallsBackToHandle(t *testing.T) {
	dir := &stubDirectory{}
	r := NewResolver(dir, nil)
	if got := r.Resolve(context.Background(), "U123", ""); got != "U123" {
		t.Fatalf("Resolve = %q, want %q", got, "U123")
	}
}

func TestResolveCachesSuccess(t *testing.T) {
	dir := &stubDirectory{displayName: "kat"}
	r := NewResolver(dir, nil)
	for i := 0; i < 5; i++ {
		r.Resolve(context.Background(), "U123", "")
	}
	if dir.calls != 1 {
		t.Fatalf("directory called %d times, want 1", dir.calls)
	}
}

func TestResolveFailureUsesFallbackAndCaches(t *testing.T) {
	dir := &stubDirectory{err: errors.New("connection refused")}
	r := NewResolver(dir, nil)

	if got := r.Resolve(context.Background(), "B042", "deploy-bot"); got != "deploy-bot" {
		t.Fatalf("Resolve = %q, want fallback %q", got, "deploy-bot")
	}
	// Repeated failures must not re-query the directory.
	r.Resolve(context.Background(), "B042", "deploy-bot")
	r.Resolve(context.Background(), "B042", "deploy-bot")
	if dir.calls != 1 {
		t.Fatalf("directory called %d times after failure, want 1", dir.calls)
	}
}

func TestResolveFailureEmptyFallbackReturnsHandle(t *testing.T) {
	dir := &stubDirectory{err: errors.New("timeout")}
	r := NewResolver(dir, nil)
	if got := r.Resolve(context.Background(), "U999", ""); got != "U999" {
		t.Fatalf("Resolve = %q, want handle %q", got, "U999")
	}
}

func TestResolveDistinctHandles(t *testing.T) {
	dir := &stubDirectory{displayName: "x"}
	r := NewResolver(dir, nil)
	r.Resolve(context.Background(), "U1", "")
	r.Resolve(context.Background(), "U2", "")
	if dir.calls != 2 {
		t.Fatalf("directory called %d times for two handles, want 2", dir.calls)
	}
}
