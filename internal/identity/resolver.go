package identity

import (
	"context"
	"log/slog"
	"sync"
)

// DirectoryClient looks up a user handle in the messaging platform's
// directory. Implemented by the Slack client; stubbed in tests.
type DirectoryClient interface {
	LookupUser(ctx context.Context, handle string) (displayName, realName string, err error)
}

// Resolver maps opaque user handles to display names. Results are cached for
// the life of the process, including fallback results for failed lookups, so
// each handle hits the directory at most once.
type Resolver struct {
	dir DirectoryClient
	log *slog.Logger

	mu    sync.Mutex
	cache map[string]string
}

func NewResolver(dir DirectoryClient, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{
		dir:   dir,
		log:   log,
		cache: make(map[string]string),
	}
}

// Resolve returns the display name for handle. On lookup failure it returns
// fallback when non-empty, else the handle itself; either way the result is
// cached so repeated failures do not re-query the directory.
func (r *Resolver) Resolve(ctx context.Context, handle, fallback string) string {
	r.mu.Lock()
	cached, ok := r.cache[handle]
	r.mu.Unlock()
	if ok {
		return cached
	}

	name := r.lookup(ctx, handle, fallback)

	r.mu.Lock()
	r.cache[handle] = name
	r.mu.Unlock()
	return name
}

func (r *Resolver) lookup(ctx context.Context, handle, fallback string) string {
	displayName, realName, err := r.dir.LookupUser(ctx, handle)
	if err != nil {
		r.log.Debug("directory lookup failed", "handle", handle, "error", err)
		if fallback != "" {
			return fallback
		}
		return handle
	}
	switch {
	case displayName != "":
		return displayName
	case realName != "":
		return realName
	default:
		return handle
	}
}
