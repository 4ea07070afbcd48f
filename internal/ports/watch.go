package ports

import (
	"context"
	"time"
)

// WatchPort reports modifications of a single file until ctx is done.
type WatchPort interface {
	Watch(ctx context.Context, path string, debounce time.Duration, onChange func()) error
}
