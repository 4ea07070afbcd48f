package adapters

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"arxml-inspect/internal/ports"
)

const DefaultDebounce = 500 * time.Millisecond

// FileWatchAdapter watches the parent directory of a file so that
// editors which replace the file on save are still observed.
type FileWatchAdapter struct{}

func NewFileWatchAdapter() FileWatchAdapter {
	return FileWatchAdapter{}
}

// Watch blocks until ctx is done, calling onChange at most once per
// debounce interval after the file was written, created or renamed.
func (a FileWatchAdapter) Watch(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid watch path %s", path)).
			WithCause(err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create file watcher").
			WithCause(err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("failed to watch %s", filepath.Dir(target))).
			WithCause(err)
	}
	log.Ctx(ctx).Debug().Str("path", target).Dur("debounce", debounce).Msg("watching file")

	ticker := time.NewTicker(debounce)
	defer ticker.Stop()
	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = true
				log.Ctx(ctx).Debug().Str("path", target).Str("op", event.Op.String()).Msg("change detected")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Ctx(ctx).Warn().Err(err).Msg("watcher error")
		case <-ticker.C:
			if pending {
				pending = false
				onChange()
			}
		}
	}
}

var _ ports.WatchPort = FileWatchAdapter{}
