package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Watch loads the document and reloads it whenever the file changes,
// until ctx is done. A reload that finishes after cancellation is
// discarded.
func (s Service) Watch(ctx context.Context, req WatchRequest) error {
	if req.OnLoad == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("watch needs a load callback")
	}
	opened, err := s.Open(ctx, OpenRequest{Path: req.Path, Remember: true})
	if err != nil {
		return err
	}
	req.OnLoad(opened, nil)
	return s.Watcher.Watch(ctx, req.Path, req.Debounce, func() {
		reloaded, err := s.Open(ctx, OpenRequest{Path: req.Path})
		if ctx.Err() != nil {
			return
		}
		req.OnLoad(reloaded, err)
	})
}
