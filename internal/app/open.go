package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"arxml-inspect/internal/core"
)

// Open checks, parses and indexes one document.
func (s Service) Open(ctx context.Context, req OpenRequest) (OpenResult, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return OpenResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document path is required")
	}
	check, err := s.Finder.Check(path)
	if err != nil {
		return OpenResult{}, err
	}
	for _, note := range check.Notes {
		log.Ctx(ctx).Warn().Str("path", path).Msg(note)
	}

	start := s.Clock()
	doc, err := s.Parser.ParseFile(ctx, path)
	elapsed := s.Clock().Sub(start)
	if err != nil {
		s.Metrics.ObserveFailure(elapsed)
		return OpenResult{}, err
	}
	s.Metrics.ObserveParse(doc, elapsed)

	if req.Remember {
		if _, err := s.Config.AddRecentFile(path); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to update recent files")
		}
	}
	log.Ctx(ctx).Info().
		Str("path", path).
		Int("components", doc.Stats.Components).
		Int("warnings", len(doc.Warnings)).
		Dur("elapsed", elapsed).
		Msg("document loaded")
	return OpenResult{
		Document: doc,
		Index:    core.NewSearchIndex(doc),
		Check:    check,
		Elapsed:  elapsed,
	}, nil
}
