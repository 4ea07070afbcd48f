package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Scan parses every document under a root as an independent document.
// Parse failures are recorded per entry; only discovery errors and
// cancellation abort the scan.
func (s Service) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	root := req.Root
	if root == "" {
		root = "."
	}
	paths, err := s.Finder.Find(root, req.Pattern)
	if err != nil {
		return ScanResult{}, err
	}
	var result ScanResult
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		start := s.Clock()
		doc, err := s.Parser.ParseFile(ctx, path)
		elapsed := s.Clock().Sub(start)
		entry := ScanEntry{Path: path}
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			s.Metrics.ObserveFailure(elapsed)
			log.Ctx(ctx).Warn().Err(err).Str("path", path).Msg("failed to parse document")
			entry.Err = err
			result.Failed++
		} else {
			s.Metrics.ObserveParse(doc, elapsed)
			entry.SchemaVersion = doc.SchemaVersion
			entry.Stats = doc.Stats
			entry.Warnings = len(doc.Warnings)
		}
		result.Entries = append(result.Entries, entry)
	}
	log.Ctx(ctx).Debug().Int("documents", len(result.Entries)).Int("failed", result.Failed).Msg("scan finished")
	return result, nil
}
