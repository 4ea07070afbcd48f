package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"arxml-inspect/internal/core"
	"arxml-inspect/internal/types"
)

const maxSuggestions = 5

// Search loads the document and runs the query against its index. Unset
// scope, mode and limit come from the user configuration.
func (s Service) Search(ctx context.Context, req SearchRequest) (SearchResult, error) {
	if strings.TrimSpace(req.Query.Text) == "" {
		return SearchResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("search text is required")
	}
	query := s.applySearchDefaults(ctx, req.Query)
	query, err := core.ValidateQuery(query)
	if err != nil {
		return SearchResult{}, err
	}
	opened, err := s.Open(ctx, OpenRequest{Path: req.Path})
	if err != nil {
		return SearchResult{}, err
	}
	result := SearchResult{
		Query:   query,
		Results: opened.Index.Search(query),
		Stats:   opened.Index.Statistics(),
	}
	if len(result.Results) == 0 {
		result.Suggestions = opened.Index.Suggestions(query.Text, maxSuggestions)
	}
	return result, nil
}

func (s Service) applySearchDefaults(ctx context.Context, q types.SearchQuery) types.SearchQuery {
	cfg, err := s.Config.Load()
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("using built-in search defaults")
		return q
	}
	if q.Scope == "" {
		q.Scope = types.SearchScope(cfg.Search.Scope)
	}
	if q.Mode == "" {
		q.Mode = cfg.Search.Mode
	}
	if q.Limit == 0 {
		q.Limit = cfg.Search.MaxResults
	}
	return q
}
