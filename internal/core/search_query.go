package core

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"arxml-inspect/internal/types"
)

const fuzzyThreshold = 0.7

var validSearchModes = map[types.SearchMode]struct{}{
	types.SearchModeContains: {},
	types.SearchModePrefix:   {},
	types.SearchModeSuffix:   {},
	types.SearchModeExact:    {},
	types.SearchModeRegex:    {},
	types.SearchModeFuzzy:    {},
}

var validSearchScopes = map[types.SearchScope]struct{}{
	types.SearchScopeAll:        {},
	types.SearchScopePackages:   {},
	types.SearchScopeComponents: {},
	types.SearchScopePorts:      {},
	types.SearchScopeInterfaces: {},
}

// ValidateQuery fills defaults and rejects unknown scopes and modes.
func ValidateQuery(q types.SearchQuery) (types.SearchQuery, error) {
	if q.Scope == "" {
		q.Scope = types.SearchScopeAll
	}
	if q.Mode == "" {
		q.Mode = types.SearchModeContains
	}
	if _, ok := validSearchScopes[q.Scope]; !ok {
		return q, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid search scope %s", q.Scope))
	}
	if _, ok := validSearchModes[q.Mode]; !ok {
		return q, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid search mode %s", q.Mode))
	}
	if q.Limit < 0 {
		return q, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("search limit must not be negative")
	}
	for _, kind := range q.Filter.ComponentTypes {
		if _, ok := validComponentTypes[kind]; !ok {
			return q, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid component type filter %s", kind))
		}
	}
	for _, dir := range q.Filter.Directions {
		if dir != types.PortDirectionProvided && dir != types.PortDirectionRequired {
			return q, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid port direction filter %s", dir))
		}
	}
	return q, nil
}

// Search scores every indexed item against q. Results are ordered by
// score, then by document order.
func (i *SearchIndex) Search(q types.SearchQuery) []types.SearchResult {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	if needle == "" {
		return nil
	}
	var pattern *regexp.Regexp
	if q.Mode == types.SearchModeRegex {
		// An invalid pattern degrades to a name substring match.
		pattern, _ = regexp.Compile("(?i)" + q.Text)
	}
	var results []types.SearchResult
	for pos, entry := range i.entries {
		if !inScope(entry, q.Scope) || !passesFilter(entry, q.Filter) {
			continue
		}
		score := matchScore(needle, entry, q.Mode, pattern)
		if score > 0 {
			results = append(results, i.result(pos, score))
		}
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results
}

func inScope(entry indexEntry, scope types.SearchScope) bool {
	switch scope {
	case types.SearchScopePackages:
		return entry.kind == types.ItemKindPackage
	case types.SearchScopeComponents:
		return entry.kind == types.ItemKindComponent
	case types.SearchScopePorts:
		return entry.kind == types.ItemKindPort
	case types.SearchScopeInterfaces:
		return entry.kind == types.ItemKindInterface
	default:
		return true
	}
}

// passesFilter applies the type, direction and package filters. A type
// filter keeps components and their ports; a direction filter keeps ports.
func passesFilter(entry indexEntry, filter types.SearchFilter) bool {
	if len(filter.ComponentTypes) > 0 {
		if entry.kind != types.ItemKindComponent && entry.kind != types.ItemKindPort {
			return false
		}
		if !containsValue(filter.ComponentTypes, entry.componentType) {
			return false
		}
	}
	if len(filter.Directions) > 0 {
		if entry.kind != types.ItemKindPort || !containsValue(filter.Directions, entry.direction) {
			return false
		}
	}
	if prefix := strings.TrimSpace(filter.PackagePrefix); prefix != "" {
		prefix = normalizeRef(prefix)
		if entry.packagePath != prefix && !strings.HasPrefix(entry.packagePath, prefix+PathSeparator) {
			return false
		}
	}
	return true
}

func matchScore(needle string, entry indexEntry, mode types.SearchMode, pattern *regexp.Regexp) float64 {
	name := entry.lower
	text := entry.text
	switch mode {
	case types.SearchModeExact:
		if name == needle {
			return 1.0
		}
		if strings.Contains(text, needle) {
			return 0.5
		}
	case types.SearchModePrefix:
		if strings.HasPrefix(name, needle) {
			return 0.9
		}
		if anyWord(text, func(word string) bool { return strings.HasPrefix(word, needle) }) {
			return 0.6
		}
	case types.SearchModeSuffix:
		if strings.HasSuffix(name, needle) {
			return 0.9
		}
		if anyWord(text, func(word string) bool { return strings.HasSuffix(word, needle) }) {
			return 0.6
		}
	case types.SearchModeRegex:
		if pattern == nil {
			if strings.Contains(name, needle) {
				return 0.7
			}
			return 0
		}
		if pattern.MatchString(name) {
			return 0.8
		}
		if pattern.MatchString(text) {
			return 0.5
		}
	case types.SearchModeFuzzy:
		if score := fuzzyScore(needle, name); score > fuzzyThreshold {
			return score * 0.8
		}
		for _, word := range strings.Fields(text) {
			if score := fuzzyScore(needle, word); score > fuzzyThreshold {
				return score * 0.6
			}
		}
	default:
		if strings.Contains(name, needle) {
			return 0.8
		}
		if strings.Contains(text, needle) {
			return 0.5
		}
	}
	return 0
}

// fuzzyScore is the share of query characters that occur in text, with
// exact and substring matches ranked above any partial overlap.
func fuzzyScore(query string, text string) float64 {
	if query == "" || text == "" {
		return 0
	}
	if query == text {
		return 1.0
	}
	if strings.Contains(text, query) {
		return 0.8
	}
	matches := 0
	for _, r := range query {
		if strings.ContainsRune(text, r) {
			matches++
		}
	}
	return float64(matches) / float64(len([]rune(query)))
}

func anyWord(text string, fn func(string) bool) bool {
	for _, word := range strings.Fields(text) {
		if fn(word) {
			return true
		}
	}
	return false
}

func containsValue[T comparable](values []T, want T) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
