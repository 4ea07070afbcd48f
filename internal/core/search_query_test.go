package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arxml-inspect/internal/types"
)

func resultNames(results []types.SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, result := range results {
		out = append(out, result.Name)
	}
	return out
}

func TestSearch(t *testing.T) {
	idx := NewSearchIndex(sampleDocument(t, "load-1"))

	tests := []struct {
		name  string
		query types.SearchQuery
		want  []string
	}{
		{
			name:  "contains keeps document order for equal scores",
			query: types.SearchQuery{Text: "speed"},
			want:  []string{"WheelSpeed", "SpeedOut", "SpeedIn", "Speed"},
		},
		{
			name:  "prefix ranks name matches above word matches",
			query: types.SearchQuery{Text: "Speed", Mode: types.SearchModePrefix},
			want:  []string{"SpeedOut", "SpeedIn", "Speed", "WheelSpeed"},
		},
		{
			name:  "suffix",
			query: types.SearchQuery{Text: "speed", Mode: types.SearchModeSuffix},
			want:  []string{"WheelSpeed", "Speed", "SpeedOut", "SpeedIn"},
		},
		{
			name:  "exact name first",
			query: types.SearchQuery{Text: "SPEED", Mode: types.SearchModeExact},
			want:  []string{"Speed", "WheelSpeed", "SpeedOut", "SpeedIn"},
		},
		{
			name:  "regex",
			query: types.SearchQuery{Text: "^s.*in$", Mode: types.SearchModeRegex},
			want:  []string{"SpeedIn"},
		},
		{
			name:  "invalid regex falls back to substring",
			query: types.SearchQuery{Text: "speed(", Mode: types.SearchModeRegex},
			want:  []string{},
		},
		{
			name:  "fuzzy",
			query: types.SearchQuery{Text: "brak", Mode: types.SearchModeFuzzy},
			want:  []string{"BrakeCmd", "Brake"},
		},
		{
			name:  "port scope",
			query: types.SearchQuery{Text: "speed", Scope: types.SearchScopePorts, Mode: types.SearchModePrefix},
			want:  []string{"SpeedOut", "SpeedIn"},
		},
		{
			name:  "package scope",
			query: types.SearchQuery{Text: "s", Scope: types.SearchScopePackages},
			want:  []string{"Sensors", "Apps", "Ifaces"},
		},
		{
			name: "type filter",
			query: types.SearchQuery{
				Text:   "c",
				Filter: types.SearchFilter{ComponentTypes: []types.ComponentType{types.ComponentTypeComposition}},
			},
			want: []string{"Chassis"},
		},
		{
			name: "direction filter",
			query: types.SearchQuery{
				Text:   "o",
				Filter: types.SearchFilter{Directions: []types.PortDirection{types.PortDirectionProvided}},
			},
			want: []string{"SpeedOut", "BrakeCmd"},
		},
		{
			name:  "package prefix includes nested packages",
			query: types.SearchQuery{Text: "s", Filter: types.SearchFilter{PackagePrefix: "/Apps/"}},
			want:  []string{"Apps", "Abs", "SpeedIn", "Chassis"},
		},
		{
			name:  "package prefix matches whole segments",
			query: types.SearchQuery{Text: "s", Filter: types.SearchFilter{PackagePrefix: "/App"}},
			want:  []string{},
		},
		{
			name:  "limit",
			query: types.SearchQuery{Text: "speed", Limit: 2},
			want:  []string{"WheelSpeed", "SpeedOut"},
		},
		{
			name:  "blank text",
			query: types.SearchQuery{Text: "  "},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := ValidateQuery(tt.query)
			require.NoError(t, err)
			got := resultNames(idx.Search(query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("results mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearchScores(t *testing.T) {
	idx := NewSearchIndex(sampleDocument(t, "load-1"))
	results := idx.Search(types.SearchQuery{Text: "brak", Scope: types.SearchScopeAll, Mode: types.SearchModeFuzzy})
	require.Len(t, results, 2)
	assert.InDelta(t, 0.64, results[0].Score, 0.001)
	assert.Equal(t, "/Apps/Abs/BrakeCmd", results[0].Path)
	assert.Equal(t, "/Apps", results[0].PackagePath)
	assert.Equal(t, "provided", results[0].Detail)
}

func TestSearchIsRepeatable(t *testing.T) {
	idx := NewSearchIndex(sampleDocument(t, "load-1"))
	query := types.SearchQuery{Text: "s", Scope: types.SearchScopeAll, Mode: types.SearchModeContains}
	first := idx.Search(query)
	second := idx.Search(query)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("search not repeatable (-first +second):\n%s", diff)
	}
}

func TestValidateQueryDefaults(t *testing.T) {
	query, err := ValidateQuery(types.SearchQuery{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, types.SearchScopeAll, query.Scope)
	assert.Equal(t, types.SearchModeContains, query.Mode)
}

func TestValidateQueryRejects(t *testing.T) {
	tests := []struct {
		name  string
		query types.SearchQuery
	}{
		{name: "scope", query: types.SearchQuery{Scope: "ecus"}},
		{name: "mode", query: types.SearchQuery{Mode: "glob"}},
		{name: "limit", query: types.SearchQuery{Limit: -3}},
		{name: "component type", query: types.SearchQuery{Filter: types.SearchFilter{ComponentTypes: []types.ComponentType{"robot"}}}},
		{name: "direction", query: types.SearchQuery{Filter: types.SearchFilter{Directions: []types.PortDirection{"sideways"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateQuery(tt.query)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}
