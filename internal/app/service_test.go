package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arxml-inspect/internal/adapters"
	"arxml-inspect/internal/types"
)

func fixturePath(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)
	return filepath.Join(root, "fixtures", "powertrain.arxml")
}

func resultNames(results []types.SearchResult) []string {
	names := make([]string, 0, len(results))
	for _, result := range results {
		names = append(names, result.Name)
	}
	return names
}

func TestOpenFixture(t *testing.T) {
	service := NewService(t.TempDir())
	result, err := service.Open(t.Context(), OpenRequest{Path: fixturePath(t)})
	require.NoError(t, err)

	want := types.DocumentStats{Packages: 3, Components: 5, Ports: 8, Interfaces: 2, Connections: 3}
	if diff := cmp.Diff(want, result.Document.Stats); diff != "" {
		t.Fatalf("unexpected stats (-want +got):\n%s", diff)
	}
	assert.Equal(t, "4.3.0", result.Document.SchemaVersion)
	assert.True(t, result.Index.BuiltFrom(result.Document))
	assert.Empty(t, result.Check.Notes)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := NewService(t.TempDir()).Open(t.Context(), OpenRequest{Path: "  "})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestOpenParseErrorIsReturned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.arxml")
	require.NoError(t, os.WriteFile(path, []byte("<AUTOSAR><AR-PACKAGES>"), 0644))

	_, err := NewService(t.TempDir()).Open(t.Context(), OpenRequest{Path: path})
	var parseErr *types.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestOpenRememberAddsRecentFile(t *testing.T) {
	service := NewService(t.TempDir())
	path := fixturePath(t)
	_, err := service.Open(t.Context(), OpenRequest{Path: path, Remember: true})
	require.NoError(t, err)

	recent, err := service.Recent(RecentRequest{})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{path}, recent); diff != "" {
		t.Fatalf("unexpected recent files (-want +got):\n%s", diff)
	}

	cleared, err := service.Recent(RecentRequest{Clear: true})
	require.NoError(t, err)
	assert.Empty(t, cleared)
	recent, err = service.Recent(RecentRequest{})
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestSearchApp(t *testing.T) {
	tests := []struct {
		name  string
		query types.SearchQuery
		want  []string
	}{
		{
			name:  "ports containing speed rank name matches first",
			query: types.SearchQuery{Text: "speed", Scope: types.SearchScopePorts},
			want:  []string{"EngineSpeedOut", "SpeedIn", "SpeedOut", "RpmOut", "RpmIn"},
		},
		{
			name: "direction filter keeps required ports",
			query: types.SearchQuery{
				Text:   "speed",
				Scope:  types.SearchScopePorts,
				Filter: types.SearchFilter{Directions: []types.PortDirection{types.PortDirectionRequired}},
			},
			want: []string{"SpeedIn", "RpmIn"},
		},
		{
			name: "type filter on components",
			query: types.SearchQuery{
				Text:   "o",
				Scope:  types.SearchScopeComponents,
				Filter: types.SearchFilter{ComponentTypes: []types.ComponentType{types.ComponentTypeComposition}},
			},
			want: []string{"Powertrain"},
		},
		{
			name:  "exact interface name",
			query: types.SearchQuery{Text: "torquerequest", Scope: types.SearchScopeInterfaces, Mode: types.SearchModeExact},
			want:  []string{"TorqueRequest"},
		},
		{
			name:  "package prefix",
			query: types.SearchQuery{Text: "power", Filter: types.SearchFilter{PackagePrefix: "/Components/Compositions"}},
			want:  []string{"Powertrain"},
		},
	}

	service := NewService(t.TempDir())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.Search(t.Context(), SearchRequest{Path: fixturePath(t), Query: tt.query})
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, resultNames(result.Results)); diff != "" {
				t.Fatalf("unexpected results (-want +got):\n%s", diff)
			}
			assert.Empty(t, result.Suggestions)
		})
	}
}

func TestSearchSuggestionsWhenNothingMatches(t *testing.T) {
	service := NewService(t.TempDir())
	result, err := service.Search(t.Context(), SearchRequest{
		Path:  fixturePath(t),
		Query: types.SearchQuery{Text: "torq", Scope: types.SearchScopePackages},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.NotEmpty(t, result.Suggestions)
	assert.LessOrEqual(t, len(result.Suggestions), maxSuggestions)
	assert.Contains(t, result.Suggestions, "TorqueClient")
}

func TestSearchUsesConfiguredDefaults(t *testing.T) {
	configDir := t.TempDir()
	cfg := adapters.DefaultUserConfig()
	cfg.Search.MaxResults = 2
	cfg.Search.Scope = string(types.SearchScopePorts)
	require.NoError(t, adapters.NewConfigFileAdapter(configDir).Save(cfg))

	result, err := NewService(configDir).Search(t.Context(), SearchRequest{
		Path:  fixturePath(t),
		Query: types.SearchQuery{Text: "speed"},
	})
	require.NoError(t, err)
	assert.Equal(t, types.SearchScopePorts, result.Query.Scope)
	assert.Equal(t, types.SearchModeContains, result.Query.Mode)
	if diff := cmp.Diff([]string{"EngineSpeedOut", "SpeedIn"}, resultNames(result.Results)); diff != "" {
		t.Fatalf("unexpected results (-want +got):\n%s", diff)
	}
}

func TestSearchRejectsInvalidQuery(t *testing.T) {
	service := NewService(t.TempDir())
	tests := []struct {
		name  string
		query types.SearchQuery
	}{
		{name: "empty text", query: types.SearchQuery{Text: " "}},
		{name: "unknown mode", query: types.SearchQuery{Text: "x", Mode: "glob"}},
		{name: "unknown scope", query: types.SearchQuery{Text: "x", Scope: "ecus"}},
		{name: "negative limit", query: types.SearchQuery{Text: "x", Limit: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Search(t.Context(), SearchRequest{Path: fixturePath(t), Query: tt.query})
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestValidateApp(t *testing.T) {
	service := NewService(t.TempDir())
	result, err := service.Validate(t.Context(), ValidateRequest{Path: fixturePath(t)})
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "unresolved-interface: EcuMode", result.Warnings[0].String())
	if diff := cmp.Diff(map[types.WarningKind]int{types.WarningUnresolvedInterface: 1}, result.Counts); diff != "" {
		t.Fatalf("unexpected counts (-want +got):\n%s", diff)
	}
}

func TestValidateStrictFailsOnWarnings(t *testing.T) {
	service := NewService(t.TempDir())
	result, err := service.Validate(t.Context(), ValidateRequest{Path: fixturePath(t), Strict: true})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Len(t, result.Warnings, 1)
}

func TestExportApp(t *testing.T) {
	service := NewService(t.TempDir())

	t.Run("format inferred from output", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "out", "model.yaml")
		result, err := service.Export(t.Context(), ExportRequest{Path: fixturePath(t), Output: output})
		require.NoError(t, err)
		assert.Equal(t, types.ExportFormatYAML, result.Format)
		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.Contains(t, string(data), "source: powertrain.arxml")
	})

	t.Run("stdout defaults to json", func(t *testing.T) {
		var buf bytes.Buffer
		result, err := service.Export(t.Context(), ExportRequest{Path: fixturePath(t), Output: "-", Writer: &buf})
		require.NoError(t, err)
		assert.Equal(t, types.ExportFormatJSON, result.Format)
		assert.Contains(t, buf.String(), `"source": "powertrain.arxml"`)
	})

	t.Run("missing writer", func(t *testing.T) {
		_, err := service.Export(t.Context(), ExportRequest{Path: fixturePath(t)})
		require.Error(t, err)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	})
}

func TestScanApp(t *testing.T) {
	root := t.TempDir()
	fixture, err := os.ReadFile(fixturePath(t))
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ecu"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ecu", "powertrain.arxml"), fixture, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.arxml"), []byte("<AUTOSAR>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("ignored"), 0644))

	result, err := NewService(t.TempDir()).Scan(t.Context(), ScanRequest{Root: root})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, 1, result.Failed)

	broken := result.Entries[0]
	assert.Equal(t, filepath.Join(root, "broken.arxml"), broken.Path)
	require.Error(t, broken.Err)

	parsed := result.Entries[1]
	require.NoError(t, parsed.Err)
	assert.Equal(t, "4.3.0", parsed.SchemaVersion)
	assert.Equal(t, 5, parsed.Stats.Components)
	assert.Equal(t, 1, parsed.Warnings)
}

func TestScanStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	root := filepath.Dir(fixturePath(t))
	_, err := NewService(t.TempDir()).Scan(ctx, ScanRequest{Root: root})
	require.ErrorIs(t, err, context.Canceled)
}

type stubWatcher struct {
	changes int
}

func (w stubWatcher) Watch(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	for range w.changes {
		onChange()
	}
	return nil
}

func TestWatchReloadsOnChange(t *testing.T) {
	service := NewService(t.TempDir())
	service.Watcher = stubWatcher{changes: 2}

	var loads []string
	err := service.Watch(t.Context(), WatchRequest{
		Path: fixturePath(t),
		OnLoad: func(result OpenResult, err error) {
			require.NoError(t, err)
			loads = append(loads, result.Document.LoadID)
		},
	})
	require.NoError(t, err)
	require.Len(t, loads, 3)
	assert.NotEqual(t, loads[0], loads[1])
}

func TestWatchRequiresCallback(t *testing.T) {
	err := NewService(t.TempDir()).Watch(t.Context(), WatchRequest{Path: fixturePath(t)})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestShowApp(t *testing.T) {
	service := NewService(t.TempDir())

	t.Run("component with connections", func(t *testing.T) {
		result, err := service.Show(t.Context(), ShowRequest{Path: fixturePath(t), Name: "enginecontroller"})
		require.NoError(t, err)
		require.Len(t, result.Matches, 1)
		match := result.Matches[0]
		require.NotNil(t, match.Component)
		assert.Nil(t, match.Port)
		assert.Equal(t, "/Components/EngineController", match.Component.Path)
		assert.Len(t, match.Connections, 3)
	})

	t.Run("port keeps only its own connections", func(t *testing.T) {
		result, err := service.Show(t.Context(), ShowRequest{Path: fixturePath(t), Name: "RpmIn"})
		require.NoError(t, err)
		require.Len(t, result.Matches, 1)
		match := result.Matches[0]
		require.NotNil(t, match.Port)
		assert.Equal(t, "EngineController", match.Component.ShortName)
		var names []string
		for _, conn := range match.Connections {
			names = append(names, conn.ShortName)
		}
		if diff := cmp.Diff([]string{"crank_RpmOut_engine_RpmIn"}, names); diff != "" {
			t.Fatalf("unexpected connections (-want +got):\n%s", diff)
		}
	})

	t.Run("interface and package", func(t *testing.T) {
		result, err := service.Show(t.Context(), ShowRequest{Path: fixturePath(t), Name: "Interfaces"})
		require.NoError(t, err)
		require.Len(t, result.Matches, 1)
		require.NotNil(t, result.Matches[0].Package)
		assert.Len(t, result.Matches[0].Package.Interfaces, 2)

		result, err = service.Show(t.Context(), ShowRequest{Path: fixturePath(t), Name: "EngineSpeed"})
		require.NoError(t, err)
		require.Len(t, result.Matches, 1)
		require.NotNil(t, result.Matches[0].Interface)
		assert.Equal(t, types.InterfaceKindSenderReceiver, result.Matches[0].Interface.Kind)
	})

	t.Run("candidates when nothing matches exactly", func(t *testing.T) {
		result, err := service.Show(t.Context(), ShowRequest{Path: fixturePath(t), Name: "torque"})
		require.NoError(t, err)
		assert.Empty(t, result.Matches)
		require.Len(t, result.Candidates, 1)
		assert.Equal(t, "/Components/TorqueService", result.Candidates[0].Path)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := service.Show(t.Context(), ShowRequest{Path: fixturePath(t), Name: "gearbox"})
		require.Error(t, err)
		assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := service.Show(t.Context(), ShowRequest{Path: fixturePath(t), Name: " "})
		require.Error(t, err)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	})
}
