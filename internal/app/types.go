package app

import (
	"io"
	"time"

	"arxml-inspect/internal/core"
	"arxml-inspect/internal/types"
)

type OpenRequest struct {
	Path string
	// Remember adds the path to the recent files list after a successful
	// parse.
	Remember bool
}

type OpenResult struct {
	Document types.Document
	Index    *core.SearchIndex
	Check    types.FileCheck
	Elapsed  time.Duration
}

type SearchRequest struct {
	Path  string
	Query types.SearchQuery
}

type SearchResult struct {
	Query       types.SearchQuery
	Results     []types.SearchResult
	Suggestions []string
	Stats       types.IndexStats
}

type ValidateRequest struct {
	Path   string
	Strict bool
}

type ValidateResult struct {
	Document types.Document
	Warnings []types.Warning
	Counts   map[types.WarningKind]int
}

type ExportRequest struct {
	Path   string
	Format types.ExportFormat
	// Output is a file path; empty or "-" writes to Writer.
	Output string
	Writer io.Writer
}

type ExportResult struct {
	Format types.ExportFormat
	Output string
}

type ScanRequest struct {
	Root    string
	Pattern string
}

type ScanEntry struct {
	Path          string
	SchemaVersion string
	Stats         types.DocumentStats
	Warnings      int
	Err           error
}

type ScanResult struct {
	Entries []ScanEntry
	Failed  int
}

type WatchRequest struct {
	Path     string
	Debounce time.Duration
	// OnLoad receives the initial load and every reload. Failed reloads
	// pass the error and keep the previous document on the caller's side.
	OnLoad func(OpenResult, error)
}

type RecentRequest struct {
	Clear bool
}

type ShowRequest struct {
	Path string
	Name string
}

// ShowMatch is one element whose short name equals the requested name.
// Exactly one of Package, Component, Port and Interface is set.
type ShowMatch struct {
	Result      types.SearchResult
	Package     *types.Package
	Component   *types.Component
	Port        *types.Port
	Interface   *types.Interface
	Connections []*types.Connection
}

type ShowResult struct {
	Document types.Document
	Matches  []ShowMatch
	// Candidates holds components whose name contains the requested
	// name, filled only when nothing matched exactly.
	Candidates []types.ComponentRef
}
