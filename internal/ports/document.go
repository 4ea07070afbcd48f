package ports

import (
	"context"
	"io"

	"arxml-inspect/internal/types"
)

// DocumentParserPort turns one ARXML document into a model. Each call
// builds an independent document; merging several documents is not
// supported.
type DocumentParserPort interface {
	// ParseFile reads and parses the document at path. Malformed XML
	// returns a *types.ParseError and no document.
	ParseFile(ctx context.Context, path string) (types.Document, error)

	// Parse reads the document from r. source names the input in
	// errors and in the resulting document.
	Parse(ctx context.Context, r io.Reader, source string) (types.Document, error)
}

// DocumentFinderPort discovers and checks document paths.
type DocumentFinderPort interface {
	// Find returns the files under root matching the glob pattern, in
	// lexical order.
	Find(root string, pattern string) ([]string, error)

	// Check validates a single path before parsing. Hard failures are
	// returned as errors; softer observations end up in FileCheck.Notes.
	Check(path string) (types.FileCheck, error)
}
