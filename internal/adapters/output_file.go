package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"arxml-inspect/internal/ports"
	"arxml-inspect/internal/types"
)

// OutputFileAdapter serializes documents. The source path is reduced to
// its base name so exports of the same file are byte-identical across
// machines.
type OutputFileAdapter struct{}

func NewOutputFileAdapter() OutputFileAdapter {
	return OutputFileAdapter{}
}

func (a OutputFileAdapter) Export(w io.Writer, doc types.Document, format types.ExportFormat) error {
	data, err := encodeDocument(doc, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write export").
			WithCause(err)
	}
	return nil
}

func (a OutputFileAdapter) ExportFile(path string, doc types.Document, format types.ExportFormat) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("export path is empty")
	}
	data, err := encodeDocument(doc, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create export directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write export file").
			WithCause(err)
	}
	return nil
}

// FormatForPath picks the export format from a file extension.
func FormatForPath(path string) (types.ExportFormat, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return types.ExportFormatJSON, true
	case ".yaml", ".yml":
		return types.ExportFormatYAML, true
	default:
		return "", false
	}
}

func encodeDocument(doc types.Document, format types.ExportFormat) ([]byte, error) {
	if doc.Root == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no document loaded")
	}
	if doc.SourcePath != "" {
		doc.SourcePath = filepath.Base(doc.SourcePath)
	}
	switch format {
	case types.ExportFormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to marshal json export").
				WithCause(err)
		}
		return append(data, '\n'), nil
	case types.ExportFormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to marshal yaml export").
				WithCause(err)
		}
		if err := enc.Close(); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to flush yaml export").
				WithCause(err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported export format %q", format))
	}
}

var _ ports.ExportPort = OutputFileAdapter{}
