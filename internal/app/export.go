package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"arxml-inspect/internal/adapters"
	"arxml-inspect/internal/types"
)

func (s Service) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	output := strings.TrimSpace(req.Output)
	format := req.Format
	if format == "" {
		format = types.ExportFormatJSON
		if inferred, ok := adapters.FormatForPath(output); ok {
			format = inferred
		}
	}
	toWriter := output == "" || output == "-"
	if toWriter && req.Writer == nil {
		return ExportResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("export needs an output path or writer")
	}
	opened, err := s.Open(ctx, OpenRequest{Path: req.Path})
	if err != nil {
		return ExportResult{}, err
	}
	if toWriter {
		if err := s.Exporter.Export(req.Writer, opened.Document, format); err != nil {
			return ExportResult{}, err
		}
		return ExportResult{Format: format, Output: "-"}, nil
	}
	if err := s.Exporter.ExportFile(output, opened.Document, format); err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Format: format, Output: output}, nil
}
