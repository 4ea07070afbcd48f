package ports

import (
	"io"

	"arxml-inspect/internal/types"
)

type ExportPort interface {
	Export(w io.Writer, doc types.Document, format types.ExportFormat) error
	ExportFile(path string, doc types.Document, format types.ExportFormat) error
}
