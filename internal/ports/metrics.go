package ports

import (
	"time"

	"arxml-inspect/internal/types"
)

type MetricsPort interface {
	ObserveParse(doc types.Document, elapsed time.Duration)
	ObserveFailure(elapsed time.Duration)
	WriteTextfile(path string) error
}
