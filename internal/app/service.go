package app

import (
	"time"

	"arxml-inspect/internal/adapters"
	"arxml-inspect/internal/ports"
)

type Service struct {
	Parser   ports.DocumentParserPort
	Finder   ports.DocumentFinderPort
	Config   ports.ConfigStorePort
	Exporter ports.ExportPort
	Watcher  ports.WatchPort
	Metrics  ports.MetricsPort
	Clock    func() time.Time
}

func NewService(configDir string) Service {
	return Service{
		Parser:   adapters.NewARXMLParserAdapter(),
		Finder:   adapters.NewWorkspaceAdapter(),
		Config:   adapters.NewConfigFileAdapter(configDir),
		Exporter: adapters.NewOutputFileAdapter(),
		Watcher:  adapters.NewFileWatchAdapter(),
		Metrics:  adapters.NewPrometheusMetricsAdapter(),
		Clock:    time.Now,
	}
}

// WriteMetrics flushes the parse metrics of this service to a textfile.
func (s Service) WriteMetrics(path string) error {
	return s.Metrics.WriteTextfile(path)
}
