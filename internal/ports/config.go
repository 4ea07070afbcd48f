package ports

import "arxml-inspect/internal/types"

// ConfigStorePort persists user configuration between runs.
type ConfigStorePort interface {
	Load() (types.UserConfig, error)
	Save(cfg types.UserConfig) error
	AddRecentFile(path string) (types.UserConfig, error)
}
