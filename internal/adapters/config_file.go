package adapters

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"arxml-inspect/internal/ports"
	"arxml-inspect/internal/types"
)

const (
	ConfigFileName = "config.yaml"
	MaxRecentFiles = 10
)

// DefaultUserConfig is used when no config file exists yet.
func DefaultUserConfig() types.UserConfig {
	return types.UserConfig{
		Theme: "dark",
		Search: types.SearchDefaults{
			MaxResults: 100,
			Mode:       types.SearchModeContains,
			Scope:      string(types.SearchScopeAll),
		},
	}
}

type ConfigFileAdapter struct {
	Dir string
}

func NewConfigFileAdapter(dir string) ConfigFileAdapter {
	return ConfigFileAdapter{Dir: dir}
}

func (a ConfigFileAdapter) Path() string {
	return filepath.Join(a.Dir, ConfigFileName)
}

func (a ConfigFileAdapter) Load() (types.UserConfig, error) {
	if strings.TrimSpace(a.Dir) == "" {
		return types.UserConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("config directory is empty")
	}
	data, err := os.ReadFile(a.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultUserConfig(), nil
	}
	if err != nil {
		return types.UserConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read config file").
			WithCause(err)
	}
	cfg := DefaultUserConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return types.UserConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse config yaml").
			WithCause(err)
	}
	cfg.RecentFiles = trimRecent(cfg.RecentFiles)
	return cfg, nil
}

func (a ConfigFileAdapter) Save(cfg types.UserConfig) error {
	if strings.TrimSpace(a.Dir) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("config directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create config directory").
			WithCause(err)
	}
	cfg.RecentFiles = trimRecent(cfg.RecentFiles)
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode config yaml").
			WithCause(err)
	}
	if err := os.WriteFile(a.Path(), data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write config file").
			WithCause(err)
	}
	return nil
}

// AddRecentFile moves path to the front of the recent files list and
// persists the result.
func (a ConfigFileAdapter) AddRecentFile(path string) (types.UserConfig, error) {
	cfg, err := a.Load()
	if err != nil {
		return types.UserConfig{}, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	recent := []string{path}
	for _, existing := range cfg.RecentFiles {
		if existing != path {
			recent = append(recent, existing)
		}
	}
	cfg.RecentFiles = trimRecent(recent)
	if err := a.Save(cfg); err != nil {
		return types.UserConfig{}, err
	}
	return cfg, nil
}

func trimRecent(paths []string) []string {
	if len(paths) > MaxRecentFiles {
		return paths[:MaxRecentFiles]
	}
	return paths
}

var _ ports.ConfigStorePort = ConfigFileAdapter{}
