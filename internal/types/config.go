package types

type SearchDefaults struct {
	MaxResults int        `yaml:"max_results"`
	Mode       SearchMode `yaml:"mode"`
	Scope      string     `yaml:"scope"`
}

// UserConfig is the persisted per-user state: theme, recent files and
// search defaults.
type UserConfig struct {
	Theme       string         `yaml:"theme"`
	RecentFiles []string       `yaml:"recent_files,omitempty"`
	Search      SearchDefaults `yaml:"search"`
}

// FileCheck holds the non-fatal observations made about a document path
// before parsing it.
type FileCheck struct {
	Path  string
	Size  int64
	Notes []string
}
