package types

// ComponentRef is a non-owning handle to a component, resolved against
// the package tree on demand.
type ComponentRef struct {
	Path        string        `json:"path" yaml:"path"`
	ShortName   string        `json:"short_name" yaml:"short_name"`
	PackagePath string        `json:"package_path" yaml:"package_path"`
	Type        ComponentType `json:"type" yaml:"type"`
}

type PortRef struct {
	ComponentPath string        `json:"component_path" yaml:"component_path"`
	ShortName     string        `json:"short_name" yaml:"short_name"`
	Direction     PortDirection `json:"direction" yaml:"direction"`
	Interface     string        `json:"interface,omitempty" yaml:"interface,omitempty"`
}

type SearchFilter struct {
	ComponentTypes []ComponentType
	Directions     []PortDirection
	PackagePrefix  string
}

type SearchQuery struct {
	Text   string
	Scope  SearchScope
	Mode   SearchMode
	Filter SearchFilter
	Limit  int
}

type SearchResult struct {
	Kind        ItemKind `json:"kind" yaml:"kind"`
	Name        string   `json:"name" yaml:"name"`
	Path        string   `json:"path" yaml:"path"`
	PackagePath string   `json:"package_path" yaml:"package_path"`
	Detail      string   `json:"detail,omitempty" yaml:"detail,omitempty"`
	Score       float64  `json:"score" yaml:"score"`
}

type IndexStats struct {
	Total      int              `json:"total" yaml:"total"`
	ByKind     map[ItemKind]int `json:"by_kind" yaml:"by_kind"`
	Packages   int              `json:"packages" yaml:"packages"`
	Components int              `json:"components" yaml:"components"`
	Ports      int              `json:"ports" yaml:"ports"`
}
