package types

// Location is the position of an element in the source document.
type Location struct {
	Line   int `json:"line,omitempty" yaml:"line,omitempty"`
	Column int `json:"column,omitempty" yaml:"column,omitempty"`
}

// Package is an AUTOSAR namespace node. The package tree is the only
// owning structure of a document; every other reference into it is a
// path string.
type Package struct {
	ShortName   string       `json:"short_name" yaml:"short_name"`
	Path        string       `json:"path" yaml:"path"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Packages    []*Package   `json:"packages,omitempty" yaml:"packages,omitempty"`
	Components  []*Component `json:"components,omitempty" yaml:"components,omitempty"`
	Interfaces  []*Interface `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	Location    Location     `json:"location" yaml:"location"`
}

type Component struct {
	ShortName   string        `json:"short_name" yaml:"short_name"`
	Path        string        `json:"path" yaml:"path"`
	PackagePath string        `json:"package_path" yaml:"package_path"`
	Type        ComponentType `json:"type" yaml:"type"`
	Tag         string        `json:"tag" yaml:"tag"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Ports       []*Port       `json:"ports,omitempty" yaml:"ports,omitempty"`
	Prototypes  []Prototype   `json:"prototypes,omitempty" yaml:"prototypes,omitempty"`
	Connections []*Connection `json:"connections,omitempty" yaml:"connections,omitempty"`
	Location    Location      `json:"location" yaml:"location"`
}

// Prototype is a component instance inside a composition.
type Prototype struct {
	ShortName string `json:"short_name" yaml:"short_name"`
	Path      string `json:"path" yaml:"path"`
	TypeRef   string `json:"type_ref" yaml:"type_ref"`
}

type Port struct {
	ShortName     string        `json:"short_name" yaml:"short_name"`
	Direction     PortDirection `json:"direction" yaml:"direction"`
	Bidirectional bool          `json:"bidirectional,omitempty" yaml:"bidirectional,omitempty"`
	Tag           string        `json:"tag" yaml:"tag"`
	Description   string        `json:"description,omitempty" yaml:"description,omitempty"`
	Interface     InterfaceRef  `json:"interface" yaml:"interface"`
	Location      Location      `json:"location" yaml:"location"`
}

// InterfaceRef is a symbolic reference to an interface definition that
// may live outside the loaded document.
type InterfaceRef struct {
	Ref          string        `json:"ref,omitempty" yaml:"ref,omitempty"`
	Kind         InterfaceKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	State        RefState      `json:"state" yaml:"state"`
	ResolvedPath string        `json:"resolved_path,omitempty" yaml:"resolved_path,omitempty"`
}

// Resolved returns the path of the referenced interface when the
// reference was resolved inside the document.
func (r InterfaceRef) Resolved() (string, bool) {
	if r.State != RefStateResolved {
		return "", false
	}
	return r.ResolvedPath, true
}

type Interface struct {
	ShortName    string        `json:"short_name" yaml:"short_name"`
	Path         string        `json:"path" yaml:"path"`
	Kind         InterfaceKind `json:"kind" yaml:"kind"`
	Tag          string        `json:"tag" yaml:"tag"`
	Description  string        `json:"description,omitempty" yaml:"description,omitempty"`
	IsService    bool          `json:"is_service,omitempty" yaml:"is_service,omitempty"`
	DataElements []DataElement `json:"data_elements,omitempty" yaml:"data_elements,omitempty"`
	Operations   []Operation   `json:"operations,omitempty" yaml:"operations,omitempty"`
	Triggers     []string      `json:"triggers,omitempty" yaml:"triggers,omitempty"`
	ModeGroups   []ModeGroup   `json:"mode_groups,omitempty" yaml:"mode_groups,omitempty"`
	Location     Location      `json:"location" yaml:"location"`
}

type DataElement struct {
	ShortName string `json:"short_name" yaml:"short_name"`
	TypeRef   string `json:"type_ref,omitempty" yaml:"type_ref,omitempty"`
}

type Operation struct {
	ShortName string     `json:"short_name" yaml:"short_name"`
	Arguments []Argument `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

type Argument struct {
	ShortName string            `json:"short_name" yaml:"short_name"`
	Direction ArgumentDirection `json:"direction" yaml:"direction"`
	TypeRef   string            `json:"type_ref,omitempty" yaml:"type_ref,omitempty"`
}

type ModeGroup struct {
	ShortName string `json:"short_name" yaml:"short_name"`
	TypeRef   string `json:"type_ref,omitempty" yaml:"type_ref,omitempty"`
}

// Endpoint identifies a port by owning component path and port name.
// It never holds a pointer into the tree.
type Endpoint struct {
	ComponentPath string   `json:"component_path,omitempty" yaml:"component_path,omitempty"`
	PortName      string   `json:"port_name,omitempty" yaml:"port_name,omitempty"`
	Context       string   `json:"context,omitempty" yaml:"context,omitempty"`
	PortRef       string   `json:"port_ref,omitempty" yaml:"port_ref,omitempty"`
	State         RefState `json:"state" yaml:"state"`
}

// Dangling reports whether the endpoint could not be resolved.
func (e Endpoint) Dangling() bool {
	return e.State != RefStateResolved
}

func (e Endpoint) String() string {
	switch {
	case e.ComponentPath != "":
		return e.ComponentPath + "." + e.PortName
	case e.Context != "" && e.PortName != "":
		return e.Context + "." + e.PortName
	default:
		return e.PortRef
	}
}

type Connection struct {
	ShortName string         `json:"short_name" yaml:"short_name"`
	Path      string         `json:"path" yaml:"path"`
	Kind      ConnectionKind `json:"kind" yaml:"kind"`
	Tag       string         `json:"tag" yaml:"tag"`
	Source    Endpoint       `json:"source" yaml:"source"`
	Target    Endpoint       `json:"target" yaml:"target"`
	Location  Location       `json:"location" yaml:"location"`
}

type DocumentStats struct {
	Packages    int `json:"packages" yaml:"packages"`
	Components  int `json:"components" yaml:"components"`
	Ports       int `json:"ports" yaml:"ports"`
	Interfaces  int `json:"interfaces" yaml:"interfaces"`
	Connections int `json:"connections" yaml:"connections"`
}

// Document is the result of parsing one ARXML file.
type Document struct {
	LoadID        string        `json:"-" yaml:"-"`
	SourcePath    string        `json:"source" yaml:"source"`
	SchemaVersion string        `json:"schema_version,omitempty" yaml:"schema_version,omitempty"`
	Root          *Package      `json:"root" yaml:"root"`
	Warnings      []Warning     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Stats         DocumentStats `json:"stats" yaml:"stats"`
}
