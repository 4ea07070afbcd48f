package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"arxml-inspect/internal/types"
)

// ModelBuilder assembles the package tree of one document. The XML walker
// drives it top-down; Finish resolves the symbolic references once the
// whole tree exists. A builder is single-use and not safe for concurrent
// use.
type ModelBuilder struct {
	root       *types.Package
	packages   map[string]*types.Package
	components map[string]*types.Component
	interfaces map[string]*types.Interface
	byName     map[string][]*types.Interface
	prototypes map[string]types.Prototype
	warnings   []types.Warning
	finished   bool
}

func NewModelBuilder() *ModelBuilder {
	root := &types.Package{}
	return &ModelBuilder{
		root:       root,
		packages:   map[string]*types.Package{"": root},
		components: map[string]*types.Component{},
		interfaces: map[string]*types.Interface{},
		byName:     map[string][]*types.Interface{},
		prototypes: map[string]types.Prototype{},
	}
}

// Root returns the identity package that holds the top-level packages.
func (b *ModelBuilder) Root() *types.Package {
	return b.root
}

func (b *ModelBuilder) Warn(kind types.WarningKind, subject string, path string, loc types.Location, msg string) {
	b.warnings = append(b.warnings, types.Warning{
		Kind:    kind,
		Subject: subject,
		Path:    path,
		Message: msg,
		Line:    loc.Line,
		Column:  loc.Column,
	})
}

// MissingShortName records an element that cannot be placed in the tree.
func (b *ModelBuilder) MissingShortName(tag string, parentPath string, loc types.Location) {
	b.Warn(types.WarningMissingShortName, tag, parentPath, loc, "element without SHORT-NAME skipped")
}

// AddPackage creates a child package, or returns the existing sibling of
// the same name so that sibling names stay unique.
func (b *ModelBuilder) AddPackage(parent *types.Package, shortName string, description string, loc types.Location) *types.Package {
	path := JoinPath(parent.Path, shortName)
	if existing, ok := b.packages[path]; ok {
		b.Warn(types.WarningDuplicatePackage, shortName, path, loc, "sibling package merged into first definition")
		if existing.Description == "" {
			existing.Description = description
		}
		return existing
	}
	pkg := &types.Package{
		ShortName:   shortName,
		Path:        path,
		Description: description,
		Location:    loc,
	}
	parent.Packages = append(parent.Packages, pkg)
	b.packages[path] = pkg
	return pkg
}

// AddComponent classifies tag and attaches a new component to pkg.
func (b *ModelBuilder) AddComponent(pkg *types.Package, shortName string, tag string, description string, loc types.Location) *types.Component {
	kind, known := ComponentTypeForTag(tag)
	path := JoinPath(pkg.Path, shortName)
	comp := &types.Component{
		ShortName:   shortName,
		Path:        path,
		PackagePath: pkg.Path,
		Type:        kind,
		Tag:         tag,
		Description: description,
		Location:    loc,
	}
	if !known {
		b.Warn(types.WarningUnknownType, tag, path, loc, fmt.Sprintf("component %s has unrecognized type tag", shortName))
	}
	if _, exists := b.components[path]; exists {
		b.Warn(types.WarningDuplicateElement, shortName, path, loc, "component name already used in package")
	} else {
		b.components[path] = comp
	}
	pkg.Components = append(pkg.Components, comp)
	return comp
}

// AddPort attaches a port to comp. A non-empty interface reference starts
// out symbolic and is resolved in Finish.
func (b *ModelBuilder) AddPort(comp *types.Component, shortName string, tag string, description string, ref types.InterfaceRef, loc types.Location) *types.Port {
	direction, bidirectional, known := PortKindForTag(tag)
	path := JoinPath(comp.Path, shortName)
	if !known {
		b.Warn(types.WarningUnknownPortKind, tag, path, loc, "port treated as required")
	}
	if findPort(comp, shortName) != nil {
		b.Warn(types.WarningDuplicateElement, shortName, path, loc, "port name already used in component")
	}
	ref.State = types.RefStateAbsent
	if ref.Ref != "" {
		ref.State = types.RefStateSymbolic
	}
	port := &types.Port{
		ShortName:     shortName,
		Direction:     direction,
		Bidirectional: bidirectional,
		Tag:           tag,
		Description:   description,
		Interface:     ref,
		Location:      loc,
	}
	comp.Ports = append(comp.Ports, port)
	return port
}

func (b *ModelBuilder) AddInterface(pkg *types.Package, shortName string, tag string, description string, loc types.Location) *types.Interface {
	kind, known := InterfaceKindForTag(tag)
	path := JoinPath(pkg.Path, shortName)
	if !known {
		b.Warn(types.WarningUnknownInterfaceKind, tag, path, loc, "interface kind not recognized")
	}
	iface := &types.Interface{
		ShortName:   shortName,
		Path:        path,
		Kind:        kind,
		Tag:         tag,
		Description: description,
		Location:    loc,
	}
	if _, exists := b.interfaces[path]; exists {
		b.Warn(types.WarningDuplicateElement, shortName, path, loc, "interface name already used in package")
	} else {
		b.interfaces[path] = iface
		b.byName[shortName] = append(b.byName[shortName], iface)
	}
	pkg.Interfaces = append(pkg.Interfaces, iface)
	return iface
}

func (b *ModelBuilder) AddPrototype(comp *types.Component, shortName string, typeRef string) {
	proto := types.Prototype{
		ShortName: shortName,
		Path:      JoinPath(comp.Path, shortName),
		TypeRef:   normalizeRef(typeRef),
	}
	comp.Prototypes = append(comp.Prototypes, proto)
	b.prototypes[proto.Path] = proto
}

// AddConnection records a connector owned by the composition comp. The
// connection is always kept, whatever the state of its endpoints.
func (b *ModelBuilder) AddConnection(comp *types.Component, shortName string, tag string, source types.Endpoint, target types.Endpoint, loc types.Location) *types.Connection {
	kind, known := ConnectionKindForTag(tag)
	path := JoinPath(comp.Path, shortName)
	if !known {
		b.Warn(types.WarningUnknownConnectorKind, tag, path, loc, "connector kind not recognized")
	}
	conn := &types.Connection{
		ShortName: shortName,
		Path:      path,
		Kind:      kind,
		Tag:       tag,
		Source:    source,
		Target:    target,
		Location:  loc,
	}
	comp.Connections = append(comp.Connections, conn)
	return conn
}

// Finish resolves interface and endpoint references against the
// completed tree and returns the root, the warnings in discovery order
// and element counts. The builder must not be used afterwards.
func (b *ModelBuilder) Finish(ctx context.Context) (*types.Package, []types.Warning, types.DocumentStats) {
	if b.finished {
		return b.root, b.warnings, CountElements(b.root)
	}
	b.finished = true
	b.resolveInterfaces()
	b.resolveConnections()
	stats := CountElements(b.root)
	log.Ctx(ctx).Debug().
		Int("packages", stats.Packages).
		Int("components", stats.Components).
		Int("ports", stats.Ports).
		Int("connections", stats.Connections).
		Int("warnings", len(b.warnings)).
		Msg("model built")
	return b.root, b.warnings, stats
}

// CountElements walks the tree below root; root itself is not counted.
func CountElements(root *types.Package) types.DocumentStats {
	var stats types.DocumentStats
	WalkPackages(root, func(pkg *types.Package) {
		if pkg != root {
			stats.Packages++
		}
		stats.Interfaces += len(pkg.Interfaces)
		for _, comp := range pkg.Components {
			stats.Components++
			stats.Ports += len(comp.Ports)
			stats.Connections += len(comp.Connections)
		}
	})
	return stats
}
