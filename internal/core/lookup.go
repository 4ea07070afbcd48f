package core

import "arxml-inspect/internal/types"

// WalkPackages visits root and every package below it depth-first in
// document order.
func WalkPackages(root *types.Package, fn func(pkg *types.Package)) {
	if root == nil {
		return
	}
	fn(root)
	for _, child := range root.Packages {
		WalkPackages(child, fn)
	}
}

// WalkComponents visits every component below root in document order.
func WalkComponents(root *types.Package, fn func(comp *types.Component)) {
	WalkPackages(root, func(pkg *types.Package) {
		for _, comp := range pkg.Components {
			fn(comp)
		}
	})
}

func LookupPackage(root *types.Package, path string) *types.Package {
	current := root
	for _, name := range PathSegments(path) {
		if current == nil {
			return nil
		}
		current = childPackage(current, name)
	}
	return current
}

func LookupComponent(root *types.Package, path string) *types.Component {
	pkgPath, name := SplitRef(path)
	pkg := LookupPackage(root, pkgPath)
	if pkg == nil {
		return nil
	}
	for _, comp := range pkg.Components {
		if comp.ShortName == name {
			return comp
		}
	}
	return nil
}

func LookupInterface(root *types.Package, path string) *types.Interface {
	pkgPath, name := SplitRef(path)
	pkg := LookupPackage(root, pkgPath)
	if pkg == nil {
		return nil
	}
	for _, iface := range pkg.Interfaces {
		if iface.ShortName == name {
			return iface
		}
	}
	return nil
}

// LookupPort resolves an endpoint against the tree on demand.
func LookupPort(root *types.Package, ep types.Endpoint) (*types.Component, *types.Port, bool) {
	comp := LookupComponent(root, ep.ComponentPath)
	if comp == nil {
		return nil, nil, false
	}
	port := findPort(comp, ep.PortName)
	if port == nil {
		return comp, nil, false
	}
	return comp, port, true
}

// ConnectionsOf lists the connections that have an endpoint on the
// component at path, in document order.
func ConnectionsOf(root *types.Package, path string) []*types.Connection {
	var out []*types.Connection
	WalkComponents(root, func(comp *types.Component) {
		for _, conn := range comp.Connections {
			if conn.Source.ComponentPath == path || conn.Target.ComponentPath == path {
				out = append(out, conn)
			}
		}
	})
	return out
}

func childPackage(pkg *types.Package, name string) *types.Package {
	for _, child := range pkg.Packages {
		if child.ShortName == name {
			return child
		}
	}
	return nil
}

func findPort(comp *types.Component, name string) *types.Port {
	for _, port := range comp.Ports {
		if port.ShortName == name {
			return port
		}
	}
	return nil
}
