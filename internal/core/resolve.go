package core

import (
	"fmt"

	"arxml-inspect/internal/types"
)

// NewEndpoint builds a symbolic endpoint from a target port reference and
// the optional context prototype reference of an instance ref.
func NewEndpoint(portRef string, context string) types.Endpoint {
	portRef = normalizeRef(portRef)
	ep := types.Endpoint{
		PortRef: portRef,
		Context: normalizeRef(context),
		State:   types.RefStateAbsent,
	}
	if portRef == "" {
		return ep
	}
	ep.ComponentPath, ep.PortName = SplitRef(portRef)
	ep.State = types.RefStateSymbolic
	return ep
}

func (b *ModelBuilder) resolveInterfaces() {
	WalkComponents(b.root, func(comp *types.Component) {
		for _, port := range comp.Ports {
			if port.Interface.State != types.RefStateSymbolic {
				continue
			}
			if iface := b.lookupInterface(port.Interface.Ref); iface != nil {
				port.Interface.State = types.RefStateResolved
				port.Interface.ResolvedPath = iface.Path
				if port.Interface.Kind == types.InterfaceKindNone {
					port.Interface.Kind = iface.Kind
				}
				continue
			}
			b.Warn(types.WarningUnresolvedInterface, LastSegment(port.Interface.Ref), JoinPath(comp.Path, port.ShortName), port.Location,
				fmt.Sprintf("interface %s of port %s is not defined in this document", port.Interface.Ref, port.ShortName))
		}
	})
}

// lookupInterface tries the exact path first and then a short name that
// is unique across the document.
func (b *ModelBuilder) lookupInterface(ref string) *types.Interface {
	ref = normalizeRef(ref)
	if iface, ok := b.interfaces[ref]; ok {
		return iface
	}
	candidates := b.byName[LastSegment(ref)]
	if len(candidates) == 1 {
		return candidates[0]
	}
	return nil
}

func (b *ModelBuilder) resolveConnections() {
	WalkComponents(b.root, func(comp *types.Component) {
		for _, conn := range comp.Connections {
			source, sourceOK := b.resolveEndpoint(&conn.Source)
			target, targetOK := b.resolveEndpoint(&conn.Target)
			if !sourceOK {
				b.warnEndpoint(conn, conn.Source, "source")
			}
			if !targetOK {
				b.warnEndpoint(conn, conn.Target, "target")
			}
			if !sourceOK || !targetOK {
				continue
			}
			if !DirectionsCompatible(conn.Kind, source, target) {
				b.Warn(types.WarningDirectionMismatch, conn.ShortName, conn.Path, conn.Location,
					fmt.Sprintf("%s connector links %s port %s to %s port %s",
						conn.Kind, source.Direction, conn.Source, target.Direction, conn.Target))
			}
		}
	})
}

func (b *ModelBuilder) warnEndpoint(conn *types.Connection, ep types.Endpoint, side string) {
	subject := ep.String()
	if subject == "" {
		subject = conn.ShortName + " " + side
	}
	b.Warn(types.WarningUnresolvedEndpoint, subject, conn.Path, conn.Location,
		fmt.Sprintf("%s endpoint of connector %s does not resolve", side, conn.ShortName))
}

// resolveEndpoint looks up the port by component path and name. When the
// component path is unknown it follows the context prototype to its type;
// a context that names a component type directly is accepted as well.
func (b *ModelBuilder) resolveEndpoint(ep *types.Endpoint) (*types.Port, bool) {
	if ep.State == types.RefStateAbsent {
		return nil, false
	}
	comp := b.components[ep.ComponentPath]
	if comp == nil && ep.Context != "" {
		if proto, ok := b.prototypes[ep.Context]; ok {
			comp = b.components[proto.TypeRef]
		} else {
			comp = b.components[ep.Context]
		}
	}
	if comp == nil {
		ep.State = types.RefStateSymbolic
		return nil, false
	}
	port := findPort(comp, ep.PortName)
	if port == nil {
		ep.State = types.RefStateSymbolic
		return nil, false
	}
	ep.ComponentPath = comp.Path
	ep.State = types.RefStateResolved
	return port, true
}

// DirectionsCompatible applies the connector direction rule: delegation
// forwards a port of the same direction, every other kind links a
// provided port to a required one. Bidirectional ports satisfy both.
func DirectionsCompatible(kind types.ConnectionKind, a *types.Port, b *types.Port) bool {
	if a.Bidirectional || b.Bidirectional {
		return true
	}
	if kind == types.ConnectionKindDelegation {
		return a.Direction == b.Direction
	}
	return a.Direction != b.Direction
}
