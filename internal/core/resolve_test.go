package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arxml-inspect/internal/types"
)

func TestNewEndpoint(t *testing.T) {
	ep := NewEndpoint(" /Pkg/Comp/Port ", "/Pkg/Top/a")
	assert.Equal(t, types.RefStateSymbolic, ep.State)
	assert.Equal(t, "/Pkg/Comp", ep.ComponentPath)
	assert.Equal(t, "Port", ep.PortName)
	assert.Equal(t, "/Pkg/Top/a", ep.Context)

	absent := NewEndpoint("", "/Pkg/Top/a")
	assert.Equal(t, types.RefStateAbsent, absent.State)
	assert.True(t, absent.Dangling())
}

func TestDirectionsCompatible(t *testing.T) {
	provided := &types.Port{Direction: types.PortDirectionProvided}
	required := &types.Port{Direction: types.PortDirectionRequired}
	both := &types.Port{Direction: types.PortDirectionProvided, Bidirectional: true}

	tests := []struct {
		name string
		kind types.ConnectionKind
		a    *types.Port
		b    *types.Port
		want bool
	}{
		{name: "assembly provided to required", kind: types.ConnectionKindAssembly, a: provided, b: required, want: true},
		{name: "assembly provided to provided", kind: types.ConnectionKindAssembly, a: provided, b: provided, want: false},
		{name: "assembly required to required", kind: types.ConnectionKindAssembly, a: required, b: required, want: false},
		{name: "assembly bidirectional", kind: types.ConnectionKindAssembly, a: both, b: provided, want: true},
		{name: "delegation same direction", kind: types.ConnectionKindDelegation, a: provided, b: provided, want: true},
		{name: "delegation opposite direction", kind: types.ConnectionKindDelegation, a: provided, b: required, want: false},
		{name: "pass-through opposite direction", kind: types.ConnectionKindPassThrough, a: provided, b: required, want: true},
		{name: "unknown kind uses assembly rule", kind: types.ConnectionKindUnknown, a: required, b: provided, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectionsCompatible(tt.kind, tt.a, tt.b))
		})
	}
}

func TestResolveConnectionsThroughPrototypes(t *testing.T) {
	b, top := buildComposition(t, "P-PORT-PROTOTYPE", "R-PORT-PROTOTYPE")
	conn := b.AddConnection(top, "aToB", "ASSEMBLY-SW-CONNECTOR",
		NewEndpoint("/Other/Out", "/Pkg/Top/a"),
		NewEndpoint("/Pkg/CompB/In", "/Pkg/Top/b"),
		types.Location{})

	_, warnings, _ := b.Finish(t.Context())
	assert.Empty(t, warnings)
	assert.Equal(t, types.RefStateResolved, conn.Source.State)
	assert.Equal(t, "/Pkg/CompA", conn.Source.ComponentPath)
	assert.Equal(t, "/Pkg/CompA.Out", conn.Source.String())
	assert.Equal(t, types.RefStateResolved, conn.Target.State)
}

func TestResolveConnectionsContextIsComponent(t *testing.T) {
	b, top := buildComposition(t, "P-PORT-PROTOTYPE", "R-PORT-PROTOTYPE")
	conn := b.AddConnection(top, "short", "ASSEMBLY-SW-CONNECTOR",
		NewEndpoint("Out", "/Pkg/CompA"),
		NewEndpoint("In", "/Pkg/CompB"),
		types.Location{})

	_, warnings, _ := b.Finish(t.Context())
	assert.Empty(t, warnings)
	assert.Equal(t, "/Pkg/CompA.Out", conn.Source.String())
	assert.Equal(t, "/Pkg/CompB.In", conn.Target.String())
}

func TestResolveConnectionsWarnings(t *testing.T) {
	b, top := buildComposition(t, "P-PORT-PROTOTYPE", "P-PORT-PROTOTYPE")
	b.AddConnection(top, "AtoB", "ASSEMBLY-SW-CONNECTOR",
		NewEndpoint("/Pkg/CompA/Out", ""),
		NewEndpoint("/Pkg/CompB/In", ""),
		types.Location{})
	missing := b.AddConnection(top, "dangling", "ASSEMBLY-SW-CONNECTOR",
		NewEndpoint("/Pkg/Missing/Port", ""),
		NewEndpoint("", ""),
		types.Location{})

	root, warnings, stats := b.Finish(t.Context())
	want := []string{
		"direction-mismatch: AtoB",
		"unresolved-endpoint: /Pkg/Missing.Port",
		"unresolved-endpoint: dangling target",
	}
	if diff := cmp.Diff(want, warningStrings(warnings)); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2, stats.Connections)
	assert.Equal(t, types.RefStateSymbolic, missing.Source.State)
	assert.Equal(t, types.RefStateAbsent, missing.Target.State)
	require.Len(t, ConnectionsOf(root, "/Pkg/CompA"), 1)
}

func TestResolveInterfaces(t *testing.T) {
	b := NewModelBuilder()
	ifaces := b.AddPackage(b.Root(), "Ifaces", "", types.Location{})
	b.AddInterface(ifaces, "Speed", "SENDER-RECEIVER-INTERFACE", "", types.Location{})
	pkg := b.AddPackage(b.Root(), "Pkg", "", types.Location{})
	comp := b.AddComponent(pkg, "Comp", "APPLICATION-SW-COMPONENT-TYPE", "", types.Location{})
	exact := b.AddPort(comp, "Exact", "R-PORT-PROTOTYPE", "", types.InterfaceRef{Ref: "/Ifaces/Speed"}, types.Location{})
	byName := b.AddPort(comp, "ByName", "R-PORT-PROTOTYPE", "", types.InterfaceRef{Ref: "/Moved/Speed"}, types.Location{})
	missing := b.AddPort(comp, "Missing", "R-PORT-PROTOTYPE", "", types.InterfaceRef{Ref: "/Other/IfaceB"}, types.Location{Line: 7})

	_, warnings, _ := b.Finish(t.Context())
	assert.Equal(t, types.RefStateResolved, exact.Interface.State)
	assert.Equal(t, types.InterfaceKindSenderReceiver, exact.Interface.Kind)
	assert.Equal(t, "/Ifaces/Speed", byName.Interface.ResolvedPath)
	assert.Equal(t, types.RefStateSymbolic, missing.Interface.State)
	require.Len(t, warnings, 1)
	assert.Equal(t, "unresolved-interface: IfaceB", warnings[0].String())
	assert.Equal(t, "/Pkg/Comp/Missing", warnings[0].Path)
	assert.Equal(t, 7, warnings[0].Line)
}

func TestResolveInterfacesAmbiguousShortName(t *testing.T) {
	b := NewModelBuilder()
	first := b.AddPackage(b.Root(), "A", "", types.Location{})
	second := b.AddPackage(b.Root(), "B", "", types.Location{})
	b.AddInterface(first, "Speed", "SENDER-RECEIVER-INTERFACE", "", types.Location{})
	b.AddInterface(second, "Speed", "SENDER-RECEIVER-INTERFACE", "", types.Location{})
	comp := b.AddComponent(first, "Comp", "APPLICATION-SW-COMPONENT-TYPE", "", types.Location{})
	port := b.AddPort(comp, "In", "R-PORT-PROTOTYPE", "", types.InterfaceRef{Ref: "/C/Speed"}, types.Location{})

	_, warnings, _ := b.Finish(t.Context())
	assert.Equal(t, types.RefStateSymbolic, port.Interface.State)
	require.Len(t, warnings, 1)
	assert.Equal(t, types.WarningUnresolvedInterface, warnings[0].Kind)
}
