package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"arxml-inspect/internal/core"
	"arxml-inspect/internal/types"
)

// Show looks up every element with the given short name and gathers the
// details needed to describe it, including the connectors that touch it.
func (s Service) Show(ctx context.Context, req ShowRequest) (ShowResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return ShowResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("element name is required")
	}
	opened, err := s.Open(ctx, OpenRequest{Path: req.Path})
	if err != nil {
		return ShowResult{}, err
	}
	root := opened.Document.Root
	result := ShowResult{Document: opened.Document}
	for _, hit := range opened.Index.Named(name) {
		match := ShowMatch{Result: hit}
		switch hit.Kind {
		case types.ItemKindPackage:
			match.Package = core.LookupPackage(root, hit.Path)
		case types.ItemKindComponent:
			match.Component = core.LookupComponent(root, hit.Path)
			match.Connections = core.ConnectionsOf(root, hit.Path)
		case types.ItemKindPort:
			owner, portName := core.SplitRef(hit.Path)
			comp, port, ok := core.LookupPort(root, types.Endpoint{ComponentPath: owner, PortName: portName})
			if !ok {
				continue
			}
			match.Component = comp
			match.Port = port
			match.Connections = portConnections(root, owner, portName)
		case types.ItemKindInterface:
			match.Interface = core.LookupInterface(root, hit.Path)
		}
		result.Matches = append(result.Matches, match)
	}
	if len(result.Matches) > 0 {
		return result, nil
	}
	result.Candidates = opened.Index.ComponentsByName(name)
	if len(result.Candidates) == 0 {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no element named %q in %s", name, req.Path))
	}
	return result, nil
}

func portConnections(root *types.Package, componentPath string, portName string) []*types.Connection {
	var out []*types.Connection
	for _, conn := range core.ConnectionsOf(root, componentPath) {
		if touches(conn.Source, componentPath, portName) || touches(conn.Target, componentPath, portName) {
			out = append(out, conn)
		}
	}
	return out
}

func touches(ep types.Endpoint, componentPath string, portName string) bool {
	return ep.ComponentPath == componentPath && ep.PortName == portName
}
