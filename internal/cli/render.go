package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"arxml-inspect/internal/app"
	"arxml-inspect/internal/core"
	"arxml-inspect/internal/shared"
	"arxml-inspect/internal/types"
)

const descriptionWidth = 60

type treeNode struct {
	Label    string
	Children []treeNode
}

type treeOptions struct {
	Ports       bool
	Connections bool
	// Depth limits how many package levels are expanded; 0 expands all.
	Depth int
}

func writeSummary(w io.Writer, result app.OpenResult, th theme) {
	doc := result.Document
	schema := doc.SchemaVersion
	if schema == "" {
		schema = "unknown"
	}
	fmt.Fprintf(w, "source: %s\n", doc.SourcePath)
	fmt.Fprintf(w, "schema: %s\n", schema)
	fmt.Fprintf(w, "packages: %d  components: %d  ports: %d  interfaces: %d  connections: %d\n",
		doc.Stats.Packages, doc.Stats.Components, doc.Stats.Ports, doc.Stats.Interfaces, doc.Stats.Connections)
	if result.Index != nil {
		if byType := componentTypeCounts(result.Index); len(byType) > 0 {
			fmt.Fprintf(w, "component types: %s\n", strings.Join(byType, ", "))
		}
		fmt.Fprintf(w, "port directions: provided=%d, required=%d\n",
			len(result.Index.PortsByDirection(types.PortDirectionProvided)),
			len(result.Index.PortsByDirection(types.PortDirectionRequired)))
	}
	fmt.Fprintf(w, "loaded in %s\n", result.Elapsed.Round(time.Microsecond))
	writeWarnings(w, doc.Warnings, th)
}

func componentTypeCounts(idx *core.SearchIndex) []string {
	var out []string
	for _, kind := range core.AllComponentTypes() {
		if count := len(idx.ComponentsByType(kind)); count > 0 {
			out = append(out, fmt.Sprintf("%s=%d", kind, count))
		}
	}
	sort.Strings(out)
	return out
}

func writeWarnings(w io.Writer, warnings []types.Warning, th theme) {
	fmt.Fprintf(w, "warnings: %d\n", len(warnings))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  %s %s", th.Warning, warning)
		if warning.Path != "" {
			fmt.Fprintf(w, " (%s", warning.Path)
			if warning.Line > 0 {
				fmt.Fprintf(w, " line %d", warning.Line)
			}
			fmt.Fprint(w, ")")
		}
		if warning.Message != "" {
			fmt.Fprintf(w, ": %s", warning.Message)
		}
		fmt.Fprintln(w)
	}
}

func documentTree(doc types.Document, opts treeOptions, th theme) treeNode {
	root := treeNode{Label: filepath.Base(doc.SourcePath)}
	if doc.Root != nil {
		root.Children = packageContents(doc.Root, opts, th)
	}
	return root
}

func packageContents(pkg *types.Package, opts treeOptions, th theme) []treeNode {
	var nodes []treeNode
	for _, comp := range pkg.Components {
		nodes = append(nodes, componentNode(comp, opts, th))
	}
	for _, iface := range pkg.Interfaces {
		label := iface.ShortName
		if iface.Kind != types.InterfaceKindNone {
			label += " [" + string(iface.Kind) + "]"
		}
		nodes = append(nodes, treeNode{Label: label})
	}
	if opts.Depth > 0 && core.PathDepth(pkg.Path) >= opts.Depth {
		return nodes
	}
	for _, child := range pkg.Packages {
		nodes = append(nodes, treeNode{
			Label:    child.ShortName + "/",
			Children: packageContents(child, opts, th),
		})
	}
	return nodes
}

func componentNode(comp *types.Component, opts treeOptions, th theme) treeNode {
	label := fmt.Sprintf("%s (%s)", comp.ShortName, comp.Type)
	if comp.Description != "" {
		label += " - " + shared.Truncate(comp.Description, descriptionWidth)
	}
	node := treeNode{Label: label}
	if opts.Ports {
		for _, port := range comp.Ports {
			node.Children = append(node.Children, treeNode{Label: portLabel(port, th)})
		}
	}
	if opts.Connections {
		for _, conn := range comp.Connections {
			node.Children = append(node.Children, treeNode{Label: connectionLabel(conn, th)})
		}
	}
	return node
}

func portLabel(port *types.Port, th theme) string {
	label := th.direction(port) + " " + port.ShortName
	if port.Interface.Ref == "" {
		return label
	}
	label += " : " + core.LastSegment(port.Interface.Ref)
	if _, ok := port.Interface.Resolved(); !ok {
		label += " " + th.Warning
	}
	return label
}

// connectionLabel marks connectors with an endpoint that did not resolve.
func connectionLabel(conn *types.Connection, th theme) string {
	label := fmt.Sprintf("%s: %s -> %s [%s]", conn.ShortName, conn.Source, conn.Target, conn.Kind)
	if conn.Source.Dangling() || conn.Target.Dangling() {
		label += " " + th.Warning
	}
	return label
}

func renderTree(w io.Writer, root treeNode, th theme) {
	fmt.Fprintln(w, root.Label)
	renderChildren(w, root.Children, th, "")
}

func renderChildren(w io.Writer, nodes []treeNode, th theme, prefix string) {
	for i, node := range nodes {
		branch, next := th.Branch, th.Pipe
		if i == len(nodes)-1 {
			branch, next = th.Last, th.Space
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, node.Label)
		renderChildren(w, node.Children, th, prefix+next)
	}
}

func writeSearchResults(w io.Writer, result app.SearchResult) {
	for _, item := range result.Results {
		fmt.Fprintf(w, "%-9s %s", item.Kind, item.Path)
		if item.Detail != "" {
			fmt.Fprintf(w, " (%s)", item.Detail)
		}
		fmt.Fprintf(w, " %.2f\n", item.Score)
	}
	fmt.Fprintf(w, "%d results for %q (%s, %s)\n", len(result.Results), result.Query.Text, result.Query.Mode, result.Query.Scope)
	if len(result.Suggestions) > 0 {
		fmt.Fprintf(w, "did you mean: %s\n", strings.Join(result.Suggestions, ", "))
	}
}

func writeScan(w io.Writer, result app.ScanResult) {
	for _, entry := range result.Entries {
		if entry.Err != nil {
			fmt.Fprintf(w, "%s: error: %s\n", entry.Path, errorMessage(entry.Err))
			continue
		}
		schema := entry.SchemaVersion
		if schema == "" {
			schema = "unknown"
		}
		fmt.Fprintf(w, "%s: schema %s, %d components, %d ports, %d connections, %d warnings\n",
			entry.Path, schema, entry.Stats.Components, entry.Stats.Ports, entry.Stats.Connections, entry.Warnings)
	}
	fmt.Fprintf(w, "scanned %d documents, %d failed\n", len(result.Entries), result.Failed)
}

func writeShow(w io.Writer, result app.ShowResult, name string, th theme) {
	if len(result.Matches) == 0 {
		fmt.Fprintf(w, "no element named %q; components containing it:\n", name)
		for _, ref := range result.Candidates {
			fmt.Fprintf(w, "  %s (%s)\n", ref.Path, ref.Type)
		}
		return
	}
	for i, match := range result.Matches {
		if i > 0 {
			fmt.Fprintln(w)
		}
		switch {
		case match.Port != nil:
			writePortDetails(w, match, th)
		case match.Component != nil:
			writeComponentDetails(w, match.Component, th)
		case match.Interface != nil:
			writeInterfaceDetails(w, match.Interface)
		case match.Package != nil:
			pkg := match.Package
			fmt.Fprintf(w, "package %s\n", pkg.Path)
			if pkg.Description != "" {
				fmt.Fprintf(w, "  description: %s\n", pkg.Description)
			}
			fmt.Fprintf(w, "  components: %d  interfaces: %d  packages: %d\n",
				len(pkg.Components), len(pkg.Interfaces), len(pkg.Packages))
		}
		if len(match.Connections) > 0 {
			fmt.Fprintln(w, "  connections:")
			for _, conn := range match.Connections {
				fmt.Fprintf(w, "    %s\n", connectionLabel(conn, th))
			}
		}
	}
}

func writeComponentDetails(w io.Writer, comp *types.Component, th theme) {
	fmt.Fprintf(w, "component %s (%s)\n", comp.Path, comp.Type)
	if comp.Description != "" {
		fmt.Fprintf(w, "  description: %s\n", comp.Description)
	}
	if len(comp.Ports) > 0 {
		fmt.Fprintln(w, "  ports:")
		for _, port := range comp.Ports {
			fmt.Fprintf(w, "    %s\n", portLabel(port, th))
		}
	}
	if len(comp.Prototypes) > 0 {
		fmt.Fprintln(w, "  prototypes:")
		for _, proto := range comp.Prototypes {
			fmt.Fprintf(w, "    %s -> %s\n", proto.ShortName, proto.TypeRef)
		}
	}
}

func writePortDetails(w io.Writer, match app.ShowMatch, th theme) {
	port := match.Port
	direction := string(port.Direction)
	if port.Bidirectional {
		direction = "bidirectional"
	}
	fmt.Fprintf(w, "port %s %s (%s)\n", match.Result.Path, th.direction(port), direction)
	fmt.Fprintf(w, "  owner: %s (%s)\n", match.Component.Path, match.Component.Type)
	switch path, ok := port.Interface.Resolved(); {
	case ok:
		fmt.Fprintf(w, "  interface: %s\n", path)
	case port.Interface.Ref != "":
		fmt.Fprintf(w, "  interface: %s %s unresolved\n", port.Interface.Ref, th.Warning)
	default:
		fmt.Fprintln(w, "  interface: none")
	}
}

func writeInterfaceDetails(w io.Writer, iface *types.Interface) {
	label := string(iface.Kind)
	if iface.IsService {
		label += ", service"
	}
	fmt.Fprintf(w, "interface %s (%s)\n", iface.Path, label)
	if iface.Description != "" {
		fmt.Fprintf(w, "  description: %s\n", iface.Description)
	}
	if len(iface.DataElements) > 0 {
		fmt.Fprintln(w, "  data elements:")
		for _, el := range iface.DataElements {
			fmt.Fprintf(w, "    %s : %s\n", el.ShortName, core.LastSegment(el.TypeRef))
		}
	}
	if len(iface.Operations) > 0 {
		fmt.Fprintln(w, "  operations:")
		for _, op := range iface.Operations {
			args := make([]string, 0, len(op.Arguments))
			for _, arg := range op.Arguments {
				args = append(args, string(arg.Direction)+" "+arg.ShortName)
			}
			fmt.Fprintf(w, "    %s(%s)\n", op.ShortName, strings.Join(args, ", "))
		}
	}
	if len(iface.Triggers) > 0 {
		fmt.Fprintf(w, "  triggers: %s\n", strings.Join(iface.Triggers, ", "))
	}
	for _, group := range iface.ModeGroups {
		fmt.Fprintf(w, "  mode group: %s : %s\n", group.ShortName, core.LastSegment(group.TypeRef))
	}
}
