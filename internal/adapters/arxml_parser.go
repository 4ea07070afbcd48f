package adapters

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"arxml-inspect/internal/core"
	"arxml-inspect/internal/ports"
	"arxml-inspect/internal/types"
)

const autosarRootElement = "AUTOSAR"

// ARXMLParserAdapter reads AUTOSAR XML into the package tree. The value
// holds no state; every call builds a fresh model.
type ARXMLParserAdapter struct{}

func NewARXMLParserAdapter() ARXMLParserAdapter {
	return ARXMLParserAdapter{}
}

func (a ARXMLParserAdapter) ParseFile(ctx context.Context, path string) (types.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		code := errbuilder.CodeInternal
		switch {
		case errors.Is(err, fs.ErrNotExist):
			code = errbuilder.CodeNotFound
		case errors.Is(err, fs.ErrPermission):
			code = errbuilder.CodePermissionDenied
		}
		return types.Document{}, errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("failed to open %s", path)).
			WithCause(err)
	}
	defer file.Close()
	return a.Parse(ctx, bufio.NewReader(file), path)
}

// Parse decodes a whole document. Malformed XML yields a *types.ParseError
// and no model; model anomalies are returned as document warnings.
func (a ARXMLParserAdapter) Parse(ctx context.Context, r io.Reader, source string) (types.Document, error) {
	if err := ctx.Err(); err != nil {
		return types.Document{}, err
	}
	root, err := decodeXML(r, source)
	if err != nil {
		return types.Document{}, err
	}
	if root.name != autosarRootElement {
		return types.Document{}, &types.ParseError{
			Source: source,
			Line:   root.loc.Line,
			Column: root.loc.Column,
			Msg:    fmt.Sprintf("root element is %s, expected %s", root.name, autosarRootElement),
		}
	}

	w := &arxmlWalker{ctx: ctx, builder: core.NewModelBuilder()}
	version := core.DetectSchemaVersion(root.attrs["schemaLocation"])
	w.checkSchemaVersion(version, root.loc)
	if err := w.walkPackages(w.builder.Root(), root, true); err != nil {
		return types.Document{}, err
	}
	tree, warnings, stats := w.builder.Finish(ctx)

	doc := types.Document{
		LoadID:        uuid.NewString(),
		SourcePath:    source,
		SchemaVersion: version,
		Root:          tree,
		Warnings:      warnings,
		Stats:         stats,
	}
	log.Ctx(ctx).Debug().
		Str("source", source).
		Str("schema", version).
		Str("load_id", doc.LoadID).
		Int("warnings", len(warnings)).
		Msg("document parsed")
	return doc, nil
}

type arxmlWalker struct {
	ctx     context.Context
	builder *core.ModelBuilder
}

func (w *arxmlWalker) checkSchemaVersion(version string, loc types.Location) {
	if version == "" {
		return
	}
	ok, err := core.SchemaVersionSupported(version)
	if err != nil {
		log.Ctx(w.ctx).Debug().Err(err).Str("schema", version).Msg("schema version not comparable")
		return
	}
	if !ok {
		w.builder.Warn(types.WarningUnsupportedSchemaVersion, version, "", loc,
			fmt.Sprintf("schema %s is outside %s", version, core.SupportedSchemaVersions))
	}
}

// walkPackages visits AR-PACKAGES (and the older SUB-PACKAGES) below
// node depth-first. Cancellation is honoured between top-level packages.
func (w *arxmlWalker) walkPackages(parent *types.Package, node *xmlNode, top bool) error {
	for _, group := range node.children {
		if group.name != "AR-PACKAGES" && group.name != "SUB-PACKAGES" {
			continue
		}
		for _, pkgNode := range group.children {
			if pkgNode.name != "AR-PACKAGE" {
				continue
			}
			if top {
				if err := w.ctx.Err(); err != nil {
					return err
				}
			}
			name := pkgNode.childText("SHORT-NAME")
			if name == "" {
				w.builder.MissingShortName(pkgNode.name, parent.Path, pkgNode.loc)
				continue
			}
			pkg := w.builder.AddPackage(parent, name, description(pkgNode), pkgNode.loc)
			w.walkElements(pkg, pkgNode)
			if err := w.walkPackages(pkg, pkgNode, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *arxmlWalker) walkElements(pkg *types.Package, pkgNode *xmlNode) {
	elements := pkgNode.child("ELEMENTS")
	if elements == nil {
		return
	}
	for _, el := range elements.children {
		switch {
		case core.IsInterfaceTag(el.name):
			w.addInterface(pkg, el)
		case core.IsComponentTag(el.name, el.child("PORTS") != nil):
			w.addComponent(pkg, el)
		}
	}
}

func (w *arxmlWalker) addComponent(pkg *types.Package, el *xmlNode) {
	name := el.childText("SHORT-NAME")
	if name == "" {
		w.builder.MissingShortName(el.name, pkg.Path, el.loc)
		return
	}
	comp := w.builder.AddComponent(pkg, name, el.name, description(el), el.loc)
	if portsNode := el.child("PORTS"); portsNode != nil {
		for _, portNode := range portsNode.children {
			w.addPort(comp, portNode)
		}
	}
	if protos := el.child("COMPONENTS"); protos != nil {
		for _, protoNode := range protos.children {
			protoName := protoNode.childText("SHORT-NAME")
			if protoName == "" {
				w.builder.MissingShortName(protoNode.name, comp.Path, protoNode.loc)
				continue
			}
			w.builder.AddPrototype(comp, protoName, protoNode.childText("TYPE-TREF"))
		}
	}
	if connectors := el.child("CONNECTORS"); connectors != nil {
		for _, connNode := range connectors.children {
			w.addConnection(comp, connNode)
		}
	}
}

func (w *arxmlWalker) addPort(comp *types.Component, node *xmlNode) {
	name := node.childText("SHORT-NAME")
	if name == "" {
		w.builder.MissingShortName(node.name, comp.Path, node.loc)
		return
	}
	var ref types.InterfaceRef
	tref := node.find(func(n *xmlNode) bool {
		return strings.HasSuffix(n.name, "INTERFACE-TREF")
	})
	if tref != nil {
		ref.Ref = tref.value()
		if dest := tref.attrs["DEST"]; dest != "" {
			// unrecognised DEST leaves the kind for the resolver to fill in
			if kind, known := core.InterfaceKindForTag(dest); known {
				ref.Kind = kind
			}
		}
	}
	w.builder.AddPort(comp, name, node.name, description(node), ref, node.loc)
}

func (w *arxmlWalker) addInterface(pkg *types.Package, el *xmlNode) {
	name := el.childText("SHORT-NAME")
	if name == "" {
		w.builder.MissingShortName(el.name, pkg.Path, el.loc)
		return
	}
	iface := w.builder.AddInterface(pkg, name, el.name, description(el), el.loc)
	iface.IsService = strings.EqualFold(el.childText("IS-SERVICE"), "true")
	for _, group := range []string{"DATA-ELEMENTS", "NV-DATAS", "PARAMETERS"} {
		if list := el.child(group); list != nil {
			for _, item := range list.children {
				if itemName := item.childText("SHORT-NAME"); itemName != "" {
					iface.DataElements = append(iface.DataElements, types.DataElement{
						ShortName: itemName,
						TypeRef:   item.childText("TYPE-TREF"),
					})
				}
			}
		}
	}
	if list := el.child("OPERATIONS"); list != nil {
		for _, opNode := range list.children {
			if op, ok := readOperation(opNode); ok {
				iface.Operations = append(iface.Operations, op)
			}
		}
	}
	if list := el.child("TRIGGERS"); list != nil {
		for _, trigger := range list.children {
			if triggerName := trigger.childText("SHORT-NAME"); triggerName != "" {
				iface.Triggers = append(iface.Triggers, triggerName)
			}
		}
	}
	for _, child := range el.children {
		if child.name != "MODE-GROUP" {
			continue
		}
		if groupName := child.childText("SHORT-NAME"); groupName != "" {
			iface.ModeGroups = append(iface.ModeGroups, types.ModeGroup{
				ShortName: groupName,
				TypeRef:   child.childText("TYPE-TREF"),
			})
		}
	}
}

func readOperation(node *xmlNode) (types.Operation, bool) {
	name := node.childText("SHORT-NAME")
	if name == "" {
		return types.Operation{}, false
	}
	op := types.Operation{ShortName: name}
	if args := node.child("ARGUMENTS"); args != nil {
		for _, arg := range args.children {
			argName := arg.childText("SHORT-NAME")
			if argName == "" {
				continue
			}
			op.Arguments = append(op.Arguments, types.Argument{
				ShortName: argName,
				Direction: core.ArgumentDirectionFor(arg.childText("DIRECTION")),
				TypeRef:   arg.childText("TYPE-TREF"),
			})
		}
	}
	return op, true
}

// connectorEnds lists the source and target element of each known
// connector kind.
var connectorEnds = map[types.ConnectionKind][2]string{
	types.ConnectionKindAssembly:    {"PROVIDER-IREF", "REQUESTER-IREF"},
	types.ConnectionKindDelegation:  {"INNER-PORT-IREF", "OUTER-PORT-REF"},
	types.ConnectionKindPassThrough: {"PROVIDED-OUTER-PORT-REF", "REQUIRED-OUTER-PORT-REF"},
}

func (w *arxmlWalker) addConnection(comp *types.Component, node *xmlNode) {
	name := node.childText("SHORT-NAME")
	if name == "" {
		w.builder.MissingShortName(node.name, comp.Path, node.loc)
		return
	}
	kind, _ := core.ConnectionKindForTag(node.name)
	var source, target types.Endpoint
	if ends, ok := connectorEnds[kind]; ok {
		source = endpointFrom(node.child(ends[0]))
		target = endpointFrom(node.child(ends[1]))
	} else {
		source, target = fallbackEndpoints(node)
	}
	w.builder.AddConnection(comp, name, node.name, source, target, node.loc)
}

// endpointFrom reads either a plain port reference or an instance ref
// holding a context prototype and a target port reference.
func endpointFrom(node *xmlNode) types.Endpoint {
	if node == nil {
		return core.NewEndpoint("", "")
	}
	if len(node.children) == 0 {
		return core.NewEndpoint(node.value(), "")
	}
	var contextRef string
	if ctxNode := node.find(func(n *xmlNode) bool { return n.name == "CONTEXT-COMPONENT-REF" }); ctxNode != nil {
		contextRef = ctxNode.value()
	}
	target := node.find(isTargetPortRef)
	if target == nil {
		return core.NewEndpoint("", contextRef)
	}
	return core.NewEndpoint(target.value(), contextRef)
}

// fallbackEndpoints takes the first two port references of a connector
// whose kind is not known.
func fallbackEndpoints(node *xmlNode) (types.Endpoint, types.Endpoint) {
	var found []types.Endpoint
	var collect func(n *xmlNode, contextRef string)
	collect = func(n *xmlNode, contextRef string) {
		if ctxNode := n.child("CONTEXT-COMPONENT-REF"); ctxNode != nil {
			contextRef = ctxNode.value()
		}
		for _, c := range n.children {
			if len(found) == 2 {
				return
			}
			if isTargetPortRef(c) {
				found = append(found, core.NewEndpoint(c.value(), contextRef))
				continue
			}
			collect(c, contextRef)
		}
	}
	collect(node, "")
	for len(found) < 2 {
		found = append(found, core.NewEndpoint("", ""))
	}
	return found[0], found[1]
}

func isTargetPortRef(n *xmlNode) bool {
	return strings.HasSuffix(n.name, "PORT-REF") && len(n.children) == 0
}

func description(node *xmlNode) string {
	if text := node.pathText("DESC", "L-2"); text != "" {
		return text
	}
	return node.childText("DESC")
}

var _ ports.DocumentParserPort = ARXMLParserAdapter{}
