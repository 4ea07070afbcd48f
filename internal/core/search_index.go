package core

import (
	"sort"
	"strings"

	"arxml-inspect/internal/types"
)

type indexEntry struct {
	kind          types.ItemKind
	name          string
	lower         string
	path          string
	packagePath   string
	componentPath string
	componentType types.ComponentType
	direction     types.PortDirection
	iface         string
	detail        string
	text          string
}

// SearchIndex is a read-only view over one loaded document. It stores
// paths and names only, never pointers into the tree, and must be rebuilt
// after the document is reloaded.
type SearchIndex struct {
	loadID      string
	entries     []indexEntry
	packages    []int
	components  []int
	ports       []int
	interfaces  []int
	byType      map[types.ComponentType][]int
	byDirection map[types.PortDirection][]int
	byName      map[string][]int
}

// NewSearchIndex indexes doc in document order.
func NewSearchIndex(doc types.Document) *SearchIndex {
	idx := &SearchIndex{
		loadID:      doc.LoadID,
		byType:      map[types.ComponentType][]int{},
		byDirection: map[types.PortDirection][]int{},
		byName:      map[string][]int{},
	}
	WalkPackages(doc.Root, func(pkg *types.Package) {
		if pkg != doc.Root {
			idx.packages = append(idx.packages, idx.add(indexEntry{
				kind:        types.ItemKindPackage,
				name:        pkg.ShortName,
				path:        pkg.Path,
				packagePath: pkg.Path,
				text:        searchableText(pkg.ShortName, pkg.Description),
			}))
		}
		for _, comp := range pkg.Components {
			pos := idx.add(indexEntry{
				kind:          types.ItemKindComponent,
				name:          comp.ShortName,
				path:          comp.Path,
				packagePath:   comp.PackagePath,
				componentPath: comp.Path,
				componentType: comp.Type,
				detail:        string(comp.Type),
				text:          searchableText(comp.ShortName, comp.Description, string(comp.Type)),
			})
			idx.components = append(idx.components, pos)
			idx.byType[comp.Type] = append(idx.byType[comp.Type], pos)
			for _, port := range comp.Ports {
				portPos := idx.add(indexEntry{
					kind:          types.ItemKindPort,
					name:          port.ShortName,
					path:          JoinPath(comp.Path, port.ShortName),
					packagePath:   comp.PackagePath,
					componentPath: comp.Path,
					componentType: comp.Type,
					direction:     port.Direction,
					iface:         port.Interface.Ref,
					detail:        string(port.Direction),
					text:          searchableText(port.ShortName, port.Description, string(port.Direction), LastSegment(port.Interface.Ref)),
				})
				idx.ports = append(idx.ports, portPos)
				idx.byDirection[port.Direction] = append(idx.byDirection[port.Direction], portPos)
			}
		}
		for _, iface := range pkg.Interfaces {
			idx.interfaces = append(idx.interfaces, idx.add(indexEntry{
				kind:        types.ItemKindInterface,
				name:        iface.ShortName,
				path:        iface.Path,
				packagePath: pkg.Path,
				detail:      string(iface.Kind),
				text:        searchableText(iface.ShortName, iface.Description, string(iface.Kind)),
			}))
		}
	})
	return idx
}

func (i *SearchIndex) add(entry indexEntry) int {
	entry.lower = strings.ToLower(entry.name)
	pos := len(i.entries)
	i.entries = append(i.entries, entry)
	i.byName[entry.lower] = append(i.byName[entry.lower], pos)
	return pos
}

// BuiltFrom reports whether the index was built from this load of doc.
func (i *SearchIndex) BuiltFrom(doc types.Document) bool {
	return i.loadID == doc.LoadID
}

// ComponentsByName returns components whose short name contains substr,
// ignoring case.
func (i *SearchIndex) ComponentsByName(substr string) []types.ComponentRef {
	needle := strings.ToLower(strings.TrimSpace(substr))
	var out []types.ComponentRef
	for _, pos := range i.components {
		if strings.Contains(i.entries[pos].lower, needle) {
			out = append(out, i.componentRef(pos))
		}
	}
	return out
}

func (i *SearchIndex) ComponentsByType(kind types.ComponentType) []types.ComponentRef {
	var out []types.ComponentRef
	for _, pos := range i.byType[kind] {
		out = append(out, i.componentRef(pos))
	}
	return out
}

func (i *SearchIndex) PortsByDirection(direction types.PortDirection) []types.PortRef {
	var out []types.PortRef
	for _, pos := range i.byDirection[direction] {
		entry := i.entries[pos]
		out = append(out, types.PortRef{
			ComponentPath: entry.componentPath,
			ShortName:     entry.name,
			Direction:     entry.direction,
			Interface:     entry.iface,
		})
	}
	return out
}

// Named returns every indexed item whose short name equals name, ignoring
// case.
func (i *SearchIndex) Named(name string) []types.SearchResult {
	var out []types.SearchResult
	for _, pos := range i.byName[strings.ToLower(strings.TrimSpace(name))] {
		out = append(out, i.result(pos, 1.0))
	}
	return out
}

// Suggestions returns up to max distinct names and words starting with
// prefix, sorted.
func (i *SearchIndex) Suggestions(prefix string, max int) []string {
	needle := strings.ToLower(strings.TrimSpace(prefix))
	if needle == "" {
		return nil
	}
	seen := map[string]struct{}{}
	for _, entry := range i.entries {
		if strings.HasPrefix(entry.lower, needle) {
			seen[entry.name] = struct{}{}
		}
		for _, word := range strings.Fields(entry.text) {
			if len(word) > len(needle) && strings.HasPrefix(word, needle) {
				seen[word] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for value := range seen {
		out = append(out, value)
	}
	sort.Strings(out)
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

func (i *SearchIndex) Statistics() types.IndexStats {
	stats := types.IndexStats{
		Total:      len(i.entries),
		ByKind:     map[types.ItemKind]int{},
		Packages:   len(i.packages),
		Components: len(i.components),
		Ports:      len(i.ports),
	}
	for _, entry := range i.entries {
		stats.ByKind[entry.kind]++
	}
	return stats
}

func (i *SearchIndex) componentRef(pos int) types.ComponentRef {
	entry := i.entries[pos]
	return types.ComponentRef{
		Path:        entry.path,
		ShortName:   entry.name,
		PackagePath: entry.packagePath,
		Type:        entry.componentType,
	}
}

func (i *SearchIndex) result(pos int, score float64) types.SearchResult {
	entry := i.entries[pos]
	return types.SearchResult{
		Kind:        entry.kind,
		Name:        entry.name,
		Path:        entry.path,
		PackagePath: entry.packagePath,
		Detail:      entry.detail,
		Score:       score,
	}
}

func searchableText(parts ...string) string {
	var kept []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			kept = append(kept, strings.ToLower(part))
		}
	}
	return strings.Join(kept, " ")
}
