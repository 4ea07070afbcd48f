package core

import "strings"

// PathSeparator delimits short names in a full path. The document root
// has the empty path.
const PathSeparator = "/"

// JoinPath appends a short name to a parent path.
func JoinPath(parent string, shortName string) string {
	return parent + PathSeparator + shortName
}

// SplitRef splits "/A/B/Comp/Port" into the owner path "/A/B/Comp" and
// the last short name "Port".
func SplitRef(ref string) (string, string) {
	ref = normalizeRef(ref)
	idx := strings.LastIndex(ref, PathSeparator)
	if idx < 0 {
		return "", ref
	}
	return ref[:idx], ref[idx+1:]
}

// LastSegment returns the final short name of a reference.
func LastSegment(ref string) string {
	_, name := SplitRef(ref)
	return name
}

// PathSegments returns the short names that make up a path.
func PathSegments(path string) []string {
	path = strings.Trim(normalizeRef(path), PathSeparator)
	if path == "" {
		return nil
	}
	return strings.Split(path, PathSeparator)
}

// PathDepth is the number of segments in path; the root has depth 0.
func PathDepth(path string) int {
	return len(PathSegments(path))
}

func normalizeRef(ref string) string {
	ref = strings.TrimSpace(ref)
	return strings.TrimSuffix(ref, PathSeparator)
}
