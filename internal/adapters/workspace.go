package adapters

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar/v4"

	"arxml-inspect/internal/ports"
	"arxml-inspect/internal/shared"
	"arxml-inspect/internal/types"
)

const (
	DefaultDocumentPattern = "**/*.arxml"
	largeDocumentBytes     = 500 * 1024 * 1024
	encodingProbeBytes     = 4096
)

var documentExtensions = []string{".arxml", ".xml"}

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

// Find expands pattern below root and returns regular files in lexical
// order, skipping VCS and build output directories.
func (a WorkspaceAdapter) Find(root string, pattern string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is empty")
	}
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultDocumentPattern
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid glob pattern %q", pattern))
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("workspace root %s not found", root)).
			WithCause(err)
	}
	if !info.IsDir() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("workspace root %s is not a directory", root))
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan workspace").
			WithCause(err)
	}
	var paths []string
	for _, match := range matches {
		rel, err := filepath.Rel(root, match)
		if err != nil || shouldSkipWorkspacePath(rel) {
			continue
		}
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		paths = append(paths, match)
	}
	sort.Strings(paths)
	return paths, nil
}

// Check rejects paths that cannot be parsed at all and collects notes
// about suspicious ones.
func (a WorkspaceAdapter) Check(path string) (types.FileCheck, error) {
	if strings.TrimSpace(path) == "" {
		return types.FileCheck{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		code := errbuilder.CodeInternal
		switch {
		case errors.Is(err, fs.ErrNotExist):
			code = errbuilder.CodeNotFound
		case errors.Is(err, fs.ErrPermission):
			code = errbuilder.CodePermissionDenied
		}
		return types.FileCheck{}, errbuilder.New().
			WithCode(code).
			WithMsg(fmt.Sprintf("file %s does not exist or cannot be read", path)).
			WithCause(err)
	}
	if info.IsDir() {
		return types.FileCheck{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("%s is a directory, not a file", path))
	}

	check := types.FileCheck{Path: path, Size: info.Size()}
	switch {
	case info.Size() == 0:
		check.Notes = append(check.Notes, "file is empty")
	case info.Size() > largeDocumentBytes:
		check.Notes = append(check.Notes, fmt.Sprintf("file is very large (%.1f MB), parsing may take a long time", shared.Megabytes(info.Size())))
	}
	if !hasDocumentExtension(path) {
		check.Notes = append(check.Notes, fmt.Sprintf("unexpected extension, expected one of %s", strings.Join(documentExtensions, ", ")))
	}
	if info.Size() > 0 {
		utf8OK, err := leadingBytesAreUTF8(path)
		if err != nil {
			return types.FileCheck{}, errbuilder.New().
				WithCode(errbuilder.CodePermissionDenied).
				WithMsg(fmt.Sprintf("cannot read %s", path)).
				WithCause(err)
		}
		if !utf8OK {
			check.Notes = append(check.Notes, "file encoding may not be UTF-8")
		}
	}
	return check, nil
}

func hasDocumentExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range documentExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func leadingBytesAreUTF8(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()
	buf := make([]byte, encodingProbeBytes)
	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	buf = buf[:n]
	// Drop a rune cut in half by the probe window.
	for i := 0; i < utf8.UTFMax && len(buf) > 0 && !utf8.Valid(buf); i++ {
		if n < encodingProbeBytes {
			break
		}
		buf = buf[:len(buf)-1]
	}
	return utf8.Valid(buf), nil
}

func shouldSkipWorkspacePath(rel string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		switch segment {
		case ".git", ".svn", "node_modules", "build", "out":
			return true
		}
	}
	return false
}

var _ ports.DocumentFinderPort = WorkspaceAdapter{}
