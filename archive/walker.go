// Package archive walks layout bundles: zip files carrying page layout
// documents.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"slices"
	"strings"

	"github.com/maruel/natural"
)

// LayoutFunc is called for every layout document found in a bundle. Name is
// the entry path inside the archive, r is valid only for the duration of the
// call. If an error is returned, processing stops.
type LayoutFunc func(name string, r io.Reader) error

// IsLayout reports whether name looks like layout document.
func IsLayout(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// WalkLayouts calls fn for every layout document under prefix in bundle,
// in natural order of entry names. Bundles with absolute entries or entries
// containing ".." are refused as a whole.
func WalkLayouts(bundle, prefix string, fn LayoutFunc) error {
	r, err := zip.OpenReader(bundle)
	if err != nil {
		return err
	}
	defer r.Close()

	var files []*zip.File
	for _, f := range r.File {
		name := f.Name
		if !isSafePath(name) {
			return fmt.Errorf("bundle entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) || !IsLayout(name) {
			continue
		}
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b *zip.File) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})

	for _, f := range files {
		if err := visit(f, fn); err != nil {
			return err
		}
	}
	return nil
}

func visit(f *zip.File, fn LayoutFunc) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("unable to open bundle entry %q: %w", f.Name, err)
	}
	defer rc.Close()
	return fn(f.Name, rc)
}

func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(name, "/"), "..")
}
