// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding"
)

// ErrNotFound is returned by ReadFile when archive has no matching entry.
var ErrNotFound = errors.New("entry not found in archive")

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to
// Walk, name is entry name decoded with code page (if any). If an error is
// returned, processing stops.
type WalkFunc func(archive, name string, file *zip.File) error

// MatchFunc selects archive entries by decoded name.
type MatchFunc func(name string) bool

// Prefix matches entries under the path prefix, empty prefix matches all.
func Prefix(p string) MatchFunc {
	return func(name string) bool { return strings.HasPrefix(name, p) }
}

// Exact matches single entry.
func Exact(p string) MatchFunc {
	return func(name string) bool { return name == p }
}

// Walk walks the all files in the archive which satisfy match condition,
// calling walkFn for each item. Zip has no defined name encoding, when code
// page is not nil names of entries without UTF-8 flag are decoded with it.
// Entries with path traversal components ("..") or absolute paths fail the
// walk to prevent Zip Slip attacks.
func Walk(archive string, cp encoding.Encoding, match MatchFunc, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if cp != nil && f.FileHeader.NonUTF8 {
			if n, err := cp.NewDecoder().String(name); err == nil {
				name = n
			}
		}
		if match(name) {
			if err := walkFn(archive, name, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadFile returns content of a single archive entry.
func ReadFile(archive, name string, cp encoding.Encoding) ([]byte, error) {
	var (
		data  []byte
		found bool
	)
	err := Walk(archive, cp, Exact(name), func(_, _ string, f *zip.File) error {
		r, err := f.Open()
		if err != nil {
			return err
		}
		defer r.Close()

		found = true
		data, err = io.ReadAll(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s%s", ErrNotFound, name, siblings(archive, name, cp))
	}
	return data, nil
}

// siblings lists entries in the directory of the missing one, mistyped names
// are easier to spot this way.
func siblings(archive, name string, cp encoding.Encoding) string {
	const limit = 5

	dir, where := path.Dir(name)+"/", "directory"
	if dir == "./" {
		dir, where = "", "archive"
	}
	var names []string
	err := Walk(archive, cp, Prefix(dir), func(_, n string, _ *zip.File) error {
		names = append(names, n)
		return nil
	})
	if err != nil || len(names) == 0 {
		return ""
	}
	if len(names) > limit {
		names = append(names[:limit], "...")
	}
	return fmt.Sprintf(" (%s holds %s)", where, strings.Join(names, ", "))
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
