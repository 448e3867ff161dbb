package pathutils

import (
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// PageExtensions are the extensions FindPages looks for inside directories.
var PageExtensions = []string{".html", ".htm"}

// IsPathError returns true if err is present, and it or its cause is an os.PathError.
func IsPathError(err error) bool {
	return err != nil && reflect.TypeOf(errors.Cause(err)) == reflect.TypeOf(&os.PathError{})
}

// IsDir returns true if p exists and is a directory.
func IsDir(p string) bool {
	stat, err := os.Stat(p)
	if err != nil {
		return false
	}
	return stat.IsDir()
}

// HasExt reports whether p ends in one of exts, ignoring case.
func HasExt(p string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// FindPages expands paths into page files.
// Files are kept as given, even without a page extension;
// directories are walked for files with one of PageExtensions, sorted.
func FindPages(paths []string) ([]string, error) {
	var result []string
	for _, p := range paths {
		if !IsDir(p) {
			result = append(result, p)
			continue
		}
		var found []string
		err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && HasExt(path, PageExtensions...) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "finding pages in %s", p)
		}
		sort.Strings(found)
		result = append(result, found...)
	}
	return result, nil
}
