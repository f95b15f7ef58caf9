// Package discover finds source files to render.
package discover

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/ozanyetkin/faux-code/lang"
)

// A File is a source file found by discovery.
type File struct {
	// Path is the path used to open the file.
	Path string
	// Name is the display name: the path relative to the search root,
	// with forward slashes.
	Name    string
	ModTime time.Time
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// Files returns the source files under root,
// most recently modified first.
// If limit > 0, at most limit files are returned.
//
// Entries below root that cannot be read are skipped,
// and their errors are returned in skipped.
// An error reading root itself is returned in err.
func Files(root string, limit int) (files []File, skipped *multierror.Error, err error) {
	files, skipped, err = FS(os.DirFS(root), limit)
	for i := range files {
		files[i].Path = filepath.Join(root, filepath.FromSlash(files[i].Name))
	}
	return files, skipped, err
}

// FS is like Files, but searches a file system.
// The Path of each File is its slash-separated path in fsys.
func FS(fsys fs.FS, limit int) (files []File, skipped *multierror.Error, err error) {
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			skipped = multierror.Append(skipped, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != "." && skipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !lang.Known(d.Name()) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			skipped = multierror.Append(skipped, &fs.PathError{Op: "stat", Path: p, Err: err})
			return nil
		}
		files = append(files, File{Path: p, Name: p, ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, skipped, err
	}
	sortFiles(files)
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	return files, skipped, nil
}

func skipDir(name string) bool {
	return skipDirs[name] || strings.HasPrefix(name, ".")
}

// Paths returns Files for explicitly named paths, in the given order.
// Unlike Files, it does not filter by extension;
// a path that cannot be stat'd is still returned
// so that the error surfaces when it is read.
func Paths(paths []string) []File {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		f := File{Path: p, Name: path.Clean(filepath.ToSlash(p))}
		if info, err := os.Stat(p); err == nil {
			f.ModTime = info.ModTime()
		}
		files = append(files, f)
	}
	return files
}

func sortFiles(files []File) {
	sort.Slice(files, func(i, j int) bool {
		if !files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].ModTime.After(files[j].ModTime)
		}
		return files[i].Name < files[j].Name
	})
}
