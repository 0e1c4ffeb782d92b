package search

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Resolver expands path arguments into regular files.
//
// Arguments are stat'ed, so a symlink named on the command line is followed.
// Symlinks met while listing a directory are skipped, which keeps traversal
// free of cycles.
type Resolver struct {
	Recursive bool
	Ignore    *IgnoreMatcher
}

// Files yields the regular files named by arg in a stable order: a file
// argument yields itself, a directory yields its direct regular children or,
// when Recursive, every regular file beneath it depth-first with entries in
// lexical order. Failures are yielded as errors and iteration continues.
func (r *Resolver) Files(arg string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		info, err := os.Stat(arg)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = ErrPathNotFound
			}
			yield("", &PathError{Path: arg, Err: err})
			return
		}
		switch {
		case info.Mode().IsRegular():
			yield(arg, nil)
		case info.IsDir() && r.Recursive:
			r.walk(walkRoot(arg), yield)
		case info.IsDir():
			r.list(arg, yield)
		default:
			yield("", &PathError{Path: arg, Err: ErrPathNotFound})
		}
	}
}

// readDir is swapped in tests to simulate a listing that fails part way.
var readDir = os.ReadDir

// list yields the direct regular children of dir. Entries read before a
// listing error are still yielded, then the error.
func (r *Resolver) list(dir string, yield func(string, error) bool) {
	entries, err := readDir(dir)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if r.Ignore.Matches(dir, p, false) {
			continue
		}
		if !yield(p, nil) {
			return
		}
	}
	if err != nil {
		yield("", &PathError{Path: dir, Err: err})
	}
}

func (r *Resolver) walk(root string, yield func(string, error) bool) {
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if !yield("", &PathError{Path: p, Err: err}) {
				return filepath.SkipAll
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}
		if d.IsDir() {
			if r.Ignore.Matches(root, p, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || r.Ignore.Matches(root, p, false) {
			return nil
		}
		if !yield(p, nil) {
			return filepath.SkipAll
		}
		return nil
	})
}

// walkRoot makes WalkDir descend into a directory argument that is itself a
// symlink; WalkDir never follows its root otherwise.
func walkRoot(arg string) string {
	li, err := os.Lstat(arg)
	if err == nil && li.Mode()&fs.ModeSymlink != 0 {
		return arg + string(filepath.Separator)
	}
	return arg
}
