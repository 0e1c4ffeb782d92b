package search

import "errors"

var (
	ErrPathNotFound         = errors.New("no such file or directory")
	ErrUnreadableFile       = errors.New("file is not valid UTF-8 text")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// PathError records the path a per-file or per-argument failure belongs to.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *PathError) Unwrap() error { return e.Err }
