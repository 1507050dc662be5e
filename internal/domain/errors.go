package domain

import (
	"errors"
	"fmt"
)

// ErrNotLoaded is returned by every query made before the dataset is loaded.
var ErrNotLoaded = errors.New("eruption dataset not loaded")

// IOError reports a dataset that could not be found or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read dataset %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports malformed JSON, a missing required field, or a
// non-numeric death count. Index is the record position, or -1 when the
// failure is not tied to a single record.
type ParseError struct {
	Index int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("parse dataset: %v", e.Err)
	case e.Index < 0:
		return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
	default:
		return fmt.Sprintf("parse record %d %s %q: %v", e.Index, e.Field, e.Value, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }
