package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrUndecodable no candidate encoding or workbook reader could read the file
	ErrUndecodable = errors.New("file could not be decoded")
	// ErrNoTabularData the file decoded but holds no usable rows or dates
	ErrNoTabularData = errors.New("no tabular data found")
)

// LoadError reports a roster that could not be turned into a table.
// Source names which roster failed ("assistant" or "staff").
type LoadError struct {
	Source   string
	Filename string
	Err      error
}

func (e *LoadError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("load %s roster %q: %v", e.Source, e.Filename, e.Err)
	}
	return fmt.Sprintf("load roster %q: %v", e.Filename, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NewLoadError wraps err for filename.
func NewLoadError(filename string, err error) *LoadError {
	return &LoadError{Filename: filename, Err: err}
}

// AsLoadError reports whether err carries a LoadError.
func AsLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
