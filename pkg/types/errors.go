package types

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateFilter  = errors.New("filter already constructed")
	ErrQueryExecuted    = errors.New("search query already executed")
	ErrMissingAttribute = errors.New("attribute required")
	ErrUnknownFilter    = errors.New("unknown filter type")
)

// ConfigurationError is a programmer error raised while constructing a
// layer. It is not recoverable for the current request.
type ConfigurationError struct {
	Filter string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("layer configuration %s: %v", e.Filter, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// QueryError wraps a failure reported by the search backend.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("search %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
