package errors

import (
	"errors"
	"fmt"
)

// ExportKind classifies why an export failed.
type ExportKind string

const ExportIO ExportKind = "io-error"

// ExportError reports a failure to write an export file.
type ExportError struct {
	Path string
	Kind ExportKind
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError wraps an I/O failure with the destination path.
func NewExportError(path string, err error) *ExportError {
	return &ExportError{Path: path, Kind: ExportIO, Err: err}
}

// IsExport reports whether err is or wraps an ExportError.
func IsExport(err error) bool {
	var exportErr *ExportError
	return errors.As(err, &exportErr)
}
