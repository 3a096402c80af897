package errors

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

// DataLoadKind classifies why a catalog file could not be loaded.
type DataLoadKind string

const (
	DataLoadNotFound DataLoadKind = "not-found"
	DataLoadParse    DataLoadKind = "parse-error"
	DataLoadUnknown  DataLoadKind = "unknown"
)

// DataLoadError reports a failure to read or decode a catalog file.
type DataLoadError struct {
	Path string
	Kind DataLoadKind
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load catalog %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NewDataLoadError wraps err with the file path, classifying the kind
// from the underlying cause.
func NewDataLoadError(path string, err error) *DataLoadError {
	return &DataLoadError{Path: path, Kind: classifyLoadError(err), Err: err}
}

// NewDataParseError wraps a decode failure that the standard error types
// do not reveal, such as a catalog file whose top level is not an array.
func NewDataParseError(path string, err error) *DataLoadError {
	return &DataLoadError{Path: path, Kind: DataLoadParse, Err: err}
}

func classifyLoadError(err error) DataLoadKind {
	if errors.Is(err, fs.ErrNotExist) {
		return DataLoadNotFound
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var csvErr *csv.ParseError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.As(err, &csvErr) {
		return DataLoadParse
	}

	return DataLoadUnknown
}

// IsDataLoad reports whether err is or wraps a DataLoadError.
func IsDataLoad(err error) bool {
	var loadErr *DataLoadError
	return errors.As(err, &loadErr)
}

// IsNotFound reports whether err is a DataLoadError for a missing file.
func IsNotFound(err error) bool {
	var loadErr *DataLoadError
	return errors.As(err, &loadErr) && loadErr.Kind == DataLoadNotFound
}

// IsParse reports whether err is a DataLoadError for malformed input.
func IsParse(err error) bool {
	var loadErr *DataLoadError
	return errors.As(err, &loadErr) && loadErr.Kind == DataLoadParse
}
