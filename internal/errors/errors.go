// Package errors provides custom error types for domain-specific errors.
// The analytics engine itself never returns errors; these belong to the
// collaborators around it (store, import, config, CLI).
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrNoTrades      = errors.New("no trades match the filter")
	ErrConfigInvalid = errors.New("invalid configuration")
	ErrDatabaseError = errors.New("database error")
	ErrImportFailed  = errors.New("import failed")
	ErrInvalidInput  = errors.New("invalid input")
	ErrStoreClosed   = errors.New("store is closed")
	ErrNoBaseline    = errors.New("no account baseline configured")
)

// DataError represents a data-related error.
type DataError struct {
	DataType string
	Key      string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.DataType, e.Key, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.DataType, e.Key, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(dataType, key, message string, err error) *DataError {
	return &DataError{
		DataType: dataType,
		Key:      key,
		Message:  message,
		Err:      err,
	}
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ImportError represents an error raised while importing trades,
// carrying the row it happened on.
type ImportError struct {
	File string
	Row  int
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import error %s row %d: %v", e.File, e.Row, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(file string, row int, err error) *ImportError {
	return &ImportError{File: file, Row: row, Err: err}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
