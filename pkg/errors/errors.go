// Package errors provides custom error types for the upscaling QC system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// As and Is are the standard library errors.As and errors.Is.
var (
	As = errors.As
	Is = errors.Is
)

// Common sentinel errors for the upscaling QC system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInconsistent indicates that configured data sources disagree with each other
	ErrInconsistent = errors.New("inconsistent sources")

	// ErrSchemaDrift indicates that an extraction result no longer matches the expected columns
	ErrSchemaDrift = errors.New("schema drift")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConfigShapeError reports a QC payload that does not have the expected structure:
// a missing required field, an unknown field, or a value of the wrong shape.
type ConfigShapeError struct {
	Path    string // location in the payload, e.g. blockedwells[1].wells.bwname
	Message string
}

// Error implements the error interface
func (e *ConfigShapeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid configuration at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

// Is implements errors.Is support
func (e *ConfigShapeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewConfigShapeError creates a new ConfigShapeError
func NewConfigShapeError(path, format string, args ...any) *ConfigShapeError {
	return &ConfigShapeError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// InconsistentGridsError is returned when blocked well sources and grid sources
// reference different sets of grids.
type InconsistentGridsError struct {
	BlockedWellGrids []string
	Grids            []string
}

// Error implements the error interface
func (e *InconsistentGridsError) Error() string {
	return fmt.Sprintf("different grids given for blocked wells %s and grid %s",
		formatSet(e.BlockedWellGrids), formatSet(e.Grids))
}

// Is implements errors.Is support
func (e *InconsistentGridsError) Is(target error) bool {
	return target == ErrInconsistent
}

// UnknownBlockedWellSetError is returned when a blocked well set does not exist in its grid.
type UnknownBlockedWellSetError struct {
	Grid           string
	BlockedWellSet string
}

// Error implements the error interface
func (e *UnknownBlockedWellSetError) Error() string {
	return fmt.Sprintf("blocked well set %q does not exist for grid %q", e.BlockedWellSet, e.Grid)
}

// Is implements errors.Is support
func (e *UnknownBlockedWellSetError) Is(target error) bool {
	return target == ErrInconsistent || target == ErrNotFound
}

// MismatchError carries the first pair of sources whose identifier sets differ.
type MismatchError struct {
	Left       string
	Right      string
	LeftItems  []string
	RightItems []string
}

func (e *MismatchError) describe(what string) string {
	return fmt.Sprintf("data sources do not have the same %s: %s has %s, %s has %s",
		what, e.Left, formatSet(e.LeftItems), e.Right, formatSet(e.RightItems))
}

// PropertyMismatchError is returned when two sources expose different property sets.
type PropertyMismatchError struct {
	MismatchError
}

// Error implements the error interface
func (e *PropertyMismatchError) Error() string {
	return e.describe("properties")
}

// Is implements errors.Is support
func (e *PropertyMismatchError) Is(target error) bool {
	return target == ErrInconsistent
}

// SelectorMismatchError is returned when two sources expose different selector sets.
type SelectorMismatchError struct {
	MismatchError
}

// Error implements the error interface
func (e *SelectorMismatchError) Error() string {
	return e.describe("selectors")
}

// Is implements errors.Is support
func (e *SelectorMismatchError) Is(target error) bool {
	return target == ErrInconsistent
}

// NewPropertyMismatchError creates a new PropertyMismatchError
func NewPropertyMismatchError(left, right string, leftItems, rightItems []string) *PropertyMismatchError {
	return &PropertyMismatchError{MismatchError{Left: left, Right: right, LeftItems: leftItems, RightItems: rightItems}}
}

// NewSelectorMismatchError creates a new SelectorMismatchError
func NewSelectorMismatchError(left, right string, leftItems, rightItems []string) *SelectorMismatchError {
	return &SelectorMismatchError{MismatchError{Left: left, Right: right, LeftItems: leftItems, RightItems: rightItems}}
}

// WellSet is the resolved well names reported by one source.
type WellSet struct {
	Source string
	Wells  []string
}

// WellSetMismatchError is returned when well and blocked well sources report on different wells.
// Sets holds every source's set, not only the differing pair.
type WellSetMismatchError struct {
	Sets []WellSet
}

// Error implements the error interface
func (e *WellSetMismatchError) Error() string {
	parts := make([]string, 0, len(e.Sets))
	for _, s := range e.Sets {
		parts = append(parts, fmt.Sprintf("%s=%s", s.Source, formatSet(s.Wells)))
	}
	return fmt.Sprintf("the wells to report should be identical for all wells and blocked wells sources: %s",
		strings.Join(parts, ", "))
}

// Is implements errors.Is support
func (e *WellSetMismatchError) Is(target error) bool {
	return target == ErrInconsistent
}

// SchemaDriftError is returned when an extraction result lacks a column that the
// metadata record or the source descriptor assumes exists.
type SchemaDriftError struct {
	Kind    string // "wells", "blockedwells", "grid"
	Source  string
	Missing []string
}

// Error implements the error interface
func (e *SchemaDriftError) Error() string {
	return fmt.Sprintf("extraction result for %s source %s is missing columns %s: upscaling qc is out of sync with the extraction schema",
		e.Kind, e.Source, formatSet(e.Missing))
}

// Is implements errors.Is support
func (e *SchemaDriftError) Is(target error) bool {
	return target == ErrSchemaDrift
}

// NewSchemaDriftError creates a new SchemaDriftError
func NewSchemaDriftError(kind, source string, missing []string) *SchemaDriftError {
	return &SchemaDriftError{Kind: kind, Source: source, Missing: missing}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConfigShape checks if an error is a configuration shape error
func IsConfigShape(err error) bool {
	var shape *ConfigShapeError
	return errors.As(err, &shape)
}

// IsInconsistent checks if an error is one of the cross-source consistency faults
func IsInconsistent(err error) bool {
	return errors.Is(err, ErrInconsistent)
}

// IsSchemaDrift checks if an error is a schema drift error
func IsSchemaDrift(err error) bool {
	return errors.Is(err, ErrSchemaDrift)
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "csv", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// formatSet renders identifiers sorted, so messages are stable regardless of input order.
func formatSet(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	return "[" + strings.Join(sorted, ", ") + "]"
}
