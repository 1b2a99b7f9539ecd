// Package application provides a mock of the command application interface.
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/upscalingqc/cmd/application"
	"github.com/agentstation/upscalingqc/pkg/constants"
	"github.com/agentstation/upscalingqc/pkg/project"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    HostFunc: func(context.Context) (project.Host, error) {
//	        return stub, nil
//	    },
//	    OutputFormatFunc: func() string { return "json" },
//	}
//	cmd := metadata.NewCommand(mock)
type Mock struct {
	HostFunc         func(ctx context.Context) (project.Host, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	OutputDirFunc    func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Host returns a host using the mock function or nil.
func (m *Mock) Host(ctx context.Context) (project.Host, error) {
	if m.HostFunc != nil {
		return m.HostFunc(ctx)
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// OutputDir returns the export destination using the mock function or the default.
func (m *Mock) OutputDir() string {
	if m.OutputDirFunc != nil {
		return m.OutputDirFunc()
	}
	return constants.DefaultOutputDir
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ application.Application = (*Mock)(nil)
