// Package application provides the application interface for upqc commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            host, err := app.Host(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... reconcile against host
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    HostFunc: func(context.Context) (project.Host, error) {
//	        return stub, nil
//	    },
//	}
//	cmd := validate.NewCommand(mock)
package application

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/upscalingqc/pkg/project"
)

// Application is the set of dependencies commands need from the app.
type Application interface {
	// Host returns the host project, opening the configured snapshot on first use.
	// The app owns the returned host and closes it on shutdown.
	Host(ctx context.Context) (project.Host, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// OutputDir returns the configured export destination.
	OutputDir() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
