// Package emoji provides symbol constants for CLI output.
// These symbols create a consistent visual language across all command-line commands.
package emoji

// Symbol constants for CLI output.
const (
	// Success represents a passed check or a completed operation.
	Success = "✓"

	// Error represents a failed check or operation.
	Error = "✗"

	// Warning represents a non-fatal outcome, such as a run without coded selectors.
	Warning = "!"

	// Skipped represents a check that did not run because an earlier one failed.
	Skipped = "-"

	// Info represents informational messages.
	Info = "i"
)
