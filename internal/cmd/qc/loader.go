// Package qc provides the common QC run setup for CLI commands.
package qc

import (
	"context"

	"github.com/agentstation/upscalingqc"
	"github.com/agentstation/upscalingqc/cmd/application"
	"github.com/agentstation/upscalingqc/pkg/errors"
)

// Load opens the app's host project and reconciles the QC configuration at
// path against it. The returned run exports to the app's output folder.
func Load(ctx context.Context, app application.Application, path string) (upscalingqc.QC, error) {
	host, err := app.Host(ctx)
	if err != nil {
		return nil, err
	}
	if host == nil {
		return nil, errors.NewConfigError("project", "no project snapshot available", nil)
	}

	opts := []upscalingqc.Option{upscalingqc.WithLogger(*app.Logger())}
	if dir := app.OutputDir(); dir != "" {
		opts = append(opts, upscalingqc.WithOutputDir(dir))
	}

	return upscalingqc.Load(ctx, path, host, opts...)
}
