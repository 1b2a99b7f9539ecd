package upscalingqc

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/upscalingqc/pkg/constants"
	"github.com/agentstation/upscalingqc/pkg/errors"
	"github.com/agentstation/upscalingqc/pkg/logging"
)

// Option is a function that configures a QC run
type Option func(*config) error

// config holds the run options
type config struct {
	logger    *zerolog.Logger
	outputDir string
	runID     string
}

func defaultConfig() *config {
	return &config{
		logger:    logging.Default(),
		outputDir: constants.DefaultOutputDir,
	}
}

func (c *config) apply(opts ...Option) (*config, error) {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// WithLogger configures the logger used for the run
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = &logger
		return nil
	}
}

// WithOutputDir configures the folder Export writes to when called with an empty dir
func WithOutputDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewConfigError("output", "output folder cannot be empty", nil)
		}
		c.outputDir = dir
		return nil
	}
}

// WithRunID configures the run identifier attached to every log event.
// A random identifier is generated otherwise.
func WithRunID(id string) Option {
	return func(c *config) error {
		c.runID = id
		return nil
	}
}
