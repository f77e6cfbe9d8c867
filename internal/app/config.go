package app

import (
	"errors"
	"time"

	"github.com/vk/flowgrid/internal/workflow"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// GridPath is a .hcl file or a directory of .hcl workflow files.
	GridPath string
	// WorkflowID selects one registered workflow to run. Empty means every
	// registered workflow, in registration order.
	WorkflowID string
	// Input is the initial input record handed to every execution.
	Input workflow.Record

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	Parallelism     int
	RetryBaseDelay  time.Duration
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GridPath == "" {
		return nil, errors.New("GridPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
