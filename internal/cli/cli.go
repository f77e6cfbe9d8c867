// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vk/flowgrid/internal/app"
	"github.com/vk/flowgrid/internal/workflow"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("flowgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
FlowGrid - a declarative DAG workflow engine.

Usage:
  flowgrid [options] [GRID_PATH]

Arguments:
  GRID_PATH
    Path to a single .hcl workflow file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	gridFlag := flagSet.String("grid", "", "Path to the workflow file or directory.")
	gFlag := flagSet.String("g", "", "Path to the workflow file or directory (shorthand).")
	workflowFlag := flagSet.String("workflow", "", "ID of the workflow to execute. Default: all registered workflows.")
	wFlag := flagSet.String("w", "", "ID of the workflow to execute (shorthand).")
	inputFlag := flagSet.String("input", "", "Initial execution input as a JSON object.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	parallelismFlag := flagSet.Int("parallelism", 1, "How many runnable steps may execute at once.")
	retryDelayFlag := flagSet.Duration("retry-base-delay", 100*time.Millisecond, "Unit of the linear retry backoff.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	path := ""
	if *gridFlag != "" {
		path = *gridFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" {
		flagSet.Usage()
		return nil, true, nil
	}

	workflowID := *workflowFlag
	if workflowID == "" {
		workflowID = *wFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var input workflow.Record
	if *inputFlag != "" {
		if err := json.Unmarshal([]byte(*inputFlag), &input); err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid input: not a JSON object: %v", err)}
		}
	}

	config, err := app.NewConfig(app.Config{
		GridPath:        path,
		WorkflowID:      workflowID,
		Input:           input,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Parallelism:     *parallelismFlag,
		RetryBaseDelay:  *retryDelayFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
