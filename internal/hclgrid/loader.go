// Package hclgrid loads workflow definitions from HCL files. A file holds
// any number of `workflow "<id>"` blocks, each containing ordered
// `step "<id>"` blocks:
//
//	workflow "etl" {
//	  name = "Nightly ETL"
//
//	  step "extract" {
//	    action = "http_request"
//	    params = { url = "https://example.com" }
//	  }
//
//	  step "report" {
//	    action      = "print"
//	    depends_on  = ["extract"]
//	    retryable   = true
//	    max_retries = 2
//	  }
//	}
//
// A step's `action` names a handler registered in the handlers registry; its
// optional `params` object is overlaid onto the step's composed input before
// the action runs, so explicit configuration wins over upstream data.
package hclgrid

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/fsutil"
	"github.com/vk/flowgrid/internal/handlers"
	"github.com/vk/flowgrid/internal/workflow"
)

// Loader parses HCL workflow files and resolves step actions against a
// handlers registry.
type Loader struct {
	handlers *handlers.Handlers
}

// NewLoader creates a loader bound to the given action handlers.
func NewLoader(h *handlers.Handlers) *Loader {
	return &Loader{handlers: h}
}

// fileRoot decodes the top-level blocks of one HCL file.
type fileRoot struct {
	Workflows []*workflowBlock `hcl:"workflow,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type workflowBlock struct {
	ID    string       `hcl:"id,label"`
	Name  string       `hcl:"name,optional"`
	Steps []*stepBlock `hcl:"step,block"`
}

type stepBlock struct {
	ID         string         `hcl:"id,label"`
	Name       string         `hcl:"name,optional"`
	Action     string         `hcl:"action"`
	DependsOn  []string       `hcl:"depends_on,optional"`
	Retryable  bool           `hcl:"retryable,optional"`
	MaxRetries int            `hcl:"max_retries,optional"`
	Params     hcl.Expression `hcl:"params,optional"`
}

// Load walks the given paths for .hcl files and translates every workflow
// block found into a definition, in file order.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*workflow.Definition, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered workflow files.", "count", len(files))

	parser := hclparse.NewParser()
	var defs []*workflow.Definition

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, wf := range root.Workflows {
			def, err := l.translateWorkflow(wf)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			logger.Debug("Workflow definition loaded.", "workflow", def.ID, "steps", len(def.Steps))
			defs = append(defs, def)
		}
	}

	return defs, nil
}

// translateWorkflow converts one decoded workflow block into the engine's
// definition model, binding each step's action handler.
func (l *Loader) translateWorkflow(wf *workflowBlock) (*workflow.Definition, error) {
	def := &workflow.Definition{
		ID:   wf.ID,
		Name: wf.Name,
	}
	if def.Name == "" {
		def.Name = wf.ID
	}

	for _, sb := range wf.Steps {
		action, ok := l.handlers.Lookup(sb.Action)
		if !ok {
			return nil, fmt.Errorf("workflow %q: step %q references unknown action %q", wf.ID, sb.ID, sb.Action)
		}

		params, err := decodeParams(sb.Params)
		if err != nil {
			return nil, fmt.Errorf("workflow %q: step %q: %w", wf.ID, sb.ID, err)
		}

		name := sb.Name
		if name == "" {
			name = sb.ID
		}

		def.Steps = append(def.Steps, workflow.Step{
			ID:         sb.ID,
			Name:       name,
			Action:     bindParams(action, params),
			DependsOn:  sb.DependsOn,
			Retryable:  sb.Retryable,
			MaxRetries: sb.MaxRetries,
		})
	}

	return def, nil
}

// bindParams wraps an action so the step's static params are overlaid onto
// the composed input before every run.
func bindParams(action workflow.Action, params workflow.Record) workflow.Action {
	if len(params) == 0 {
		return action
	}
	return workflow.ActionFunc(func(ctx context.Context, input workflow.Record) (workflow.Record, error) {
		return action.Run(ctx, input.Clone().Overlay(params))
	})
}
