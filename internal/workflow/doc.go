// Package workflow defines the data model shared by the registry, the
// validator, and the execution engine: workflow definitions, steps and their
// actions, and the per-run Execution record with its step results.
//
// The package is deliberately free of scheduling logic. Definitions are
// immutable once handed to the registry; Execution and StepResult values are
// created fresh for every run and never reused.
package workflow
