// Package dag validates a workflow's dependency graph before any execution
// begins. Validation is a pure function of the definition: it either accepts
// the step set as acyclic or reports the edge that closes a cycle.
package dag
