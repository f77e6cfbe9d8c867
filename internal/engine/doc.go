// Package engine drives validated workflows to completion in dependency
// order. It resolves definitions through the registry, composes each step's
// input from the execution input plus upstream outputs, applies the step's
// retry policy, and aggregates results into a single Execution record.
//
// Scheduling is a ready-queue fixed point: every step carries a remaining
// dependency counter, a completion decrements its dependents, and steps
// whose counter reaches zero become runnable. The queue is drained in
// repeated forward scans over the declared step order; a step that unlocks
// behind the scan cursor waits for the next pass. That makes the serial
// baseline deterministic and gives the concurrent mode a stable dispatch
// order.
package engine
