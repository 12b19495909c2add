// Package graph manages the wired node topology and drives it tick by tick.
//
// # Why an explicit dependency order
//
// Nodes are polled, not pushed: a dependent reads its inputs whenever Get is
// called, so correctness depends entirely on Update being invoked on inputs
// before dependents within a tick. The graph records edges for exactly this
// purpose. Order is computed once, deterministically (Kahn's algorithm with
// a lexicographic tie-break), so two runs of the same rig always update in
// the same sequence.
//
// # Why single-threaded
//
// A tick is a handful of arithmetic per node; the cost of coordinating
// goroutines would dwarf the work being coordinated, and interleaving
// updates would break the inputs-before-dependents contract that the whole
// node library assumes. Cross-thread consumers wrap individual nodes in
// stream.Locked instead.
package graph
