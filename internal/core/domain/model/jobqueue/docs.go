// Package jobqueue models the daily processing queue: one Entry per order and
// scheduled day, ordered by a 1-based position, with an estimated completion time
// derived from the position and the order's size.
//
// Position bookkeeping across entries (insertion, moves, clamping) is done by
// services.QueuePlanner; this package only guards single-entry invariants.
package jobqueue
