// Package workorder provides the WorkOrder aggregate: the internal processing record
// that drives one laundry order through six fixed handling steps.
//
// The package includes:
//   - WorkOrder: the aggregate root, created PENDING with all six steps
//   - Step: one handling stage with its own PENDING -> IN_PROGRESS -> COMPLETED|SKIPPED
//     state machine
//   - StepType: SORTING, WASHING, DRYING, FOLDING, PACKAGING, QUALITY_CHECK, in that order
//   - Event: WorkOrderCreated and WorkOrderCompleted, collected on the aggregate and
//     pulled by the application layer, which turns them into order status changes
//
// Key business rules:
//   - a work order is created together with its six steps and never re-created
//   - terminal steps (COMPLETED, SKIPPED) accept no further status change
//   - finishing a step advances currentStep to the step with the next sequence number
//   - when every step is terminal the work order becomes COMPLETED
//
// The aggregate never touches the parent order itself.
package workorder
