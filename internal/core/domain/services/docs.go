// Package services provides domain services whose rules span more than one aggregate
// or more than one entity of the same kind.
//
// The package includes:
//   - OrderStatusPolicy: applies work-order events to the parent order's status
//   - QueuePlanner: decides queue positions and the neighbour shifts they require
package services
