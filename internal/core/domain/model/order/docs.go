// Package order holds the laundry Order aggregate with its items and payments.
//
// The package includes:
//   - Order: the aggregate root carrying the order number, customer, totals and status
//   - Item: a priced line built from a pricing.Line, with a service name snapshot
//   - Payment: a locally booked payment; intake-time payments are always completed
//   - Status: the order lifecycle (NEW, PROCESSING, ..., READY, DELIVERED, CANCELLED)
//
// Orders are always created New. After that only work-order progress moves them, to
// Processing when a work order is opened and to Ready when it completes. Delivered and
// Cancelled belong to collaborators outside this service and are final.
package order
