// Package kernel provides the primitives shared by every aggregate of the laundry
// service.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Date: a calendar day, used for queue scheduling and number series
//   - FormatNumber: human-readable business numbers such as ORD-20261016-00001
//
// All values are immutable and safe for concurrent use.
package kernel
