// Package pricing turns raw order lines into priced, normalized lines and totals.
//
// Raw numeric input arrives in whatever shape the client sent: JSON numbers, plain
// strings or locale-formatted strings such as "2,5". RawLine.Normalize parses that
// input once into a tagged Line, either Piece or Weight, after which every amount is a
// decimal.Decimal and no further coercion happens anywhere else.
//
// Pricing rules:
//   - Piece: effective quantity = max(floor(quantity), 1); subtotal = price * quantity
//   - Weight: effective kilograms = max(weight ?? quantity ?? 0.5, 0.1); subtotal = price * kilograms
//   - Missing or unparsable numbers count as 0 and are then subject to the floors above
//
// Calculator is pure and safe for concurrent use.
package pricing
