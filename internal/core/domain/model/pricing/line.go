package pricing

import (
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Unit tells how a service is charged.
type Unit string

const (
	// UnitPiece charges per item.
	UnitPiece Unit = "pcs"
	// UnitKilogram charges per kilogram.
	UnitKilogram Unit = "kg"
)

// Validate accepts the two known units and the empty "unspecified" unit.
func (u Unit) Validate() error {
	switch u {
	case "", UnitPiece, UnitKilogram:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("unit", fmt.Errorf("%q is not one of pcs, kg", string(u)))
	}
}

var (
	minPieces    = decimal.NewFromInt(1)
	minKilograms = decimal.RequireFromString("0.1")
	// defaultKilograms applies when neither weight nor quantity was supplied.
	defaultKilograms = decimal.RequireFromString("0.5")
)

// Per-line maxima. At the limits a line's subtotal stays below 10^11, which keeps a
// large order inside the numeric(14,2) money columns.
var (
	MaxPieces    = decimal.NewFromInt(10_000)
	MaxKilograms = decimal.NewFromInt(1_000)
	MaxUnitPrice = decimal.NewFromInt(10_000_000)
)

const (
	moneyPlaces  = 2
	weightPlaces = 3
)

// Quote is what the service directory knows about a service. The zero Quote stands for
// an unresolvable service id.
type Quote struct {
	Name  string
	Price decimal.Decimal
	Unit  Unit
}

// IsKnown reports whether the directory resolved the service.
func (q Quote) IsKnown() bool {
	return q.Name != "" || q.Unit != "" || !q.Price.IsZero()
}

// RawLine is an order line before normalization.
type RawLine struct {
	ServiceID kernel.UUID
	Unit      Unit
	Quantity  RawNumber
	Weight    RawNumber
	Price     RawNumber
}

// Validate runs the checks that need no directory: the service id, the unit, the sign of
// a supplied price and the per-line maxima.
func (r RawLine) Validate() error {
	if err := r.ServiceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("serviceId", err)
	}
	if err := r.Unit.Validate(); err != nil {
		return err
	}
	// The unit may still come from the directory; Normalize applies the kilogram bound.
	if q := r.Quantity.Decimal(); q.GreaterThan(MaxPieces) {
		return errs.NewValueIsOutOfRangeError("quantity", q, minPieces, MaxPieces)
	}
	if r.Weight.IsPresent() {
		if w := r.Weight.Decimal(); w.GreaterThan(MaxKilograms) {
			return errs.NewValueIsOutOfRangeError("weight", w, minKilograms, MaxKilograms)
		}
	}
	if r.Price.IsPresent() {
		if err := checkPrice(r.Price.Decimal()); err != nil {
			return err
		}
	}
	return nil
}

func checkPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%s is negative", price))
	}
	if price.GreaterThan(MaxUnitPrice) {
		return errs.NewValueIsOutOfRangeError("price", price, decimal.Zero, MaxUnitPrice)
	}
	return nil
}

// Normalize resolves the line's variant and price and applies the pricing floors.
// quote supplies the price when the line carries none and the unit when neither the
// line's unit nor its weight decide it. The unit price is rounded to cents before any
// subtotal is computed, so the stored price and subtotal always agree.
//
// Besides the Validate checks, a line without a price for a service the directory
// could not resolve is a validation error; every other numeric problem degrades to the
// documented defaults.
func (r RawLine) Normalize(quote Quote) (Line, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var price decimal.Decimal
	switch {
	case r.Price.IsPresent():
		price = r.Price.Decimal()
	case quote.IsKnown():
		price = quote.Price
		if err := checkPrice(price); err != nil {
			return nil, err
		}
	default:
		return nil, errs.NewValueIsRequiredErrorWithCause("price",
			fmt.Errorf("service %s has no directory price", r.ServiceID))
	}

	unit := r.resolveUnit(quote)
	if unit == UnitKilogram {
		source := defaultKilograms
		switch {
		case r.Weight.IsPresent():
			source = r.Weight.Decimal()
		case r.Quantity.IsPresent():
			source = r.Quantity.Decimal()
		}
		if source.GreaterThan(MaxKilograms) {
			return nil, errs.NewValueIsOutOfRangeError("quantity", source, minKilograms, MaxKilograms)
		}
		return NewWeight(r.ServiceID, source, price), nil
	}
	return NewPiece(r.ServiceID, r.Quantity.Decimal(), price), nil
}

func (r RawLine) resolveUnit(quote Quote) Unit {
	switch {
	case r.Unit != "":
		return r.Unit
	case r.Weight.IsPresent():
		return UnitKilogram
	case quote.Unit != "":
		return quote.Unit
	default:
		return UnitPiece
	}
}

// Line is a normalized, priced order line. It is implemented only by Piece and Weight;
// use a type switch to tell them apart.
type Line interface {
	ServiceID() kernel.UUID
	Unit() Unit
	UnitPrice() decimal.Decimal
	// Quantity is the effective piece count; weight lines count as one.
	Quantity() int
	// Kilograms is the effective weight; piece lines weigh zero for pricing purposes.
	Kilograms() decimal.Decimal
	Subtotal() decimal.Decimal

	sealed()
}

// Piece is a line charged per item.
type Piece struct {
	serviceID kernel.UUID
	quantity  int
	unitPrice decimal.Decimal
}

var _ Line = Piece{}

// NewPiece floors quantity to a whole number between one and MaxPieces and rounds the
// unit price to cents.
func NewPiece(serviceID kernel.UUID, quantity, unitPrice decimal.Decimal) Piece {
	q := decimal.Min(decimal.Max(quantity.Floor(), minPieces), MaxPieces)
	return Piece{
		serviceID: serviceID,
		quantity:  int(q.IntPart()),
		unitPrice: unitPrice.Round(moneyPlaces),
	}
}

func (p Piece) ServiceID() kernel.UUID     { return p.serviceID }
func (p Piece) Unit() Unit                 { return UnitPiece }
func (p Piece) UnitPrice() decimal.Decimal { return p.unitPrice }
func (p Piece) Quantity() int              { return p.quantity }
func (p Piece) Kilograms() decimal.Decimal { return decimal.Zero }

// Subtotal is unitPrice * quantity rounded to cents.
func (p Piece) Subtotal() decimal.Decimal {
	return p.unitPrice.Mul(decimal.NewFromInt(int64(p.quantity))).Round(moneyPlaces)
}

func (Piece) sealed() {}

// Weight is a line charged per kilogram.
type Weight struct {
	serviceID kernel.UUID
	kilograms decimal.Decimal
	unitPrice decimal.Decimal
}

var _ Line = Weight{}

// NewWeight keeps kilograms between the 0.1 kg minimum and MaxKilograms and rounds
// them to whole grams, the three places the weight columns store. The unit price is
// rounded to cents.
func NewWeight(serviceID kernel.UUID, kilograms, unitPrice decimal.Decimal) Weight {
	kg := decimal.Min(decimal.Max(kilograms, minKilograms), MaxKilograms)
	return Weight{
		serviceID: serviceID,
		kilograms: kg.Round(weightPlaces),
		unitPrice: unitPrice.Round(moneyPlaces),
	}
}

func (w Weight) ServiceID() kernel.UUID     { return w.serviceID }
func (w Weight) Unit() Unit                 { return UnitKilogram }
func (w Weight) UnitPrice() decimal.Decimal { return w.unitPrice }
func (w Weight) Quantity() int              { return 1 }
func (w Weight) Kilograms() decimal.Decimal { return w.kilograms }

// Subtotal is unitPrice * kilograms rounded to cents.
func (w Weight) Subtotal() decimal.Decimal {
	return w.unitPrice.Mul(w.kilograms).Round(moneyPlaces)
}

func (Weight) sealed() {}
