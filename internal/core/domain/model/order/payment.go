package order

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer paid at the counter.
type PaymentMethod string

const (
	Cash     PaymentMethod = "CASH"
	Transfer PaymentMethod = "TRANSFER"
	Card     PaymentMethod = "CARD"
	EWallet  PaymentMethod = "E_WALLET"
)

func (m PaymentMethod) Validate() error {
	switch m {
	case Cash, Transfer, Card, EWallet:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not a payment method", string(m)))
	}
}

// PaymentStatus tracks local bookkeeping only; no gateway is involved.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a payment status", string(s)))
	}
}

// Payment is a payment record owned by an Order.
type Payment struct {
	id              kernel.UUID
	orderID         kernel.UUID
	customerID      kernel.UUID
	amount          decimal.Decimal
	method          PaymentMethod
	status          PaymentStatus
	referenceNumber string
	transactionID   string
	createdAt       time.Time
}

// NewIntakePayment records a payment taken when the order is dropped off. Such payments
// are settled on the spot, so the status is always PaymentCompleted whatever the method.
func NewIntakePayment(
	id, orderID, customerID kernel.UUID,
	amount decimal.Decimal,
	method PaymentMethod,
	referenceNumber, transactionID string,
) (*Payment, error) {
	p := &Payment{
		status:        PaymentCompleted,
		transactionID: transactionID,
		createdAt:     time.Now().UTC(),
	}
	if err := errors.Join(
		p.setIDs(id, orderID, customerID),
		p.setAmount(amount),
		p.setMethod(method),
		p.setReference(referenceNumber),
	); err != nil {
		return nil, err
	}
	return p, nil
}

// RestorePayment rebuilds a payment loaded from storage.
func RestorePayment(
	id, orderID, customerID kernel.UUID,
	amount decimal.Decimal,
	method PaymentMethod,
	status PaymentStatus,
	referenceNumber, transactionID string,
	createdAt time.Time,
) (*Payment, error) {
	p := &Payment{
		transactionID: transactionID,
		createdAt:     createdAt,
	}
	if err := errors.Join(
		p.setIDs(id, orderID, customerID),
		p.setAmount(amount),
		p.setMethod(method),
		status.Validate(),
		p.setReference(referenceNumber),
	); err != nil {
		return nil, err
	}
	p.status = status
	return p, nil
}

func (p *Payment) ID() kernel.UUID         { return p.id }
func (p *Payment) OrderID() kernel.UUID    { return p.orderID }
func (p *Payment) CustomerID() kernel.UUID { return p.customerID }
func (p *Payment) Amount() decimal.Decimal { return p.amount }
func (p *Payment) Method() PaymentMethod   { return p.method }
func (p *Payment) Status() PaymentStatus   { return p.status }
func (p *Payment) ReferenceNumber() string { return p.referenceNumber }
func (p *Payment) TransactionID() string   { return p.transactionID }
func (p *Payment) CreatedAt() time.Time    { return p.createdAt }

func (p *Payment) setIDs(id, orderID, customerID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate(), customerID.Validate()); err != nil {
		return err
	}
	p.id, p.orderID, p.customerID = id, orderID, customerID
	return nil
}

func (p *Payment) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}
	p.amount = amount
	return nil
}

func (p *Payment) setMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setReference(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("referenceNumber")
	}
	p.referenceNumber = ref
	return nil
}
