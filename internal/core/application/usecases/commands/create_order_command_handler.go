package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/pricing"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	DefaultItemBatchSize = 50
	maxCreateAttempts    = 3
)

// ErrOrderCreationFailed is the only error callers see when the intake transaction
// fails. The cause is logged.
var ErrOrderCreationFailed = errors.New("order creation failed")

// CreateOrderCommandHandler takes in an order: it prices the lines, then writes the
// order, its optional payment and its items in one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, directory, 50, loc, logger)
//	o, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrOrderCreationFailed) {
//	    // nothing was persisted
//	}
type CreateOrderCommandHandler struct {
	uowFactory    OrderUoWFactory
	directory     ports.ServiceDirectory
	calculator    pricing.Calculator
	itemBatchSize int
	location      *time.Location
	logger        *slog.Logger
}

// NewCreateOrderCommandHandler creates the intake handler. A non-positive
// itemBatchSize means DefaultItemBatchSize; a nil location means UTC. The location
// decides which calendar day order and payment numbers belong to.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	directory ports.ServiceDirectory,
	itemBatchSize int,
	location *time.Location,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if itemBatchSize <= 0 {
		itemBatchSize = DefaultItemBatchSize
	}
	if location == nil {
		location = time.UTC
	}
	return CreateOrderCommandHandler{
		uowFactory:    uowFactory,
		directory:     directory,
		calculator:    pricing.NewCalculator(),
		itemBatchSize: itemBatchSize,
		location:      location,
		logger:        logger.With("component", "order_intake"),
	}
}

type pricedLine struct {
	line pricing.Line
	name string
}

// Handle creates the order and returns it reloaded with items and payments.
//
// Validation errors are returned as is. Any failure inside the transaction rolls
// everything back and is reported as ErrOrderCreationFailed. A number collision
// retries the whole transaction.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	lines, err := h.price(ctx, cmd)
	if err != nil {
		return nil, err
	}

	total := h.calculator.Total(linesOf(lines), cmd.ExplicitTotal())
	weight := h.calculator.TotalWeight(linesOf(lines))
	if err := h.calculator.CheckTotals(total, weight); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		created, createErr := h.create(ctx, cmd, lines, total, weight)
		if createErr == nil {
			return created, nil
		}
		if errors.Is(createErr, errs.ErrConflict) && attempt < maxCreateAttempts {
			h.logger.WarnContext(ctx, "Order number collision, retrying",
				"customer_id", cmd.CustomerID(), "attempt", attempt, "error", createErr)
			continue
		}
		h.logger.ErrorContext(ctx, "Order creation failed",
			"customer_id", cmd.CustomerID(),
			"items", len(lines),
			"total", total.String(),
			"attempt", attempt,
			"error", createErr)
		return nil, ErrOrderCreationFailed
	}
}

// price resolves every distinct service once and normalizes the lines. A directory
// outage degrades to request prices and synthetic names.
func (h *CreateOrderCommandHandler) price(ctx context.Context, cmd CreateOrderCommand) ([]pricedLine, error) {
	quotes, err := h.directory.FindByIDs(ctx, cmd.ServiceIDs())
	if err != nil {
		h.logger.WarnContext(ctx, "Service lookup failed, using request prices", "error", err)
		quotes = nil
	}

	raw := cmd.Lines()
	lines := make([]pricedLine, 0, len(raw))
	for i, r := range raw {
		quote := quotes[r.ServiceID]
		l, normErr := r.Normalize(quote)
		if normErr != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, normErr)
		}
		name := quote.Name
		if name == "" {
			name = fmt.Sprintf("Service %s", r.ServiceID)
		}
		lines = append(lines, pricedLine{line: l, name: name})
	}
	return lines, nil
}

func (h *CreateOrderCommandHandler) create(
	ctx context.Context,
	cmd CreateOrderCommand,
	lines []pricedLine,
	total, weight decimal.Decimal,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	today := kernel.DateOf(time.Now().In(h.location))
	numbers := uow.NumberSequence()
	orderRepo := uow.OrderRepository()

	number, err := nextNumber(ctx, numbers, kernel.OrderNumberPrefix, today)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), number, cmd.CustomerID(), total, weight, cmd.Details())
	if err != nil {
		return nil, err
	}
	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	if p := cmd.Payment(); p != nil {
		if err = h.addPayment(ctx, numbers, orderRepo, o, p, today); err != nil {
			return nil, err
		}
	}

	items := h.prepareItems(ctx, o.ID(), lines)
	if err = orderRepo.AddItems(ctx, items, h.itemBatchSize); err != nil {
		return nil, err
	}

	saved, err := orderRepo.Get(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return saved, nil
}

func (h *CreateOrderCommandHandler) addPayment(
	ctx context.Context,
	numbers ports.NumberSequence,
	repo ports.OrderRepository,
	o *order.Order,
	p *PaymentInput,
	today kernel.Date,
) error {
	ref, err := nextNumber(ctx, numbers, kernel.PaymentReferencePrefix, today)
	if err != nil {
		return err
	}
	amount := o.TotalAmount()
	if p.Amount != nil {
		amount = *p.Amount
	}
	payment, err := order.NewIntakePayment(kernel.NewUUID(), o.ID(), o.CustomerID(), amount, p.Method, ref, p.TransactionID)
	if err != nil {
		return err
	}
	return repo.AddPayment(ctx, payment)
}

// prepareItems builds the item rows. A line that cannot become an item is logged and
// left out; the order still goes through.
func (h *CreateOrderCommandHandler) prepareItems(ctx context.Context, orderID kernel.UUID, lines []pricedLine) []*order.Item {
	items := make([]*order.Item, 0, len(lines))
	for i, l := range lines {
		item, err := order.NewItem(kernel.NewUUID(), orderID, l.name, l.line)
		if err != nil {
			h.logger.WarnContext(ctx, "Skipping order item",
				"order_id", orderID, "index", i, "service_id", l.line.ServiceID(), "error", err)
			continue
		}
		items = append(items, item)
	}
	return items
}

func nextNumber(ctx context.Context, seq ports.NumberSequence, prefix kernel.NumberPrefix, day kernel.Date) (string, error) {
	n, err := seq.Next(ctx, prefix, day)
	if err != nil {
		return "", err
	}
	return kernel.FormatNumber(prefix, day, n)
}

func linesOf(priced []pricedLine) []pricing.Line {
	lines := make([]pricing.Line, len(priced))
	for i, p := range priced {
		lines[i] = p.line
	}
	return lines
}
