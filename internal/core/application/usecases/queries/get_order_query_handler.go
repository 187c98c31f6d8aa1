package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders with plain SQL, bypassing the aggregate.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist. Items come in
// the order they were submitted, payments oldest first.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	resp, err := h.order(db, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Items, err = h.items(db, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Payments, err = h.payments(db, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	return resp, nil
}

func (h GetOrderQueryHandler) order(db *gorm.DB, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	var (
		resp       GetOrderQueryResponse
		id         uuid.UUID
		customerID uuid.UUID
	)
	row := db.Raw(`
		SELECT
			id,
			order_number,
			customer_id,
			status,
			total_amount,
			total_weight,
			notes,
			special_requirements,
			pickup_date,
			delivery_date,
			is_delivery_needed,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()
	err := row.Scan(
		&id,
		&resp.OrderNumber,
		&customerID,
		&resp.Status,
		&resp.TotalAmount,
		&resp.TotalWeight,
		&resp.Notes,
		&resp.SpecialRequirements,
		&resp.PickupDate,
		&resp.DeliveryDate,
		&resp.IsDeliveryNeeded,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resp, errs.NewObjectNotFoundError("orderId", orderID.String())
		}
		return resp, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return resp, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return resp, err
	}
	return resp, nil
}

func (h GetOrderQueryHandler) items(db *gorm.DB, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			service_id,
			service_name,
			quantity,
			weight,
			unit_price,
			subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY line_number
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			item      OrderItemResponse
			id        uuid.UUID
			serviceID uuid.UUID
			weight    decimal.NullDecimal
		)
		if err = rows.Scan(&id, &serviceID, &item.ServiceName, &item.Quantity, &weight, &item.UnitPrice, &item.Subtotal); err != nil {
			return nil, err
		}
		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.ServiceID, err = kernel.UUIDFromBytes(serviceID[:]); err != nil {
			return nil, err
		}
		if weight.Valid {
			item.Weight = &weight.Decimal
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (h GetOrderQueryHandler) payments(db *gorm.DB, orderID kernel.UUID) ([]PaymentResponse, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			amount,
			payment_method,
			status,
			reference_number,
			transaction_id,
			created_at
		FROM payments
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]PaymentResponse, 0)
	for rows.Next() {
		var (
			payment       PaymentResponse
			id            uuid.UUID
			transactionID sql.NullString
			createdAt     time.Time
		)
		err = rows.Scan(&id, &payment.Amount, &payment.PaymentMethod, &payment.Status,
			&payment.ReferenceNumber, &transactionID, &createdAt)
		if err != nil {
			return nil, err
		}
		if payment.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		payment.TransactionID = transactionID.String
		payment.CreatedAt = createdAt
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
