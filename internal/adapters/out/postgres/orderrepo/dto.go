// Package orderrepo persists order aggregates with their items and payments.
package orderrepo

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Items and payments are written through their own
// statements and only loaded through the associations.
type OrderDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber         string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status              string          `gorm:"type:varchar(20);not null;index"`
	TotalAmount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalWeight         decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	Notes               string          `gorm:"type:text"`
	SpecialRequirements string          `gorm:"type:text"`
	PickupDate          *time.Time
	DeliveryDate        *time.Time
	IsDeliveryNeeded    bool      `gorm:"not null;default:false"`
	CreatedAt           time.Time `gorm:"not null;index"`
	UpdatedAt           time.Time `gorm:"not null"`

	Items    []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments []PaymentDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is an order_items row. LineNumber keeps the request order of the lines.
type ItemDTO struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	LineNumber  int              `gorm:"not null"`
	ServiceID   uuid.UUID        `gorm:"type:uuid;not null"`
	ServiceName string           `gorm:"type:varchar(255);not null"`
	Quantity    int              `gorm:"not null"`
	Weight      *decimal.Decimal `gorm:"type:numeric(10,3)"`
	UnitPrice   decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	Subtotal    decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

// PaymentDTO is a payments row.
type PaymentDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null"`
	Status          string          `gorm:"type:varchar(20);not null"`
	ReferenceNumber string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	TransactionID   string          `gorm:"type:varchar(255)"`
	CreatedAt       time.Time       `gorm:"not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	return OrderDTO{
		ID:                  o.ID().Bytes(),
		OrderNumber:         o.Number(),
		CustomerID:          o.CustomerID().Bytes(),
		Status:              o.Status().String(),
		TotalAmount:         o.TotalAmount(),
		TotalWeight:         o.TotalWeight(),
		Notes:               d.Notes,
		SpecialRequirements: d.SpecialRequirements,
		PickupDate:          d.PickupDate,
		DeliveryDate:        d.DeliveryDate,
		IsDeliveryNeeded:    d.IsDeliveryNeeded,
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	}
}

func itemFromDomain(i *order.Item, line int) ItemDTO {
	return ItemDTO{
		ID:          i.ID().Bytes(),
		OrderID:     i.OrderID().Bytes(),
		LineNumber:  line,
		ServiceID:   i.ServiceID().Bytes(),
		ServiceName: i.ServiceName(),
		Quantity:    i.Quantity(),
		Weight:      i.Weight(),
		UnitPrice:   i.UnitPrice(),
		Subtotal:    i.Subtotal(),
	}
}

func paymentFromDomain(p *order.Payment) PaymentDTO {
	return PaymentDTO{
		ID:              p.ID().Bytes(),
		OrderID:         p.OrderID().Bytes(),
		CustomerID:      p.CustomerID().Bytes(),
		Amount:          p.Amount(),
		PaymentMethod:   string(p.Method()),
		Status:          string(p.Status()),
		ReferenceNumber: p.ReferenceNumber(),
		TransactionID:   p.TransactionID(),
		CreatedAt:       p.CreatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	payments := make([]*order.Payment, 0, len(dto.Payments))
	for _, paymentDTO := range dto.Payments {
		payment, paymentErr := paymentToDomain(paymentDTO)
		if paymentErr != nil {
			return nil, paymentErr
		}
		payments = append(payments, payment)
	}

	return order.RestoreOrder(order.State{
		ID:          id,
		Number:      dto.OrderNumber,
		CustomerID:  customerID,
		Status:      status,
		TotalAmount: dto.TotalAmount,
		TotalWeight: dto.TotalWeight,
		Details: order.Details{
			Notes:               dto.Notes,
			SpecialRequirements: dto.SpecialRequirements,
			PickupDate:          dto.PickupDate,
			DeliveryDate:        dto.DeliveryDate,
			IsDeliveryNeeded:    dto.IsDeliveryNeeded,
		},
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		Items:     items,
		Payments:  payments,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}
	return order.RestoreItem(id, orderID, serviceID, dto.ServiceName, dto.Quantity, dto.Weight, dto.UnitPrice, dto.Subtotal)
}

func paymentToDomain(dto PaymentDTO) (*order.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	return order.RestorePayment(
		id, orderID, customerID,
		dto.Amount,
		order.PaymentMethod(dto.PaymentMethod),
		order.PaymentStatus(dto.Status),
		dto.ReferenceNumber,
		dto.TransactionID,
		dto.CreatedAt,
	)
}
