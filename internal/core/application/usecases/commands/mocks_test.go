package commands_test

import (
	"context"
	"io"
	"log/slog"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/domain/model/jobqueue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/pricing"
	"laundry/internal/core/domain/model/workorder"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) AddItems(ctx context.Context, items []*order.Item, batchSize int) error {
	return m.Called(ctx, items, batchSize).Error(0)
}

func (m *MockOrderRepository) AddPayment(ctx context.Context, p *order.Payment) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) ListIDsByStatus(ctx context.Context, status order.Status) ([]kernel.UUID, error) {
	args := m.Called(ctx, status)
	ids, _ := args.Get(0).([]kernel.UUID)
	return ids, args.Error(1)
}

type MockJobQueueRepository struct{ mock.Mock }

func (m *MockJobQueueRepository) LockDate(ctx context.Context, day kernel.Date) error {
	return m.Called(ctx, day).Error(0)
}

func (m *MockJobQueueRepository) Get(ctx context.Context, id kernel.UUID) (*jobqueue.Entry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*jobqueue.Entry)
	return e, args.Error(1)
}

func (m *MockJobQueueRepository) Exists(ctx context.Context, orderID kernel.UUID, day kernel.Date) (bool, error) {
	args := m.Called(ctx, orderID, day)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobQueueRepository) Positions(ctx context.Context, day kernel.Date) ([]int, error) {
	args := m.Called(ctx, day)
	positions, _ := args.Get(0).([]int)
	return positions, args.Error(1)
}

func (m *MockJobQueueRepository) Shift(ctx context.Context, day kernel.Date, shift services.Shift) error {
	return m.Called(ctx, day, shift).Error(0)
}

func (m *MockJobQueueRepository) Add(ctx context.Context, e *jobqueue.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockJobQueueRepository) Update(ctx context.Context, e *jobqueue.Entry) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockJobQueueRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockWorkOrderRepository struct{ mock.Mock }

func (m *MockWorkOrderRepository) Add(ctx context.Context, wo *workorder.WorkOrder) error {
	return m.Called(ctx, wo).Error(0)
}

func (m *MockWorkOrderRepository) Get(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, id)
	wo, _ := args.Get(0).(*workorder.WorkOrder)
	return wo, args.Error(1)
}

func (m *MockWorkOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*workorder.WorkOrder, error) {
	args := m.Called(ctx, id)
	wo, _ := args.Get(0).(*workorder.WorkOrder)
	return wo, args.Error(1)
}

func (m *MockWorkOrderRepository) ExistsForOrder(ctx context.Context, orderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkOrderRepository) Update(ctx context.Context, wo *workorder.WorkOrder, step *workorder.Step) error {
	return m.Called(ctx, wo, step).Error(0)
}

func (m *MockWorkOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockNumberSequence struct{ mock.Mock }

func (m *MockNumberSequence) Next(ctx context.Context, prefix kernel.NumberPrefix, day kernel.Date) (int64, error) {
	args := m.Called(ctx, prefix, day)
	return args.Get(0).(int64), args.Error(1)
}

type MockServiceDirectory struct{ mock.Mock }

func (m *MockServiceDirectory) FindByIDs(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]pricing.Quote, error) {
	args := m.Called(ctx, ids)
	quotes, _ := args.Get(0).(map[kernel.UUID]pricing.Quote)
	return quotes, args.Error(1)
}

// MockUoW satisfies every unit of work flavour of the commands package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) JobQueueRepository() ports.JobQueueRepository {
	return m.Called().Get(0).(ports.JobQueueRepository)
}

func (m *MockUoW) WorkOrderRepository() ports.WorkOrderRepository {
	return m.Called().Get(0).(ports.WorkOrderRepository)
}

func (m *MockUoW) NumberSequence() ports.NumberSequence {
	return m.Called().Get(0).(ports.NumberSequence)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockJobQueueUoWFactory struct{ mock.Mock }

func (m *MockJobQueueUoWFactory) Create() commands.JobQueueUoW {
	return m.Called().Get(0).(commands.JobQueueUoW)
}

type MockWorkOrderUoWFactory struct{ mock.Mock }

func (m *MockWorkOrderUoWFactory) Create() commands.WorkOrderUoW {
	return m.Called().Get(0).(commands.WorkOrderUoW)
}

// txMocks is a unit of work with one of each repository wired in.
type txMocks struct {
	uow       *MockUoW
	orders    *MockOrderRepository
	queue     *MockJobQueueRepository
	works     *MockWorkOrderRepository
	sequences *MockNumberSequence
}

func newTxMocks() txMocks {
	m := txMocks{
		uow:       new(MockUoW),
		orders:    new(MockOrderRepository),
		queue:     new(MockJobQueueRepository),
		works:     new(MockWorkOrderRepository),
		sequences: new(MockNumberSequence),
	}
	m.uow.On("OrderRepository").Return(m.orders).Maybe()
	m.uow.On("JobQueueRepository").Return(m.queue).Maybe()
	m.uow.On("WorkOrderRepository").Return(m.works).Maybe()
	m.uow.On("NumberSequence").Return(m.sequences).Maybe()
	return m
}

func (m txMocks) assert(t mock.TestingT) {
	m.uow.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.queue.AssertExpectations(t)
	m.works.AssertExpectations(t)
	m.sequences.AssertExpectations(t)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrder(status order.Status) *order.Order {
	o, err := order.RestoreOrder(order.State{
		ID:          kernel.NewUUID(),
		Number:      "ORD-20261016-00001",
		CustomerID:  kernel.NewUUID(),
		Status:      status,
		TotalAmount: decimalOf("35000"),
		TotalWeight: decimalOf("3"),
	})
	if err != nil {
		panic(err)
	}
	return o
}

func decimalOf(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
