package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/pgtest"
	"laundry/internal/core/domain/model/jobqueue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	db       *gorm.DB
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.db = database.DB
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	first := suite.factory.Create()
	second := suite.factory.Create()

	suite.NotNil(first)
	suite.NotSame(first, second)
	suite.NotNil(first.OrderRepository())
	suite.NotNil(first.JobQueueRepository())
	suite.NotNil(first.WorkOrderRepository())
	suite.NotNil(first.NumberSequence())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := suite.T().Context()

	suite.Run("begin twice is safe", func() {
		uow := suite.factory.Create()
		suite.Require().NoError(uow.Begin(ctx))
		suite.Require().NoError(uow.Begin(ctx))
		suite.Require().NoError(uow.Commit(ctx))
	})

	suite.Run("commit without begin", func() {
		uow := suite.factory.Create()
		suite.ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	})

	suite.Run("rollback after commit", func() {
		uow := suite.factory.Create()
		suite.Require().NoError(uow.Begin(ctx))
		suite.Require().NoError(uow.Commit(ctx))
		suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitSpansRepositories() {
	ctx := suite.T().Context()
	o := pgtest.NewOrder(order.New)
	day := kernel.DateOf(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	entry, err := jobqueue.NewEntry(kernel.NewUUID(), o.ID(), day, 1, day.At(8, 12, time.UTC), "")
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.JobQueueRepository().LockDate(ctx, day))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.JobQueueRepository().Add(ctx, entry))
	seq, err := uow.NumberSequence().Next(ctx, kernel.WorkOrderNumberPrefix, day)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(int64(1), seq)

	reader := suite.factory.Create()
	stored, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Number(), stored.Number())

	queued, err := reader.JobQueueRepository().Exists(ctx, o.ID(), day)
	suite.Require().NoError(err)
	suite.True(queued)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := suite.T().Context()
	o := pgtest.NewOrder(order.New)
	day := kernel.DateOf(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	_, err := uow.NumberSequence().Next(ctx, kernel.OrderNumberPrefix, day)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Rollback(ctx))

	_, err = suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	// the sequence row was rolled back too, so numbering restarts at 1
	seq, err := suite.factory.Create().NumberSequence().Next(ctx, kernel.OrderNumberPrefix, day)
	suite.Require().NoError(err)
	suite.Equal(int64(1), seq)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DeferredPositionConstraint() {
	ctx := suite.T().Context()
	day := kernel.DateOf(time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	first, err := pgtest.InsertOrder(ctx, suite.db, order.New)
	suite.Require().NoError(err)
	second, err := pgtest.InsertOrder(ctx, suite.db, order.New)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	for _, o := range []*order.Order{first, second} {
		entry, entryErr := jobqueue.NewEntry(kernel.NewUUID(), o.ID(), day, 1, day.At(8, 12, time.UTC), "")
		suite.Require().NoError(entryErr)
		suite.Require().NoError(uow.JobQueueRepository().Add(ctx, entry))
	}

	suite.Error(uow.Commit(ctx), "duplicate position must fail at commit time")

	positions, err := suite.factory.Create().JobQueueRepository().Positions(ctx, day)
	suite.Require().NoError(err)
	suite.Empty(positions)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
