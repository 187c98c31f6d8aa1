package cmd

import (
	"log/slog"
	"time"

	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/servicerepo"
	"laundry/internal/adapters/out/redis/servicecache"
	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	directory  ports.ServiceDirectory
	location   *time.Location
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. rdb may be nil, in which case service lookups
// go straight to the database.
func NewCompositionRoot(config Config, gormDB *gorm.DB, rdb *redis.Client, logger *slog.Logger) CompositionRoot {
	var directory ports.ServiceDirectory = servicerepo.NewGormServiceDirectory(gormDB)
	if rdb != nil {
		directory = servicecache.NewDirectory(rdb, directory, config.ServiceCacheTTL, logger)
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:  directory,
		location:   config.Location(),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) jobQueueUoWFactory() commands.JobQueueUoWFactory {
	return FuncJobQueueUoWFactory(func() commands.JobQueueUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) workOrderUoWFactory() commands.WorkOrderUoWFactory {
	return FuncWorkOrderUoWFactory(func() commands.WorkOrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.orderUoWFactory(), c.directory, c.config.ItemBatchSize, c.location, c.logger)
}

func (c *CompositionRoot) CreateEnqueueOrderCommandHandler() commands.EnqueueOrderCommandHandler {
	return commands.NewEnqueueOrderCommandHandler(c.jobQueueUoWFactory(), c.location)
}

func (c *CompositionRoot) CreateUpdateJobQueueEntryCommandHandler() commands.UpdateJobQueueEntryCommandHandler {
	return commands.NewUpdateJobQueueEntryCommandHandler(c.jobQueueUoWFactory(), c.location)
}

func (c *CompositionRoot) CreateRemoveJobQueueEntryCommandHandler() commands.RemoveJobQueueEntryCommandHandler {
	return commands.NewRemoveJobQueueEntryCommandHandler(c.jobQueueUoWFactory())
}

func (c *CompositionRoot) CreateCreateWorkOrderCommandHandler() commands.CreateWorkOrderCommandHandler {
	return commands.NewCreateWorkOrderCommandHandler(c.workOrderUoWFactory(), c.location)
}

func (c *CompositionRoot) CreateUpdateWorkOrderStepCommandHandler() commands.UpdateWorkOrderStepCommandHandler {
	return commands.NewUpdateWorkOrderStepCommandHandler(c.workOrderUoWFactory())
}

func (c *CompositionRoot) CreateRemoveWorkOrderCommandHandler() commands.RemoveWorkOrderCommandHandler {
	return commands.NewRemoveWorkOrderCommandHandler(c.workOrderUoWFactory())
}

func (c *CompositionRoot) CreateCreateWorkOrdersFromJobQueueCommandHandler() commands.CreateWorkOrdersFromJobQueueCommandHandler {
	return commands.NewCreateWorkOrdersFromJobQueueCommandHandler(c.workOrderUoWFactory(), c.location, c.logger)
}

func (c *CompositionRoot) CreateCreateWorkOrdersByOrderStatusCommandHandler() commands.CreateWorkOrdersByOrderStatusCommandHandler {
	return commands.NewCreateWorkOrdersByOrderStatusCommandHandler(c.workOrderUoWFactory(), c.location, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListJobQueueQueryHandler() queries.ListJobQueueQueryHandler {
	return queries.NewListJobQueueQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetWorkOrderQueryHandler() queries.GetWorkOrderQueryHandler {
	return queries.NewGetWorkOrderQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncJobQueueUoWFactory func() commands.JobQueueUoW

func (f FuncJobQueueUoWFactory) Create() commands.JobQueueUoW {
	return f()
}

type FuncWorkOrderUoWFactory func() commands.WorkOrderUoW

func (f FuncWorkOrderUoWFactory) Create() commands.WorkOrderUoW {
	return f()
}
