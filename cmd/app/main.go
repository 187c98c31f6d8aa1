package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"laundry/cmd"
	apihttp "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/redis/servicecache"
	"laundry/internal/jobs"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustOpenDatabase(configs)
	rdb := connectRedis(ctx, configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, rdb, logger)

	jobManager := startJobs(&app, configs, logger)
	if jobManager != nil {
		defer jobManager.StopAll()
	}

	startWebServer(ctx, &app, configs)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err = postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return gormDB
}

// connectRedis returns nil when the cache is not configured or not reachable; the
// service runs without it.
func connectRedis(ctx context.Context, configs cmd.Config, logger *slog.Logger) *redis.Client {
	if configs.RedisURL == "" {
		return nil
	}
	rdb, err := servicecache.Connect(ctx, configs.RedisURL)
	if err != nil {
		logger.WarnContext(ctx, "Service cache disabled", "error", err)
		return nil
	}
	return rdb
}

func startJobs(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) *jobs.JobManager {
	if configs.WorkOrderIntakeSchedule == "" {
		return nil
	}

	lister := app.CreateListJobQueueQueryHandler()
	creator := app.CreateCreateWorkOrdersFromJobQueueCommandHandler()
	jobManager := jobs.NewJobManager(&lister, &creator, configs.WorkOrderIntakeSchedule, configs.Location(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	return jobManager
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config) {
	doc, err := apihttp.LoadSpec(ctx)
	if err != nil {
		log.Fatalf("Failed to load API document: %v", err)
	}
	validator, err := apihttp.RequestValidator(doc)
	if err != nil {
		log.Fatalf("Failed to build request validator: %v", err)
	}
	if err = apihttp.RegisterSwagger(doc); err != nil {
		log.Fatalf("Failed to register swagger document: %v", err)
	}

	createOrder := app.CreateCreateOrderCommandHandler()
	getOrder := app.CreateGetOrderQueryHandler()
	enqueueOrder := app.CreateEnqueueOrderCommandHandler()
	updateEntry := app.CreateUpdateJobQueueEntryCommandHandler()
	removeEntry := app.CreateRemoveJobQueueEntryCommandHandler()
	listJobQueue := app.CreateListJobQueueQueryHandler()
	createWork := app.CreateCreateWorkOrderCommandHandler()
	getWork := app.CreateGetWorkOrderQueryHandler()
	removeWork := app.CreateRemoveWorkOrderCommandHandler()
	updateStep := app.CreateUpdateWorkOrderStepCommandHandler()
	fromJobQueue := app.CreateCreateWorkOrdersFromJobQueueCommandHandler()
	fromOrders := app.CreateCreateWorkOrdersByOrderStatusCommandHandler()

	server := apihttp.NewServer(apihttp.Handlers{
		CreateOrder:  &createOrder,
		GetOrder:     &getOrder,
		EnqueueOrder: &enqueueOrder,
		UpdateEntry:  &updateEntry,
		RemoveEntry:  &removeEntry,
		ListJobQueue: &listJobQueue,
		CreateWork:   &createWork,
		GetWork:      &getWork,
		RemoveWork:   &removeWork,
		UpdateStep:   &updateStep,
		FromJobQueue: &fromJobQueue,
		FromOrders:   &fromOrders,
	})

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(validator)
	apihttp.RegisterHandlers(e, server, apihttp.Timeouts{
		Default: configs.RequestTimeout,
		Order:   configs.OrderRequestTimeout,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			e.Logger.Error(err)
		}
	}()

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && ctx.Err() == nil {
		e.Logger.Fatal(err)
	}
}
