package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultWorkOrderIntakeSchedule runs the intake every five minutes.
const DefaultWorkOrderIntakeSchedule = "0 */5 * * * *"

type JobQueueLister interface {
	Handle(ctx context.Context, query queries.ListJobQueueQuery) ([]queries.JobQueueEntryResponse, error)
}

type JobQueueBatchCreator interface {
	Handle(ctx context.Context, cmd commands.CreateWorkOrdersFromJobQueueCommand) (commands.BatchResult, error)
}

// WorkOrderIntakeJob opens work orders for today's queue entries. Entries whose order
// already has a work order are skipped by the batch command, so the job is safe to
// run repeatedly.
type WorkOrderIntakeJob struct {
	lister   JobQueueLister
	creator  JobQueueBatchCreator
	schedule string
	location *time.Location
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewWorkOrderIntakeJob creates the job. "Today" is evaluated in location.
func NewWorkOrderIntakeJob(
	lister JobQueueLister,
	creator JobQueueBatchCreator,
	schedule string,
	location *time.Location,
	logger *slog.Logger,
) *WorkOrderIntakeJob {
	if schedule == "" {
		schedule = DefaultWorkOrderIntakeSchedule
	}
	if location == nil {
		location = time.UTC
	}
	return &WorkOrderIntakeJob{
		lister:   lister,
		creator:  creator,
		schedule: schedule,
		location: location,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		logger:   logger.With("component", "work_order_intake_job"),
	}
}

// Start registers the job with its schedule and starts the scheduler.
func (j *WorkOrderIntakeJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Work order intake job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Work order intake job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running intake to finish.
func (j *WorkOrderIntakeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Work order intake job stopped")
}

// Run performs one intake for today's queue.
func (j *WorkOrderIntakeJob) Run(ctx context.Context) (commands.BatchResult, error) {
	today := kernel.DateOf(j.now().In(j.location))

	query, err := queries.NewListJobQueueQuery(today, "")
	if err != nil {
		return commands.BatchResult{}, err
	}
	entries, err := j.lister.Handle(ctx, query)
	if err != nil {
		return commands.BatchResult{}, err
	}
	if len(entries) == 0 {
		j.logger.DebugContext(ctx, "No queue entries to take in", "date", today.String())
		return commands.BatchResult{}, nil
	}

	ids := make([]kernel.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	cmd, err := commands.NewCreateWorkOrdersFromJobQueueCommand(ids)
	if err != nil {
		return commands.BatchResult{}, err
	}

	result, err := j.creator.Handle(ctx, cmd)
	if err != nil {
		return commands.BatchResult{}, err
	}

	for _, failure := range result.Failed {
		level := slog.LevelError
		if errors.Is(failure.Err, errs.ErrObjectNotFound) {
			// removed from the queue between listing and intake
			level = slog.LevelWarn
		}
		j.logger.Log(ctx, level, "Work order intake skipped entry", "jobQueueId", failure.ID.String(), "error", failure.Err)
	}
	j.logger.InfoContext(ctx, "Work order intake finished",
		"date", today.String(),
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"failed", len(result.Failed),
	)
	return result, nil
}
