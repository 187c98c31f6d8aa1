package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	workOrderIntakeJob *WorkOrderIntakeJob
}

// NewJobManager wires the jobs to the handlers they drive.
func NewJobManager(
	lister JobQueueLister,
	creator JobQueueBatchCreator,
	intakeSchedule string,
	location *time.Location,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		workOrderIntakeJob: NewWorkOrderIntakeJob(lister, creator, intakeSchedule, location, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.workOrderIntakeJob.Start(); err != nil {
		return fmt.Errorf("failed to start work order intake job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.workOrderIntakeJob.Stop()
}
