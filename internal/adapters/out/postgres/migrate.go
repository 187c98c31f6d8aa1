package postgres

import (
	"fmt"

	"laundry/internal/adapters/out/postgres/jobqueuerepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/sequencerepo"
	"laundry/internal/adapters/out/postgres/servicerepo"
	"laundry/internal/adapters/out/postgres/workorderrepo"

	"gorm.io/gorm"
)

// constraints are the parts of the schema gorm tags cannot express. Each statement is
// idempotent.
var constraints = []string{
	addConstraint("daily_job_queues", "uq_daily_job_queues_date_position",
		"UNIQUE (scheduled_date, queue_position) DEFERRABLE INITIALLY DEFERRED"),
	addConstraint("daily_job_queues", "fk_daily_job_queues_order",
		"FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE"),
	addConstraint("work_orders", "fk_work_orders_order",
		"FOREIGN KEY (order_id) REFERENCES orders (id) ON DELETE CASCADE"),
	addConstraint("work_orders", "fk_work_orders_job_queue",
		"FOREIGN KEY (job_queue_id) REFERENCES daily_job_queues (id) ON DELETE SET NULL"),
	addConstraint("daily_job_queues", "ck_daily_job_queues_position",
		"CHECK (queue_position >= 1)"),
	addConstraint("work_orders", "ck_work_orders_priority",
		"CHECK (priority BETWEEN 1 AND 5)"),
}

// Migrate creates or updates every table of the service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.PaymentDTO{},
		&jobqueuerepo.EntryDTO{},
		&workorderrepo.WorkOrderDTO{},
		&workorderrepo.StepDTO{},
		&sequencerepo.SequenceDTO{},
		&servicerepo.ServiceDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}

func addConstraint(table, name, definition string) string {
	return fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s %s;
	END IF;
END $$;`, name, table, name, definition)
}
