// Package scheduler runs the periodic overdue sweep.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"taskhub/internal/logger"
	"taskhub/internal/services"
)

// Start schedules the overdue sweep with the given cron expression and
// starts the cron runner. Tasks whose due date has passed are moved to
// the overdue status on each tick. Callers should Stop the returned cron
// on shutdown.
func Start(tasks services.TaskServicer, spec string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		marked, err := tasks.MarkOverdueTasks(time.Now())
		if err != nil {
			logger.Get().Errorw("overdue sweep failed", "error", err)
			return
		}
		if marked > 0 {
			logger.Get().Infow("overdue sweep", "tasks_marked", marked)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Get().Infof("Overdue sweep scheduled: %s", spec)
	return c, nil
}
